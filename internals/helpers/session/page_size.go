// Package session keeps per-client list state across requests.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
)

const (
	KeyPrevPageSize = "prev_pageSize"
	CookieName      = "session_id"
)

// PageSizeMemory remembers the page size of the previous list request per session.
type PageSizeMemory struct {
	store *fibersession.Store
}

// New uses redis when rdb is non-nil, the in-process fiber storage otherwise.
func New(rdb *redis.Client, expiry time.Duration) *PageSizeMemory {
	cfg := fibersession.Config{
		Expiration:     expiry,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if rdb != nil {
		cfg.Storage = NewRedisStorage(rdb, "sess:")
	}
	return &PageSizeMemory{store: fibersession.New(cfg)}
}

// Swap stores pageSize and returns the one stored before (had=false on first use).
func (m *PageSizeMemory) Swap(c *fiber.Ctx, pageSize int) (prev int, had bool, err error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return 0, false, err
	}
	prev, had = sess.Get(KeyPrevPageSize).(int)
	sess.Set(KeyPrevPageSize, pageSize)
	if err := sess.Save(); err != nil {
		return prev, had, err
	}
	return prev, had, nil
}
