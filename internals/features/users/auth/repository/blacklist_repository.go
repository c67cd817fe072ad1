package repository

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"erp_backend/internals/features/users/auth/model"
)

func TokenDigest(rawToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawToken))
	return hex.EncodeToString(m.Sum(nil))
}

// IsBlacklisted reports an active, unexpired row for rawToken.
func IsBlacklisted(ctx context.Context, db *gorm.DB, rawToken, secret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawToken) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", TokenDigest(rawToken, secret), time.Now()).
		Count(&n).Error
	return n > 0, err
}

// Add revokes rawToken until expiresAt. Used by ops tooling and tests.
func Add(ctx context.Context, db *gorm.DB, rawToken, secret string, expiresAt time.Time) error {
	row := model.TokenBlacklist{Token: TokenDigest(rawToken, secret), ExpiredAt: expiresAt}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
		}).
		Create(&row).Error
}

// Checker adapts IsBlacklisted to the JWT middleware hook.
func Checker(db *gorm.DB, secret string) func(ctx context.Context, rawToken string) (bool, error) {
	return func(ctx context.Context, rawToken string) (bool, error) {
		return IsBlacklisted(ctx, db, rawToken, secret)
	}
}
