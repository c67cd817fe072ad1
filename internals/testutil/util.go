// Package testutil builds an in-memory app for HTTP tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	database "erp_backend/internals/databases"
	"erp_backend/internals/features/base"
	"erp_backend/internals/helpers/oss"
	"erp_backend/internals/helpers/session"
	routes "erp_backend/internals/route"
)

const Secret = "test-secret"

// Env is one isolated app over a fresh in-memory database.
type Env struct {
	T     *testing.T
	App   *fiber.App
	DB    *gorm.DB
	Blob  *oss.MemoryBlobService
	Token string

	cookies []*http.Cookie
}

func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", true)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	db := OpenDB(t)
	blob := oss.NewMemoryBlobService()

	app := routes.NewApp()
	routes.SetupRoutes(app, base.Deps{
		DB:       db,
		Sessions: session.New(nil, time.Hour),
		Blob:     blob,
	}, Secret)

	return &Env{T: t, App: app, DB: db, Blob: blob, Token: MintToken(t, Secret, time.Hour)}
}

// MintToken signs an HS256 access token for user 1.
func MintToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    1,
		"token_type": "access",
		"exp":        time.Now().Add(ttl).Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

// Response is a decoded envelope.
type Response struct {
	Code int
	Body map[string]any
	Raw  []byte
}

func (r Response) Status() int {
	n, _ := r.Body["status"].(float64)
	return int(n)
}

func (r Response) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

func (r Response) List() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

func (r Response) Errors() map[string]any {
	m, _ := r.Body["errors"].(map[string]any)
	return m
}

// FieldErrors returns the messages of one field of a validation envelope.
func (r Response) FieldErrors(field string) []string {
	raw, _ := r.Errors()[field].([]any)
	out := make([]string, 0, len(raw))
	for _, m := range raw {
		s, _ := m.(string)
		out = append(out, s)
	}
	return out
}

// JSON sends body (marshalled unless nil) with the bearer token and the session cookie.
func (e *Env) JSON(method, path string, body any) Response {
	e.T.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.T, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return e.Do(req)
}

// File is one multipart file part.
type File struct {
	Field, Filename, ContentType string
	Data                         []byte
}

// Multipart sends form values and files as multipart/form-data.
func (e *Env) Multipart(method, path string, values map[string]string, files ...File) Response {
	e.T.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(e.T, w.WriteField(k, v))
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Filename+`"`)
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		require.NoError(e.T, err)
		_, err = part.Write(f.Data)
		require.NoError(e.T, err)
	}
	require.NoError(e.T, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return e.Do(req)
}

func (e *Env) Do(req *http.Request) Response {
	e.T.Helper()
	if e.Token != "" && req.Header.Get(fiber.HeaderAuthorization) == "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+e.Token)
	}
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	resp, err := e.App.Test(req, -1)
	require.NoError(e.T, err)
	defer resp.Body.Close()

	if cs := resp.Cookies(); len(cs) > 0 {
		e.cookies = cs
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.T, err)

	out := Response{Code: resp.StatusCode, Raw: raw}
	if len(bytes.TrimSpace(raw)) > 0 && raw[0] == '{' {
		require.NoError(e.T, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

// Create posts body to prefix/create and returns the new id.
func (e *Env) Create(prefix string, body any) uint {
	e.T.Helper()
	res := e.JSON(http.MethodPost, prefix+"/create", body)
	require.Equal(e.T, fiber.StatusCreated, res.Status(), string(res.Raw))
	id, ok := res.Data()["id"].(float64)
	require.True(e.T, ok, string(res.Raw))
	return uint(id)
}
