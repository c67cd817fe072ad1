// Package oss is the blob-storage collaborator: upload rules, object naming and stores.
package oss

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"erp_backend/internals/configs"
)

// BlobService stores bytes under dir and returns the stored path.
type BlobService interface {
	Save(ctx context.Context, dir, filename string, data []byte, contentType string) (storedPath string, err error)
	Delete(ctx context.Context, storedPath string) error
}

// NewBlobServiceFromEnv picks Aliyun OSS when ALI_OSS_* is configured, local disk otherwise.
func NewBlobServiceFromEnv() BlobService {
	if configs.GetEnv("ALI_OSS_BUCKET") != "" {
		store, err := NewOSSStoreFromEnv("")
		if err == nil {
			log.Info().Str("bucket", store.BucketName).Msg("blob storage: aliyun oss")
			return store
		}
		log.Warn().Err(err).Msg("aliyun oss unavailable, falling back to local media")
	}
	root := configs.GetEnv("MEDIA_ROOT", "media")
	log.Info().Str("root", root).Msg("blob storage: local disk")
	return NewLocalStore(root)
}

/* =======================================================================
   Upload rules
======================================================================= */

// Rule is the accept policy of one upload field.
type Rule struct {
	Dir             string
	MaxBytes        int64
	AllowedPrefixes []string
	TypeMessage     string
	SizeMessage     string
	MaxW, MaxH      int // image downscale bounds, 0 = keep
}

var (
	VehiclePhotoRule = Rule{
		Dir:             "vehicles",
		MaxBytes:        5 * 1024 * 1024,
		AllowedPrefixes: []string{"image/"},
		TypeMessage:     "Only image files are allowed.",
		SizeMessage:     "Image file too large (max 5MB).",
		MaxW:            1600,
		MaxH:            1600,
	}
	StudentFileRule = Rule{
		Dir:             "students",
		MaxBytes:        5 * 1024 * 1024,
		AllowedPrefixes: []string{"image/", "application/"},
		TypeMessage:     "Only image or document files are allowed.",
		SizeMessage:     "File too large (max 5MB).",
		MaxW:            1600,
		MaxH:            1600,
	}
)

// RejectError is a file refused by a Rule; Message is user facing.
type RejectError struct {
	Field   string
	Message string
}

func (e *RejectError) Error() string { return e.Field + ": " + e.Message }

// Upload is a file read fully into memory and accepted by its rule.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
	Rule        Rule
}

// ReadUpload checks type and size of fh against r and reads it.
func ReadUpload(field string, fh *multipart.FileHeader, r Rule) (*Upload, error) {
	ct := contentTypeOf(fh)
	allowed := false
	for _, p := range r.AllowedPrefixes {
		if strings.HasPrefix(ct, p) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, &RejectError{Field: field, Message: r.TypeMessage}
	}
	if r.MaxBytes > 0 && fh.Size > r.MaxBytes {
		return nil, &RejectError{Field: field, Message: r.SizeMessage}
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if r.MaxBytes > 0 && int64(len(data)) > r.MaxBytes {
		return nil, &RejectError{Field: field, Message: r.SizeMessage}
	}
	return &Upload{Field: field, Filename: fh.Filename, ContentType: ct, Data: data, Rule: r}, nil
}

// Store downscales images and saves u under its rule's dir.
func (u *Upload) Store(ctx context.Context, blob BlobService) (string, error) {
	data := u.Data
	if strings.HasPrefix(u.ContentType, "image/") && (u.Rule.MaxW > 0 || u.Rule.MaxH > 0) {
		data = Downscale(data, u.Filename, u.Rule.MaxW, u.Rule.MaxH)
	}
	return blob.Save(ctx, u.Rule.Dir, u.Filename, data, u.ContentType)
}

// ObjectName is "{dir}/{uuid-hex}.{ext}".
func ObjectName(dir, filename string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	name := hex
	if ext != "" {
		name += "." + ext
	}
	return path.Join(strings.Trim(dir, "/"), name)
}

// IsMultipart reports a multipart/form-data request.
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}

func contentTypeOf(fh *multipart.FileHeader) string {
	if ct := strings.TrimSpace(fh.Header.Get(fiber.HeaderContentType)); ct != "" {
		return strings.ToLower(ct)
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename))); ct != "" {
		return ct
	}
	src, err := fh.Open()
	if err != nil {
		return "application/octet-stream"
	}
	defer src.Close()
	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)
	return http.DetectContentType(head[:n])
}

/* =======================================================================
   In-memory store for tests
======================================================================= */

type MemoryBlobService struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewMemoryBlobService() *MemoryBlobService {
	return &MemoryBlobService{Objects: map[string][]byte{}}
}

func (m *MemoryBlobService) Save(_ context.Context, dir, filename string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := ObjectName(dir, filename)
	m.Objects[name] = append([]byte(nil), data...)
	return name, nil
}

func (m *MemoryBlobService) Delete(_ context.Context, storedPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, storedPath)
	return nil
}

func (m *MemoryBlobService) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
