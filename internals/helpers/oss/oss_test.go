package oss

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	field, filename, contentType string
	data                         []byte
}

func buildForm(t *testing.T, values map[string]string, parts ...part) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, p := range parts {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestReadUploadRules(t *testing.T) {
	form := buildForm(t, nil,
		part{"ok", "a.pdf", "application/pdf", []byte("%PDF-1.4")},
		part{"text", "a.txt", "text/plain", []byte("hello")},
		part{"big", "b.png", "image/png", bytes.Repeat([]byte{1}, int(StudentFileRule.MaxBytes)+1)},
	)

	up, err := ReadUpload("ok", form.File["ok"][0], StudentFileRule)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", up.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), up.Data)

	_, err = ReadUpload("text", form.File["text"][0], StudentFileRule)
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Only image or document files are allowed.", rej.Message)

	_, err = ReadUpload("big", form.File["big"][0], StudentFileRule)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "big", rej.Field)
	assert.Equal(t, "File too large (max 5MB).", rej.Message)

	_, err = ReadUpload("ok", form.File["ok"][0], VehiclePhotoRule)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Only image files are allowed.", rej.Message)
}

func TestCollectDocuments(t *testing.T) {
	form := buildForm(t,
		map[string]string{"document_2_title": "Birth certificate", "document_10_title": " "},
		part{"document_10_files", "c.pdf", "application/pdf", []byte("c")},
		part{"document_2_files", "b.pdf", "application/pdf", []byte("b")},
		part{"student_photo", "p.png", "image/png", []byte("p")},
	)

	docs := CollectDocuments(form)
	require.Len(t, docs, 2)
	assert.Equal(t, 2, docs[0].Index)
	assert.Equal(t, "Birth certificate", docs[0].Title)
	assert.Equal(t, 10, docs[1].Index)
	assert.Equal(t, DefaultDocumentTitle, docs[1].Title)

	named := CollectNamedFiles(form, "student_photo", "father_photo")
	assert.Len(t, named, 1)
	assert.Contains(t, named, "student_photo")
}

func TestObjectName(t *testing.T) {
	name := ObjectName("/students/", "Photo.JPG")
	assert.Regexp(t, regexp.MustCompile(`^students/[0-9a-f]{32}\.jpg$`), name)

	assert.False(t, strings.Contains(ObjectName("docs", "README"), "."))
}

func TestDownscale(t *testing.T) {
	img := imaging.New(3200, 100, color.White)
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	out := Downscale(buf.Bytes(), "wide.png", 1600, 1600)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 50, cfg.Height)

	junk := []byte("not an image")
	assert.Equal(t, junk, Downscale(junk, "x.png", 10, 10))
}

func TestLocalStore(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root)

	p, err := s.Save(context.Background(), "vehicles", "bus.png", []byte("png"), "image/png")
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got)

	require.NoError(t, s.Delete(context.Background(), p))
	require.NoError(t, s.Delete(context.Background(), p))
}

func TestMemoryBlobService(t *testing.T) {
	m := NewMemoryBlobService()
	p, err := m.Save(context.Background(), "students", "a.pdf", []byte("x"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	require.NoError(t, m.Delete(context.Background(), p))
	assert.Equal(t, 0, m.Len())
}
