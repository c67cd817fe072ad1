// Package base is the generic entity endpoint shared by every reference-data module.
package base

import (
	"context"

	"gorm.io/gorm"

	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/oss"
	"erp_backend/internals/helpers/session"
)

// Deps are the collaborators every endpoint receives from the route tree.
type Deps struct {
	DB       *gorm.DB
	Sessions *session.PageSizeMemory // nil disables the page reset on page-size change
	Blob     oss.BlobService
}

func (d Deps) Conn(ctx context.Context) *gorm.DB {
	return d.DB.WithContext(ctx)
}

// Defaulter is implemented by models whose create defaults differ from Go zero values.
type Defaulter interface {
	SetDefaults()
}

// UploadField accepts one multipart file into a string column.
type UploadField struct {
	Field string
	Rule  oss.Rule
}

// Config describes one entity endpoint. Only Name is mandatory.
type Config[M any] struct {
	Name     string
	Required []string
	Search   []string          // SQL expressions OR-ed in list search
	Sortable map[string]string // api field -> column; defaults to every model column
	Preload  []string          // relations the projection reads
	AllOrder string            // ORDER BY of list-all; default "id"

	// Check runs inside the write transaction after decoding (uniqueness, foreign keys).
	Check func(tx *gorm.DB, m *M) helper.FieldErrors
	// AfterSave runs in the same transaction after insert/update.
	AfterSave func(tx *gorm.DB, m *M) error
	// BeforeDelete runs in the delete transaction.
	BeforeDelete func(tx *gorm.DB, m *M) error
	// Project shapes a loaded (preloaded) row for responses; default is the row itself.
	Project func(m *M) any

	Upload *UploadField
}
