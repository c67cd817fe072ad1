package base

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/oss"
)

// Input is one decoded write request.
type Input struct {
	Payload helper.Payload
	Upload  *oss.Upload
}

type Endpoint[M any] struct {
	cfg  Config[M]
	deps Deps

	sortOnce sync.Once
	sortable map[string]string
	table    string
}

func New[M any](deps Deps, cfg Config[M]) *Endpoint[M] {
	if cfg.AllOrder == "" {
		cfg.AllOrder = "id"
	}
	return &Endpoint[M]{cfg: cfg, deps: deps}
}

func (e *Endpoint[M]) Name() string { return e.cfg.Name }

/* ===============================
   Reads
=================================*/

// List runs search/sort/paginate over the whole table.
func (e *Endpoint[M]) List(ctx context.Context, p helper.Params) (helper.Result, error) {
	db := e.deps.Conn(ctx)
	var rows []M
	meta, err := helper.Paginate(db.Model(new(M)), p, helper.ListOptions{
		Search:   e.cfg.Search,
		Sortable: e.sortColumns(db),
		Preload:  e.cfg.Preload,
	}, &rows)
	if err != nil {
		return helper.Result{}, err
	}
	return helper.OK(e.projectAll(rows)).WithMeta(meta.Map()), nil
}

// All returns every row with its count, unpaginated.
func (e *Endpoint[M]) All(ctx context.Context) (helper.Result, error) {
	rows, err := e.LoadAll(e.deps.Conn(ctx))
	if err != nil {
		return helper.Result{}, err
	}
	return helper.OK(e.projectAll(rows)).WithMeta(fiber.Map{"count": len(rows)}), nil
}

// LoadAll reads every row with the projection preloads.
func (e *Endpoint[M]) LoadAll(db *gorm.DB) ([]M, error) {
	q := db.Order(e.cfg.AllOrder)
	for _, rel := range e.cfg.Preload {
		q = q.Preload(rel)
	}
	var rows []M
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ProjectAll is the projection used by list, list-all and the masters snapshot.
func (e *Endpoint[M]) ProjectAll(db *gorm.DB) ([]any, error) {
	rows, err := e.LoadAll(db)
	if err != nil {
		return nil, err
	}
	return e.projectAll(rows), nil
}

func (e *Endpoint[M]) Retrieve(ctx context.Context, id uint) (helper.Result, error) {
	m, err := e.load(e.deps.Conn(ctx), id, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NotFound(), nil
	}
	if err != nil {
		return helper.Result{}, err
	}
	return helper.OK(e.project(m)), nil
}

/* ===============================
   Writes
=================================*/

func (e *Endpoint[M]) Create(ctx context.Context, in Input) (helper.Result, error) {
	var m M
	if d, ok := any(&m).(Defaulter); ok {
		d.SetDefaults()
	}
	errs := e.decode(&m, in.Payload, false)
	if !errs.Empty() {
		return helper.Invalid(errs), nil
	}
	if err := e.storeUpload(ctx, &m, in.Upload); err != nil {
		return helper.Result{}, err
	}

	if res, done, err := e.save(ctx, &m, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&m).Error
	}); done {
		return res, err
	}
	return e.reload(ctx, recordID(&m), helper.Created)
}

// Update applies a full (partial=false) or partial update.
func (e *Endpoint[M]) Update(ctx context.Context, id uint, in Input, partial bool) (helper.Result, error) {
	m, err := e.load(e.deps.Conn(ctx), id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NotFound(), nil
	}
	if err != nil {
		return helper.Result{}, err
	}

	errs := e.decode(&m, in.Payload, partial)
	if !errs.Empty() {
		return helper.Invalid(errs), nil
	}
	if err := e.storeUpload(ctx, &m, in.Upload); err != nil {
		return helper.Result{}, err
	}

	if res, done, err := e.save(ctx, &m, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(&m).Error
	}); done {
		return res, err
	}
	return e.reload(ctx, id, helper.Updated)
}

func (e *Endpoint[M]) Destroy(ctx context.Context, id uint) (helper.Result, error) {
	m, err := e.load(e.deps.Conn(ctx), id, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NotFound(), nil
	}
	if err != nil {
		return helper.Result{}, err
	}
	err = e.deps.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		if e.cfg.BeforeDelete != nil {
			if err := e.cfg.BeforeDelete(tx, &m); err != nil {
				return err
			}
		}
		return tx.Delete(&m).Error
	})
	if errs, ok := helper.AsValidationError(err); ok {
		return helper.Invalid(errs), nil
	}
	if err != nil {
		return helper.Result{}, err
	}
	return helper.Deleted(), nil
}

/* ===============================
   Internals
=================================*/

// decode checks required fields, decodes the payload onto m and runs tag validation.
func (e *Endpoint[M]) decode(m *M, p helper.Payload, partial bool) helper.FieldErrors {
	errs := helper.RequiredErrors(p, e.cfg.Required, partial)
	if e.cfg.Upload != nil {
		// the upload field is filled from the file part, never from the form value
		delete(p, e.cfg.Upload.Field)
	}
	errs.MergeNew(helper.ApplyPayload(m, p))
	errs.MergeNew(helper.ValidateStruct(m))
	return errs
}

func (e *Endpoint[M]) storeUpload(ctx context.Context, m *M, up *oss.Upload) error {
	if up == nil || e.cfg.Upload == nil {
		return nil
	}
	if e.deps.Blob == nil {
		return errors.New(e.cfg.Name + ": no blob storage configured")
	}
	path, err := up.Store(ctx, e.deps.Blob)
	if err != nil {
		return err
	}
	p := helper.Payload{}
	p.Set(e.cfg.Upload.Field, path)
	if errs := helper.ApplyPayload(m, p); !errs.Empty() {
		return errors.New(e.cfg.Name + ": upload field " + e.cfg.Upload.Field + " is not a string column")
	}
	return nil
}

// save runs Check, write and AfterSave in one transaction.
// done is true when the result is final (validation failure or error).
func (e *Endpoint[M]) save(ctx context.Context, m *M, write func(tx *gorm.DB) error) (helper.Result, bool, error) {
	err := e.deps.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		if e.cfg.Check != nil {
			if errs := e.cfg.Check(tx, m); !errs.Empty() {
				return helper.NewValidationError(errs)
			}
		}
		if err := write(tx); err != nil {
			return err
		}
		if e.cfg.AfterSave != nil {
			return e.cfg.AfterSave(tx, m)
		}
		return nil
	})
	if err == nil {
		return helper.Result{}, false, nil
	}
	if errs, ok := helper.AsValidationError(err); ok {
		return helper.Invalid(errs), true, nil
	}
	if IsDuplicateKey(err) {
		log.Warn().Err(err).Str("entity", e.cfg.Name).Msg("unique violation on write")
		return helper.Invalid(e.duplicateErrors(ctx, m)), true, nil
	}
	return helper.Result{}, true, err
}

// duplicateErrors re-runs Check outside the aborted transaction to name the field.
func (e *Endpoint[M]) duplicateErrors(ctx context.Context, m *M) helper.FieldErrors {
	if e.cfg.Check != nil {
		if errs := e.cfg.Check(e.deps.Conn(ctx), m); !errs.Empty() {
			return errs
		}
	}
	return helper.FieldErrors{"non_field_errors": {MsgDuplicate}}
}

func (e *Endpoint[M]) reload(ctx context.Context, id uint, wrap func(any) helper.Result) (helper.Result, error) {
	m, err := e.load(e.deps.Conn(ctx), id, true)
	if err != nil {
		return helper.Result{}, err
	}
	return wrap(e.project(m)), nil
}

func (e *Endpoint[M]) load(db *gorm.DB, id uint, withPreload bool) (M, error) {
	var m M
	if id == 0 {
		return m, gorm.ErrRecordNotFound
	}
	q := db
	if withPreload {
		for _, rel := range e.cfg.Preload {
			q = q.Preload(rel)
		}
	}
	err := q.Where("id = ?", id).Take(&m).Error
	return m, err
}

func (e *Endpoint[M]) project(m M) any {
	if e.cfg.Project != nil {
		return e.cfg.Project(&m)
	}
	return m
}

func (e *Endpoint[M]) projectAll(rows []M) []any {
	out := make([]any, 0, len(rows))
	for i := range rows {
		out = append(out, e.project(rows[i]))
	}
	return out
}

// sortColumns defaults the whitelist to every column of the model, keyed by json name.
func (e *Endpoint[M]) sortColumns(db *gorm.DB) map[string]string {
	e.sortOnce.Do(func() {
		e.sortable = map[string]string{}
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(new(M)); err != nil {
			log.Error().Err(err).Str("entity", e.cfg.Name).Msg("parse model schema")
			return
		}
		e.table = stmt.Schema.Table
		for _, f := range stmt.Schema.Fields {
			if f.DBName == "" {
				continue
			}
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = f.DBName
			}
			e.sortable[name] = e.table + "." + f.DBName
		}
		for k, v := range e.cfg.Sortable {
			e.sortable[k] = v
		}
		if _, ok := e.sortable["id"]; !ok {
			e.sortable["id"] = e.table + ".id"
		}
	})
	return e.sortable
}
