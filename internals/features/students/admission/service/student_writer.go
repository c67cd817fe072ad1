package service

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"erp_backend/internals/features/base"
	academics "erp_backend/internals/features/master/academics/model"
	hostel "erp_backend/internals/features/master/hostel/model"
	transport "erp_backend/internals/features/master/transport/model"
	"erp_backend/internals/features/students/admission/dto"
	"erp_backend/internals/features/students/admission/model"
	houses "erp_backend/internals/features/students/houses/model"
	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/dbtime"
	"erp_backend/internals/helpers/oss"
)

const MsgRollNumberTaken = "student admission with this roll number already exists."

// RequiredOnCreate are the root fields a new student must carry.
var RequiredOnCreate = []string{"roll_number", "school_class", "section"}

// Files are the accepted multipart parts of one write.
type Files struct {
	Photos    map[string]*oss.Upload // keyed by photo field
	Documents []DocumentUpload
}

type DocumentUpload struct {
	Title  string
	Upload *oss.Upload
}

func (f Files) hasDocuments() bool {
	for _, d := range f.Documents {
		if d.Upload != nil && len(d.Upload.Data) > 0 {
			return true
		}
	}
	return false
}

type StudentService struct {
	deps base.Deps
}

func NewStudentService(deps base.Deps) *StudentService {
	return &StudentService{deps: deps}
}

/* ===============================
   Create
=================================*/

// Create fans one flat payload out to the root and all eight sub-records.
func (s *StudentService) Create(ctx context.Context, p helper.Payload, files Files) (helper.Result, error) {
	errs := helper.RequiredErrors(p, RequiredOnCreate, false)
	groupIDs, err := ParseFeeGroupIDs(p)
	if fe, ok := helper.AsValidationError(err); ok {
		errs.MergeNew(fe)
	}

	st := model.NewStudentAdmission()
	for g, part := range SplitPayload(p) {
		errs.MergeNew(helper.ApplyPayload(st.Ensure(g), part))
	}
	if st.AdmissionDate.IsZero() {
		st.AdmissionDate = dbtime.Today()
	}
	errs.MergeNew(validateAll(st))
	if !errs.Empty() {
		return helper.Invalid(errs), nil
	}

	stored, err := s.storeFiles(ctx, st, files)
	if err != nil {
		return helper.Result{}, err
	}

	err = s.deps.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		if errs := checkReferences(tx, st, nil); !errs.Empty() {
			return helper.NewValidationError(errs)
		}
		if err := tx.Omit(clause.Associations).Create(st).Error; err != nil {
			return pkgerrors.Wrap(err, "create student")
		}
		for _, g := range model.SubGroups {
			setStudentID(st.Target(g), st.ID)
			if err := tx.Omit(clause.Associations).Create(st.Target(g)).Error; err != nil {
				return pkgerrors.Wrapf(err, "create %s details", g)
			}
		}
		if len(groupIDs) > 0 {
			if _, err := MaterializeFees(tx, st.ID, groupIDs); err != nil {
				return err
			}
		}
		return createDocuments(tx, st.ID, stored.documents)
	})
	if res, done := s.failed(ctx, err, st, stored); done {
		return res, nil
	}
	if err != nil {
		return helper.Result{}, err
	}
	return s.reload(ctx, st.ID, func(d any) helper.Result {
		return helper.Created(d).WithMessage(helper.MsgSuccess)
	})
}

/* ===============================
   Patch
=================================*/

// Patch merges supplied fields. A sub-record group is written only when one of its
// fields is supplied; fee items and documents are replaced only when a non-empty list is sent.
func (s *StudentService) Patch(ctx context.Context, id uint, p helper.Payload, files Files) (helper.Result, error) {
	st, err := LoadStudent(s.deps.Conn(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NotFound(), nil
	}
	if err != nil {
		return helper.Result{}, err
	}

	errs := helper.FieldErrors{}
	for _, f := range RequiredOnCreate {
		if p.Has(f) && !p.IsNull(f) && p.Blank(f) {
			errs.Add(f, helper.MsgRequired)
		}
	}
	groupIDs, err := ParseFeeGroupIDs(p)
	if fe, ok := helper.AsValidationError(err); ok {
		errs.MergeNew(fe)
	}
	patch, perrs := dto.DecodeStudentPatch(p)
	errs.MergeNew(perrs)
	if !errs.Empty() {
		return helper.Invalid(errs), nil
	}

	supplied := patch.Supplied()
	for _, f := range model.PhotoFields {
		if files.Photos[f] != nil {
			// placeholder so the group counts as touched; replaced by the stored path
			supplied.Set(f, "")
		}
	}
	touched := map[model.Group]bool{}
	for g, part := range SplitPayload(supplied) {
		touched[g] = true
		errs.MergeNew(helper.ApplyPayload(st.Ensure(g), part))
	}
	errs.MergeNew(validateAll(st))
	if !errs.Empty() {
		return helper.Invalid(errs), nil
	}

	stored, err := s.storeFiles(ctx, st, files)
	if err != nil {
		return helper.Result{}, err
	}

	err = s.deps.Conn(ctx).Transaction(func(tx *gorm.DB) error {
		if errs := checkReferences(tx, st, supplied); !errs.Empty() {
			return helper.NewValidationError(errs)
		}
		if touched[model.GroupRoot] {
			if err := tx.Omit(clause.Associations).Save(st).Error; err != nil {
				return pkgerrors.Wrap(err, "update student")
			}
		}
		for _, g := range model.SubGroups {
			if !touched[g] {
				continue
			}
			setStudentID(st.Target(g), st.ID)
			if err := tx.Omit(clause.Associations).Save(st.Target(g)).Error; err != nil {
				return pkgerrors.Wrapf(err, "save %s details", g)
			}
		}
		if len(groupIDs) > 0 {
			if _, err := MaterializeFees(tx, st.ID, groupIDs); err != nil {
				return err
			}
		}
		if len(stored.documents) > 0 {
			if err := tx.Where("student_id = ?", st.ID).Delete(&model.StudentDocument{}).Error; err != nil {
				return pkgerrors.Wrap(err, "delete documents")
			}
			return createDocuments(tx, st.ID, stored.documents)
		}
		return nil
	})
	if res, done := s.failed(ctx, err, st, stored); done {
		return res, nil
	}
	if err != nil {
		return helper.Result{}, err
	}
	return s.reload(ctx, st.ID, helper.OK)
}

/* ===============================
   Helpers
=================================*/

// SplitPayload groups writable flat fields by sub-record. Read-only and unknown keys are dropped.
func SplitPayload(p helper.Payload) map[model.Group]helper.Payload {
	out := map[model.Group]helper.Payload{}
	for _, f := range model.FlatFields {
		raw, ok := p[f.Name]
		if !ok || f.ReadOnly {
			continue
		}
		if out[f.Group] == nil {
			out[f.Group] = helper.Payload{}
		}
		out[f.Group][f.Name] = raw
	}
	return out
}

func validateAll(st *model.StudentAdmission) helper.FieldErrors {
	errs := helper.ValidateStruct(st)
	for _, g := range model.SubGroups {
		if t := st.Target(g); t != nil {
			errs.MergeNew(helper.ValidateStruct(t))
		}
	}
	return errs
}

// checkReferences validates foreign keys and roll number uniqueness.
// With supplied set (patch), only supplied references are checked.
func checkReferences(tx *gorm.DB, st *model.StudentAdmission, supplied helper.Payload) helper.FieldErrors {
	errs := helper.FieldErrors{}
	check := func(field string, m any, id *uint) {
		if supplied != nil && !supplied.Has(field) {
			return
		}
		base.CheckExists(tx, errs, field, m, id)
	}
	check("school_class", &academics.SchoolClass{}, st.SchoolClassID)
	check("section", &academics.Section{}, st.SectionID)
	if st.Physical != nil {
		check("house", &houses.House{}, st.Physical.HouseID)
	}
	if st.Transport != nil {
		check("vehicle", &transport.Vehicle{}, st.Transport.VehicleID)
		check("pickup_point", &transport.RoutePickupPoint{}, st.Transport.RoutePointID)
	}
	if st.Hostel != nil {
		check("hostel", &hostel.Hostel{}, st.Hostel.HostelID)
		check("hostel_room", &hostel.HostelRoom{}, st.Hostel.HostelRoomID)
	}
	if supplied == nil || supplied.Has("roll_number") {
		base.CheckUnique(tx, errs, &model.StudentAdmission{}, st.ID, "roll_number",
			MsgRollNumberTaken, "roll_number = ?", st.RollNumber)
	}
	return errs
}

func setStudentID(target any, id uint) {
	switch t := target.(type) {
	case *model.StudentPersonalDetail:
		t.StudentID = id
	case *model.StudentPhysicalDetail:
		t.StudentID = id
	case *model.StudentTransportDetail:
		t.StudentID = id
	case *model.StudentHostelDetail:
		t.StudentID = id
	case *model.StudentParentDetail:
		t.StudentID = id
	case *model.StudentGuardianDetail:
		t.StudentID = id
	case *model.StudentAddressDetail:
		t.StudentID = id
	case *model.StudentBankDetail:
		t.StudentID = id
	}
}

type storedFiles struct {
	paths     []string
	documents []model.StudentDocument
}

// storeFiles saves photos onto their flat fields and documents as pending rows.
func (s *StudentService) storeFiles(ctx context.Context, st *model.StudentAdmission, files Files) (storedFiles, error) {
	var out storedFiles
	if len(files.Photos) == 0 && !files.hasDocuments() {
		return out, nil
	}
	if s.deps.Blob == nil {
		return out, errors.New("student: no blob storage configured")
	}
	for _, field := range model.PhotoFields {
		up := files.Photos[field]
		if up == nil {
			continue
		}
		path, err := up.Store(ctx, s.deps.Blob)
		if err != nil {
			s.cleanup(ctx, out)
			return storedFiles{}, pkgerrors.Wrapf(err, "store %s", field)
		}
		out.paths = append(out.paths, path)
		p := helper.Payload{}
		p.Set(field, path)
		if g, ok := model.GroupOf(field); ok {
			helper.ApplyPayload(st.Ensure(g), p)
		}
	}
	for _, d := range files.Documents {
		if d.Upload == nil || len(d.Upload.Data) == 0 {
			continue
		}
		path, err := d.Upload.Store(ctx, s.deps.Blob)
		if err != nil {
			s.cleanup(ctx, out)
			return storedFiles{}, pkgerrors.Wrapf(err, "store document %q", d.Title)
		}
		out.paths = append(out.paths, path)
		doc := path
		out.documents = append(out.documents, model.StudentDocument{Title: d.Title, Document: &doc})
	}
	return out, nil
}

func createDocuments(tx *gorm.DB, studentID uint, docs []model.StudentDocument) error {
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		docs[i].ID = 0
		docs[i].StudentID = studentID
	}
	if err := tx.Create(&docs).Error; err != nil {
		return pkgerrors.Wrap(err, "create documents")
	}
	return nil
}

// failed turns a validation or unique-race failure into a result and removes files
// stored for the aborted write.
func (s *StudentService) failed(ctx context.Context, err error, st *model.StudentAdmission, stored storedFiles) (helper.Result, bool) {
	if err == nil {
		return helper.Result{}, false
	}
	s.cleanup(ctx, stored)
	if errs, ok := helper.AsValidationError(err); ok {
		return helper.Invalid(errs), true
	}
	if base.IsDuplicateKey(err) {
		log.Warn().Err(err).Str("roll_number", st.RollNumber).Msg("student unique violation")
		errs := checkReferences(s.deps.Conn(ctx), st, helper.Payload{"roll_number": nil})
		if errs.Empty() {
			errs = helper.FieldErrors{"non_field_errors": {base.MsgDuplicate}}
		}
		return helper.Invalid(errs), true
	}
	return helper.Result{}, false
}

func (s *StudentService) cleanup(ctx context.Context, stored storedFiles) {
	for _, path := range stored.paths {
		if err := s.deps.Blob.Delete(ctx, path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("remove orphan upload")
		}
	}
}

func (s *StudentService) reload(ctx context.Context, id uint, wrap func(any) helper.Result) (helper.Result, error) {
	st, err := LoadStudent(s.deps.Conn(ctx), id)
	if err != nil {
		return helper.Result{}, pkgerrors.Wrap(err, "reload student")
	}
	flat, err := Flatten(st)
	if err != nil {
		return helper.Result{}, err
	}
	return wrap(flat), nil
}

// DeleteChildren removes sub-records, fee items and documents of a student.
func DeleteChildren(tx *gorm.DB, studentID uint) error {
	children := []any{
		&model.StudentPersonalDetail{}, &model.StudentPhysicalDetail{},
		&model.StudentTransportDetail{}, &model.StudentHostelDetail{},
		&model.StudentParentDetail{}, &model.StudentGuardianDetail{},
		&model.StudentAddressDetail{}, &model.StudentBankDetail{},
		&model.StudentFeesDetail{}, &model.StudentDocument{},
	}
	for _, c := range children {
		if err := tx.Where("student_id = ?", studentID).Delete(c).Error; err != nil {
			return pkgerrors.Wrapf(err, "delete %T", c)
		}
	}
	return nil
}
