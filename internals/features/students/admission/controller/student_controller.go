package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"erp_backend/internals/features/base"
	"erp_backend/internals/features/students/admission/model"
	"erp_backend/internals/features/students/admission/service"
	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/oss"
)

type StudentController struct {
	deps     base.Deps
	Service  *service.StudentService
	Endpoint *base.Endpoint[model.StudentAdmission] // list, list-all, retrieve, destroy
}

func NewStudentController(deps base.Deps) *StudentController {
	return &StudentController{
		deps:    deps,
		Service: service.NewStudentService(deps),
		Endpoint: base.New(deps, base.Config[model.StudentAdmission]{
			Name:    "student",
			Search:  []string{"student_admissions.roll_number"},
			Preload: service.Preloads,
			BeforeDelete: func(tx *gorm.DB, m *model.StudentAdmission) error {
				return service.DeleteChildren(tx, m.ID)
			},
			Project: func(m *model.StudentAdmission) any {
				flat, err := service.Flatten(m)
				if err != nil {
					log.Error().Err(err).Uint("student_id", m.ID).Msg("flatten student")
					return fiber.Map{"id": m.ID}
				}
				return flat
			},
		}),
	}
}

// POST /api/student/create
func (h *StudentController) CreateStudent(c *fiber.Ctx) error {
	p, files, errs, err := readStudentInput(c)
	if err != nil {
		return err
	}
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	res, err := h.Service.Create(c.UserContext(), p, files)
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

// PATCH /api/student/:id
func (h *StudentController) PatchStudent(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("id")
	if id <= 0 {
		return helper.Respond(c, helper.NotFound())
	}
	p, files, errs, err := readStudentInput(c)
	if err != nil {
		return err
	}
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	res, err := h.Service.Patch(c.UserContext(), uint(id), p, files)
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

// GET /api/student/export
func (h *StudentController) ExportStudents(c *fiber.Ctx) error {
	f, err := service.ExportWorkbook(h.deps.Conn(c.UserContext()))
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	name := "students_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(buf.Bytes())
}

// readStudentInput reads the flat payload and, for multipart bodies, checks every
// photo and document file before anything is stored.
func readStudentInput(c *fiber.Ctx) (helper.Payload, service.Files, helper.FieldErrors, error) {
	var files service.Files
	p, err := helper.ReadPayload(c)
	if err != nil {
		if errs, ok := helper.AsValidationError(err); ok {
			return nil, files, errs, nil
		}
		return nil, files, nil, err
	}
	if !oss.IsMultipart(c) {
		return p, files, nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, files, helper.FieldErrors{"detail": {"Multipart form parse error - " + err.Error()}}, nil
	}

	errs := helper.FieldErrors{}
	files.Photos = map[string]*oss.Upload{}
	for field, fh := range oss.CollectNamedFiles(form, model.PhotoFields...) {
		up, err := oss.ReadUpload(field, fh, oss.StudentFileRule)
		if err != nil {
			if !addReject(errs, err) {
				return nil, files, nil, err
			}
			continue
		}
		files.Photos[field] = up
	}
	for _, doc := range oss.CollectDocuments(form) {
		up, err := oss.ReadUpload(documentField(doc.Index), doc.Header, oss.StudentFileRule)
		if err != nil {
			if !addReject(errs, err) {
				return nil, files, nil, err
			}
			continue
		}
		files.Documents = append(files.Documents, service.DocumentUpload{Title: doc.Title, Upload: up})
	}
	if !errs.Empty() {
		return nil, files, errs, nil
	}
	return p, files, nil, nil
}

func documentField(i int) string {
	return "document_" + strconv.Itoa(i) + "_files"
}

func addReject(errs helper.FieldErrors, err error) bool {
	var rej *oss.RejectError
	if !errors.As(err, &rej) {
		return false
	}
	errs.Add(rej.Field, rej.Message)
	return true
}
