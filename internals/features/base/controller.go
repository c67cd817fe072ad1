package base

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	helper "erp_backend/internals/helpers"
	"erp_backend/internals/helpers/oss"
)

// Mount registers the standard routes of e under r.
//
//	POST   /        list (search, sort, paginate)
//	POST   /create  create
//	GET    /all     list-all
//	GET    /:id     retrieve
//	PUT    /:id     full update
//	PATCH  /:id     partial update
//	DELETE /:id     destroy
func (e *Endpoint[M]) Mount(r fiber.Router) {
	r.Post("/", e.HandleList)
	r.Post("/create", e.HandleCreate)
	r.Get("/all", e.HandleAll)
	r.Get("/:id<int>", e.HandleRetrieve)
	r.Put("/:id<int>", e.HandleUpdate)
	r.Patch("/:id<int>", e.HandlePartialUpdate)
	r.Delete("/:id<int>", e.HandleDestroy)
}

func (e *Endpoint[M]) HandleList(c *fiber.Ctx) error {
	p := ListParams(c, e.deps)
	res, err := e.List(c.UserContext(), p)
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

func (e *Endpoint[M]) HandleAll(c *fiber.Ctx) error {
	res, err := e.All(c.UserContext())
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

func (e *Endpoint[M]) HandleRetrieve(c *fiber.Ctx) error {
	res, err := e.Retrieve(c.UserContext(), pathID(c))
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

func (e *Endpoint[M]) HandleCreate(c *fiber.Ctx) error {
	in, errs, err := e.readInput(c)
	if err != nil {
		return err
	}
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	res, err := e.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

func (e *Endpoint[M]) HandleUpdate(c *fiber.Ctx) error { return e.handleUpdate(c, false) }

func (e *Endpoint[M]) HandlePartialUpdate(c *fiber.Ctx) error { return e.handleUpdate(c, true) }

func (e *Endpoint[M]) handleUpdate(c *fiber.Ctx, partial bool) error {
	in, errs, err := e.readInput(c)
	if err != nil {
		return err
	}
	if errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	res, err := e.Update(c.UserContext(), pathID(c), in, partial)
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

func (e *Endpoint[M]) HandleDestroy(c *fiber.Ctx) error {
	res, err := e.Destroy(c.UserContext(), pathID(c))
	if err != nil {
		return err
	}
	return helper.Respond(c, res)
}

// readInput decodes the body and, for upload endpoints, the file part.
// Body or file rejections come back as field errors.
func (e *Endpoint[M]) readInput(c *fiber.Ctx) (Input, helper.FieldErrors, error) {
	p, err := helper.ReadPayload(c)
	if err != nil {
		if errs, ok := helper.AsValidationError(err); ok {
			return Input{}, errs, nil
		}
		return Input{}, nil, err
	}
	in := Input{Payload: p}

	if e.cfg.Upload == nil || !oss.IsMultipart(c) {
		return in, nil, nil
	}
	fh, err := c.FormFile(e.cfg.Upload.Field)
	if err != nil || fh == nil {
		return in, nil, nil
	}
	up, err := oss.ReadUpload(e.cfg.Upload.Field, fh, e.cfg.Upload.Rule)
	if err != nil {
		var rej *oss.RejectError
		if errors.As(err, &rej) {
			return Input{}, helper.FieldErrors{rej.Field: {rej.Message}}, nil
		}
		return Input{}, nil, err
	}
	in.Upload = up
	return in, nil, nil
}

// ListParams parses the list body and resets page to 1 when the session's page size changed.
func ListParams(c *fiber.Ctx, deps Deps) helper.Params {
	p := helper.ParseListBody(c.Body())
	if deps.Sessions == nil {
		return p
	}
	prev, had, err := deps.Sessions.Swap(c, p.PageSize)
	if err != nil {
		log.Warn().Err(err).Msg("page size session")
		return p
	}
	if had && prev != p.PageSize {
		p.Page = helper.DefaultPage
	}
	return p
}

func pathID(c *fiber.Ctx) uint {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}
