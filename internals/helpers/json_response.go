// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Envelope messages
=================================*/

const (
	MsgSuccess          = "Success"
	MsgCreated          = "Record created successfully."
	MsgUpdated          = "Record updated successfully."
	MsgDeleted          = "Record deleted successfully."
	MsgNotFound         = "Record not found."
	MsgValidationFailed = "Validation failed"
)

/* ===============================
   Result (endpoint → transport)
=================================*/

type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultCreated
	ResultUpdated
	ResultDeleted
	ResultNotFound
	ResultValidation
)

// Result is what endpoint methods return. Respond turns it into the envelope.
type Result struct {
	Kind    ResultKind
	Message string
	Data    any
	Errors  FieldErrors
	Meta    fiber.Map // count, page, pageSize, no_of_pages
}

func OK(data any) Result {
	return Result{Kind: ResultOK, Data: data}
}

func Created(data any) Result {
	return Result{Kind: ResultCreated, Data: data}
}

func Updated(data any) Result {
	return Result{Kind: ResultUpdated, Data: data}
}

func Deleted() Result {
	return Result{Kind: ResultDeleted}
}

func NotFound() Result {
	return Result{Kind: ResultNotFound}
}

func Invalid(e FieldErrors) Result {
	return Result{Kind: ResultValidation, Errors: e}
}

// WithMessage overrides the default message of the result kind.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

func (r Result) WithMeta(m fiber.Map) Result {
	r.Meta = m
	return r
}

// Status is the in-body status code.
func (r Result) Status() int {
	switch r.Kind {
	case ResultCreated:
		return fiber.StatusCreated
	case ResultDeleted:
		return fiber.StatusNoContent
	case ResultNotFound:
		return fiber.StatusNotFound
	case ResultValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusOK
	}
}

func (r Result) message() string {
	if strings.TrimSpace(r.Message) != "" {
		return r.Message
	}
	switch r.Kind {
	case ResultCreated:
		return MsgCreated
	case ResultUpdated:
		return MsgUpdated
	case ResultDeleted:
		return MsgDeleted
	case ResultNotFound:
		return MsgNotFound
	case ResultValidation:
		return MsgValidationFailed
	default:
		return MsgSuccess
	}
}

// Body builds the envelope map for r.
func (r Result) Body() fiber.Map {
	body := fiber.Map{
		"message": r.message(),
		"status":  r.Status(),
	}
	switch r.Kind {
	case ResultOK, ResultCreated, ResultUpdated:
		body["data"] = r.Data
	case ResultValidation:
		errs := r.Errors
		if errs == nil {
			errs = FieldErrors{}
		}
		body["errors"] = errs
	}
	for k, v := range r.Meta {
		body[k] = v
	}
	return body
}

// Respond writes r with HTTP 200; callers branch on the body status.
func Respond(c *fiber.Ctx, r Result) error {
	return c.Status(fiber.StatusOK).JSON(r.Body())
}

/* ===============================
   Shortcuts
=================================*/

func JsonOK(c *fiber.Ctx, data any) error { return Respond(c, OK(data)) }

func JsonNotFound(c *fiber.Ctx) error { return Respond(c, NotFound()) }

func JsonValidationError(c *fiber.Ctx, fieldErrors FieldErrors) error {
	return Respond(c, Invalid(fieldErrors))
}

// JsonError is used for transport-level failures (auth, panics, 5xx).
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.NewError(status).Message
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"status":  status,
	})
}
