package helper

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	MsgInvalidInteger = "A valid integer is required."
	MsgInvalidNumber  = "A valid number is required."
	MsgInvalidBoolean = "Must be a valid boolean."
	MsgInvalidString  = "Not a valid string."
	MsgInvalidList    = "Expected a list of items."
	MsgInvalidValue   = "Invalid value."
)

// Payload is a request body kept raw per field, so absent, null and typed values stay distinguishable.
type Payload map[string]json.RawMessage

// LenientDecoder lets a field type take over DecodeLenient.
type LenientDecoder interface {
	DecodeLenient(raw json.RawMessage) (bool, error)
}

// InvalidMessager is implemented by column types with their own format message.
type InvalidMessager interface {
	InvalidMessage() string
}

/* ===============================
   Reading
=================================*/

// ReadPayload reads a JSON object body, or form values (multipart / urlencoded) as JSON strings.
func ReadPayload(c *fiber.Ctx) (Payload, error) {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	p := Payload{}

	switch {
	case strings.HasPrefix(ct, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, FieldError("detail", "Multipart form parse error - "+err.Error())
		}
		for k, vals := range form.Value {
			if len(vals) == 0 {
				continue
			}
			b, _ := json.Marshal(vals[0])
			p[k] = b
		}
		return p, nil

	case strings.HasPrefix(ct, fiber.MIMEApplicationForm):
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			b, _ := json.Marshal(string(v))
			p[string(k)] = b
		})
		return p, nil
	}

	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return p, nil
	}
	if err := c.App().Config().JSONDecoder(body, &p); err != nil {
		return nil, FieldError("detail", "JSON parse error - "+err.Error())
	}
	return p, nil
}

/* ===============================
   Field access
=================================*/

func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Payload) IsNull(key string) bool {
	raw, ok := p[key]
	return ok && isNull(raw)
}

// Blank is true for absent, null and whitespace-only string values.
func (p Payload) Blank(key string) bool {
	raw, ok := p[key]
	if !ok || isNull(raw) {
		return true
	}
	if s, isStr := rawString(raw); isStr {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Text returns the value as text: strings unquoted, other JSON values verbatim.
func (p Payload) Text(key string) string {
	raw, ok := p[key]
	if !ok || isNull(raw) {
		return ""
	}
	if s, isStr := rawString(raw); isStr {
		return s
	}
	return string(raw)
}

// Set stores v re-encoded as JSON.
func (p Payload) Set(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	p[key] = b
}

// RequiredErrors reports blank required fields. With partial, absent fields are skipped.
func RequiredErrors(p Payload, required []string, partial bool) FieldErrors {
	errs := FieldErrors{}
	for _, f := range required {
		if partial && !p.Has(f) {
			continue
		}
		if p.Blank(f) {
			errs.Add(f, MsgRequired)
		}
	}
	return errs
}

/* ===============================
   Decoding into structs
=================================*/

// ApplyPayload decodes each payload key into the dst struct field with the same json name.
// Unknown keys and "id" are ignored. Type errors are collected per field.
func ApplyPayload(dst any, p Payload) FieldErrors {
	errs := FieldErrors{}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		errs.Add("non_field_errors", MsgInvalidValue)
		return errs
	}
	fields := jsonFields(rv.Elem().Type())

	for key, raw := range p {
		if key == "id" {
			continue
		}
		idx, ok := fields[key]
		if !ok {
			continue
		}
		fv := rv.Elem().FieldByIndex(idx)
		if _, err := DecodeLenient(raw, fv.Addr().Interface()); err != nil {
			errs.Add(key, InvalidMessageFor(fv.Type()))
		}
	}
	return errs
}

// DecodeLenient decodes raw into dst. A quoted value that fails is retried unquoted,
// so form strings like "12" or "true" decode into numbers and bools; a blank string
// resets dst to its zero value. set is false for null and blank values.
func DecodeLenient(raw json.RawMessage, dst any) (set bool, err error) {
	if ld, ok := dst.(LenientDecoder); ok {
		return ld.DecodeLenient(raw)
	}
	if isNull(raw) {
		resetZero(dst)
		return false, nil
	}
	firstErr := json.Unmarshal(raw, dst)
	if firstErr == nil {
		return true, nil
	}
	s, isStr := rawString(raw)
	if !isStr {
		return false, firstErr
	}
	s = strings.TrimSpace(s)
	if s == "" {
		resetZero(dst)
		return false, nil
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return false, firstErr
	}
	return true, nil
}

// InvalidMessageFor maps a Go type to its type-error message.
func InvalidMessageFor(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if m, ok := reflect.New(t).Interface().(InvalidMessager); ok {
		return m.InvalidMessage()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return MsgInvalidInteger
	case reflect.Float32, reflect.Float64:
		return MsgInvalidNumber
	case reflect.Bool:
		return MsgInvalidBoolean
	case reflect.String:
		return MsgInvalidString
	case reflect.Slice, reflect.Array:
		return MsgInvalidList
	}
	return MsgInvalidValue
}

func jsonFields(t reflect.Type) map[string][]int {
	out := map[string][]int{}
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if _, dup := out[name]; dup {
			continue
		}
		out[name] = f.Index
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func rawString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func resetZero(dst any) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}
