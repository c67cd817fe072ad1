package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

var customMessages = map[string]string{
	"oneof": `"{v}" is not a valid choice.`,
	"email": "Enter a valid email address.",
	"gte":   "Ensure this value is greater than or equal to {p}.",
	"lte":   "Ensure this value is less than or equal to {p}.",
	"max":   "Ensure this field has no more than {p} characters.",
}

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// json tag names in error keys
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag := range customMessages {
		RegisterCustomTranslation(tag)
	}
}

// RegisterCustomTranslation overrides the english message of tag with customMessages[tag].
func RegisterCustomTranslation(tag string) {
	registerFn := func(ut.Translator) error { return nil }
	_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustom)
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	msg := customMessages[fe.Tag()]
	msg = strings.ReplaceAll(msg, "{v}", stringify(fe.Value()))
	msg = strings.ReplaceAll(msg, "{p}", fe.Param())
	return msg
}

func stringify(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	if s, ok := rv.Interface().(interface{ String() string }); ok {
		return s.String()
	}
	return fmt.Sprint(rv.Interface())
}

// ValidateStruct runs struct tags and returns translated messages keyed by json field.
func ValidateStruct(s any) FieldErrors {
	errs := FieldErrors{}
	err := Validate.Struct(s)
	if err == nil {
		return errs
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs.Add("non_field_errors", err.Error())
		return errs
	}
	for _, fe := range ve {
		errs.Add(fe.Field(), fe.Translate(Translator))
	}
	return errs
}
