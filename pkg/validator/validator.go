package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/medtrack/consult-api/internal/model"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
)

// Accepted therapist markers beyond the literal prefixes: a title word
// followed by a separator and at least one more character.
var therapistTitleRe = regexp.MustCompile(`^(Dr|Dra)[.\s].+`)

// Validator wraps go-playground/validator with the domain rules of this
// service. Struct validation is batch: every failing field is reported.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report json field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(dateToTime, model.Date{})

	// Registration cannot fail for valid funcs.
	_ = v.RegisterValidation("therapist_title", validTherapistTitle)
	_ = v.RegisterValidation("notpast", validNotPast)

	return &Validator{validate: v}
}

// Struct validates s and returns one FieldError per failing field, or nil
// when s is valid. Nil pointer fields tagged omitempty are skipped, which
// gives partial-update requests "validate only what was supplied" semantics.
func (cv *Validator) Struct(s interface{}) []apperrors.FieldError {
	err := cv.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperrors.FieldError{{Field: "request", Reason: err.Error()}}
	}

	fields := make([]apperrors.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, apperrors.FieldError{
			Field:  e.Field(),
			Reason: reasonFor(e),
		})
	}
	return fields
}

func reasonFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "therapist_title":
		return "must start with a professional title such as 'Dr.' or 'Dra.'"
	case "notpast":
		return "must not be in the past"
	default:
		return "is invalid"
	}
}

func dateToTime(field reflect.Value) interface{} {
	if d, ok := field.Interface().(model.Date); ok {
		return d.Time
	}
	return nil
}

func validTherapistTitle(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if strings.HasPrefix(v, "Dr.") || strings.HasPrefix(v, "Dra.") ||
		strings.HasPrefix(v, "Dr ") || strings.HasPrefix(v, "Dra ") {
		return true
	}
	return therapistTitleRe.MatchString(v)
}

// validNotPast accepts today and future calendar dates, compared in UTC.
func validNotPast(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.Before(model.Today().Time)
}
