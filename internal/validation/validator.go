// Package validation checks entry and amenity forms before they reach the
// engine. Failures are reported per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"society-console-backend/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 -]{6,19}$`)

// FieldError is a single failed rule on one form field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is returned by Validate when one or more fields fail.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the failing field names in report order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	return out
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	v.RegisterValidation("notblank", validateNotBlank)
	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("hhmm", validateClock)
	v.RegisterValidation("entry_type", validateEntryType)
	v.RegisterValidation("entry_status", validateEntryStatus)
	v.RegisterValidation("amenity_category", validateAmenityCategory)

	return &Validator{validate: v}
}

// Validate checks i against its struct tags. Rule failures come back as
// Errors; anything else (a nil or non-struct argument) is returned as is.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath drops the struct name from the namespace: "reviews[0].rating".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "hhmm":
		return "must be a time of day in HH:MM format"
	case "entry_type", "entry_status", "amenity_category", "oneof":
		return "has an unsupported value"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func validateEntryType(fl validator.FieldLevel) bool {
	return domain.EntryType(fl.Field().String()).Valid()
}

func validateEntryStatus(fl validator.FieldLevel) bool {
	s := domain.EntryStatus(fl.Field().String())
	for _, known := range domain.EntryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func validateAmenityCategory(fl validator.FieldLevel) bool {
	c := domain.AmenityCategory(fl.Field().String())
	for _, known := range domain.AmenityCategories {
		if c == known {
			return true
		}
	}
	return false
}
