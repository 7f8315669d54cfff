// Package validate checks request DTOs with struct tags and turns failures
// into client-facing messages.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/estate-office/internal/patch"
)

// Error is a validation failure whose message is safe to return to clients.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Failf builds an *Error for field with a formatted message.
func Failf(field, format string, args ...any) error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a validation *Error.
func IsValidation(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

var std = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Patch fields validate as pointers: nil when absent or null, so
	// omitempty skips them while a present zero still reaches gt/gte.
	v.RegisterCustomTypeFunc(patchValue,
		patch.Field[string]{}, patch.Field[float64]{}, patch.Field[int64]{})

	if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseTime(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}

	return v
}

func patchValue(v reflect.Value) any {
	switch f := v.Interface().(type) {
	case patch.Field[string]:
		if f.Present() {
			return &f.Value
		}
		return (*string)(nil)
	case patch.Field[float64]:
		if f.Present() {
			return &f.Value
		}
		return (*float64)(nil)
	case patch.Field[int64]:
		if f.Present() {
			return &f.Value
		}
		return (*int64)(nil)
	}
	return nil
}

// Struct validates s and returns the first failure as an *Error.
func Struct(s any) error {
	err := std.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating: %w", err)
	}

	fe := verrs[0]
	return &Error{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "Missing required field: " + field
	case "gt":
		return label(field) + " must be a positive number"
	case "gte":
		return label(field) + " must be a non-negative number"
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label(field), fe.Param())
	case "len":
		if fe.Param() == "3" {
			return label(field) + " must be a 3-letter code"
		}
		return fmt.Sprintf("%s must be %s characters long", label(field), fe.Param())
	case "min":
		if fe.Param() == "1" {
			return label(field) + " cannot be empty"
		}
		return fmt.Sprintf("%s must be at least %s characters long", label(field), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label(field), fe.Param())
	case "oneof":
		if field == "typeofClient" {
			return `Invalid client type. Must be "tenant" or "renter"`
		}
		return fmt.Sprintf("%s must be one of: %s", label(field), fe.Param())
	case "isodate":
		return "Invalid " + field + " format"
	}
	return fmt.Sprintf("Invalid value for %s", field)
}

// labels overrides the derived label for fields whose name reads poorly.
var labels = map[string]string{
	"rental_period_months": "Rental period",
	"client_id":            "Client ID",
	"agent_id":             "Agent ID",
	"contact_id":           "Contact ID",
	"estate_id":            "Estate ID",
	"tenant_id":            "Tenant ID",
	"renter_id":            "Renter ID",
}

// label turns a JSON name like "post_name" into "Post name".
func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// timeLayouts are the accepted ISO-8601 renderings, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO-8601 date or timestamp. Values without a zone
// are taken as UTC; the result is always in UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Time parses s for field, reporting a failure as an *Error.
func Time(field, s string) (time.Time, error) {
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, Failf(field, "Invalid %s format", field)
	}
	return t, nil
}

// RequiredTime records col from a date field when it carries a value.
func RequiredTime(c *patch.Changes, col string, f patch.Field[string]) error {
	if !f.Present() {
		return nil
	}
	t, err := Time(col, f.Value)
	if err != nil {
		return err
	}
	c.Add(col, t)
	return nil
}

// NullableTime records col from a date field, including an explicit null.
func NullableTime(c *patch.Changes, col string, f patch.Field[string]) error {
	if f.Set && f.Null {
		c.Add(col, nil)
		return nil
	}
	return RequiredTime(c, col, f)
}
