// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validation runs field constraints declared as struct tags and
// defines the error shapes returned to admin callers: field-level failures
// and invariant violations that span several records.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError describes one failed constraint on one field. Rule is the
// validator tag name ("required", "max", "e164") or a storage rule
// ("unique", "check", "exists").
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s=%s", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

// Error is a generic field-validation failure. It collects every failed
// field so the caller can report them together.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field failure.
func (e *Error) Add(field, rule, param string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Rule: rule, Param: param})
}

// Field returns an Error holding a single field failure.
func Field(field, rule, param string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Rule: rule, Param: param}}}
}

// InvariantViolation is raised when a write would break a rule that spans
// several records. Message is the English text; callers localize by Code.
type InvariantViolation struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *InvariantViolation) Error() string {
	return e.Message
}

// ErrMultipleRepresentativeImages rejects a second representative image
// for the same restaurant.
var ErrMultipleRepresentativeImages = &InvariantViolation{
	Code:    "multiple_representative_images",
	Field:   "is_representative",
	Message: "only one representative image is allowed per restaurant",
}

// IsValidation reports whether err is a field or invariant failure, i.e.
// something the caller can fix by changing the input.
func IsValidation(err error) bool {
	var fieldErr *Error
	var invErr *InvariantViolation
	return errors.As(err, &fieldErr) || errors.As(err, &invErr)
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON names, which is what admin clients send.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		// Fixed-point columns are range checked as floats.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		instance = v
	})
	return instance
}

// Struct validates v against its `validate` tags. It returns nil or *Error.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate struct: %w", err)
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Add(fe.Field(), fe.Tag(), fe.Param())
	}
	return out
}
