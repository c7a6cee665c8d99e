// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator implements [Validator] on top of go-playground/validator
// using the `validate` struct tags of request models.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator builds a validator that reports fields by their JSON
// name and knows the custom "max_bytes" rule.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// bcrypt only looks at the first 72 bytes, rune counting is not enough
	_ = v.RegisterValidation("max_bytes", validateMaxBytes)

	return &RequestValidator{v: v}
}

// Validate checks obj, which must be a struct or a pointer to one.
func (r *RequestValidator) Validate(ctx context.Context, obj any) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	err := r.v.StructCtx(ctx, obj)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	result := &ValidationError{Fields: make(map[string]string, len(fieldErrors))}
	for _, e := range fieldErrors {
		result.Fields[e.Field()] = validationMessage(e)
	}

	return result
}

func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
	case "max_bytes":
		return fmt.Sprintf("%s must be at most %s bytes long", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
