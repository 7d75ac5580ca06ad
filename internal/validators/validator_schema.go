// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

package validators

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kevingerman/pianoman/models"
)

// Named checks accepted by SchemaValidator.Validate.
const (
	FieldName       = "name"
	FieldType       = "type"
	FieldUniqueness = "uniqueness"
)

// SchemaValidator checks FieldSpecs against the `validate` struct tags of
// models.FieldSpec and, for whole schemas, name uniqueness.
type SchemaValidator struct {
	validate *validator.Validate
}

// NewSchemaValidator returns a Validator for models.FieldSpec,
// *models.FieldSpec and []models.FieldSpec values.
func NewSchemaValidator() Validator {
	return &SchemaValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *SchemaValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FieldSpec:
		return v.validateFieldSpec(ctx, value, fields...)
	case *models.FieldSpec:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateFieldSpec(ctx, *value, fields...)

	case []models.FieldSpec:
		return v.validateFieldSpecs(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SchemaValidator) validateFieldSpec(ctx context.Context, spec models.FieldSpec, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldType}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := v.validate.VarCtx(ctx, spec.Name, "required"); err != nil {
				return ErrMissingName
			}
		case FieldType:
			if err := v.validate.StructPartialCtx(ctx, spec, "Type"); err != nil {
				return fmt.Errorf("%w %q for field %q", ErrUnknownFieldType, spec.Type, spec.Name)
			}
		case FieldUniqueness:
			// only meaningful for a whole schema
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateFieldSpecs checks every entry and reports all problems at once.
func (v *SchemaValidator) validateFieldSpecs(ctx context.Context, specs []models.FieldSpec, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldType, FieldUniqueness}
	}

	var errs []error
	for i, spec := range specs {
		if err := v.validateFieldSpec(ctx, spec, fields...); err != nil {
			errs = append(errs, fmt.Errorf("validation error at index %d: %w", i, err))
		}
	}

	if contains(fields, FieldUniqueness) {
		seen := make(map[string]int, len(specs))
		for i, spec := range specs {
			if spec.Name == "" {
				continue
			}
			if first, ok := seen[spec.Name]; ok {
				errs = append(errs, fmt.Errorf("%w %q at index %d (first declared at %d)",
					ErrDuplicateField, spec.Name, i, first))
				continue
			}
			seen[spec.Name] = i
		}
	}

	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
