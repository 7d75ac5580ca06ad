// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

// Package validators provides structural validation of schema entries.
//
// A schema is checked once, when it is loaded, so that every later use of a
// FieldSpec can rely on a non-empty unique name and a known type tag:
//   - Validator: generic interface to validate arbitrary values, optionally
//     restricted to a subset of named checks.
//   - SchemaValidator: Validator for models.FieldSpec values and slices of
//     them, backed by go-playground/validator struct tags.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named checks.
	Validate(context.Context, any, ...string) error
}
