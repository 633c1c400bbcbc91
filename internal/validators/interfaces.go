// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Rules are declared as `validate` struct tags on the request models and
// checked with go-playground/validator. Violations are reported with the
// JSON names of the offending fields.
package validators

import "context"

// Validator validates request models.
type Validator interface {

	// Validate checks the provided value. When field names are given only
	// those fields are checked.
	Validate(context.Context, any, ...string) error
}
