// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks forms, field definitions, credentials and
// submissions before they reach storage.
//
// A Validator accepts optional field names that restrict which checks run,
// so callers can validate a partial model (e.g. only the title of a form
// that is about to receive generated ids).
package validators

import "context"

// Validator validates a domain value. The variadic names select which
// checks run; none means the default set for that type.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
