// Package repository contains the data access layer. This file defines
// sentinel errors reused across repositories so handlers can map
// failure modes to HTTP codes without string matching.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource outside their scope. Handlers translate it to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as cancelling an already cancelled match.
// Handlers translate it to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrNoChange indicates an UPDATE attempted to set fields equal to the
// current values.
var ErrNoChange = errors.New("no change")
