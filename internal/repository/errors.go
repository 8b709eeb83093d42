// Package repository implements MySQL-backed persistence for the
// reservation site. Sentinel errors defined here let handlers map
// failure scenarios onto HTTP status codes without inspecting driver
// error strings.
package repository

import "errors"

// ErrNotFound is returned when a record does not exist. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when creating a staff user with an email
// that is already registered. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
