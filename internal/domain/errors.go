// Package domain defines core types, interfaces, and errors for the catalog bridge.
package domain

import (
	"errors"
	"fmt"
)

// ErrNoActiveConnection is returned when an operation requires a remote
// connection but no session is currently active.
var ErrNoActiveConnection = errors.New("no active remote connection")

// ValidationError indicates invalid input, such as a table identifier
// missing its database qualifier.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NoSuchDatabaseError indicates the named database does not exist.
type NoSuchDatabaseError struct {
	Database string
}

func (e *NoSuchDatabaseError) Error() string {
	return fmt.Sprintf("database %q does not exist", e.Database)
}

// NoSuchTableError indicates the named table does not exist in its database.
type NoSuchTableError struct {
	Database string
	Table    string
}

func (e *NoSuchTableError) Error() string {
	return fmt.Sprintf("table %q.%q does not exist", e.Database, e.Table)
}

// TableAlreadyExistsError indicates a create collided with an existing table.
type TableAlreadyExistsError struct {
	Database string
	Table    string
}

func (e *TableAlreadyExistsError) Error() string {
	return fmt.Sprintf("table %q.%q already exists", e.Database, e.Table)
}

// DatabaseAlreadyExistsError indicates a create collided with an existing database.
type DatabaseAlreadyExistsError struct {
	Database string
}

func (e *DatabaseAlreadyExistsError) Error() string {
	return fmt.Sprintf("database %q already exists", e.Database)
}

// UnsupportedColumnTypeError indicates a remote column type code has no
// mapping in the native type model.
type UnsupportedColumnTypeError struct {
	TypeCode int
}

func (e *UnsupportedColumnTypeError) Error() string {
	return fmt.Sprintf("unsupported remote column type code %d", e.TypeCode)
}

// CatalogError is the caller-facing failure for client-originated remote
// errors. Message carries the remote error's type identity plus its message;
// the original failure is retained as the cause.
type CatalogError struct {
	Message string
	Cause   error
}

func (e *CatalogError) Error() string { return e.Message }

// Unwrap returns the original client failure.
func (e *CatalogError) Unwrap() error { return e.Cause }
