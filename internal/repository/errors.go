package repository

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrConnection matches every *ConnectionError via errors.Is.
	ErrConnection = errors.New("database connection failed")
	// ErrStatement matches every *StatementError via errors.Is.
	ErrStatement = errors.New("database statement failed")
)

// ConnectionError means the database could not be reached or refused the session.
type ConnectionError struct {
	Driver string
	Target string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s %s: %v", e.Driver, e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// StatementError carries the diagnostic of a statement the database rejected or failed.
type StatementError struct {
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("execute %q: %v", e.Statement, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

func (e *StatementError) Is(target error) bool { return target == ErrStatement }
