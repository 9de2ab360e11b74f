// Package common provides shared utilities and types used across the
// application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors. Data-quality problems in uploaded ledgers are
// never errors: they surface as warnings on the integrity report. Errors
// here indicate caller or environment faults.
var (
	// Storage errors.
	ErrNotFound          = errors.New("not found")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Ingest errors.
	ErrEmptyLedger    = errors.New("ledger contains no data rows")
	ErrMissingColumn  = errors.New("required column not found")
	ErrUnsupportedExt = errors.New("unsupported ledger file type")

	// Workflow errors.
	ErrLedgerBlocked = errors.New("ledger has unresolved blocking warnings")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
