// Package common contains shared constants, sentinel errors, and small
// helpers used across DevBoard client components. Callers should use
// errors.Is to match sentinel values.
package common

import "errors"

var (
	// Validation errors, resolved before any network call is made.
	ErrInvalidEmailAddress = errors.New(MsgInvalidEmail)
	ErrPasswordMismatch    = errors.New(MsgPasswordMismatch)
	ErrMissingResetToken   = errors.New(MsgMissingResetToken)
	ErrFieldRequired       = errors.New(MsgFieldRequired)
	ErrInvalidURL          = errors.New(MsgInvalidURL)

	// Credential errors, distinguished from generic failures so the caller
	// can avoid implying a system fault.
	ErrIncorrectCredentials = errors.New(MsgIncorrectCredentials)

	// Generic fallback for transport/server failures.
	ErrSomethingWentWrong = errors.New(MsgGenericFailure)
)
