package services

import "errors"

var (
	// ErrUnknownPrincipal means the caller's token names a user the
	// system has no record of.
	ErrUnknownPrincipal = errors.New("unknown principal")
	// ErrInsufficientRole means the caller is known but not an admin.
	ErrInsufficientRole = errors.New("insufficient role")
	ErrOrderNotFound    = errors.New("order not found")
	// ErrPaymentConflict means the order is already paid under a
	// different transaction id.
	ErrPaymentConflict = errors.New("order already paid with a different transaction")
	ErrPaymentGateway  = errors.New("payment gateway failure")
	ErrValidation      = errors.New("invalid input")
)
