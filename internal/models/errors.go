package models

import "errors"

var ErrNoRecord = errors.New("models: no matching record found")

// Authentication failures on live connections.
var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrBadSignature    = errors.New("invalid signature")
	ErrReplayedNonce   = errors.New("nonce too low")
)

// Invoice creation and settlement failures.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidStatus     = errors.New("invalid status transition")
	ErrRemoteRejected    = errors.New("broker rejected order")
	ErrRemoteUnreachable = errors.New("broker unreachable")
)
