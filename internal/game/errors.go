package game

import "errors"

var (
	ErrSessionNotFound  = errors.New("game session not found")
	ErrNameRequired     = errors.New("firstName and lastName are required")
	ErrInvalidTargetAge = errors.New("invalid target age")
	ErrInvalidPayment   = errors.New("loan payment must be a positive amount")
	ErrInvalidDecision  = errors.New("invalid decision")
)
