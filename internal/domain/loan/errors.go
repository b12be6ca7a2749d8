package loan

import "errors"

var (
	ErrNotFound           = errors.New("loan not found")
	ErrDirectDepositOnly  = errors.New("direct deposit is required to proceed")
	ErrAlreadySubmitted   = errors.New("application already submitted")
	ErrUnknownStatus      = errors.New("unrecognized loan status")
	ErrInvalidApplication = errors.New("application failed validation")
)
