package service

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrSpaceNotFound        = errors.New("space not found")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrUnavailable          = errors.New("space is not available for the requested window")
	ErrIllegalTransition    = errors.New("illegal reservation status transition")
	ErrAlreadySettled       = errors.New("reservation is already settled")
	ErrReservationCancelled = errors.New("reservation is cancelled")
	ErrAmountMismatch       = errors.New("payment amount exceeds the outstanding balance")
	ErrInsufficientAmount   = errors.New("payment amount is below the minimum signal")
	ErrGatewayFailure       = errors.New("payment was rejected by the gateway")
	ErrSpaceInUse           = errors.New("space has active or future reservations")
	ErrClientAlreadyExists  = errors.New("client already exists")
)
