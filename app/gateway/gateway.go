package gateway

import "context"

type Outcome int32

const (
	OutcomeSucceeded Outcome = 1
	OutcomeFailed    Outcome = 2
)

// ChargeInput carries the instrument data for one charge attempt. Only the
// fields matching the method are inspected by a given gateway.
type ChargeInput struct {
	ReservationID string
	AmountCents   int64

	CardNumber string
	CardHolder string
	CVV        string

	PixKey string
}

// Gateway is the binary charge contract the settlement core consumes: a
// charge either succeeds or fails. Callers bound every Charge with a
// timeout; an expired context counts as a failure.
type Gateway interface {
	Code() int32
	Charge(ctx context.Context, input *ChargeInput) (Outcome, error)
}
