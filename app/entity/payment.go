package entity

import "time"

const (
	PaymentStatusSucceeded int32 = 1
	PaymentStatusFailed    int32 = 2
)

const (
	PaymentMethodCard   int32 = 1
	PaymentMethodPix    int32 = 2
	PaymentMethodBoleto int32 = 3
)

func ValidPaymentMethod(method int32) bool {
	switch method {
	case PaymentMethodCard, PaymentMethodPix, PaymentMethodBoleto:
		return true
	default:
		return false
	}
}

// Payment is an immutable record of one settlement attempt against a
// reservation. Corrections are new records, never edits.
type Payment struct {
	ID string

	ReservationID string

	AmountCents int64
	Method      int32
	Status      int32

	ProcessedAt time.Time
}
