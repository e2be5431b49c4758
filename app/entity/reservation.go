package entity

import "time"

const (
	ReservationStatusPending       int32 = 1
	ReservationStatusPartiallyPaid int32 = 2
	ReservationStatusSettled       int32 = 3
	ReservationStatusCancelled     int32 = 4
)

// HoldingStatuses are the statuses that count toward conflict detection.
// A PENDING reservation does not hold its space; overlapping PENDING
// reservations are allowed and the first successful payment wins.
var HoldingStatuses = []int32{ReservationStatusPartiallyPaid, ReservationStatusSettled}

func HoldsSpace(status int32) bool {
	return status == ReservationStatusPartiallyPaid || status == ReservationStatusSettled
}

// HoldsSpace reports whether the reservation blocks its space for
// conflict detection.
func (r *Reservation) HoldsSpace() bool {
	return HoldsSpace(r.Status)
}

func TerminalReservationStatus(status int32) bool {
	return status == ReservationStatusSettled || status == ReservationStatusCancelled
}

func ValidReservationStatus(status int32) bool {
	switch status {
	case ReservationStatusPending,
		ReservationStatusPartiallyPaid,
		ReservationStatusSettled,
		ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

type Reservation struct {
	ID string

	SpaceID  string
	ClientID string

	Window TimeWindow

	TotalCents int64
	PaidCents  int64

	Status int32

	CreatedAt time.Time
	UpdatedAt time.Time
}
