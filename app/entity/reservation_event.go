package entity

import "time"

const (
	EventDispatchPending int32 = 1
	EventDispatchSuccess int32 = 10
	EventDispatchFailed  int32 = 20
)

// ReservationEvent is an outbox row. It is written in the same transaction
// as the reservation state change it describes and published to the broker
// by the events dispatch job.
type ReservationEvent struct {
	ID uint64

	ReservationID string

	EventType string

	OldStatus *int32
	NewStatus int32

	PayloadJSON string

	DispatchStatus   int32
	DispatchAttempts int32
	DispatchNextAt   *time.Time
	DispatchLastErr  *string

	CreatedAt time.Time
}
