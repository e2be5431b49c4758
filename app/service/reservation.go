package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/repository"
	"github.com/seucantinho/ms-go-reservations/config"
)

const (
	defaultListLimit  = int32(100)
	defaultBatchSize  = int32(100)
	defaultMinDeposit = int32(30)
)

type transactor interface {
	InTx(ctx context.Context, fn func(tx *repository.Tx) error) error
}

type reservationReader interface {
	FindByID(ctx context.Context, id string) (*entity.Reservation, error)
	FindOverlapping(ctx context.Context, spaceID string, window entity.TimeWindow, statuses []int32, forUpdate bool) ([]*entity.Reservation, error)
	List(ctx context.Context, filter repository.ReservationFilter) ([]*entity.Reservation, error)
	ListStalePending(ctx context.Context, cutoff time.Time, limit int32) ([]*entity.Reservation, error)
}

type spaceDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type clientDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type CreateReservationInput struct {
	SpaceID    string
	ClientID   string
	Start      time.Time
	End        time.Time
	TotalCents int64
}

type ReservationService struct {
	store        transactor
	reservations reservationReader
	spaces       spaceDirectory
	clients      clientDirectory
	bookingCfg   config.BookingConfig
}

func NewReservationService(
	store transactor,
	reservations reservationReader,
	spaces spaceDirectory,
	clients clientDirectory,
	bookingCfg config.BookingConfig,
) *ReservationService {
	return &ReservationService{
		store:        store,
		reservations: reservations,
		spaces:       spaces,
		clients:      clients,
		bookingCfg:   bookingCfg,
	}
}

// CheckAvailability reports whether the candidate window is free of
// resource-holding reservations for the space. The answer is advisory:
// Create and ApplyPaymentOutcome repeat the check under row locks.
func (s *ReservationService) CheckAvailability(ctx context.Context, spaceID string, window entity.TimeWindow) (bool, error) {
	if !window.Valid() {
		return false, fmt.Errorf("%w: %v", ErrInvalidRequest, entity.ErrInvalidWindow)
	}

	exists, err := s.spaces.Exists(ctx, spaceID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrSpaceNotFound
	}

	conflicts, err := s.reservations.FindOverlapping(ctx, spaceID, window, entity.HoldingStatuses, false)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// CreateReservation validates the request and persists a PENDING
// reservation. The availability check and the insert run in one
// transaction with the candidate conflicting rows locked, so two
// concurrent creates for the same space cannot both slip past the check.
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*entity.Reservation, error) {
	spaceID := strings.TrimSpace(input.SpaceID)
	clientID := strings.TrimSpace(input.ClientID)
	if spaceID == "" || clientID == "" {
		return nil, fmt.Errorf("%w: space_id and client_id are required", ErrInvalidRequest)
	}
	if input.TotalCents <= 0 {
		return nil, fmt.Errorf("%w: total_cents must be > 0", ErrInvalidRequest)
	}

	window, err := entity.NewTimeWindow(input.Start, input.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	now := time.Now().UTC()
	if window.Start.Before(now) {
		return nil, fmt.Errorf("%w: the event window cannot be in the past", ErrInvalidRequest)
	}

	exists, err := s.spaces.Exists(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSpaceNotFound
	}

	exists, err = s.clients.Exists(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrClientNotFound
	}

	reservation := &entity.Reservation{
		ID:         uuid.NewString(),
		SpaceID:    spaceID,
		ClientID:   clientID,
		Window:     window,
		TotalCents: input.TotalCents,
		PaidCents:  0,
		Status:     entity.ReservationStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.store.InTx(ctx, func(tx *repository.Tx) error {
		conflicts, err := tx.Reservations.FindOverlapping(ctx, spaceID, window, entity.HoldingStatuses, true)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrUnavailable
		}

		if err := tx.Reservations.Create(ctx, reservation); err != nil {
			return err
		}
		return s.recordEvent(ctx, tx, reservation, "reservation_created", nil, now)
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// CancelReservation moves a reservation to CANCELLED. Cancelling an
// already cancelled reservation is a no-op; settled reservations cannot
// be cancelled.
func (s *ReservationService) CancelReservation(ctx context.Context, id string) (*entity.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: reservation id is required", ErrInvalidRequest)
	}

	var reservation *entity.Reservation
	err := s.store.InTx(ctx, func(tx *repository.Tx) error {
		item, err := tx.Reservations.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrReservationNotFound
		}
		if item.Status == entity.ReservationStatusCancelled {
			reservation = item
			return nil
		}
		if item.Status == entity.ReservationStatusSettled {
			return fmt.Errorf("%w: settled reservations cannot be cancelled", ErrIllegalTransition)
		}

		now := time.Now().UTC()
		oldStatus := item.Status
		item.Status = entity.ReservationStatusCancelled
		item.UpdatedAt = now

		if err := tx.Reservations.Update(ctx, item); err != nil {
			return err
		}
		if err := s.recordEvent(ctx, tx, item, "reservation_cancelled", &oldStatus, now); err != nil {
			return err
		}
		reservation = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// ApplyPaymentOutcome is the only path that moves a reservation through
// its payment transitions. It must run inside the settlement transaction,
// with the reservation row already locked by the caller.
//
// Entering the resource-holding set from PENDING is the true
// serialization point for overlapping reservations: the conflict check is
// repeated here, under locks, and loses with ErrUnavailable if another
// reservation confirmed first.
func (s *ReservationService) ApplyPaymentOutcome(
	ctx context.Context,
	tx *repository.Tx,
	reservation *entity.Reservation,
	amountCents int64,
	now time.Time,
) (int32, error) {
	if reservation.Status != entity.ReservationStatusPending &&
		reservation.Status != entity.ReservationStatusPartiallyPaid {
		return 0, ErrIllegalTransition
	}

	newPaid := reservation.PaidCents + amountCents
	if newPaid > reservation.TotalCents {
		return 0, ErrAmountMismatch
	}

	var newStatus int32
	switch {
	case newPaid == reservation.TotalCents:
		newStatus = entity.ReservationStatusSettled
	case reservation.Status == entity.ReservationStatusPending && amountCents < s.minSignalCents(reservation.TotalCents):
		return 0, ErrInsufficientAmount
	default:
		newStatus = entity.ReservationStatusPartiallyPaid
	}

	enteringHold := reservation.Status == entity.ReservationStatusPending
	if enteringHold {
		conflicts, err := tx.Reservations.FindOverlapping(ctx, reservation.SpaceID, reservation.Window, entity.HoldingStatuses, true)
		if err != nil {
			return 0, err
		}
		for _, other := range conflicts {
			if other.ID != reservation.ID {
				return 0, ErrUnavailable
			}
		}
	}

	oldStatus := reservation.Status
	reservation.PaidCents = newPaid
	reservation.Status = newStatus
	reservation.UpdatedAt = now

	if err := tx.Reservations.Update(ctx, reservation); err != nil {
		return 0, err
	}

	eventType := "reservation_confirmed"
	if newStatus == entity.ReservationStatusSettled {
		eventType = "reservation_settled"
	}
	if err := s.recordEvent(ctx, tx, reservation, eventType, &oldStatus, now); err != nil {
		return 0, err
	}

	return newStatus, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*entity.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

func (s *ReservationService) ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]*entity.Reservation, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.HasStatus && !entity.ValidReservationStatus(filter.Status) {
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidRequest)
	}
	return s.reservations.List(ctx, filter)
}

func (s *ReservationService) minSignalCents(totalCents int64) int64 {
	percent := s.bookingCfg.MinDepositPercent
	if percent <= 0 {
		percent = defaultMinDeposit
	}
	// Round up so the signal never undercuts the configured fraction.
	return (totalCents*int64(percent) + 99) / 100
}

func (s *ReservationService) batchSize() int32 {
	if s.bookingCfg.JobBatchSize > 0 {
		return s.bookingCfg.JobBatchSize
	}
	return defaultBatchSize
}

func (s *ReservationService) recordEvent(
	ctx context.Context,
	tx *repository.Tx,
	reservation *entity.Reservation,
	eventType string,
	oldStatus *int32,
	now time.Time,
) error {
	payload, err := json.Marshal(map[string]interface{}{
		"reservation_id": reservation.ID,
		"space_id":       reservation.SpaceID,
		"client_id":      reservation.ClientID,
		"status":         reservation.Status,
		"total_cents":    reservation.TotalCents,
		"paid_cents":     reservation.PaidCents,
		"starts_at":      reservation.Window.Start.Format(time.RFC3339),
		"ends_at":        reservation.Window.End.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return tx.Events.Create(ctx, &entity.ReservationEvent{
		ReservationID:  reservation.ID,
		EventType:      eventType,
		OldStatus:      oldStatus,
		NewStatus:      reservation.Status,
		PayloadJSON:    string(payload),
		DispatchStatus: entity.EventDispatchPending,
		DispatchNextAt: &now,
		CreatedAt:      now,
	})
}
