package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

// ReservationTx is the slice of reservation persistence the booking
// transactions need. *ReservationRepository implements it.
type ReservationTx interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id string) (*entity.Reservation, error)
	FindByIDForUpdate(ctx context.Context, id string) (*entity.Reservation, error)
	FindOverlapping(ctx context.Context, spaceID string, window entity.TimeWindow, statuses []int32, forUpdate bool) ([]*entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
}

type PaymentTx interface {
	Create(ctx context.Context, payment *entity.Payment) error
	SumSucceededByReservation(ctx context.Context, reservationID string) (int64, error)
}

type EventTx interface {
	Create(ctx context.Context, event *entity.ReservationEvent) error
}

// Tx bundles the repositories bound to one database transaction. Service
// code receives it from Store.InTx; tests build it over in-memory fakes.
type Tx struct {
	Reservations ReservationTx
	Payments     PaymentTx
	Events       EventTx
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn inside one database transaction. Row locks taken by the
// repositories inside fn are held until commit or rollback.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	tx := &Tx{
		Reservations: NewReservationRepository(sqlTx),
		Payments:     NewPaymentRepository(sqlTx),
		Events:       NewReservationEventRepository(sqlTx),
	}

	if err := fn(tx); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
