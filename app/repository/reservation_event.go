package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

var ErrEventNotFound = errors.New("reservation event not found")

type ReservationEventRepository struct {
	db DBTX
}

func NewReservationEventRepository(db DBTX) *ReservationEventRepository {
	return &ReservationEventRepository{db: db}
}

func (r *ReservationEventRepository) Create(ctx context.Context, event *entity.ReservationEvent) error {
	query := `
		INSERT INTO reservation_events (
			reservation_id, event_type, old_status, new_status, payload_json,
			dispatch_status, dispatch_attempts, dispatch_next_at, dispatch_last_error,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		event.ReservationID,
		event.EventType,
		nullableInt32Value(event.OldStatus),
		event.NewStatus,
		event.PayloadJSON,
		event.DispatchStatus,
		event.DispatchAttempts,
		nullableTimeValue(event.DispatchNextAt),
		nullableStringValue(event.DispatchLastErr),
		event.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = uint64(id)
	return nil
}

func (r *ReservationEventRepository) UpdateDispatchState(ctx context.Context, event *entity.ReservationEvent) error {
	query := `
		UPDATE reservation_events SET
			dispatch_status = ?,
			dispatch_attempts = ?,
			dispatch_next_at = ?,
			dispatch_last_error = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		event.DispatchStatus,
		event.DispatchAttempts,
		nullableTimeValue(event.DispatchNextAt),
		nullableStringValue(event.DispatchLastErr),
		event.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *ReservationEventRepository) ListDueDispatch(ctx context.Context, now time.Time, limit int32) ([]*entity.ReservationEvent, error) {
	query := `
		SELECT id, reservation_id, event_type, old_status, new_status, payload_json,
			dispatch_status, dispatch_attempts, dispatch_next_at, dispatch_last_error,
			created_at
		FROM reservation_events
		WHERE dispatch_status = ?
		  AND dispatch_next_at IS NOT NULL
		  AND dispatch_next_at <= ?
		ORDER BY dispatch_next_at ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, entity.EventDispatchPending, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*entity.ReservationEvent, 0)
	for rows.Next() {
		item := &entity.ReservationEvent{}
		var oldStatus sql.NullInt32
		var nextAt sql.NullTime
		var lastErr sql.NullString

		err := rows.Scan(
			&item.ID,
			&item.ReservationID,
			&item.EventType,
			&oldStatus,
			&item.NewStatus,
			&item.PayloadJSON,
			&item.DispatchStatus,
			&item.DispatchAttempts,
			&nextAt,
			&lastErr,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		item.OldStatus = int32PtrFromNull(oldStatus)
		item.DispatchNextAt = timePtrFromNull(nextAt)
		item.DispatchLastErr = stringPtrFromNull(lastErr)
		events = append(events, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
