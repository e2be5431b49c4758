package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

var (
	ErrReservationNotFound      = errors.New("reservation not found")
	ErrReservationAlreadyExists = errors.New("reservation already exists")
)

type ReservationFilter struct {
	ClientID  string
	SpaceID   string
	HasStatus bool
	Status    int32
	Limit     int32
	Offset    int32
}

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, space_id, client_id, starts_at, ends_at,
	total_cents, paid_cents, status, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, space_id, client_id, starts_at, ends_at,
			total_cents, paid_cents, status, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.SpaceID,
		reservation.ClientID,
		reservation.Window.Start,
		reservation.Window.End,
		reservation.TotalCents,
		reservation.PaidCents,
		reservation.Status,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrReservationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations SET
			paid_cents = ?,
			status = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		reservation.PaidCents,
		reservation.Status,
		reservation.UpdatedAt,
		reservation.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return r.findOne(ctx, query, id)
}

// FindByIDForUpdate locks the reservation row for the duration of the
// enclosing transaction. Callers outside a transaction must not use it.
func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	return r.findOne(ctx, query, id)
}

// FindOverlapping returns reservations for spaceID in one of the given
// statuses whose [starts_at, ends_at) window shares an instant with the
// candidate window. The predicate (starts_at < end AND ends_at > start)
// matches entity.TimeWindow.Overlaps exactly. With forUpdate set the
// matching rows are locked, serializing concurrent conflict checks for
// the same space.
func (r *ReservationRepository) FindOverlapping(
	ctx context.Context,
	spaceID string,
	window entity.TimeWindow,
	statuses []int32,
	forUpdate bool,
) ([]*entity.Reservation, error) {
	if len(statuses) == 0 {
		return []*entity.Reservation{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(statuses)), ", ")
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE space_id = ?
		  AND status IN (` + placeholders + `)
		  AND starts_at < ?
		  AND ends_at > ?
		ORDER BY starts_at ASC`
	if forUpdate {
		query += " FOR UPDATE"
	}

	args := make([]interface{}, 0, len(statuses)+3)
	args = append(args, spaceID)
	for _, status := range statuses {
		args = append(args, status)
	}
	args = append(args, window.End, window.Start)

	return r.findMany(ctx, query, args...)
}

func (r *ReservationRepository) List(ctx context.Context, filter ReservationFilter) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations`

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)

	if strings.TrimSpace(filter.ClientID) != "" {
		conditions = append(conditions, "client_id = ?")
		args = append(args, filter.ClientID)
	}
	if strings.TrimSpace(filter.SpaceID) != "" {
		conditions = append(conditions, "space_id = ?")
		args = append(args, filter.SpaceID)
	}
	if filter.HasStatus {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY starts_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	return r.findMany(ctx, query, args...)
}

// ListStalePending returns PENDING reservations whose window already
// started, for the expiry job.
func (r *ReservationRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int32) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status = ?
		  AND starts_at <= ?
		ORDER BY starts_at ASC
		LIMIT ?`

	return r.findMany(ctx, query, entity.ReservationStatusPending, cutoff, limit)
}

// HasHoldingFrom reports whether the space has any resource-holding
// reservation whose window ends at or after the given instant. Used by the
// space directory to guard deletions.
func (r *ReservationRepository) HasHoldingFrom(ctx context.Context, spaceID string, from time.Time) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE space_id = ?
		  AND status IN (?, ?)
		  AND ends_at >= ?
	`

	var count int64
	err := r.db.QueryRowContext(ctx, query,
		spaceID,
		entity.ReservationStatusPartiallyPaid,
		entity.ReservationStatusSettled,
		from,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReservationRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Reservation, error) {
	reservation := &entity.Reservation{}
	if err := scanReservation(r.db.QueryRowContext(ctx, query, args...), reservation); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *ReservationRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]*entity.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*entity.Reservation, 0)
	for rows.Next() {
		item := &entity.Reservation{}
		if err := scanReservation(rows, item); err != nil {
			return nil, err
		}
		reservations = append(reservations, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

func scanReservation(scan rowScanner, reservation *entity.Reservation) error {
	return scan.Scan(
		&reservation.ID,
		&reservation.SpaceID,
		&reservation.ClientID,
		&reservation.Window.Start,
		&reservation.Window.End,
		&reservation.TotalCents,
		&reservation.PaidCents,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
}
