package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists")
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, reservation_id, amount_cents, method, status, processed_at`

// Create inserts one payment record. Payments are append-only; there is no
// update path.
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, reservation_id, amount_cents, method, status, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.ReservationID,
		payment.AmountCents,
		payment.Method,
		payment.Status,
		payment.ProcessedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPaymentAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`

	payment := &entity.Payment{}
	if err := scanPayment(r.db.QueryRowContext(ctx, query, id), payment); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *PaymentRepository) ListByReservation(ctx context.Context, reservationID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE reservation_id = ?
		ORDER BY processed_at ASC`

	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*entity.Payment, 0)
	for rows.Next() {
		item := &entity.Payment{}
		if err := scanPayment(rows, item); err != nil {
			return nil, err
		}
		payments = append(payments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// SumSucceededByReservation totals the SUCCEEDED payments for a
// reservation. Inside a transaction that holds the reservation row lock it
// is a consistent read of the paid balance.
func (r *PaymentRepository) SumSucceededByReservation(ctx context.Context, reservationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE reservation_id = ? AND status = ?
	`

	var total int64
	err := r.db.QueryRowContext(ctx, query, reservationID, entity.PaymentStatusSucceeded).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func scanPayment(scan rowScanner, payment *entity.Payment) error {
	return scan.Scan(
		&payment.ID,
		&payment.ReservationID,
		&payment.AmountCents,
		&payment.Method,
		&payment.Status,
		&payment.ProcessedAt,
	)
}
