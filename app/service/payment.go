package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/gateway"
	"github.com/seucantinho/ms-go-reservations/app/repository"
	"github.com/seucantinho/ms-go-reservations/config"
)

type paymentReader interface {
	FindByID(ctx context.Context, id string) (*entity.Payment, error)
	ListByReservation(ctx context.Context, reservationID string) ([]*entity.Payment, error)
}

type ProcessPaymentInput struct {
	ReservationID string
	AmountCents   int64
	Method        int32

	CardNumber string
	CardHolder string
	CVV        string
	PixKey     string
}

// PaymentService validates settlement attempts and drives reservation
// transitions through ReservationService.ApplyPaymentOutcome. The
// dependency is one-way: the lifecycle never calls back into settlement.
type PaymentService struct {
	store        transactor
	payments     paymentReader
	reservations *ReservationService
	gateways     *gateway.Registry
	bookingCfg   config.BookingConfig
}

func NewPaymentService(
	store transactor,
	payments paymentReader,
	reservations *ReservationService,
	gateways *gateway.Registry,
	bookingCfg config.BookingConfig,
) *PaymentService {
	return &PaymentService{
		store:        store,
		payments:     payments,
		reservations: reservations,
		gateways:     gateways,
		bookingCfg:   bookingCfg,
	}
}

// ProcessPayment runs one settlement attempt. Exactly one Payment row is
// written per attempt that reaches the gateway, SUCCEEDED or FAILED. The
// read-validate-write sequence around the reservation runs in a single
// transaction with the reservation row locked, so two concurrent attempts
// cannot both settle.
//
// The gateway charge itself happens outside the transaction; the state
// revalidation afterwards, under the lock, is what guards against a
// double settlement slipping through between charge and commit.
func (s *PaymentService) ProcessPayment(ctx context.Context, input ProcessPaymentInput) (*entity.Payment, error) {
	reservationID := strings.TrimSpace(input.ReservationID)
	if reservationID == "" {
		return nil, fmt.Errorf("%w: reservation_id is required", ErrInvalidRequest)
	}
	if input.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount_cents must be > 0", ErrInvalidRequest)
	}
	if !entity.ValidPaymentMethod(input.Method) {
		return nil, fmt.Errorf("%w: unknown payment method", ErrInvalidRequest)
	}

	gw, err := s.gateways.Get(input.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported payment method", ErrInvalidRequest)
	}

	// Reject hopeless attempts before contacting the gateway. The checks
	// repeat under the row lock before anything is written.
	reservation, err := s.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.validateReservationState(reservation, input.AmountCents); err != nil {
		return nil, err
	}

	outcome, gatewayErr := s.charge(ctx, gw, reservationID, input)

	now := time.Now().UTC()
	payment := &entity.Payment{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		AmountCents:   input.AmountCents,
		Method:        input.Method,
		ProcessedAt:   now,
	}

	if gatewayErr != nil || outcome != gateway.OutcomeSucceeded {
		payment.Status = entity.PaymentStatusFailed
		err := s.store.InTx(ctx, func(tx *repository.Tx) error {
			return tx.Payments.Create(ctx, payment)
		})
		if err != nil {
			return nil, err
		}
		return payment, ErrGatewayFailure
	}

	payment.Status = entity.PaymentStatusSucceeded
	err = s.store.InTx(ctx, func(tx *repository.Tx) error {
		locked, err := tx.Reservations.FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if err := s.validateReservationState(locked, input.AmountCents); err != nil {
			return err
		}

		if err := tx.Payments.Create(ctx, payment); err != nil {
			return err
		}

		// The payments ledger and the cumulative balance on the
		// reservation row must agree before the transition applies.
		settledTotal, err := tx.Payments.SumSucceededByReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		if settledTotal != locked.PaidCents+input.AmountCents {
			return fmt.Errorf("paid balance mismatch for reservation %s: ledger %d, row %d",
				reservationID, settledTotal, locked.PaidCents+input.AmountCents)
		}

		_, err = s.reservations.ApplyPaymentOutcome(ctx, tx, locked, input.AmountCents, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (*entity.Payment, error) {
	payment, err := s.payments.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentService) ListByReservation(ctx context.Context, reservationID string) ([]*entity.Payment, error) {
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return nil, fmt.Errorf("%w: reservation_id is required", ErrInvalidRequest)
	}
	return s.payments.ListByReservation(ctx, reservationID)
}

func (s *PaymentService) validateReservationState(reservation *entity.Reservation, amountCents int64) error {
	if reservation == nil {
		return ErrReservationNotFound
	}

	switch reservation.Status {
	case entity.ReservationStatusSettled:
		return ErrAlreadySettled
	case entity.ReservationStatusCancelled:
		return ErrReservationCancelled
	}

	outstanding := reservation.TotalCents - reservation.PaidCents
	if amountCents > outstanding {
		return ErrAmountMismatch
	}
	if reservation.Status == entity.ReservationStatusPending &&
		amountCents < outstanding &&
		amountCents < s.reservations.minSignalCents(reservation.TotalCents) {
		return ErrInsufficientAmount
	}
	return nil
}

// charge invokes the gateway bounded by the configured timeout. A timeout
// or transport error counts as FAILED so the attempt is never left
// unreconciled.
func (s *PaymentService) charge(ctx context.Context, gw gateway.Gateway, reservationID string, input ProcessPaymentInput) (gateway.Outcome, error) {
	timeout := s.bookingCfg.GatewayTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	chargeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return gw.Charge(chargeCtx, &gateway.ChargeInput{
		ReservationID: reservationID,
		AmountCents:   input.AmountCents,
		CardNumber:    input.CardNumber,
		CardHolder:    input.CardHolder,
		CVV:           input.CVV,
		PixKey:        input.PixKey,
	})
}
