package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/gateway"
)

type scriptedGateway struct {
	code       int32
	outcome    gateway.Outcome
	err        error
	chargeSeen int
}

func (g *scriptedGateway) Code() int32 {
	if g.code != 0 {
		return g.code
	}
	return entity.PaymentMethodCard
}

func (g *scriptedGateway) Charge(_ context.Context, _ *gateway.ChargeInput) (gateway.Outcome, error) {
	g.chargeSeen++
	if g.err != nil {
		return gateway.OutcomeFailed, g.err
	}
	if g.outcome == 0 {
		return gateway.OutcomeSucceeded, nil
	}
	return g.outcome, nil
}

func newPaymentFixture(gw gateway.Gateway) (*bookingFixture, *PaymentService) {
	f := newBookingFixture()
	svc := NewPaymentService(f.store, f.payments, f.svc, gateway.NewRegistry(gw), testBookingConfig())
	return f, svc
}

func cardPayment(reservationID string, amountCents int64) ProcessPaymentInput {
	return ProcessPaymentInput{
		ReservationID: reservationID,
		AmountCents:   amountCents,
		Method:        entity.PaymentMethodCard,
		CardNumber:    "4242424242424242",
		CardHolder:    "MARIA SILVA",
		CVV:           "123",
	}
}

func TestProcessPaymentFullAmountSettles(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	payment, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 20000))
	if err != nil {
		t.Fatalf("process payment failed: %v", err)
	}
	if payment.Status != entity.PaymentStatusSucceeded {
		t.Fatalf("expected succeeded payment, got %d", payment.Status)
	}

	updated, _ := f.reservations.FindByID(context.Background(), reservation.ID)
	if updated.Status != entity.ReservationStatusSettled {
		t.Fatalf("expected settled reservation, got %d", updated.Status)
	}
	if updated.PaidCents != updated.TotalCents {
		t.Fatalf("expected paid=total, got paid=%d total=%d", updated.PaidCents, updated.TotalCents)
	}
	if f.events.lastEventType() != "reservation_settled" {
		t.Fatalf("expected reservation_settled event, got %q", f.events.lastEventType())
	}
}

func TestProcessPaymentSignalThenBalance(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	// 30% of 200.00 confirms the reservation.
	_, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 6000))
	if err != nil {
		t.Fatalf("signal payment failed: %v", err)
	}
	confirmed, _ := f.reservations.FindByID(context.Background(), reservation.ID)
	if confirmed.Status != entity.ReservationStatusPartiallyPaid {
		t.Fatalf("expected partially paid, got %d", confirmed.Status)
	}
	if confirmed.PaidCents != 6000 {
		t.Fatalf("expected paid=6000, got %d", confirmed.PaidCents)
	}
	if f.events.lastEventType() != "reservation_confirmed" {
		t.Fatalf("expected reservation_confirmed event, got %q", f.events.lastEventType())
	}

	_, err = svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 14000))
	if err != nil {
		t.Fatalf("balance payment failed: %v", err)
	}
	settled, _ := f.reservations.FindByID(context.Background(), reservation.ID)
	if settled.Status != entity.ReservationStatusSettled {
		t.Fatalf("expected settled, got %d", settled.Status)
	}
	if settled.PaidCents != 20000 {
		t.Fatalf("expected paid=20000, got %d", settled.PaidCents)
	}

	payments, _ := svc.ListByReservation(context.Background(), reservation.ID)
	if len(payments) != 2 {
		t.Fatalf("expected two payment rows, got %d", len(payments))
	}
}

func TestProcessPaymentBelowSignalRejected(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	_, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 5000))
	if !errors.Is(err, ErrInsufficientAmount) {
		t.Fatalf("expected ErrInsufficientAmount, got %v", err)
	}

	// The attempt is rejected before the gateway is contacted.
	payments, _ := svc.ListByReservation(context.Background(), reservation.ID)
	if len(payments) != 0 {
		t.Fatalf("expected no payment rows, got %d", len(payments))
	}
	untouched, _ := f.reservations.FindByID(context.Background(), reservation.ID)
	if untouched.Status != entity.ReservationStatusPending || untouched.PaidCents != 0 {
		t.Fatalf("expected untouched pending reservation, got status=%d paid=%d", untouched.Status, untouched.PaidCents)
	}
}

func TestProcessPaymentOverpayRejected(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	_, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 25000))
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}

	// A second payment cannot exceed the outstanding balance either.
	if _, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 6000)); err != nil {
		t.Fatalf("signal payment failed: %v", err)
	}
	_, err = svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 15000))
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch on overpaying balance, got %v", err)
	}
}

func TestProcessPaymentGatewayDeclineRecordsFailedAttempt(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{outcome: gateway.OutcomeFailed})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	payment, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 20000))
	if !errors.Is(err, ErrGatewayFailure) {
		t.Fatalf("expected ErrGatewayFailure, got %v", err)
	}
	if payment == nil || payment.Status != entity.PaymentStatusFailed {
		t.Fatalf("expected failed payment row, got %+v", payment)
	}

	untouched, _ := f.reservations.FindByID(context.Background(), reservation.ID)
	if untouched.Status != entity.ReservationStatusPending || untouched.PaidCents != 0 {
		t.Fatalf("expected reservation untouched, got status=%d paid=%d", untouched.Status, untouched.PaidCents)
	}

	payments, _ := svc.ListByReservation(context.Background(), reservation.ID)
	if len(payments) != 1 || payments[0].Status != entity.PaymentStatusFailed {
		t.Fatalf("expected one failed payment row, got %d", len(payments))
	}
}

func TestProcessPaymentAlreadySettled(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	if _, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 20000)); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	_, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 100))
	if !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}

	payments, _ := svc.ListByReservation(context.Background(), reservation.ID)
	if len(payments) != 1 {
		t.Fatalf("expected single payment row, got %d", len(payments))
	}
}

func TestProcessPaymentCancelledReservation(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	if _, err := f.svc.CancelReservation(context.Background(), reservation.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 20000))
	if !errors.Is(err, ErrReservationCancelled) {
		t.Fatalf("expected ErrReservationCancelled, got %v", err)
	}
}

func TestProcessPaymentConfirmationLosesConflictRace(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)

	first := createTestReservation(t, f, window, 20000)
	second := createTestReservation(t, f, window, 18000)

	if _, err := svc.ProcessPayment(context.Background(), cardPayment(first.ID, 20000)); err != nil {
		t.Fatalf("first settlement failed: %v", err)
	}

	// The second pending reservation existed before the first confirmed;
	// its own confirmation now loses the conflict re-check.
	_, err := svc.ProcessPayment(context.Background(), cardPayment(second.ID, 18000))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	loser, _ := f.reservations.FindByID(context.Background(), second.ID)
	if loser.Status != entity.ReservationStatusPending || loser.PaidCents != 0 {
		t.Fatalf("expected losing reservation rolled back to pending, got status=%d paid=%d", loser.Status, loser.PaidCents)
	}
	payments, _ := svc.ListByReservation(context.Background(), second.ID)
	if len(payments) != 0 {
		t.Fatalf("expected losing settlement rolled back, got %d payment rows", len(payments))
	}
}

func TestProcessPaymentValidation(t *testing.T) {
	_, svc := newPaymentFixture(&scriptedGateway{})

	cases := []struct {
		name  string
		input ProcessPaymentInput
	}{
		{"missing reservation id", ProcessPaymentInput{AmountCents: 100, Method: entity.PaymentMethodCard}},
		{"zero amount", ProcessPaymentInput{ReservationID: "res-1", Method: entity.PaymentMethodCard}},
		{"unknown method", ProcessPaymentInput{ReservationID: "res-1", AmountCents: 100, Method: 99}},
		{"method without gateway", ProcessPaymentInput{ReservationID: "res-1", AmountCents: 100, Method: entity.PaymentMethodBoleto}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ProcessPayment(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestProcessPaymentUnknownReservation(t *testing.T) {
	_, svc := newPaymentFixture(&scriptedGateway{})

	_, err := svc.ProcessPayment(context.Background(), cardPayment("missing", 100))
	if !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	_, svc := newPaymentFixture(&scriptedGateway{})

	_, err := svc.GetPayment(context.Background(), "missing")
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

// Random create/settle interleavings must never leave two paid
// reservations holding overlapping windows on the same space.
func TestSettledReservationsNeverOverlap(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	rnd := rand.New(rand.NewSource(42))
	base := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)

	for i := 0; i < 50; i++ {
		start := base.Add(time.Duration(rnd.Intn(48)) * time.Hour)
		end := start.Add(time.Duration(1+rnd.Intn(4)) * time.Hour)

		reservation, err := f.svc.CreateReservation(context.Background(), CreateReservationInput{
			SpaceID:    "space-1",
			ClientID:   "client-1",
			Start:      start,
			End:        end,
			TotalCents: 20000,
		})
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		if err != nil {
			t.Fatalf("create reservation failed: %v", err)
		}

		_, err = svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 20000))
		if err != nil && !errors.Is(err, ErrUnavailable) {
			t.Fatalf("process payment failed: %v", err)
		}
	}

	holding := make([]*entity.Reservation, 0)
	for _, item := range f.reservations.reservations {
		if item.HoldsSpace() {
			holding = append(holding, item)
		}
	}
	if len(holding) < 2 {
		t.Fatalf("expected at least two settled reservations, got %d", len(holding))
	}

	for i := 0; i < len(holding); i++ {
		for j := i + 1; j < len(holding); j++ {
			if holding[i].Window.Overlaps(holding[j].Window) {
				t.Fatalf("reservations %s and %s hold overlapping windows", holding[i].ID, holding[j].ID)
			}
		}
	}
}

func TestProcessPaymentRejectsLedgerDrift(t *testing.T) {
	f, svc := newPaymentFixture(&scriptedGateway{})
	window := futureWindow(t, 24*time.Hour, 2*time.Hour)
	reservation := createTestReservation(t, f, window, 20000)

	// A succeeded row the reservation balance knows nothing about.
	f.payments.payments["pay-stray"] = &entity.Payment{
		ID: "pay-stray", ReservationID: reservation.ID, AmountCents: 1000,
		Method: entity.PaymentMethodCard, Status: entity.PaymentStatusSucceeded,
		ProcessedAt: time.Now().UTC(),
	}

	_, err := svc.ProcessPayment(context.Background(), cardPayment(reservation.ID, 20000))
	if err == nil {
		t.Fatal("expected settlement to fail on ledger drift")
	}

	current, getErr := f.svc.GetReservation(context.Background(), reservation.ID)
	if getErr != nil {
		t.Fatalf("get reservation failed: %v", getErr)
	}
	if current.Status != entity.ReservationStatusPending {
		t.Fatalf("reservation status = %d, want pending", current.Status)
	}
	if len(f.payments.payments) != 1 {
		t.Fatalf("expected only the stray row to remain, got %d rows", len(f.payments.payments))
	}
}
