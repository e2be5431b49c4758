package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/types"
)

func seedPendingReservation(f *controllerFixture, id string, totalCents int64) {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	f.reservations.items[id] = &entity.Reservation{
		ID: id, SpaceID: "space-1", ClientID: "client-1",
		Window:     entity.TimeWindow{Start: start, End: start.Add(2 * time.Hour)},
		TotalCents: totalCents, Status: entity.ReservationStatusPending,
	}
}

func cardPaymentBody(amountCents int64) string {
	return fmt.Sprintf(
		`{"amount_cents":%d,"method":"CARD","card_number":"4012888888881881","card_holder":"MARIA SILVA","cvv":"123"}`,
		amountCents,
	)
}

func processPaymentContext(e *echo.Echo, rec *httptest.ResponseRecorder, reservationID, body string) echo.Context {
	ctx := e.NewContext(jsonRequest(http.MethodPost, "/reservations/"+reservationID+"/payments", body), rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues(reservationID)
	return ctx
}

func TestProcessPaymentSettlesReservation(t *testing.T) {
	f := newControllerFixture(okGateway{})
	ctrl := NewPaymentController(f.paymentService)
	seedPendingReservation(f, "res-1", 20000)

	e := echo.New()
	rec := httptest.NewRecorder()
	_ = ctrl.ProcessPayment(processPaymentContext(e, rec, "res-1", cardPaymentBody(20000)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload types.PaymentEnvelopeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Payment == nil || payload.Payment.Status != "SUCCEEDED" {
		t.Fatalf("unexpected payment payload: %+v", payload.Payment)
	}

	if got := f.reservations.items["res-1"].Status; got != entity.ReservationStatusSettled {
		t.Fatalf("reservation status = %d, want settled", got)
	}
}

func TestProcessPaymentGatewayDecline(t *testing.T) {
	f := newControllerFixture(decliningGateway{})
	ctrl := NewPaymentController(f.paymentService)
	seedPendingReservation(f, "res-1", 20000)

	e := echo.New()
	rec := httptest.NewRecorder()
	_ = ctrl.ProcessPayment(processPaymentContext(e, rec, "res-1", cardPaymentBody(20000)))

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload types.PaymentEnvelopeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Payment == nil || payload.Payment.Status != "FAILED" {
		t.Fatalf("unexpected payment payload: %+v", payload.Payment)
	}

	if got := f.reservations.items["res-1"].Status; got != entity.ReservationStatusPending {
		t.Fatalf("reservation status = %d, want pending", got)
	}
}

func TestProcessPaymentBelowDeposit(t *testing.T) {
	f := newControllerFixture(okGateway{})
	ctrl := NewPaymentController(f.paymentService)
	seedPendingReservation(f, "res-1", 20000)

	e := echo.New()
	rec := httptest.NewRecorder()
	_ = ctrl.ProcessPayment(processPaymentContext(e, rec, "res-1", cardPaymentBody(5000)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(f.payments.items) != 0 {
		t.Fatalf("expected no payment rows, got %d", len(f.payments.items))
	}
}

func TestProcessPaymentUnknownReservation(t *testing.T) {
	f := newControllerFixture(okGateway{})
	ctrl := NewPaymentController(f.paymentService)

	e := echo.New()
	rec := httptest.NewRecorder()
	_ = ctrl.ProcessPayment(processPaymentContext(e, rec, "nope", cardPaymentBody(20000)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	f := newControllerFixture(okGateway{})
	ctrl := NewPaymentController(f.paymentService)

	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/payments/missing", nil), rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("missing")

	_ = ctrl.GetPayment(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListReservationPayments(t *testing.T) {
	f := newControllerFixture(okGateway{})
	ctrl := NewPaymentController(f.paymentService)
	seedPendingReservation(f, "res-1", 20000)
	f.payments.items["pay-1"] = &entity.Payment{
		ID: "pay-1", ReservationID: "res-1", AmountCents: 6000,
		Method: entity.PaymentMethodCard, Status: entity.PaymentStatusSucceeded,
		ProcessedAt: time.Now().UTC(),
	}

	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/reservations/res-1/payments", nil), rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("res-1")

	_ = ctrl.ListReservationPayments(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload types.ListPaymentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(payload.Payments) != 1 || payload.Payments[0].AmountCents != 6000 {
		t.Fatalf("unexpected payments payload: %+v", payload.Payments)
	}
}
