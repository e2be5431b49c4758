package types

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seucantinho/ms-go-reservations/app/entity"
)

func TestNewCreateReservationRequestFromContext(t *testing.T) {
	e := echo.New()
	body := `{"space_id":" space-1 ","client_id":"client-1","starts_at":"2026-09-01T18:00:00Z","ends_at":"2026-09-01T20:00:00Z","total_cents":20000}`
	req := httptest.NewRequest("POST", "/reservations", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	parsed, err := NewCreateReservationRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.SpaceID != "space-1" {
		t.Fatalf("expected trimmed space id, got %q", parsed.SpaceID)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestCreateReservationValidate(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	req := &CreateReservationRequest{}
	if err := req.Validate(); err == nil {
		t.Fatal("expected space_id validation error")
	}

	req = &CreateReservationRequest{
		SpaceID:    "space-1",
		ClientID:   "client-1",
		StartsAt:   start,
		EndsAt:     start,
		TotalCents: 20000,
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected window validation error for zero-length window")
	}

	req.EndsAt = start.Add(2 * time.Hour)
	req.TotalCents = 0
	if err := req.Validate(); err == nil {
		t.Fatal("expected total_cents validation error")
	}

	req.TotalCents = 20000
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestParseReservationStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want int32
	}{
		{"PENDING", entity.ReservationStatusPending},
		{"partially_paid", entity.ReservationStatusPartiallyPaid},
		{"3", entity.ReservationStatusSettled},
		{" CANCELLED ", entity.ReservationStatusCancelled},
	}
	for _, c := range cases {
		got, err := ParseReservationStatus(c.raw)
		if err != nil {
			t.Fatalf("ParseReservationStatus(%q) returned error: %v", c.raw, err)
		}
		if got != c.want {
			t.Fatalf("ParseReservationStatus(%q) = %d, want %d", c.raw, got, c.want)
		}
	}

	if _, err := ParseReservationStatus("INVOICED"); err == nil {
		t.Fatal("expected error for unknown status name")
	}
}

func TestNewListReservationsRequestFromContextAndValidate(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/reservations?space_id=space-1&status=PARTIALLY_PAID&limit=20&offset=3", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	parsed, err := NewListReservationsRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !parsed.HasStatus || parsed.Status != entity.ReservationStatusPartiallyPaid {
		t.Fatalf("unexpected status parse: %+v", parsed)
	}
	if parsed.Limit != 20 || parsed.Offset != 3 {
		t.Fatalf("unexpected paging parse: %+v", parsed)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid list request, got %v", err)
	}
}

func TestListReservationsValidateLimitBounds(t *testing.T) {
	req := &ListReservationsRequest{Limit: 501}
	if err := req.Validate(); err == nil {
		t.Fatal("expected limit validation error")
	}

	req = &ListReservationsRequest{Limit: 100, Offset: -1}
	if err := req.Validate(); err == nil {
		t.Fatal("expected offset validation error")
	}
}

func TestNewCheckAvailabilityRequestFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/spaces/space-1/availability?starts_at=2026-09-01T18:00:00Z&ends_at=2026-09-01T20:00:00Z", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("space-1")

	parsed, err := NewCheckAvailabilityRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.SpaceID != "space-1" {
		t.Fatalf("unexpected space id: %q", parsed.SpaceID)
	}
	if !parsed.EndsAt.Equal(parsed.StartsAt.Add(2 * time.Hour)) {
		t.Fatalf("unexpected window parse: %+v", parsed)
	}
	if err := parsed.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
