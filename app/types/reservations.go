package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seucantinho/ms-go-reservations/app/entity"
)

type CreateReservationRequest struct {
	SpaceID    string    `json:"space_id"`
	ClientID   string    `json:"client_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	TotalCents int64     `json:"total_cents"`
}

func NewCreateReservationRequestFromContext(ctx echo.Context) (*CreateReservationRequest, error) {
	var body CreateReservationRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.SpaceID = strings.TrimSpace(body.SpaceID)
	body.ClientID = strings.TrimSpace(body.ClientID)
	return &body, nil
}

func (r *CreateReservationRequest) Validate() error {
	if r.SpaceID == "" {
		return errors.New("space_id is required")
	}
	if r.ClientID == "" {
		return errors.New("client_id is required")
	}
	if r.StartsAt.IsZero() || r.EndsAt.IsZero() {
		return errors.New("starts_at and ends_at are required")
	}
	if !r.StartsAt.Before(r.EndsAt) {
		return errors.New("starts_at must be before ends_at")
	}
	if r.TotalCents <= 0 {
		return errors.New("total_cents must be > 0")
	}
	return nil
}

type GetReservationRequest struct {
	ID string
}

func NewGetReservationRequestFromContext(ctx echo.Context) (*GetReservationRequest, error) {
	return &GetReservationRequest{ID: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetReservationRequest) Validate() error {
	if r.ID == "" {
		return errors.New("invalid reservation id")
	}
	return nil
}

type CancelReservationRequest struct {
	ID string
}

func NewCancelReservationRequestFromContext(ctx echo.Context) (*CancelReservationRequest, error) {
	return &CancelReservationRequest{ID: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *CancelReservationRequest) Validate() error {
	if r.ID == "" {
		return errors.New("invalid reservation id")
	}
	return nil
}

type ListReservationsRequest struct {
	SpaceID   string
	ClientID  string
	HasStatus bool
	Status    int32
	Limit     int32
	Offset    int32
}

func NewListReservationsRequestFromContext(ctx echo.Context) (*ListReservationsRequest, error) {
	req := &ListReservationsRequest{
		SpaceID:  strings.TrimSpace(ctx.QueryParam("space_id")),
		ClientID: strings.TrimSpace(ctx.QueryParam("client_id")),
		Limit:    100,
	}

	if statusRaw := strings.TrimSpace(ctx.QueryParam("status")); statusRaw != "" {
		status, err := ParseReservationStatus(statusRaw)
		if err != nil {
			return nil, err
		}
		req.HasStatus = true
		req.Status = status
	}

	if limitRaw := strings.TrimSpace(ctx.QueryParam("limit")); limitRaw != "" {
		limit, err := strconv.ParseInt(limitRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Limit = int32(limit)
	}

	if offsetRaw := strings.TrimSpace(ctx.QueryParam("offset")); offsetRaw != "" {
		offset, err := strconv.ParseInt(offsetRaw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.Offset = int32(offset)
	}

	return req, nil
}

func (r *ListReservationsRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	if r.HasStatus && !entity.ValidReservationStatus(r.Status) {
		return errors.New("invalid status")
	}
	return nil
}

type CheckAvailabilityRequest struct {
	SpaceID  string
	StartsAt time.Time
	EndsAt   time.Time
}

func NewCheckAvailabilityRequestFromContext(ctx echo.Context) (*CheckAvailabilityRequest, error) {
	req := &CheckAvailabilityRequest{SpaceID: strings.TrimSpace(ctx.Param("id"))}

	var err error
	if req.StartsAt, err = parseTimeParam(ctx.QueryParam("starts_at")); err != nil {
		return nil, err
	}
	if req.EndsAt, err = parseTimeParam(ctx.QueryParam("ends_at")); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *CheckAvailabilityRequest) Validate() error {
	if r.SpaceID == "" {
		return errors.New("invalid space id")
	}
	if r.StartsAt.IsZero() || r.EndsAt.IsZero() {
		return errors.New("starts_at and ends_at are required")
	}
	if !r.StartsAt.Before(r.EndsAt) {
		return errors.New("starts_at must be before ends_at")
	}
	return nil
}

func parseTimeParam(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// ParseReservationStatus accepts either the numeric code or the status
// name used in the API responses.
func ParseReservationStatus(raw string) (int32, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "1", "PENDING":
		return entity.ReservationStatusPending, nil
	case "2", "PARTIALLY_PAID":
		return entity.ReservationStatusPartiallyPaid, nil
	case "3", "SETTLED":
		return entity.ReservationStatusSettled, nil
	case "4", "CANCELLED":
		return entity.ReservationStatusCancelled, nil
	default:
		return 0, errors.New("invalid status")
	}
}

type ReservationResponse struct {
	ID         string    `json:"id"`
	SpaceID    string    `json:"space_id"`
	ClientID   string    `json:"client_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	TotalCents int64     `json:"total_cents"`
	PaidCents  int64     `json:"paid_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ReservationEnvelopeResponse struct {
	Reservation *ReservationResponse `json:"reservation"`
}

type ListReservationsResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

type AvailabilityResponse struct {
	SpaceID   string    `json:"space_id"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Available bool      `json:"available"`
}
