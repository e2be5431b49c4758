package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seucantinho/ms-go-reservations/app/entity"
)

type SaveSpaceRequest struct {
	BranchID   string              `json:"branch_id"`
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Capacity   int32               `json:"capacity"`
	PriceCents int64               `json:"price_cents"`
	PhotoURL   *string             `json:"photo_url,omitempty"`
	Details    entity.SpaceDetails `json:"details"`
}

func NewSaveSpaceRequestFromContext(ctx echo.Context) (*SaveSpaceRequest, error) {
	var body SaveSpaceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.BranchID = strings.TrimSpace(body.BranchID)
	body.Name = strings.TrimSpace(body.Name)
	body.Type = strings.ToUpper(strings.TrimSpace(body.Type))
	return &body, nil
}

func (r *SaveSpaceRequest) Validate() error {
	if r.BranchID == "" {
		return errors.New("branch_id is required")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if !entity.ValidSpaceType(r.Type) {
		return errors.New("type must be SALAO, CHACARA, or QUADRA_ESPORTIVA")
	}
	if r.Capacity <= 0 {
		return errors.New("capacity must be > 0")
	}
	if r.PriceCents <= 0 {
		return errors.New("price_cents must be > 0")
	}
	return nil
}

type GetSpaceRequest struct {
	ID string
}

func NewGetSpaceRequestFromContext(ctx echo.Context) (*GetSpaceRequest, error) {
	return &GetSpaceRequest{ID: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetSpaceRequest) Validate() error {
	if r.ID == "" {
		return errors.New("invalid space id")
	}
	return nil
}

type ListSpacesRequest struct {
	BranchID string
	Type     string
	Limit    int32
	Offset   int32

	HasWindow bool
	StartsAt  time.Time
	EndsAt    time.Time
}

func NewListSpacesRequestFromContext(ctx echo.Context) (*ListSpacesRequest, error) {
	req := &ListSpacesRequest{
		BranchID: strings.TrimSpace(ctx.QueryParam("branch_id")),
		Type:     strings.ToUpper(strings.TrimSpace(ctx.QueryParam("type"))),
		Limit:    100,
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

	var err error
	if req.StartsAt, err = parseTimeParam(ctx.QueryParam("starts_at")); err != nil {
		return nil, err
	}
	if req.EndsAt, err = parseTimeParam(ctx.QueryParam("ends_at")); err != nil {
		return nil, err
	}
	req.HasWindow = !req.StartsAt.IsZero() || !req.EndsAt.IsZero()

	return req, nil
}

func (r *ListSpacesRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	if r.Type != "" && !entity.ValidSpaceType(r.Type) {
		return errors.New("invalid type filter")
	}
	if r.HasWindow {
		if r.StartsAt.IsZero() || r.EndsAt.IsZero() {
			return errors.New("starts_at and ends_at must be provided together")
		}
		if !r.StartsAt.Before(r.EndsAt) {
			return errors.New("starts_at must be before ends_at")
		}
	}
	return nil
}

type SpaceResponse struct {
	ID         string              `json:"id"`
	BranchID   string              `json:"branch_id"`
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Capacity   int32               `json:"capacity"`
	PriceCents int64               `json:"price_cents"`
	PhotoURL   *string             `json:"photo_url,omitempty"`
	Details    entity.SpaceDetails `json:"details"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type SpaceEnvelopeResponse struct {
	Space *SpaceResponse `json:"space"`
}

type ListSpacesResponse struct {
	Spaces []*SpaceResponse `json:"spaces"`
}
