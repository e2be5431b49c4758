package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type SaveBranchRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func NewSaveBranchRequestFromContext(ctx echo.Context) (*SaveBranchRequest, error) {
	var body SaveBranchRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Name = strings.TrimSpace(body.Name)
	return &body, nil
}

func (r *SaveBranchRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type GetBranchRequest struct {
	ID string
}

func NewGetBranchRequestFromContext(ctx echo.Context) (*GetBranchRequest, error) {
	return &GetBranchRequest{ID: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetBranchRequest) Validate() error {
	if r.ID == "" {
		return errors.New("invalid branch id")
	}
	return nil
}

type ListBranchesRequest struct {
	Limit  int32
	Offset int32
}

func NewListBranchesRequestFromContext(ctx echo.Context) (*ListBranchesRequest, error) {
	inner, err := NewListClientsRequestFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return &ListBranchesRequest{Limit: inner.Limit, Offset: inner.Offset}, nil
}

func (r *ListBranchesRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	return nil
}

type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BranchEnvelopeResponse struct {
	Branch *BranchResponse `json:"branch"`
}

type ListBranchesResponse struct {
	Branches []*BranchResponse `json:"branches"`
}
