package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type SaveClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	CPF     string  `json:"cpf"`
	Address *string `json:"address,omitempty"`
}

func NewSaveClientRequestFromContext(ctx echo.Context) (*SaveClientRequest, error) {
	var body SaveClientRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	body.CPF = strings.TrimSpace(body.CPF)
	return &body, nil
}

func (r *SaveClientRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	if r.CPF == "" {
		return errors.New("cpf is required")
	}
	return nil
}

type GetClientRequest struct {
	ID string
}

func NewGetClientRequestFromContext(ctx echo.Context) (*GetClientRequest, error) {
	return &GetClientRequest{ID: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetClientRequest) Validate() error {
	if r.ID == "" {
		return errors.New("invalid client id")
	}
	return nil
}

type ListClientsRequest struct {
	Limit  int32
	Offset int32
}

func NewListClientsRequestFromContext(ctx echo.Context) (*ListClientsRequest, error) {
	req := &ListClientsRequest{Limit: 100}

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

func (r *ListClientsRequest) Validate() error {
	if r.Limit <= 0 || r.Limit > 500 {
		return errors.New("limit must be between 1 and 500")
	}
	if r.Offset < 0 {
		return errors.New("offset must be >= 0")
	}
	return nil
}

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CPF       string    `json:"cpf"`
	Address   *string   `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClientEnvelopeResponse struct {
	Client *ClientResponse `json:"client"`
}

type ListClientsResponse struct {
	Clients []*ClientResponse `json:"clients"`
}
