package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/seucantinho/ms-go-reservations/app/entity"
)

type ProcessPaymentRequest struct {
	ReservationID string `json:"-"`
	AmountCents   int64  `json:"amount_cents"`
	Method        string `json:"method"`

	CardNumber string `json:"card_number,omitempty"`
	CardHolder string `json:"card_holder,omitempty"`
	CVV        string `json:"cvv,omitempty"`
	PixKey     string `json:"pix_key,omitempty"`
}

func NewProcessPaymentRequestFromContext(ctx echo.Context) (*ProcessPaymentRequest, error) {
	var body ProcessPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ReservationID = strings.TrimSpace(ctx.Param("id"))
	body.Method = strings.ToUpper(strings.TrimSpace(body.Method))
	body.CardNumber = strings.TrimSpace(body.CardNumber)
	body.CardHolder = strings.TrimSpace(body.CardHolder)
	body.CVV = strings.TrimSpace(body.CVV)
	body.PixKey = strings.TrimSpace(body.PixKey)
	return &body, nil
}

func (r *ProcessPaymentRequest) Validate() error {
	if r.ReservationID == "" {
		return errors.New("invalid reservation id")
	}
	if r.AmountCents <= 0 {
		return errors.New("amount_cents must be > 0")
	}
	if _, err := r.MethodCode(); err != nil {
		return err
	}
	return nil
}

// MethodCode maps the wire method name to the persisted method code.
func (r *ProcessPaymentRequest) MethodCode() (int32, error) {
	switch r.Method {
	case "CARD", "CREDIT_CARD":
		return entity.PaymentMethodCard, nil
	case "PIX":
		return entity.PaymentMethodPix, nil
	case "BOLETO":
		return entity.PaymentMethodBoleto, nil
	default:
		return 0, errors.New("method must be card, pix, or boleto")
	}
}

type GetPaymentRequest struct {
	ID string
}

func NewGetPaymentRequestFromContext(ctx echo.Context) (*GetPaymentRequest, error) {
	return &GetPaymentRequest{ID: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetPaymentRequest) Validate() error {
	if r.ID == "" {
		return errors.New("invalid payment id")
	}
	return nil
}

type ListReservationPaymentsRequest struct {
	ReservationID string
}

func NewListReservationPaymentsRequestFromContext(ctx echo.Context) (*ListReservationPaymentsRequest, error) {
	return &ListReservationPaymentsRequest{ReservationID: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *ListReservationPaymentsRequest) Validate() error {
	if r.ReservationID == "" {
		return errors.New("invalid reservation id")
	}
	return nil
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	ProcessedAt   time.Time `json:"processed_at"`
}

type PaymentEnvelopeResponse struct {
	Payment *PaymentResponse `json:"payment"`
}

type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
}
