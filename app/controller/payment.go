package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/seucantinho/ms-go-reservations/app/factory"
	"github.com/seucantinho/ms-go-reservations/app/mapper"
	"github.com/seucantinho/ms-go-reservations/app/service"
	"github.com/seucantinho/ms-go-reservations/app/types"
)

type PaymentController struct {
	paymentService *service.PaymentService
	logger         logrus.FieldLogger
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         factory.NewModuleLogger("payments-controller"),
	}
}

func (c *PaymentController) ProcessPayment(ctx echo.Context) error {
	req, err := types.NewProcessPaymentRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	method, err := req.MethodCode()
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.paymentService.ProcessPayment(ctx.Request().Context(), service.ProcessPaymentInput{
		ReservationID: req.ReservationID,
		AmountCents:   req.AmountCents,
		Method:        method,
		CardNumber:    req.CardNumber,
		CardHolder:    req.CardHolder,
		CVV:           req.CVV,
		PixKey:        req.PixKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrReservationNotFound):
			return writeError(ctx, http.StatusNotFound, "reservation not found")
		case errors.Is(err, service.ErrAlreadySettled),
			errors.Is(err, service.ErrReservationCancelled),
			errors.Is(err, service.ErrIllegalTransition),
			errors.Is(err, service.ErrUnavailable):
			return writeError(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrAmountMismatch), errors.Is(err, service.ErrInsufficientAmount):
			return writeError(ctx, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrGatewayFailure):
			// The FAILED attempt is recorded; surface it with the error.
			return ctx.JSON(http.StatusPaymentRequired, &types.PaymentEnvelopeResponse{Payment: mapper.PaymentToResponse(item)})
		default:
			c.logger.WithError(err).Error("Process payment failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.PaymentEnvelopeResponse{Payment: mapper.PaymentToResponse(item)})
}

func (c *PaymentController) GetPayment(ctx echo.Context) error {
	req, err := types.NewGetPaymentRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.paymentService.GetPayment(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return writeError(ctx, http.StatusNotFound, "payment not found")
		}
		c.logger.WithError(err).Error("Get payment failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.PaymentEnvelopeResponse{Payment: mapper.PaymentToResponse(item)})
}

func (c *PaymentController) ListReservationPayments(ctx echo.Context) error {
	req, err := types.NewListReservationPaymentsRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.paymentService.ListByReservation(ctx.Request().Context(), req.ReservationID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		c.logger.WithError(err).Error("List reservation payments failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListPaymentsResponse{Payments: mapper.PaymentsToResponse(items)})
}
