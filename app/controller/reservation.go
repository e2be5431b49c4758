package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/factory"
	"github.com/seucantinho/ms-go-reservations/app/mapper"
	"github.com/seucantinho/ms-go-reservations/app/repository"
	"github.com/seucantinho/ms-go-reservations/app/service"
	"github.com/seucantinho/ms-go-reservations/app/types"
)

type ReservationController struct {
	reservationService *service.ReservationService
	logger             logrus.FieldLogger
}

func NewReservationController(reservationService *service.ReservationService) *ReservationController {
	return &ReservationController{
		reservationService: reservationService,
		logger:             factory.NewModuleLogger("reservations-controller"),
	}
}

func (c *ReservationController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *ReservationController) CreateReservation(ctx echo.Context) error {
	req, err := types.NewCreateReservationRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.reservationService.CreateReservation(ctx.Request().Context(), service.CreateReservationInput{
		SpaceID:    req.SpaceID,
		ClientID:   req.ClientID,
		Start:      req.StartsAt,
		End:        req.EndsAt,
		TotalCents: req.TotalCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSpaceNotFound), errors.Is(err, service.ErrClientNotFound):
			return writeError(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUnavailable):
			return writeError(ctx, http.StatusConflict, "the space is not available for the requested window")
		default:
			c.logger.WithError(err).Error("Create reservation failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.ReservationEnvelopeResponse{Reservation: mapper.ReservationToResponse(item)})
}

func (c *ReservationController) GetReservation(ctx echo.Context) error {
	req, err := types.NewGetReservationRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.reservationService.GetReservation(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return writeError(ctx, http.StatusNotFound, "reservation not found")
		}
		c.logger.WithError(err).Error("Get reservation failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ReservationEnvelopeResponse{Reservation: mapper.ReservationToResponse(item)})
}

func (c *ReservationController) ListReservations(ctx echo.Context) error {
	req, err := types.NewListReservationsRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.reservationService.ListReservations(ctx.Request().Context(), repository.ReservationFilter{
		SpaceID:   req.SpaceID,
		ClientID:  req.ClientID,
		HasStatus: req.HasStatus,
		Status:    req.Status,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		c.logger.WithError(err).Error("List reservations failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListReservationsResponse{Reservations: mapper.ReservationsToResponse(items)})
}

func (c *ReservationController) CancelReservation(ctx echo.Context) error {
	req, err := types.NewCancelReservationRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.reservationService.CancelReservation(ctx.Request().Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return writeError(ctx, http.StatusNotFound, "reservation not found")
		case errors.Is(err, service.ErrIllegalTransition):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			c.logger.WithError(err).Error("Cancel reservation failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.ReservationEnvelopeResponse{Reservation: mapper.ReservationToResponse(item)})
}

func (c *ReservationController) CheckAvailability(ctx echo.Context) error {
	req, err := types.NewCheckAvailabilityRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	window, err := entity.NewTimeWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	available, err := c.reservationService.CheckAvailability(ctx.Request().Context(), req.SpaceID, window)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSpaceNotFound):
			return writeError(ctx, http.StatusNotFound, "space not found")
		default:
			c.logger.WithError(err).Error("Check availability failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.AvailabilityResponse{
		SpaceID:   req.SpaceID,
		StartsAt:  window.Start,
		EndsAt:    window.End,
		Available: available,
	})
}

func writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
