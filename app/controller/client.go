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

type ClientController struct {
	clientService *service.ClientService
	logger        logrus.FieldLogger
}

func NewClientController(clientService *service.ClientService) *ClientController {
	return &ClientController{
		clientService: clientService,
		logger:        factory.NewModuleLogger("clients-controller"),
	}
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	req, err := types.NewSaveClientRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.clientService.CreateClient(ctx.Request().Context(), saveClientInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientAlreadyExists):
			return writeError(ctx, http.StatusConflict, "a client with this email or cpf already exists")
		default:
			c.logger.WithError(err).Error("Create client failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.ClientEnvelopeResponse{Client: mapper.ClientToResponse(item)})
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	id := ctx.Param("id")
	req, err := types.NewSaveClientRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.clientService.UpdateClient(ctx.Request().Context(), id, saveClientInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientNotFound):
			return writeError(ctx, http.StatusNotFound, "client not found")
		case errors.Is(err, service.ErrClientAlreadyExists):
			return writeError(ctx, http.StatusConflict, "a client with this email or cpf already exists")
		default:
			c.logger.WithError(err).Error("Update client failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.ClientEnvelopeResponse{Client: mapper.ClientToResponse(item)})
}

func (c *ClientController) DeactivateClient(ctx echo.Context) error {
	req, err := types.NewGetClientRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.clientService.DeactivateClient(ctx.Request().Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return writeError(ctx, http.StatusNotFound, "client not found")
		}
		c.logger.WithError(err).Error("Deactivate client failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Client deactivated"})
}

func (c *ClientController) GetClient(ctx echo.Context) error {
	req, err := types.NewGetClientRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.clientService.GetClient(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return writeError(ctx, http.StatusNotFound, "client not found")
		}
		c.logger.WithError(err).Error("Get client failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ClientEnvelopeResponse{Client: mapper.ClientToResponse(item)})
}

func (c *ClientController) ListClients(ctx echo.Context) error {
	req, err := types.NewListClientsRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.clientService.ListClients(ctx.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		c.logger.WithError(err).Error("List clients failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListClientsResponse{Clients: mapper.ClientsToResponse(items)})
}

func saveClientInput(req *types.SaveClientRequest) *service.SaveClientInput {
	return &service.SaveClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		CPF:     req.CPF,
		Address: req.Address,
	}
}
