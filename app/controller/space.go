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

type SpaceController struct {
	spaceService *service.SpaceService
	logger       logrus.FieldLogger
}

func NewSpaceController(spaceService *service.SpaceService) *SpaceController {
	return &SpaceController{
		spaceService: spaceService,
		logger:       factory.NewModuleLogger("spaces-controller"),
	}
}

func (c *SpaceController) CreateSpace(ctx echo.Context) error {
	req, err := types.NewSaveSpaceRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.spaceService.CreateSpace(ctx.Request().Context(), saveSpaceInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBranchNotFound):
			return writeError(ctx, http.StatusNotFound, "branch not found")
		default:
			c.logger.WithError(err).Error("Create space failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.SpaceEnvelopeResponse{Space: mapper.SpaceToResponse(item)})
}

func (c *SpaceController) UpdateSpace(ctx echo.Context) error {
	id := ctx.Param("id")
	req, err := types.NewSaveSpaceRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.spaceService.UpdateSpace(ctx.Request().Context(), id, saveSpaceInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSpaceNotFound):
			return writeError(ctx, http.StatusNotFound, "space not found")
		case errors.Is(err, service.ErrBranchNotFound):
			return writeError(ctx, http.StatusNotFound, "branch not found")
		default:
			c.logger.WithError(err).Error("Update space failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SpaceEnvelopeResponse{Space: mapper.SpaceToResponse(item)})
}

func (c *SpaceController) DeleteSpace(ctx echo.Context) error {
	req, err := types.NewGetSpaceRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.spaceService.DeleteSpace(ctx.Request().Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrSpaceNotFound):
			return writeError(ctx, http.StatusNotFound, "space not found")
		case errors.Is(err, service.ErrSpaceInUse):
			return writeError(ctx, http.StatusConflict, "the space has upcoming paid reservations")
		default:
			c.logger.WithError(err).Error("Delete space failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Space deleted"})
}

func (c *SpaceController) GetSpace(ctx echo.Context) error {
	req, err := types.NewGetSpaceRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.spaceService.GetSpace(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrSpaceNotFound) {
			return writeError(ctx, http.StatusNotFound, "space not found")
		}
		c.logger.WithError(err).Error("Get space failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.SpaceEnvelopeResponse{Space: mapper.SpaceToResponse(item)})
}

func (c *SpaceController) ListSpaces(ctx echo.Context) error {
	req, err := types.NewListSpacesRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	filter := repository.SpaceFilter{
		BranchID: req.BranchID,
		Type:     req.Type,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}

	var items []*entity.Space
	if req.HasWindow {
		window, err := entity.NewTimeWindow(req.StartsAt, req.EndsAt)
		if err != nil {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		items, err = c.spaceService.ListAvailableSpaces(ctx.Request().Context(), filter, window)
		if err != nil {
			if errors.Is(err, service.ErrInvalidRequest) {
				return writeError(ctx, http.StatusBadRequest, err.Error())
			}
			c.logger.WithError(err).Error("List available spaces failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	} else {
		items, err = c.spaceService.ListSpaces(ctx.Request().Context(), filter)
		if err != nil {
			c.logger.WithError(err).Error("List spaces failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.ListSpacesResponse{Spaces: mapper.SpacesToResponse(items)})
}

func saveSpaceInput(req *types.SaveSpaceRequest) *service.SaveSpaceInput {
	return &service.SaveSpaceInput{
		BranchID:   req.BranchID,
		Name:       req.Name,
		Type:       req.Type,
		Capacity:   req.Capacity,
		PriceCents: req.PriceCents,
		PhotoURL:   req.PhotoURL,
		Details:    req.Details,
	}
}
