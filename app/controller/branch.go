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

type BranchController struct {
	branchService *service.BranchService
	logger        logrus.FieldLogger
}

func NewBranchController(branchService *service.BranchService) *BranchController {
	return &BranchController{
		branchService: branchService,
		logger:        factory.NewModuleLogger("branches-controller"),
	}
}

func (c *BranchController) CreateBranch(ctx echo.Context) error {
	req, err := types.NewSaveBranchRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.branchService.CreateBranch(ctx.Request().Context(), &service.SaveBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeError(ctx, http.StatusBadRequest, err.Error())
		}
		c.logger.WithError(err).Error("Create branch failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusCreated, &types.BranchEnvelopeResponse{Branch: mapper.BranchToResponse(item)})
}

func (c *BranchController) UpdateBranch(ctx echo.Context) error {
	id := ctx.Param("id")
	req, err := types.NewSaveBranchRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.branchService.UpdateBranch(ctx.Request().Context(), id, &service.SaveBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBranchNotFound):
			return writeError(ctx, http.StatusNotFound, "branch not found")
		default:
			c.logger.WithError(err).Error("Update branch failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.BranchEnvelopeResponse{Branch: mapper.BranchToResponse(item)})
}

func (c *BranchController) DeactivateBranch(ctx echo.Context) error {
	req, err := types.NewGetBranchRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.branchService.DeactivateBranch(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			return writeError(ctx, http.StatusNotFound, "branch not found")
		}
		c.logger.WithError(err).Error("Deactivate branch failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.BranchEnvelopeResponse{Branch: mapper.BranchToResponse(item)})
}

func (c *BranchController) GetBranch(ctx echo.Context) error {
	req, err := types.NewGetBranchRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.branchService.GetBranch(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrBranchNotFound) {
			return writeError(ctx, http.StatusNotFound, "branch not found")
		}
		c.logger.WithError(err).Error("Get branch failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.BranchEnvelopeResponse{Branch: mapper.BranchToResponse(item)})
}

func (c *BranchController) ListBranches(ctx echo.Context) error {
	req, err := types.NewListBranchesRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.branchService.ListBranches(ctx.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		c.logger.WithError(err).Error("List branches failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListBranchesResponse{Branches: mapper.BranchesToResponse(items)})
}
