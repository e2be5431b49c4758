package mapper

import (
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/types"
)

func SpaceToResponse(item *entity.Space) *types.SpaceResponse {
	if item == nil {
		return nil
	}

	return &types.SpaceResponse{
		ID:         item.ID,
		BranchID:   item.BranchID,
		Name:       item.Name,
		Type:       item.Type,
		Capacity:   item.Capacity,
		PriceCents: item.PriceCents,
		PhotoURL:   item.PhotoURL,
		Details:    item.Details,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func SpacesToResponse(items []*entity.Space) []*types.SpaceResponse {
	result := make([]*types.SpaceResponse, 0, len(items))
	for _, item := range items {
		result = append(result, SpaceToResponse(item))
	}
	return result
}

func ClientToResponse(item *entity.Client) *types.ClientResponse {
	if item == nil {
		return nil
	}

	return &types.ClientResponse{
		ID:        item.ID,
		Name:      item.Name,
		Email:     item.Email,
		Phone:     item.Phone,
		CPF:       item.CPF,
		Address:   item.Address,
		Active:    item.Active,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func ClientsToResponse(items []*entity.Client) []*types.ClientResponse {
	result := make([]*types.ClientResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ClientToResponse(item))
	}
	return result
}

func BranchToResponse(item *entity.Branch) *types.BranchResponse {
	if item == nil {
		return nil
	}

	return &types.BranchResponse{
		ID:        item.ID,
		Name:      item.Name,
		Address:   item.Address,
		Phone:     item.Phone,
		Active:    item.Active,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func BranchesToResponse(items []*entity.Branch) []*types.BranchResponse {
	result := make([]*types.BranchResponse, 0, len(items))
	for _, item := range items {
		result = append(result, BranchToResponse(item))
	}
	return result
}
