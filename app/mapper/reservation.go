package mapper

import (
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/types"
)

func ReservationToResponse(item *entity.Reservation) *types.ReservationResponse {
	if item == nil {
		return nil
	}

	return &types.ReservationResponse{
		ID:         item.ID,
		SpaceID:    item.SpaceID,
		ClientID:   item.ClientID,
		StartsAt:   item.Window.Start.UTC(),
		EndsAt:     item.Window.End.UTC(),
		TotalCents: item.TotalCents,
		PaidCents:  item.PaidCents,
		Status:     ReservationStatusLabel(item.Status),
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func ReservationsToResponse(items []*entity.Reservation) []*types.ReservationResponse {
	result := make([]*types.ReservationResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ReservationToResponse(item))
	}
	return result
}

func ReservationStatusLabel(status int32) string {
	switch status {
	case entity.ReservationStatusPending:
		return "PENDING"
	case entity.ReservationStatusPartiallyPaid:
		return "PARTIALLY_PAID"
	case entity.ReservationStatusSettled:
		return "SETTLED"
	case entity.ReservationStatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}
