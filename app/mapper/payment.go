package mapper

import (
	"github.com/seucantinho/ms-go-reservations/app/entity"
	"github.com/seucantinho/ms-go-reservations/app/types"
)

func PaymentToResponse(item *entity.Payment) *types.PaymentResponse {
	if item == nil {
		return nil
	}

	return &types.PaymentResponse{
		ID:            item.ID,
		ReservationID: item.ReservationID,
		AmountCents:   item.AmountCents,
		Method:        PaymentMethodLabel(item.Method),
		Status:        PaymentStatusLabel(item.Status),
		ProcessedAt:   item.ProcessedAt.UTC(),
	}
}

func PaymentsToResponse(items []*entity.Payment) []*types.PaymentResponse {
	result := make([]*types.PaymentResponse, 0, len(items))
	for _, item := range items {
		result = append(result, PaymentToResponse(item))
	}
	return result
}

func PaymentMethodLabel(method int32) string {
	switch method {
	case entity.PaymentMethodCard:
		return "CARD"
	case entity.PaymentMethodPix:
		return "PIX"
	case entity.PaymentMethodBoleto:
		return "BOLETO"
	default:
		return "UNKNOWN"
	}
}

func PaymentStatusLabel(status int32) string {
	switch status {
	case entity.PaymentStatusSucceeded:
		return "SUCCEEDED"
	case entity.PaymentStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}
