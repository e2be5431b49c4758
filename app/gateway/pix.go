package gateway

import (
	"context"
	"strings"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

// PixGateway simulates an instant-transfer provider. A charge succeeds as
// long as a destination key is present.
type PixGateway struct{}

func NewPixGateway() *PixGateway {
	return &PixGateway{}
}

func (g *PixGateway) Code() int32 {
	return entity.PaymentMethodPix
}

func (g *PixGateway) Charge(ctx context.Context, input *ChargeInput) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return OutcomeFailed, err
	}
	if strings.TrimSpace(input.PixKey) == "" {
		return OutcomeFailed, nil
	}
	return OutcomeSucceeded, nil
}
