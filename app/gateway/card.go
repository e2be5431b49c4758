package gateway

import (
	"context"
	"strings"

	"github.com/seucantinho/ms-go-reservations/app/entity"
)

// CardGateway simulates a card acquirer for local and test environments.
// The decline rules are deterministic: CVV 000 is rejected, card numbers
// must start with 4, and 4444 is the always-declined test card.
type CardGateway struct{}

func NewCardGateway() *CardGateway {
	return &CardGateway{}
}

func (g *CardGateway) Code() int32 {
	return entity.PaymentMethodCard
}

func (g *CardGateway) Charge(ctx context.Context, input *ChargeInput) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return OutcomeFailed, err
	}

	number := strings.ReplaceAll(strings.TrimSpace(input.CardNumber), " ", "")
	if number == "" || strings.TrimSpace(input.CardHolder) == "" {
		return OutcomeFailed, nil
	}
	if input.CVV == "000" {
		return OutcomeFailed, nil
	}
	if !strings.HasPrefix(number, "4") || strings.HasPrefix(number, "4444") {
		return OutcomeFailed, nil
	}
	return OutcomeSucceeded, nil
}
