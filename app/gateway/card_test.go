package gateway

import (
	"context"
	"testing"
	"time"
)

func TestCardGatewayDeclineRules(t *testing.T) {
	g := NewCardGateway()
	ctx := context.Background()

	cases := []struct {
		name  string
		input ChargeInput
		want  Outcome
	}{
		{"valid card", ChargeInput{CardNumber: "4012888888881881", CardHolder: "MARIA SILVA", CVV: "123"}, OutcomeSucceeded},
		{"spaces in number", ChargeInput{CardNumber: "4012 8888 8888 1881", CardHolder: "MARIA SILVA", CVV: "123"}, OutcomeSucceeded},
		{"cvv 000", ChargeInput{CardNumber: "4012888888881881", CardHolder: "MARIA SILVA", CVV: "000"}, OutcomeFailed},
		{"test decline card", ChargeInput{CardNumber: "4444000000000000", CardHolder: "MARIA SILVA", CVV: "123"}, OutcomeFailed},
		{"non visa prefix", ChargeInput{CardNumber: "5105105105105100", CardHolder: "MARIA SILVA", CVV: "123"}, OutcomeFailed},
		{"missing holder", ChargeInput{CardNumber: "4012888888881881", CVV: "123"}, OutcomeFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := g.Charge(ctx, &tc.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("outcome = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCardGatewayExpiredContext(t *testing.T) {
	g := NewCardGateway()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	outcome, err := g.Charge(ctx, &ChargeInput{CardNumber: "4012888888881881", CardHolder: "MARIA SILVA", CVV: "123"})
	if err == nil {
		t.Fatal("expected context error")
	}
	if outcome != OutcomeFailed {
		t.Fatalf("outcome = %v, want OutcomeFailed", outcome)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(NewCardGateway(), NewPixGateway())

	if _, err := reg.Get(1); err != nil {
		t.Fatalf("expected card gateway, got %v", err)
	}
	if _, err := reg.Get(99); err != ErrMethodNotSupported {
		t.Fatalf("expected ErrMethodNotSupported, got %v", err)
	}
}
