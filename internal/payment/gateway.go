package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// Gateway hands out a client secret for a charge. The real processing
// happens on the gateway side, we only hold the handle.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64) (clientSecret string, err error)
}

// AmountMinor converts a resale price into minor units for the gateway.
func AmountMinor(price float64) int64 {
	return int64(math.Round(price * 100))
}

type StripeGateway struct{}

func NewStripeGateway(secret string) *StripeGateway {
	stripe.Key = secret
	return &StripeGateway{}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create intent: %w", err)
	}
	return pi.ClientSecret, nil
}
