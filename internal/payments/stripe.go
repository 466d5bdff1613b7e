package payments

import (
	"context"

	"github.com/skylift/skybook/config"
	"github.com/stripe/stripe-go/v82"
)

type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       string
}

const StatusSucceeded = string(stripe.PaymentIntentStatusSucceeded)

// Provider abstracts the payment processor so the booking service can be
// tested without Stripe.
type Provider interface {
	CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}

type StripeProvider struct {
	client   *stripe.Client
	currency string
}

func NewStripeProvider(cfg config.StripeConfig) *StripeProvider {
	return &StripeProvider{
		client:   stripe.NewClient(cfg.SecretKey),
		currency: cfg.Currency,
	}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amountCents int64, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(p.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}
	pi, err := p.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func (p *StripeProvider) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	pi, err := p.client.V1PaymentIntents.Retrieve(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return fromStripe(pi), nil
}

func fromStripe(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}

var _ Provider = (*StripeProvider)(nil)
