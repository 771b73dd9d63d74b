package gateway

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// StripeGateway talks to Stripe directly; connected accounts are addressed
// via the Stripe-Account header that the SDK sets from params.
type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateCheckoutSession(
	ctx context.Context,
	in CreateCheckoutInput,
	subAccount string,
) (*CheckoutSession, error) {

	currency := in.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(in.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Description),
					},
				},
			},
		},
	}
	params.Context = ctx
	if subAccount != "" {
		params.SetStripeAccount(subAccount)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

func (g *StripeGateway) RetrieveCheckoutSession(
	ctx context.Context,
	sessionID string,
	subAccount string,
) (*CheckoutSession, error) {

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	if subAccount != "" {
		params.SetStripeAccount(subAccount)
	}

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

func (g *StripeGateway) RetrievePaymentIntent(
	ctx context.Context,
	paymentIntentID string,
	subAccount string,
) (*PaymentIntent, error) {

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	if subAccount != "" {
		params.SetStripeAccount(subAccount)
	}

	pi, err := paymentintent.Get(paymentIntentID, params)
	if err != nil {
		return nil, err
	}
	return &PaymentIntent{ID: pi.ID, Created: pi.Created}, nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
		URL:           s.URL,
		Created:       s.Created,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out
}
