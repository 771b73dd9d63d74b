package gateway

import "context"

// CheckoutSession is the read-only view of a gateway payment attempt that
// the verification path consumes.
type CheckoutSession struct {
	ID              string
	PaymentStatus   string
	AmountTotal     int64 // minor units
	Currency        string
	Metadata        map[string]string
	PaymentIntentID string
	URL             string
	Created         int64 // unix seconds
}

type PaymentIntent struct {
	ID      string
	Created int64
}

const StatusPaid = "paid"

// CreateCheckoutInput describes a single payment attempt for a booking.
// Amount is in minor units.
type CreateCheckoutInput struct {
	Amount      int64
	Currency    string
	Description string
	Metadata    map[string]string
	SuccessURL  string
	CancelURL   string
}

// PaymentGateway abstracts the payment provider. subAccount is the
// creative's connected account; empty means the platform account.
type PaymentGateway interface {
	CreateCheckoutSession(
		ctx context.Context,
		in CreateCheckoutInput,
		subAccount string,
	) (*CheckoutSession, error)

	RetrieveCheckoutSession(
		ctx context.Context,
		sessionID string,
		subAccount string,
	) (*CheckoutSession, error)

	RetrievePaymentIntent(
		ctx context.Context,
		paymentIntentID string,
		subAccount string,
	) (*PaymentIntent, error)
}
