package booking

import (
	"context"
	"fmt"
	"math"

	"github.com/artisanhub/marketplace-api/internal/config"
	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/gateway"
	"github.com/artisanhub/marketplace-api/internal/httperr"
)

type CreateCheckout struct {
	repo    domain.Repository
	gateway gateway.PaymentGateway
	cfg     *config.Config
}

func NewCreateCheckout(
	repo domain.Repository,
	gw gateway.PaymentGateway,
	cfg *config.Config,
) *CreateCheckout {
	return &CreateCheckout{repo: repo, gateway: gw, cfg: cfg}
}

// Execute opens a checkout session for whatever the booking still owes:
// the split deposit (or its override) on the first payment, the remaining
// balance afterwards.
func (uc *CreateCheckout) Execute(
	ctx context.Context,
	clientID uint,
	bookingID uint,
) (*gateway.CheckoutSession, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if b.ClientID != clientID {
		return nil, httperr.ErrBusiness("not_your_booking")
	}

	if domain.PaymentOption(b.PaymentOption) == domain.OptionFree {
		return nil, httperr.ErrBusiness("nothing_to_pay")
	}
	if domain.PaymentStatus(b.PaymentStatus) == domain.PaymentFullyPaid {
		return nil, httperr.ErrBusiness("already_paid")
	}

	due := domain.AmountDue(b)
	if due <= 0 {
		return nil, httperr.ErrBusiness("nothing_to_pay")
	}

	creative, err := uc.repo.GetUser(ctx, b.CreativeID)
	if err != nil {
		return nil, httperr.ErrBusiness("creative_not_found")
	}

	service, err := uc.repo.GetService(ctx, b.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	sess, err := uc.gateway.CreateCheckoutSession(ctx, gateway.CreateCheckoutInput{
		Amount:      int64(math.Round(due * 100)),
		Description: fmt.Sprintf("%s (%s)", service.Title, b.BookingDate.Format("2006-01-02")),
		Metadata: map[string]string{
			"booking_id": b.PublicID,
		},
		SuccessURL: uc.cfg.CheckoutSuccess,
		CancelURL:  uc.cfg.CheckoutCancel,
	}, creative.StripeAccountID)
	if err != nil {
		return nil, httperr.ErrBusiness("checkout_failed")
	}

	return sess, nil
}
