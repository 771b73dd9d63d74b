package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/artisanhub/marketplace-api/internal/cache"
	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/gateway"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/notify"
	"github.com/artisanhub/marketplace-api/internal/timezone"
)

type VerifyPayment struct {
	repo    domain.Repository
	gateway gateway.PaymentGateway
	notify  *notify.Dispatcher
	cache   *cache.Cache
	log     zerolog.Logger

	Now func() time.Time
}

func NewVerifyPayment(
	repo domain.Repository,
	gw gateway.PaymentGateway,
	dispatcher *notify.Dispatcher,
	c *cache.Cache,
	log zerolog.Logger,
) *VerifyPayment {
	return &VerifyPayment{
		repo:    repo,
		gateway: gw,
		notify:  dispatcher,
		cache:   c,
		log:     log,
		Now:     timezone.Now,
	}
}

// Execute reconciles one completed checkout session against a booking:
// exactly once per session it accumulates the paid amount, derives the
// payment status for the booking's payment option, and unlocks deliverables
// when the balance closes. The booking's updated_at is forced to the
// payment's own timestamp so it can serve as "last payment date".
func (uc *VerifyPayment) Execute(
	ctx context.Context,
	bookingID uint,
	sessionID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	creative, err := uc.repo.GetUser(ctx, b.CreativeID)
	if err != nil {
		return nil, httperr.ErrBusiness("creative_not_found")
	}

	if uc.cache.SessionProcessed(ctx, b.ID, sessionID) {
		return nil, httperr.ErrBusiness("payment_already_processed")
	}

	sess, err := uc.gateway.RetrieveCheckoutSession(ctx, sessionID, creative.StripeAccountID)
	if err != nil {
		uc.log.Error().Err(err).Str("session_id", sessionID).Msg("checkout session retrieval failed")
		return nil, httperr.ErrBusiness("payment_verification_failed")
	}

	if sess.PaymentStatus != gateway.StatusPaid {
		return nil, httperr.ErrBusiness("payment_not_completed")
	}
	if ref, ok := sess.Metadata["booking_id"]; ok && ref != b.PublicID {
		return nil, httperr.ErrBusiness("payment_booking_mismatch")
	}

	amount := float64(sess.AmountTotal) / 100
	paidAt := uc.paymentTimestamp(ctx, sess, creative.StripeAccountID)

	payment := &models.ProcessedPayment{
		BookingID:   b.ID,
		SessionID:   sessionID,
		Amount:      amount,
		ProcessedAt: paidAt,
	}

	updated, err := uc.repo.RunPaymentTransaction(ctx, b.ID, payment,
		func(locked *models.Booking, filesExist bool) error {
			domain.ApplyPayment(locked, amount, filesExist)
			locked.UpdatedAt = paidAt
			return nil
		})
	if err != nil {
		return nil, err
	}

	uc.cache.MarkSessionProcessed(ctx, b.ID, sessionID)
	uc.notifyBoth(updated, creative, amount)

	return updated, nil
}

// paymentTimestamp resolves the moment the money moved: payment intent
// creation, then session creation, then wall clock.
func (uc *VerifyPayment) paymentTimestamp(
	ctx context.Context,
	sess *gateway.CheckoutSession,
	subAccount string,
) time.Time {

	if sess.PaymentIntentID != "" {
		pi, err := uc.gateway.RetrievePaymentIntent(ctx, sess.PaymentIntentID, subAccount)
		if err == nil && pi.Created > 0 {
			return time.Unix(pi.Created, 0).UTC()
		}
		if err != nil {
			uc.log.Warn().Err(err).Str("payment_intent", sess.PaymentIntentID).Msg("payment intent lookup failed")
		}
	}
	if sess.Created > 0 {
		return time.Unix(sess.Created, 0).UTC()
	}
	return uc.Now()
}

func (uc *VerifyPayment) notifyBoth(b *models.Booking, creative *models.User, amount float64) {
	bookingID := b.ID
	msg := fmt.Sprintf("Payment of %.2f received for booking %s", amount, b.PublicID)

	uc.notify.Dispatch(notify.Event{
		RecipientID:   b.ClientID,
		Type:          "payment_received",
		Title:         "Payment confirmed",
		Message:       msg,
		RelatedEntity: "booking",
		RelatedID:     &bookingID,
		TargetRoles:   models.RoleClient,
	})
	uc.notify.Dispatch(notify.Event{
		RecipientID:   b.CreativeID,
		Email:         creative.Email,
		Type:          "payment_received",
		Title:         "Payment received",
		Message:       msg,
		RelatedEntity: "booking",
		RelatedID:     &bookingID,
		TargetRoles:   models.RoleCreative,
	})
}
