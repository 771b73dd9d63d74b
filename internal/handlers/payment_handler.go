package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/httpresp"
	"github.com/artisanhub/marketplace-api/internal/middleware"
	ucbooking "github.com/artisanhub/marketplace-api/internal/usecase/booking"
)

type PaymentHandler struct {
	checkout *ucbooking.CreateCheckout
	verify   *ucbooking.VerifyPayment
}

func NewPaymentHandler(
	checkout *ucbooking.CreateCheckout,
	verify *ucbooking.VerifyPayment,
) *PaymentHandler {
	return &PaymentHandler{checkout: checkout, verify: verify}
}

// Checkout opens a gateway session for the booking's outstanding amount and
// hands the redirect URL back to the client.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	sess, err := h.checkout.Execute(c.Request.Context(), clientID, bookingID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"session_id":   sess.ID,
		"checkout_url": sess.URL,
	})
}

type VerifyPaymentRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Verify reconciles a completed checkout session against the booking.
func (h *PaymentHandler) Verify(c *gin.Context) {
	bookingID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "session_id is required.")
		return
	}

	b, err := h.verify.Execute(c.Request.Context(), bookingID, req.SessionID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, b)
}
