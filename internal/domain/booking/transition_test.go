package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
)

func newBooking(option string, price float64) *models.Booking {
	client, creative, payment := InitialStatuses(PaymentOption(option))
	return &models.Booking{
		PaymentOption:  option,
		Price:          price,
		ClientStatus:   string(client),
		CreativeStatus: string(creative),
		PaymentStatus:  string(payment),
	}
}

func TestApplyPaymentUpfront(t *testing.T) {
	b := newBooking("upfront", 200)

	ApplyPayment(b, 200, false)

	assert.Equal(t, 200.0, b.AmountPaid)
	assert.Equal(t, string(PaymentFullyPaid), b.PaymentStatus)
	assert.Equal(t, string(ClientCompleted), b.ClientStatus)
	assert.Equal(t, string(CreativeCompleted), b.CreativeStatus)
}

func TestApplyPaymentUpfrontWithFiles(t *testing.T) {
	b := newBooking("upfront", 200)

	ApplyPayment(b, 200, true)

	assert.Equal(t, string(ClientDownload), b.ClientStatus)
	assert.Equal(t, string(CreativeCompleted), b.CreativeStatus)
}

func TestApplyPaymentSplitDefaultDeposit(t *testing.T) {
	b := newBooking("split", 200)

	// first payment is the 50% default deposit
	assert.Equal(t, 100.0, AmountDue(b))
	ApplyPayment(b, 100, false)

	assert.Equal(t, 100.0, b.AmountPaid)
	assert.Equal(t, string(PaymentDepositPaid), b.PaymentStatus)
	assert.Equal(t, string(ClientInProgress), b.ClientStatus)
	assert.Equal(t, string(CreativeInProgress), b.CreativeStatus)

	// second payment closes the balance
	assert.Equal(t, 100.0, AmountDue(b))
	ApplyPayment(b, 100, true)

	assert.Equal(t, 200.0, b.AmountPaid)
	assert.Equal(t, string(PaymentFullyPaid), b.PaymentStatus)
	assert.Equal(t, string(ClientDownload), b.ClientStatus)
	assert.Equal(t, string(CreativeCompleted), b.CreativeStatus)
}

func TestApplyPaymentSplitCustomDeposit(t *testing.T) {
	b := newBooking("split", 1000)
	deposit := 300.0
	b.SplitDepositAmount = &deposit

	assert.Equal(t, 300.0, AmountDue(b))
	ApplyPayment(b, 300, false)

	assert.Equal(t, 300.0, b.AmountPaid)
	assert.Equal(t, string(PaymentDepositPaid), b.PaymentStatus)

	// the remainder, not another deposit
	assert.Equal(t, 700.0, AmountDue(b))
	ApplyPayment(b, 700, false)

	assert.Equal(t, 1000.0, b.AmountPaid)
	assert.Equal(t, string(PaymentFullyPaid), b.PaymentStatus)
	assert.Equal(t, string(ClientCompleted), b.ClientStatus)
}

func TestApplyPaymentLater(t *testing.T) {
	b := newBooking("later", 400)
	assert.Equal(t, string(ClientInProgress), b.ClientStatus)
	assert.Equal(t, string(CreativeInProgress), b.CreativeStatus)

	ApplyPayment(b, 150, false)
	assert.Equal(t, string(PaymentDepositPaid), b.PaymentStatus)
	assert.Equal(t, string(ClientInProgress), b.ClientStatus)

	ApplyPayment(b, 250, false)
	assert.Equal(t, string(PaymentFullyPaid), b.PaymentStatus)
	assert.Equal(t, string(ClientCompleted), b.ClientStatus)
	assert.Equal(t, string(CreativeCompleted), b.CreativeStatus)
}

func TestApplyPaymentUnlocksLockedBooking(t *testing.T) {
	b := newBooking("later", 400)
	b.AmountPaid = 100
	b.PaymentStatus = string(PaymentDepositPaid)
	b.ClientStatus = string(ClientLocked)
	b.CreativeStatus = string(CreativeCompleted)

	ApplyPayment(b, 300, true)

	assert.Equal(t, 400.0, b.AmountPaid)
	assert.Equal(t, string(PaymentFullyPaid), b.PaymentStatus)
	assert.Equal(t, string(ClientDownload), b.ClientStatus)
}

func TestApplyPaymentAccumulates(t *testing.T) {
	b := newBooking("later", 300)

	ApplyPayment(b, 100, false)
	ApplyPayment(b, 100, false)
	ApplyPayment(b, 100, false)

	assert.Equal(t, 300.0, b.AmountPaid)
	assert.Equal(t, string(PaymentFullyPaid), b.PaymentStatus)
}

func TestInitialStatuses(t *testing.T) {
	client, creative, payment := InitialStatuses(OptionUpfront)
	assert.Equal(t, ClientPending, client)
	assert.Equal(t, CreativePending, creative)
	assert.Equal(t, PaymentPending, payment)

	client, creative, payment = InitialStatuses(OptionLater)
	assert.Equal(t, ClientInProgress, client)
	assert.Equal(t, CreativeInProgress, creative)
	assert.Equal(t, PaymentPending, payment)

	client, creative, payment = InitialStatuses(OptionFree)
	assert.Equal(t, ClientInProgress, client)
	assert.Equal(t, CreativeInProgress, creative)
	assert.Equal(t, PaymentFullyPaid, payment)
}

func TestCancelGuards(t *testing.T) {
	now := time.Now()

	b := newBooking("upfront", 100)
	require.NoError(t, Cancel(b, now))
	assert.Equal(t, string(ClientCancelled), b.ClientStatus)

	err := Cancel(b, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	b = newBooking("upfront", 100)
	b.ClientStatus = string(ClientDownload)
	assert.Error(t, Cancel(b, now))
}

func TestApproveRejectGuards(t *testing.T) {
	now := time.Now()

	b := newBooking("upfront", 100)
	require.NoError(t, Approve(b, now))
	assert.Equal(t, string(CreativeInProgress), b.CreativeStatus)
	assert.Equal(t, string(ClientInProgress), b.ClientStatus)

	assert.Error(t, Approve(b, now))
	assert.Error(t, Reject(b, now))

	b = newBooking("upfront", 100)
	require.NoError(t, Reject(b, now))
	assert.Equal(t, string(CreativeRejected), b.CreativeStatus)
}

func TestFinalizePaidAndUnpaid(t *testing.T) {
	now := time.Now()

	// unpaid balance parks the client at locked
	b := newBooking("later", 500)
	require.NoError(t, Finalize(b, true, now))
	assert.Equal(t, string(CreativeCompleted), b.CreativeStatus)
	assert.Equal(t, string(ClientLocked), b.ClientStatus)

	// fully paid with files goes straight to download
	b = newBooking("later", 500)
	b.PaymentStatus = string(PaymentFullyPaid)
	require.NoError(t, Finalize(b, true, now))
	assert.Equal(t, string(ClientDownload), b.ClientStatus)

	// fully paid without files completes
	b = newBooking("later", 500)
	b.PaymentStatus = string(PaymentFullyPaid)
	require.NoError(t, Finalize(b, false, now))
	assert.Equal(t, string(ClientCompleted), b.ClientStatus)

	// only an in-progress creative can finalize
	b = newBooking("upfront", 500)
	assert.Error(t, Finalize(b, false, now))
}

func TestCanAccessDeliverables(t *testing.T) {
	b := newBooking("upfront", 100)
	err := CanAccessDeliverables(b)
	assert.True(t, httperr.IsBusiness(err, "deliverables_locked"))

	b.ClientStatus = string(ClientDownload)
	assert.NoError(t, CanAccessDeliverables(b))

	b.ClientStatus = string(ClientCompleted)
	assert.NoError(t, CanAccessDeliverables(b))

	b.ClientStatus = string(ClientLocked)
	assert.Error(t, CanAccessDeliverables(b))
}

func TestValidPaymentOption(t *testing.T) {
	for _, opt := range []string{"upfront", "split", "later", "free"} {
		assert.True(t, ValidPaymentOption(opt))
	}
	assert.False(t, ValidPaymentOption("installments"))
	assert.False(t, ValidPaymentOption(""))
}
