package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanhub/marketplace-api/internal/config"
	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
)

func checkoutFixture(option string, price float64) (*fakeRepo, *models.Booking) {
	repo, b := paymentFixture(option, price)
	repo.services[7] = &models.Service{ID: 7, CreativeID: 2, Title: "Portrait session", Price: price}
	return repo, b
}

func testConfig() *config.Config {
	return &config.Config{
		CheckoutSuccess: "https://app.example/success",
		CheckoutCancel:  "https://app.example/cancel",
	}
}

func TestCreateCheckoutUpfront(t *testing.T) {
	repo, b := checkoutFixture("upfront", 200)
	gw := &fakeGateway{}

	uc := NewCreateCheckout(repo, gw, testConfig())
	sess, err := uc.Execute(context.Background(), b.ClientID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, "cs_test", sess.ID)
	require.NotNil(t, gw.created)
	assert.Equal(t, int64(20000), gw.created.Amount)
	assert.Equal(t, b.PublicID, gw.created.Metadata["booking_id"])
	assert.Equal(t, "https://app.example/success", gw.created.SuccessURL)
}

func TestCreateCheckoutSplitChargesDepositFirst(t *testing.T) {
	repo, b := checkoutFixture("split", 200)
	gw := &fakeGateway{}

	uc := NewCreateCheckout(repo, gw, testConfig())
	_, err := uc.Execute(context.Background(), b.ClientID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), gw.created.Amount)

	// after the deposit lands, the next checkout is the remainder
	repo.bookings[b.ID].AmountPaid = 100
	repo.bookings[b.ID].PaymentStatus = string(domain.PaymentDepositPaid)

	_, err = uc.Execute(context.Background(), b.ClientID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), gw.created.Amount)
}

func TestCreateCheckoutCustomDeposit(t *testing.T) {
	repo, b := checkoutFixture("split", 1000)
	deposit := 300.0
	repo.bookings[b.ID].SplitDepositAmount = &deposit
	gw := &fakeGateway{}

	uc := NewCreateCheckout(repo, gw, testConfig())
	_, err := uc.Execute(context.Background(), b.ClientID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(30000), gw.created.Amount)
}

func TestCreateCheckoutGuards(t *testing.T) {
	uc := NewCreateCheckout(newFakeRepo(), &fakeGateway{}, testConfig())
	_, err := uc.Execute(context.Background(), 3, 999)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))

	repo, b := checkoutFixture("upfront", 200)
	uc = NewCreateCheckout(repo, &fakeGateway{}, testConfig())
	_, err = uc.Execute(context.Background(), 99, b.ID)
	assert.True(t, httperr.IsBusiness(err, "not_your_booking"))

	repo, b = checkoutFixture("free", 0)
	uc = NewCreateCheckout(repo, &fakeGateway{}, testConfig())
	_, err = uc.Execute(context.Background(), b.ClientID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "nothing_to_pay"))

	repo, b = checkoutFixture("upfront", 200)
	repo.bookings[b.ID].AmountPaid = 200
	repo.bookings[b.ID].PaymentStatus = string(domain.PaymentFullyPaid)
	uc = NewCreateCheckout(repo, &fakeGateway{}, testConfig())
	_, err = uc.Execute(context.Background(), b.ClientID, b.ID)
	assert.True(t, httperr.IsBusiness(err, "already_paid"))
}
