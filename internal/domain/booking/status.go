package booking

import "github.com/artisanhub/marketplace-api/internal/httperr"

// ===============================
// Payment options
// ===============================

type PaymentOption string

const (
	OptionUpfront PaymentOption = "upfront"
	OptionSplit   PaymentOption = "split"
	OptionLater   PaymentOption = "later"
	OptionFree    PaymentOption = "free"
)

func ValidPaymentOption(opt string) bool {
	switch PaymentOption(opt) {
	case OptionUpfront, OptionSplit, OptionLater, OptionFree:
		return true
	}
	return false
}

// ===============================
// Payment status
// ===============================

type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentFullyPaid   PaymentStatus = "fully_paid"
)

// ===============================
// Client / creative lifecycles
// ===============================

// The two status fields track independent views of the same booking: the
// client can be at "download" while the creative already sees "completed".

type ClientStatus string

const (
	ClientPending    ClientStatus = "pending"
	ClientInProgress ClientStatus = "in_progress"
	ClientLocked     ClientStatus = "locked"
	ClientDownload   ClientStatus = "download"
	ClientCompleted  ClientStatus = "completed"
	ClientCancelled  ClientStatus = "cancelled"
)

type CreativeStatus string

const (
	CreativePending    CreativeStatus = "pending"
	CreativeInProgress CreativeStatus = "in_progress"
	CreativeCompleted  CreativeStatus = "completed"
	CreativeRejected   CreativeStatus = "rejected"
)

// ===============================
// Transition guards
// ===============================

func CanCancel(current ClientStatus) error {
	if current != ClientPending && current != ClientInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanApprove(current CreativeStatus) error {
	if current != CreativePending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReject(current CreativeStatus) error {
	if current != CreativePending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanFinalize(current CreativeStatus) error {
	if current != CreativeInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatuses returns the starting lifecycle pair for a payment option.
// Later/free bookings begin work immediately; upfront/split wait for the
// first verified payment.
func InitialStatuses(opt PaymentOption) (ClientStatus, CreativeStatus, PaymentStatus) {
	switch opt {
	case OptionLater:
		return ClientInProgress, CreativeInProgress, PaymentPending
	case OptionFree:
		return ClientInProgress, CreativeInProgress, PaymentFullyPaid
	default:
		return ClientPending, CreativePending, PaymentPending
	}
}
