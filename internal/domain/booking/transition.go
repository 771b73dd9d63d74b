package booking

import (
	"time"

	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
)

// ApplyPayment advances a booking's monetary and status fields for one
// verified gateway payment. amount is already in the price's decimal unit.
//
// filesExist reports whether any deliverable is on record for the booking;
// it decides "download" vs "completed" when the payment closes the balance.
func ApplyPayment(b *models.Booking, amount float64, filesExist bool) {
	firstPayment := b.AmountPaid == 0
	b.AmountPaid += amount

	switch PaymentOption(b.PaymentOption) {
	case OptionSplit:
		if firstPayment {
			b.ClientStatus = string(ClientInProgress)
			b.CreativeStatus = string(CreativeInProgress)
			b.PaymentStatus = string(PaymentDepositPaid)
		} else if b.AmountPaid >= b.Price {
			b.PaymentStatus = string(PaymentFullyPaid)
		}

	case OptionUpfront:
		b.ClientStatus = string(ClientInProgress)
		b.CreativeStatus = string(CreativeInProgress)
		b.PaymentStatus = string(PaymentFullyPaid)

	case OptionLater:
		if b.AmountPaid >= b.Price {
			b.PaymentStatus = string(PaymentFullyPaid)
		} else {
			b.PaymentStatus = string(PaymentDepositPaid)
		}
	}

	// Full payment unlocks deliverables regardless of the branch above and
	// regardless of a prior "locked" state.
	if b.AmountPaid >= b.Price {
		if filesExist {
			b.ClientStatus = string(ClientDownload)
		} else {
			b.ClientStatus = string(ClientCompleted)
		}
		b.CreativeStatus = string(CreativeCompleted)
	}
}

// AmountDue returns what the next checkout session should charge.
func AmountDue(b *models.Booking) float64 {
	if PaymentOption(b.PaymentOption) == OptionSplit && b.AmountPaid == 0 {
		if b.SplitDepositAmount != nil && *b.SplitDepositAmount > 0 {
			return *b.SplitDepositAmount
		}
		return b.Price / 2
	}
	return b.Price - b.AmountPaid
}

// ===============================
// Lifecycle actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(ClientStatus(b.ClientStatus)); err != nil {
		return err
	}
	b.ClientStatus = string(ClientCancelled)
	b.UpdatedAt = now
	return nil
}

func Approve(b *models.Booking, now time.Time) error {
	if err := CanApprove(CreativeStatus(b.CreativeStatus)); err != nil {
		return err
	}
	b.CreativeStatus = string(CreativeInProgress)
	if ClientStatus(b.ClientStatus) == ClientPending {
		b.ClientStatus = string(ClientInProgress)
	}
	b.UpdatedAt = now
	return nil
}

func Reject(b *models.Booking, now time.Time) error {
	if err := CanReject(CreativeStatus(b.CreativeStatus)); err != nil {
		return err
	}
	b.CreativeStatus = string(CreativeRejected)
	b.UpdatedAt = now
	return nil
}

// Finalize is the creative marking the work delivered. An unpaid balance
// parks the client at "locked"; a later verified payment unlocks it through
// ApplyPayment.
func Finalize(b *models.Booking, filesExist bool, now time.Time) error {
	if err := CanFinalize(CreativeStatus(b.CreativeStatus)); err != nil {
		return err
	}
	b.CreativeStatus = string(CreativeCompleted)

	if PaymentStatus(b.PaymentStatus) == PaymentFullyPaid {
		if filesExist {
			b.ClientStatus = string(ClientDownload)
		} else {
			b.ClientStatus = string(ClientCompleted)
		}
	} else {
		b.ClientStatus = string(ClientLocked)
	}
	b.UpdatedAt = now
	return nil
}

// CanAccessDeliverables gates client downloads.
func CanAccessDeliverables(b *models.Booking) error {
	switch ClientStatus(b.ClientStatus) {
	case ClientDownload, ClientCompleted:
		return nil
	}
	return httperr.ErrBusiness("deliverables_locked")
}
