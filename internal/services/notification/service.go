// Package notification is the ledger's outbound gateway for user-facing
// alerts. Delivery is fire-and-forget: a failed notification is logged and
// dropped, it never unwinds a committed ledger operation.
package notification

import (
	"context"

	"lirapay/internal/models"

	"github.com/shopspring/decimal"
)

// Event kinds
const (
	EventTopup          = "wallet.topup"
	EventPayment        = "wallet.payment"
	EventRefund         = "wallet.refund"
	EventBonus          = "wallet.bonus"
	EventTransferSent   = "wallet.transfer_sent"
	EventTransferIn     = "wallet.transfer_received"
	EventLowBalance     = "wallet.low_balance"
	EventAutoTopupHint  = "wallet.auto_topup_suggested"
	EventWalletFrozen   = "wallet.frozen"
	EventWalletUnfrozen = "wallet.unfrozen"
)

// Event describes one ledger event a user should hear about.
type Event struct {
	Kind     string
	UserID   uint
	Amount   decimal.Decimal
	Currency models.Currency
	Balance  decimal.Decimal
	Message  string
}

// Notifier delivers a single event over whatever channels the platform has
// wired up (email, push, SMS). Implementations live outside the ledger.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
