package wallet

import (
	"time"

	"lirapay/internal/models"

	"github.com/shopspring/decimal"
)

// Config holds tunables for wallet operations.
type Config struct {
	DefaultCurrency    models.Currency
	LowBalanceCooldown time.Duration
	LockTimeout        time.Duration
}

// TopUpInput credits a wallet from an external payment method. The method
// is an opaque label; no gateway processing happens here.
type TopUpInput struct {
	UserID           uint
	Amount           decimal.Decimal
	Currency         models.Currency
	PaymentMethod    string
	PaymentReference string
	Metadata         map[string]interface{}
}

// PayInput debits a wallet against a business reference (bill,
// subscription, ...). Description is required.
type PayInput struct {
	UserID        uint
	Amount        decimal.Decimal
	Currency      models.Currency
	ReferenceType string
	ReferenceID   string
	Description   string
}

// RefundInput credits a wallet to reverse an earlier charge.
type RefundInput struct {
	UserID        uint
	Amount        decimal.Decimal
	Currency      models.Currency
	ReferenceType string
	ReferenceID   string
	Reason        string
}

// BonusInput credits a wallet with a promotional or compensatory amount.
// Kind is one of bonus, cashback, points_conversion.
type BonusInput struct {
	UserID      uint
	Amount      decimal.Decimal
	Currency    models.Currency
	Kind        string
	Description string
	Metadata    map[string]interface{}
}

// OperationResult is what every balance-affecting operation returns: the
// ledger entry it produced and the balance after commit.
type OperationResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance"`
	Currency    models.Currency     `json:"currency"`
}

// BalanceSummary is the read-only view of a wallet.
type BalanceSummary struct {
	WalletID        uint                                `json:"wallet_id"`
	Balance         decimal.Decimal                     `json:"balance"`
	Currency        models.Currency                     `json:"currency"`
	DefaultCurrency models.Currency                     `json:"default_currency"`
	Status          string                              `json:"status"`
	Balances        map[models.Currency]decimal.Decimal `json:"balances"`
}
