package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet statuses
const (
	WalletStatusActive    = "active"
	WalletStatusFrozen    = "frozen"
	WalletStatusSuspended = "suspended"
)

// Wallet holds a user's per-currency balances and operational settings.
// Balances are only ever written through ledger operations.
type Wallet struct {
	ID                    uint            `gorm:"primarykey" json:"id"`
	UserID                uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	BalanceUSD            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance_usd"`
	BalanceLBP            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance_lbp"`
	BalanceEUR            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance_eur"`
	DefaultCurrency       Currency        `gorm:"type:varchar(3);not null;default:'USD'" json:"default_currency"`
	Status                string          `gorm:"not null;default:'active'" json:"status"`
	StatusReason          string          `gorm:"default:''" json:"status_reason,omitempty"`
	LowBalanceThreshold   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"low_balance_threshold"`
	LastLowBalanceAlertAt *time.Time      `json:"last_low_balance_alert_at,omitempty"`
	AutoTopupEnabled      bool            `gorm:"not null;default:false" json:"auto_topup_enabled"`
	AutoTopupThreshold    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"auto_topup_threshold"`
	AutoTopupAmount       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"auto_topup_amount"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// New wallets always start empty regardless of what the caller set.
	w.BalanceUSD = decimal.Zero
	w.BalanceLBP = decimal.Zero
	w.BalanceEUR = decimal.Zero
	if w.DefaultCurrency == "" {
		w.DefaultCurrency = CurrencyUSD
	}
	if w.Status == "" {
		w.Status = WalletStatusActive
	}
	return nil
}

// Balance returns the balance held in the given currency.
func (w *Wallet) Balance(c Currency) decimal.Decimal {
	switch c {
	case CurrencyLBP:
		return w.BalanceLBP
	case CurrencyEUR:
		return w.BalanceEUR
	default:
		return w.BalanceUSD
	}
}

// Balances returns all balances keyed by currency.
func (w *Wallet) Balances() map[Currency]decimal.Decimal {
	return map[Currency]decimal.Decimal{
		CurrencyUSD: w.BalanceUSD,
		CurrencyLBP: w.BalanceLBP,
		CurrencyEUR: w.BalanceEUR,
	}
}

// SetBalance overwrites the in-memory balance for the given currency.
func (w *Wallet) SetBalance(c Currency, v decimal.Decimal) {
	switch c {
	case CurrencyLBP:
		w.BalanceLBP = v
	case CurrencyEUR:
		w.BalanceEUR = v
	default:
		w.BalanceUSD = v
	}
}

// WalletSettings is a partial update of the wallet's tunable fields.
// Nil pointers leave the current value untouched.
type WalletSettings struct {
	LowBalanceThreshold *decimal.Decimal `json:"low_balance_threshold,omitempty"`
	AutoTopupEnabled    *bool            `json:"auto_topup_enabled,omitempty"`
	AutoTopupThreshold  *decimal.Decimal `json:"auto_topup_threshold,omitempty"`
	AutoTopupAmount     *decimal.Decimal `json:"auto_topup_amount,omitempty"`
	DefaultCurrency     *Currency        `json:"default_currency,omitempty"`
}
