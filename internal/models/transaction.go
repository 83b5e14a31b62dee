package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeTopup       = "topup"
	TransactionTypePayment     = "payment"
	TransactionTypeRefund      = "refund"
	TransactionTypeTransferIn  = "transfer_in"
	TransactionTypeTransferOut = "transfer_out"
	TransactionTypeBonus       = "bonus"
	TransactionTypeCashback    = "cashback"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is one immutable ledger entry. A completed row is never
// updated or deleted; corrections are recorded as new entries.
type Transaction struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	WalletID      uint            `gorm:"index;not null" json:"wallet_id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	Type          string          `gorm:"not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Currency      Currency        `gorm:"type:varchar(3);not null" json:"currency"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_after"`
	Status        string          `gorm:"not null;default:'pending'" json:"status"`
	Reference     string          `gorm:"index" json:"reference,omitempty"` // external reference id
	ReferenceType string          `json:"reference_type,omitempty"`         // bill, subscription, transfer, ...
	ReferenceID   string          `json:"reference_id,omitempty"`
	RelatedUserID *uint           `json:"related_user_id,omitempty"` // counterparty on transfers
	Description   string          `json:"description,omitempty"`
	Metadata      JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

func (Transaction) TableName() string {
	return "wallet_transactions"
}

// IsCreditType reports whether the type increases the wallet balance.
func IsCreditType(t string) bool {
	switch t {
	case TransactionTypeTopup, TransactionTypeRefund, TransactionTypeTransferIn,
		TransactionTypeBonus, TransactionTypeCashback:
		return true
	}
	return false
}

// IsDebitType reports whether the type decreases the wallet balance.
func IsDebitType(t string) bool {
	switch t {
	case TransactionTypePayment, TransactionTypeTransferOut:
		return true
	}
	return false
}

// SignedAmount returns the amount with the sign convention for the type.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if IsDebitType(t.Type) {
		return t.Amount.Neg()
	}
	return t.Amount
}
