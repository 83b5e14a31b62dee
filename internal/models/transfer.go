package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer statuses
const (
	TransferStatusCompleted = "completed"
	TransferStatusFailed    = "failed"
)

// Transfer links the exact two transactions a wallet-to-wallet move
// produced. It is created atomically with them and immutable thereafter.
type Transfer struct {
	ID                uint            `gorm:"primarykey" json:"id"`
	Reference         string          `gorm:"uniqueIndex;not null" json:"reference"`
	FromWalletID      uint            `gorm:"index;not null" json:"from_wallet_id"`
	ToWalletID        uint            `gorm:"index;not null" json:"to_wallet_id"`
	FromUserID        uint            `gorm:"not null" json:"from_user_id"`
	ToUserID          uint            `gorm:"not null" json:"to_user_id"`
	Amount            decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Currency          Currency        `gorm:"type:varchar(3);not null" json:"currency"`
	Note              string          `json:"note,omitempty"`
	Status            string          `gorm:"not null" json:"status"`
	FromTransactionID uint            `gorm:"not null" json:"from_transaction_id"`
	ToTransactionID   uint            `gorm:"not null" json:"to_transaction_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (Transfer) TableName() string {
	return "wallet_transfers"
}
