package transfer

import (
	"context"

	"lirapay/internal/models"

	"github.com/shopspring/decimal"
)

// Result is returned after a committed transfer.
type Result struct {
	TransferID  uint            `json:"transfer_id"`
	Reference   string          `json:"reference"`
	FromBalance decimal.Decimal `json:"from_balance"`
	ToBalance   decimal.Decimal `json:"to_balance"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    models.Currency `json:"currency"`
}

// Service coordinates money moves between two wallets. Both balance updates,
// both ledger entries and the transfer record commit as one unit or not at
// all.
type Service interface {
	Transfer(ctx context.Context, fromUserID, toUserID uint, amount decimal.Decimal, currency models.Currency, note string) (*Result, error)
}
