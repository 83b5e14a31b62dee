package repositories

import (
	"context"
	"time"

	"lirapay/internal/models"

	"github.com/shopspring/decimal"
)

// WalletRepository is the sole write path for wallet balances. Balance
// mutations only happen through an ExecuteInTransaction scope where the
// wallet row is held under a row lock.
type WalletRepository interface {
	GetByID(id uint) (*models.Wallet, error)
	GetByUserID(userID uint) (*models.Wallet, error)

	// GetOrCreate returns the user's wallet, creating an empty one on first
	// access. Safe under concurrent calls for the same new user.
	GetOrCreate(userID uint) (*models.Wallet, error)

	// GetForUpdate and GetForUpdateByID load the wallet row under a
	// FOR UPDATE lock. Only meaningful inside ExecuteInTransaction.
	GetForUpdate(userID uint) (*models.Wallet, error)
	GetForUpdateByID(id uint) (*models.Wallet, error)

	// UpdateBalance overwrites one currency balance. Callers compute the new
	// value while holding the row lock.
	UpdateBalance(walletID uint, currency models.Currency, newBalance decimal.Decimal) error

	UpdateSettings(userID uint, settings models.WalletSettings) (*models.Wallet, error)
	SetStatus(walletID uint, status, reason string) error
	MarkLowBalanceAlert(walletID uint, at time.Time) error
	ListPaginated(limit, offset int) ([]models.Wallet, int64, error)

	// Ledger writes share the wallet's transactional scope.
	CreateTransaction(txn *models.Transaction) error
	CreateTransfer(transfer *models.Transfer) error

	// ExecuteInTransaction runs fn against a repository bound to one
	// database transaction. Any error rolls the whole scope back.
	ExecuteInTransaction(ctx context.Context, fn func(tx WalletRepository) error) error
}
