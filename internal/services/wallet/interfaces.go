package wallet

import (
	"context"

	"lirapay/internal/models"
	"lirapay/internal/repositories"
	"lirapay/internal/utils/pagination"
)

// Service defines the wallet ledger operations.
type Service interface {
	// Balance-affecting operations
	TopUp(ctx context.Context, in TopUpInput) (*OperationResult, error)
	Pay(ctx context.Context, in PayInput) (*OperationResult, error)
	Refund(ctx context.Context, in RefundInput) (*OperationResult, error)
	Bonus(ctx context.Context, in BonusInput) (*OperationResult, error)

	// Reads
	GetBalance(ctx context.Context, userID uint, currency models.Currency) (*BalanceSummary, error)
	GetHistory(ctx context.Context, userID uint, filter repositories.HistoryFilter) ([]models.Transaction, pagination.Page, error)
	GetStatistics(ctx context.Context, userID uint) (*models.WalletStatistics, error)

	// Wallet management
	UpdateSettings(ctx context.Context, userID uint, settings models.WalletSettings) (*models.Wallet, error)
	Freeze(ctx context.Context, walletID uint, reason string) error
	Unfreeze(ctx context.Context, walletID uint) error
	ListWallets(ctx context.Context, limit, offset int) ([]models.Wallet, int64, error)
}

// Cache is the subset of the cache service the wallet service needs,
// defined here so tests can inject doubles.
type Cache interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}
