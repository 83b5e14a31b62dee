package repositories

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"lirapay/internal/errors"
	"lirapay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// balanceColumns whitelists the column each currency maps to. Anything not
// in this table never reaches SQL.
var balanceColumns = map[models.Currency]string{
	models.CurrencyUSD: "balance_usd",
	models.CurrencyLBP: "balance_lbp",
	models.CurrencyEUR: "balance_eur",
}

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a gorm-backed WalletRepository.
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	wallet, err := r.GetByUserID(userID)
	if err == nil {
		return wallet, nil
	}
	if !stderrors.Is(err, errors.ErrWalletNotFound) {
		return nil, err
	}

	created := &models.Wallet{
		UserID:          userID,
		DefaultCurrency: models.CurrencyUSD,
		Status:          models.WalletStatusActive,
	}
	// ON CONFLICT DO NOTHING keeps a concurrent first access from creating
	// duplicates; the loser of the race re-reads the winner's row.
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(created)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.GetByUserID(userID)
	}
	return created, nil
}

func (r *walletRepository) GetForUpdate(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) GetForUpdateByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wallet, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) UpdateBalance(walletID uint, currency models.Currency, newBalance decimal.Decimal) error {
	column, ok := balanceColumns[currency]
	if !ok {
		return errors.ErrUnsupportedCurrency
	}
	if newBalance.IsNegative() {
		return errors.ErrInsufficientBalance
	}
	return r.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update(column, newBalance.Round(2)).Error
}

func (r *walletRepository) UpdateSettings(userID uint, settings models.WalletSettings) (*models.Wallet, error) {
	updates := map[string]interface{}{}
	if settings.LowBalanceThreshold != nil {
		updates["low_balance_threshold"] = *settings.LowBalanceThreshold
	}
	if settings.AutoTopupEnabled != nil {
		updates["auto_topup_enabled"] = *settings.AutoTopupEnabled
	}
	if settings.AutoTopupThreshold != nil {
		updates["auto_topup_threshold"] = *settings.AutoTopupThreshold
	}
	if settings.AutoTopupAmount != nil {
		updates["auto_topup_amount"] = *settings.AutoTopupAmount
	}
	if settings.DefaultCurrency != nil {
		updates["default_currency"] = *settings.DefaultCurrency
	}

	if len(updates) > 0 {
		res := r.db.Model(&models.Wallet{}).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, errors.ErrWalletNotFound
		}
	}
	return r.GetByUserID(userID)
}

func (r *walletRepository) SetStatus(walletID uint, status, reason string) error {
	res := r.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{"status": status, "status_reason": reason})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) MarkLowBalanceAlert(walletID uint, at time.Time) error {
	return r.db.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("last_low_balance_alert_at", at).Error
}

func (r *walletRepository) ListPaginated(limit, offset int) ([]models.Wallet, int64, error) {
	var wallets []models.Wallet
	var total int64
	if err := r.db.Model(&models.Wallet{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("id").Limit(limit).Offset(offset).Find(&wallets).Error; err != nil {
		return nil, 0, err
	}
	return wallets, total, nil
}

func (r *walletRepository) CreateTransaction(txn *models.Transaction) error {
	if err := validateEntry(txn); err != nil {
		return err
	}
	return r.db.Create(txn).Error
}

func (r *walletRepository) CreateTransfer(transfer *models.Transfer) error {
	return r.db.Create(transfer).Error
}

func (r *walletRepository) ExecuteInTransaction(ctx context.Context, fn func(tx WalletRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}

// validateEntry enforces the ledger math invariant before anything is
// persisted: balance_after must equal balance_before adjusted by the signed
// amount for the entry's type.
func validateEntry(txn *models.Transaction) error {
	if txn.WalletID == 0 || txn.UserID == 0 {
		return errors.ErrInvalidTransaction.WithMessage("ledger entry missing wallet or user")
	}
	if !txn.Amount.IsPositive() {
		return errors.ErrInvalidTransaction.WithMessage("ledger entry amount must be positive")
	}
	if !models.IsCreditType(txn.Type) && !models.IsDebitType(txn.Type) {
		return errors.ErrInvalidTransaction.WithMessage("unknown ledger entry type %q", txn.Type)
	}
	if !models.IsSupportedCurrency(txn.Currency) {
		return errors.ErrUnsupportedCurrency
	}
	expected := txn.BalanceBefore.Add(txn.SignedAmount())
	if !txn.BalanceAfter.Equal(expected) {
		return errors.ErrInvalidTransaction.WithMessage(
			"balance_after %s does not match %s %s %s",
			txn.BalanceAfter, txn.BalanceBefore, txn.Type, txn.Amount)
	}
	return nil
}
