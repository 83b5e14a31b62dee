package repositories

import (
	stderrors "errors"
	"time"

	"lirapay/internal/errors"
	"lirapay/internal/models"

	"gorm.io/gorm"
)

// HistoryFilter narrows a transaction history query. Zero values mean
// "no filter" for the optional fields.
type HistoryFilter struct {
	Type     string
	Status   string
	Currency models.Currency
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

// TransactionRepository reads the append-only ledger. All writes go through
// WalletRepository so they share the wallet's transactional scope.
type TransactionRepository interface {
	GetByID(id uint) (*models.Transaction, error)
	GetUserTransactions(userID uint, filter HistoryFilter) ([]models.Transaction, int64, error)
	GetStatistics(userID uint) (*models.WalletStatistics, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a gorm-backed TransactionRepository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.First(&txn, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrOperationFailed.WithMessage("transaction %d not found", id)
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) GetUserTransactions(userID uint, filter HistoryFilter) ([]models.Transaction, int64, error) {
	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var items []models.Transaction
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *transactionRepository) GetStatistics(userID uint) (*models.WalletStatistics, error) {
	stats := &models.WalletStatistics{}

	err := r.db.Model(&models.Transaction{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND status = ?", userID, models.TransactionStatusCompleted).
		Group("type").
		Order("type").
		Scan(&stats.ByType).Error
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -30)
	err = r.db.Model(&models.Transaction{}).
		Select("date_trunc('day', created_at) AS day, type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, models.TransactionStatusCompleted, since).
		Group("day, type").
		Order("day DESC, type").
		Scan(&stats.Daily).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
