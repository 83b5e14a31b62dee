package wallet

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"time"

	"lirapay/internal/errors"
	"lirapay/internal/models"
	"lirapay/internal/repositories"
	"lirapay/internal/services/notification"
	"lirapay/internal/utils/pagination"
	"lirapay/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	repo    repositories.WalletRepository
	ledger  repositories.TransactionRepository
	cache   Cache
	notify  *notification.Dispatcher
	config  Config
	metrics MetricsCollector
}

// NewService creates a new wallet service. cache and metrics may be nil.
func NewService(
	repo repositories.WalletRepository,
	ledger repositories.TransactionRepository,
	cache Cache,
	notify *notification.Dispatcher,
	config Config,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if ledger == nil {
		panic("transaction repository is required")
	}

	if config.DefaultCurrency == "" {
		config.DefaultCurrency = models.CurrencyUSD
	}
	if config.LowBalanceCooldown == 0 {
		config.LowBalanceCooldown = DefaultLowBalanceCooldown
	}
	if config.LockTimeout == 0 {
		config.LockTimeout = DefaultLockTimeout
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		ledger:  ledger,
		cache:   cache,
		notify:  notify,
		config:  config,
		metrics: metrics,
	}
}

func (s *service) TopUp(ctx context.Context, in TopUpInput) (*OperationResult, error) {
	start := time.Now()
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateCurrency(in.Currency); err != nil {
		return nil, err
	}

	var result *OperationResult
	err := s.withWalletLock(ctx, in.UserID, func(tx repositories.WalletRepository, w *models.Wallet) error {
		if !CanCredit(w) {
			return errors.ErrWalletNotActive
		}

		before := w.Balance(in.Currency)
		after := before.Add(in.Amount)
		if err := tx.UpdateBalance(w.ID, in.Currency, after); err != nil {
			return err
		}

		txn := &models.Transaction{
			WalletID:      w.ID,
			UserID:        in.UserID,
			Type:          models.TransactionTypeTopup,
			Amount:        in.Amount,
			Currency:      in.Currency,
			BalanceBefore: before,
			BalanceAfter:  after,
			Status:        models.TransactionStatusCompleted,
			Reference:     uuid.NewString(),
			ReferenceType: "topup_method",
			ReferenceID:   in.PaymentReference,
			Description:   fmt.Sprintf("Top-up via %s", in.PaymentMethod),
			Metadata:      models.NewJSON(in.Metadata),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		result = &OperationResult{Transaction: txn, Balance: after, Currency: in.Currency}
		return nil
	})
	if err != nil {
		s.metrics.RecordError("topup", errCode(err))
		return nil, s.operationError("topup", in.UserID, err)
	}

	s.afterCommit(ctx, in.UserID)
	s.metrics.RecordTransaction(models.TransactionTypeTopup, in.Amount.InexactFloat64())
	s.metrics.RecordOperationDuration("topup", time.Since(start))
	s.dispatch(notification.Event{
		Kind:     notification.EventTopup,
		UserID:   in.UserID,
		Amount:   in.Amount,
		Currency: in.Currency,
		Balance:  result.Balance,
		Message:  fmt.Sprintf("Wallet topped up via %s", in.PaymentMethod),
	})
	return result, nil
}

func (s *service) Pay(ctx context.Context, in PayInput) (*OperationResult, error) {
	start := time.Now()
	if err := validation.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateCurrency(in.Currency); err != nil {
		return nil, err
	}
	if in.Description == "" {
		return nil, errors.ErrInvalidInput.WithMessage("payment description is required")
	}

	var result *OperationResult
	var lowBalance, suggestTopup bool
	var threshold, topupAmount decimal.Decimal
	err := s.withWalletLock(ctx, in.UserID, func(tx repositories.WalletRepository, w *models.Wallet) error {
		if w.Status != models.WalletStatusActive {
			return errors.ErrWalletNotActive
		}
		if !CanDebit(w, in.Amount, in.Currency) {
			return errors.InsufficientBalance(w.Balance(in.Currency), string(in.Currency))
		}

		before := w.Balance(in.Currency)
		after := before.Sub(in.Amount)
		if err := tx.UpdateBalance(w.ID, in.Currency, after); err != nil {
			return err
		}

		txn := &models.Transaction{
			WalletID:      w.ID,
			UserID:        in.UserID,
			Type:          models.TransactionTypePayment,
			Amount:        in.Amount,
			Currency:      in.Currency,
			BalanceBefore: before,
			BalanceAfter:  after,
			Status:        models.TransactionStatusCompleted,
			Reference:     uuid.NewString(),
			ReferenceType: in.ReferenceType,
			ReferenceID:   in.ReferenceID,
			Description:   in.Description,
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		// The alert timestamp is written while the row lock is held, so
		// concurrent debits inside the cooldown window cannot double-alert.
		now := time.Now().UTC()
		if IsLowBalance(after, w.LowBalanceThreshold, w.LastLowBalanceAlertAt, now, s.config.LowBalanceCooldown) {
			if err := tx.MarkLowBalanceAlert(w.ID, now); err != nil {
				return err
			}
			lowBalance = true
			suggestTopup = ShouldSuggestAutoTopup(w, after)
			threshold = w.LowBalanceThreshold
			topupAmount = w.AutoTopupAmount
		}

		result = &OperationResult{Transaction: txn, Balance: after, Currency: in.Currency}
		return nil
	})
	if err != nil {
		s.metrics.RecordError("pay", errCode(err))
		return nil, s.operationError("pay", in.UserID, err)
	}

	s.afterCommit(ctx, in.UserID)
	s.metrics.RecordTransaction(models.TransactionTypePayment, in.Amount.InexactFloat64())
	s.metrics.RecordOperationDuration("pay", time.Since(start))
	s.dispatch(notification.Event{
		Kind:     notification.EventPayment,
		UserID:   in.UserID,
		Amount:   in.Amount,
		Currency: in.Currency,
		Balance:  result.Balance,
		Message:  in.Description,
	})
	if lowBalance {
		s.dispatch(notification.Event{
			Kind:     notification.EventLowBalance,
			UserID:   in.UserID,
			Currency: in.Currency,
			Balance:  result.Balance,
			Message:  fmt.Sprintf("Balance dropped below %s %s", threshold.StringFixed(2), in.Currency),
		})
		if suggestTopup {
			s.dispatch(notification.Event{
				Kind:     notification.EventAutoTopupHint,
				UserID:   in.UserID,
				Amount:   topupAmount,
				Currency: in.Currency,
				Balance:  result.Balance,
				Message:  "Auto top-up threshold reached",
			})
		}
	}
	return result, nil
}

func (s *service) Refund(ctx context.Context, in RefundInput) (*OperationResult, error) {
	return s.compensate(ctx, compensation{
		userID:        in.UserID,
		amount:        in.Amount,
		currency:      in.Currency,
		txType:        models.TransactionTypeRefund,
		referenceType: in.ReferenceType,
		referenceID:   in.ReferenceID,
		description:   in.Reason,
		eventKind:     notification.EventRefund,
	})
}

func (s *service) Bonus(ctx context.Context, in BonusInput) (*OperationResult, error) {
	txType := models.TransactionTypeBonus
	meta := in.Metadata
	switch in.Kind {
	case BonusKindBonus:
	case BonusKindCashback:
		txType = models.TransactionTypeCashback
	case BonusKindPointsConversion:
		// Points conversions land as bonus entries tagged with their origin.
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta["bonus_kind"] = BonusKindPointsConversion
	default:
		return nil, errors.ErrInvalidInput.WithMessage("unknown bonus kind %q", in.Kind)
	}

	return s.compensate(ctx, compensation{
		userID:      in.UserID,
		amount:      in.Amount,
		currency:    in.Currency,
		txType:      txType,
		description: in.Description,
		metadata:    meta,
		eventKind:   notification.EventBonus,
	})
}

// compensation is a credit-only operation permitted even on frozen wallets.
type compensation struct {
	userID        uint
	amount        decimal.Decimal
	currency      models.Currency
	txType        string
	referenceType string
	referenceID   string
	description   string
	metadata      map[string]interface{}
	eventKind     string
}

func (s *service) compensate(ctx context.Context, in compensation) (*OperationResult, error) {
	start := time.Now()
	if err := validation.ValidateAmount(in.amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateCurrency(in.currency); err != nil {
		return nil, err
	}

	var result *OperationResult
	err := s.withWalletLock(ctx, in.userID, func(tx repositories.WalletRepository, w *models.Wallet) error {
		if !CanCompensate(w) {
			return errors.ErrWalletNotActive
		}

		before := w.Balance(in.currency)
		after := before.Add(in.amount)
		if err := tx.UpdateBalance(w.ID, in.currency, after); err != nil {
			return err
		}

		txn := &models.Transaction{
			WalletID:      w.ID,
			UserID:        in.userID,
			Type:          in.txType,
			Amount:        in.amount,
			Currency:      in.currency,
			BalanceBefore: before,
			BalanceAfter:  after,
			Status:        models.TransactionStatusCompleted,
			Reference:     uuid.NewString(),
			ReferenceType: in.referenceType,
			ReferenceID:   in.referenceID,
			Description:   in.description,
			Metadata:      models.NewJSON(in.metadata),
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		result = &OperationResult{Transaction: txn, Balance: after, Currency: in.currency}
		return nil
	})
	if err != nil {
		s.metrics.RecordError(in.txType, errCode(err))
		return nil, s.operationError(in.txType, in.userID, err)
	}

	s.afterCommit(ctx, in.userID)
	s.metrics.RecordTransaction(in.txType, in.amount.InexactFloat64())
	s.metrics.RecordOperationDuration(in.txType, time.Since(start))
	s.dispatch(notification.Event{
		Kind:     in.eventKind,
		UserID:   in.userID,
		Amount:   in.amount,
		Currency: in.currency,
		Balance:  result.Balance,
		Message:  in.description,
	})
	return result, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint, currency models.Currency) (*BalanceSummary, error) {
	if currency != "" {
		if err := validation.ValidateCurrency(currency); err != nil {
			return nil, err
		}
	}

	w, err := s.loadWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	cur := currency
	if cur == "" {
		cur = w.DefaultCurrency
	}
	return &BalanceSummary{
		WalletID:        w.ID,
		Balance:         w.Balance(cur),
		Currency:        cur,
		DefaultCurrency: w.DefaultCurrency,
		Status:          w.Status,
		Balances:        w.Balances(),
	}, nil
}

func (s *service) GetHistory(ctx context.Context, userID uint, filter repositories.HistoryFilter) ([]models.Transaction, pagination.Page, error) {
	if filter.Currency != "" {
		if err := validation.ValidateCurrency(filter.Currency); err != nil {
			return nil, pagination.Page{}, err
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultHistoryLimit
	}
	if filter.Limit > MaxHistoryLimit {
		filter.Limit = MaxHistoryLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	items, total, err := s.ledger.GetUserTransactions(userID, filter)
	if err != nil {
		return nil, pagination.Page{}, fmt.Errorf("failed to get transaction history: %w", err)
	}

	page := pagination.Page{Page: filter.Page, Limit: filter.Limit}
	page.SetTotal(total)
	return items, page, nil
}

func (s *service) GetStatistics(ctx context.Context, userID uint) (*models.WalletStatistics, error) {
	stats, err := s.ledger.GetStatistics(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return stats, nil
}

func (s *service) UpdateSettings(ctx context.Context, userID uint, settings models.WalletSettings) (*models.Wallet, error) {
	if err := validation.ValidateSettings(settings); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetOrCreate(userID); err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	w, err := s.repo.UpdateSettings(userID, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	s.afterCommit(ctx, userID)
	return w, nil
}

func (s *service) Freeze(ctx context.Context, walletID uint, reason string) error {
	w, err := s.repo.GetByID(walletID)
	if err != nil {
		return err
	}
	if err := s.repo.SetStatus(walletID, models.WalletStatusFrozen, reason); err != nil {
		return fmt.Errorf("failed to freeze wallet: %w", err)
	}
	s.afterCommit(ctx, w.UserID)
	s.dispatch(notification.Event{
		Kind:     notification.EventWalletFrozen,
		UserID:   w.UserID,
		Currency: w.DefaultCurrency,
		Message:  reason,
	})
	return nil
}

func (s *service) Unfreeze(ctx context.Context, walletID uint) error {
	w, err := s.repo.GetByID(walletID)
	if err != nil {
		return err
	}
	if err := s.repo.SetStatus(walletID, models.WalletStatusActive, ""); err != nil {
		return fmt.Errorf("failed to unfreeze wallet: %w", err)
	}
	s.afterCommit(ctx, w.UserID)
	s.dispatch(notification.Event{
		Kind:     notification.EventWalletUnfrozen,
		UserID:   w.UserID,
		Currency: w.DefaultCurrency,
		Message:  "wallet reactivated",
	})
	return nil
}

func (s *service) ListWallets(ctx context.Context, limit, offset int) ([]models.Wallet, int64, error) {
	return s.repo.ListPaginated(limit, offset)
}

// Helper methods

// withWalletLock opens the operation's transactional scope: the wallet is
// created on first access, then its row is locked for the duration of fn.
// The lock wait is bounded by the configured timeout.
func (s *service) withWalletLock(ctx context.Context, userID uint, fn func(tx repositories.WalletRepository, w *models.Wallet) error) error {
	if _, err := s.repo.GetOrCreate(userID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.LockTimeout)
	defer cancel()

	return s.repo.ExecuteInTransaction(ctx, func(tx repositories.WalletRepository) error {
		w, err := tx.GetForUpdate(userID)
		if err != nil {
			return err
		}
		return fn(tx, w)
	})
}

// loadWallet is the read-through path: cache, then database.
func (s *service) loadWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if w, ok := s.cache.GetWallet(ctx, userID); ok {
			return w, nil
		}
	}
	w, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, w); err != nil {
			log.Printf("failed to cache wallet for user %d: %v", userID, err)
		}
	}
	return w, nil
}

// afterCommit invalidates the wallet's cache entry once a mutation has
// committed.
func (s *service) afterCommit(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		log.Printf("failed to invalidate wallet cache for user %d: %v", userID, err)
	}
}

func (s *service) dispatch(event notification.Event) {
	if s.notify != nil {
		s.notify.Dispatch(event)
	}
}

// operationError maps an error escaping the transactional scope onto the
// domain taxonomy. Unexpected persistence failures are logged and collapsed
// to OperationFailed so internals never leak to callers.
func (s *service) operationError(op string, userID uint, err error) error {
	var derr *errors.DomainError
	if stderrors.As(err, &derr) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.ErrWalletBusy
	}
	log.Printf("%s failed for user %d: %v", op, userID, err)
	return errors.ErrOperationFailed
}

func errCode(err error) string {
	var derr *errors.DomainError
	if stderrors.As(err, &derr) {
		return derr.Code
	}
	return "internal"
}
