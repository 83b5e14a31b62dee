package transfer

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
	"lirapay/internal/services/wallet"
	"lirapay/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	repo        repositories.WalletRepository
	cache       wallet.Cache
	notify      *notification.Dispatcher
	lockTimeout time.Duration
}

// NewService creates a new transfer service. cache and notify may be nil.
func NewService(repo repositories.WalletRepository, cache wallet.Cache, notify *notification.Dispatcher, lockTimeout time.Duration) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if lockTimeout == 0 {
		lockTimeout = wallet.DefaultLockTimeout
	}
	return &service{
		repo:        repo,
		cache:       cache,
		notify:      notify,
		lockTimeout: lockTimeout,
	}
}

func (s *service) Transfer(ctx context.Context, fromUserID, toUserID uint, amount decimal.Decimal, currency models.Currency, note string) (*Result, error) {
	if fromUserID == toUserID {
		return nil, errors.ErrInvalidTransfer.WithMessage("cannot transfer to self")
	}
	if err := validation.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := validation.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	// Resolve both wallet ids up front; the lazily-created destination
	// wallet must exist before locks are taken inside the transaction.
	source, err := s.repo.GetOrCreate(fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source wallet: %w", err)
	}
	dest, err := s.repo.GetOrCreate(toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination wallet: %w", err)
	}

	var result *Result
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	err = s.repo.ExecuteInTransaction(lockCtx, func(tx repositories.WalletRepository) error {
		// Both rows are locked in ascending wallet-id order so two
		// opposite-direction transfers cannot deadlock each other.
		src, dst, err := lockPair(tx, source.ID, dest.ID)
		if err != nil {
			return err
		}

		if dst.Status != models.WalletStatusActive {
			return errors.ErrInvalidTransfer.WithMessage("destination wallet is not active")
		}
		if src.Status != models.WalletStatusActive {
			return errors.ErrWalletNotActive
		}
		if !wallet.CanDebit(src, amount, currency) {
			return errors.InsufficientBalance(src.Balance(currency), string(currency))
		}

		srcBefore := src.Balance(currency)
		srcAfter := srcBefore.Sub(amount)
		dstBefore := dst.Balance(currency)
		dstAfter := dstBefore.Add(amount)

		if err := tx.UpdateBalance(src.ID, currency, srcAfter); err != nil {
			return err
		}
		if err := tx.UpdateBalance(dst.ID, currency, dstAfter); err != nil {
			return err
		}

		reference := uuid.NewString()
		outTxn := &models.Transaction{
			WalletID:      src.ID,
			UserID:        fromUserID,
			Type:          models.TransactionTypeTransferOut,
			Amount:        amount,
			Currency:      currency,
			BalanceBefore: srcBefore,
			BalanceAfter:  srcAfter,
			Status:        models.TransactionStatusCompleted,
			Reference:     reference,
			ReferenceType: "transfer",
			RelatedUserID: &toUserID,
			Description:   note,
		}
		if err := tx.CreateTransaction(outTxn); err != nil {
			return err
		}

		inTxn := &models.Transaction{
			WalletID:      dst.ID,
			UserID:        toUserID,
			Type:          models.TransactionTypeTransferIn,
			Amount:        amount,
			Currency:      currency,
			BalanceBefore: dstBefore,
			BalanceAfter:  dstAfter,
			Status:        models.TransactionStatusCompleted,
			Reference:     reference,
			ReferenceType: "transfer",
			RelatedUserID: &fromUserID,
			Description:   note,
		}
		if err := tx.CreateTransaction(inTxn); err != nil {
			return err
		}

		record := &models.Transfer{
			Reference:         reference,
			FromWalletID:      src.ID,
			ToWalletID:        dst.ID,
			FromUserID:        fromUserID,
			ToUserID:          toUserID,
			Amount:            amount,
			Currency:          currency,
			Note:              note,
			Status:            models.TransferStatusCompleted,
			FromTransactionID: outTxn.ID,
			ToTransactionID:   inTxn.ID,
		}
		if err := tx.CreateTransfer(record); err != nil {
			return err
		}

		result = &Result{
			TransferID:  record.ID,
			Reference:   reference,
			FromBalance: srcAfter,
			ToBalance:   dstAfter,
			Amount:      amount,
			Currency:    currency,
		}
		return nil
	})
	if err != nil {
		return nil, s.transferError(fromUserID, toUserID, err)
	}

	s.invalidate(ctx, fromUserID)
	s.invalidate(ctx, toUserID)
	s.dispatch(notification.Event{
		Kind:     notification.EventTransferSent,
		UserID:   fromUserID,
		Amount:   amount,
		Currency: currency,
		Balance:  result.FromBalance,
		Message:  note,
	})
	s.dispatch(notification.Event{
		Kind:     notification.EventTransferIn,
		UserID:   toUserID,
		Amount:   amount,
		Currency: currency,
		Balance:  result.ToBalance,
		Message:  note,
	})
	return result, nil
}

// lockPair acquires both wallet row locks in ascending id order and returns
// them as (source, destination).
func lockPair(tx repositories.WalletRepository, sourceID, destID uint) (*models.Wallet, *models.Wallet, error) {
	first, second := sourceID, destID
	if destID < sourceID {
		first, second = destID, sourceID
	}

	a, err := tx.GetForUpdateByID(first)
	if err != nil {
		return nil, nil, err
	}
	b, err := tx.GetForUpdateByID(second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == sourceID {
		return a, b, nil
	}
	return b, a, nil
}

func (s *service) invalidate(ctx context.Context, userID uint) {
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

func (s *service) transferError(fromUserID, toUserID uint, err error) error {
	var derr *errors.DomainError
	if stderrors.As(err, &derr) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.ErrWalletBusy
	}
	log.Printf("transfer %d->%d failed: %v", fromUserID, toUserID, err)
	return errors.ErrOperationFailed
}
