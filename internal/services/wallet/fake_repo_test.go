package wallet

import (
	"context"
	"sort"
	"sync"
	"time"

	"lirapay/internal/errors"
	"lirapay/internal/models"
	"lirapay/internal/repositories"
	"lirapay/internal/services/notification"

	"github.com/shopspring/decimal"
)

// fakeState is the in-memory storage behind the test repositories.
type fakeState struct {
	wallets      map[uint]*models.Wallet
	byUser       map[uint]uint
	txns         []*models.Transaction
	transfers    []*models.Transfer
	nextWalletID uint
	nextTxnID    uint
	nextTferID   uint
}

func newFakeState() *fakeState {
	return &fakeState{
		wallets:      map[uint]*models.Wallet{},
		byUser:       map[uint]uint{},
		nextWalletID: 1,
		nextTxnID:    1,
		nextTferID:   1,
	}
}

func (st *fakeState) clone() *fakeState {
	cp := newFakeState()
	cp.nextWalletID = st.nextWalletID
	cp.nextTxnID = st.nextTxnID
	cp.nextTferID = st.nextTferID
	for id, w := range st.wallets {
		wc := *w
		cp.wallets[id] = &wc
	}
	for u, id := range st.byUser {
		cp.byUser[u] = id
	}
	for _, t := range st.txns {
		tc := *t
		cp.txns = append(cp.txns, &tc)
	}
	for _, t := range st.transfers {
		tc := *t
		cp.transfers = append(cp.transfers, &tc)
	}
	return cp
}

// fakeTx operates on the state without locking; the owner holds the lock.
type fakeTx struct {
	st *fakeState
}

func (f *fakeTx) GetByID(id uint) (*models.Wallet, error) {
	w, ok := f.st.wallets[id]
	if !ok {
		return nil, errors.ErrWalletNotFound
	}
	wc := *w
	return &wc, nil
}

func (f *fakeTx) GetByUserID(userID uint) (*models.Wallet, error) {
	id, ok := f.st.byUser[userID]
	if !ok {
		return nil, errors.ErrWalletNotFound
	}
	return f.GetByID(id)
}

func (f *fakeTx) GetOrCreate(userID uint) (*models.Wallet, error) {
	if w, err := f.GetByUserID(userID); err == nil {
		return w, nil
	}
	w := &models.Wallet{
		ID:              f.st.nextWalletID,
		UserID:          userID,
		DefaultCurrency: models.CurrencyUSD,
		Status:          models.WalletStatusActive,
		CreatedAt:       time.Now(),
	}
	f.st.nextWalletID++
	f.st.wallets[w.ID] = w
	f.st.byUser[userID] = w.ID
	wc := *w
	return &wc, nil
}

func (f *fakeTx) GetForUpdate(userID uint) (*models.Wallet, error) {
	return f.GetByUserID(userID)
}

func (f *fakeTx) GetForUpdateByID(id uint) (*models.Wallet, error) {
	return f.GetByID(id)
}

func (f *fakeTx) UpdateBalance(walletID uint, currency models.Currency, newBalance decimal.Decimal) error {
	w, ok := f.st.wallets[walletID]
	if !ok {
		return errors.ErrWalletNotFound
	}
	if newBalance.IsNegative() {
		return errors.ErrInsufficientBalance
	}
	w.SetBalance(currency, newBalance)
	return nil
}

func (f *fakeTx) UpdateSettings(userID uint, s models.WalletSettings) (*models.Wallet, error) {
	id, ok := f.st.byUser[userID]
	if !ok {
		return nil, errors.ErrWalletNotFound
	}
	w := f.st.wallets[id]
	if s.LowBalanceThreshold != nil {
		w.LowBalanceThreshold = *s.LowBalanceThreshold
	}
	if s.AutoTopupEnabled != nil {
		w.AutoTopupEnabled = *s.AutoTopupEnabled
	}
	if s.AutoTopupThreshold != nil {
		w.AutoTopupThreshold = *s.AutoTopupThreshold
	}
	if s.AutoTopupAmount != nil {
		w.AutoTopupAmount = *s.AutoTopupAmount
	}
	if s.DefaultCurrency != nil {
		w.DefaultCurrency = *s.DefaultCurrency
	}
	wc := *w
	return &wc, nil
}

func (f *fakeTx) SetStatus(walletID uint, status, reason string) error {
	w, ok := f.st.wallets[walletID]
	if !ok {
		return errors.ErrWalletNotFound
	}
	w.Status = status
	w.StatusReason = reason
	return nil
}

func (f *fakeTx) MarkLowBalanceAlert(walletID uint, at time.Time) error {
	w, ok := f.st.wallets[walletID]
	if !ok {
		return errors.ErrWalletNotFound
	}
	w.LastLowBalanceAlertAt = &at
	return nil
}

func (f *fakeTx) ListPaginated(limit, offset int) ([]models.Wallet, int64, error) {
	ids := make([]uint, 0, len(f.st.wallets))
	for id := range f.st.wallets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Wallet
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, *f.st.wallets[id])
	}
	return out, int64(len(ids)), nil
}

func (f *fakeTx) CreateTransaction(txn *models.Transaction) error {
	if !txn.Amount.IsPositive() {
		return errors.ErrInvalidTransaction
	}
	expected := txn.BalanceBefore.Add(txn.SignedAmount())
	if !txn.BalanceAfter.Equal(expected) {
		return errors.ErrInvalidTransaction
	}
	txn.ID = f.st.nextTxnID
	f.st.nextTxnID++
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	tc := *txn
	f.st.txns = append(f.st.txns, &tc)
	return nil
}

func (f *fakeTx) CreateTransfer(transfer *models.Transfer) error {
	transfer.ID = f.st.nextTferID
	f.st.nextTferID++
	transfer.CreatedAt = time.Now()
	tc := *transfer
	f.st.transfers = append(f.st.transfers, &tc)
	return nil
}

func (f *fakeTx) ExecuteInTransaction(ctx context.Context, fn func(repositories.WalletRepository) error) error {
	return fn(f)
}

// fakeRepo serializes every transactional scope behind one mutex,
// mirroring the row-lock behavior of the real repository, and rolls the
// state back when the scope fails.
type fakeRepo struct {
	mu sync.Mutex
	st *fakeState
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{st: newFakeState()}
}

func (r *fakeRepo) seed(userID uint, status string, balanceUSD float64) *models.Wallet {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := &fakeTx{st: r.st}
	w, _ := tx.GetOrCreate(userID)
	stored := r.st.wallets[w.ID]
	stored.Status = status
	stored.BalanceUSD = decimal.NewFromFloat(balanceUSD)
	wc := *stored
	return &wc
}

func (r *fakeRepo) wallet(userID uint) *models.Wallet {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, _ := (&fakeTx{st: r.st}).GetByUserID(userID)
	return w
}

func (r *fakeRepo) transactionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.st.txns)
}

func (r *fakeRepo) transactions() []*models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Transaction, 0, len(r.st.txns))
	for _, t := range r.st.txns {
		tc := *t
		out = append(out, &tc)
	}
	return out
}

func (r *fakeRepo) locked(fn func(tx *fakeTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&fakeTx{st: r.st})
}

func (r *fakeRepo) GetByID(id uint) (*models.Wallet, error) {
	var w *models.Wallet
	err := r.locked(func(tx *fakeTx) error {
		var err error
		w, err = tx.GetByID(id)
		return err
	})
	return w, err
}

func (r *fakeRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	var w *models.Wallet
	err := r.locked(func(tx *fakeTx) error {
		var err error
		w, err = tx.GetByUserID(userID)
		return err
	})
	return w, err
}

func (r *fakeRepo) GetOrCreate(userID uint) (*models.Wallet, error) {
	var w *models.Wallet
	err := r.locked(func(tx *fakeTx) error {
		var err error
		w, err = tx.GetOrCreate(userID)
		return err
	})
	return w, err
}

func (r *fakeRepo) GetForUpdate(userID uint) (*models.Wallet, error) {
	return r.GetByUserID(userID)
}

func (r *fakeRepo) GetForUpdateByID(id uint) (*models.Wallet, error) {
	return r.GetByID(id)
}

func (r *fakeRepo) UpdateBalance(walletID uint, currency models.Currency, newBalance decimal.Decimal) error {
	return r.locked(func(tx *fakeTx) error {
		return tx.UpdateBalance(walletID, currency, newBalance)
	})
}

func (r *fakeRepo) UpdateSettings(userID uint, s models.WalletSettings) (*models.Wallet, error) {
	var w *models.Wallet
	err := r.locked(func(tx *fakeTx) error {
		var err error
		w, err = tx.UpdateSettings(userID, s)
		return err
	})
	return w, err
}

func (r *fakeRepo) SetStatus(walletID uint, status, reason string) error {
	return r.locked(func(tx *fakeTx) error {
		return tx.SetStatus(walletID, status, reason)
	})
}

func (r *fakeRepo) MarkLowBalanceAlert(walletID uint, at time.Time) error {
	return r.locked(func(tx *fakeTx) error {
		return tx.MarkLowBalanceAlert(walletID, at)
	})
}

func (r *fakeRepo) ListPaginated(limit, offset int) ([]models.Wallet, int64, error) {
	var out []models.Wallet
	var total int64
	err := r.locked(func(tx *fakeTx) error {
		var err error
		out, total, err = tx.ListPaginated(limit, offset)
		return err
	})
	return out, total, err
}

func (r *fakeRepo) CreateTransaction(txn *models.Transaction) error {
	return r.locked(func(tx *fakeTx) error {
		return tx.CreateTransaction(txn)
	})
}

func (r *fakeRepo) CreateTransfer(transfer *models.Transfer) error {
	return r.locked(func(tx *fakeTx) error {
		return tx.CreateTransfer(transfer)
	})
}

func (r *fakeRepo) ExecuteInTransaction(ctx context.Context, fn func(repositories.WalletRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := r.st.clone()
	if err := fn(&fakeTx{st: r.st}); err != nil {
		r.st = snapshot
		return err
	}
	return nil
}

// fakeLedger reads the same state as the fake repository.
type fakeLedger struct {
	repo *fakeRepo
}

func (l *fakeLedger) GetByID(id uint) (*models.Transaction, error) {
	for _, t := range l.repo.transactions() {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.ErrOperationFailed
}

func (l *fakeLedger) GetUserTransactions(userID uint, filter repositories.HistoryFilter) ([]models.Transaction, int64, error) {
	var matched []models.Transaction
	for _, t := range l.repo.transactions() {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Currency != "" && t.Currency != filter.Currency {
			continue
		}
		if filter.DateFrom != nil && t.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && t.CreatedAt.After(*filter.DateTo) {
			continue
		}
		matched = append(matched, *t)
	}
	// newest first
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (l *fakeLedger) GetStatistics(userID uint) (*models.WalletStatistics, error) {
	totals := map[string]*models.TypeTotal{}
	daily := map[string]*models.DailyTotal{}
	since := time.Now().UTC().AddDate(0, 0, -30)

	for _, t := range l.repo.transactions() {
		if t.UserID != userID || t.Status != models.TransactionStatusCompleted {
			continue
		}
		tt, ok := totals[t.Type]
		if !ok {
			tt = &models.TypeTotal{Type: t.Type}
			totals[t.Type] = tt
		}
		tt.Count++
		tt.Total = tt.Total.Add(t.Amount)

		if t.CreatedAt.Before(since) {
			continue
		}
		day := t.CreatedAt.UTC().Truncate(24 * time.Hour)
		key := day.Format("2006-01-02") + "|" + t.Type
		dt, ok := daily[key]
		if !ok {
			dt = &models.DailyTotal{Day: day, Type: t.Type}
			daily[key] = dt
		}
		dt.Count++
		dt.Total = dt.Total.Add(t.Amount)
	}

	stats := &models.WalletStatistics{}
	for _, tt := range totals {
		stats.ByType = append(stats.ByType, *tt)
	}
	sort.Slice(stats.ByType, func(i, j int) bool { return stats.ByType[i].Type < stats.ByType[j].Type })
	for _, dt := range daily {
		stats.Daily = append(stats.Daily, *dt)
	}
	sort.Slice(stats.Daily, func(i, j int) bool {
		if !stats.Daily[i].Day.Equal(stats.Daily[j].Day) {
			return stats.Daily[i].Day.After(stats.Daily[j].Day)
		}
		return stats.Daily[i].Type < stats.Daily[j].Type
	})
	return stats, nil
}

// recordingNotifier captures dispatched events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) byKind(kind string) []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []notification.Event
	for _, e := range n.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
