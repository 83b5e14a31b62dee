package wallet

import (
	"time"

	"lirapay/internal/models"

	"github.com/shopspring/decimal"
)

// Balance policy: pure rules deciding whether an operation may proceed
// given current wallet state. No I/O happens here.

// CanDebit reports whether the wallet may be debited the given amount:
// the wallet is active and holds at least that much in the currency.
func CanDebit(w *models.Wallet, amount decimal.Decimal, currency models.Currency) bool {
	return w.Status == models.WalletStatusActive &&
		w.Balance(currency).GreaterThanOrEqual(amount)
}

// CanCredit reports whether a regular credit (top-up, transfer in) may
// proceed. Only active wallets accept these.
func CanCredit(w *models.Wallet) bool {
	return w.Status == models.WalletStatusActive
}

// CanCompensate reports whether an admin-issued credit (refund, bonus) may
// proceed. Frozen wallets still accept these so compensation issued while a
// wallet is under review is not stranded; suspended wallets do not.
func CanCompensate(w *models.Wallet) bool {
	return w.Status == models.WalletStatusActive || w.Status == models.WalletStatusFrozen
}

// IsLowBalance reports whether dropping to newBalance should raise a
// low-balance alert. A zero threshold disables alerts; the cooldown keeps a
// burst of payments from producing a notification storm.
func IsLowBalance(newBalance, threshold decimal.Decimal, lastAlert *time.Time, now time.Time, cooldown time.Duration) bool {
	if !threshold.IsPositive() {
		return false
	}
	if newBalance.GreaterThanOrEqual(threshold) {
		return false
	}
	if lastAlert != nil && now.Sub(*lastAlert) < cooldown {
		return false
	}
	return true
}

// ShouldSuggestAutoTopup reports whether the wallet's auto-top-up settings
// ask for a top-up at newBalance. The ledger only suggests; no payment
// gateway is wired to actually move money.
func ShouldSuggestAutoTopup(w *models.Wallet, newBalance decimal.Decimal) bool {
	return w.AutoTopupEnabled &&
		w.AutoTopupAmount.IsPositive() &&
		newBalance.LessThan(w.AutoTopupThreshold)
}
