// Package validation holds the input checks shared by the wallet services
// and the HTTP layer. All failures are domain errors from internal/errors.
package validation

import (
	"lirapay/internal/errors"
	"lirapay/internal/models"

	"github.com/shopspring/decimal"
)

// ValidateAmount requires a strictly positive amount at the ledger's fixed
// scale of two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return errors.ErrInvalidAmount.WithMessage("amount %s has more than two decimal places", amount)
	}
	return nil
}

// ValidateCurrency requires a currency from the supported set.
func ValidateCurrency(c models.Currency) error {
	if !models.IsSupportedCurrency(c) {
		return errors.ErrUnsupportedCurrency.WithMessage("currency %q is not supported", c)
	}
	return nil
}

// ValidateSettings checks a partial settings update: thresholds must be
// non-negative, the auto-top-up amount strictly positive, and the default
// currency supported.
func ValidateSettings(s models.WalletSettings) error {
	if s.LowBalanceThreshold != nil && s.LowBalanceThreshold.IsNegative() {
		return errors.ErrInvalidSetting.WithMessage("low balance threshold cannot be negative")
	}
	if s.AutoTopupThreshold != nil && s.AutoTopupThreshold.IsNegative() {
		return errors.ErrInvalidSetting.WithMessage("auto top-up threshold cannot be negative")
	}
	if s.AutoTopupAmount != nil && !s.AutoTopupAmount.IsPositive() {
		return errors.ErrInvalidSetting.WithMessage("auto top-up amount must be positive")
	}
	if s.DefaultCurrency != nil && !models.IsSupportedCurrency(*s.DefaultCurrency) {
		return errors.ErrInvalidSetting.WithMessage("default currency %q is not supported", *s.DefaultCurrency)
	}
	return nil
}
