package validation

import (
	"testing"

	"lirapay/internal/errors"
	"lirapay/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		valid  bool
	}{
		{"positive integer", "10", true},
		{"two decimals", "10.25", true},
		{"smallest unit", "0.01", true},
		{"zero", "0", false},
		{"negative", "-5", false},
		{"three decimals", "10.254", false},
		{"trailing zero scale", "10.250", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrInvalidAmount)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, c := range models.SupportedCurrencies {
		assert.NoError(t, ValidateCurrency(c))
	}
	assert.ErrorIs(t, ValidateCurrency("GBP"), errors.ErrUnsupportedCurrency)
	assert.ErrorIs(t, ValidateCurrency("usd"), errors.ErrUnsupportedCurrency)
	assert.ErrorIs(t, ValidateCurrency(""), errors.ErrUnsupportedCurrency)
}

func TestValidateSettings(t *testing.T) {
	positive := decimal.NewFromInt(25)
	negative := decimal.NewFromInt(-1)
	zero := decimal.Zero
	gbp := models.Currency("GBP")
	usd := models.CurrencyUSD

	assert.NoError(t, ValidateSettings(models.WalletSettings{}))
	assert.NoError(t, ValidateSettings(models.WalletSettings{
		LowBalanceThreshold: &positive,
		AutoTopupAmount:     &positive,
		DefaultCurrency:     &usd,
	}))
	// A zero threshold disables alerts and is allowed.
	assert.NoError(t, ValidateSettings(models.WalletSettings{LowBalanceThreshold: &zero}))

	assert.ErrorIs(t, ValidateSettings(models.WalletSettings{LowBalanceThreshold: &negative}), errors.ErrInvalidSetting)
	assert.ErrorIs(t, ValidateSettings(models.WalletSettings{AutoTopupThreshold: &negative}), errors.ErrInvalidSetting)
	assert.ErrorIs(t, ValidateSettings(models.WalletSettings{AutoTopupAmount: &zero}), errors.ErrInvalidSetting)
	assert.ErrorIs(t, ValidateSettings(models.WalletSettings{DefaultCurrency: &gbp}), errors.ErrInvalidSetting)
}
