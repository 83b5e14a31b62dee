package models

// Currency is one of the fixed set of currencies the ledger supports.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyLBP Currency = "LBP"
	CurrencyEUR Currency = "EUR"
)

// SupportedCurrencies is the whitelist for every balance and amount.
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyLBP, CurrencyEUR}

// IsSupportedCurrency reports whether c is in the supported set.
func IsSupportedCurrency(c Currency) bool {
	switch c {
	case CurrencyUSD, CurrencyLBP, CurrencyEUR:
		return true
	}
	return false
}
