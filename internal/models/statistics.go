package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TypeTotal aggregates completed transactions of one type.
type TypeTotal struct {
	Type  string          `json:"type"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// DailyTotal is one day of the rolling 30-day breakdown.
type DailyTotal struct {
	Day   time.Time       `json:"day"`
	Type  string          `json:"type"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// WalletStatistics is the aggregate view over a user's ledger.
type WalletStatistics struct {
	ByType []TypeTotal  `json:"by_type"`
	Daily  []DailyTotal `json:"daily"`
}
