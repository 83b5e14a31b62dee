package wallet

import "time"

// Default configuration values
const (
	DefaultLowBalanceCooldown = 24 * time.Hour
	DefaultLockTimeout        = 5 * time.Second
	DefaultHistoryLimit       = 10
	MaxHistoryLimit           = 100
)

// Bonus kinds accepted by the Bonus operation
const (
	BonusKindBonus            = "bonus"
	BonusKindCashback         = "cashback"
	BonusKindPointsConversion = "points_conversion"
)
