package errors

import "github.com/shopspring/decimal"

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be a positive value with at most two decimal places",
	}
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
	ErrUnsupportedCurrency = &DomainError{
		Code:    "UNSUPPORTED_CURRENCY",
		Message: "currency is not supported",
	}
	ErrWalletNotActive = &DomainError{
		Code:    "WALLET_NOT_ACTIVE",
		Message: "wallet is not active",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrInvalidTransfer = &DomainError{
		Code:    "INVALID_TRANSFER",
		Message: "invalid transfer",
	}
	ErrInvalidSetting = &DomainError{
		Code:    "INVALID_SETTING",
		Message: "invalid wallet setting",
	}
	ErrWalletBusy = &DomainError{
		Code:    "WALLET_BUSY",
		Message: "wallet is busy, try again",
	}
	ErrOperationFailed = &DomainError{
		Code:    "OPERATION_FAILED",
		Message: "operation failed",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrInvalidTransaction = &DomainError{
		Code:    "INVALID_TRANSACTION",
		Message: "transaction balance math does not add up",
	}
)

// InsufficientBalance returns the sentinel annotated with the balance the
// wallet currently holds, so callers can tell the user what is available.
func InsufficientBalance(current decimal.Decimal, currency string) *DomainError {
	return ErrInsufficientBalance.WithDetails(map[string]interface{}{
		"current_balance": current.StringFixed(2),
		"currency":        currency,
	})
}
