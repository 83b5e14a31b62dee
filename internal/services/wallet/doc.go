/*
Package wallet implements the ledger operations on a user's wallet.

Every balance-affecting operation follows the same shape: validate input,
open a transactional scope, lock the wallet row, apply the balance policy,
write the new balance together with exactly one ledger entry, commit, then
notify asynchronously. The wallet row is the only shared mutable state;
ledger entries are append-only.

Usage:

	svc := wallet.NewService(repo, ledger, cacheSvc, dispatcher, wallet.Config{}, nil)

	res, err := svc.TopUp(ctx, wallet.TopUpInput{
	    UserID:        userID,
	    Amount:        decimal.NewFromInt(50),
	    Currency:      models.CurrencyUSD,
	    PaymentMethod: "card",
	})

	res, err = svc.Pay(ctx, wallet.PayInput{
	    UserID:      userID,
	    Amount:      decimal.NewFromInt(30),
	    Currency:    models.CurrencyUSD,
	    Description: "March invoice",
	})

Error handling:

Operations return the domain taxonomy from internal/errors: ErrInvalidAmount
and ErrUnsupportedCurrency before anything is persisted, ErrWalletNotActive
and ErrInsufficientBalance from the policy check, ErrWalletBusy when the row
lock cannot be acquired within the configured timeout, and ErrOperationFailed
for persistence failures after validation passed.
*/
package wallet
