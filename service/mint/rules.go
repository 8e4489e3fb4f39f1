package mintsvc

import (
	"time"

	"github.com/vmmuthu31/EzhuthAI/model"
)

// validateParams applies the creation-time metadata rules. Titles compare
// by exact, case-sensitive equality elsewhere; here only shape is checked.
// A year later than the current UTC calendar year is a future year.
func validateParams(p MintParams, now time.Time) error {
	if p.Title == "" {
		return makeErr(ErrEmptyTitle)
	}
	if p.Year > now.Year() {
		return makeErr(ErrFutureYear)
	}
	return nil
}

// validateBatch applies the per-entry rules in array order; the first
// failing entry decides the rejection reason. A title duplicated inside the
// batch fails exactly like one already in storage.
func validateBatch(params []MintParams, now time.Time) error {
	if len(params) == 0 {
		return makeErr(ErrEmptyBatch)
	}
	if len(params) > model.MaxBatchSize {
		return makeErr(ErrBatchTooLarge)
	}
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p.Title]; dup {
			return makeErr(ErrTitleExists)
		}
		if err := validateParams(p, now); err != nil {
			return err
		}
		seen[p.Title] = struct{}{}
	}
	return nil
}

// checkPaused rejects every mint, role-based or paid, while the ledger is
// paused.
func checkPaused(st *model.LedgerState) error {
	if st.MintingPaused {
		return makeErr(ErrPaused)
	}
	return nil
}

// checkPayment: the public path must attach at least the current mint
// price. MINTER-role callers mint for free.
func checkPayment(isMinter bool, paymentWei, mintPriceWei int64) error {
	if !isMinter && paymentWei < mintPriceWei {
		return makeErr(ErrPaymentRequired)
	}
	return nil
}

// checkCooldown: a public payer waits CooldownPeriod after their last paid
// mint. Exactly CooldownPeriod elapsed is enough. MINTER callers are exempt
// and addresses with no paid mint on record pass.
func checkCooldown(isMinter bool, lastMint *time.Time, now time.Time) error {
	if isMinter || lastMint == nil {
		return nil
	}
	if now.Sub(*lastMint) < model.CooldownPeriod {
		return makeErr(ErrCooldownActive)
	}
	return nil
}

// checkSupply: n more tokens must still fit under MaxSupply.
func checkSupply(counter int64, n int) error {
	if counter+int64(n) > model.MaxSupply {
		return makeErr(ErrSupplyExhausted)
	}
	return nil
}
