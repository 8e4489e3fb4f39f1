package royaltyrepo

import (
	"context"
	"database/sql"
)

type Repo interface {
	GetRate(ctx context.Context, tokenID int64) (bps int, hasOverride bool, err error)
	GetRateForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (bps int, hasOverride bool, err error)
	SetRate(ctx context.Context, tx *sql.Tx, tokenID int64, bps int) error

	GetBalance(ctx context.Context, address string) (int64, error)
	GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, address string) (int64, error)
	CreditBalance(ctx context.Context, tx *sql.Tx, address string, amountWei int64) error
	ZeroBalance(ctx context.Context, tx *sql.Tx, address string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) GetRate(ctx context.Context, tokenID int64) (int, bool, error) {
	const q = `SELECT rate_bps FROM royalty_rates WHERE token_id=$1`
	var bps int
	err := r.db.QueryRowContext(ctx, q, tokenID).Scan(&bps)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return bps, true, nil
}

func (r *repo) GetRateForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (int, bool, error) {
	const q = `SELECT rate_bps FROM royalty_rates WHERE token_id=$1 FOR UPDATE`
	var bps int
	err := tx.QueryRowContext(ctx, q, tokenID).Scan(&bps)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return bps, true, nil
}

func (r *repo) SetRate(ctx context.Context, tx *sql.Tx, tokenID int64, bps int) error {
	const q = `
INSERT INTO royalty_rates (token_id, rate_bps, updated_at)
VALUES ($1,$2,NOW())
ON CONFLICT (token_id) DO UPDATE SET rate_bps=EXCLUDED.rate_bps, updated_at=NOW()`
	_, err := tx.ExecContext(ctx, q, tokenID, bps)
	return err
}

func (r *repo) GetBalance(ctx context.Context, address string) (int64, error) {
	const q = `SELECT COALESCE((SELECT balance_wei FROM royalty_balances WHERE address=$1), 0)`
	var bal int64
	if err := r.db.QueryRowContext(ctx, q, address).Scan(&bal); err != nil {
		return 0, err
	}
	return bal, nil
}

func (r *repo) GetBalanceForUpdate(ctx context.Context, tx *sql.Tx, address string) (int64, error) {
	const q = `SELECT balance_wei FROM royalty_balances WHERE address=$1 FOR UPDATE`
	var bal int64
	err := tx.QueryRowContext(ctx, q, address).Scan(&bal)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bal, nil
}

func (r *repo) CreditBalance(ctx context.Context, tx *sql.Tx, address string, amountWei int64) error {
	const q = `
INSERT INTO royalty_balances (address, balance_wei)
VALUES ($1,$2)
ON CONFLICT (address) DO UPDATE SET balance_wei=royalty_balances.balance_wei+EXCLUDED.balance_wei`
	_, err := tx.ExecContext(ctx, q, address, amountWei)
	return err
}

func (r *repo) ZeroBalance(ctx context.Context, tx *sql.Tx, address string) error {
	const q = `UPDATE royalty_balances SET balance_wei=0 WHERE address=$1`
	_, err := tx.ExecContext(ctx, q, address)
	return err
}
