package staterepo

import (
	"context"
	"database/sql"

	"github.com/vmmuthu31/EzhuthAI/model"
)

// Repo manages the singleton ledger_state row. Locking it FOR UPDATE at the
// start of a mutating operation serializes every ledger writer.
type Repo interface {
	Ensure(ctx context.Context, mintPriceWei int64) error
	Get(ctx context.Context) (*model.LedgerState, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx) (*model.LedgerState, error)
	UpdateCounter(ctx context.Context, tx *sql.Tx, counter int64) error
	SetPaused(ctx context.Context, tx *sql.Tx, paused bool) error
	CreditPool(ctx context.Context, tx *sql.Tx, amountWei int64) error
	ZeroPool(ctx context.Context, tx *sql.Tx) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Ensure(ctx context.Context, mintPriceWei int64) error {
	const q = `
INSERT INTO ledger_state (id, token_counter, minting_paused, mint_price_wei, platform_pool_wei)
VALUES (1, 0, FALSE, $1, 0)
ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, q, mintPriceWei)
	return err
}

func (r *repo) Get(ctx context.Context) (*model.LedgerState, error) {
	const q = `
SELECT token_counter, minting_paused, mint_price_wei, platform_pool_wei
FROM ledger_state WHERE id=1`
	var s model.LedgerState
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.TokenCounter, &s.MintingPaused, &s.MintPriceWei, &s.PlatformPoolWei); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx) (*model.LedgerState, error) {
	const q = `
SELECT token_counter, minting_paused, mint_price_wei, platform_pool_wei
FROM ledger_state WHERE id=1 FOR UPDATE`
	var s model.LedgerState
	if err := tx.QueryRowContext(ctx, q).Scan(&s.TokenCounter, &s.MintingPaused, &s.MintPriceWei, &s.PlatformPoolWei); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) UpdateCounter(ctx context.Context, tx *sql.Tx, counter int64) error {
	const q = `UPDATE ledger_state SET token_counter=$1 WHERE id=1`
	_, err := tx.ExecContext(ctx, q, counter)
	return err
}

func (r *repo) SetPaused(ctx context.Context, tx *sql.Tx, paused bool) error {
	const q = `UPDATE ledger_state SET minting_paused=$1 WHERE id=1`
	_, err := tx.ExecContext(ctx, q, paused)
	return err
}

func (r *repo) CreditPool(ctx context.Context, tx *sql.Tx, amountWei int64) error {
	const q = `UPDATE ledger_state SET platform_pool_wei=platform_pool_wei+$1 WHERE id=1`
	_, err := tx.ExecContext(ctx, q, amountWei)
	return err
}

func (r *repo) ZeroPool(ctx context.Context, tx *sql.Tx) error {
	const q = `UPDATE ledger_state SET platform_pool_wei=0 WHERE id=1`
	_, err := tx.ExecContext(ctx, q)
	return err
}
