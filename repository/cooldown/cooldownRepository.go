package cooldownrepo

import (
	"context"
	"database/sql"
	"time"
)

// Repo tracks the last successful public-payment mint per address. Role
// minters never touch this table.
type Repo interface {
	LastMintAtForUpdate(ctx context.Context, tx *sql.Tx, address string) (*time.Time, error)
	Touch(ctx context.Context, tx *sql.Tx, address string, at time.Time) error
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) LastMintAtForUpdate(ctx context.Context, tx *sql.Tx, address string) (*time.Time, error) {
	const q = `SELECT last_mint_at FROM mint_cooldowns WHERE address=$1 FOR UPDATE`
	var t time.Time
	err := tx.QueryRowContext(ctx, q, address).Scan(&t)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) Touch(ctx context.Context, tx *sql.Tx, address string, at time.Time) error {
	const q = `
INSERT INTO mint_cooldowns (address, last_mint_at)
VALUES ($1,$2)
ON CONFLICT (address) DO UPDATE SET last_mint_at=EXCLUDED.last_mint_at`
	_, err := tx.ExecContext(ctx, q, address, at)
	return err
}

// PruneBefore drops rows whose cooldown has long expired. Purely a
// housekeeping call; correctness never depends on it.
func (r *repo) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM mint_cooldowns WHERE last_mint_at < $1`
	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
