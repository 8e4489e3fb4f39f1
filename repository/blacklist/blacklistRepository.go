package blacklistrepo

import (
	"context"
	"database/sql"
)

type Repo interface {
	Set(ctx context.Context, tx *sql.Tx, address string, blacklisted bool) error
	IsBlacklisted(ctx context.Context, address string) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Set(ctx context.Context, tx *sql.Tx, address string, blacklisted bool) error {
	const q = `
INSERT INTO blacklist (address, blacklisted, updated_at)
VALUES ($1,$2,NOW())
ON CONFLICT (address) DO UPDATE SET blacklisted=EXCLUDED.blacklisted, updated_at=NOW()`
	_, err := tx.ExecContext(ctx, q, address, blacklisted)
	return err
}

func (r *repo) IsBlacklisted(ctx context.Context, address string) (bool, error) {
	const q = `SELECT COALESCE((SELECT blacklisted FROM blacklist WHERE address=$1), FALSE)`
	var b bool
	if err := r.db.QueryRowContext(ctx, q, address).Scan(&b); err != nil {
		return false, err
	}
	return b, nil
}
