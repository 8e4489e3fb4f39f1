package tokenrepo

import (
	"context"
	"database/sql"

	"github.com/vmmuthu31/EzhuthAI/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, id int64, owner, creator, uri string) error
	AppendOwnerToken(ctx context.Context, tx *sql.Tx, owner string, tokenID int64) error
	RemoveOwnerToken(ctx context.Context, tx *sql.Tx, tokenID int64) error
	UpdateOwner(ctx context.Context, tx *sql.Tx, tokenID int64, newOwner string) error
	UpdateURI(ctx context.Context, tx *sql.Tx, tokenID int64, uri string) error

	Get(ctx context.Context, tokenID int64) (*model.Token, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (*model.Token, error)
	TokensOfOwner(ctx context.Context, owner string) ([]int64, error)
	BalanceOf(ctx context.Context, owner string) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, id int64, owner, creator, uri string) error {
	const q = `
INSERT INTO tokens (id, owner, creator, uri)
VALUES ($1,$2,$3,$4)`
	_, err := tx.ExecContext(ctx, q, id, owner, creator, uri)
	return err
}

func (r *repo) AppendOwnerToken(ctx context.Context, tx *sql.Tx, owner string, tokenID int64) error {
	const q = `INSERT INTO owner_tokens (owner, token_id) VALUES ($1,$2)`
	_, err := tx.ExecContext(ctx, q, owner, tokenID)
	return err
}

func (r *repo) RemoveOwnerToken(ctx context.Context, tx *sql.Tx, tokenID int64) error {
	const q = `DELETE FROM owner_tokens WHERE token_id=$1`
	_, err := tx.ExecContext(ctx, q, tokenID)
	return err
}

func (r *repo) UpdateOwner(ctx context.Context, tx *sql.Tx, tokenID int64, newOwner string) error {
	const q = `UPDATE tokens SET owner=$2 WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, tokenID, newOwner)
	return err
}

func (r *repo) UpdateURI(ctx context.Context, tx *sql.Tx, tokenID int64, uri string) error {
	const q = `UPDATE tokens SET uri=$2 WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, tokenID, uri)
	return err
}

func (r *repo) Get(ctx context.Context, tokenID int64) (*model.Token, error) {
	const q = `SELECT id, owner, creator, uri, created_at FROM tokens WHERE id=$1`
	var t model.Token
	if err := r.db.QueryRowContext(ctx, q, tokenID).Scan(&t.ID, &t.Owner, &t.Creator, &t.URI, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (*model.Token, error) {
	const q = `SELECT id, owner, creator, uri, created_at FROM tokens WHERE id=$1 FOR UPDATE`
	var t model.Token
	if err := tx.QueryRowContext(ctx, q, tokenID).Scan(&t.ID, &t.Owner, &t.Creator, &t.URI, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// TokensOfOwner returns the owner's token ids in insertion order.
func (r *repo) TokensOfOwner(ctx context.Context, owner string) ([]int64, error) {
	const q = `SELECT token_id FROM owner_tokens WHERE owner=$1 ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *repo) BalanceOf(ctx context.Context, owner string) (int64, error) {
	const q = `SELECT COUNT(*) FROM owner_tokens WHERE owner=$1`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, owner).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
