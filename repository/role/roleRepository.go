package rolerepo

import (
	"context"
	"database/sql"

	"github.com/vmmuthu31/EzhuthAI/model"
)

type Repo interface {
	Grant(ctx context.Context, tx *sql.Tx, role model.Role, address, grantedBy string) error
	Revoke(ctx context.Context, tx *sql.Tx, role model.Role, address string) error
	Has(ctx context.Context, role model.Role, address string) (bool, error)
	Members(ctx context.Context, role model.Role) ([]string, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Grant(ctx context.Context, tx *sql.Tx, role model.Role, address, grantedBy string) error {
	const q = `
INSERT INTO role_members (role, address, granted_by)
VALUES ($1,$2,$3)
ON CONFLICT (role, address) DO NOTHING`
	_, err := tx.ExecContext(ctx, q, role, address, grantedBy)
	return err
}

func (r *repo) Revoke(ctx context.Context, tx *sql.Tx, role model.Role, address string) error {
	const q = `DELETE FROM role_members WHERE role=$1 AND address=$2`
	_, err := tx.ExecContext(ctx, q, role, address)
	return err
}

func (r *repo) Has(ctx context.Context, role model.Role, address string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM role_members WHERE role=$1 AND address=$2)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, role, address).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *repo) Members(ctx context.Context, role model.Role) ([]string, error) {
	const q = `SELECT address FROM role_members WHERE role=$1 ORDER BY granted_at`
	rows, err := r.db.QueryContext(ctx, q, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
