package litrepo

import (
	"context"
	"database/sql"

	"github.com/vmmuthu31/EzhuthAI/model"
)

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, tokenID int64, title, author string, year int, category, workType string) error
	TitleExists(ctx context.Context, tx *sql.Tx, title string) (bool, error)
	UpdateMetadata(ctx context.Context, tx *sql.Tx, tokenID int64, title, author string, year int, category, workType string) error
	SetVerified(ctx context.Context, tx *sql.Tx, tokenID int64) error

	Get(ctx context.Context, tokenID int64) (*model.LiteratureRecord, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (*model.LiteratureRecord, error)
	GetLiterature(ctx context.Context, tokenID int64) (*model.Literature, error)
	TokensByCategory(ctx context.Context, category string) ([]int64, error)
	TokensByAuthor(ctx context.Context, author string) ([]int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, tokenID int64, title, author string, year int, category, workType string) error {
	const q = `
INSERT INTO literature (token_id, title, author, year, category, work_type, is_verified)
VALUES ($1,$2,$3,$4,$5,$6,FALSE)`
	_, err := tx.ExecContext(ctx, q, tokenID, title, author, year, category, workType)
	return err
}

// TitleExists checks the uniqueness index inside the caller's transaction.
// The UNIQUE constraint on literature.title is the backstop.
func (r *repo) TitleExists(ctx context.Context, tx *sql.Tx, title string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM literature WHERE title=$1)`
	var exists bool
	if err := tx.QueryRowContext(ctx, q, title).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateMetadata replaces every mutable field. The old title is freed and
// the new one claimed by the same statement, so the uniqueness index never
// holds a stale entry.
func (r *repo) UpdateMetadata(ctx context.Context, tx *sql.Tx, tokenID int64, title, author string, year int, category, workType string) error {
	const q = `
UPDATE literature
SET title=$2, author=$3, year=$4, category=$5, work_type=$6
WHERE token_id=$1`
	res, err := tx.ExecContext(ctx, q, tokenID, title, author, year, category, workType)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) SetVerified(ctx context.Context, tx *sql.Tx, tokenID int64) error {
	const q = `UPDATE literature SET is_verified=TRUE WHERE token_id=$1`
	res, err := tx.ExecContext(ctx, q, tokenID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Get(ctx context.Context, tokenID int64) (*model.LiteratureRecord, error) {
	const q = `
SELECT token_id, title, author, year, category, work_type, is_verified, created_at
FROM literature WHERE token_id=$1`
	var rec model.LiteratureRecord
	if err := r.db.QueryRowContext(ctx, q, tokenID).Scan(
		&rec.TokenID, &rec.Title, &rec.Author, &rec.Year, &rec.Category, &rec.WorkType, &rec.IsVerified, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, tokenID int64) (*model.LiteratureRecord, error) {
	const q = `
SELECT token_id, title, author, year, category, work_type, is_verified, created_at
FROM literature WHERE token_id=$1 FOR UPDATE`
	var rec model.LiteratureRecord
	if err := tx.QueryRowContext(ctx, q, tokenID).Scan(
		&rec.TokenID, &rec.Title, &rec.Author, &rec.Year, &rec.Category, &rec.WorkType, &rec.IsVerified, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repo) GetLiterature(ctx context.Context, tokenID int64) (*model.Literature, error) {
	const q = `
SELECT t.id, t.owner, t.creator, t.uri, t.created_at,
       l.title, l.author, l.year, l.category, l.work_type, l.is_verified
FROM tokens t
JOIN literature l ON l.token_id = t.id
WHERE t.id=$1`
	var lit model.Literature
	if err := r.db.QueryRowContext(ctx, q, tokenID).Scan(
		&lit.ID, &lit.Owner, &lit.Creator, &lit.URI, &lit.CreatedAt,
		&lit.Title, &lit.Author, &lit.Year, &lit.Category, &lit.WorkType, &lit.IsVerified,
	); err != nil {
		return nil, err
	}
	return &lit, nil
}

// TokensByCategory returns matching token ids in mint order. No match is an
// empty result, not an error.
func (r *repo) TokensByCategory(ctx context.Context, category string) ([]int64, error) {
	const q = `SELECT token_id FROM literature WHERE category=$1 ORDER BY token_id`
	return r.queryIDs(ctx, q, category)
}

func (r *repo) TokensByAuthor(ctx context.Context, author string) ([]int64, error) {
	const q = `SELECT token_id FROM literature WHERE author=$1 ORDER BY token_id`
	return r.queryIDs(ctx, q, author)
}

func (r *repo) queryIDs(ctx context.Context, q string, arg any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
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
