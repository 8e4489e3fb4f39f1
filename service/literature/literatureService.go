package litsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	eventrepo "github.com/vmmuthu31/EzhuthAI/repository/event"
	litrepo "github.com/vmmuthu31/EzhuthAI/repository/literature"
	rolerepo "github.com/vmmuthu31/EzhuthAI/repository/role"
	tokenrepo "github.com/vmmuthu31/EzhuthAI/repository/token"

	"github.com/vmmuthu31/EzhuthAI/model"
	"github.com/vmmuthu31/EzhuthAI/util/addr"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotCurator    ErrCode = "NOT_CURATOR"
	ErrNotUpdater    ErrCode = "NOT_UPDATER"
	ErrNotOwner      ErrCode = "NOT_OWNER"
	ErrTokenNotFound ErrCode = "TOKEN_NOT_FOUND"
	ErrTitleExists   ErrCode = "TITLE_EXISTS"
	ErrEmptyTitle    ErrCode = "EMPTY_TITLE"
	ErrFutureYear    ErrCode = "FUTURE_YEAR"
	ErrEmptyURI      ErrCode = "EMPTY_URI"
	ErrBadAddress    ErrCode = "BAD_ADDRESS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// UpdateParams carries the full replacement metadata for a token.
type UpdateParams struct {
	Title    string
	Author   string
	Year     int
	Category string
	WorkType string
}

type Service interface {
	// Verify marks a record curator-verified. Re-verifying is allowed and
	// re-emits the event; the flag never goes back to false.
	Verify(ctx context.Context, caller string, tokenID int64) error
	UpdateMetadata(ctx context.Context, caller string, tokenID int64, p UpdateParams) error
	UpdateTokenURI(ctx context.Context, caller string, tokenID int64, uri string) error
	Transfer(ctx context.Context, caller string, tokenID int64, to string) error

	Get(ctx context.Context, tokenID int64) (*model.Literature, error)
	TokensOfOwner(ctx context.Context, owner string) ([]int64, error)
	BalanceOf(ctx context.Context, owner string) (int64, error)
	TokensByCategory(ctx context.Context, category string) ([]int64, error)
	TokensByAuthor(ctx context.Context, author string) ([]int64, error)
	Events(ctx context.Context, tokenID int64) ([]model.LedgerEvent, error)
}

type service struct {
	db     *sql.DB
	lit    litrepo.Repo
	tokens tokenrepo.Repo
	roles  rolerepo.Repo
	ev     eventrepo.Repo
	now    func() time.Time
}

func New(db *sql.DB, l litrepo.Repo, t tokenrepo.Repo, r rolerepo.Repo, ev eventrepo.Repo) Service {
	return &service{db: db, lit: l, tokens: t, roles: r, ev: ev, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Verify(ctx context.Context, caller string, tokenID int64) (err error) {
	ok, err := s.roles.Has(ctx, model.RoleCurator, caller)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotCurator)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = s.lit.GetForUpdate(ctx, tx, tokenID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrTokenNotFound)
		}
		return err
	}
	if err = s.lit.SetVerified(ctx, tx, tokenID); err != nil {
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventLiteratureVerified, &tokenID, caller, map[string]any{"curator": caller}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) UpdateMetadata(ctx context.Context, caller string, tokenID int64, p UpdateParams) (err error) {
	if p.Title == "" {
		return makeErr(ErrEmptyTitle)
	}
	if p.Year > s.now().Year() {
		return makeErr(ErrFutureYear)
	}
	ok, err := s.roles.Has(ctx, model.RoleUpdater, caller)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotUpdater)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cur, err := s.lit.GetForUpdate(ctx, tx, tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrTokenNotFound)
		}
		return err
	}

	// A changed title must not collide with any other record. The old
	// title is freed in the same statement that claims the new one.
	if p.Title != cur.Title {
		exists, terr := s.lit.TitleExists(ctx, tx, p.Title)
		if terr != nil {
			err = terr
			return err
		}
		if exists {
			return makeErr(ErrTitleExists)
		}
	}

	if err = s.lit.UpdateMetadata(ctx, tx, tokenID, p.Title, p.Author, p.Year, p.Category, p.WorkType); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return makeErr(ErrTitleExists)
		}
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventMetadataUpdated, &tokenID, caller, map[string]any{
		"old_title": cur.Title,
		"new_title": p.Title,
	}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) UpdateTokenURI(ctx context.Context, caller string, tokenID int64, uri string) (err error) {
	if uri == "" {
		return makeErr(ErrEmptyURI)
	}
	ok, err := s.roles.Has(ctx, model.RoleUpdater, caller)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotUpdater)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = s.tokens.GetForUpdate(ctx, tx, tokenID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrTokenNotFound)
		}
		return err
	}
	if err = s.tokens.UpdateURI(ctx, tx, tokenID, uri); err != nil {
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventTokenURIUpdated, &tokenID, caller, map[string]any{"uri": uri}); err != nil {
		return err
	}
	return tx.Commit()
}

// Transfer moves a token to a new owner. The enumeration row is removed
// and re-appended in the same transaction, so a token id never appears in
// two owners' lists.
func (s *service) Transfer(ctx context.Context, caller string, tokenID int64, to string) (err error) {
	dest, err := addr.Normalize(to)
	if err != nil {
		return makeErr(ErrBadAddress)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	tok, err := s.tokens.GetForUpdate(ctx, tx, tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrTokenNotFound)
		}
		return err
	}
	if tok.Owner != caller {
		return makeErr(ErrNotOwner)
	}

	if err = s.tokens.RemoveOwnerToken(ctx, tx, tokenID); err != nil {
		return err
	}
	if err = s.tokens.AppendOwnerToken(ctx, tx, dest, tokenID); err != nil {
		return err
	}
	if err = s.tokens.UpdateOwner(ctx, tx, tokenID, dest); err != nil {
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventTokenTransferred, &tokenID, caller, map[string]any{
		"from": tok.Owner,
		"to":   dest,
	}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) Get(ctx context.Context, tokenID int64) (*model.Literature, error) {
	lit, err := s.lit.GetLiterature(ctx, tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrTokenNotFound)
		}
		return nil, err
	}
	return lit, nil
}

func (s *service) TokensOfOwner(ctx context.Context, owner string) ([]int64, error) {
	a, err := addr.Normalize(owner)
	if err != nil {
		return nil, makeErr(ErrBadAddress)
	}
	return s.tokens.TokensOfOwner(ctx, a)
}

func (s *service) BalanceOf(ctx context.Context, owner string) (int64, error) {
	a, err := addr.Normalize(owner)
	if err != nil {
		return 0, makeErr(ErrBadAddress)
	}
	return s.tokens.BalanceOf(ctx, a)
}

func (s *service) TokensByCategory(ctx context.Context, category string) ([]int64, error) {
	return s.lit.TokensByCategory(ctx, category)
}

func (s *service) TokensByAuthor(ctx context.Context, author string) ([]int64, error) {
	return s.lit.TokensByAuthor(ctx, author)
}

func (s *service) Events(ctx context.Context, tokenID int64) ([]model.LedgerEvent, error) {
	return s.ev.ListByToken(ctx, tokenID)
}
