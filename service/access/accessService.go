package accesssvc

import (
	"context"
	"database/sql"
	"errors"

	blacklistrepo "github.com/vmmuthu31/EzhuthAI/repository/blacklist"
	eventrepo "github.com/vmmuthu31/EzhuthAI/repository/event"
	rolerepo "github.com/vmmuthu31/EzhuthAI/repository/role"

	"github.com/vmmuthu31/EzhuthAI/model"
	"github.com/vmmuthu31/EzhuthAI/util/addr"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotAdmin     ErrCode = "NOT_ADMIN"
	ErrNotModerator ErrCode = "NOT_MODERATOR"
	ErrBadRole      ErrCode = "BAD_ROLE"
	ErrBadAddress   ErrCode = "BAD_ADDRESS"
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

type Service interface {
	// EnsureAdmin seeds the deployer address as the initial ADMIN. Called
	// once at startup; a no-op on every later run.
	EnsureAdmin(ctx context.Context, deployer string) error

	GrantRole(ctx context.Context, caller string, role model.Role, address string) error
	RevokeRole(ctx context.Context, caller string, role model.Role, address string) error
	HasRole(ctx context.Context, role model.Role, address string) (bool, error)
	Members(ctx context.Context, role model.Role) ([]string, error)

	SetBlacklistStatus(ctx context.Context, caller, address string, blacklisted bool) error
	IsBlacklisted(ctx context.Context, address string) (bool, error)
}

type service struct {
	db *sql.DB
	r  rolerepo.Repo
	b  blacklistrepo.Repo
	ev eventrepo.Repo
}

func New(db *sql.DB, r rolerepo.Repo, b blacklistrepo.Repo, ev eventrepo.Repo) Service {
	return &service{db: db, r: r, b: b, ev: ev}
}

func (s *service) EnsureAdmin(ctx context.Context, deployer string) (err error) {
	a, err := addr.Normalize(deployer)
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
	if err = s.r.Grant(ctx, tx, model.RoleAdmin, a, a); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) GrantRole(ctx context.Context, caller string, role model.Role, address string) (err error) {
	if !role.Valid() {
		return makeErr(ErrBadRole)
	}
	a, err := addr.Normalize(address)
	if err != nil {
		return makeErr(ErrBadAddress)
	}
	ok, err := s.r.Has(ctx, model.RoleAdmin, caller)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotAdmin)
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
	if err = s.r.Grant(ctx, tx, role, a, caller); err != nil {
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventRoleGranted, nil, caller, map[string]any{"role": role, "address": a}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) RevokeRole(ctx context.Context, caller string, role model.Role, address string) (err error) {
	if !role.Valid() {
		return makeErr(ErrBadRole)
	}
	a, err := addr.Normalize(address)
	if err != nil {
		return makeErr(ErrBadAddress)
	}
	ok, err := s.r.Has(ctx, model.RoleAdmin, caller)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotAdmin)
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
	if err = s.r.Revoke(ctx, tx, role, a); err != nil {
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventRoleRevoked, nil, caller, map[string]any{"role": role, "address": a}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) HasRole(ctx context.Context, role model.Role, address string) (bool, error) {
	if !role.Valid() {
		return false, makeErr(ErrBadRole)
	}
	a, err := addr.Normalize(address)
	if err != nil {
		return false, makeErr(ErrBadAddress)
	}
	return s.r.Has(ctx, role, a)
}

func (s *service) Members(ctx context.Context, role model.Role) ([]string, error) {
	if !role.Valid() {
		return nil, makeErr(ErrBadRole)
	}
	return s.r.Members(ctx, role)
}

func (s *service) SetBlacklistStatus(ctx context.Context, caller, address string, blacklisted bool) (err error) {
	a, err := addr.Normalize(address)
	if err != nil {
		return makeErr(ErrBadAddress)
	}
	ok, err := s.r.Has(ctx, model.RoleModerator, caller)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotModerator)
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
	if err = s.b.Set(ctx, tx, a, blacklisted); err != nil {
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventAddressBlacklisted, nil, caller, map[string]any{"address": a, "status": blacklisted}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) IsBlacklisted(ctx context.Context, address string) (bool, error) {
	a, err := addr.Normalize(address)
	if err != nil {
		return false, makeErr(ErrBadAddress)
	}
	return s.b.IsBlacklisted(ctx, a)
}
