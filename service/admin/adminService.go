package adminsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	eventrepo "github.com/vmmuthu31/EzhuthAI/repository/event"
	payoutrepo "github.com/vmmuthu31/EzhuthAI/repository/payout"
	rolerepo "github.com/vmmuthu31/EzhuthAI/repository/role"
	staterepo "github.com/vmmuthu31/EzhuthAI/repository/state"

	"github.com/vmmuthu31/EzhuthAI/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotAdmin     ErrCode = "NOT_ADMIN"
	ErrEmptyPool    ErrCode = "EMPTY_POOL"
	ErrPayoutFailed ErrCode = "PAYOUT_FAILED"
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
	PauseMinting(ctx context.Context, caller string) error
	UnpauseMinting(ctx context.Context, caller string) error

	// EmergencyWithdraw sweeps the platform pool (mint proceeds) to the
	// calling admin. Accrued royalty balances live in a separate table and
	// are never touched by this call.
	EmergencyWithdraw(ctx context.Context, caller string) (int64, error)

	Status(ctx context.Context) (*model.LedgerState, error)
}

type service struct {
	db     *sql.DB
	state  staterepo.Repo
	roles  rolerepo.Repo
	ev     eventrepo.Repo
	payout payoutrepo.Repo
}

func New(db *sql.DB, st staterepo.Repo, r rolerepo.Repo, ev eventrepo.Repo, p payoutrepo.Repo) Service {
	return &service{db: db, state: st, roles: r, ev: ev, payout: p}
}

func (s *service) PauseMinting(ctx context.Context, caller string) error {
	return s.setPaused(ctx, caller, true)
}

func (s *service) UnpauseMinting(ctx context.Context, caller string) error {
	return s.setPaused(ctx, caller, false)
}

func (s *service) setPaused(ctx context.Context, caller string, paused bool) (err error) {
	ok, err := s.roles.Has(ctx, model.RoleAdmin, caller)
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

	if _, err = s.state.GetForUpdate(ctx, tx); err != nil {
		return err
	}
	if err = s.state.SetPaused(ctx, tx, paused); err != nil {
		return err
	}
	evType := model.EventMintingPaused
	if !paused {
		evType = model.EventMintingUnpaused
	}
	if err = s.ev.Insert(ctx, tx, evType, nil, caller, map[string]any{"admin": caller}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) EmergencyWithdraw(ctx context.Context, caller string) (amount int64, err error) {
	ok, err := s.roles.Has(ctx, model.RoleAdmin, caller)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrNotAdmin)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	st, err := s.state.GetForUpdate(ctx, tx)
	if err != nil {
		return 0, err
	}
	if st.PlatformPoolWei <= 0 {
		return 0, makeErr(ErrEmptyPool)
	}
	amount = st.PlatformPoolWei

	if err = s.state.ZeroPool(ctx, tx); err != nil {
		return 0, err
	}

	// Pool zeroed, payout requested, then commit. A gateway failure rolls
	// everything back.
	_, perr := s.payout.Send(payoutrepo.SendReq{
		ExternalID:  fmt.Sprintf("emergency:%s:%d", caller, time.Now().UnixNano()),
		Address:     caller,
		AmountWei:   amount,
		Description: "Emergency withdrawal",
	})
	if perr != nil {
		err = makeErr(ErrPayoutFailed)
		return 0, err
	}

	if err = s.ev.Insert(ctx, tx, model.EventEmergencyWithdraw, nil, caller, map[string]any{
		"admin":  caller,
		"amount": amount,
	}); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return amount, nil
}

func (s *service) Status(ctx context.Context) (*model.LedgerState, error) {
	return s.state.Get(ctx)
}
