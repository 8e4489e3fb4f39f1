package royaltysvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	eventrepo "github.com/vmmuthu31/EzhuthAI/repository/event"
	payoutrepo "github.com/vmmuthu31/EzhuthAI/repository/payout"
	rolerepo "github.com/vmmuthu31/EzhuthAI/repository/role"
	royaltyrepo "github.com/vmmuthu31/EzhuthAI/repository/royalty"
	tokenrepo "github.com/vmmuthu31/EzhuthAI/repository/token"

	"github.com/vmmuthu31/EzhuthAI/model"
	"github.com/vmmuthu31/EzhuthAI/util/addr"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotAdmin       ErrCode = "NOT_ADMIN"
	ErrTokenNotFound  ErrCode = "TOKEN_NOT_FOUND"
	ErrRateOutOfRange ErrCode = "RATE_OUT_OF_RANGE"
	ErrBadSalePrice   ErrCode = "BAD_SALE_PRICE"
	ErrNoBalance      ErrCode = "NO_BALANCE"
	ErrPayoutFailed   ErrCode = "PAYOUT_FAILED"
	ErrBadAddress     ErrCode = "BAD_ADDRESS"
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

type Withdrawal struct {
	AmountWei int64
	PayoutID  string
}

type Service interface {
	// SetRate overrides a token's royalty rate (basis points, 0..10000).
	// ADMIN only.
	SetRate(ctx context.Context, caller string, tokenID int64, bps int) error
	GetRate(ctx context.Context, tokenID int64) (*model.RoyaltyRate, error)

	// Quote computes salePrice * effectiveRate / 10000 without touching
	// any balance.
	Quote(ctx context.Context, tokenID int64, salePriceWei int64) (int64, error)

	// RecordSale accrues the royalty for a reported sale to the token's
	// creator. ADMIN (marketplace settlement) only.
	RecordSale(ctx context.Context, caller string, tokenID int64, salePriceWei int64) (int64, error)

	// Withdraw pays out the caller's entire accrued balance. The balance
	// is zeroed and the payout requested inside one transaction; a payout
	// failure rolls the balance back untouched.
	Withdraw(ctx context.Context, caller string) (*Withdrawal, error)

	Balance(ctx context.Context, address string) (int64, error)
}

type service struct {
	db     *sql.DB
	r      royaltyrepo.Repo
	tokens tokenrepo.Repo
	roles  rolerepo.Repo
	ev     eventrepo.Repo
	payout payoutrepo.Repo
	now    func() time.Time
}

func New(db *sql.DB, r royaltyrepo.Repo, t tokenrepo.Repo, rl rolerepo.Repo, ev eventrepo.Repo, p payoutrepo.Repo) Service {
	return &service{db: db, r: r, tokens: t, roles: rl, ev: ev, payout: p, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) SetRate(ctx context.Context, caller string, tokenID int64, bps int) (err error) {
	if bps < 0 || bps > model.MaxRoyaltyBps {
		return makeErr(ErrRateOutOfRange)
	}
	ok, err := s.roles.Has(ctx, model.RoleAdmin, caller)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotAdmin)
	}
	if _, err = s.tokens.Get(ctx, tokenID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrTokenNotFound)
		}
		return err
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

	oldRate, hadOverride, err := s.r.GetRateForUpdate(ctx, tx, tokenID)
	if err != nil {
		return err
	}
	if !hadOverride {
		oldRate = model.DefaultRoyaltyBps
	}
	if err = s.r.SetRate(ctx, tx, tokenID, bps); err != nil {
		return err
	}
	if err = s.ev.Insert(ctx, tx, model.EventRoyaltyUpdated, &tokenID, caller, map[string]any{
		"old_rate":  oldRate,
		"new_rate":  bps,
		"timestamp": s.now().Unix(),
	}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) GetRate(ctx context.Context, tokenID int64) (*model.RoyaltyRate, error) {
	if _, err := s.tokens.Get(ctx, tokenID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrTokenNotFound)
		}
		return nil, err
	}
	bps, has, err := s.r.GetRate(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	out := &model.RoyaltyRate{TokenID: tokenID, RateBps: bps, HasOverride: has, EffectiveBps: bps}
	if !has {
		out.EffectiveBps = model.DefaultRoyaltyBps
	}
	return out, nil
}

func (s *service) Quote(ctx context.Context, tokenID int64, salePriceWei int64) (int64, error) {
	if salePriceWei < 0 {
		return 0, makeErr(ErrBadSalePrice)
	}
	rate, err := s.GetRate(ctx, tokenID)
	if err != nil {
		return 0, err
	}
	return model.CalculateRoyalty(salePriceWei, rate.EffectiveBps), nil
}

func (s *service) RecordSale(ctx context.Context, caller string, tokenID int64, salePriceWei int64) (accrued int64, err error) {
	if salePriceWei <= 0 {
		return 0, makeErr(ErrBadSalePrice)
	}
	ok, err := s.roles.Has(ctx, model.RoleAdmin, caller)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrNotAdmin)
	}

	tok, err := s.tokens.Get(ctx, tokenID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrTokenNotFound)
		}
		return 0, err
	}

	rate, err := s.GetRate(ctx, tokenID)
	if err != nil {
		return 0, err
	}
	accrued = model.CalculateRoyalty(salePriceWei, rate.EffectiveBps)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.r.CreditBalance(ctx, tx, tok.Creator, accrued); err != nil {
		return 0, err
	}
	if err = s.ev.Insert(ctx, tx, model.EventRoyaltyAccrued, &tokenID, caller, map[string]any{
		"creator":    tok.Creator,
		"sale_price": salePriceWei,
		"amount":     accrued,
	}); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return accrued, nil
}

func (s *service) Withdraw(ctx context.Context, caller string) (w *Withdrawal, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bal, err := s.r.GetBalanceForUpdate(ctx, tx, caller)
	if err != nil {
		return nil, err
	}
	if bal <= 0 {
		return nil, makeErr(ErrNoBalance)
	}

	// Zero first, then request the payout. The commit happens only after
	// the gateway accepted; any failure rolls back to the prior balance.
	if err = s.r.ZeroBalance(ctx, tx, caller); err != nil {
		return nil, err
	}

	resp, perr := s.payout.Send(payoutrepo.SendReq{
		ExternalID:  fmt.Sprintf("royalty:%s:%d", caller, s.now().UnixNano()),
		Address:     caller,
		AmountWei:   bal,
		Description: "Royalty withdrawal",
	})
	if perr != nil {
		err = makeErr(ErrPayoutFailed)
		return nil, err
	}

	if err = s.ev.Insert(ctx, tx, model.EventRoyaltiesWithdrawn, nil, caller, map[string]any{
		"amount":    bal,
		"payout_id": resp.PayoutID,
	}); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &Withdrawal{AmountWei: bal, PayoutID: resp.PayoutID}, nil
}

func (s *service) Balance(ctx context.Context, address string) (int64, error) {
	a, err := addr.Normalize(address)
	if err != nil {
		return 0, makeErr(ErrBadAddress)
	}
	return s.r.GetBalance(ctx, a)
}
