package mintsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	blacklistrepo "github.com/vmmuthu31/EzhuthAI/repository/blacklist"
	cooldownrepo "github.com/vmmuthu31/EzhuthAI/repository/cooldown"
	eventrepo "github.com/vmmuthu31/EzhuthAI/repository/event"
	litrepo "github.com/vmmuthu31/EzhuthAI/repository/literature"
	rolerepo "github.com/vmmuthu31/EzhuthAI/repository/role"
	staterepo "github.com/vmmuthu31/EzhuthAI/repository/state"
	tokenrepo "github.com/vmmuthu31/EzhuthAI/repository/token"

	"github.com/vmmuthu31/EzhuthAI/model"
	"github.com/vmmuthu31/EzhuthAI/util/addr"
)

// errors used by controllers

type ErrCode string

const (
	ErrPaused          ErrCode = "MINTING_PAUSED"
	ErrBlacklisted     ErrCode = "SENDER_BLACKLISTED"
	ErrPaymentRequired ErrCode = "PAYMENT_REQUIRED"
	ErrCooldownActive  ErrCode = "COOLDOWN_ACTIVE"
	ErrSupplyExhausted ErrCode = "SUPPLY_EXHAUSTED"
	ErrTitleExists     ErrCode = "TITLE_EXISTS"
	ErrEmptyTitle      ErrCode = "EMPTY_TITLE"
	ErrFutureYear      ErrCode = "FUTURE_YEAR"
	ErrNotMinter       ErrCode = "NOT_MINTER"
	ErrEmptyBatch      ErrCode = "EMPTY_BATCH"
	ErrBatchTooLarge   ErrCode = "BATCH_TOO_LARGE"
	ErrBadAddress      ErrCode = "BAD_ADDRESS"
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

// MintParams carries one mint request through the pipeline.
type MintParams struct {
	Recipient string
	URI       string
	Title     string
	Author    string
	Year      int
	Category  string
	WorkType  string
}

type Service interface {
	// Mint runs the single-mint pipeline. caller is the authenticated
	// address; paymentWei is the attached value, ignored for MINTER-role
	// callers.
	Mint(ctx context.Context, caller string, p MintParams, paymentWei int64) (int64, error)

	// BatchMint mints up to MaxBatchSize entries atomically. MINTER only;
	// there is no payment path for batches.
	BatchMint(ctx context.Context, caller string, params []MintParams) ([]int64, error)
}

type service struct {
	db       *sql.DB
	state    staterepo.Repo
	tokens   tokenrepo.Repo
	lit      litrepo.Repo
	roles    rolerepo.Repo
	bl       blacklistrepo.Repo
	cooldown cooldownrepo.Repo
	ev       eventrepo.Repo
	now      func() time.Time
}

func New(db *sql.DB, st staterepo.Repo, t tokenrepo.Repo, l litrepo.Repo, r rolerepo.Repo, b blacklistrepo.Repo, cd cooldownrepo.Repo, ev eventrepo.Repo) Service {
	return &service{
		db: db, state: st, tokens: t, lit: l, roles: r, bl: b, cooldown: cd, ev: ev,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Mint(ctx context.Context, caller string, p MintParams, paymentWei int64) (tokenID int64, err error) {
	recipient, err := addr.Normalize(p.Recipient)
	if err != nil {
		return 0, makeErr(ErrBadAddress)
	}
	isMinter, err := s.roles.Has(ctx, model.RoleMinter, caller)
	if err != nil {
		return 0, err
	}

	now := s.now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Locking the state row serializes every mint; the pipeline below runs
	// against fully committed state.
	st, err := s.state.GetForUpdate(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err = checkPaused(st); err != nil {
		return 0, err
	}

	blocked, err := s.bl.IsBlacklisted(ctx, caller)
	if err != nil {
		return 0, err
	}
	if blocked {
		return 0, makeErr(ErrBlacklisted)
	}

	if err = checkPayment(isMinter, paymentWei, st.MintPriceWei); err != nil {
		return 0, err
	}
	if !isMinter {
		last, lerr := s.cooldown.LastMintAtForUpdate(ctx, tx, caller)
		if lerr != nil {
			err = lerr
			return 0, err
		}
		if err = checkCooldown(isMinter, last, now); err != nil {
			return 0, err
		}
	}

	if err = checkSupply(st.TokenCounter, 1); err != nil {
		return 0, err
	}

	id, err := s.mintOne(ctx, tx, st.TokenCounter, recipient, p, now)
	if err != nil {
		return 0, err
	}
	if err = s.state.UpdateCounter(ctx, tx, id); err != nil {
		return 0, err
	}

	if !isMinter {
		if err = s.cooldown.Touch(ctx, tx, caller, now); err != nil {
			return 0, err
		}
		if err = s.state.CreditPool(ctx, tx, paymentWei); err != nil {
			return 0, err
		}
	}

	if err = s.ev.Insert(ctx, tx, model.EventLiteratureMinted, &id, caller, map[string]any{
		"recipient": recipient,
		"title":     p.Title,
	}); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *service) BatchMint(ctx context.Context, caller string, params []MintParams) (ids []int64, err error) {
	now := s.now()
	if err = validateBatch(params, now); err != nil {
		return nil, err
	}

	isMinter, err := s.roles.Has(ctx, model.RoleMinter, caller)
	if err != nil {
		return nil, err
	}
	if !isMinter {
		return nil, makeErr(ErrNotMinter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	st, err := s.state.GetForUpdate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err = checkPaused(st); err != nil {
		return nil, err
	}

	blocked, err := s.bl.IsBlacklisted(ctx, caller)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, makeErr(ErrBlacklisted)
	}

	if err = checkSupply(st.TokenCounter, len(params)); err != nil {
		return nil, err
	}

	// In-batch duplicates and per-entry shape were already rejected by
	// validateBatch; mintOne still checks each title against storage.
	counter := st.TokenCounter
	ids = make([]int64, 0, len(params))
	for _, p := range params {
		recipient, aerr := addr.Normalize(p.Recipient)
		if aerr != nil {
			return nil, makeErr(ErrBadAddress)
		}
		var id int64
		id, err = s.mintOne(ctx, tx, counter, recipient, p, now)
		if err != nil {
			return nil, err
		}
		counter = id
		ids = append(ids, id)

		if err = s.ev.Insert(ctx, tx, model.EventLiteratureMinted, &id, caller, map[string]any{
			"recipient": recipient,
			"title":     p.Title,
		}); err != nil {
			return nil, err
		}
	}

	if err = s.state.UpdateCounter(ctx, tx, counter); err != nil {
		return nil, err
	}
	if err = s.ev.Insert(ctx, tx, model.EventBatchMinted, nil, caller, map[string]any{"token_ids": ids}); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// mintOne allocates counter+1, creates the token and its literature record,
// and appends the owner enumeration row. Caller updates the stored counter.
func (s *service) mintOne(ctx context.Context, tx *sql.Tx, counter int64, recipient string, p MintParams, now time.Time) (int64, error) {
	if err := validateParams(p, now); err != nil {
		return 0, err
	}
	exists, err := s.lit.TitleExists(ctx, tx, p.Title)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, makeErr(ErrTitleExists)
	}

	id := counter + 1
	if err := s.tokens.Insert(ctx, tx, id, recipient, recipient, p.URI); err != nil {
		return 0, err
	}
	if err := s.tokens.AppendOwnerToken(ctx, tx, recipient, id); err != nil {
		return 0, err
	}
	if err := s.lit.Insert(ctx, tx, id, p.Title, p.Author, p.Year, p.Category, p.WorkType); err != nil {
		if derr := mapTitleDuplicate(err); derr != nil {
			return 0, derr
		}
		return 0, err
	}
	return id, nil
}

func mapTitleDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return makeErr(ErrTitleExists)
	}
	return nil
}
