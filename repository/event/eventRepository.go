package eventrepo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/vmmuthu31/EzhuthAI/model"
)

// Repo appends ledger events. Insert always runs inside the transaction
// that performs the state change the event reports.
type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, typ model.EventType, tokenID *int64, actor string, payload map[string]any) error
	ListByToken(ctx context.Context, tokenID int64) ([]model.LedgerEvent, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, typ model.EventType, tokenID *int64, actor string, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO ledger_events (id, event_type, token_id, actor, payload)
VALUES ($1,$2,$3,$4,$5)`
	_, err = tx.ExecContext(ctx, q, uuid.NewString(), typ, tokenID, actor, b)
	return err
}

func (r *repo) ListByToken(ctx context.Context, tokenID int64) ([]model.LedgerEvent, error) {
	const q = `
SELECT id, event_type, token_id, actor, payload::TEXT, created_at
FROM ledger_events
WHERE token_id=$1
ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, tokenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LedgerEvent
	for rows.Next() {
		var ev model.LedgerEvent
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.TokenID, &ev.Actor, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
