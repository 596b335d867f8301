package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/pkg/log"
)

// Journal keeps a diagnostic record of completed turns. It is never read back into a conversation.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) RecordTurn(ctx context.Context, rec core.TurnRecord) error {
	intents, err := json.Marshal(nonNil(rec.Intents))
	if err != nil {
		return fmt.Errorf("failed to marshal intents: %w", err)
	}
	entities, err := json.Marshal(rec.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}
	sources, err := json.Marshal(nonNil(rec.Sources))
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO turns (session_id, turn_index, user_text, reply, intents, entities, refinement, sources, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = j.db.ExecContext(ctx, query,
		rec.SessionID, rec.TurnIndex, rec.UserText, rec.Reply,
		string(intents), string(entities), rec.Refinement, string(sources), createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// ListTurns returns the most recent turns of a session, oldest first.
func (j *Journal) ListTurns(ctx context.Context, sessionID string, limit int) ([]core.TurnRecord, error) {
	query := `SELECT session_id, turn_index, user_text, reply, intents, entities, refinement, sources, created_at
		FROM turns WHERE session_id = ? ORDER BY turn_index DESC, id DESC LIMIT ?`

	rows, err := j.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var recs []core.TurnRecord
	for rows.Next() {
		var rec core.TurnRecord
		var intents, entities, sources string

		if err := rows.Scan(&rec.SessionID, &rec.TurnIndex, &rec.UserText, &rec.Reply,
			&intents, &entities, &rec.Refinement, &sources, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		if err := json.Unmarshal([]byte(intents), &rec.Intents); err != nil {
			return nil, fmt.Errorf("failed to unmarshal intents: %w", err)
		}
		if err := json.Unmarshal([]byte(entities), &rec.Entities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &rec.Sources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest first from the query, flipped back to conversation order.
	for i, k := 0, len(recs)-1; i < k; i, k = i+1, k-1 {
		recs[i], recs[k] = recs[k], recs[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(recs)).Str("session", sessionID).Msg("loaded journal turns")
	return recs, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
