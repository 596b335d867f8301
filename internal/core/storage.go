package core

import (
	"context"
	"time"
)

// TurnRecord is one completed exchange as written to the journal.
type TurnRecord struct {
	SessionID  string    `json:"session_id"`
	TurnIndex  int       `json:"turn_index"`
	UserText   string    `json:"user_text"`
	Reply      string    `json:"reply"`
	Intents    []string  `json:"intents"`
	Entities   Entities  `json:"entities"`
	Refinement bool      `json:"refinement"`
	Sources    []Source  `json:"sources"`
	CreatedAt  time.Time `json:"created_at"`
}

type TurnJournal interface {
	RecordTurn(ctx context.Context, rec TurnRecord) error
	ListTurns(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error)
}
