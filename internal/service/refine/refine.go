// Package refine decides whether a turn narrows the previous answer instead of asking something new.
package refine

import (
	"fmt"
	"strings"

	"github.com/sandevgo/tripsmith/internal/core"
)

// Policy judges a turn against the history as it stood before the turn.
type Policy interface {
	Decide(history []core.Message, entities core.Entities) core.RefinementDecision
}

// DefaultSignals are the words that mark an assistant turn as having offered destinations.
var DefaultSignals = []string{"consider", "explore", "visit"}

// minHistory is the seed plus one full exchange.
const minHistory = 3

// KeywordPolicy treats added preferences without a new destination, following a turn that
// suggested destinations, as a refinement.
type KeywordPolicy struct {
	Signals []string
}

func NewKeywordPolicy() *KeywordPolicy {
	return &KeywordPolicy{Signals: DefaultSignals}
}

func (p *KeywordPolicy) Decide(history []core.Message, e core.Entities) core.RefinementDecision {
	if len(history) < minHistory {
		return core.RefinementDecision{Rationale: "not enough history"}
	}

	last, ok := lastAssistant(history)
	if !ok {
		return core.RefinementDecision{Rationale: "no previous answer"}
	}

	signal, offered := p.matchSignal(last)
	if !offered {
		return core.RefinementDecision{Rationale: "previous answer offered no destinations"}
	}
	if e.Where != "" {
		return core.RefinementDecision{Rationale: fmt.Sprintf("new destination %q", e.Where)}
	}
	if len(e.Constraints) == 0 && e.Party == "" {
		return core.RefinementDecision{Rationale: "no new constraints or party"}
	}

	return core.RefinementDecision{
		Refine:    true,
		Rationale: fmt.Sprintf("previous answer offered destinations (%q), turn adds preferences only", signal),
	}
}

func (p *KeywordPolicy) matchSignal(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, s := range p.Signals {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return s, true
		}
	}
	return "", false
}

func lastAssistant(history []core.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == core.RoleAssistant {
			return history[i].Content, true
		}
	}
	return "", false
}
