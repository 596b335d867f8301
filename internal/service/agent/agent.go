// Package agent drives one conversation turn from raw user text to a committed reply.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/service/dispatch"
	"github.com/sandevgo/tripsmith/internal/service/entities"
	"github.com/sandevgo/tripsmith/internal/service/prompts"
	"github.com/sandevgo/tripsmith/internal/service/refine"
	"github.com/sandevgo/tripsmith/internal/service/router"
	"github.com/sandevgo/tripsmith/internal/service/session"
	"github.com/sandevgo/tripsmith/pkg/log"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, intents core.IntentSet, e core.Entities, refine bool) []core.Message
}

type Option func(*Agent)

func WithPolicy(p refine.Policy) Option {
	return func(a *Agent) {
		a.policy = p
	}
}

// WithJournal records every completed turn. Journal failures never fail a turn.
func WithJournal(j core.TurnJournal) Option {
	return func(a *Agent) {
		a.journal = j
	}
}

func WithTokenCounter(c TokenCounter) Option {
	return func(a *Agent) {
		a.tokens = c
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		a.now = now
	}
}

type Agent struct {
	ai         core.AIProvider
	prompts    *prompts.Catalog
	router     *router.Router
	policy     refine.Policy
	dispatcher Dispatcher
	journal    core.TurnJournal
	tokens     TokenCounter
	now        func() time.Time
}

func NewAgent(ai core.AIProvider, catalog *prompts.Catalog, dispatcher Dispatcher, opts ...Option) *Agent {
	a := &Agent{
		ai:         ai,
		prompts:    catalog,
		router:     router.NewRouter(ai, catalog),
		policy:     refine.NewKeywordPolicy(),
		dispatcher: dispatcher,
		tokens:     NewTiktokenCounter(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// turnState is what a turn derived before the final answer, kept for the journal.
type turnState struct {
	intents  core.IntentSet
	entities core.Entities
	decision core.RefinementDecision
	sources  []core.Source
}

// Respond runs route, normalize, detect, dispatch and the final model call, then appends the
// user text and the reply to the session. A failed model call leaves the session untouched.
func (a *Agent) Respond(ctx context.Context, sess *session.Session, text string) (string, error) {
	logger := log.FromCtx(ctx)

	var st turnState
	var reply string
	idx, err := sess.RunTurn(func(history []core.Message) (string, string, error) {
		intents, raw := a.router.Route(ctx, history, text)
		st.intents = intents
		st.entities = entities.Normalize(raw)
		st.decision = a.policy.Decide(history, st.entities)

		logger.Debug().
			Strs("intents", intents.Strings()).
			Interface("entities", st.entities).
			Bool("refine", st.decision.Refine).
			Str("rationale", st.decision.Rationale).
			Msg("turn classified")

		grounding := a.dispatcher.Dispatch(ctx, st.intents, st.entities, st.decision.Refine)
		st.sources = dispatch.Sources(grounding)

		stack := Assemble(a.prompts, history, grounding, st.decision.Refine, text)
		a.logStack(ctx, stack, st.sources)

		resp, err := a.ai.Chat(ctx, stack)
		if err != nil {
			return "", "", fmt.Errorf("final answer: %w", err)
		}
		reply = strings.TrimSpace(resp.Content)
		return text, reply, nil
	})
	if err != nil {
		return "", err
	}

	a.record(ctx, sess, idx, text, reply, st)
	return reply, nil
}

// Assemble builds the final-answer stack: history, grounding, the refinement instruction when
// refining, the fixed policy layer and finally the user message. Nothing here is persisted.
func Assemble(catalog *prompts.Catalog, history, grounding []core.Message, refining bool, text string) []core.Message {
	instructions := catalog.Instructions()

	stack := make([]core.Message, 0, len(history)+len(grounding)+len(instructions)+2)
	stack = append(stack, history...)
	stack = append(stack, grounding...)
	if refining {
		stack = append(stack, core.SystemMessage(catalog.Refinement))
	}
	for _, instr := range instructions {
		stack = append(stack, core.SystemMessage(instr))
	}
	return append(stack, core.UserMessage(text))
}

func (a *Agent) logStack(ctx context.Context, stack []core.Message, sources []core.Source) {
	ev := log.FromCtx(ctx).Debug()
	if !ev.Enabled() {
		return
	}

	ev = ev.Int("messages", len(stack)).Interface("sources", sources)
	if a.tokens != nil {
		if n, err := a.tokens.Count(stack); err == nil {
			ev = ev.Int("tokens", n)
		} else {
			ev = ev.AnErr("token_err", err)
		}
	}
	ev.Msg("prompt stack assembled")
}

func (a *Agent) record(ctx context.Context, sess *session.Session, idx int, text, reply string, st turnState) {
	if a.journal == nil {
		return
	}

	rec := core.TurnRecord{
		SessionID:  sess.ID(),
		TurnIndex:  idx,
		UserText:   text,
		Reply:      reply,
		Intents:    st.intents.Strings(),
		Entities:   st.entities,
		Refinement: st.decision.Refine,
		Sources:    st.sources,
		CreatedAt:  a.now().UTC(),
	}
	if err := a.journal.RecordTurn(ctx, rec); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", sess.ID()).Msg("failed to journal turn")
	}
}
