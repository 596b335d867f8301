// Package router classifies an utterance into intents and raw entities with one model call.
package router

import (
	"context"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/service/prompts"
	"github.com/sandevgo/tripsmith/pkg/jsonx"
	"github.com/sandevgo/tripsmith/pkg/log"
)

type Router struct {
	ai      core.AIProvider
	prompts *prompts.Catalog
}

func NewRouter(ai core.AIProvider, catalog *prompts.Catalog) *Router {
	return &Router{
		ai:      ai,
		prompts: catalog,
	}
}

// Route never fails: a model error or an unparseable answer yields an empty set and an empty mapping.
func (r *Router) Route(ctx context.Context, history []core.Message, text string) (core.IntentSet, map[string]any) {
	logger := log.FromCtx(ctx)

	msgs := make([]core.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, core.UserMessage(r.prompts.RouterRequest(text)))

	resp, err := r.ai.Chat(ctx, msgs)
	if err != nil {
		logger.Warn().Err(err).Msg("router: classification call failed")
		return core.NewIntentSet(), map[string]any{}
	}

	parsed := jsonx.ObjectOrEmpty(resp.Content)
	if len(parsed) == 0 {
		logger.Debug().Str("raw", resp.Content).Msg("router: no structured answer")
	}

	return parseIntents(parsed["intents"]), parseEntities(parsed["entities"])
}

// parseIntents keeps known tags only. A bare string is accepted as a one element list.
func parseIntents(v any) core.IntentSet {
	var raw []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = append(raw, t)
	}

	intents := make([]core.Intent, 0, len(raw))
	for _, s := range raw {
		if i, ok := core.ParseIntent(s); ok {
			intents = append(intents, i)
		}
	}
	return core.NewIntentSet(intents...)
}

func parseEntities(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}
