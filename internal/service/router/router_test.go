package router

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/service/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedAI struct {
	reply string
	err   error
	calls [][]core.Message
}

func (s *scriptedAI) Chat(_ context.Context, history []core.Message) (core.Message, error) {
	s.calls = append(s.calls, append([]core.Message(nil), history...))
	if s.err != nil {
		return core.Message{}, s.err
	}
	return core.AssistantMessage(s.reply), nil
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		err          error
		wantIntents  core.IntentSet
		wantEntities map[string]any
	}{
		{
			name:        "clean json",
			reply:       `{"intents":["events"],"entities":{"where":"Tokyo","when":"April","days":null,"constraints":[]}}`,
			wantIntents: core.IntentSet{core.IntentEvents},
			wantEntities: map[string]any{
				"where":       "Tokyo",
				"when":        "April",
				"days":        nil,
				"constraints": []any{},
			},
		},
		{
			name:         "json wrapped in prose with trailing comma",
			reply:        "Sure! Here you go:\nJSON: {\"intents\":[\"budget\",\"recommendation\",],\"entities\":{\"days\":4,}}\nHope it helps.",
			wantIntents:  core.IntentSet{core.IntentBudget, core.IntentRecommendation},
			wantEntities: map[string]any{"days": float64(4)},
		},
		{
			name:         "unknown and duplicate intents dropped",
			reply:        `{"intents":["weather","Events","events",7],"entities":{}}`,
			wantIntents:  core.IntentSet{core.IntentEvents},
			wantEntities: map[string]any{},
		},
		{
			name:         "single intent string",
			reply:        `{"intents":"profile_tips"}`,
			wantIntents:  core.IntentSet{core.IntentProfileTips},
			wantEntities: map[string]any{},
		},
		{
			name:         "entities not a mapping",
			reply:        `{"intents":["recommendation"],"entities":["Rome"]}`,
			wantIntents:  core.IntentSet{core.IntentRecommendation},
			wantEntities: map[string]any{},
		},
		{
			name:         "no json",
			reply:        "I cannot classify this",
			wantIntents:  core.IntentSet{},
			wantEntities: map[string]any{},
		},
		{
			name:         "array instead of object",
			reply:        `["events"]`,
			wantIntents:  core.IntentSet{},
			wantEntities: map[string]any{},
		},
		{
			name:         "model failure",
			err:          errors.New("connection refused"),
			wantIntents:  core.IntentSet{},
			wantEntities: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &scriptedAI{reply: tt.reply, err: tt.err}
			r := NewRouter(ai, prompts.Default())

			intents, entities := r.Route(context.Background(), nil, "text")
			assert.Equal(t, tt.wantIntents, intents)
			assert.Equal(t, tt.wantEntities, entities)
		})
	}
}

func TestRoute_SendsHistoryThenRequest(t *testing.T) {
	catalog := prompts.Default()
	ai := &scriptedAI{reply: `{}`}
	r := NewRouter(ai, catalog)

	history := []core.Message{
		core.SystemMessage("seed"),
		core.UserMessage("hi"),
		core.AssistantMessage("hello"),
	}
	r.Route(context.Background(), history, "Anything special happening in Tokyo in April?")

	require.Len(t, ai.calls, 1)
	sent := ai.calls[0]
	require.Len(t, sent, 4)
	assert.Equal(t, history, sent[:3])
	assert.Equal(t, core.RoleUser, sent[3].Role)
	assert.Equal(t, catalog.RouterRequest("Anything special happening in Tokyo in April?"), sent[3].Content)
	assert.Len(t, history, 3)
}
