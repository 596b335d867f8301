package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sandevgo/tripsmith/internal/core"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Gemini keeps one client for its lifetime. Close releases it.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration
	opts    []option.ClientOption

	mu  sync.Mutex
	cli *genai.Client
}

func NewGemini(apiKey, model string, timeout time.Duration, opts ...option.ClientOption) *Gemini {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		opts:    opts,
	}
}

func (g *Gemini) client(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cli != nil {
		return g.cli, nil
	}
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	opts := append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.opts...)
	// created once, outlives the per-call deadline
	client, err := genai.NewClient(context.WithoutCancel(ctx), opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g.cli = client
	return client, nil
}

func (g *Gemini) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cli == nil {
		return nil
	}
	err := g.cli.Close()
	g.cli = nil
	return err
}

func (g *Gemini) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	system, rest := splitSystem(history)
	turns := foldTurns(rest)
	if len(turns) == 0 || turns[len(turns)-1].role != core.RoleUser {
		return core.Message{}, fmt.Errorf("gemini: conversation must end with a user turn")
	}

	client, err := g.client(ctx)
	if err != nil {
		return core.Message{}, err
	}

	model := client.GenerativeModel(g.model)
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))},
		}
	}

	cs := model.StartChat()
	for _, t := range turns[:len(turns)-1] {
		role := "user"
		if t.role == core.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{Role: role, Parts: textParts(t.parts)})
	}

	resp, err := cs.SendMessage(ctx, textParts(turns[len(turns)-1].parts)...)
	if err != nil {
		return core.Message{}, fmt.Errorf("gemini: send message: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return core.Message{}, fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}

	var out []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok && strings.TrimSpace(string(txt)) != "" {
			out = append(out, string(txt))
		}
	}
	return core.AssistantMessage(strings.Join(out, "\n")), nil
}

func (g *Gemini) Models(ctx context.Context) ([]ModelInfo, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	var models []ModelInfo
	it := client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gemini: list models: %w", err)
		}
		models = append(models, ModelInfo{
			ID:   strings.TrimPrefix(m.Name, "models/"),
			Name: m.DisplayName,
		})
	}
	return models, nil
}

func textParts(parts []string) []genai.Part {
	out := make([]genai.Part, len(parts))
	for i, p := range parts {
		out[i] = genai.Text(p)
	}
	return out
}
