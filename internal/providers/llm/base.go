package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/tripsmith/internal/core"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported llm provider")
	ErrEmptyResponse       = errors.New("llm returned no choices")
)

const defaultTimeout = 120 * time.Second

// ModelInfo is what the setup wizard shows when offering a model.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ModelLister is implemented by providers that can enumerate their models.
type ModelLister interface {
	Models(ctx context.Context) ([]ModelInfo, error)
}

type baseProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func newBaseProvider(baseURL, apiKey, model string, timeout time.Duration) baseProvider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return baseProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

func (b *baseProvider) doRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}

// readOK drains the body and turns non-200 answers into errors carrying the body.
func readOK(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}

// splitSystem separates the leading run of system messages from the conversation.
// Providers with a dedicated system channel send the leading run there; system
// messages that appear later are folded into user turns so their position is kept.
func splitSystem(history []core.Message) (system []string, rest []core.Message) {
	i := 0
	for ; i < len(history) && history[i].Role == core.RoleSystem; i++ {
		system = append(system, history[i].Content)
	}
	return system, history[i:]
}

type turn struct {
	role  core.Role
	parts []string
}

// foldTurns converts a system-free alternating sequence for providers that only
// accept user/assistant roles. Consecutive messages of the same role are merged.
func foldTurns(history []core.Message) []turn {
	var out []turn
	for _, m := range history {
		role := m.Role
		content := m.Content
		if role == core.RoleSystem {
			role = core.RoleUser
			content = "[instruction]\n" + content
		}
		if n := len(out); n > 0 && out[n-1].role == role {
			out[n-1].parts = append(out[n-1].parts, content)
			continue
		}
		out = append(out, turn{role: role, parts: []string{content}})
	}
	return out
}
