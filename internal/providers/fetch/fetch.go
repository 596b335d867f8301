// Package fetch is the HTTP client shared by the enrichment adapters.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/pkg/retry"
)

const (
	maxResponseSize = 8 << 20 // climate archives are a few hundred KB
	defaultTimeout  = 10 * time.Second
)

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

type Fetcher struct {
	client  *http.Client
	retrier *retry.Retrier
}

func New(timeout time.Duration, retryCfg *retry.Config) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if retryCfg == nil {
		retryCfg = retry.NewAdapterConfig(2)
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		retrier: retry.NewRetrier(retryCfg),
	}
}

// GetJSON issues a GET with query parameters and decodes the response into dst.
// Server errors and transport failures are retried; 4xx answers are not.
func (f *Fetcher) GetJSON(ctx context.Context, endpoint string, query url.Values, headers map[string]string, dst any) error {
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	return f.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("User-Agent", core.AppUserAgent)
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(ctx.Err())
			}
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode >= 400 {
			statusErr := &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return retry.Permanent(statusErr)
			}
			return statusErr
		}

		if err := json.Unmarshal(body, dst); err != nil {
			return retry.Permanent(fmt.Errorf("decode %s: %w", endpoint, err))
		}
		return nil
	})
}

// HTMLToText flattens provider supplied HTML snippets into plain text.
func HTMLToText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(text), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
