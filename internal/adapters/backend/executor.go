package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_gateway/internal/domain"
)

// DefaultTimeout bounds one attempt when the call site does not
// override it.
const DefaultTimeout = 8 * time.Second

const maxBodyBytes = 4 << 20

type tokenKey struct{}

// WithToken returns a context carrying the caller's bearer token.
// The executor prefers it over the process token store, so concurrent
// callers never send each other's credentials upstream.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

// Executor performs one HTTP call with a bounded wait and uniform
// error extraction. It never touches the cache.
type Executor struct {
	hc     *http.Client
	tokens domain.TokenStore
	rl     *rate.Limiter
}

func NewExecutor(tokens domain.TokenStore, rps int) *Executor {
	if rps <= 0 {
		rps = 20
	}
	return &Executor{
		// Per-attempt deadlines come from the request context; the
		// client itself stays unbounded.
		hc:     &http.Client{},
		tokens: tokens,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Do issues one request against url. The decoded JSON body is
// returned as any; a body that is not valid JSON comes back as its
// raw text rather than an error.
func (e *Executor) Do(ctx context.Context, method, url string, body any, timeout time.Duration) (any, error) {
	if err := e.rl.Wait(ctx); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, method, url, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-gateway/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tok := tokenFrom(ctx)
	if tok == "" && e.tokens != nil {
		tok = e.tokens.GetToken()
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := e.hc.Do(req)
	if err != nil {
		// The parent context going away is the caller's problem, not
		// a host failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Host: url, Wait: timeout}
		}
		return nil, &NetworkError{Host: url, Err: err}
	}
	defer resp.Body.Close()

	// Text first; JSON is attempted, never assumed.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Host: url, Wait: timeout}
		}
		return nil, &NetworkError{Host: url, Err: err}
	}

	payload := decodeLoose(raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Message: errorMessage(payload, resp.StatusCode)}
	}
	return payload, nil
}

// decodeLoose parses raw as JSON, falling back to the trimmed text
// when parsing fails. Empty bodies decode to nil.
func decodeLoose(raw []byte) any {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v
	}
	return text
}

// errorMessage prefers a server-supplied error/message field,
// otherwise synthesizes "HTTP <status>".
func errorMessage(payload any, status int) string {
	if m, ok := payload.(map[string]any); ok {
		for _, k := range []string{"error", "message", "Message", "thongBao"} {
			if s, ok := m[k].(string); ok && s != "" {
				return s
			}
		}
	}
	if s, ok := payload.(string); ok && s != "" && len(s) < 200 {
		return fmt.Sprintf("HTTP %d: %s", status, s)
	}
	return fmt.Sprintf("HTTP %d", status)
}
