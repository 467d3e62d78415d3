package gameclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/goaplanner/agent/agenterr"
)

// HTTPClient implements Client against a REST game-server API, grounded on
// the teacher pack's otelhttp.NewTransport wrapping pattern (see e.g.
// examples/weather-tool-v2) for distributed tracing across the one
// external network boundary the core crosses.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter // optional; nil disables client-side throttling
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithRateLimiter installs a token-bucket limiter the client waits on
// before every request. The core itself never throttles (spec §6: "The
// client is rate-limited out-of-band; the core does not throttle
// further") — this is how that out-of-band limiting is plugged in, not a
// second independent throttle layered on top.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *HTTPClient) { c.limiter = l }
}

// WithTimeout overrides the client's request timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// NewHTTPClient returns a Client calling baseURL with the given bearer
// token, instrumented with OpenTelemetry via otelhttp.
func NewHTTPClient(baseURL, token string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return agenterr.New(method+" "+path, "transient", agenterr.ErrTransient).WithID(err.Error())
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// classifyStatus maps an HTTP status code to the error taxonomy from spec
// §6: "unauthorized [401/403], inventory-full [497], on-cooldown
// [server-side], and transient [5xx/timeouts]".
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return agenterr.New("http", "auth", agenterr.ErrUnauthorized).WithID(fmt.Sprintf("status=%d", status))
	case status == 497:
		return agenterr.New("http", "business", agenterr.ErrInventoryFull).WithID(fmt.Sprintf("status=%d", status))
	case status == 499:
		return agenterr.New("http", "cooldown", agenterr.ErrOnCooldown).WithID(fmt.Sprintf("status=%d", status))
	case status >= 500:
		return agenterr.New("http", "transient", agenterr.ErrTransient).WithID(fmt.Sprintf("status=%d", status))
	default:
		return agenterr.New("http", "transient", agenterr.ErrTransient).WithID(fmt.Sprintf("status=%d", status))
	}
}

func (c *HTTPClient) GetCharacter(ctx context.Context, name string) (CharacterSnapshot, error) {
	var snap CharacterSnapshot
	err := c.do(ctx, http.MethodGet, "/characters/"+name, nil, &snap)
	return snap, err
}

func (c *HTTPClient) FightMonster(ctx context.Context, name string) (ActionResult, error) {
	var res ActionResult
	err := c.do(ctx, http.MethodPost, "/my/"+name+"/action/fight", nil, &res)
	return res, err
}

func (c *HTTPClient) GatherResource(ctx context.Context, name string) (ActionResult, error) {
	var res ActionResult
	err := c.do(ctx, http.MethodPost, "/my/"+name+"/action/gathering", nil, &res)
	return res, err
}

func (c *HTTPClient) Move(ctx context.Context, name string, x, y int) (ActionResult, error) {
	var res ActionResult
	err := c.do(ctx, http.MethodPost, "/my/"+name+"/action/move", map[string]int{"x": x, "y": y}, &res)
	return res, err
}

func (c *HTTPClient) Craft(ctx context.Context, name, itemCode string, quantity int) (ActionResult, error) {
	var res ActionResult
	err := c.do(ctx, http.MethodPost, "/my/"+name+"/action/crafting", map[string]interface{}{
		"code":     itemCode,
		"quantity": quantity,
	}, &res)
	return res, err
}

func (c *HTTPClient) Equip(ctx context.Context, name, itemCode, slot string) (ActionResult, error) {
	var res ActionResult
	err := c.do(ctx, http.MethodPost, "/my/"+name+"/action/equip", map[string]string{
		"code": itemCode,
		"slot": slot,
	}, &res)
	return res, err
}

func (c *HTTPClient) Rest(ctx context.Context, name string) (ActionResult, error) {
	var res ActionResult
	err := c.do(ctx, http.MethodPost, "/my/"+name+"/action/rest", nil, &res)
	return res, err
}

func (c *HTTPClient) Bank(ctx context.Context, name, itemCode string, quantity int) (ActionResult, error) {
	var res ActionResult
	err := c.do(ctx, http.MethodPost, "/my/"+name+"/action/bank/deposit", map[string]interface{}{
		"code":     itemCode,
		"quantity": quantity,
	}, &res)
	return res, err
}
