// Package mt5 implements broker.Gateway against a MetaTrader terminal
// REST bridge. The bridge owns the terminal connection; this client
// owns exactly one session on it.
package mt5

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"fxgym/broker"
)

// DefaultTimeout bounds every bridge round trip. A hung terminal call
// must not block the training loop indefinitely.
const DefaultTimeout = 10 * time.Second

// Client talks to the MT5 bridge. All calls are serialized by an
// internal mutex: the terminal session behind the bridge is
// process-wide, singly-owned mutable state, and interleaved order
// submissions from concurrent environments are not safe.
type Client struct {
	BaseURL string // e.g. http://127.0.0.1:5001
	HTTP    *http.Client

	mu       sync.Mutex
	loggedIn bool
}

// NewClient returns a client for the bridge at baseURL with the
// default timeout applied.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

type loginRequest struct {
	Login    int64  `json:"login"`
	Password string `json:"password"`
	Server   string `json:"server"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login establishes the terminal session. It must be called once
// before any other operation; a refusal is broker.ErrLoginFailed.
func (c *Client) Login(ctx context.Context, login int64, password, server string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var resp loginResponse
	err := c.post(ctx, "/login", loginRequest{Login: login, Password: password, Server: server}, &resp)
	if err != nil {
		return fmt.Errorf("mt5 login: %w", err)
	}
	if !resp.Success {
		log.Error().Int64("login", login).Str("server", server).Str("message", resp.Message).
			Msg("terminal refused login")
		return broker.ErrLoginFailed
	}

	c.loggedIn = true
	log.Info().Int64("login", login).Str("server", server).Msg("terminal session established")
	return nil
}

// Shutdown releases the terminal session. The client is unusable until
// the next Login.
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		return nil
	}
	c.loggedIn = false
	return c.post(ctx, "/shutdown", struct{}{}, nil)
}

type accountResponse struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	MarginFree float64 `json:"margin_free"`
	Margin     float64 `json:"margin"`
	Profit     float64 `json:"profit"`
}

func (c *Client) AccountSnapshot(ctx context.Context) (broker.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		return broker.Account{}, broker.ErrNotLoggedIn
	}

	var resp accountResponse
	if err := c.get(ctx, "/account", nil, &resp); err != nil {
		return broker.Account{}, fmt.Errorf("mt5 account snapshot: %w", err)
	}
	return broker.Account{
		Balance:    resp.Balance,
		Equity:     resp.Equity,
		FreeMargin: resp.MarginFree,
		Margin:     resp.Margin,
		Profit:     resp.Profit,
	}, nil
}

type symbolResponse struct {
	Name         string  `json:"name"`
	Visible      bool    `json:"visible"`
	Ask          float64 `json:"ask"`
	Bid          float64 `json:"bid"`
	SessionOpen  float64 `json:"session_open"`
	SessionClose float64 `json:"session_close"`
	Point        float64 `json:"point"`
}

func (c *Client) SymbolSnapshot(ctx context.Context, symbol string) (broker.Symbol, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		return broker.Symbol{}, broker.ErrNotLoggedIn
	}

	var resp symbolResponse
	err := c.get(ctx, "/symbol", map[string]string{"name": symbol}, &resp)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return broker.Symbol{}, fmt.Errorf("%q: %w", symbol, broker.ErrSymbolNotFound)
		}
		return broker.Symbol{}, fmt.Errorf("mt5 symbol snapshot: %w", err)
	}
	if !resp.Visible {
		return broker.Symbol{}, fmt.Errorf("%q not visible: %w", symbol, broker.ErrSymbolNotFound)
	}
	return broker.Symbol{
		Name:         resp.Name,
		Ask:          resp.Ask,
		Bid:          resp.Bid,
		SessionOpen:  resp.SessionOpen,
		SessionClose: resp.SessionClose,
		Point:        resp.Point,
	}, nil
}

var errNotFound = errors.New("mt5: not found")

func (c *Client) get(ctx context.Context, path string, opts map[string]string, out any) error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	u.Path = path

	q := u.Query()
	for k, v := range opts {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	u.Path = path

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return fmt.Errorf("mt5 bridge http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ broker.Gateway = (*Client)(nil)
