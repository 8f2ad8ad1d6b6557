package marvel

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Catalog defines the read-only character lookups the browsing core needs.
// It is implemented by *Client and by test fakes.
type Catalog interface {
	SearchCharacters(ctx context.Context, query Query) ([]Character, error)
	GetCharacter(ctx context.Context, id int) (*Character, error)
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Observer is notified after every request with the attribution text returned
// by the API (empty on failure) and the request error, if any.
type Observer interface {
	ObserveRequest(attribution string, err error)
}

// Client talks to the Marvel Comics HTTP API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	publicKey  string
	privateKey string
	limiter    *rate.Limiter
	logger     *slog.Logger
	observer   Observer
	now        func() time.Time
}

// Options configure a Client. Zero values use defaults.
type Options struct {
	BaseURL           string
	PublicKey         string
	PrivateKey        string
	RequestsPerSecond float64
	Logger            *slog.Logger
	Observer          Observer
	HTTPClient        *http.Client
}

const (
	defaultBaseURL    = "https://gateway.marvel.com"
	defaultUserAgent  = "cerebro/0.1"
	requestTimeout    = 10 * time.Second
	defaultRate       = 2.0
	limiterBurst      = 4
	charactersPath    = "/v1/public/characters"
	requestIDHeader   = "X-Request-ID"
	maxPageLimit      = 100
	defaultSearchPage = 20
)

// NewClient builds a Client for the API rooted at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    base,
		http:       httpClient,
		userAgent:  defaultUserAgent,
		publicKey:  strings.TrimSpace(opts.PublicKey),
		privateKey: strings.TrimSpace(opts.PrivateKey),
		limiter:    rate.NewLimiter(rate.Limit(rps), limiterBurst),
		logger:     logger,
		observer:   opts.Observer,
		now:        time.Now,
	}, nil
}

// OrderBy is a server-side ordering for character listings.
type OrderBy string

const (
	OrderNone         OrderBy = ""
	OrderName         OrderBy = "name"
	OrderNameDesc     OrderBy = "-name"
	OrderModified     OrderBy = "modified"
	OrderModifiedDesc OrderBy = "-modified"
)

// Query configures /v1/public/characters requests.
type Query struct {
	NameStartsWith string
	Limit          int
	Offset         int
	OrderBy        OrderBy
}

// SearchCharacters lists characters matching the query.
func (c *Client) SearchCharacters(ctx context.Context, query Query) ([]Character, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if prefix := strings.TrimSpace(query.NameStartsWith); prefix != "" {
		values.Set("nameStartsWith", prefix)
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultSearchPage
	}
	values.Set("limit", strconv.Itoa(min(limit, maxPageLimit)))
	if query.Offset > 0 {
		values.Set("offset", strconv.Itoa(query.Offset))
	}
	if query.OrderBy != OrderNone {
		values.Set("orderBy", string(query.OrderBy))
	}
	var payload Envelope
	if _, err := c.get(ctx, "search characters", charactersPath, values, &payload); err != nil {
		return nil, err
	}
	return payload.Data.Results, nil
}

// GetCharacter fetches a single character. A nil character with a nil error
// means the API has no record for id.
func (c *Client) GetCharacter(ctx context.Context, id int) (*Character, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, nil
	}
	var payload Envelope
	status, err := c.get(ctx, "get character", charactersPath+"/"+strconv.Itoa(id), url.Values{}, &payload)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(payload.Data.Results) == 0 {
		return nil, nil
	}
	character := payload.Data.Results[0]
	return &character, nil
}

func (c *Client) get(ctx context.Context, op, path string, values url.Values, dest *Envelope) (int, error) {
	status, err := c.doURL(ctx, op, &url.URL{Path: path, RawQuery: c.sign(values).Encode()}, dest)
	if c.observer != nil {
		attribution := ""
		if err == nil {
			attribution = dest.AttributionText
		}
		observed := err
		// A missing record is an answer, not an outage.
		if status == http.StatusNotFound {
			observed = nil
		}
		c.observer.ObserveRequest(attribution, observed)
	}
	return status, err
}

// sign adds the apikey/ts/hash triple the API expects from server-side callers.
func (c *Client) sign(values url.Values) url.Values {
	if c.publicKey == "" {
		return values
	}
	values.Set("apikey", c.publicKey)
	if c.privateKey == "" {
		return values
	}
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	sum := md5.Sum([]byte(ts + c.privateKey + c.publicKey))
	values.Set("ts", ts)
	values.Set("hash", hex.EncodeToString(sum[:]))
	return values
}

func (c *Client) doURL(ctx context.Context, op string, rel *url.URL, dest any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, &TransientFetchError{Op: op, Err: fmt.Errorf("wait for rate limiter: %w", err)}
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return 0, &TransientFetchError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)

	started := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		c.logger.Log(ctx, level, "catalog request failed",
			slog.String("request_id", requestID),
			slog.String("path", rel.Path),
			slog.String("error", err.Error()),
		)
		return 0, &TransientFetchError{Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("catalog request",
		slog.String("request_id", requestID),
		slog.String("path", rel.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", c.now().Sub(started)),
	)

	if resp.StatusCode >= 400 {
		if resp.StatusCode != http.StatusNotFound {
			c.logger.Warn("catalog request rejected",
				slog.String("request_id", requestID),
				slog.String("path", rel.Path),
				slog.Int("status", resp.StatusCode),
			)
		}
		return resp.StatusCode, &TransientFetchError{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode),
		}
	}
	if dest == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, &TransientFetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
