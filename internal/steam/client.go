// Package steam is a small client for the parts of the Steam Web API used by
// the tools: friend lists, player summaries and owned games.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Steam Web API root.
	DefaultBaseURL = "https://api.steampowered.com"
	// DefaultTimeout bounds each request unless WithTimeout says otherwise.
	DefaultTimeout = 30 * time.Second
	// UserAgent is sent with every request.
	UserAgent = "steam-mcp/1.0 (+https://github.com/mwiater/steam-mcp)"

	friendListPath      = "/ISteamUser/GetFriendList/v0001/"
	playerSummariesPath = "/ISteamUser/GetPlayerSummaries/v0002/"
	ownedGamesPath      = "/IPlayerService/GetOwnedGames/v0001/"

	// maxErrorBody caps how much of an error response is kept on APIError.
	maxErrorBody = 256
)

var keyPattern = regexp.MustCompile(`^[0-9A-Fa-f]{32}$`)

// Client calls the Steam Web API with a fixed API key. It is safe for
// concurrent use and holds no mutable state after construction.
type Client struct {
	key        string
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the request timeout. A client passed with WithHTTPClient
// is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New returns a client bound to key. The key must look like a Steam Web API
// key (32 hexadecimal characters); anything else fails with ErrInvalidKey.
// A base URL that is not an absolute http(s) URL fails with ErrInvalidBaseURL.
func New(key string, opts ...Option) (*Client, error) {
	key = strings.TrimSpace(key)
	if !keyPattern.MatchString(key) {
		return nil, ErrInvalidKey
	}
	c := &Client{
		key:        key,
		baseURL:    DefaultBaseURL,
		userAgent:  UserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := checkBaseURL(c.baseURL); err != nil {
		return nil, err
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return nil
}

// GetFriendList returns the friends of steamID. Private or unknown profiles
// are reported by the API as an APIError.
func (c *Client) GetFriendList(ctx context.Context, steamID string) ([]Friend, error) {
	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("relationship", "friend")

	var out FriendListResponse
	if err := c.get(ctx, friendListPath, params, &out); err != nil {
		return nil, err
	}
	return out.FriendsList.Friends, nil
}

// GetPlayerSummaries looks up every id in a single request. Ids the API does
// not know are silently dropped from the result.
func (c *Client) GetPlayerSummaries(ctx context.Context, steamIDs []string) ([]PlayerSummary, error) {
	params := url.Values{}
	params.Set("steamids", strings.Join(steamIDs, ","))

	var out PlayerSummaryResponse
	if err := c.get(ctx, playerSummariesPath, params, &out); err != nil {
		return nil, err
	}
	return out.Response.Players, nil
}

// GetOwnedGames returns the library of steamID in upstream order.
// includeAppInfo asks the API to fill in game names.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string, includeAppInfo bool) ([]OwnedGame, error) {
	params := url.Values{}
	params.Set("steamid", steamID)
	params.Set("format", "json")
	if includeAppInfo {
		params.Set("include_appinfo", "1")
	}

	var out OwnedGamesResponse
	if err := c.get(ctx, ownedGamesPath, params, &out); err != nil {
		return nil, err
	}
	return out.Response.Games, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.key)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to prepare steam request %s: %w", path, redact(err, c.key))
	}
	req.Header = http.Header{
		"Accept":     []string{"application/json"},
		"User-Agent": []string{c.userAgent},
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to contact steam api %s: %w", path, redact(err, c.key))
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &APIError{
			Endpoint:   path,
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       strings.TrimSpace(stripTags(string(body))),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode steam api %s response: %w", path, err)
	}
	return nil
}

// redact keeps the API key out of transport errors, which embed the full URL.
func redact(err error, key string) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = strings.ReplaceAll(uerr.URL, key, "REDACTED")
	}
	return err
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripTags flattens the small HTML pages Steam returns for 401/403/500.
func stripTags(s string) string {
	return strings.Join(strings.Fields(tagPattern.ReplaceAllString(s, " ")), " ")
}
