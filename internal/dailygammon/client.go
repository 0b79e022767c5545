package dailygammon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mboeker/gammonsync/internal/league"
)

const (
	// DefaultBaseURL is the production DailyGammon host.
	DefaultBaseURL = "http://www.dailygammon.com"

	userAgent = "Mozilla/5.0"
	timeout   = 30 * time.Second

	// loginMarker appears in any page served to an unauthenticated session.
	loginMarker = "Please Login"
)

// ErrNotLoggedIn is returned when DailyGammon serves the login page instead
// of the requested document. Callers treat it as absent evidence, not as a
// fatal condition.
var ErrNotLoggedIn = errors.New("dailygammon rejected the session")

// HTTPClient is the real DailyGammon client. The session cookie obtained by
// Login lives in the client's cookie jar.
type HTTPClient struct {
	httpClient *http.Client
	BaseURL    string
	login      string
	password   string
}

// NewClient creates a client for the given credentials. No request is made
// until Login is called.
func NewClient(login, password string) Client {
	jar, _ := cookiejar.New(nil)
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		BaseURL:    DefaultBaseURL,
		login:      login,
		password:   password,
	}
}

// Ensure HTTPClient implements the Client interface.
var _ Client = (*HTTPClient)(nil)

// Login performs the form handshake and stores the session cookie in the jar.
func (c *HTTPClient) Login(ctx context.Context) error {
	form := url.Values{
		"login":    {c.login},
		"password": {c.password},
		"save":     {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/bg/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-OK HTTP status on login: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}
	// A rejected login serves the form again instead of failing the request.
	if strings.Contains(string(body), loginMarker) {
		return ErrNotLoggedIn
	}
	log.Info("Logged in to DailyGammon", "user", c.login)
	return nil
}

// FetchMatchPage downloads the move-list page for a match. A served login
// page means the session is invalid and yields ErrNotLoggedIn.
func (c *HTTPClient) FetchMatchPage(ctx context.Context, id league.MatchID) (string, error) {
	pageURL := fmt.Sprintf("%s/bg/game/%d/0/list", c.BaseURL, id)
	log.Debug("Fetching match page", "matchID", id, "url", pageURL)

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	if strings.Contains(body, loginMarker) {
		log.Warn("Session rejected while fetching match page", "matchID", id)
		return "", ErrNotLoggedIn
	}
	return body, nil
}

// ListSeasonMatches scrapes a player's user page and returns the match rows
// tagged with the given season string.
func (c *HTTPClient) ListSeasonMatches(ctx context.Context, userID, seasonTag string) ([]SeasonMatch, error) {
	pageURL := fmt.Sprintf("%s/bg/user/%s", c.BaseURL, userID)
	log.Debug("Fetching user page", "userID", userID, "url", pageURL)

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if strings.Contains(body, loginMarker) {
		log.Warn("Session rejected while fetching user page", "userID", userID)
		return nil, ErrNotLoggedIn
	}

	matches, err := ParseSeasonMatches(strings.NewReader(body), seasonTag)
	if err != nil {
		return nil, err
	}
	log.Debug("Parsed season matches from user page", "userID", userID, "season", seasonTag, "count", len(matches))
	return matches, nil
}

// FetchExport downloads the plain-text transcript of a match, split into
// lines.
func (c *HTTPClient) FetchExport(ctx context.Context, id league.MatchID) ([]string, error) {
	exportURL := fmt.Sprintf("%s/bg/export/%d", c.BaseURL, id)
	log.Debug("Fetching export transcript", "matchID", id, "url", exportURL)

	body, err := c.get(ctx, exportURL)
	if err != nil {
		return nil, err
	}
	return strings.Split(body, "\n"), nil
}

func (c *HTTPClient) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
