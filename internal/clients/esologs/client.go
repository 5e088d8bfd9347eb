// Package esologs is the ESO Logs v2 API client. It speaks GraphQL
// over HTTP with OAuth2 client-credentials auth, a coarse hourly rate
// limit, and retry with backoff on transient failures.
package esologs

//go:generate mockgen -destination=mock/mock_client.go -package=esologsmock github.com/brainsnorkel/eso-builds/internal/clients/esologs Client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jpillora/backoff"

	"github.com/brainsnorkel/eso-builds/internal/entities/eso"
	"github.com/brainsnorkel/eso-builds/internal/errors"
)

const (
	defaultAPIURL   = "https://www.esologs.com/api/v2/client"
	defaultTokenURL = "https://www.esologs.com/oauth/token"

	// The public API allows 3600 points per hour; stay under it.
	defaultMaxRequestsPerHour = 3500

	maxAttempts = 4
)

// Client defines the interface for ESO Logs API interactions
type Client interface {
	// GetReport fetches report metadata and its full fight list
	GetReport(ctx context.Context, code string) (*Report, error)

	// GetSummaryTable fetches the roster with gear for one fight window
	GetSummaryTable(ctx context.Context, code string, startTime, endTime int64) (*SummaryTable, error)

	// GetAbilityTotals fetches one player's ability table for the
	// window, ranked by the table's own totals
	GetAbilityTotals(ctx context.Context, code string, playerID int, startTime, endTime int64, kind eso.MetricKind) ([]AbilityTotal, error)

	// GetEffectUptimes fetches friendly buff and enemy debuff uptimes
	// for the window as ability ID -> percent of fight duration
	GetEffectUptimes(ctx context.Context, code string, startTime, endTime int64) (map[int]float64, error)
}

// Config holds the dependencies for the ESO Logs client.
type Config struct {
	ClientID     string
	ClientSecret string

	// Optional overrides.
	APIURL             string
	TokenURL           string
	HTTPClient         *http.Client
	MaxRequestsPerHour int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.ClientID == "" {
		vb.RequiredField("ClientID")
	}
	if c.ClientSecret == "" {
		vb.RequiredField("ClientSecret")
	}

	return vb.Build()
}

type client struct {
	clientID     string
	clientSecret string
	apiURL       string
	tokenURL     string
	httpClient   *http.Client

	limiter *rateLimiter

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

// New creates an ESO Logs client.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	maxPerHour := cfg.MaxRequestsPerHour
	if maxPerHour <= 0 {
		maxPerHour = defaultMaxRequestsPerHour
	}

	return &client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		apiURL:       apiURL,
		tokenURL:     tokenURL,
		httpClient:   httpClient,
		limiter:      newRateLimiter(maxPerHour),
	}, nil
}

func (c *client) GetReport(ctx context.Context, code string) (*Report, error) {
	if code == "" {
		return nil, errors.InvalidArgument("report code is required")
	}

	var envelope struct {
		ReportData struct {
			Report *Report `json:"report"`
		} `json:"reportData"`
	}
	err := c.execute(ctx, reportQuery, map[string]interface{}{"code": code}, &envelope)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching report %s", code)
	}
	if envelope.ReportData.Report == nil {
		return nil, errors.NotFoundf("report %s not found", code).
			WithMeta("log_code", code)
	}

	return envelope.ReportData.Report, nil
}

func (c *client) GetSummaryTable(ctx context.Context, code string, startTime, endTime int64) (*SummaryTable, error) {
	table, err := c.fetchTable(ctx, summaryTableQuery, map[string]interface{}{
		"code":      code,
		"startTime": startTime,
		"endTime":   endTime,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching summary table for %s", code)
	}

	var data struct {
		PlayerDetails SummaryTable `json:"playerDetails"`
	}
	if err := json.Unmarshal(table, &data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "decoding summary table").
			WithMeta("log_code", code)
	}
	return &data.PlayerDetails, nil
}

func (c *client) GetAbilityTotals(ctx context.Context, code string, playerID int, startTime, endTime int64, kind eso.MetricKind) ([]AbilityTotal, error) {
	table, err := c.fetchTable(ctx, abilityTableQuery, map[string]interface{}{
		"code":      code,
		"startTime": startTime,
		"endTime":   endTime,
		"dataType":  tableDataType(kind),
		"sourceID":  playerID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s table for player %d", kind, playerID)
	}

	var data struct {
		Entries []AbilityTotal `json:"entries"`
	}
	if err := json.Unmarshal(table, &data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "decoding ability table").
			WithMeta("log_code", code)
	}
	return data.Entries, nil
}

func (c *client) GetEffectUptimes(ctx context.Context, code string, startTime, endTime int64) (map[int]float64, error) {
	duration := endTime - startTime
	if duration <= 0 {
		return nil, errors.InvalidArgument("fight window must have positive duration")
	}

	uptimes := make(map[int]float64)

	// Friendly buffs and enemy debuffs live in separate tables.
	for _, q := range []struct {
		dataType  string
		hostility string
	}{
		{dataType: "Buffs", hostility: "Friendlies"},
		{dataType: "Debuffs", hostility: "Enemies"},
	} {
		table, err := c.fetchTable(ctx, auraTableQuery, map[string]interface{}{
			"code":      code,
			"startTime": startTime,
			"endTime":   endTime,
			"dataType":  q.dataType,
			"hostility": q.hostility,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "fetching %s table for %s", q.dataType, code)
		}

		var data struct {
			Auras []AuraUptime `json:"auras"`
		}
		if err := json.Unmarshal(table, &data); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "decoding aura table").
				WithMeta("log_code", code)
		}
		for _, aura := range data.Auras {
			pct := float64(aura.TotalUptime) / float64(duration) * 100
			if pct > 100 {
				pct = 100
			}
			if pct > uptimes[aura.GUID] {
				uptimes[aura.GUID] = pct
			}
		}
	}

	return uptimes, nil
}

func tableDataType(kind eso.MetricKind) string {
	switch kind {
	case eso.MetricCastCount:
		return "Casts"
	case eso.MetricHealingPercent:
		return "Healing"
	default:
		return "DamageDone"
	}
}

// fetchTable runs a query whose payload is a single untyped table blob
// and returns the blob's inner data object.
func (c *client) fetchTable(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	var envelope struct {
		ReportData struct {
			Report struct {
				Table json.RawMessage `json:"table"`
			} `json:"report"`
		} `json:"reportData"`
	}
	if err := c.execute(ctx, query, variables, &envelope); err != nil {
		return nil, err
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(envelope.ReportData.Report.Table, &wrapper); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "decoding table wrapper")
	}
	return wrapper.Data, nil
}

// execute posts one GraphQL request, retrying transient failures with
// exponential backoff.
func (c *client) execute(ctx context.Context, query string, variables map[string]interface{}, into interface{}) error {
	if err := c.limiter.wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "encoding graphql request")
	}

	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    15 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			slog.Debug("retrying esologs request",
				"attempt", attempt,
				"error", lastErr)
			select {
			case <-time.After(b.Duration()):
			case <-ctx.Done():
				return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "request canceled")
			}
		}

		var retryable bool
		retryable, lastErr = c.post(ctx, body, into)
		if lastErr == nil {
			return nil
		}
		if !retryable {
			return lastErr
		}
	}

	return errors.Wrapf(lastErr, "esologs request failed after %d attempts", maxAttempts)
}

// post performs one HTTP round trip. The bool result reports whether
// the failure is worth retrying.
func (c *client) post(ctx context.Context, body []byte, into interface{}) (bool, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return false, errors.WrapWithCode(err, errors.CodeInternal, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, errors.WrapWithCode(err, errors.CodeUnavailable, "esologs request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, errors.WrapWithCode(err, errors.CodeUnavailable, "reading esologs response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Token may have been revoked early; refetch on retry.
		c.invalidateToken()
		return true, errors.Unauthenticated("esologs rejected access token")
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, errors.Unavailablef("esologs returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return false, errors.Internalf("esologs returned status %d: %s", resp.StatusCode, truncate(respBody))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return false, errors.WrapWithCode(err, errors.CodeInternal, "decoding graphql envelope")
	}
	if len(envelope.Errors) > 0 {
		return false, errors.Internalf("graphql error: %s", envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, into); err != nil {
		return false, errors.WrapWithCode(err, errors.CodeInternal, "decoding graphql data")
	}
	return false, nil
}

func truncate(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

// accessToken returns a cached client-credentials token, fetching a
// fresh one when missing or near expiry.
func (c *client) accessToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInternal, "building token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "token request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Unauthenticatedf("token endpoint returned status %d", resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInternal, "decoding token response")
	}
	if token.AccessToken == "" {
		return "", errors.Unauthenticated("token endpoint returned empty token")
	}

	c.token = token.AccessToken
	// Refresh a minute early rather than racing expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

func (c *client) invalidateToken() {
	c.tokenMu.Lock()
	c.token = ""
	c.tokenMu.Unlock()
}

// rateLimiter caps requests inside a sliding one hour window.
type rateLimiter struct {
	mu     sync.Mutex
	max    int
	window []time.Time
}

func newRateLimiter(maxPerHour int) *rateLimiter {
	return &rateLimiter{max: maxPerHour}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	now := time.Now()
	cutoff := now.Add(-time.Hour)
	kept := r.window[:0]
	for _, t := range r.window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	r.window = kept

	var sleep time.Duration
	if len(r.window) >= r.max {
		sleep = r.window[0].Add(time.Hour).Sub(now) + time.Second
		slog.Warn("esologs rate limit reached, waiting", "sleep", sleep)
	}
	r.window = append(r.window, now.Add(sleep))
	r.mu.Unlock()

	if sleep > 0 {
		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "canceled while rate limited")
		}
	}
	return nil
}
