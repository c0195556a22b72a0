package fireplan

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
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/version"
)

const (
	// defaultBaseURL is the production endpoint of the Fireplan REST API.
	defaultBaseURL = "https://data.fireplan.de/api"

	// tokenTTL is how long a registered session token stays usable.
	// The API invalidates tokens after half an hour.
	tokenTTL = 30 * time.Minute

	// defaultSubmitTimeout bounds one API call when no HTTP client is provided.
	defaultSubmitTimeout = 30 * time.Second
)

// errEmptyToken is returned when the registration endpoint answers without a token.
var errEmptyToken = errors.New("registration returned an empty token")

// Notifier records successfully delivered records.
type Notifier interface {
	Submitted(ctx context.Context, entry string) error
}

// Hook runs after each successfully delivered record.
type Hook func(ctx context.Context)

// Client submits assembled alarm records to the Fireplan REST API.
// It is safe for concurrent use.
type Client struct {
	// httpClient performs the API calls.
	httpClient *http.Client
	// baseURL is the API endpoint without a trailing slash.
	baseURL string
	// apiKey authenticates the token registration.
	apiKey string
	// notifier receives one audit entry per delivered record. Optional.
	notifier Notifier
	// hook is started once per delivered record. Optional.
	hook Hook
	// tokens caches session tokens per location name.
	tokens *ttlcache.Cache[string, string]
}

// Option configures client behaviour.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client,
// mostly to adjust timeouts or to point tests at a local server.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithNotifier installs the audit recorder called per delivered record.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithHook installs the follow-up hook started per delivered record.
func WithHook(h Hook) Option {
	return func(c *Client) {
		c.hook = h
	}
}

// NewClient creates a Fireplan API client. Session tokens obtained from the
// API are cached per location and dropped after tokenTTL or on a 401
// response. Call Close to release the cache janitor.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultSubmitTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		// The token lifetime starts at registration,
		// so cache hits must not extend it.
		tokens: ttlcache.New(
			ttlcache.WithTTL[string, string](tokenTTL),
			ttlcache.WithDisableTouchOnHit[string, string](),
		),
	}

	for _, opt := range opts {
		opt(c)
	}

	go c.tokens.Start()

	return c
}

// Close stops the token cache janitor.
func (c *Client) Close() {
	c.tokens.Stop()
}

// Result sums up one submission cycle.
type Result struct {
	// Submitted counts records accepted by the API.
	Submitted int
	// Failed counts records rejected or lost in transport.
	Failed int
}

// Submit posts one record per resolved pager identifier. A failed record is
// logged and counted while the remaining records are still submitted. The
// returned error is non-nil only when no session token could be obtained,
// in which case nothing was submitted.
func (c *Client) Submit(ctx context.Context, standort string, alarms []alarm.OutboundAlarm) (Result, error) {
	var res Result

	if len(alarms) == 0 {
		return res, nil
	}

	token, err := c.token(ctx, standort)
	if err != nil {
		return res, fmt.Errorf("acquire session token: %w", err)
	}

	for _, out := range alarms {
		if err := c.post(ctx, standort, token, out); err != nil {
			logger.ErrorKV(ctx, "record not delivered", "ric", out.Ric, "error", err)

			res.Failed++

			continue
		}

		res.Submitted++

		c.recordDelivery(ctx, out)
	}

	return res, nil
}

// registerResponse is the body returned by the token registration endpoint.
type registerResponse struct {
	UToken string `json:"utoken"`
}

// token returns a valid session token for the location,
// registering a new one when the cache holds none.
func (c *Client) token(ctx context.Context, standort string) (string, error) {
	if item := c.tokens.Get(standort); item != nil {
		return item.Value(), nil
	}

	endpoint := c.baseURL + "/Register/" + url.PathEscape(standort)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build register request: %w", err)
	}

	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("register at fireplan: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read register response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("register returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var reg registerResponse
	if err = json.Unmarshal(body, &reg); err != nil {
		return "", fmt.Errorf("decode register response: %w", err)
	}

	if reg.UToken == "" {
		return "", errEmptyToken
	}

	c.tokens.Set(standort, reg.UToken, ttlcache.DefaultTTL)

	logger.InfoKV(ctx, "registered fireplan session token", "standort", standort)

	return reg.UToken, nil
}

// post submits a single record. On 401 the cached token for the location is
// dropped so the next cycle registers a fresh one.
func (c *Client) post(ctx context.Context, standort, token string, out alarm.OutboundAlarm) error {
	payload, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Alarmierung", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("API-Token", token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Delete(standort)
		}

		return fmt.Errorf("api returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	logger.InfoKV(ctx, "record delivered",
		"ric", out.Ric,
		"response", strings.TrimSpace(string(body)))

	return nil
}

// recordDelivery writes the audit line and starts the follow-up hook.
// Neither failure affects the submission result.
func (c *Client) recordDelivery(ctx context.Context, out alarm.OutboundAlarm) {
	if c.notifier != nil {
		entry := fmt.Sprintf("%s - %s", out.Einsatznrlst, out.Einsatzstichwort)
		if err := c.notifier.Submitted(ctx, entry); err != nil {
			logger.ErrorKV(ctx, "audit line not written", "error", err)
		}
	}

	if c.hook != nil {
		c.hook(ctx)
	}
}
