package onesignal

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

	"github.com/dev-arham/ecommerce-server/pkg/config"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
)

const (
	defaultBaseURL             = "https://onesignal.com/api/v1"
	segmentAll                 = "All"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

var (
	errAppIDRequired  = errors.New("onesignal app id is required")
	errAPIKeyRequired = errors.New("onesignal rest api key is required")
)

// Client wraps the OneSignal REST API used for push campaigns.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured OneSignal base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the OneSignal client given the configured credentials.
func NewClient(cfg config.OneSignalConfig, opts ...Option) (*Client, error) {
	appID := strings.TrimSpace(cfg.AppID)
	if appID == "" {
		return nil, errAppIDRequired
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		appID:      appID,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	if cfg.BaseURL != "" {
		client.baseURL = strings.TrimSpace(cfg.BaseURL)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Campaign describes the push payload delivered to the All segment.
type Campaign struct {
	Title      string
	Message    string
	BigPicture string
}

// DeliveryStats holds the per-platform delivery counters OneSignal reports.
type DeliveryStats struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Errored    int `json:"errored"`
	Converted  int `json:"converted"`
}

// CreateNotification submits a campaign and returns the provider-side id.
func (c *Client) CreateNotification(ctx context.Context, campaign Campaign) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "onesignal client not configured")
	}
	if strings.TrimSpace(campaign.Title) == "" || strings.TrimSpace(campaign.Message) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "campaign title and message are required")
	}

	body := map[string]any{
		"app_id":            c.appID,
		"headings":          map[string]string{"en": campaign.Title},
		"contents":          map[string]string{"en": campaign.Message},
		"included_segments": []string{segmentAll},
	}
	if campaign.BigPicture != "" {
		body["big_picture"] = campaign.BigPicture
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal notification request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL("notifications"), bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build notification request")
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute notification request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "notification request failed")
	}

	var apiResp struct {
		ID     string   `json:"id"`
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode notification response")
	}
	if apiResp.ID == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("notification rejected: %s", strings.Join(apiResp.Errors, "; ")))
	}

	return apiResp.ID, nil
}

// ViewNotification fetches Android delivery statistics for a campaign.
func (c *Client) ViewNotification(ctx context.Context, campaignID string) (*DeliveryStats, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "onesignal client not configured")
	}
	trimmed := strings.TrimSpace(campaignID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign id is required")
	}

	endpoint := fmt.Sprintf("%s?app_id=%s", c.buildURL("notifications/"+url.PathEscape(trimmed)), url.QueryEscape(c.appID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build notification view request")
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute notification view request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "notification view request failed")
	}

	var apiResp struct {
		PlatformDeliveryStats struct {
			Android DeliveryStats `json:"android"`
		} `json:"platform_delivery_stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode notification view response")
	}

	stats := apiResp.PlatformDeliveryStats.Android
	return &stats, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), path)
}
