// Package meta is a small Graph API client covering the Facebook Login dialog,
// page enumeration and the page/Instagram insights used by the portal.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lara783/lensandlaunch.com-sub001/internal/analytics"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
)

const (
	DefaultGraphBaseURL = "https://graph.facebook.com/v19.0"
	DefaultDialogURL    = "https://www.facebook.com/v19.0/dialog/oauth"
)

// Scopes requested on Connect.
var Scopes = []string{
	"pages_show_list",
	"pages_read_engagement",
	"instagram_basic",
	"instagram_manage_insights",
	"read_insights",
}

// PageMetrics are summed over a window for the Facebook summary.
var PageMetrics = []string{
	"page_impressions",
	"page_impressions_unique",
	"page_fan_adds",
	"page_post_engagements",
}

var (
	InstagramCurrentMetrics  = []string{"reach", "impressions", "profile_views"}
	InstagramPreviousMetrics = []string{"reach", "impressions"}
)

type Config struct {
	AppID        string
	AppSecret    string
	RedirectURI  string
	GraphBaseURL string
	DialogURL    string
	HTTPClient   *http.Client
}

type Client struct {
	appID       string
	appSecret   string
	redirectURI string
	graphURL    string
	dialogURL   string
	http        *http.Client
}

func NewClient(cfg Config) *Client {
	graphURL := cfg.GraphBaseURL
	if graphURL == "" {
		graphURL = DefaultGraphBaseURL
	}
	dialogURL := cfg.DialogURL
	if dialogURL == "" {
		dialogURL = DefaultDialogURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = provider.NewHTTPClient(provider.DefaultTimeout)
	}

	return &Client{
		appID:       cfg.AppID,
		appSecret:   cfg.AppSecret,
		redirectURI: cfg.RedirectURI,
		graphURL:    strings.TrimRight(graphURL, "/"),
		dialogURL:   dialogURL,
		http:        httpClient,
	}
}

// AuthorizationURL builds the Facebook Login dialog URL carrying state.
func (c *Client) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.appID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("scope", strings.Join(Scopes, ","))
	q.Set("response_type", "code")
	q.Set("state", state)

	return c.dialogURL + "?" + q.Encode()
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeCode trades an authorization code for a short-lived user token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (tok *Token, err error) {
	defer func() { provider.Observe(provider.Meta, "exchange_code", err) }()

	q := url.Values{}
	q.Set("client_id", c.appID)
	q.Set("client_secret", c.appSecret)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("code", code)

	var out Token
	if err := c.get(ctx, "exchange_code", "/oauth/access_token", q, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &GraphError{Message: "token exchange returned no access token"}
	}
	return &out, nil
}

// ExchangeLongLived swaps a short-lived user token for a ~60 day one.
func (c *Client) ExchangeLongLived(ctx context.Context, shortLived string) (tok *Token, err error) {
	defer func() { provider.Observe(provider.Meta, "exchange_long_lived", err) }()

	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", c.appID)
	q.Set("client_secret", c.appSecret)
	q.Set("fb_exchange_token", shortLived)

	var out Token
	if err := c.get(ctx, "exchange_long_lived", "/oauth/access_token", q, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &GraphError{Message: "long-lived token exchange returned no access token"}
	}
	return &out, nil
}

// Page is a Facebook Page the user manages, with its page-scoped token.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

// ListPages returns the pages managed by the owner of userToken.
func (c *Client) ListPages(ctx context.Context, userToken string) (pages []Page, err error) {
	defer func() { provider.Observe(provider.Meta, "list_pages", err) }()

	q := url.Values{}
	q.Set("fields", "id,name,access_token")
	q.Set("limit", "100")
	q.Set("access_token", userToken)

	var out struct {
		Data []Page `json:"data"`
	}
	if err := c.get(ctx, "list_pages", "/me/accounts", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// InstagramAccountID returns the Instagram Business Account linked to the page,
// or nil when the page has none.
func (c *Client) InstagramAccountID(ctx context.Context, pageID, pageToken string) (id *string, err error) {
	defer func() { provider.Observe(provider.Meta, "instagram_account_id", err) }()

	q := url.Values{}
	q.Set("fields", "instagram_business_account")
	q.Set("access_token", pageToken)

	var out struct {
		InstagramBusinessAccount *struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if err := c.get(ctx, "instagram_account_id", "/"+url.PathEscape(pageID), q, &out); err != nil {
		return nil, err
	}
	if out.InstagramBusinessAccount == nil || out.InstagramBusinessAccount.ID == "" {
		return nil, nil
	}
	return &out.InstagramBusinessAccount.ID, nil
}

// PageInsights fetches the daily PageMetrics series for the window.
func (c *Client) PageInsights(ctx context.Context, pageID, token string, w analytics.Window) (series []analytics.MetricSeries, err error) {
	defer func() { provider.Observe(provider.Meta, "page_insights", err) }()
	return c.insights(ctx, "page_insights", pageID, token, PageMetrics, w)
}

// PageFanCount returns the page's current total likes; nil when Graph omits it.
func (c *Client) PageFanCount(ctx context.Context, pageID, token string) (count *int64, err error) {
	defer func() { provider.Observe(provider.Meta, "page_fan_count", err) }()

	q := url.Values{}
	q.Set("fields", "fan_count")
	q.Set("access_token", token)

	var out struct {
		FanCount *int64 `json:"fan_count"`
	}
	if err := c.get(ctx, "page_fan_count", "/"+url.PathEscape(pageID), q, &out); err != nil {
		return nil, err
	}
	return out.FanCount, nil
}

type InstagramAccount struct {
	ID             string  `json:"id"`
	Username       *string `json:"username"`
	FollowersCount *int64  `json:"followers_count"`
	MediaCount     *int64  `json:"media_count"`
}

func (c *Client) InstagramAccount(ctx context.Context, igID, token string) (acct *InstagramAccount, err error) {
	defer func() { provider.Observe(provider.Meta, "instagram_account", err) }()

	q := url.Values{}
	q.Set("fields", "id,username,followers_count,media_count")
	q.Set("access_token", token)

	var out InstagramAccount
	if err := c.get(ctx, "instagram_account", "/"+url.PathEscape(igID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InstagramInsights fetches daily series for metrics over the window.
func (c *Client) InstagramInsights(ctx context.Context, igID, token string, metrics []string, w analytics.Window) (series []analytics.MetricSeries, err error) {
	defer func() { provider.Observe(provider.Meta, "instagram_insights", err) }()
	return c.insights(ctx, "instagram_insights", igID, token, metrics, w)
}

func (c *Client) insights(ctx context.Context, op, objectID, token string, metrics []string, w analytics.Window) ([]analytics.MetricSeries, error) {
	q := url.Values{}
	q.Set("metric", strings.Join(metrics, ","))
	q.Set("period", "day")
	q.Set("since", strconv.FormatInt(w.Since.Unix(), 10))
	q.Set("until", strconv.FormatInt(w.Until.Unix(), 10))
	q.Set("access_token", token)

	var out struct {
		Data []analytics.MetricSeries `json:"data"`
	}
	if err := c.get(ctx, op, "/"+url.PathEscape(objectID)+"/insights", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.graphURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := provider.Do(c.http, provider.Meta, op, req)
	if err != nil {
		return err
	}

	if gerr := parseGraphError(resp); gerr != nil {
		return gerr
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &provider.TransportError{Provider: provider.Meta, Operation: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
