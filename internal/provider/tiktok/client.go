// Package tiktok is a client for the parts of the TikTok Open API v2 the portal
// uses: Login Kit token exchange and refresh, user stats and the video list.
package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
)

const (
	DefaultAuthorizeURL = "https://www.tiktok.com/v2/auth/authorize/"
	DefaultAPIBaseURL   = "https://open.tiktokapis.com/v2"

	// MaxVideos is the largest page the video list endpoint accepts.
	MaxVideos = 20
)

var Scopes = []string{"user.info.basic", "user.info.stats", "video.list"}

var (
	userFields  = []string{"open_id", "display_name", "follower_count", "following_count", "likes_count", "video_count"}
	videoFields = []string{"id", "create_time", "share_url", "play_count", "view_count", "like_count", "comment_count", "share_count"}
)

type Config struct {
	ClientKey    string
	ClientSecret string
	RedirectURI  string
	AuthorizeURL string
	APIBaseURL   string
	HTTPClient   *http.Client
}

type Client struct {
	clientKey    string
	clientSecret string
	redirectURI  string
	authorizeURL string
	apiURL       string
	http         *http.Client
}

func NewClient(cfg Config) *Client {
	authorizeURL := cfg.AuthorizeURL
	if authorizeURL == "" {
		authorizeURL = DefaultAuthorizeURL
	}
	apiURL := cfg.APIBaseURL
	if apiURL == "" {
		apiURL = DefaultAPIBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = provider.NewHTTPClient(provider.DefaultTimeout)
	}

	return &Client{
		clientKey:    cfg.ClientKey,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		authorizeURL: authorizeURL,
		apiURL:       strings.TrimRight(apiURL, "/"),
		http:         httpClient,
	}
}

func (c *Client) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_key", c.clientKey)
	q.Set("scope", strings.Join(Scopes, ","))
	q.Set("response_type", "code")
	q.Set("redirect_uri", c.redirectURI)
	q.Set("state", state)

	return c.authorizeURL + "?" + q.Encode()
}

// Token is the access/refresh pair issued by the token endpoint.
type Token struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	OpenID           string `json:"open_id"`
	Scope            string `json:"scope"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
}

// ExchangeCode redeems an authorization code.
func (c *Client) ExchangeCode(ctx context.Context, code string) (tok *Token, err error) {
	defer func() { provider.Observe(provider.TikTok, "exchange_code", err) }()

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)
	return c.token(ctx, "exchange_code", form)
}

// RefreshToken trades a refresh token for a new pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (tok *Token, err error) {
	defer func() { provider.Observe(provider.TikTok, "refresh_token", err) }()

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.token(ctx, "refresh_token", form)
}

// token posts to the OAuth endpoint. Success is read from the body, not the
// HTTP status: the error field must be absent or "ok" and an access token present.
func (c *Client) token(ctx context.Context, op string, form url.Values) (*Token, error) {
	form.Set("client_key", c.clientKey)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/oauth/token/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := provider.Do(c.http, provider.TikTok, op, req)
	if err != nil {
		return nil, err
	}

	var body struct {
		Token
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		LogID            string `json:"log_id"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, &TokenError{StatusCode: resp.StatusCode}
	}

	if (body.Error != "" && body.Error != "ok") || body.AccessToken == "" {
		return nil, &TokenError{
			Code:        body.Error,
			Description: body.ErrorDescription,
			LogID:       body.LogID,
			StatusCode:  resp.StatusCode,
		}
	}
	return &body.Token, nil
}

type User struct {
	OpenID         string  `json:"open_id"`
	DisplayName    *string `json:"display_name"`
	FollowerCount  *int64  `json:"follower_count"`
	FollowingCount *int64  `json:"following_count"`
	LikesCount     *int64  `json:"likes_count"`
	VideoCount     *int64  `json:"video_count"`
}

// UserInfo returns the profile and stats of the token's owner. An error.code
// other than "ok" comes back as *APIError.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (user *User, err error) {
	defer func() { provider.Observe(provider.TikTok, "user_info", err) }()

	q := url.Values{}
	q.Set("fields", strings.Join(userFields, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/user/info/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building user_info request: %w", err)
	}

	var out struct {
		Data struct {
			User User `json:"user"`
		} `json:"data"`
	}
	if err := c.api(req, "user_info", accessToken, &out); err != nil {
		return nil, err
	}
	return &out.Data.User, nil
}

type Video struct {
	ID           string `json:"id"`
	CreateTime   int64  `json:"create_time"`
	ShareURL     string `json:"share_url"`
	PlayCount    *int64 `json:"play_count"`
	ViewCount    *int64 `json:"view_count"`
	LikeCount    *int64 `json:"like_count"`
	CommentCount *int64 `json:"comment_count"`
	ShareCount   *int64 `json:"share_count"`
}

// ListVideos returns up to maxCount of the user's most recent videos.
func (c *Client) ListVideos(ctx context.Context, accessToken string, maxCount int) (videos []Video, err error) {
	defer func() { provider.Observe(provider.TikTok, "list_videos", err) }()

	if maxCount <= 0 || maxCount > MaxVideos {
		maxCount = MaxVideos
	}

	q := url.Values{}
	q.Set("fields", strings.Join(videoFields, ","))
	payload, err := json.Marshal(map[string]int{"max_count": maxCount})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/video/list/?"+q.Encode(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building list_videos request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Data struct {
			Videos  []Video `json:"videos"`
			Cursor  int64   `json:"cursor"`
			HasMore bool    `json:"has_more"`
		} `json:"data"`
	}
	if err := c.api(req, "list_videos", accessToken, &out); err != nil {
		return nil, err
	}
	return out.Data.Videos, nil
}

func (c *Client) api(req *http.Request, op, accessToken string, out any) error {
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := provider.Do(c.http, provider.TikTok, op, req)
	if err != nil {
		return err
	}

	if apiErr := parseAPIError(resp); apiErr != nil {
		return apiErr
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &provider.TransportError{Provider: provider.TikTok, Operation: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
