package model

import "time"

// ClientIntegration is the per-client credential record for both provider families.
// A provider is connected iff its access token is set. IGAccountID may be nil while
// Meta is connected: not every page has a linked Instagram Business Account.
type ClientIntegration struct {
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	PageAccessToken     *string    `json:"-"`
	FBPageID            *string    `json:"fb_page_id,omitempty"`
	FBPageName          *string    `json:"fb_page_name,omitempty"`
	IGAccountID         *string    `json:"ig_account_id,omitempty"`
	MetaTokenSyncedAt   *time.Time `json:"meta_token_synced_at,omitempty"`
	TikTokAccessToken   *string    `json:"-"`
	TikTokRefreshToken  *string    `json:"-"`
	TikTokOpenID        *string    `json:"tiktok_open_id,omitempty"`
	TikTokTokenSyncedAt *time.Time `json:"tiktok_token_synced_at,omitempty"`
	ClientID            string     `json:"client_id"`
}

func (c *ClientIntegration) MetaConnected() bool {
	return c != nil && c.PageAccessToken != nil && *c.PageAccessToken != ""
}

func (c *ClientIntegration) TikTokConnected() bool {
	return c != nil && c.TikTokAccessToken != nil && *c.TikTokAccessToken != ""
}

// MetaCredentials is what a completed Meta connection writes for a client.
type MetaCredentials struct {
	PageAccessToken string
	PageID          string
	PageName        string
	IGAccountID     *string
}

// TikTokCredentials is what a completed TikTok connection writes for a client.
type TikTokCredentials struct {
	AccessToken  string
	RefreshToken string
	OpenID       string
}
