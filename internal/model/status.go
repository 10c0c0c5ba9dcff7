package model

import "time"

// IntegrationStatus is the token-free view of a client's connections.
type IntegrationStatus struct {
	ClientID string       `json:"client_id"`
	Meta     MetaStatus   `json:"meta"`
	TikTok   TikTokStatus `json:"tiktok"`
}

type MetaStatus struct {
	Connected       bool       `json:"connected"`
	PageID          *string    `json:"page_id"`
	PageName        *string    `json:"page_name"`
	InstagramLinked bool       `json:"instagram_linked"`
	SyncedAt        *time.Time `json:"synced_at"`
}

type TikTokStatus struct {
	Connected bool       `json:"connected"`
	OpenID    *string    `json:"open_id"`
	SyncedAt  *time.Time `json:"synced_at"`
}
