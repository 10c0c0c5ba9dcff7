package store

import (
	"context"
	"errors"
	"time"

	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ClientIntegrationStore is the credential store for Meta and TikTok tokens.
type ClientIntegrationStore interface {
	Get(ctx context.Context, clientID string) (*model.ClientIntegration, error)
	// SaveMeta overwrites the Meta fields of the client's record, creating it if needed.
	SaveMeta(ctx context.Context, clientID string, creds model.MetaCredentials) error
	// SaveTikTok overwrites the TikTok fields and clears tiktok_token_synced_at.
	SaveTikTok(ctx context.Context, clientID string, creds model.TikTokCredentials) error
	UpdateTikTokTokens(ctx context.Context, clientID, accessToken, refreshToken string) error
	TouchMetaSynced(ctx context.Context, clientID string, at time.Time) error
	TouchTikTokSynced(ctx context.Context, clientID string, at time.Time) error
}

// ClientStore reads the portal's clients table.
type ClientStore interface {
	Exists(ctx context.Context, clientID string) (bool, error)
}

// ProfileStore reads roles from the portal's profiles table.
type ProfileStore interface {
	GetRole(ctx context.Context, userID string) (model.Role, error)
}
