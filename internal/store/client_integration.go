package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lara783/lensandlaunch.com-sub001/core/db/sqlc"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
)

type clientIntegrationStore struct {
	queries *sqlc.Queries
}

func newClientIntegrationStore(queries *sqlc.Queries) ClientIntegrationStore {
	return &clientIntegrationStore{queries: queries}
}

func (s *clientIntegrationStore) Get(ctx context.Context, clientID string) (*model.ClientIntegration, error) {
	row, err := s.queries.GetClientIntegration(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toClientIntegrationModel(row), nil
}

func (s *clientIntegrationStore) SaveMeta(ctx context.Context, clientID string, creds model.MetaCredentials) error {
	_, err := s.queries.UpsertMetaIntegration(ctx, sqlc.UpsertMetaIntegrationParams{
		ClientID:        clientID,
		PageAccessToken: &creds.PageAccessToken,
		FbPageID:        &creds.PageID,
		FbPageName:      nonEmpty(creds.PageName),
		IgAccountID:     creds.IGAccountID,
	})
	return err
}

func (s *clientIntegrationStore) SaveTikTok(ctx context.Context, clientID string, creds model.TikTokCredentials) error {
	_, err := s.queries.UpsertTikTokIntegration(ctx, sqlc.UpsertTikTokIntegrationParams{
		ClientID:           clientID,
		TiktokAccessToken:  &creds.AccessToken,
		TiktokRefreshToken: nonEmpty(creds.RefreshToken),
		TiktokOpenID:       nonEmpty(creds.OpenID),
	})
	return err
}

func (s *clientIntegrationStore) UpdateTikTokTokens(ctx context.Context, clientID, accessToken, refreshToken string) error {
	n, err := s.queries.UpdateTikTokTokens(ctx, sqlc.UpdateTikTokTokensParams{
		ClientID:           clientID,
		TiktokAccessToken:  &accessToken,
		TiktokRefreshToken: nonEmpty(refreshToken),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *clientIntegrationStore) TouchMetaSynced(ctx context.Context, clientID string, at time.Time) error {
	return s.queries.TouchMetaSynced(ctx, sqlc.TouchMetaSyncedParams{
		ClientID:          clientID,
		MetaTokenSyncedAt: pgtype.Timestamptz{Time: at, Valid: true},
	})
}

func (s *clientIntegrationStore) TouchTikTokSynced(ctx context.Context, clientID string, at time.Time) error {
	return s.queries.TouchTikTokSynced(ctx, sqlc.TouchTikTokSyncedParams{
		ClientID:            clientID,
		TiktokTokenSyncedAt: pgtype.Timestamptz{Time: at, Valid: true},
	})
}

func toClientIntegrationModel(row sqlc.ClientIntegration) *model.ClientIntegration {
	return &model.ClientIntegration{
		ClientID:            row.ClientID,
		PageAccessToken:     row.PageAccessToken,
		FBPageID:            row.FbPageID,
		FBPageName:          row.FbPageName,
		IGAccountID:         row.IgAccountID,
		MetaTokenSyncedAt:   pgTimestamptzToTime(row.MetaTokenSyncedAt),
		TikTokAccessToken:   row.TiktokAccessToken,
		TikTokRefreshToken:  row.TiktokRefreshToken,
		TikTokOpenID:        row.TiktokOpenID,
		TikTokTokenSyncedAt: pgTimestamptzToTime(row.TiktokTokenSyncedAt),
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
}

func pgTimestamptzToTime(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

// nonEmpty maps "" to NULL so optional provider fields are never stored as empty strings.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
