package service

import (
	"context"

	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

// IntegrationService reports which providers a client has connected.
type IntegrationService interface {
	Status(ctx context.Context, clientID string) (*model.IntegrationStatus, error)
}

type integrationService struct {
	clients      store.ClientStore
	integrations store.ClientIntegrationStore
}

func NewIntegrationService(clients store.ClientStore, integrations store.ClientIntegrationStore) IntegrationService {
	return &integrationService{clients: clients, integrations: integrations}
}

func (s *integrationService) Status(ctx context.Context, clientID string) (*model.IntegrationStatus, error) {
	rec, err := loadIntegration(ctx, s.clients, s.integrations, clientID)
	if err != nil {
		return nil, err
	}

	status := &model.IntegrationStatus{ClientID: clientID}
	if rec == nil {
		return status, nil
	}

	if rec.MetaConnected() {
		status.Meta = model.MetaStatus{
			Connected:       true,
			PageID:          rec.FBPageID,
			PageName:        rec.FBPageName,
			InstagramLinked: rec.IGAccountID != nil && *rec.IGAccountID != "",
			SyncedAt:        rec.MetaTokenSyncedAt,
		}
	}
	if rec.TikTokConnected() {
		status.TikTok = model.TikTokStatus{
			Connected: true,
			OpenID:    rec.TikTokOpenID,
			SyncedAt:  rec.TikTokTokenSyncedAt,
		}
	}
	return status, nil
}
