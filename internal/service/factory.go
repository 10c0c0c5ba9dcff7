package service

import (
	"net/http"

	"github.com/lara783/lensandlaunch.com-sub001/core/config"
	"github.com/lara783/lensandlaunch.com-sub001/internal/oauthstate"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider/meta"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider/tiktok"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

type Services struct {
	stores     *store.Stores
	states     *oauthstate.Manager
	cfg        config.Config
	httpClient *http.Client
}

// NewServices wires the services. states may be nil when OAUTH_STATE_SECRET is
// unset, in which case Connect and Callback report ErrProviderNotConfigured.
func NewServices(stores *store.Stores, states *oauthstate.Manager, cfg config.Config) *Services {
	return &Services{
		stores:     stores,
		states:     states,
		cfg:        cfg,
		httpClient: provider.NewHTTPClient(cfg.HTTPTimeout),
	}
}

func (s *Services) Meta() MetaService {
	client := meta.NewClient(meta.Config{
		AppID:        s.cfg.Meta.AppID,
		AppSecret:    s.cfg.Meta.AppSecret,
		RedirectURI:  s.cfg.MetaRedirectURI(),
		GraphBaseURL: s.cfg.Meta.GraphBaseURL,
		DialogURL:    s.cfg.Meta.DialogURL,
		HTTPClient:   s.httpClient,
	})
	return NewMetaService(
		client,
		s.states,
		s.stores.Clients(),
		s.stores.ClientIntegrations(),
		s.cfg.Meta.Enabled(),
	)
}

func (s *Services) TikTok() TikTokService {
	client := tiktok.NewClient(tiktok.Config{
		ClientKey:    s.cfg.TikTok.ClientKey,
		ClientSecret: s.cfg.TikTok.ClientSecret,
		RedirectURI:  s.cfg.TikTokRedirectURI(),
		AuthorizeURL: s.cfg.TikTok.AuthorizeURL,
		APIBaseURL:   s.cfg.TikTok.APIBaseURL,
		HTTPClient:   s.httpClient,
	})
	return NewTikTokService(
		client,
		s.states,
		s.stores.Clients(),
		s.stores.ClientIntegrations(),
		s.cfg.TikTok.Enabled(),
	)
}

func (s *Services) Integrations() IntegrationService {
	return NewIntegrationService(s.stores.Clients(), s.stores.ClientIntegrations())
}
