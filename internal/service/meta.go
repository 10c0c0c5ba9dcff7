package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lara783/lensandlaunch.com-sub001/common/logger"
	"github.com/lara783/lensandlaunch.com-sub001/internal/analytics"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/oauthstate"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider/meta"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

// MetaAPI is the subset of the Graph API the Meta flows use.
type MetaAPI interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*meta.Token, error)
	ExchangeLongLived(ctx context.Context, shortLived string) (*meta.Token, error)
	ListPages(ctx context.Context, userToken string) ([]meta.Page, error)
	InstagramAccountID(ctx context.Context, pageID, pageToken string) (*string, error)
	PageInsights(ctx context.Context, pageID, token string, w analytics.Window) ([]analytics.MetricSeries, error)
	PageFanCount(ctx context.Context, pageID, token string) (*int64, error)
	InstagramAccount(ctx context.Context, igID, token string) (*meta.InstagramAccount, error)
	InstagramInsights(ctx context.Context, igID, token string, metrics []string, w analytics.Window) ([]analytics.MetricSeries, error)
}

type MetaService interface {
	AuthorizationURL(ctx context.Context, clientID string) (string, error)
	HandleCallback(ctx context.Context, params CallbackParams) CallbackResult
	SelectPage(ctx context.Context, sel PageSelection) error
	Insights(ctx context.Context, clientID string) (*model.MetaInsights, error)
}

// PageOption is one entry of the meta_pages blob handed to the page picker.
// IGAccountID is always serialized, as null when the page has no linked account.
type PageOption struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	AccessToken string  `json:"access_token"`
	IGAccountID *string `json:"ig_account_id"`
}

// PageSelection is the picker's choice, persisted by SelectPage.
type PageSelection struct {
	ClientID    string
	PageID      string
	PageName    string
	AccessToken string
	IGAccountID *string
}

// EncodePages renders pages as unpadded base64url JSON.
func EncodePages(pages []PageOption) (string, error) {
	raw, err := json.Marshal(pages)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodePages reverses EncodePages. Padded input is accepted too.
func DecodePages(s string) ([]PageOption, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		if raw, err = base64.URLEncoding.DecodeString(s); err != nil {
			return nil, fmt.Errorf("decoding pages: %w", err)
		}
	}
	var pages []PageOption
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("decoding pages: %w", err)
	}
	return pages, nil
}

const igLookupConcurrency = 4

type metaService struct {
	api          MetaAPI
	states       *oauthstate.Manager
	clients      store.ClientStore
	integrations store.ClientIntegrationStore
	oauthEnabled bool
	apiEnabled   bool
	nowFn        func() time.Time
}

func NewMetaService(
	api MetaAPI,
	states *oauthstate.Manager,
	clients store.ClientStore,
	integrations store.ClientIntegrationStore,
	enabled bool,
) MetaService {
	return &metaService{
		api:          api,
		states:       states,
		clients:      clients,
		integrations: integrations,
		oauthEnabled: enabled && api != nil && states != nil,
		apiEnabled:   enabled && api != nil,
		nowFn:        time.Now,
	}
}

func (s *metaService) withFields(ctx context.Context, clientID, operation string) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{
		ClientID:  logger.Ptr(clientID),
		Provider:  logger.Ptr(provider.Meta),
		Operation: logger.Ptr(operation),
		Component: "portal.service.meta",
	})
}

func (s *metaService) AuthorizationURL(ctx context.Context, clientID string) (string, error) {
	if !s.oauthEnabled {
		return "", ErrProviderNotConfigured
	}
	if err := requireClient(ctx, s.clients, clientID); err != nil {
		return "", err
	}

	state, err := s.states.Issue(clientID, provider.Meta)
	if err != nil {
		return "", err
	}
	return s.api.AuthorizationURL(state), nil
}

func (s *metaService) HandleCallback(ctx context.Context, params CallbackParams) CallbackResult {
	if !s.oauthEnabled {
		return CallbackResult{Err: ErrProviderNotConfigured}
	}

	clientID, done := beginCallback(ctx, s.states, provider.Meta, params)
	if done != nil {
		return *done
	}
	ctx = s.withFields(ctx, clientID, "callback")

	pages, err := s.exchangeAndListPages(ctx, params.Code)
	if err != nil {
		slog.ErrorContext(ctx, "meta callback failed", "error", err)
		return CallbackResult{ClientID: clientID, Err: err}
	}

	switch len(pages) {
	case 0:
		slog.WarnContext(ctx, "meta account manages no pages")
		return CallbackResult{ClientID: clientID, Err: ErrNoPages}
	case 1:
		p := pages[0]
		err := s.integrations.SaveMeta(ctx, clientID, model.MetaCredentials{
			PageAccessToken: p.AccessToken,
			PageID:          p.ID,
			PageName:        p.Name,
			IGAccountID:     p.IGAccountID,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to save meta integration", "error", err)
			return CallbackResult{ClientID: clientID, Err: fmt.Errorf("saving meta integration: %w", err)}
		}
		slog.InfoContext(ctx, "meta connected", "page_id", p.ID, "instagram_linked", p.IGAccountID != nil)
		return CallbackResult{ClientID: clientID, Connected: true}
	default:
		slog.InfoContext(ctx, "meta account manages several pages, deferring to picker", "pages", len(pages))
		return CallbackResult{ClientID: clientID, Pages: pages}
	}
}

// exchangeAndListPages runs the token exchanges and resolves each page's linked
// Instagram account. A failed Instagram lookup leaves that page unlinked.
func (s *metaService) exchangeAndListPages(ctx context.Context, code string) ([]PageOption, error) {
	short, err := s.api.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	long, err := s.api.ExchangeLongLived(ctx, short.AccessToken)
	if err != nil {
		return nil, err
	}
	pages, err := s.api.ListPages(ctx, long.AccessToken)
	if err != nil {
		return nil, err
	}

	options := make([]PageOption, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(igLookupConcurrency)
	for i, p := range pages {
		options[i] = PageOption{ID: p.ID, Name: p.Name, AccessToken: p.AccessToken}
		g.Go(func() error {
			igID, err := s.api.InstagramAccountID(gctx, p.ID, p.AccessToken)
			if err != nil {
				slog.WarnContext(gctx, "instagram account lookup failed, treating page as unlinked",
					"page_id", p.ID, "error", err)
				return nil
			}
			options[i].IGAccountID = igID
			return nil
		})
	}
	// Lookups never return an error; a failed one leaves the page unlinked.
	g.Wait()

	return options, nil
}

func (s *metaService) SelectPage(ctx context.Context, sel PageSelection) error {
	if sel.PageID == "" || sel.AccessToken == "" {
		return ErrInvalidSelection
	}
	if err := requireClient(ctx, s.clients, sel.ClientID); err != nil {
		return err
	}
	ctx = s.withFields(ctx, sel.ClientID, "select_page")

	if sel.IGAccountID != nil && *sel.IGAccountID == "" {
		sel.IGAccountID = nil
	}

	err := s.integrations.SaveMeta(ctx, sel.ClientID, model.MetaCredentials{
		PageAccessToken: sel.AccessToken,
		PageID:          sel.PageID,
		PageName:        sel.PageName,
		IGAccountID:     sel.IGAccountID,
	})
	if err != nil {
		return fmt.Errorf("saving meta integration: %w", err)
	}

	slog.InfoContext(ctx, "meta page selected", "page_id", sel.PageID, "instagram_linked", sel.IGAccountID != nil)
	return nil
}

func (s *metaService) Insights(ctx context.Context, clientID string) (*model.MetaInsights, error) {
	if !s.apiEnabled {
		return nil, ErrProviderNotConfigured
	}

	rec, err := loadIntegration(ctx, s.clients, s.integrations, clientID)
	if err != nil {
		return nil, err
	}
	if !rec.MetaConnected() {
		return nil, fmt.Errorf("meta: %w", ErrNotConfigured)
	}
	ctx = s.withFields(ctx, clientID, "insights")

	token := *rec.PageAccessToken
	now := s.nowFn()
	current, previous := analytics.Windows(now)

	var (
		out model.MetaInsights
		wg  sync.WaitGroup
	)
	if rec.FBPageID != nil && *rec.FBPageID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Facebook = s.facebookInsights(ctx, *rec.FBPageID, token, current, previous)
		}()
	}
	if rec.IGAccountID != nil && *rec.IGAccountID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Instagram = s.instagramInsights(ctx, *rec.IGAccountID, token, current, previous)
		}()
	}
	wg.Wait()

	fbOK := out.Facebook != nil && out.Facebook.Err == nil
	igOK := out.Instagram != nil && out.Instagram.Err == nil
	if fbOK || igOK {
		if err := s.integrations.TouchMetaSynced(ctx, clientID, now); err != nil {
			warnPersist(ctx, "failed to stamp meta sync time", err)
		}
	}

	return &out, nil
}

func (s *metaService) facebookInsights(ctx context.Context, pageID, token string, current, previous analytics.Window) *model.PlatformResult[model.FacebookInsights] {
	sc := logger.StartSpan(ctx, "meta.facebook_insights")
	defer sc.End()

	var (
		cur, prev []analytics.MetricSeries
		fans      *int64
	)
	g, gctx := errgroup.WithContext(sc.Context())
	g.Go(func() (err error) {
		cur, err = s.api.PageInsights(gctx, pageID, token, current)
		return err
	})
	g.Go(func() (err error) {
		prev, err = s.api.PageInsights(gctx, pageID, token, previous)
		return err
	})
	g.Go(func() (err error) {
		fans, err = s.api.PageFanCount(gctx, pageID, token)
		return err
	})
	if err := g.Wait(); err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "facebook insights failed", "error", err)
		return &model.PlatformResult[model.FacebookInsights]{Err: err}
	}

	return &model.PlatformResult[model.FacebookInsights]{Data: &model.FacebookInsights{
		Reach:            analytics.SumMetricInt("page_impressions_unique", cur),
		Impressions:      analytics.SumMetricInt("page_impressions", cur),
		NewFollowers:     analytics.SumMetricInt("page_fan_adds", cur),
		Engagements:      analytics.SumMetricInt("page_post_engagements", cur),
		TotalFollowers:   fans,
		PrevReach:        analytics.SumMetricInt("page_impressions_unique", prev),
		PrevImpressions:  analytics.SumMetricInt("page_impressions", prev),
		PrevNewFollowers: analytics.SumMetricInt("page_fan_adds", prev),
	}}
}

func (s *metaService) instagramInsights(ctx context.Context, igID, token string, current, previous analytics.Window) *model.PlatformResult[model.InstagramInsights] {
	sc := logger.StartSpan(ctx, "meta.instagram_insights")
	defer sc.End()

	var (
		acct      *meta.InstagramAccount
		cur, prev []analytics.MetricSeries
	)
	g, gctx := errgroup.WithContext(sc.Context())
	g.Go(func() (err error) {
		acct, err = s.api.InstagramAccount(gctx, igID, token)
		return err
	})
	g.Go(func() (err error) {
		cur, err = s.api.InstagramInsights(gctx, igID, token, meta.InstagramCurrentMetrics, current)
		return err
	})
	g.Go(func() (err error) {
		prev, err = s.api.InstagramInsights(gctx, igID, token, meta.InstagramPreviousMetrics, previous)
		return err
	})
	if err := g.Wait(); err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "instagram insights failed", "error", err)
		return &model.PlatformResult[model.InstagramInsights]{Err: err}
	}

	return &model.PlatformResult[model.InstagramInsights]{Data: &model.InstagramInsights{
		Username:        acct.Username,
		Reach:           analytics.SumMetricInt("reach", cur),
		Impressions:     analytics.SumMetricInt("impressions", cur),
		ProfileViews:    analytics.SumMetricInt("profile_views", cur),
		TotalFollowers:  acct.FollowersCount,
		MediaCount:      acct.MediaCount,
		PrevReach:       analytics.SumMetricInt("reach", prev),
		PrevImpressions: analytics.SumMetricInt("impressions", prev),
	}}
}
