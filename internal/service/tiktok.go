package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lara783/lensandlaunch.com-sub001/common/logger"
	"github.com/lara783/lensandlaunch.com-sub001/internal/analytics"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/oauthstate"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider/tiktok"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

// TikTokAPI is the subset of the TikTok Open API the TikTok flows use.
type TikTokAPI interface {
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*tiktok.Token, error)
	RefreshToken(ctx context.Context, refreshToken string) (*tiktok.Token, error)
	UserInfo(ctx context.Context, accessToken string) (*tiktok.User, error)
	ListVideos(ctx context.Context, accessToken string, maxCount int) ([]tiktok.Video, error)
}

type TikTokService interface {
	AuthorizationURL(ctx context.Context, clientID string) (string, error)
	HandleCallback(ctx context.Context, params CallbackParams) CallbackResult
	Insights(ctx context.Context, clientID string) (*model.TikTokInsights, error)
}

type tiktokService struct {
	api          TikTokAPI
	states       *oauthstate.Manager
	clients      store.ClientStore
	integrations store.ClientIntegrationStore
	oauthEnabled bool
	apiEnabled   bool
	nowFn        func() time.Time
}

func NewTikTokService(
	api TikTokAPI,
	states *oauthstate.Manager,
	clients store.ClientStore,
	integrations store.ClientIntegrationStore,
	enabled bool,
) TikTokService {
	return &tiktokService{
		api:          api,
		states:       states,
		clients:      clients,
		integrations: integrations,
		oauthEnabled: enabled && api != nil && states != nil,
		apiEnabled:   enabled && api != nil,
		nowFn:        time.Now,
	}
}

func (s *tiktokService) withFields(ctx context.Context, clientID, operation string) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{
		ClientID:  logger.Ptr(clientID),
		Provider:  logger.Ptr(provider.TikTok),
		Operation: logger.Ptr(operation),
		Component: "portal.service.tiktok",
	})
}

func (s *tiktokService) AuthorizationURL(ctx context.Context, clientID string) (string, error) {
	if !s.oauthEnabled {
		return "", ErrProviderNotConfigured
	}
	if err := requireClient(ctx, s.clients, clientID); err != nil {
		return "", err
	}

	state, err := s.states.Issue(clientID, provider.TikTok)
	if err != nil {
		return "", err
	}
	return s.api.AuthorizationURL(state), nil
}

func (s *tiktokService) HandleCallback(ctx context.Context, params CallbackParams) CallbackResult {
	if !s.oauthEnabled {
		return CallbackResult{Err: ErrProviderNotConfigured}
	}

	clientID, done := beginCallback(ctx, s.states, provider.TikTok, params)
	if done != nil {
		return *done
	}
	ctx = s.withFields(ctx, clientID, "callback")

	tok, err := s.api.ExchangeCode(ctx, params.Code)
	if err != nil {
		slog.ErrorContext(ctx, "tiktok token exchange failed", "error", err)
		return CallbackResult{ClientID: clientID, Err: err}
	}

	err = s.integrations.SaveTikTok(ctx, clientID, model.TikTokCredentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		OpenID:       tok.OpenID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to save tiktok integration", "error", err)
		return CallbackResult{ClientID: clientID, Err: fmt.Errorf("saving tiktok integration: %w", err)}
	}

	slog.InfoContext(ctx, "tiktok connected", "open_id", tok.OpenID)
	return CallbackResult{ClientID: clientID, Connected: true}
}

func (s *tiktokService) Insights(ctx context.Context, clientID string) (*model.TikTokInsights, error) {
	if !s.apiEnabled {
		return nil, ErrProviderNotConfigured
	}

	rec, err := loadIntegration(ctx, s.clients, s.integrations, clientID)
	if err != nil {
		return nil, err
	}
	if !rec.TikTokConnected() {
		return nil, fmt.Errorf("tiktok: %w", ErrNotConfigured)
	}
	ctx = s.withFields(ctx, clientID, "insights")

	accessToken := s.freshAccessToken(ctx, rec)

	sc := logger.StartSpan(ctx, "tiktok.insights")
	defer sc.End()

	var (
		user   *tiktok.User
		videos []tiktok.Video
	)
	g, gctx := errgroup.WithContext(sc.Context())
	g.Go(func() (err error) {
		user, err = s.api.UserInfo(gctx, accessToken)
		return err
	})
	g.Go(func() (err error) {
		videos, err = s.api.ListVideos(gctx, accessToken, tiktok.MaxVideos)
		return err
	})
	if err := g.Wait(); err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "tiktok insights failed", "error", err)
		return nil, err
	}

	now := s.nowFn()
	summary := analytics.SummarizeVideos(toAnalyticsVideos(videos), now)

	out := &model.TikTokInsights{
		DisplayName:    user.DisplayName,
		TotalFollowers: user.FollowerCount,
		FollowingCount: user.FollowingCount,
		LikesCount:     user.LikesCount,
		VideoCount:     user.VideoCount,
		EngagementRate: summary.EngagementRate,
		Reach:          summary.Reach,
		Impressions:    summary.Impressions,
		TotalLikes:     summary.Likes,
		TotalComments:  summary.Comments,
		TotalShares:    summary.Shares,
		VideosAnalyzed: summary.Count,
	}
	if summary.TopVideo != nil && summary.TopVideo.ShareURL != "" {
		out.TopPostURL = logger.Ptr(summary.TopVideo.ShareURL)
	}

	if err := s.integrations.TouchTikTokSynced(ctx, clientID, now); err != nil {
		warnPersist(ctx, "failed to stamp tiktok sync time", err)
	}

	return out, nil
}

// freshAccessToken refreshes before every fetch when a refresh token is stored.
// A refreshed pair is persisted right away; a failed refresh falls back to the
// stored access token.
func (s *tiktokService) freshAccessToken(ctx context.Context, rec *model.ClientIntegration) string {
	accessToken := *rec.TikTokAccessToken
	if rec.TikTokRefreshToken == nil || *rec.TikTokRefreshToken == "" {
		return accessToken
	}

	tok, err := s.api.RefreshToken(ctx, *rec.TikTokRefreshToken)
	if err != nil {
		slog.InfoContext(ctx, "tiktok token refresh failed, using stored token", "error", err)
		return accessToken
	}

	refreshToken := tok.RefreshToken
	if refreshToken == "" {
		refreshToken = *rec.TikTokRefreshToken
	}
	if err := s.integrations.UpdateTikTokTokens(ctx, rec.ClientID, tok.AccessToken, refreshToken); err != nil {
		warnPersist(ctx, "failed to persist refreshed tiktok tokens", err)
	}

	return tok.AccessToken
}

func toAnalyticsVideos(videos []tiktok.Video) []analytics.Video {
	out := make([]analytics.Video, 0, len(videos))
	for _, v := range videos {
		out = append(out, analytics.Video{
			ID:           v.ID,
			ShareURL:     v.ShareURL,
			CreateTime:   v.CreateTime,
			PlayCount:    v.PlayCount,
			ViewCount:    v.ViewCount,
			LikeCount:    v.LikeCount,
			CommentCount: v.CommentCount,
			ShareCount:   v.ShareCount,
		})
	}
	return out
}
