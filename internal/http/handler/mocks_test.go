package handler_test

import (
	"context"

	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

type mockMetaService struct {
	authURLFn    func(ctx context.Context, clientID string) (string, error)
	callbackFn   func(ctx context.Context, params service.CallbackParams) service.CallbackResult
	selectPageFn func(ctx context.Context, sel service.PageSelection) error
	insightsFn   func(ctx context.Context, clientID string) (*model.MetaInsights, error)
}

func (m *mockMetaService) AuthorizationURL(ctx context.Context, clientID string) (string, error) {
	if m.authURLFn != nil {
		return m.authURLFn(ctx, clientID)
	}
	return "", nil
}

func (m *mockMetaService) HandleCallback(ctx context.Context, params service.CallbackParams) service.CallbackResult {
	if m.callbackFn != nil {
		return m.callbackFn(ctx, params)
	}
	return service.CallbackResult{}
}

func (m *mockMetaService) SelectPage(ctx context.Context, sel service.PageSelection) error {
	if m.selectPageFn != nil {
		return m.selectPageFn(ctx, sel)
	}
	return nil
}

func (m *mockMetaService) Insights(ctx context.Context, clientID string) (*model.MetaInsights, error) {
	if m.insightsFn != nil {
		return m.insightsFn(ctx, clientID)
	}
	return &model.MetaInsights{}, nil
}

type mockTikTokService struct {
	authURLFn  func(ctx context.Context, clientID string) (string, error)
	callbackFn func(ctx context.Context, params service.CallbackParams) service.CallbackResult
	insightsFn func(ctx context.Context, clientID string) (*model.TikTokInsights, error)
}

func (m *mockTikTokService) AuthorizationURL(ctx context.Context, clientID string) (string, error) {
	if m.authURLFn != nil {
		return m.authURLFn(ctx, clientID)
	}
	return "", nil
}

func (m *mockTikTokService) HandleCallback(ctx context.Context, params service.CallbackParams) service.CallbackResult {
	if m.callbackFn != nil {
		return m.callbackFn(ctx, params)
	}
	return service.CallbackResult{}
}

func (m *mockTikTokService) Insights(ctx context.Context, clientID string) (*model.TikTokInsights, error) {
	if m.insightsFn != nil {
		return m.insightsFn(ctx, clientID)
	}
	return &model.TikTokInsights{}, nil
}

type mockIntegrationService struct {
	statusFn func(ctx context.Context, clientID string) (*model.IntegrationStatus, error)
}

func (m *mockIntegrationService) Status(ctx context.Context, clientID string) (*model.IntegrationStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx, clientID)
	}
	return &model.IntegrationStatus{ClientID: clientID}, nil
}
