package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/handler"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider/tiktok"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

var _ = Describe("TikTokHandler", func() {
	var (
		svc    *mockTikTokService
		router *gin.Engine
	)

	BeforeEach(func() {
		svc = &mockTikTokService{}
		h := handler.NewTikTokHandler(svc, appBaseURL)

		router = gin.New()
		router.GET("/tiktok/connect", h.Connect)
		router.GET("/tiktok/callback", h.Callback)
		router.GET("/tiktok/insights/:clientId", h.Insights)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("redirects Connect to the authorize page", func() {
		svc.authURLFn = func(context.Context, string) (string, error) {
			return "https://www.tiktok.com/v2/auth/authorize/?state=abc", nil
		}

		w := get("/tiktok/connect?clientId=" + clientID)

		Expect(w.Code).To(Equal(http.StatusFound))
		Expect(w.Header().Get("Location")).To(HavePrefix("https://www.tiktok.com/v2/auth/authorize/"))
	})

	Describe("Callback", func() {
		It("flags a successful connection", func() {
			svc.callbackFn = func(context.Context, service.CallbackParams) service.CallbackResult {
				return service.CallbackResult{ClientID: clientID, Connected: true}
			}

			loc, q := redirectQuery(get("/tiktok/callback?code=c&state=s"))

			Expect(loc.Path).To(Equal("/admin/clients/" + clientID))
			Expect(q.Get("tiktok_connected")).To(Equal("1"))
		})

		It("forwards the token endpoint description", func() {
			svc.callbackFn = func(context.Context, service.CallbackParams) service.CallbackResult {
				return service.CallbackResult{
					ClientID: clientID,
					Err:      &tiktok.TokenError{Code: "invalid_grant", Description: "Authorization code is expired."},
				}
			}

			_, q := redirectQuery(get("/tiktok/callback?code=c&state=s"))

			Expect(q.Get("tiktok_error")).To(Equal("Authorization code is expired."))
			Expect(q.Has("tiktok_connected")).To(BeFalse())
		})

		It("forwards a user denial", func() {
			svc.callbackFn = func(_ context.Context, p service.CallbackParams) service.CallbackResult {
				return service.CallbackResult{ClientID: clientID, Err: &service.OAuthDeniedError{Code: p.Error, Description: p.ErrorDescription}}
			}

			_, q := redirectQuery(get("/tiktok/callback?error=access_denied&error_description=The+user+denied+the+request&state=s"))

			Expect(q.Get("tiktok_error")).To(Equal("The user denied the request"))
		})
	})

	Describe("Insights", func() {
		It("wraps the summary under the tiktok key", func() {
			rate := 4.25
			svc.insightsFn = func(context.Context, string) (*model.TikTokInsights, error) {
				return &model.TikTokInsights{
					DisplayName:    strPtr("lens"),
					TotalFollowers: int64Ptr(900),
					EngagementRate: &rate,
					Impressions:    4000,
					VideosAnalyzed: 3,
				}, nil
			}

			w := get("/tiktok/insights/" + clientID)

			Expect(w.Code).To(Equal(http.StatusOK))
			var body map[string]map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body["tiktok"]).To(HaveKeyWithValue("display_name", "lens"))
			Expect(body["tiktok"]).To(HaveKeyWithValue("engagement_rate", 4.25))
			Expect(body["tiktok"]).To(HaveKeyWithValue("videos_analyzed", BeNumerically("==", 3)))
			Expect(body["tiktok"]).To(HaveKeyWithValue("top_post_url", BeNil()))
		})

		DescribeTable("maps service errors",
			func(err error, status int) {
				svc.insightsFn = func(context.Context, string) (*model.TikTokInsights, error) { return nil, err }

				Expect(get("/tiktok/insights/" + clientID).Code).To(Equal(status))
			},
			Entry("not connected", fmt.Errorf("tiktok: %w", service.ErrNotConfigured), http.StatusBadRequest),
			Entry("provider api error", fmt.Errorf("user info: %w", &tiktok.APIError{Code: "access_token_invalid", Message: "The access token is invalid."}), http.StatusBadRequest),
			Entry("provider unreachable", &provider.TransportError{Provider: "tiktok", Operation: "user_info", Err: errors.New("eof")}, http.StatusBadGateway),
			Entry("unknown client", service.ErrClientNotFound, http.StatusNotFound),
			Entry("missing client key", service.ErrProviderNotConfigured, http.StatusInternalServerError),
		)

		It("reports the provider message for api errors", func() {
			svc.insightsFn = func(context.Context, string) (*model.TikTokInsights, error) {
				return nil, &tiktok.APIError{Code: "scope_not_authorized", Message: "The user did not authorize the scope."}
			}

			w := get("/tiktok/insights/" + clientID)

			Expect(w.Body.String()).To(MatchJSON(`{"error":"The user did not authorize the scope."}`))
		})
	})
})
