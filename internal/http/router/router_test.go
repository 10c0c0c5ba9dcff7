package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lara783/lensandlaunch.com-sub001/core/config"
	"github.com/lara783/lensandlaunch.com-sub001/internal/http/middleware"
	"github.com/lara783/lensandlaunch.com-sub001/internal/http/router"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

const sessionSecret = "router-secret"

type staticProfiles map[string]model.Role

func (p staticProfiles) GetRole(_ context.Context, userID string) (model.Role, error) {
	if role, ok := p[userID]; ok {
		return role, nil
	}
	return "", store.ErrNotFound
}

func session(sub string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(sessionSecret))
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("SetupRoutes", func() {
	var engine *gin.Engine

	// No provider credentials are configured, so any request that passes
	// authentication stops at ErrProviderNotConfigured before touching a store.
	BeforeEach(func() {
		cfg := config.Config{AppBaseURL: "https://portal.example.com", HTTPTimeout: time.Second}
		services := service.NewServices(store.NewStores(nil), nil, cfg)

		auth, err := middleware.NewAuthenticator(context.Background(), config.AuthConfig{JWTSecret: sessionSecret}, staticProfiles{
			"admin-1": model.RoleAdmin,
			"team-1":  model.RoleTeam,
		})
		Expect(err).NotTo(HaveOccurred())

		engine = gin.New()
		router.SetupRoutes(engine, services, auth, router.RouterConfig{AppBaseURL: cfg.AppBaseURL})
	})

	request := func(method, path, user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if user != "" {
			req.Header.Set("Authorization", "Bearer "+session(user))
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("serves health and metrics without authentication", func() {
		Expect(request(http.MethodGet, "/health", "").Code).To(Equal(http.StatusOK))

		w := request(http.MethodGet, "/metrics", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("go_goroutines"))
	})

	DescribeTable("enforces roles",
		func(method, path, user string, status int) {
			Expect(request(method, path, user).Code).To(Equal(status))
		},
		Entry("connect needs a session", http.MethodGet, "/api/v1/meta/connect?clientId=x", "", http.StatusUnauthorized),
		Entry("connect is admin only", http.MethodGet, "/api/v1/tiktok/connect?clientId=x", "team-1", http.StatusForbidden),
		Entry("page selection is admin only", http.MethodPost, "/api/v1/meta/pages/select", "team-1", http.StatusForbidden),
		Entry("insights need a session", http.MethodGet, "/api/v1/meta/insights/x", "", http.StatusUnauthorized),
		Entry("team may read insights", http.MethodGet, "/api/v1/tiktok/insights/x", "team-1", http.StatusInternalServerError),
		Entry("admin reaches connect", http.MethodGet, "/api/v1/meta/connect?clientId=x", "admin-1", http.StatusInternalServerError),
		Entry("status needs a session", http.MethodGet, "/api/v1/integrations/x/status", "", http.StatusUnauthorized),
	)

	It("leaves callbacks unauthenticated", func() {
		w := request(http.MethodGet, "/api/v1/meta/callback?code=c&state=s", "")

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("not configured"))
	})
})
