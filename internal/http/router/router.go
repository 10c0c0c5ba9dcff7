package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/handler"
	"github.com/lara783/lensandlaunch.com-sub001/internal/http/middleware"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

type RouterConfig struct {
	AppBaseURL string
}

func SetupRoutes(router *gin.Engine, services *service.Services, auth *middleware.Authenticator, cfg RouterConfig) {
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		metaHandler := handler.NewMetaHandler(services.Meta(), cfg.AppBaseURL)
		MetaRouter(v1.Group("/meta"), metaHandler, auth)

		tiktokHandler := handler.NewTikTokHandler(services.TikTok(), cfg.AppBaseURL)
		TikTokRouter(v1.Group("/tiktok"), tiktokHandler, auth)

		integrationHandler := handler.NewIntegrationHandler(services.Integrations())
		IntegrationRouter(v1.Group("/integrations"), integrationHandler, auth)
	}
}
