package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/handler"
	"github.com/lara783/lensandlaunch.com-sub001/internal/http/middleware"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
)

func TikTokRouter(rg *gin.RouterGroup, h *handler.TikTokHandler, auth *middleware.Authenticator) {
	rg.GET("/callback", h.Callback)

	rg.GET("/connect", auth.RequireRole(model.RoleAdmin), h.Connect)
	rg.GET("/insights/:clientId", auth.RequireRole(model.RoleAdmin, model.RoleTeam), h.Insights)
}
