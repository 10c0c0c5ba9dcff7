package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/handler"
	"github.com/lara783/lensandlaunch.com-sub001/internal/http/middleware"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
)

// MetaRouter leaves the callback unauthenticated: the signed state is its credential.
func MetaRouter(rg *gin.RouterGroup, h *handler.MetaHandler, auth *middleware.Authenticator) {
	rg.GET("/callback", h.Callback)

	rg.GET("/connect", auth.RequireRole(model.RoleAdmin), h.Connect)
	rg.POST("/pages/select", auth.RequireRole(model.RoleAdmin), h.SelectPage)
	rg.GET("/insights/:clientId", auth.RequireRole(model.RoleAdmin, model.RoleTeam), h.Insights)
}
