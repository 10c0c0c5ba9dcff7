package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/handler"
	"github.com/lara783/lensandlaunch.com-sub001/internal/http/middleware"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
)

func IntegrationRouter(rg *gin.RouterGroup, h *handler.IntegrationHandler, auth *middleware.Authenticator) {
	rg.GET("/:clientId/status", auth.RequireRole(model.RoleAdmin, model.RoleTeam), h.Status)
}
