package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

type IntegrationHandler struct {
	integrationService service.IntegrationService
}

func NewIntegrationHandler(integrationService service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService}
}

func (h *IntegrationHandler) Status(c *gin.Context) {
	status, err := h.integrationService.Status(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		writeServiceError(c, err, "failed to load integration status")
		return
	}
	c.JSON(http.StatusOK, status)
}
