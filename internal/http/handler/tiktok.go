package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/dto"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

type TikTokHandler struct {
	tiktokService service.TikTokService
	appBaseURL    string
}

func NewTikTokHandler(tiktokService service.TikTokService, appBaseURL string) *TikTokHandler {
	return &TikTokHandler{tiktokService: tiktokService, appBaseURL: appBaseURL}
}

func (h *TikTokHandler) Connect(c *gin.Context) {
	authURL, err := h.tiktokService.AuthorizationURL(c.Request.Context(), c.Query("clientId"))
	if err != nil {
		writeServiceError(c, err, "failed to start tiktok authorization")
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

func (h *TikTokHandler) Callback(c *gin.Context) {
	res := h.tiktokService.HandleCallback(c.Request.Context(), service.CallbackParams{
		Code:             c.Query("code"),
		State:            c.Query("state"),
		Error:            c.Query("error"),
		ErrorDescription: c.Query("error_description"),
	})
	callbackRedirect(c, h.appBaseURL, "tiktok", res)
}

func (h *TikTokHandler) Insights(c *gin.Context) {
	insights, err := h.tiktokService.Insights(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		writeServiceError(c, err, "failed to load tiktok insights")
		return
	}
	c.JSON(http.StatusOK, dto.TikTokInsightsResponse{TikTok: insights})
}
