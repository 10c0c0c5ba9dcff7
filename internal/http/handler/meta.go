package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/dto"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

type MetaHandler struct {
	metaService service.MetaService
	appBaseURL  string
}

func NewMetaHandler(metaService service.MetaService, appBaseURL string) *MetaHandler {
	return &MetaHandler{metaService: metaService, appBaseURL: appBaseURL}
}

func (h *MetaHandler) Connect(c *gin.Context) {
	authURL, err := h.metaService.AuthorizationURL(c.Request.Context(), c.Query("clientId"))
	if err != nil {
		writeServiceError(c, err, "failed to start meta authorization")
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

func (h *MetaHandler) Callback(c *gin.Context) {
	res := h.metaService.HandleCallback(c.Request.Context(), service.CallbackParams{
		Code:             c.Query("code"),
		State:            c.Query("state"),
		Error:            c.Query("error"),
		ErrorDescription: c.Query("error_description"),
	})
	callbackRedirect(c, h.appBaseURL, "meta", res)
}

func (h *MetaHandler) SelectPage(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SelectPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid page selection body", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.metaService.SelectPage(ctx, req.ToSelection()); err != nil {
		writeServiceError(c, err, "failed to save page selection")
		return
	}

	c.JSON(http.StatusOK, dto.SelectPageResponse{Connected: true})
}

func (h *MetaHandler) Insights(c *gin.Context) {
	insights, err := h.metaService.Insights(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		writeServiceError(c, err, "failed to load meta insights")
		return
	}
	c.JSON(http.StatusOK, dto.ToMetaInsightsResponse(insights))
}
