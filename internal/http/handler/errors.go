package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/lara783/lensandlaunch.com-sub001/internal/http/dto"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider/meta"
	"github.com/lara783/lensandlaunch.com-sub001/internal/provider/tiktok"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

const fallbackRedirectMessage = "connection failed, please try again"

// writeServiceError maps service and provider errors to a JSON response.
func writeServiceError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()

	var apiErr *tiktok.APIError
	switch {
	case errors.Is(err, service.ErrInvalidClientID),
		errors.Is(err, service.ErrInvalidSelection):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrClientNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrProviderNotConfigured):
		slog.ErrorContext(ctx, "provider is not configured", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: apiErr.Error()})
	case provider.IsTransport(err):
		slog.ErrorContext(ctx, "provider unreachable", "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(ctx, fallback, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// callbackRedirect sends the admin back to the client page with the outcome in
// a query parameter named <prefix>_connected, <prefix>_pages or <prefix>_error.
func callbackRedirect(c *gin.Context, appBaseURL, prefix string, res service.CallbackResult) {
	if errors.Is(res.Err, service.ErrProviderNotConfigured) {
		slog.ErrorContext(c.Request.Context(), "oauth callback for unconfigured provider", "provider", prefix)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: res.Err.Error()})
		return
	}

	target := appBaseURL + "/admin/clients"
	if res.ClientID != "" {
		target += "/" + url.PathEscape(res.ClientID)
	}

	q := url.Values{}
	switch {
	case res.Err != nil:
		q.Set(prefix+"_error", redirectMessage(res.Err))
	case len(res.Pages) > 0:
		blob, err := service.EncodePages(res.Pages)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to encode page options", "error", err)
			q.Set(prefix+"_error", fallbackRedirectMessage)
			break
		}
		q.Set(prefix+"_pages", blob)
	default:
		q.Set(prefix+"_connected", "1")
	}

	c.Redirect(http.StatusFound, target+"?"+q.Encode())
}

// redirectMessage forwards provider and OAuth messages verbatim and hides
// anything else behind a generic message.
func redirectMessage(err error) string {
	var (
		denied   *service.OAuthDeniedError
		graphErr *meta.GraphError
		tokenErr *tiktok.TokenError
		apiErr   *tiktok.APIError
	)
	switch {
	case errors.As(err, &denied):
		return denied.Error()
	case errors.As(err, &graphErr):
		return graphErr.Error()
	case errors.As(err, &tokenErr):
		return tokenErr.Error()
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, service.ErrInvalidState):
		return service.ErrInvalidState.Error()
	case errors.Is(err, service.ErrMissingCode),
		errors.Is(err, service.ErrNoPages),
		errors.Is(err, service.ErrInvalidClientID),
		errors.Is(err, service.ErrClientNotFound),
		provider.IsTransport(err):
		return err.Error()
	default:
		return fallbackRedirectMessage
	}
}
