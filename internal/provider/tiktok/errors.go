package tiktok

import (
	"encoding/json"
	"fmt"

	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
)

// TokenError is a failed token exchange or refresh.
type TokenError struct {
	Code        string
	Description string
	LogID       string
	StatusCode  int
}

func (e *TokenError) Error() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Code != "":
		return e.Code
	default:
		return "TikTok token exchange failed"
	}
}

// APIError is the error object of an Open API data endpoint,
// e.g. {"error":{"code":"access_token_invalid","message":"..."}}.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	LogID      string `json:"log_id"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func parseAPIError(resp *provider.Response) *APIError {
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && envelope.Error != nil {
		if envelope.Error.Code != "" && envelope.Error.Code != "ok" {
			envelope.Error.StatusCode = resp.StatusCode
			return envelope.Error
		}
	}

	if !resp.OK() {
		return &APIError{
			Code:       "http_error",
			Message:    fmt.Sprintf("tiktok api returned status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}
