package meta

import (
	"encoding/json"
	"fmt"

	"github.com/lara783/lensandlaunch.com-sub001/internal/provider"
)

// GraphError is an error payload returned by the Graph API. Error() is the
// provider's message verbatim so it can be shown to the admin as-is.
type GraphError struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	Subcode    int    `json:"error_subcode"`
	FBTraceID  string `json:"fbtrace_id"`
	StatusCode int    `json:"-"`
}

func (e *GraphError) Error() string {
	return e.Message
}

// parseGraphError returns nil for a successful response without an error body.
func parseGraphError(resp *provider.Response) *GraphError {
	var envelope struct {
		Error *GraphError `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && envelope.Error != nil {
		envelope.Error.StatusCode = resp.StatusCode
		if envelope.Error.Message == "" {
			envelope.Error.Message = fmt.Sprintf("graph api error (code %d)", envelope.Error.Code)
		}
		return envelope.Error
	}

	if !resp.OK() {
		return &GraphError{
			Message:    fmt.Sprintf("graph api returned status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}
