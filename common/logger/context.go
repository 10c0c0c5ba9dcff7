package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every record logged with the enriched context.
// Handlers and services set them once so downstream calls log the client and
// provider without passing them around explicitly.
type LogFields struct {
	ClientID  *string // portal client UUID
	Provider  *string // "meta" or "tiktok"
	Operation *string // e.g. "callback", "insights"
	RequestID *string
	Component string // dotted component name, e.g. "portal.service.tiktok"
}

// WithLogFields merges fields into the context. Newer non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.ClientID != nil {
		result.ClientID = next.ClientID
	}
	if next.Provider != nil {
		result.Provider = next.Provider
	}
	if next.Operation != nil {
		result.Operation = next.Operation
	}
	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr returns a pointer to v, for inline LogFields literals.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to maxLen bytes and appends "..." when it was cut.
// Provider error bodies go through this before they are logged.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
