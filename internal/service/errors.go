package service

import "errors"

var (
	ErrInvalidClientID       = errors.New("invalid client id")
	ErrClientNotFound        = errors.New("client not found")
	ErrNotConfigured         = errors.New("integration not configured for this client")
	ErrProviderNotConfigured = errors.New("provider credentials are not configured")
	ErrNoPages               = errors.New("no Facebook pages found for this account")
	ErrInvalidState          = errors.New("invalid or expired oauth state")
	ErrMissingCode           = errors.New("missing code or state")
	ErrInvalidSelection      = errors.New("page_id and access_token are required")
)
