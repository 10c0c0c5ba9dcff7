package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lara783/lensandlaunch.com-sub001/common/logger"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/oauthstate"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

// CallbackParams are the query parameters of a provider redirect.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackResult is the outcome of a callback. ClientID is empty when the state
// could not be trusted; Err is set on every failure.
type CallbackResult struct {
	ClientID  string
	Connected bool
	Pages     []PageOption
	Err       error
}

// OAuthDeniedError is the provider's own error from the redirect query.
type OAuthDeniedError struct {
	Code        string
	Description string
}

func (e *OAuthDeniedError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

// beginCallback runs the checks shared by both providers: provider error,
// missing parameters and the signed state. It returns the trusted client id, or
// a finished result when the callback must stop before any token exchange.
func beginCallback(ctx context.Context, states *oauthstate.Manager, provider string, p CallbackParams) (string, *CallbackResult) {
	if p.Error != "" {
		res := &CallbackResult{Err: &OAuthDeniedError{Code: p.Error, Description: p.ErrorDescription}}
		if st, err := states.Peek(p.State, provider); err == nil {
			res.ClientID = st.ClientID
		}
		slog.WarnContext(ctx, "oauth provider returned an error", "error", p.Error, "description", p.ErrorDescription)
		return "", res
	}

	if p.Code == "" || p.State == "" {
		res := &CallbackResult{Err: ErrMissingCode}
		if st, err := states.Peek(p.State, provider); err == nil {
			res.ClientID = st.ClientID
		}
		return "", res
	}

	st, err := states.Consume(ctx, p.State, provider)
	if err != nil {
		res := &CallbackResult{Err: fmt.Errorf("%w: %v", ErrInvalidState, err)}
		if peeked, perr := states.Peek(p.State, provider); perr == nil {
			res.ClientID = peeked.ClientID
		}
		slog.WarnContext(ctx, "rejected oauth state", "error", err)
		return "", res
	}

	return st.ClientID, nil
}

// validateClientID rejects non-UUID ids before they reach the database.
func validateClientID(clientID string) error {
	if _, err := uuid.Parse(clientID); err != nil {
		return ErrInvalidClientID
	}
	return nil
}

func requireClient(ctx context.Context, clients store.ClientStore, clientID string) error {
	if err := validateClientID(clientID); err != nil {
		return err
	}
	ok, err := clients.Exists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("checking client: %w", err)
	}
	if !ok {
		return ErrClientNotFound
	}
	return nil
}

// loadIntegration resolves the credential record, distinguishing an unknown
// client from a known client that never connected.
func loadIntegration(ctx context.Context, clients store.ClientStore, integrations store.ClientIntegrationStore, clientID string) (*model.ClientIntegration, error) {
	if err := validateClientID(clientID); err != nil {
		return nil, err
	}

	rec, err := integrations.Get(ctx, clientID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading integration: %w", err)
	}

	if err := requireClient(ctx, clients, clientID); err != nil {
		return nil, err
	}
	return nil, nil
}

// warnPersist logs a best-effort write that failed. These never fail the request.
func warnPersist(ctx context.Context, msg string, err error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "portal.persist"})
	slog.WarnContext(ctx, msg, "error", err)
}
