// Package oauthstate issues and verifies the OAuth state parameter.
//
// The state carries the client id through the provider redirect as an HS256
// token bound to one provider, with a short expiry and a single-use nonce.
package oauthstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 10 * time.Minute

var (
	ErrInvalid       = errors.New("invalid oauth state")
	ErrExpired       = errors.New("oauth state expired")
	ErrWrongProvider = errors.New("oauth state issued for another provider")
	ErrReplayed      = errors.New("oauth state already used")
)

type claims struct {
	ClientID string `json:"cid"`
	Provider string `json:"prv"`
	jwt.RegisteredClaims
}

// State is a verified, consumed state.
type State struct {
	ClientID  string
	Provider  string
	Nonce     string
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	nonces NonceStore
	nowFn  func() time.Time
}

func NewManager(secret string, ttl time.Duration, nonces NonceStore) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		nonces: nonces,
		nowFn:  time.Now,
	}
}

// WithClock replaces the clock; used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.nowFn = now
	return m
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a state for clientID and provider.
func (m *Manager) Issue(clientID, provider string) (string, error) {
	now := m.nowFn()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ClientID: clientID,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing oauth state: %w", err)
	}
	return signed, nil
}

// Peek verifies signature and expiry without consuming the nonce. Callbacks use
// it to find the client to redirect back to when the provider reports an error.
func (m *Manager) Peek(raw, provider string) (*State, error) {
	if raw == "" {
		return nil, ErrInvalid
	}

	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFn),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if c.ClientID == "" || c.ID == "" {
		return nil, ErrInvalid
	}
	if c.Provider != provider {
		return nil, ErrWrongProvider
	}

	return &State{
		ClientID:  c.ClientID,
		Provider:  c.Provider,
		Nonce:     c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// Consume verifies raw and burns its nonce. A second Consume of the same state
// fails with ErrReplayed.
func (m *Manager) Consume(ctx context.Context, raw, provider string) (*State, error) {
	st, err := m.Peek(raw, provider)
	if err != nil {
		return nil, err
	}

	ttl := st.ExpiresAt.Sub(m.nowFn())
	if ttl < time.Second {
		ttl = time.Second
	}

	first, err := m.nonces.Consume(ctx, st.Nonce, ttl)
	if err != nil {
		return nil, fmt.Errorf("recording oauth state nonce: %w", err)
	}
	if !first {
		return nil, ErrReplayed
	}
	return st, nil
}
