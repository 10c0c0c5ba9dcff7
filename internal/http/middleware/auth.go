package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lara783/lensandlaunch.com-sub001/core/config"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyRole   = "auth_role"

	jwksRefreshInterval = time.Hour
	jwtLeeway           = 30 * time.Second
)

// Authenticator verifies the portal's session JWTs and resolves the caller's
// role from the profiles table.
type Authenticator struct {
	keyfunc    jwt.Keyfunc
	methods    []string
	profiles   store.ProfileStore
	cookieName string
}

// NewAuthenticator prefers the JWKS endpoint when both it and a shared secret
// are configured. With neither, every protected route answers 500.
func NewAuthenticator(ctx context.Context, cfg config.AuthConfig, profiles store.ProfileStore) (*Authenticator, error) {
	a := &Authenticator{profiles: profiles, cookieName: cfg.CookieName}

	switch {
	case cfg.JWKSURL != "":
		storage, err := jwkset.NewStorageFromHTTP(cfg.JWKSURL, jwkset.HTTPClientStorageOptions{
			Ctx:                       ctx,
			NoErrorReturnFirstHTTPReq: true,
			RefreshInterval:           jwksRefreshInterval,
			RefreshErrorHandler: func(ctx context.Context, err error) {
				slog.ErrorContext(ctx, "jwks refresh failed", "error", err, "url", cfg.JWKSURL)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("creating jwks storage: %w", err)
		}
		k, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: storage})
		if err != nil {
			return nil, fmt.Errorf("creating keyfunc: %w", err)
		}
		a.keyfunc = k.Keyfunc
		a.methods = []string{"RS256", "ES256"}
	case cfg.JWTSecret != "":
		secret := []byte(cfg.JWTSecret)
		a.keyfunc = func(*jwt.Token) (any, error) { return secret, nil }
		a.methods = []string{jwt.SigningMethodHS256.Alg()}
	}

	return a, nil
}

// RequireRole admits callers whose profile role is one of roles.
func (a *Authenticator) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if a == nil || a.keyfunc == nil {
			slog.ErrorContext(ctx, "authentication is not configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication is not configured"})
			return
		}

		raw := a.bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, a.keyfunc,
			jwt.WithValidMethods(a.methods),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(jwtLeeway),
		)
		if err != nil || claims.Subject == "" {
			slog.DebugContext(ctx, "rejected session token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		role, err := a.profiles.GetRole(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			slog.ErrorContext(ctx, "failed to load profile role", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to authorize request"})
			return
		}

		if !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(ContextKeyUserID, claims.Subject)
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

func (a *Authenticator) bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if a.cookieName != "" {
		if cookie, err := c.Cookie(a.cookieName); err == nil {
			return cookie
		}
	}
	return ""
}
