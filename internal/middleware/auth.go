package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"warehouse/internal/cache"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const principalKey = "principal"

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID      uuid.UUID
	Role        string
	Permissions []string
}

// Has reports whether the principal holds the permission code.
func (p Principal) Has(code string) bool {
	for _, c := range p.Permissions {
		if c == code {
			return true
		}
	}
	return false
}

// PermissionLoader resolves a role's permission codes from the store.
type PermissionLoader interface {
	GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error)
}

// Authenticator validates JWTs and checks role permissions through a cache.
type Authenticator struct {
	secret []byte
	loader PermissionLoader
	cache  cache.PermissionCache
	log    *logrus.Logger
}

func NewAuthenticator(secret string, loader PermissionLoader, permCache cache.PermissionCache, log *logrus.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), loader: loader, cache: permCache, log: log}
}

var errMissingToken = errors.New("authorization is missing")

// ParseToken validates an HMAC-signed token and returns its subject and role.
func (a *Authenticator) ParseToken(tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", errors.New("invalid token subject")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return uuid.Nil, "", errors.New("role not found in token")
	}

	return userID, role, nil
}

// PermissionsForRole returns cached or store-fetched permission codes for a role name
func (a *Authenticator) PermissionsForRole(ctx context.Context, role string) ([]string, error) {
	codes, ok, err := a.cache.Get(ctx, role)
	if err != nil {
		a.log.WithError(err).WithField("role", role).Warn("permission cache read failed")
	} else if ok {
		return codes, nil
	}

	codes, err = a.loader.GetPermissionsByRoleName(ctx, role)
	if err != nil {
		return nil, err
	}

	if err := a.cache.Set(ctx, role, codes); err != nil {
		a.log.WithError(err).WithField("role", role).Warn("permission cache write failed")
	}
	return codes, nil
}

// ClearPermissionCache removes cached permissions for a specific role (or all roles if empty)
func (a *Authenticator) ClearPermissionCache(ctx context.Context, role string) error {
	return a.cache.Invalidate(ctx, role)
}

// Authenticate resolves the caller and stores a Principal on the context.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.resolve(c) {
			return
		}
		c.Next()
	}
}

// RequirePermission authenticates the caller and checks every required permission code.
func (a *Authenticator) RequirePermission(requiredPerms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.resolve(c) {
			return
		}

		principal, _ := CurrentPrincipal(c)
		for _, required := range requiredPerms {
			if !principal.Has(required) {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing permission '"+required+"'"))
				return
			}
		}
		c.Next()
	}
}

// resolve sets the Principal once per request; it aborts and returns false on failure.
func (a *Authenticator) resolve(c *gin.Context) bool {
	if _, ok := CurrentPrincipal(c); ok {
		return true
	}

	tokenString, err := tokenFromRequest(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return false
	}

	userID, role, err := a.ParseToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
		return false
	}

	perms, err := a.PermissionsForRole(c.Request.Context(), role)
	if err != nil {
		a.log.WithError(err).WithField("role", role).Error("failed to load permissions")
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to verify permissions"))
		return false
	}

	c.Set(principalKey, Principal{UserID: userID, Role: role, Permissions: perms})
	c.Set("userID", userID.String())
	c.Set("userRole", role)
	return true
}

// CurrentPrincipal returns the caller stored by Authenticate.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// tokenFromRequest tries the access_token cookie first, then the Authorization header
func tokenFromRequest(c *gin.Context) (string, error) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}
