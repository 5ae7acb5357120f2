package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"mro-inventory/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the authorizer
const (
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextPermissions = "userPerms"
)

// PermissionSource resolves the permission codes granted to a role.
type PermissionSource interface {
	CodesForRole(ctx context.Context, roleName string) ([]string, error)
}

// permCacheEntry stores cached permission codes for a role with TTL
type permCacheEntry struct {
	codes     map[string]bool
	expiresAt time.Time
}

// Authorizer validates access tokens issued elsewhere and gates routes on role
// permission codes. Tokens are read from the access_token cookie or a Bearer header.
type Authorizer struct {
	secret []byte
	perms  PermissionSource
	ttl    time.Duration
	cache  sync.Map // roleName -> permCacheEntry
	now    func() time.Time
}

func NewAuthorizer(secret []byte, perms PermissionSource, cacheTTL time.Duration) *Authorizer {
	return &Authorizer{secret: secret, perms: perms, ttl: cacheTTL, now: time.Now}
}

// ParseToken validates an HMAC-signed token and returns its claims.
func (a *Authorizer) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID      string
	Role        string
	Permissions map[string]bool
}

// MissingPermissionError names the first required code the caller lacks.
type MissingPermissionError struct {
	Code string
}

func (e *MissingPermissionError) Error() string {
	return "access denied: missing permission '" + e.Code + "'"
}

// Authorization failures
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingRole  = errors.New("role not found in token")
)

// Authorize checks a raw token and requires every listed permission code.
func (a *Authorizer) Authorize(ctx context.Context, tokenString string, requiredPerms ...string) (*Identity, error) {
	claims, err := a.ParseToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userRole, ok := claims["role"].(string)
	if !ok {
		return nil, ErrMissingRole
	}
	userID, _ := claims["sub"].(string)

	permSet, err := a.permissionsForRole(ctx, userRole)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions for role %s: %w", userRole, err)
	}

	for _, required := range requiredPerms {
		if !permSet[required] {
			return nil, &MissingPermissionError{Code: required}
		}
	}
	return &Identity{UserID: userID, Role: userRole, Permissions: permSet}, nil
}

// RequirePermission authenticates the caller and requires every listed code.
func (a *Authorizer) RequirePermission(requiredPerms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, msg))
			return
		}

		identity, err := a.Authorize(c.Request.Context(), tokenString, requiredPerms...)
		if err != nil {
			status := AuthStatus(err)
			message := err.Error()
			if status == http.StatusInternalServerError {
				message = "Failed to verify permissions"
			}
			c.AbortWithStatusJSON(status, response.Error(status, message))
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUserRole, identity.Role)
		c.Set(ContextPermissions, identity.Permissions)
		c.Next()
	}
}

// AuthStatus maps an Authorize error to its HTTP status.
func AuthStatus(err error) int {
	var missing *MissingPermissionError
	switch {
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrMissingRole), errors.As(err, &missing):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// HasPermission reports whether the authenticated caller holds code. It only
// sees callers that passed RequirePermission.
func HasPermission(c *gin.Context, code string) bool {
	v, ok := c.Get(ContextPermissions)
	if !ok {
		return false
	}
	perms, _ := v.(map[string]bool)
	return perms[code]
}

// UserID returns the subject of the caller's token.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// ClearPermissionCache drops one role's cached codes, or all roles when empty.
func (a *Authorizer) ClearPermissionCache(roleName string) {
	if roleName != "" {
		a.cache.Delete(roleName)
		return
	}
	a.cache.Range(func(key, _ interface{}) bool {
		a.cache.Delete(key)
		return true
	})
}

func (a *Authorizer) permissionsForRole(ctx context.Context, roleName string) (map[string]bool, error) {
	if entry, ok := a.cache.Load(roleName); ok {
		cached := entry.(permCacheEntry)
		if a.now().Before(cached.expiresAt) {
			return cached.codes, nil
		}
	}

	codes, err := a.perms.CodesForRole(ctx, roleName)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	a.cache.Store(roleName, permCacheEntry{codes: set, expiresAt: a.now().Add(a.ttl)})
	return set, nil
}

// extractToken tries the cookie first, then the Authorization header.
func extractToken(c *gin.Context) (string, string) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, ""
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization is missing"
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "Invalid authorization format. Expected 'Bearer <token>'"
	}
	return parts[1], ""
}
