package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/infrastructure/auth"
	"github.com/motormarket/backend/internal/infrastructure/logger"
	"github.com/motormarket/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ClaimsKey = "auth_claims"
	UserIDKey = "auth_user_id"
	RoleKey   = "auth_role"

	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// RequireAuth validates the bearer token and stores its claims on the
// request context. Requests without a valid access token get 401.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeader)
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}
		token := strings.TrimPrefix(header, bearerPrefix)

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				abortWithCode(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Access token has expired")
			default:
				abortUnauthorized(c, "Invalid access token")
			}
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)

		// propagate the user onto the request-scoped logger
		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole allows only the listed roles past. Must run after
// RequireAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := identity.Role(c.GetString(RoleKey))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Insufficient role for this operation", RequestIDFrom(c)))
			return
		}
		c.Next()
	}
}

// GetClaims returns the validated claims, or nil when unauthenticated
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(UserIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetRole returns the authenticated user's role
func GetRole(c *gin.Context) identity.Role {
	return identity.Role(c.GetString(RoleKey))
}

func abortUnauthorized(c *gin.Context, message string) {
	abortWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func abortWithCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, message, RequestIDFrom(c)))
}
