package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/services"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Keys set on the gin context by JWTAuthMiddleware
const (
	ContextUser     = "user"
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	// TokenCookie is the http-only cookie login sets
	TokenCookie = "token"
)

// Authenticator resolves a session token to an active user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// JWTAuthMiddleware authenticates requests carrying a Bearer token or the
// token cookie and stores the user in the context.
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				abort(c, http.StatusUnauthorized, "Token has expired")
			case errors.Is(err, services.ErrAccountInactive):
				abort(c, http.StatusForbidden, "Account is inactive")
			default:
				abort(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

// Authorize lets the request through only when the authenticated user has one of roles
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}

// CurrentUserID returns the id JWTAuthMiddleware stored, if any
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	const bearerSchema = "Bearer "
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerSchema) {
		return strings.TrimSpace(header[len(bearerSchema):])
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
