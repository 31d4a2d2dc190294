package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/service/barber"
	"github.com/barberbook/barber-api/pkg/auth"
	"github.com/barberbook/barber-api/pkg/httputil"
)

// ContextAuth is the gin context key holding the caller's AuthContext.
const ContextAuth = "auth"

type AuthMiddleware struct {
	jwt     auth.JWTService
	barbers *barber.Service
}

func NewAuthMiddleware(jwt auth.JWTService, barbers *barber.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, barbers: barbers}
}

// Authenticate validates the bearer token and stores an AuthContext. For
// barber accounts the profile id is resolved here, once, so handlers and
// services never deal with the user-id-vs-profile-id split.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		actor := &model.AuthContext{
			UserID: userID,
			Role:   model.Role(claims.Role),
		}

		if actor.Role == model.RoleBarber {
			if claims.BarberID != "" {
				if barberID, err := uuid.Parse(claims.BarberID); err == nil {
					actor.BarberID = &barberID
				}
			}
			// Old tokens predate the barber_id claim; resolve from storage.
			if actor.BarberID == nil {
				if profile, err := m.barbers.ResolveByUser(c.Request.Context(), userID); err == nil {
					actor.BarberID = &profile.ID
				}
			}
		}

		c.Set(ContextAuth, actor)
		c.Next()
	}
}

// Actor returns the AuthContext set by Authenticate.
func Actor(c *gin.Context) (*model.AuthContext, bool) {
	v, ok := c.Get(ContextAuth)
	if !ok {
		return nil, false
	}
	actor, ok := v.(*model.AuthContext)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error:   &httputil.Error{Code: http.StatusUnauthorized, Message: message},
	})
}
