package handler

import (
	"errors"
	"net/http"
	"strings"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/util"

	"github.com/gin-gonic/gin"
)

const (
	ctxStaffID = "staff_id"
	ctxEmail   = "email"
	ctxRole    = "role"
)

type AuthMiddleware struct {
	jwt *util.JWTManager
}

func NewAuthMiddleware(jwt *util.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate validates the bearer token and stores the staff identity in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, util.ErrExpiredToken) {
				unauthorized(c, "token has expired")
				return
			}
			unauthorized(c, "invalid token")
			return
		}

		c.Set(ctxStaffID, claims.StaffID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

func (m *AuthMiddleware) RequireRole(roles ...entity.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		if role == "" {
			unauthorized(c, "unauthorized")
			return
		}

		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, entity.ErrorResponse{
			Error: "insufficient permissions",
			Kind:  "forbidden",
		})
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: message, Kind: "unauthenticated"})
}

func currentStaffID(c *gin.Context) int64 {
	id, _ := c.Get(ctxStaffID)
	staffID, _ := id.(int64)
	return staffID
}
