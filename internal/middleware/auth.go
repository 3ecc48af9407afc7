package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quizforge/mocktest/config"
	"github.com/quizforge/mocktest/internal/dto"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// RequireAuth validates the Bearer token and stores the caller's identity on
// the gin context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authentication required"))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid token claims"))
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid token subject"))
			return
		}

		ctx.Set(ContextUserID, uint(sub))
		if role, ok := claims["role"].(string); ok {
			ctx.Set(ContextRole, role)
		}
		ctx.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if role, _ := ctx.Get(ContextRole); role != "admin" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Admin access required"))
			return
		}
		ctx.Next()
	}
}

// UserID returns the authenticated user's id from the context.
func UserID(ctx *gin.Context) uint {
	id, _ := ctx.Get(ContextUserID)
	uid, _ := id.(uint)
	return uid
}
