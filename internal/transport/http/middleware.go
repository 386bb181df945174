package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthRequired проверяет Bearer-токен и кладёт user id и роль в контекст
// запроса, дальше их читает сервисный слой.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, err := contextFromToken(c, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuthOptional — то же самое, но без токена запрос проходит анонимно
// (анонимные корзины).
func AuthOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		ctx, err := contextFromToken(c, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// StaffRequired пускает только роль staff; вешается после AuthRequired.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := service.RoleFromContext(c.Request.Context())
		if !ok || role != service.RoleStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff only"})
			return
		}
		c.Next()
	}
}

func contextFromToken(c *gin.Context, secret string) (context.Context, error) {
	header := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return nil, errors.New("authorization header is missing or malformed")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims.GetSubject()
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}

	out := service.WithUserID(c.Request.Context(), userID)
	if roleClaim, ok := claims["role"].(string); ok && roleClaim != "" {
		out = service.WithRole(out, service.Role(roleClaim))
	}
	return out, nil
}
