package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"sudooom.score/pkg/jwt"
	"sudooom.score/pkg/response"
)

const (
	ctxKeyUserID   = "user_id"
	ctxKeyDeviceID = "device_id"
)

// TokenValidator 访问令牌校验
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// JWTAuth JWT 认证中间件
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := validator.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, response.CodeTokenExpired)
			} else {
				response.Error(c, response.CodeTokenInvalid)
			}
			c.Abort()
			return
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyDeviceID, claims.DeviceID)
		c.Next()
	}
}

// extractToken 从 Authorization header 提取 token
func extractToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetUserID 从 context 获取 user_id
func GetUserID(c *gin.Context) int64 {
	userID, exists := c.Get(ctxKeyUserID)
	if !exists {
		return 0
	}
	id, _ := userID.(int64)
	return id
}

// GetDeviceID 从 context 获取 device_id
func GetDeviceID(c *gin.Context) string {
	deviceID, exists := c.Get(ctxKeyDeviceID)
	if !exists {
		return ""
	}
	id, _ := deviceID.(string)
	return id
}
