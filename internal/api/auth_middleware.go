package api

import (
	"context"
	"net/http"
	"strings"

	"accountstore/internal/entity/db"
	"accountstore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	currentAccountContextKey = "current-account"
)

// RequestAccount 存储请求上下文中的认证账户信息
type RequestAccount struct {
	UserID    uint
	Username  string
	Role      string
	StartTime string
	EndTime   string
}

// IsAdmin 判断账户是否具有管理员权限
func (a *RequestAccount) IsAdmin() bool {
	if a == nil {
		return false
	}
	return a.Role == db.RoleAdmin
}

// AuthMiddleware JWT 认证中间件，账户必须处于可用时间内
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := h.authManager.ParseToken(tokenString)
		if err != nil {
			logrus.WithError(err).Warn("failed to parse jwt token")
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeSessionExpired, "token invalid or expired")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		info, err := h.accounts.GetBaseInfo(ctx, claims.Username)
		if err != nil {
			if service.IsAccount(err) {
				ErrorResponse(c, http.StatusUnauthorized, ErrCodeAccountNotFound, "account not found")
				c.Abort()
				return
			}
			logrus.WithError(err).WithField("username", claims.Username).Error("failed to load account")
			InternalError(c, "failed to verify account")
			c.Abort()
			return
		}
		if info.UserID != claims.UserID {
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeSessionExpired, "token does not match account")
			c.Abort()
			return
		}

		_, active, err := h.accounts.VerifyTime(info.StartTime, info.EndTime)
		if err != nil || !active {
			accountExpired(c)
			c.Abort()
			return
		}

		c.Set(currentAccountContextKey, &RequestAccount{
			UserID:    info.UserID,
			Username:  claims.Username,
			Role:      info.Role,
			StartTime: info.StartTime,
			EndTime:   info.EndTime,
		})
		c.Next()
	}
}

// RequireAdmin 管理员权限守卫中间件
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account := CurrentAccount(c)
		if account == nil || !account.IsAdmin() {
			Forbidden(c, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// accountExpired 账户不在可用时间内
func accountExpired(c *gin.Context) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeAccountExpired, "account is outside its allowed time window")
}

// CurrentAccount 从上下文获取当前认证账户
func CurrentAccount(c *gin.Context) *RequestAccount {
	value, exists := c.Get(currentAccountContextKey)
	if !exists {
		return nil
	}
	account, ok := value.(*RequestAccount)
	if !ok {
		return nil
	}
	return account
}
