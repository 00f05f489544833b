package api

import (
	"accountstore/internal/auth"
	"accountstore/internal/entity/converter"
	"accountstore/internal/entity/dto"
	"accountstore/internal/utils"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Login 校验用户名密码，账户在可用时间内才签发 token
func (h *HTTPHandler) Login(c *gin.Context) {
	var req dto.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	username := req.Username
	if !validUsername(username) {
		InvalidUsername(c, username)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	account, err := h.accounts.VerifyAccount(ctx, username, req.Password)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Warn("login attempt failed")
		respondServiceError(c, err, "failed to verify account")
		return
	}

	active, err := h.accounts.IsWithinWindow(account)
	if err != nil {
		respondServiceError(c, err, "failed to check account window")
		return
	}
	if !active {
		accountExpired(c)
		return
	}

	// 格式已在 IsWithinWindow 中校验
	notAfter, _ := utils.ParseTimestamp(account.EndTime)

	token, expiresAt, err := h.authManager.GenerateToken(account, notAfter)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   converter.AccountToSummary(account),
	})
}

// Me 返回当前账户的基础信息
func (h *HTTPHandler) Me(c *gin.Context) {
	current := CurrentAccount(c)
	if current == nil {
		Unauthorized(c, "unauthorized")
		return
	}

	c.JSON(http.StatusOK, dto.AccountSummary{
		UserID:    current.UserID,
		Username:  current.Username,
		Role:      current.Role,
		StartTime: current.StartTime,
		EndTime:   current.EndTime,
	})
}

// ChangePassword 修改当前账户的密码
func (h *HTTPHandler) ChangePassword(c *gin.Context) {
	current := CurrentAccount(c)
	if current == nil {
		Unauthorized(c, "unauthorized")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if !auth.IsStrongPassword(req.NewPassword) {
		BadRequest(c, ErrCodeWeakPassword, "new password does not meet the password policy")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	changed, err := h.accounts.ChangePassword(ctx, current.Username, req.OldPassword, req.NewPassword)
	if err != nil {
		logrus.WithError(err).WithField("username", current.Username).Error("failed to change password")
		InternalError(c, "failed to change password")
		return
	}
	if !changed {
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeChangeRefused, "password change refused")
		return
	}

	c.JSON(http.StatusOK, gin.H{"changed": true})
}

// CheckPassword 检查密码是否符合密码策略
func (h *HTTPHandler) CheckPassword(c *gin.Context) {
	var req dto.PasswordCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	c.JSON(http.StatusOK, dto.PasswordCheckResponse{Strong: auth.IsStrongPassword(req.Password)})
}
