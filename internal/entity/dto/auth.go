package dto

import "time"

// AuthLoginRequest is the login request payload.
type AuthLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Account   AccountSummary `json:"account"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// PasswordCheckRequest 密码强度检查请求
type PasswordCheckRequest struct {
	Password string `json:"password"`
}

// PasswordCheckResponse 密码强度检查结果
type PasswordCheckResponse struct {
	Strong bool `json:"strong"`
}
