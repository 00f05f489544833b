package api

import (
	"accountstore/internal/auth"
	"accountstore/internal/config"
	"accountstore/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg         config.Config
	accounts    *service.AccountService
	authManager *auth.Manager
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, accounts *service.AccountService) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		accounts:    accounts,
		authManager: authManager,
	}, nil
}

// RegisterRoutes 注册所有路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", h.Login)
	authGroup.POST("/password/check", h.CheckPassword)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)
	authGroup.POST("/password", h.AuthMiddleware(), h.ChangePassword)

	accountAdmin := apiGroup.Group("/accounts")
	accountAdmin.Use(h.AuthMiddleware(), h.RequireAdmin())
	accountAdmin.GET("", h.ListAccounts)
	accountAdmin.POST("", h.CreateAccounts)
	accountAdmin.GET("/:username", h.GetAccount)
	accountAdmin.HEAD("/:username", h.AccountExists)
	accountAdmin.PATCH("/:username/window", h.UpdateAccountWindow)
}
