package main

import (
	"accountstore/internal/api"
	"accountstore/internal/auth"
	"accountstore/internal/config"
	"accountstore/internal/model"
	"accountstore/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

func main() {
	// 初始化配置
	if err := config.LoadDotEnv(); err != nil {
		logrus.WithError(err).Error("Failed to load .env file")
		return
	}
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logger := config.NewLogger(cfg)
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logger.GetLevel())

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logger.WithError(err).Error("failed to initialise repository")
		return
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.WithError(err).Warn("failed to close repository")
		}
	}()

	hasher, err := auth.NewHasher(cfg.HashAlgorithm)
	if err != nil {
		logger.WithError(err).Error("failed to initialise credential hasher")
		return
	}
	logger.WithField("hash_algorithm", hasher.Algorithm()).Debug("credential hasher ready")

	accounts := service.NewAccountService(repo, hasher, logger.WithField("component", "account"), service.Options{
		AdminKeyLength:      cfg.AdminKeyLength,
		LogPlaintextSecrets: cfg.LogPlaintextSecrets,
	})

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = accounts.Initialize(initCtx)
	cancel()
	if err != nil {
		logger.WithError(err).Error("failed to initialise account store")
		return
	}

	httpHandler, err := api.NewHTTPHandler(cfg, accounts)
	if err != nil {
		logger.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	httpHandler.RegisterRoutes(r)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("服务器启动失败")
		}
		return
	case <-ctx.Done():
	}

	logger.Info("收到退出信号，正在关闭服务器")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("服务器关闭失败")
	}
}

// CORSMiddleware CORS跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, HEAD, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, "+requestIDHeader)
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware 日志记录中间件，每个请求带上 request id
func LoggingMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.String(),
			"size":       c.Writer.Size(),
			"client_ip":  c.ClientIP(),
		}).Info("http_request")
	}
}
