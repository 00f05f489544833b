package api

import (
	"accountstore/internal/auth"
	"accountstore/internal/entity/converter"
	"accountstore/internal/entity/dto"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = 1000000
)

// ListAccounts 分页列出账户
func (h *HTTPHandler) ListAccounts(c *gin.Context) {
	var query dto.AccountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}
	if query.Page > maxPage {
		BadRequest(c, ErrCodeInvalidRequest, "page out of range")
		return
	}
	query.Role = strings.TrimSpace(query.Role)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	accounts, meta, err := h.accounts.ListAccounts(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list accounts")
		InternalError(c, "failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: converter.AccountsToSummaries(accounts),
		Meta:     meta,
	})
}

// CreateAccounts 批量创建账户，任一条目失败则整批不写入
func (h *HTTPHandler) CreateAccounts(c *gin.Context) {
	var req dto.CreateAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	for _, account := range req.Accounts {
		if !validUsername(account.Username) {
			InvalidUsername(c, account.Username)
			return
		}
		if !auth.IsStrongPassword(account.Password) {
			ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeWeakPassword,
				"password does not meet the password policy", gin.H{"username": account.Username})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	created, err := h.accounts.CreateAccounts(ctx, req.Accounts)
	if err != nil {
		respondServiceError(c, err, "failed to create accounts")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"accounts": converter.AccountsToSummaries(created)})
}

// GetAccount 返回账户基础信息
func (h *HTTPHandler) GetAccount(c *gin.Context) {
	username := c.Param("username")
	if !validUsername(username) {
		InvalidUsername(c, username)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	info, err := h.accounts.GetBaseInfo(ctx, username)
	if err != nil {
		respondServiceError(c, err, "failed to load account")
		return
	}
	c.JSON(http.StatusOK, info)
}

// AccountExists 用户名是否已被占用，仅返回状态码
func (h *HTTPHandler) AccountExists(c *gin.Context) {
	username := c.Param("username")
	if !validUsername(username) {
		c.Status(http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	exists, err := h.accounts.UsernameExists(ctx, username)
	if err != nil {
		logrus.WithError(err).Error("failed to check username")
		c.Status(http.StatusInternalServerError)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// UpdateAccountWindow 修改账户可用时间
func (h *HTTPHandler) UpdateAccountWindow(c *gin.Context) {
	username := c.Param("username")
	if !validUsername(username) {
		InvalidUsername(c, username)
		return
	}

	var req dto.WindowUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.accounts.UpdateAllowTime(ctx, username, req.StartTime, req.EndTime); err != nil {
		respondServiceError(c, err, "failed to update account window")
		return
	}

	info, err := h.accounts.GetBaseInfo(ctx, username)
	if err != nil {
		respondServiceError(c, err, "failed to load account")
		return
	}
	c.JSON(http.StatusOK, info)
}
