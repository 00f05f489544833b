package dto

import "accountstore/internal/entity/common"

// AccountRequest 描述批量创建中的一个账户。
type AccountRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// CreateAccountsRequest is the payload for batch account creation.
type CreateAccountsRequest struct {
	Accounts []AccountRequest `json:"accounts" binding:"required,min=1,dive"`
}

// BaseInfo 账户基础信息
type BaseInfo struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AccountSummary is the client facing view of an account. It never carries the digest.
type AccountSummary struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AccountQuery supports listing accounts with pagination.
type AccountQuery struct {
	common.BaseParams
	Role string `json:"role" form:"role" query:"role"`
}

// AccountListResponse is the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountSummary `json:"accounts"`
	Meta     *common.Meta     `json:"meta"`
}

// WindowUpdateRequest 修改账户可用时间
type WindowUpdateRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
