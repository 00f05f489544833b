package model

import (
	"accountstore/internal/entity/common"
	"accountstore/internal/entity/db"
	"accountstore/internal/entity/dto"
	"context"
)

// Repository 定义数据库操作接口
type Repository interface {
	// EnsureSchema 创建或迁移 account 表
	EnsureSchema(ctx context.Context) error

	// WithinTransaction runs fn inside one database transaction. Repository calls made
	// with the ctx passed to fn join that transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// 账户管理
	CreateAccount(ctx context.Context, account *db.Account) error
	UpdateAccount(ctx context.Context, username string, updates db.AccountUpdates) error
	GetAccountByUsername(ctx context.Context, username string) (*db.Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	CountAccountsByRole(ctx context.Context, role string) (int64, error)
	ListAccounts(ctx context.Context, params *dto.AccountQuery) ([]db.Account, *common.Meta, error)

	Close() error
}
