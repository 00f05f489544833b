package sql

import (
	"accountstore/internal/entity/common"
	"accountstore/internal/entity/db"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type txKey struct{}

// mysqlTableOptions 用户名需区分大小写，MySQL 默认排序规则不区分
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// EnsureSchema migrates the account table.
func (r *GormRepository) EnsureSchema(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	return migrator(r.db.WithContext(ctx)).AutoMigrate(&db.Account{})
}

// migrator 为不同方言设置建表选项
func migrator(tx *gorm.DB) *gorm.DB {
	if tx.Dialector != nil && tx.Dialector.Name() == "mysql" {
		return tx.Set("gorm:table_options", mysqlTableOptions)
	}
	return tx
}

// WithinTransaction runs fn in a transaction carried by ctx. Nested calls reuse the
// outer transaction.
func (r *GormRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Close releases the underlying connection pool.
func (r *GormRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// conn returns the transaction bound to ctx, or the shared pool.
func (r *GormRepository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount, page, pageSize int64) *common.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &common.Meta{
		Total:    totalCount,
		Page:     page,
		PageSize: pageSize,
	}
}
