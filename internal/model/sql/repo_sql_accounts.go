package sql

import (
	"accountstore/internal/entity/common"
	"accountstore/internal/entity/db"
	"accountstore/internal/entity/dto"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

// CreateAccount persists a new account record.
func (r *GormRepository) CreateAccount(ctx context.Context, account *db.Account) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if account == nil {
		return fmt.Errorf("account is nil")
	}
	return r.conn(ctx).Create(account).Error
}

// UpdateAccount writes every set field of updates in a single statement.
func (r *GormRepository) UpdateAccount(ctx context.Context, username string, updates db.AccountUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if username == "" {
		return fmt.Errorf("invalid username")
	}
	if updates.IsEmpty() {
		return nil
	}
	return r.conn(ctx).Model(&db.Account{}).Where("username = ?", username).Updates(updates.ToMap()).Error
}

// GetAccountByUsername loads an account by exact username.
func (r *GormRepository) GetAccountByUsername(ctx context.Context, username string) (*db.Account, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	// case-insensitive collations (MySQL) may return near matches
	var candidates []db.Account
	if err := r.conn(ctx).Where("username = ?", username).Find(&candidates).Error; err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].Username == username {
			return &candidates[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// UsernameExists reports whether an account with exactly this username exists.
func (r *GormRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetAccountByUsername(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

// CountAccountsByRole returns the number of accounts holding role.
func (r *GormRepository) CountAccountsByRole(ctx context.Context, role string) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.conn(ctx).Model(&db.Account{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAccounts returns paginated accounts.
func (r *GormRepository) ListAccounts(ctx context.Context, params *dto.AccountQuery) ([]db.Account, *common.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.conn(ctx).Model(&db.Account{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.Role); trimmed != "" {
			query = query.Where("role = ?", trimmed)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var page, pageSize int64 = 1, 20
	order := "user_id ASC"
	if params != nil {
		if params.Page > 0 {
			page = params.Page
		}
		if params.PageSize > 0 && params.PageSize <= math.MaxInt32 {
			pageSize = params.PageSize
		}
		if params.SortDesc {
			order = "user_id DESC"
		}
	}

	meta := r.calculatePagination(total, page, pageSize)

	// 超出结果集的页直接返回空，先比较页号再相乘，避免 offset 溢出
	if page-1 >= (total+pageSize-1)/pageSize {
		return []db.Account{}, meta, nil
	}
	offset := (page - 1) * pageSize

	var accounts []db.Account
	if err := query.Order(order).Offset(int(offset)).Limit(int(pageSize)).Find(&accounts).Error; err != nil {
		return nil, nil, err
	}
	return accounts, meta, nil
}
