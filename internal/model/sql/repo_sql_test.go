package sql

import (
	"accountstore/internal/entity/common"
	"accountstore/internal/entity/db"
	"accountstore/internal/entity/dto"
	"context"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormRepository {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "account.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := NewGormRepository(gdb)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func seedAccounts(t *testing.T, repo *GormRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.CreateAccount(context.Background(), &db.Account{
			Username:  fmt.Sprintf("u%d", i),
			Password:  "digest",
			Role:      "member",
			StartTime: "2023-01-01 00:00:00",
			EndTime:   "2030-01-01 00:00:00",
		}))
	}
}

func TestListAccountsPageBeyondResults(t *testing.T) {
	repo := newTestRepo(t)
	seedAccounts(t, repo, 5)
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int64
		pageSize int64
		want     int
	}{
		{"first page", 1, 2, 2},
		{"last partial page", 3, 2, 1},
		{"just past the end", 4, 2, 0},
		{"huge page", math.MaxInt64, 100, 0},
		{"huge page and size", math.MaxInt64, math.MaxInt64, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := &dto.AccountQuery{BaseParams: common.BaseParams{Page: tt.page, PageSize: tt.pageSize}}
			accounts, meta, err := repo.ListAccounts(ctx, query)
			require.NoError(t, err)
			assert.Len(t, accounts, tt.want)
			assert.EqualValues(t, 5, meta.Total)
			assert.Equal(t, tt.page, meta.Page)
		})
	}
}

func TestMigratorTableOptions(t *testing.T) {
	repo := newTestRepo(t)
	_, ok := migrator(repo.db).Get("gorm:table_options")
	assert.False(t, ok, "sqlite tables need no extra options")

	mysqlDB, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:1)/account",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	options, ok := migrator(mysqlDB).Get("gorm:table_options")
	require.True(t, ok)
	assert.Equal(t, mysqlTableOptions, options)
}

func TestListAccountsSortDesc(t *testing.T) {
	repo := newTestRepo(t)
	seedAccounts(t, repo, 3)
	ctx := context.Background()

	accounts, _, err := repo.ListAccounts(ctx, &dto.AccountQuery{BaseParams: common.BaseParams{SortDesc: true}})
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "u2", accounts[0].Username)
	assert.Equal(t, "u0", accounts[2].Username)

	accounts, _, err = repo.ListAccounts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "u0", accounts[0].Username)
}
