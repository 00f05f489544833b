package service

import (
	"accountstore/internal/auth"
	"accountstore/internal/entity/common"
	"accountstore/internal/entity/converter"
	"accountstore/internal/entity/db"
	"accountstore/internal/entity/dto"
	"accountstore/internal/model"
	"accountstore/internal/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const redactedSecret = "[redacted]"

// Options 账户服务配置
type Options struct {
	// AdminKeyLength is the length of the generated bootstrap admin secret.
	AdminKeyLength int
	// LogPlaintextSecrets enables the one-time disclosure of new secrets in the log.
	LogPlaintextSecrets bool
	// Now overrides the clock used for window checks.
	Now func() time.Time
}

// AccountService 账户存储：创建账户、校验凭据、修改密码与可用时间
//
// Every write runs in one database transaction and writers are serialised by mu.
// Reads go straight to the pool.
type AccountService struct {
	repo   model.Repository
	hasher *auth.Hasher
	logger logrus.FieldLogger
	opts   Options

	mu sync.Mutex
}

// NewAccountService 创建账户服务
func NewAccountService(repo model.Repository, hasher *auth.Hasher, logger logrus.FieldLogger, opts Options) *AccountService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.AdminKeyLength <= 0 {
		opts.AdminKeyLength = model.DefaultAdminKeyLength
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		logger: logger,
		opts:   opts,
	}
}

// Initialize creates the account table when missing and bootstraps a default admin
// when no account holds the admin role. Safe to call on every start.
func (s *AccountService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure account schema: %w", err)
	}

	username, secret, err := model.SeedDefaultAdmin(ctx, s.repo, s.hasher, s.opts.AdminKeyLength)
	if err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}
	if secret != "" {
		s.logger.WithFields(logrus.Fields{
			"username": username,
			"password": s.reveal(secret),
		}).Warn("no admin account found, created default admin; keep this username/password pair, the database cannot show it again")
	}
	return nil
}

// VerifyTime 返回 (end 晚于 start, 当前时间位于窗口内)
func (s *AccountService) VerifyTime(start, end string) (bool, bool, error) {
	ordered, active, err := utils.VerifyTime(start, end, s.opts.Now())
	if err != nil {
		return false, false, opError("account.VerifyTime", ErrFormat, "%v", err)
	}
	return ordered, active, nil
}

// IsWithinWindow reports whether account is usable right now.
func (s *AccountService) IsWithinWindow(account *db.Account) (bool, error) {
	if account == nil {
		return false, nil
	}
	_, active, err := s.VerifyTime(account.StartTime, account.EndTime)
	return active, err
}

// UsernameExists reports whether an account with exactly this username exists.
func (s *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

// CreateAccounts validates the whole batch, then inserts every account in the same
// transaction. Nothing is persisted when any entry fails.
func (s *AccountService) CreateAccounts(ctx context.Context, requests []dto.AccountRequest) ([]db.Account, error) {
	const op = "account.CreateAccounts"
	if len(requests) == 0 {
		return nil, opError(op, ErrInvalidInput, "empty batch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var created []db.Account
	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.validateBatch(ctx, op, requests); err != nil {
			return err
		}
		created = make([]db.Account, 0, len(requests))
		for _, req := range requests {
			account := db.Account{
				Username:  req.Username,
				Password:  s.hasher.Digest(req.Password),
				Role:      req.Role,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
			}
			if err := s.repo.CreateAccount(ctx, &account); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return opError(op, ErrDuplicateValue, "%s conflicts with an existing username", req.Username)
				}
				return fmt.Errorf("create account %q: %w", req.Username, err)
			}
			created = append(created, account)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, req := range requests {
		s.logger.WithFields(logrus.Fields{
			"user_id":    created[i].UserID,
			"username":   req.Username,
			"password":   s.reveal(req.Password),
			"role":       req.Role,
			"start_time": req.StartTime,
			"end_time":   req.EndTime,
		}).Warn("account created")
	}
	return created, nil
}

func (s *AccountService) validateBatch(ctx context.Context, op string, requests []dto.AccountRequest) error {
	seen := make(map[string]struct{}, len(requests))
	for _, req := range requests {
		if strings.TrimSpace(req.Username) == "" {
			return opError(op, ErrInvalidInput, "username must not be empty")
		}
		if strings.TrimSpace(req.Role) == "" {
			return opError(op, ErrInvalidInput, "%s: role must not be empty", req.Username)
		}

		if _, dup := seen[req.Username]; dup {
			return opError(op, ErrDuplicateValue, "%s appears more than once in the batch", req.Username)
		}
		seen[req.Username] = struct{}{}

		exists, err := s.repo.UsernameExists(ctx, req.Username)
		if err != nil {
			return fmt.Errorf("check username %q: %w", req.Username, err)
		}
		if exists {
			return opError(op, ErrDuplicateValue, "%s already in use", req.Username)
		}

		ordered, _, err := utils.VerifyTime(req.StartTime, req.EndTime, s.opts.Now())
		if err != nil {
			return opError(op, ErrFormat, "%s: %v", req.Username, err)
		}
		if !ordered {
			return opError(op, ErrTimeSet, "%s: end time %s is not after start time %s", req.Username, req.EndTime, req.StartTime)
		}
	}
	return nil
}

// GetBaseInfo returns the id, role and window of username.
func (s *AccountService) GetBaseInfo(ctx context.Context, username string) (dto.BaseInfo, error) {
	account, err := s.findAccount(ctx, "account.GetBaseInfo", username)
	if err != nil {
		return dto.BaseInfo{}, err
	}
	return converter.AccountToBaseInfo(account), nil
}

// VerifyAccount checks username and password. It returns ErrPassword when the account
// exists but the password does not match, and ErrAccount when there is no such account.
func (s *AccountService) VerifyAccount(ctx context.Context, username, password string) (*db.Account, error) {
	const op = "account.VerifyAccount"
	account, err := s.findAccount(ctx, op, username)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Matches(account.Password, password) {
		return nil, opError(op, ErrPassword, "%s's password is wrong", username)
	}
	return account, nil
}

// ChangePassword replaces the password of username after verifying oldPassword. A
// wrong password and an unknown account both return false with a nil error.
func (s *AccountService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.VerifyAccount(ctx, username, oldPassword); err != nil {
			if IsPassword(err) || IsAccount(err) {
				return nil
			}
			return err
		}
		digest := s.hasher.Digest(newPassword)
		if err := s.repo.UpdateAccount(ctx, username, db.AccountUpdates{Password: &digest}); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	entry := s.logger.WithField("username", username)
	if changed {
		entry.Info("password changed")
	} else {
		entry.Warn("password change refused")
	}
	return changed, nil
}

// UpdateAllowTime sets both ends of the validity window of username in one statement.
func (s *AccountService) UpdateAllowTime(ctx context.Context, username, startTime, endTime string) error {
	const op = "account.UpdateAllowTime"

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.UsernameExists(ctx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if !exists {
			return opError(op, ErrAccount, "%s does not exist", username)
		}

		ordered, _, err := utils.VerifyTime(startTime, endTime, s.opts.Now())
		if err != nil {
			return opError(op, ErrFormat, "%v", err)
		}
		if !ordered {
			return opError(op, ErrTimeSet, "end time %s is not after start time %s", endTime, startTime)
		}

		updates := db.AccountUpdates{StartTime: &startTime, EndTime: &endTime}
		if err := s.repo.UpdateAccount(ctx, username, updates); err != nil {
			return fmt.Errorf("update allow time: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"username":   username,
		"start_time": startTime,
		"end_time":   endTime,
	}).Info("allow time updated")
	return nil
}

// ListAccounts returns a page of accounts.
func (s *AccountService) ListAccounts(ctx context.Context, query *dto.AccountQuery) ([]db.Account, *common.Meta, error) {
	accounts, meta, err := s.repo.ListAccounts(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, meta, nil
}

func (s *AccountService) findAccount(ctx context.Context, op, username string) (*db.Account, error) {
	account, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opError(op, ErrAccount, "%s not found", username)
		}
		return nil, fmt.Errorf("load account %q: %w", username, err)
	}
	return account, nil
}

func (s *AccountService) reveal(secret string) string {
	if s.opts.LogPlaintextSecrets {
		return secret
	}
	return redactedSecret
}
