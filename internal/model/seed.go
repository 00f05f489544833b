package model

import (
	"accountstore/internal/auth"
	"accountstore/internal/entity/db"
	"context"
	"fmt"
)

const (
	DefaultAdminUsername  = "admin"
	DefaultAdminStartTime = "2023-01-01 00:00:00"
	DefaultAdminEndTime   = "2030-01-01 00:00:00"
	DefaultAdminKeyLength = 15
)

// SeedDefaultAdmin ensures an account with role admin exists. When it creates one it
// returns the username and generated plaintext secret; both are "" when an admin
// already existed.
func SeedDefaultAdmin(ctx context.Context, repo Repository, hasher *auth.Hasher, keyLength int) (string, string, error) {
	if repo == nil || hasher == nil {
		return "", "", fmt.Errorf("seed dependencies not initialised")
	}
	if keyLength <= 0 {
		keyLength = DefaultAdminKeyLength
	}

	var username, secret string
	err := repo.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := repo.CountAccountsByRole(ctx, db.RoleAdmin)
		if err != nil {
			return fmt.Errorf("count admin accounts: %w", err)
		}
		if count > 0 {
			return nil
		}

		key, err := auth.GenerateKey(keyLength)
		if err != nil {
			return fmt.Errorf("generate admin key: %w", err)
		}
		name, err := freeAdminUsername(ctx, repo)
		if err != nil {
			return err
		}
		admin := &db.Account{
			Username:  name,
			Password:  hasher.Digest(key),
			Role:      db.RoleAdmin,
			StartTime: DefaultAdminStartTime,
			EndTime:   DefaultAdminEndTime,
		}
		if err := repo.CreateAccount(ctx, admin); err != nil {
			return fmt.Errorf("create admin account: %w", err)
		}
		username, secret = name, key
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return username, secret, nil
}

// freeAdminUsername picks "admin", or "admin1", "admin2"... when a non-admin account
// already holds the name.
func freeAdminUsername(ctx context.Context, repo Repository) (string, error) {
	candidate := DefaultAdminUsername
	for i := 1; ; i++ {
		exists, err := repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check admin username: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", DefaultAdminUsername, i)
	}
}
