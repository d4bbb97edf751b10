// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papertrail/storefront/internal"
	"github.com/papertrail/storefront/internal/auth"
	"github.com/papertrail/storefront/internal/repository"
)

// EnsureAdminUser creates the initial admin account if it does not
// exist. Idempotent; safe to call on every startup.
//
// When the config carries no admin email, creation is skipped with a
// warning so development setups can run without one.
func EnsureAdminUser(ctx context.Context, store repository.Store, cfg internal.AdminConfig, logger *slog.Logger) error {
	if cfg.Email == "" {
		logger.Warn("bootstrap: skipping admin creation, PAPERTRAIL_ADMIN_EMAIL not set",
			"hint", "set PAPERTRAIL_ADMIN_EMAIL and PAPERTRAIL_ADMIN_PASSWORD to create an admin on first startup",
		)
		return nil
	}

	existing, err := store.GetUserByEmail(ctx, cfg.Email)
	if err == nil {
		if !existing.IsAdmin {
			return fmt.Errorf("bootstrap: account %s exists but is not an admin", cfg.Email)
		}
		logger.Info("bootstrap: admin user already exists", "email", cfg.Email)
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("bootstrap: checking for existing admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("bootstrap: hashing admin password: %w", err)
	}

	fullName := cfg.FullName
	if fullName == "" {
		fullName = "Store Admin"
	}

	user, err := store.CreateUser(ctx, repository.CreateUserParams{
		Email:        cfg.Email,
		PasswordHash: hash,
		FullName:     fullName,
		IsAdmin:      true,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			logger.Info("bootstrap: admin user already exists (concurrent creation)", "email", cfg.Email)
			return nil
		}
		return fmt.Errorf("bootstrap: creating admin user: %w", err)
	}

	logger.Info("bootstrap: admin user created", "email", cfg.Email, "user_id", user.ID)
	return nil
}
