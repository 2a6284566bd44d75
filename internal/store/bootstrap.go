package store

import (
	"context"
	"fmt"

	"storefront/internal/hash"
	"storefront/internal/models"
)

// Migrate creates the admins and products tables if absent. Safe to run on
// every start.
func (s *GormStore) Migrate() error {
	if err := s.DB.AutoMigrate(&models.Admin{}, &models.Product{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedAdmin inserts the default administrator if no row with that username
// exists yet, and reports whether an insert happened. Idempotent across
// restarts.
func (s *GormStore) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}
	inserted, err := s.CreateAdminIfAbsent(ctx, username, pwHash)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return inserted, nil
}
