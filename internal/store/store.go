package store

import (
	"context"
	"errors"

	"storefront/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("unique constraint violation")
)

// Store is the single data-access surface for both backends. Which physical
// engine serves a process is decided once in Open; callers never branch on it.
type Store interface {
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	// CreateAdminIfAbsent reports whether a row was actually inserted.
	// An existing username is a clean no-op, not an error.
	CreateAdminIfAbsent(ctx context.Context, username, passwordHash string) (bool, error)

	// GetAllProducts returns products newest first.
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	// CreateProduct fills the generated id and timestamps on the given row.
	CreateProduct(ctx context.Context, p *models.Product) error
	// UpdateProduct replaces every mutable field unconditionally and refreshes
	// updated_at. 0 affected rows means the id does not exist.
	UpdateProduct(ctx context.Context, p *models.Product) (int64, error)
	DeleteProduct(ctx context.Context, id int) (int64, error)
	UpdateProductQuantity(ctx context.Context, id int, quantity int64) (int64, error)

	Close() error
}
