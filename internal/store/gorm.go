package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/models"
)

type GormStore struct {
	DB *gorm.DB
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

func (s *GormStore) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *GormStore) CreateAdminIfAbsent(ctx context.Context, username, passwordHash string) (bool, error) {
	admin := models.Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}
	tx := s.DB.WithContext(ctx).Where("username = ?", username).FirstOrCreate(&admin)
	if tx.Error != nil {
		return false, translate(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (s *GormStore) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *GormStore) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(s.DB.WithContext(ctx).Create(p).Error)
}

func (s *GormStore) UpdateProduct(ctx context.Context, p *models.Product) (int64, error) {
	// Column map instead of Updates(struct): zero values and a nil image
	// path must overwrite, this is a full replace, not a patch.
	res := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"quantity":    p.Quantity,
			"image_path":  p.ImagePath,
		})
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id int) (int64, error) {
	res := s.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) UpdateProductQuantity(ctx context.Context, id int, quantity int64) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
