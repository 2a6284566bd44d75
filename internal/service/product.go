package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"storefront/internal/logging"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/upload"
)

var ErrValidation = errors.New("validation failed")

type ProductService struct {
	Store   store.Store
	Uploads *upload.Saver
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	Quantity    int64
	ImagePath   *string
}

func validateProduct(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(in.Description) == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case in.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	case in.Quantity < 0:
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	return nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.Store.GetAllProducts(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	return s.Store.GetProductByID(ctx, id)
}

// Create saves the image first, then the row. If the row write fails the
// written image copies are removed so no orphaned file survives.
func (s *ProductService) Create(ctx context.Context, in ProductInput, image *multipart.FileHeader) (*models.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	imagePath := in.ImagePath
	if image != nil {
		p, err := s.Uploads.SaveImage(image)
		if err != nil {
			return nil, err
		}
		imagePath = &p
	}

	prod := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImagePath:   imagePath,
	}
	if err := s.Store.CreateProduct(ctx, prod); err != nil {
		if image != nil && imagePath != nil {
			if rmErr := s.Uploads.Remove(*imagePath); rmErr != nil {
				logging.FromContext(ctx).Warn("orphan_image_cleanup_failed",
					"path", *imagePath, "error", rmErr)
			}
		}
		return nil, err
	}
	return prod, nil
}

// Update replaces every mutable field. A missing id surfaces as
// store.ErrNotFound, mapped from the zero affected-row count.
func (s *ProductService) Update(ctx context.Context, id int, in ProductInput) (*models.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	rows, err := s.Store.UpdateProduct(ctx, &models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImagePath:   in.ImagePath,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, store.ErrNotFound
	}
	return s.Store.GetProductByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	rows, err := s.Store.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ProductService) AdjustQuantity(ctx context.Context, id int, quantity int64) (*models.Product, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}

	rows, err := s.Store.UpdateProductQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, store.ErrNotFound
	}
	return s.Store.GetProductByID(ctx, id)
}
