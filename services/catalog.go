package services

import (
	"context"
	"fmt"

	"github.com/Kariqs/decorshop-api/models"
	"gorm.io/gorm"
)

type CatalogService struct {
	db *gorm.DB
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return models.Product{}, notFound(err, "product")
	}
	return product, nil
}
