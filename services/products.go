package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductImages holds optional uploads for slots 1..3, by index.
type ProductImages [models.ProductImageSlots]io.Reader

type ProductService struct {
	db        *gorm.DB
	files     utils.FileStore
	audit     *AuditService
	maxUpload int64
}

type productFields struct {
	name        string
	description string
	price       decimal.Decimal
	stock       int
}

func parseProductInput(in models.ProductInput) (productFields, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return productFields{}, validationErrorf("Product name is required.")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return productFields{}, validationErrorf("Invalid price %q.", in.Price)
	}
	if price.IsNegative() {
		return productFields{}, validationErrorf("Price must not be negative.")
	}
	if in.Stock < 0 {
		return productFields{}, validationErrorf("Stock must not be negative.")
	}
	return productFields{
		name:        name,
		description: in.Description,
		price:       price.Round(2),
		stock:       in.Stock,
	}, nil
}

func (s *ProductService) normalizeImages(images ProductImages) ([models.ProductImageSlots][]byte, error) {
	var out [models.ProductImageSlots][]byte
	for i, r := range images {
		if r == nil {
			continue
		}
		data, err := utils.NormalizeImage(r, s.maxUpload)
		if err != nil {
			return out, fmt.Errorf("image %d: %w", i+1, err)
		}
		out[i] = data
	}
	return out, nil
}

// storeImages writes the normalized slot images for product and records
// their URLs on it. Keys written are returned for cleanup on rollback.
func (s *ProductService) storeImages(ctx context.Context, product *models.Product, images [models.ProductImageSlots][]byte) ([]string, error) {
	var written []string
	for i, data := range images {
		if data == nil {
			continue
		}
		slot := i + 1
		key := utils.ProductImageKey(product.ID, slot)
		if err := s.files.Save(ctx, key, data); err != nil {
			return written, fmt.Errorf("store image %d: %w", slot, err)
		}
		written = append(written, key)
		product.SetImageURL(slot, s.files.URL(key))
	}
	return written, nil
}

func (s *ProductService) removeFiles(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.files.Remove(ctx, key); err != nil {
			log.Printf("Unable to remove %s: %v", key, err)
		}
	}
}

// Dashboard lists products for the admin landing page.
func (s *ProductService) Dashboard(ctx context.Context, actor models.User) ([]models.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, actor models.User, in models.ProductInput, images ProductImages) (models.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Product{}, err
	}
	fields, err := parseProductInput(in)
	if err != nil {
		return models.Product{}, err
	}
	normalized, err := s.normalizeImages(images)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Name:        fields.name,
		Description: fields.description,
		Price:       fields.price,
		Stock:       fields.stock,
	}
	var written []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		keys, err := s.storeImages(ctx, &product, normalized)
		written = keys
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return tx.Model(&product).Updates(map[string]any{
			"image_url":   product.ImageURL,
			"image_url_2": product.ImageURL2,
			"image_url_3": product.ImageURL3,
		}).Error
	})
	if err != nil {
		s.removeFiles(ctx, written)
		return models.Product{}, err
	}

	s.audit.record(ctx, actor.ID, models.AuditProductCreated, map[string]any{
		"productId": product.ID,
		"name":      product.Name,
	})
	return product, nil
}

// UpdateProduct overwrites the product fields; supplied images replace the
// file in their slot.
func (s *ProductService) UpdateProduct(ctx context.Context, actor models.User, id uint, in models.ProductInput, images ProductImages) (models.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Product{}, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return models.Product{}, notFound(err, "product")
	}
	fields, err := parseProductInput(in)
	if err != nil {
		return models.Product{}, err
	}
	normalized, err := s.normalizeImages(images)
	if err != nil {
		return models.Product{}, err
	}

	// Keys that already backed a slot are overwritten in place and not
	// restored if the update rolls back.
	previous := map[string]bool{}
	for i, url := range []string{product.ImageURL, product.ImageURL2, product.ImageURL3} {
		if url != "" {
			previous[utils.ProductImageKey(product.ID, i+1)] = true
		}
	}

	var written []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keys, err := s.storeImages(ctx, &product, normalized)
		written = keys
		if err != nil {
			return err
		}
		return tx.Model(&product).Updates(map[string]any{
			"name":        fields.name,
			"description": fields.description,
			"price":       fields.price,
			"stock":       fields.stock,
			"image_url":   product.ImageURL,
			"image_url_2": product.ImageURL2,
			"image_url_3": product.ImageURL3,
		}).Error
	})
	if err != nil {
		var fresh []string
		for _, key := range written {
			if !previous[key] {
				fresh = append(fresh, key)
			}
		}
		s.removeFiles(ctx, fresh)
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}

	s.audit.record(ctx, actor.ID, models.AuditProductUpdated, map[string]any{
		"productId": product.ID,
		"name":      fields.name,
	})
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return models.Product{}, notFound(err, "product")
	}
	return product, nil
}

// DeleteProduct removes the product together with every cart line and order
// item that references it, then its image files.
func (s *ProductService) DeleteProduct(ctx context.Context, actor models.User, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return notFound(err, "product")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	var keys []string
	for slot, url := range []string{product.ImageURL, product.ImageURL2, product.ImageURL3} {
		if url != "" {
			keys = append(keys, utils.ProductImageKey(product.ID, slot+1))
		}
	}
	s.removeFiles(ctx, keys)

	s.audit.record(ctx, actor.ID, models.AuditProductDeleted, map[string]any{
		"productId": product.ID,
		"name":      product.Name,
	})
	return nil
}
