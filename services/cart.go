package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	db *gorm.DB
}

// AddToCart adds quantity of a product to the user's cart. The resulting line
// never exceeds the product's current stock; an existing line that would is
// left as it was.
func (s *CartService) AddToCart(ctx context.Context, user models.User, productID uint, quantity int) (models.CartItem, error) {
	var item models.CartItem
	var product models.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&product, productID).Error; err != nil {
			return notFound(err, "product")
		}

		if product.Stock <= 0 {
			return validationErrorf("Sorry, %s is out of stock.", product.Name)
		}
		if quantity <= 0 {
			return validationErrorf("Quantity must be at least 1.")
		}
		if quantity > product.Stock {
			return validationErrorf("Sorry, only %d left in stock.", product.Stock)
		}

		err := tx.Where("user_id = ? AND product_id = ?", user.ID, productID).First(&item).Error
		switch {
		case err == nil:
			if item.Quantity+quantity > product.Stock {
				return validationErrorf("Not enough stock: you already have %d in your cart and only %d are available.", item.Quantity, product.Stock)
			}
			item.Quantity += quantity
			return tx.Model(&item).Update("quantity", item.Quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{UserID: user.ID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		default:
			return fmt.Errorf("fetch cart item: %w", err)
		}
	})
	if err != nil {
		return models.CartItem{}, err
	}

	item.Product = product
	return item, nil
}

// RemoveFromCart deletes a cart line owned by user.
func (s *CartService) RemoveFromCart(ctx context.Context, user models.User, cartItemID uint) error {
	var item models.CartItem
	if err := s.db.WithContext(ctx).First(&item, cartItemID).Error; err != nil {
		return notFound(err, "cart item")
	}
	if item.UserID != user.ID {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Delete(&models.CartItem{}, item.ID).Error; err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// ViewCart returns the user's lines priced at the live product price.
func (s *CartService) ViewCart(ctx context.Context, user models.User) (models.Cart, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", user.ID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return models.Cart{}, fmt.Errorf("fetch cart: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return models.Cart{Items: items, Total: total}, nil
}
