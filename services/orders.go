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

type OrderService struct {
	db        *gorm.DB
	files     utils.FileStore
	notifier  utils.Notifier
	audit     *AuditService
	maxUpload int64
}

// Checkout turns the user's cart into an order. Prices are read once and
// frozen into PriceAtBooking; stock is decremented and floored at zero, so a
// line that outgrew the stock still goes through. The order, its items, the
// stock changes and the cart deletion commit together or not at all.
func (s *OrderService) Checkout(ctx context.Context, user models.User, address string, slip io.Reader) (models.Order, error) {
	var lineCount int64
	if err := s.db.WithContext(ctx).Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&lineCount).Error; err != nil {
		return models.Order{}, fmt.Errorf("count cart items: %w", err)
	}
	if lineCount == 0 {
		return models.Order{}, validationErrorf("Your cart is empty.")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return models.Order{}, validationErrorf("Please enter a shipping address.")
	}

	var slipData []byte
	if slip != nil {
		data, err := utils.NormalizeImage(slip, s.maxUpload)
		if err != nil {
			return models.Order{}, err
		}
		slipData = data
	}

	var order models.Order
	var slipKey string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Where("user_id = ?", user.ID).Order("product_id").Find(&lines).Error; err != nil {
			return fmt.Errorf("fetch cart: %w", err)
		}
		if len(lines) == 0 {
			return validationErrorf("Your cart is empty.")
		}

		ids := make([]uint, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ProductID)
		}

		var rows []models.Product
		if err := lockForUpdate(tx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		products := make(map[uint]models.Product, len(rows))
		for _, p := range rows {
			products[p.ID] = p
		}

		total := decimal.Zero
		for _, line := range lines {
			p, ok := products[line.ProductID]
			if !ok {
				return fmt.Errorf("product %d: %w", line.ProductID, ErrNotFound)
			}
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order = models.Order{
			UserID:     user.ID,
			TotalPrice: total,
			Status:     models.OrderStatusPreparing,
			Address:    address,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if slipData != nil {
			key := utils.SlipKey(order.ID)
			if err := s.files.Save(ctx, key, slipData); err != nil {
				return fmt.Errorf("store payment slip: %w", err)
			}
			slipKey = key
			order.PaymentSlip = s.files.URL(key)
			if err := tx.Model(&order).Update("payment_slip", order.PaymentSlip).Error; err != nil {
				return fmt.Errorf("attach payment slip: %w", err)
			}
		}

		for _, line := range lines {
			p := products[line.ProductID]
			item := models.OrderItem{
				OrderID:        order.ID,
				ProductID:      p.ID,
				Quantity:       line.Quantity,
				PriceAtBooking: p.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			stock := max(0, p.Stock-line.Quantity)
			if err := tx.Model(&models.Product{}).Where("id = ?", p.ID).Update("stock", stock).Error; err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}

			if err := tx.Delete(&models.CartItem{}, line.ID).Error; err != nil {
				return fmt.Errorf("delete cart item: %w", err)
			}

			item.Product = p
			item.Product.Stock = stock
			order.OrderItems = append(order.OrderItems, item)
		}
		return nil
	})
	if err != nil {
		if slipKey != "" {
			if rmErr := s.files.Remove(ctx, slipKey); rmErr != nil {
				log.Printf("Checkout rolled back but slip %s could not be removed: %v", slipKey, rmErr)
			}
		}
		if IsValidation(err) {
			return models.Order{}, err
		}
		return models.Order{}, fmt.Errorf("checkout: %w", err)
	}

	s.notify(ctx, utils.EventOrderPlaced, order)
	return order, nil
}

func (s *OrderService) notify(ctx context.Context, event string, order models.Order) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.NotifyOrder(ctx, utils.OrderEvent{
		Event:   event,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  string(order.Status),
		Total:   order.TotalPrice.StringFixed(2),
	})
	if err != nil {
		log.Printf("Order %d: %v", order.ID, err)
	}
}

func (s *OrderService) listOrders(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.WithContext(ctx).Preload("OrderItems.Product")
	if scope != nil {
		query = scope(query)
	}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return orders, nil
}

// ListMyOrders returns the user's orders, newest first.
func (s *OrderService) ListMyOrders(ctx context.Context, user models.User) ([]models.Order, error) {
	return s.listOrders(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", user.ID)
	})
}

// ListAllOrders returns every order with its customer, newest first.
func (s *OrderService) ListAllOrders(ctx context.Context, actor models.User) ([]models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.listOrders(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Preload("User")
	})
}

// GetOrder returns one order to its owner or to an admin.
func (s *OrderService) GetOrder(ctx context.Context, user models.User, orderID uint) (models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("OrderItems.Product").First(&order, orderID).Error; err != nil {
		return models.Order{}, notFound(err, "order")
	}
	if order.UserID != user.ID && !user.IsAdmin {
		return models.Order{}, ErrForbidden
	}
	return order, nil
}

// UpdateOrderStatus sets any of the fixed statuses, in any direction.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actor models.User, orderID uint, status string) (models.Order, error) {
	if err := requireAdmin(actor); err != nil {
		return models.Order{}, err
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		return models.Order{}, notFound(err, "order")
	}

	newStatus, ok := models.ParseOrderStatus(status)
	if !ok {
		return models.Order{}, validationErrorf("Invalid order status %q.", status)
	}

	previous := order.Status
	if err := s.db.WithContext(ctx).Model(&order).Update("status", newStatus).Error; err != nil {
		return models.Order{}, fmt.Errorf("update order status: %w", err)
	}
	order.Status = newStatus

	s.audit.record(ctx, actor.ID, models.AuditOrderStatusUpdated, map[string]any{
		"orderId": order.ID,
		"from":    previous,
		"to":      newStatus,
	})
	s.notify(ctx, utils.EventOrderStatusChanged, order)
	return order, nil
}

// ExportOrders writes every order as an XLSX workbook.
func (s *OrderService) ExportOrders(ctx context.Context, actor models.User, w io.Writer) error {
	orders, err := s.ListAllOrders(ctx, actor)
	if err != nil {
		return err
	}
	if err := utils.WriteOrdersXLSX(w, orders); err != nil {
		return fmt.Errorf("export orders: %w", err)
	}
	return nil
}
