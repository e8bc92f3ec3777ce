package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusPickedUp  OrderStatus = "picked-up"
	OrderStatusInTransit OrderStatus = "in-transit"
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every valid status in workflow order.
var OrderStatuses = []OrderStatus{
	OrderStatusPreparing,
	OrderStatusPickedUp,
	OrderStatusInTransit,
	OrderStatusDelivered,
}

// ParseOrderStatus reports whether s names one of the fixed statuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

type Order struct {
	gorm.Model
	UserID      uint            `json:"userId" gorm:"index;not null"`
	User        *User           `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	TotalPrice  decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(50);default:'preparing';not null"`
	PaymentSlip string          `json:"paymentSlip" gorm:"type:varchar(300)"`
	Address     string          `json:"address" gorm:"type:text;not null"`
	OrderItems  []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	OrderID        uint            `json:"orderId" gorm:"index;not null"`
	ProductID      uint            `json:"productId" gorm:"index;not null"`
	Product        Product         `json:"product" gorm:"constraint:OnDelete:CASCADE"`
	Quantity       int             `json:"quantity" gorm:"not null"`
	PriceAtBooking decimal.Decimal `json:"priceAtBooking" gorm:"type:decimal(10,2);not null"`
}

// Subtotal is the booked price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtBooking.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
