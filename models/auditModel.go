package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditAccessDenied       = "access_denied"
	AuditProductCreated     = "product_created"
	AuditProductUpdated     = "product_updated"
	AuditProductDeleted     = "product_deleted"
	AuditOrderStatusUpdated = "order_status_updated"
)

type AuditEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userId" gorm:"index"`
	Action    string         `json:"action" gorm:"type:varchar(64);index;not null"`
	Details   datatypes.JSON `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}
