package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Kariqs/decorshop-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func (s *AuditService) Record(ctx context.Context, userID uint, action string, details map[string]any) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}

	event := models.AuditEvent{
		UserID:  userID,
		Action:  action,
		Details: datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

// record logs instead of failing: the audited operation already succeeded.
func (s *AuditService) record(ctx context.Context, userID uint, action string, details map[string]any) {
	if err := s.Record(ctx, userID, action, details); err != nil {
		log.Println("Audit error:", err)
	}
}

// List returns the newest audit events first.
func (s *AuditService) List(ctx context.Context, actor models.User, limit int) ([]models.AuditEvent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var events []models.AuditEvent
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("fetch audit events: %w", err)
	}
	return events, nil
}
