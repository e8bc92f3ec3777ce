package initializers

import (
	"context"
	"fmt"
	"log"

	"github.com/Kariqs/decorshop-api/services"
)

// ProvisionAdmin makes sure the configured admin account exists.
func ProvisionAdmin(ctx context.Context, auth *services.AuthService, cfg *Config) error {
	admin, created, err := auth.ProvisionAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("provision admin: %w", err)
	}
	if created {
		log.Printf("Created admin account %q.", admin.Username)
	}
	return nil
}
