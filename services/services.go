package services

import (
	"time"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultMaxUploadBytes = 5 << 20
	defaultSessionTTL     = 30 * 24 * time.Hour
)

type Options struct {
	DB             *gorm.DB
	Files          utils.FileStore
	Notifier       utils.Notifier
	MaxUploadBytes int64
	SessionTTL     time.Duration
}

// Services groups every domain service over one database handle.
type Services struct {
	Auth     *AuthService
	Catalog  *CatalogService
	Cart     *CartService
	Orders   *OrderService
	Products *ProductService
	Audit    *AuditService
}

func New(opts Options) *Services {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}

	audit := &AuditService{db: opts.DB}
	return &Services{
		Auth: &AuthService{
			db:         opts.DB,
			files:      opts.Files,
			maxUpload:  opts.MaxUploadBytes,
			sessionTTL: opts.SessionTTL,
			now:        time.Now,
		},
		Catalog: &CatalogService{db: opts.DB},
		Cart:    &CartService{db: opts.DB},
		Orders: &OrderService{
			db:        opts.DB,
			files:     opts.Files,
			notifier:  opts.Notifier,
			audit:     audit,
			maxUpload: opts.MaxUploadBytes,
		},
		Products: &ProductService{
			db:        opts.DB,
			files:     opts.Files,
			audit:     audit,
			maxUpload: opts.MaxUploadBytes,
		},
		Audit: audit,
	}
}

// requireAdmin re-checks the acting user's admin flag.
func requireAdmin(actor models.User) error {
	if actor.ID == 0 || !actor.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// lockForUpdate reads rows with SELECT ... FOR UPDATE. SQLite has no row
// locks; its single writer already serializes the transaction.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
