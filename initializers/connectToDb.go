package initializers

import (
	"fmt"
	"log"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		if dsn == "" {
			dsn = "decorshop.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

func ConnectToDB(cfg *Config) error {
	d, err := dialector(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	db, err := gorm.Open(d, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	DB = db
	log.Printf("Connected to %s database.", cfg.DBDriver)
	return nil
}

// Ping reports whether the database answers.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// tables lists every model in dependency order.
var tables = []any{
	&models.User{},
	&models.Session{},
	&models.Product{},
	&models.CartItem{},
	&models.Order{},
	&models.OrderItem{},
	&models.AuditEvent{},
}
