package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Kariqs/decorshop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCheckoutRollsBackOnMySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `cart_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}).AddRow(1, 7, 3, 2))
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock"}).AddRow(3, "Lamp", "100.00", 5))
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	files := newMemStore()
	svc := New(Options{DB: db, Files: files})
	user := models.User{}
	user.ID = 7

	_, err = svc.Orders.Checkout(context.Background(), user, "123 Main St", bytes.NewReader(pngImage(t)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
	assert.Empty(t, files.files)

	assert.NoError(t, mock.ExpectationsWereMet())
}
