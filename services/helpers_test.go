package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"sync"
	"testing"

	"github.com/Kariqs/decorshop-api/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var unsafeDSNChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// newTestDB opens a private in-memory database for the calling test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + unsafeDSNChars.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditEvent{},
	))
	return db
}

// memStore is an in-memory utils.FileStore.
type memStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (m *memStore) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.files[key] = data
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

func (m *memStore) URL(key string) string {
	return "/static/uploads/" + key
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok
}

var errStoreDown = errors.New("store unavailable")

type fixture struct {
	db    *gorm.DB
	files *memStore
	svc   *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	files := newMemStore()
	return &fixture{
		db:    db,
		files: files,
		svc:   New(Options{DB: db, Files: files, MaxUploadBytes: 1 << 20}),
	}
}

func (f *fixture) user(t *testing.T, username string) models.User {
	t.Helper()
	u, err := f.svc.Auth.Register(context.Background(), username, "secret")
	require.NoError(t, err)
	return u
}

func (f *fixture) admin(t *testing.T) models.User {
	t.Helper()
	u, _, err := f.svc.Auth.ProvisionAdmin(context.Background(), "admin", "admin-pass")
	require.NoError(t, err)
	return u
}

func (f *fixture) product(t *testing.T, name, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) stock(t *testing.T, productID uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, f.db.First(&p, productID).Error)
	return p.Stock
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

// pngImage returns a small encoded PNG.
func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
