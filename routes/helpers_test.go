package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Kariqs/decorshop-api/controllers"
	"github.com/Kariqs/decorshop-api/middlewares"
	"github.com/Kariqs/decorshop-api/models"
	"github.com/Kariqs/decorshop-api/services"
	"github.com/Kariqs/decorshop-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

var unsafeDSNChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

type testApp struct {
	server    *gin.Engine
	db        *gorm.DB
	svc       *services.Services
	uploadDir string
}

func newTestApp(t *testing.T, maxUpload int64) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + unsafeDSNChars.ReplaceAllString(t.Name(), "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Session{}, &models.Product{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.AuditEvent{},
	))

	uploadDir := t.TempDir()
	svc := services.New(services.Options{
		DB:             db,
		Files:          utils.NewLocalStore(uploadDir, "/static/uploads"),
		MaxUploadBytes: maxUpload,
		SessionTTL:     time.Hour,
	})
	_, _, err = svc.Auth.ProvisionAdmin(context.Background(), "admin", "admin-pass")
	require.NoError(t, err)

	ctrl := &controllers.Controller{
		DB:            db,
		Services:      svc,
		SessionSecret: []byte(testSecret),
		SessionTTL:    time.Hour,
	}

	server := gin.New()
	server.Use(middlewares.LimitUploadSize(4 << 20))
	server.Use(middlewares.Authenticate(svc.Auth, ctrl.SessionSecret))
	StaticRoutes(server, "/static/uploads", uploadDir)
	SetupRoutes(server, ctrl)

	return &testApp{server: server, db: db, svc: svc, uploadDir: uploadDir}
}

func (a *testApp) do(t *testing.T, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.server.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req, cookie)
}

func (a *testApp) postMultipart(t *testing.T, path string, fields map[string]string, files map[string][]byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, data := range files {
		part, err := w.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(t, req, cookie)
}

// login returns the session cookie set by a successful login.
func (a *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := a.postForm(t, "/login", url.Values{"username": {username}, "password": {password}}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func (a *testApp) registerAndLogin(t *testing.T, username string) *http.Cookie {
	t.Helper()
	rec := a.postForm(t, "/register", url.Values{"username": {username}, "password": {"secret"}}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return a.login(t, username, "secret")
}

func (a *testApp) product(t *testing.T, name, price string, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, a.db.Create(&p).Error)
	return p
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.NRGBA{B: 180, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
