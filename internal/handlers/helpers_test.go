package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pizzaria-dev/pizzaria/db"
	"github.com/pizzaria-dev/pizzaria/internal/auth"
	"github.com/pizzaria-dev/pizzaria/internal/config"
	"github.com/pizzaria-dev/pizzaria/internal/models"
	"github.com/pizzaria-dev/pizzaria/internal/router"
	"github.com/pizzaria-dev/pizzaria/internal/users"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "3000",
		SecretKey:          "test-secret-key-for-signing",
		Algorithm:          "HS256",
		AccessTokenExpire:  30 * time.Minute,
		RefreshTokenExpire: 7 * 24 * time.Hour,
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}))

	db.DB = database

	cfg := testConfig()
	return router.NewRouter(cfg), cfg
}

func createUser(t *testing.T, name, email string, admin bool) *models.User {
	t.Helper()

	user, err := users.NewStore(db.DB).Create(name, email, "supersecret", true, admin)
	require.NoError(t, err)
	return user
}

func tokenFor(t *testing.T, cfg *config.Config, userID uint) string {
	t.Helper()

	token, err := auth.NewTokenMaker(cfg).Issue(userID, cfg.AccessTokenExpire)
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
