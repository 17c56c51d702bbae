package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ecogrocery/backend/internal/api"
	"github.com/ecogrocery/backend/internal/database"
	"github.com/ecogrocery/backend/internal/router"
	"github.com/ecogrocery/backend/internal/service"
)

const testSitePassword = "open sesame"

// setupTestRouter builds the full route tree against an in-memory sqlite
// database. No Redis, no S3, no LLM: handlers must degrade cleanly.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return setupRouterWithDB(t, db), db
}

// newTestDB opens a migrated in-memory sqlite database
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, ""))
	return db
}

// setupRouterWithDB wires handlers onto an existing database. Used when the
// test needs to seed rows before services warm their caches.
func setupRouterWithDB(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testSitePassword), bcrypt.MinCost)
	require.NoError(t, err)

	authService := service.NewAuthService("test-secret", string(hash))
	dishService := service.NewDishService(db)
	ingredientService := service.NewIngredientService(db, nil)
	groceryService := service.NewGroceryService(ingredientService)
	adviceService := service.NewStorageAdviceService(db, nil)

	return router.SetupRouter(router.Handlers{
		Auth:           api.NewAuthHandler(authService),
		Dish:           api.NewDishHandler(dishService, nil),
		Grocery:        api.NewGroceryHandler(groceryService, ingredientService),
		Pantry:         api.NewPantryHandler(adviceService),
		Health:         api.NewHealthHandler(db, nil),
		TokenValidator: authService,
	})
}

// loginForToken runs the login flow and returns a session token
func loginForToken(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", map[string]string{"password": testSitePassword}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, ok := resp["token"].(string)
	require.True(t, ok)
	return token
}

// doJSON performs a JSON request against the router
func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
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
