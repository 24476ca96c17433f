package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NguyenTrongThuan612/restaurant-management/models"
	"github.com/NguyenTrongThuan612/restaurant-management/routes"
	"github.com/NguyenTrongThuan612/restaurant-management/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Dish{},
		&models.Combo{},
		&models.ComboDish{},
		&models.DiningTable{},
		&models.DailyQuantity{},
		&models.Order{},
		&models.OrderItem{},
		&models.Bill{},
	))
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return routes.SetupRouter(db, nil, log)
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) (*models.User, string) {
	t.Helper()

	hashed, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	user := models.User{
		FullName: "Test " + role,
		Email:    email,
		Password: hashed,
		Status:   models.UserStatusActivated,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.CreateToken(user.ID, user.Role)
	require.NoError(t, err)
	return &user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func createTestDish(t *testing.T, db *gorm.DB, name string, price float64) *models.Dish {
	t.Helper()
	dish := models.Dish{Name: name, Price: price, Status: models.DishStatusSelling}
	require.NoError(t, db.Create(&dish).Error)
	return &dish
}

func createTestTable(t *testing.T, db *gorm.DB, code string) *models.DiningTable {
	t.Helper()
	table := models.DiningTable{Code: code, NumberOfSeats: 4}
	require.NoError(t, db.Create(&table).Error)
	return &table
}

// createTestCombo builds a combo worth 80000: one dish at 40000 plus two at
// 25000 each, minus a 10000 discount.
func createTestCombo(t *testing.T, db *gorm.DB) *models.Combo {
	t.Helper()

	combo := models.Combo{Name: "Family set", Discount: 10000}
	require.NoError(t, db.Create(&combo).Error)

	main := createTestDish(t, db, "Grilled pork", 40000)
	side := createTestDish(t, db, "Spring rolls", 25000)
	require.NoError(t, db.Create(&models.ComboDish{ComboID: combo.ID, DishID: main.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.ComboDish{ComboID: combo.ID, DishID: side.ID, Quantity: 2}).Error)
	return &combo
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
