package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Akshaypro1/wclapi/internal/middleware"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "wclapi-test-jwt-secret"

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB opens an isolated in-memory database with the full schema
// migrated. Every call returns a fresh database, so tests never share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.TruckDocument{},
		&entity.DeliveryOrder{},
		&entity.Company{},
		&entity.WCLCompany{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates a route group guarded by the session middleware
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid session token for an order
func GenerateTestToken(orderNo string, transporterID int) string {
	now := time.Now()
	claims := middleware.SessionClaims{
		OrderNo:       orderNo,
		TransporterID: transporterID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wclapi-test",
			Subject:   orderNo,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a session token for the default test order
func DefaultTestToken() string {
	return GenerateTestToken("ORD-1001", 7)
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedOrder creates a delivery order with its two companies
func SeedOrder(t *testing.T, db *gorm.DB, orderNo, passcode string, transporterID int) *entity.DeliveryOrder {
	t.Helper()

	company := &entity.Company{
		CompID:  101,
		Name:    "Shree Cement Works",
		Address: "Plot 14 MIDC",
		City:    "Nagpur",
		State:   "Maharashtra",
		Pincode: "440001",
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("Failed to seed company: %v", err)
	}

	wcl := &entity.WCLCompany{
		CompID:  201,
		Name:    "WCL Umrer Colliery",
		Address: "Umrer Mine Office",
		City:    "Umrer",
		State:   "Maharashtra",
		Pincode: "441203",
	}
	if err := db.Create(wcl).Error; err != nil {
		t.Fatalf("Failed to seed wcl company: %v", err)
	}

	order := &entity.DeliveryOrder{
		OrderNo:       orderNo,
		Passcode:      passcode,
		CompanyID:     company.CompID,
		TransportID:   transporterID,
		WCLCompID:     wcl.CompID,
		TotalQuantity: 500,
		Quantity:      35,
		Rate:          "2450.00",
		Grade:         "G9",
		LR:            "LR-88",
		Date:          time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

// SeedTruck creates a truck record directly, bypassing the permit route
func SeedTruck(t *testing.T, db *gorm.DB, rec *entity.TruckDocument) *entity.TruckDocument {
	t.Helper()
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("Failed to seed truck record: %v", err)
	}
	return rec
}

// UniqueOrderNo derives a unique order number per test
func UniqueOrderNo(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()%1000000)
}
