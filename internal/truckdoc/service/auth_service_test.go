package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Akshaypro1/wclapi/internal/config"
	"github.com/Akshaypro1/wclapi/internal/middleware"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/testutil"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testAESKey = make([]byte, 32)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AESKey:    base64.StdEncoding.EncodeToString(testAESKey),
		JWTSecret: "auth-test-secret",
		Issuer:    "wclapi-test",
	}
}

// encryptCredentials mirrors the driver app's envelope: AES-256-CBC with a
// random IV, PKCS7 padding, base64(iv) ":" base64(ciphertext).
func encryptCredentials(t *testing.T, orderNo, passcode string) string {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"Orderid":  orderNo,
		"Passcode": passcode,
	})

	pad := aes.BlockSize - len(payload)%aes.BlockSize
	for i := 0; i < pad; i++ {
		payload = append(payload, byte(pad))
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		t.Fatalf("iv: %v", err)
	}

	block, err := aes.NewCipher(testAESKey)
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	ciphertext := make([]byte, len(payload))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, payload)

	return base64.StdEncoding.EncodeToString(iv) + ":" + base64.StdEncoding.EncodeToString(ciphertext)
}

func setupAuthTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc, err := NewAuthService(repository.NewOrderRepository(db), testAuthConfig(), 0, zap.NewNop())
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	return svc, db
}

func TestAuthenticateResolvesOrder(t *testing.T) {
	svc, db := setupAuthTest(t)
	testutil.SeedOrder(t, db, "ORD-1001", "pass123", 7)

	order, token, err := svc.Authenticate(context.Background(), encryptCredentials(t, "ORD-1001", "pass123"))
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	if order.OrderNo != "ORD-1001" {
		t.Errorf("order no mismatch: %s", order.OrderNo)
	}
	if order.FromCompany.Name != "WCL Umrer Colliery" {
		t.Errorf("from company mismatch: %s", order.FromCompany.Name)
	}
	if order.ToCompany.Address == "" {
		t.Error("to company address missing")
	}
	if order.Date != "12/06/2025 10:30" {
		t.Errorf("date format mismatch: %s", order.Date)
	}

	claims := &middleware.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("auth-test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("session token invalid: %v", err)
	}
	if claims.OrderNo != "ORD-1001" || claims.TransporterID != 7 {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestAuthenticateWrongPasscode(t *testing.T) {
	svc, db := setupAuthTest(t)
	testutil.SeedOrder(t, db, "ORD-1001", "pass123", 7)

	_, _, err := svc.Authenticate(context.Background(), encryptCredentials(t, "ORD-1001", "wrong"))
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestAuthenticateUnknownOrder(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, _, err := svc.Authenticate(context.Background(), encryptCredentials(t, "ORD-NOPE", "pass123"))
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _ := setupAuthTest(t)

	for _, input := range []string{
		"",
		"no-colon-here",
		"!!!:???",
		base64.StdEncoding.EncodeToString([]byte("shortiv")) + ":" + base64.StdEncoding.EncodeToString([]byte("0123456789abcdef")),
	} {
		if _, _, err := svc.Authenticate(context.Background(), input); !errors.Is(err, ErrAuthFailed) {
			t.Errorf("input %q: expected ErrAuthFailed, got %v", input, err)
		}
	}
}

func TestNewAuthServiceValidatesKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	orders := repository.NewOrderRepository(db)

	cfg := testAuthConfig()
	cfg.AESKey = base64.StdEncoding.EncodeToString([]byte("too short"))
	if _, err := NewAuthService(orders, cfg, 0, zap.NewNop()); err == nil {
		t.Error("expected error for short key")
	}

	cfg = testAuthConfig()
	cfg.JWTSecret = ""
	if _, err := NewAuthService(orders, cfg, 0, zap.NewNop()); err == nil {
		t.Error("expected error for missing jwt secret")
	}
}
