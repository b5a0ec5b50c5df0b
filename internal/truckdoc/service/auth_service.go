package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Akshaypro1/wclapi/internal/config"
	"github.com/Akshaypro1/wclapi/internal/middleware"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrAuthFailed covers undecryptable payloads and credential mismatches.
// Callers report it without distinguishing the two cases.
var ErrAuthFailed = errors.New("authentication failed")

// credentials is the decrypted authentication payload sent by the driver app.
type credentials struct {
	OrderID  string `json:"Orderid"`
	Passcode string `json:"Passcode"`
}

// CompanyInfo is one side of the order display, either the dispatching or
// the receiving company.
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// DisplayedOrder is the order summary shown to the driver after login.
type DisplayedOrder struct {
	OrderNo       string      `json:"orderno"`
	CompanyID     int         `json:"CompanyId"`
	TransportID   int         `json:"TransportId"`
	TotalQuantity int         `json:"Total_quantity"`
	Quantity      int         `json:"Quantity"`
	Rate          string      `json:"Rate"`
	Grade         string      `json:"Grade"`
	Date          string      `json:"Date"`
	LR            string      `json:"LR"`
	FromCompany   CompanyInfo `json:"FromCompany"`
	ToCompany     CompanyInfo `json:"ToCompany"`
}

// AuthService resolves encrypted driver credentials against the order book
// and mints session tokens.
type AuthService struct {
	orders    *repository.OrderRepository
	aesKey    []byte
	jwtSecret []byte
	tokenTTL  time.Duration
	issuer    string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewAuthService(orders *repository.OrderRepository, cfg config.AuthConfig, timeout time.Duration, logger *zap.Logger) (*AuthService, error) {
	key, err := base64.StdEncoding.DecodeString(cfg.AESKey)
	if err != nil {
		return nil, fmt.Errorf("invalid aes key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("aes key must be 32 bytes, got %d", len(key))
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		orders:    orders,
		aesKey:    key,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  ttl,
		issuer:    cfg.Issuer,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Authenticate decrypts the credential blob, resolves the order with its
// companies and returns the display payload plus a session token. Every
// failure mode maps to ErrAuthFailed so callers leak nothing about which
// step rejected the attempt.
func (s *AuthService) Authenticate(ctx context.Context, encrypted string) (*DisplayedOrder, string, error) {
	plain, err := s.decrypt(encrypted)
	if err != nil {
		s.logger.Warn("credential decrypt failed", zap.Error(err))
		return nil, "", ErrAuthFailed
	}

	var creds credentials
	if err := json.Unmarshal(plain, &creds); err != nil {
		return nil, "", ErrAuthFailed
	}
	if creds.OrderID == "" || creds.Passcode == "" {
		return nil, "", ErrAuthFailed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	order, err := s.orders.FindByCredentials(ctx, creds.OrderID, creds.Passcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrAuthFailed
		}
		return nil, "", err
	}

	company, wcl, err := s.orders.Companies(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrAuthFailed
		}
		return nil, "", err
	}

	token, err := s.mintToken(order)
	if err != nil {
		return nil, "", err
	}

	return displayOrder(order, company, wcl), token, nil
}

// decrypt undoes the driver app's AES-256-CBC envelope. The wire format is
// base64(iv) ":" base64(ciphertext), PKCS7 padded.
func (s *AuthService) decrypt(encrypted string) ([]byte, error) {
	parts := strings.SplitN(encrypted, ":", 2)
	if len(parts) != 2 {
		return nil, errors.New("malformed credential envelope")
	}
	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, errors.New("bad iv length")
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("bad ciphertext length")
	}

	block, err := aes.NewCipher(s.aesKey)
	if err != nil {
		return nil, err
	}
	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	return pkcs7Unpad(plain)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty plaintext")
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(data) {
		return nil, errors.New("bad padding")
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, errors.New("bad padding")
		}
	}
	return data[:len(data)-pad], nil
}

func (s *AuthService) mintToken(order *entity.DeliveryOrder) (string, error) {
	now := time.Now()
	claims := middleware.SessionClaims{
		OrderNo:       order.OrderNo,
		TransporterID: order.TransportID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   order.OrderNo,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func displayOrder(order *entity.DeliveryOrder, company *entity.Company, wcl *entity.WCLCompany) *DisplayedOrder {
	return &DisplayedOrder{
		OrderNo:       order.OrderNo,
		CompanyID:     order.CompanyID,
		TransportID:   order.TransportID,
		TotalQuantity: order.TotalQuantity,
		Quantity:      order.Quantity,
		Rate:          order.Rate,
		Grade:         order.Grade,
		Date:          order.Date.Format("02/01/2006 15:04"),
		LR:            order.LR,
		FromCompany: CompanyInfo{
			Name:    wcl.Name,
			Address: wcl.FullAddress(),
		},
		ToCompany: CompanyInfo{
			Name:    company.Name,
			Address: company.FullAddress(),
		},
	}
}
