package service

import (
	"errors"

	"github.com/Akshaypro1/wclapi/internal/config"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrMissingField means a required identity or payload field was absent.
	// Rejected before any storage call.
	ErrMissingField = errors.New("missing required field")
)

// Services wires the truck document service layer.
type Services struct {
	Document *DocumentService
	Status   *StatusService
	Auth     *AuthService
	EwayBill *EwayBillService
	OCR      Recognizer
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	cache := NewStatusCache(rdb, cfg.Redis.CacheTTL)

	auth, err := NewAuthService(repos.Order, cfg.Auth, cfg.Database.QueryTimeout, logger)
	if err != nil {
		return nil, err
	}

	var ocr Recognizer
	if cfg.OCR.ServiceURL != "" {
		ocr = NewHTTPRecognizer(cfg.OCR.ServiceURL, cfg.OCR.Timeout)
	}

	return &Services{
		Document: NewDocumentService(repos.Truck, cache, cfg.Database.QueryTimeout, logger),
		Status:   NewStatusService(repos.Truck, cache, cfg.Database.QueryTimeout, logger),
		Auth:     auth,
		EwayBill: NewEwayBillService(rdb, cfg.EwayBill.ImagePath, cfg.EwayBill.CacheTTL),
		OCR:      ocr,
	}, nil
}
