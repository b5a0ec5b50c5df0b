package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Akshaypro1/wclapi/internal/shared/artifact"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PermitDetails carries the permit metadata attached after the scan upload.
type PermitDetails struct {
	PermitNo    string
	TransportNo string
	NetWeight   *float64
}

// LorryData carries the transport receipt metadata.
type LorryData struct {
	LRNo        string
	LRReceiptNo string
	Date        string
	Grade       string
	NetWeight   *float64
}

// ChallanData carries the weighbridge challan metadata.
type ChallanData struct {
	ChallanNo      string
	GrossQty       *float64
	TareQty        *float64
	NetQty         *float64
	DOQty          *float64
	BalanceQty     *float64
	ProgressiveQty *float64
	BasePrice      *float64
}

// DocumentService handles stage document submissions and corrections
// against truck records.
type DocumentService struct {
	trucks  *repository.TruckRepository
	cache   *StatusCache
	timeout time.Duration
	logger  *zap.Logger
}

func NewDocumentService(trucks *repository.TruckRepository, cache *StatusCache, timeout time.Duration, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		trucks:  trucks,
		cache:   cache,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *DocumentService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// SubmitPermit stores the permit scan for the truck, creating the record on
// first submission and replacing the scan on resubmission. Returns the
// record id.
func (s *DocumentService) SubmitPermit(ctx context.Context, key entity.TruckKey, image string) (uint, error) {
	if key.OrderID == "" || key.TempTruckNo == "" {
		return 0, ErrMissingField
	}
	data, err := artifact.Decode(image)
	if err != nil {
		return 0, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rec := &entity.TruckDocument{
		OrderID:          key.OrderID,
		TempTruckNo:      key.TempTruckNo,
		TransporterID:    key.TransporterID,
		PermitReceipt:    data,
		IsPermitUploaded: true,
	}
	if err := s.trucks.UpsertPermit(ctx, rec); err != nil {
		s.logger.Error("permit upsert failed",
			zap.String("order_id", key.OrderID),
			zap.String("temp_truck_no", key.TempTruckNo),
			zap.Error(err))
		return 0, err
	}
	s.cache.Invalidate(ctx, key)
	return rec.ID, nil
}

// SubmitLorryReceipt stores the transport receipt scan. The truck record
// must already exist from the permit stage.
func (s *DocumentService) SubmitLorryReceipt(ctx context.Context, key entity.TruckKey, image string) error {
	data, err := artifact.Decode(image)
	if err != nil {
		return err
	}
	// the stage flag flips in this statement, so the conjunction reads the
	// remaining three
	return s.updateStage(ctx, key, map[string]interface{}{
		"lorry_receipt":     data,
		"is_lorry_uploaded": true,
		"all_uploaded":      gorm.Expr("is_permit_uploaded AND is_challan_uploaded AND is_factory_uploaded"),
	})
}

// SubmitChallan stores the weighbridge challan scan.
func (s *DocumentService) SubmitChallan(ctx context.Context, key entity.TruckKey, image string) error {
	data, err := artifact.Decode(image)
	if err != nil {
		return err
	}
	return s.updateStage(ctx, key, map[string]interface{}{
		"wcl_challan":         data,
		"is_challan_uploaded": true,
		"all_uploaded":        gorm.Expr("is_permit_uploaded AND is_lorry_uploaded AND is_factory_uploaded"),
	})
}

// SubmitFactoryReceipt stores the factory gate scan. The front image is
// mandatory, the back optional. Stages may land in any order, so every
// stage write rederives all_uploaded from the other three flags; the record
// reaches its terminal state on whichever submission completes the set.
func (s *DocumentService) SubmitFactoryReceipt(ctx context.Context, key entity.TruckKey, front, back string) error {
	frontData, err := artifact.Decode(front)
	if err != nil {
		return err
	}
	fields := map[string]interface{}{
		"factory_receipt":     frontData,
		"is_factory_uploaded": true,
		"all_uploaded":        gorm.Expr("is_permit_uploaded AND is_lorry_uploaded AND is_challan_uploaded"),
	}
	if back != "" {
		backData, err := artifact.Decode(back)
		if err != nil {
			return err
		}
		fields["factory_receipt_back"] = backData
	}
	return s.updateStage(ctx, key, fields)
}

// UpdatePermitReceipt replaces the permit scan on an existing record.
func (s *DocumentService) UpdatePermitReceipt(ctx context.Context, key entity.TruckKey, image string) error {
	data, err := artifact.Decode(image)
	if err != nil {
		return err
	}
	return s.updateStage(ctx, key, map[string]interface{}{"permit_receipt": data})
}

// UpdateFactoryFront replaces the factory front scan.
func (s *DocumentService) UpdateFactoryFront(ctx context.Context, key entity.TruckKey, image string) error {
	data, err := artifact.Decode(image)
	if err != nil {
		return err
	}
	return s.updateStage(ctx, key, map[string]interface{}{"factory_receipt": data})
}

// UpdateFactoryBack replaces the factory back scan.
func (s *DocumentService) UpdateFactoryBack(ctx context.Context, key entity.TruckKey, image string) error {
	data, err := artifact.Decode(image)
	if err != nil {
		return err
	}
	return s.updateStage(ctx, key, map[string]interface{}{"factory_receipt_back": data})
}

// AttachPermitDetails writes the permit metadata captured after the scan.
func (s *DocumentService) AttachPermitDetails(ctx context.Context, key entity.TruckKey, d PermitDetails) error {
	if d.PermitNo == "" {
		return ErrMissingField
	}
	return s.updateStage(ctx, key, map[string]interface{}{
		"permit_no":    d.PermitNo,
		"transport_no": d.TransportNo,
		"net_weight":   d.NetWeight,
	})
}

// UpdateLorryData writes the transport receipt metadata.
func (s *DocumentService) UpdateLorryData(ctx context.Context, key entity.TruckKey, d LorryData) error {
	fields := map[string]interface{}{
		"lr_no":         d.LRNo,
		"lr_receipt_no": d.LRReceiptNo,
		"grade":         d.Grade,
		"net_weight":    d.NetWeight,
	}
	if d.Date != "" {
		t, err := parseDate(d.Date)
		if err != nil {
			return err
		}
		fields["procurement_date"] = t
	}
	return s.updateStage(ctx, key, fields)
}

// UpdateChallanData writes the challan number and quantity breakdown.
func (s *DocumentService) UpdateChallanData(ctx context.Context, key entity.TruckKey, d ChallanData) error {
	return s.updateStage(ctx, key, map[string]interface{}{
		"challan_no":      d.ChallanNo,
		"gross_qty":       d.GrossQty,
		"tare_qty":        d.TareQty,
		"net_qty":         d.NetQty,
		"do_qty":          d.DOQty,
		"balance_qty":     d.BalanceQty,
		"progressive_qty": d.ProgressiveQty,
		"base_price":      d.BasePrice,
	})
}

// UpdateRevisedLorryData is the factory-side correction pass. It carries
// the same receipt fields as UpdateLorryData but writes the date and weight
// to the factory columns, leaving the original capture untouched.
func (s *DocumentService) UpdateRevisedLorryData(ctx context.Context, key entity.TruckKey, d LorryData) error {
	fields := map[string]interface{}{
		"lr_no":                 d.LRNo,
		"lr_receipt_no":         d.LRReceiptNo,
		"grade":                 d.Grade,
		"net_weight_at_factory": d.NetWeight,
	}
	if d.Date != "" {
		t, err := parseDate(d.Date)
		if err != nil {
			return err
		}
		fields["factory_date"] = t
	}
	return s.updateStage(ctx, key, fields)
}

// updateStage runs a partial update against the keyed record. Zero rows
// affected is ambiguous in isolation, so it is resolved with an existence
// probe: absent record is a not-found failure, unchanged record a success.
func (s *DocumentService) updateStage(ctx context.Context, key entity.TruckKey, fields map[string]interface{}) error {
	if key.OrderID == "" || key.TempTruckNo == "" {
		return ErrMissingField
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rows, err := s.trucks.UpdateFields(ctx, key, fields)
	if err != nil {
		s.logger.Error("stage update failed",
			zap.String("order_id", key.OrderID),
			zap.String("temp_truck_no", key.TempTruckNo),
			zap.Error(err))
		return err
	}
	if rows == 0 {
		exists, err := s.trucks.Exists(ctx, key)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
	}
	s.cache.Invalidate(ctx, key)
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02-01-2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, ErrMissingField)
}
