package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Akshaypro1/wclapi/internal/shared/artifact"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/Akshaypro1/wclapi/internal/truckdoc/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const displayDateLayout = "02-01-2006"

// TruckSummary is one row of the trucks listing for an order.
type TruckSummary struct {
	TempTruckNo      string `json:"temp_truckno"`
	IsPermitUploaded bool   `json:"is_permit_uploaded"`
	AllUploaded      bool   `json:"Isalluploaded"`
}

// DocStatus reports which stage scans a truck has delivered.
type DocStatus struct {
	IsPermitUploaded  bool `json:"is_permit_uploaded"`
	IsLorryUploaded   bool `json:"is_lorry_uploaded"`
	IsChallanUploaded bool `json:"is_wclchallan_uploaded"`
	IsFactoryUploaded bool `json:"is_LRatfactory_uploaded"`
}

// PermitData is the permit stage read-back payload.
type PermitData struct {
	PermitNo      string   `json:"permitno"`
	TransportNo   string   `json:"transportno"`
	NetWeight     *float64 `json:"Net_weight"`
	PermitReceipt string   `json:"permit_receipt"`
}

// LorryReceiptData is the transport receipt read-back payload.
type LorryReceiptData struct {
	LRNo            string   `json:"LRNO"`
	LRReceiptNo     string   `json:"LRreceiptno"`
	ProcurementDate string   `json:"procurementdate"`
	Grade           string   `json:"Grade"`
	NetWeight       *float64 `json:"Net_weight"`
	LorryReceipt    string   `json:"lorry_receipt"`
}

// ChallanReadData is the weighbridge challan read-back payload.
type ChallanReadData struct {
	ChallanNo      string   `json:"dchallano"`
	GrossQty       *float64 `json:"grossqty"`
	TareQty        *float64 `json:"tareqty"`
	NetQty         *float64 `json:"netqty"`
	DOQty          *float64 `json:"Doqty"`
	BalanceQty     *float64 `json:"Balanceqty"`
	ProgressiveQty *float64 `json:"progressiveqty"`
	BasePrice      *float64 `json:"Baseprice"`
	WCLChallan     string   `json:"wcl_challan"`
}

// FactoryData is the factory gate read-back payload.
type FactoryData struct {
	LRNo               string   `json:"LRNO"`
	LRReceiptNo        string   `json:"LRreceiptno"`
	Date               string   `json:"date"`
	Grade              string   `json:"Grade"`
	NetWeightAtFactory *float64 `json:"netwetatfactory"`
	FactoryReceipt     string   `json:"LRatfactory"`
	FactoryReceiptBack string   `json:"LRatfactoryback"`
}

// StatusService serves the read side: truck listings, stage completion
// status and per-stage artifact read-back.
type StatusService struct {
	trucks  *repository.TruckRepository
	cache   *StatusCache
	timeout time.Duration
	logger  *zap.Logger
}

func NewStatusService(trucks *repository.TruckRepository, cache *StatusCache, timeout time.Duration, logger *zap.Logger) *StatusService {
	return &StatusService{
		trucks:  trucks,
		cache:   cache,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *StatusService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// ListTrucks returns every truck registered under the order.
func (s *StatusService) ListTrucks(ctx context.Context, orderID string, transporterID int) ([]TruckSummary, error) {
	if orderID == "" {
		return nil, ErrMissingField
	}
	if trucks, ok := s.cache.GetTruckList(ctx, orderID, transporterID); ok {
		return trucks, nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	recs, err := s.trucks.ListByOrder(ctx, orderID, transporterID)
	if err != nil {
		return nil, err
	}
	trucks := make([]TruckSummary, 0, len(recs))
	for _, rec := range recs {
		trucks = append(trucks, TruckSummary{
			TempTruckNo:      rec.TempTruckNo,
			IsPermitUploaded: rec.IsPermitUploaded,
			AllUploaded:      rec.AllUploaded,
		})
	}
	s.cache.SetTruckList(ctx, orderID, transporterID, trucks)
	return trucks, nil
}

// GetDocStatus reports the stage flags for one truck.
func (s *StatusService) GetDocStatus(ctx context.Context, key entity.TruckKey) (*DocStatus, error) {
	if key.OrderID == "" || key.TempTruckNo == "" {
		return nil, ErrMissingField
	}
	if st, ok := s.cache.GetDocStatus(ctx, key); ok {
		return st, nil
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rec, err := s.trucks.FindColumns(ctx, key,
		"is_permit_uploaded", "is_lorry_uploaded", "is_challan_uploaded", "is_factory_uploaded")
	if err != nil {
		return nil, err
	}
	st := &DocStatus{
		IsPermitUploaded:  rec.IsPermitUploaded,
		IsLorryUploaded:   rec.IsLorryUploaded,
		IsChallanUploaded: rec.IsChallanUploaded,
		IsFactoryUploaded: rec.IsFactoryUploaded,
	}
	s.cache.SetDocStatus(ctx, key, st)
	return st, nil
}

// GetPermitData returns the permit metadata with the scan as a data URL.
func (s *StatusService) GetPermitData(ctx context.Context, key entity.TruckKey) ([]PermitData, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rec, err := s.trucks.FindColumns(ctx, key,
		"permit_no", "transport_no", "net_weight", "permit_receipt")
	if err != nil {
		return nil, err
	}
	return []PermitData{{
		PermitNo:      rec.PermitNo,
		TransportNo:   rec.TransportNo,
		NetWeight:     rec.NetWeight,
		PermitReceipt: encodeOptional(rec.PermitReceipt),
	}}, nil
}

// GetLorryData returns the transport receipt metadata and scan.
func (s *StatusService) GetLorryData(ctx context.Context, key entity.TruckKey) ([]LorryReceiptData, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rec, err := s.trucks.FindColumns(ctx, key,
		"lr_no", "lr_receipt_no", "procurement_date", "grade", "net_weight", "lorry_receipt")
	if err != nil {
		return nil, err
	}
	return []LorryReceiptData{{
		LRNo:            rec.LRNo,
		LRReceiptNo:     rec.LRReceiptNo,
		ProcurementDate: formatDate(rec.ProcurementDate),
		Grade:           rec.Grade,
		NetWeight:       rec.NetWeight,
		LorryReceipt:    encodeOptional(rec.LorryReceipt),
	}}, nil
}

// GetChallanData returns the challan metadata and scan.
func (s *StatusService) GetChallanData(ctx context.Context, key entity.TruckKey) ([]ChallanReadData, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rec, err := s.trucks.FindColumns(ctx, key,
		"challan_no", "gross_qty", "tare_qty", "net_qty", "do_qty",
		"balance_qty", "progressive_qty", "base_price", "wcl_challan")
	if err != nil {
		return nil, err
	}
	return []ChallanReadData{{
		ChallanNo:      rec.ChallanNo,
		GrossQty:       rec.GrossQty,
		TareQty:        rec.TareQty,
		NetQty:         rec.NetQty,
		DOQty:          rec.DOQty,
		BalanceQty:     rec.BalanceQty,
		ProgressiveQty: rec.ProgressiveQty,
		BasePrice:      rec.BasePrice,
		WCLChallan:     encodeOptional(rec.WCLChallan),
	}}, nil
}

// GetFactoryData returns the factory gate metadata with both scans.
func (s *StatusService) GetFactoryData(ctx context.Context, key entity.TruckKey) ([]FactoryData, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	rec, err := s.trucks.FindColumns(ctx, key,
		"lr_no", "lr_receipt_no", "factory_date", "grade",
		"net_weight_at_factory", "factory_receipt", "factory_receipt_back")
	if err != nil {
		return nil, err
	}
	return []FactoryData{{
		LRNo:               rec.LRNo,
		LRReceiptNo:        rec.LRReceiptNo,
		Date:               formatDate(rec.FactoryDate),
		Grade:              rec.Grade,
		NetWeightAtFactory: rec.NetWeightAtFactory,
		FactoryReceipt:     encodeOptional(rec.FactoryReceipt),
		FactoryReceiptBack: encodeOptional(rec.FactoryReceiptBack),
	}}, nil
}

// ExportTrucks builds an xlsx workbook with one row per truck of the order,
// listing the identity and stage completion flags.
func (s *StatusService) ExportTrucks(ctx context.Context, orderID string, transporterID int) (*excelize.File, error) {
	if orderID == "" {
		return nil, ErrMissingField
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	recs, err := s.trucks.ListByOrder(ctx, orderID, transporterID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"Order", "Truck No", "Permit", "LR Receipt", "Challan", "Factory", "Complete"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, rec := range recs {
		values := []interface{}{
			rec.OrderID, rec.TempTruckNo,
			yesNo(rec.IsPermitUploaded), yesNo(rec.IsLorryUploaded),
			yesNo(rec.IsChallanUploaded), yesNo(rec.IsFactoryUploaded),
			yesNo(rec.AllUploaded),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}

func encodeOptional(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return artifact.Encode(data)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(displayDateLayout)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ExportFilename names the workbook download for an order.
func ExportFilename(orderID string) string {
	return fmt.Sprintf("trucks_%s_%s.xlsx", orderID, time.Now().Format("20060102"))
}
