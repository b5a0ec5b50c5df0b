package entity

import "time"

// TruckKey is the composite identity of a truck document record. Trucks are
// keyed by the provisional truck number assigned before final registration,
// scoped to a delivery order and a transporter.
type TruckKey struct {
	OrderID       string
	TempTruckNo   string
	TransporterID int
}

// TruckDocument is one truck's paperwork trail for a delivery order leg.
// Each document stage carries its scanned image, its metadata columns and a
// completion flag; AllUploaded is derived from the stage flags when the
// factory receipt lands, never set independently.
type TruckDocument struct {
	ID            uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID       string `json:"orderid" gorm:"size:64;not null;uniqueIndex:idx_wcl_truck_identity,priority:1"`
	TempTruckNo   string `json:"temp_truckno" gorm:"size:64;not null;uniqueIndex:idx_wcl_truck_identity,priority:2"`
	TransporterID int    `json:"transporterid" gorm:"not null;uniqueIndex:idx_wcl_truck_identity,priority:3"`

	// Permit stage
	PermitReceipt    []byte   `json:"-"`
	PermitNo         string   `json:"permitno" gorm:"size:64"`
	TransportNo      string   `json:"transportno" gorm:"size:64"`
	NetWeight        *float64 `json:"net_weight"`
	IsPermitUploaded bool     `json:"is_permit_uploaded" gorm:"default:false"`

	// Lorry receipt stage
	LorryReceipt    []byte     `json:"-"`
	LRNo            string     `json:"lrno" gorm:"size:64"`
	LRReceiptNo     string     `json:"lrreceiptno" gorm:"size:64"`
	ProcurementDate *time.Time `json:"procurementdate"`
	Grade           string     `json:"grade" gorm:"size:64"`
	IsLorryUploaded bool       `json:"is_lorry_uploaded" gorm:"default:false"`

	// Weighbridge challan stage
	WCLChallan        []byte   `json:"-"`
	ChallanNo         string   `json:"dchallano" gorm:"size:64"`
	GrossQty          *float64 `json:"grossqty"`
	TareQty           *float64 `json:"tareqty"`
	NetQty            *float64 `json:"netqty"`
	DOQty             *float64 `json:"doqty"`
	BalanceQty        *float64 `json:"balanceqty"`
	ProgressiveQty    *float64 `json:"progressiveqty"`
	BasePrice         *float64 `json:"baseprice"`
	IsChallanUploaded bool     `json:"is_wclchallan_uploaded" gorm:"default:false"`

	// Factory gate receipt stage. The back-side image is optional.
	FactoryReceipt     []byte     `json:"-"`
	FactoryReceiptBack []byte     `json:"-"`
	FactoryDate        *time.Time `json:"date"`
	NetWeightAtFactory *float64   `json:"netwetatfactory"`
	IsFactoryUploaded  bool       `json:"is_lratfactory_uploaded" gorm:"default:false"`
	AllUploaded        bool       `json:"isalluploaded" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TruckDocument) TableName() string {
	return "wcl_trucks"
}

// Key returns the record's composite identity.
func (d *TruckDocument) Key() TruckKey {
	return TruckKey{OrderID: d.OrderID, TempTruckNo: d.TempTruckNo, TransporterID: d.TransporterID}
}

// Document stages, in loose progression order.
const (
	StagePermit  = "permit"
	StageLorry   = "lorry"
	StageChallan = "challan"
	StageFactory = "factory"
)
