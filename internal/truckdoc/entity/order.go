package entity

import "time"

// DeliveryOrder is the order header the driver app resolves during
// authentication. Owned by the back-office system; this service only reads it.
type DeliveryOrder struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNo       string    `json:"orderno" gorm:"size:64;uniqueIndex;not null"`
	Passcode      string    `json:"-" gorm:"size:64;not null"`
	CompanyID     int       `json:"company_id" gorm:"not null"`
	TransportID   int       `json:"transport_id" gorm:"not null"`
	WCLCompID     int       `json:"wclcompid" gorm:"not null"`
	TotalQuantity int       `json:"total_quantity"`
	Quantity      int       `json:"quantity"`
	Rate          string    `json:"rate" gorm:"size:32"`
	Grade         string    `json:"grade" gorm:"size:64"`
	LR            string    `json:"lr" gorm:"size:64"`
	Date          time.Time `json:"date"`
}

func (DeliveryOrder) TableName() string {
	return "delivery_orders"
}

// Company is a consignee company referenced by delivery orders.
type Company struct {
	CompID  int    `json:"comp_id" gorm:"primaryKey;column:comp_id"`
	Name    string `json:"comp_name" gorm:"size:200;not null"`
	Address string `json:"comp_add" gorm:"size:500"`
	City    string `json:"comp_city" gorm:"size:100"`
	State   string `json:"comp_state" gorm:"size:100"`
	Pincode string `json:"comp_pincode" gorm:"size:16"`
}

func (Company) TableName() string {
	return "companies"
}

// WCLCompany is the dispatching (weighbridge-side) company.
type WCLCompany struct {
	CompID  int    `json:"comp_id" gorm:"primaryKey;column:comp_id"`
	Name    string `json:"comp_name" gorm:"size:200;not null"`
	Address string `json:"comp_add" gorm:"size:500"`
	City    string `json:"comp_city" gorm:"size:100"`
	State   string `json:"comp_state" gorm:"size:100"`
	Pincode string `json:"comp_pincode" gorm:"size:16"`
}

func (WCLCompany) TableName() string {
	return "wcl_companies"
}

// FullAddress joins the address parts the way the order display expects.
func (c Company) FullAddress() string {
	return c.Address + " " + c.City + " " + c.State + " " + c.Pincode
}

func (c WCLCompany) FullAddress() string {
	return c.Address + " " + c.City + " " + c.State + " " + c.Pincode
}
