package repository

import (
	"context"
	"errors"

	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"gorm.io/gorm"
)

// OrderRepository reads the order/company tables owned by the back office.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByCredentials resolves an order by its number and passcode. Returns
// ErrNotFound when the pair does not match, which callers report as an
// authentication failure.
func (r *OrderRepository) FindByCredentials(ctx context.Context, orderNo, passcode string) (*entity.DeliveryOrder, error) {
	var order entity.DeliveryOrder
	err := r.db.WithContext(ctx).
		Where("order_no = ? AND passcode = ?", orderNo, passcode).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Companies loads the consignee and dispatching companies for an order.
func (r *OrderRepository) Companies(ctx context.Context, order *entity.DeliveryOrder) (*entity.Company, *entity.WCLCompany, error) {
	var company entity.Company
	if err := r.db.WithContext(ctx).Where("comp_id = ?", order.CompanyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var wcl entity.WCLCompany
	if err := r.db.WithContext(ctx).Where("comp_id = ?", order.WCLCompID).First(&wcl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	return &company, &wcl, nil
}
