package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories holds the data-access layer for the truck document service.
type Repositories struct {
	Truck *TruckRepository
	Order *OrderRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Truck: NewTruckRepository(db),
		Order: NewOrderRepository(db),
	}
}
