package repository

import (
	"context"
	"errors"

	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TruckRepository is the record store for truck document rows. All coordination
// happens in the database: the composite unique index on (order_id,
// temp_truckno, transporter_id) carries the identity invariant, and the permit
// path uses a native upsert so concurrent first submissions cannot race a
// check-then-insert.
type TruckRepository struct {
	db *gorm.DB
}

func NewTruckRepository(db *gorm.DB) *TruckRepository {
	return &TruckRepository{db: db}
}

func (r *TruckRepository) byKey(key entity.TruckKey) *gorm.DB {
	return r.db.Where("order_id = ? AND temp_truck_no = ? AND transporter_id = ?",
		key.OrderID, key.TempTruckNo, key.TransporterID)
}

// UpsertPermit inserts a fresh record with the permit flag set, or rewrites
// only the permit image when the identity already exists. Single atomic
// statement keyed by the composite index; rec.ID is populated either way.
func (r *TruckRepository) UpsertPermit(ctx context.Context, rec *entity.TruckDocument) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "order_id"}, {Name: "temp_truck_no"}, {Name: "transporter_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"permit_receipt", "updated_at"}),
		}).
		Create(rec).Error
}

// Find loads one record by its composite identity.
func (r *TruckRepository) Find(ctx context.Context, key entity.TruckKey) (*entity.TruckDocument, error) {
	var rec entity.TruckDocument
	err := r.byKey(key).WithContext(ctx).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Exists reports whether a record for the identity is present, without
// loading its image columns.
func (r *TruckRepository) Exists(ctx context.Context, key entity.TruckKey) (bool, error) {
	var count int64
	err := r.byKey(key).WithContext(ctx).
		Model(&entity.TruckDocument{}).
		Count(&count).Error
	return count > 0, err
}

// UpdateFields applies a partial update against the composite identity and
// returns the affected-row count. Zero rows means either an absent record or
// values already current; callers disambiguate with Exists.
func (r *TruckRepository) UpdateFields(ctx context.Context, key entity.TruckKey, fields map[string]interface{}) (int64, error) {
	res := r.byKey(key).WithContext(ctx).
		Model(&entity.TruckDocument{}).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// ListByOrder returns every truck under one order/transporter pair. The image
// columns are deliberately excluded; the listing only needs identities and
// stage flags.
func (r *TruckRepository) ListByOrder(ctx context.Context, orderID string, transporterID int) ([]entity.TruckDocument, error) {
	var recs []entity.TruckDocument
	err := r.db.WithContext(ctx).
		Select("id", "order_id", "temp_truck_no", "transporter_id",
			"is_permit_uploaded", "is_lorry_uploaded", "is_challan_uploaded",
			"is_factory_uploaded", "all_uploaded").
		Where("order_id = ? AND transporter_id = ?", orderID, transporterID).
		Find(&recs).Error
	return recs, err
}

// FindColumns loads only the named columns of the keyed record. Used by the
// per-stage reads so a permit lookup does not drag the other scans along.
func (r *TruckRepository) FindColumns(ctx context.Context, key entity.TruckKey, columns ...string) (*entity.TruckDocument, error) {
	var rec entity.TruckDocument
	err := r.byKey(key).WithContext(ctx).
		Select(columns).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
