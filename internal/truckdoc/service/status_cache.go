package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Akshaypro1/wclapi/internal/truckdoc/entity"
	"github.com/redis/go-redis/v9"
)

// StatusCache keeps docstatus and truck list reads out of the database.
// All methods are nil-safe: with no redis client every lookup is a miss
// and writes are dropped.
type StatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatusCache(rdb *redis.Client, ttl time.Duration) *StatusCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatusCache{rdb: rdb, ttl: ttl}
}

func statusKey(key entity.TruckKey) string {
	return fmt.Sprintf("wcl:docstatus:%s:%s:%d", key.OrderID, key.TempTruckNo, key.TransporterID)
}

func listKey(orderID string, transporterID int) string {
	return fmt.Sprintf("wcl:trucks:%s:%d", orderID, transporterID)
}

func (c *StatusCache) GetDocStatus(ctx context.Context, key entity.TruckKey) (*DocStatus, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, statusKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var st DocStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, false
	}
	return &st, true
}

func (c *StatusCache) SetDocStatus(ctx context.Context, key entity.TruckKey, st *DocStatus) {
	if c == nil || st == nil {
		return
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, statusKey(key), raw, c.ttl)
}

func (c *StatusCache) GetTruckList(ctx context.Context, orderID string, transporterID int) ([]TruckSummary, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, listKey(orderID, transporterID)).Bytes()
	if err != nil {
		return nil, false
	}
	var trucks []TruckSummary
	if err := json.Unmarshal(raw, &trucks); err != nil {
		return nil, false
	}
	return trucks, true
}

func (c *StatusCache) SetTruckList(ctx context.Context, orderID string, transporterID int, trucks []TruckSummary) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(trucks)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, listKey(orderID, transporterID), raw, c.ttl)
}

// Invalidate drops the cached status for one truck together with the truck
// list of its order. Called after every successful stage write.
func (c *StatusCache) Invalidate(ctx context.Context, key entity.TruckKey) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, statusKey(key), listKey(key.OrderID, key.TransporterID))
}
