package service

import (
	"context"
	"os"
	"time"

	"github.com/Akshaypro1/wclapi/internal/shared/artifact"
	"github.com/redis/go-redis/v9"
)

const ewayBillCacheKey = "wcl:ewaybill"

// EwayBillService serves the static e-way bill template image. The encoded
// form is cached in redis so the file is read at most once per TTL.
type EwayBillService struct {
	rdb  *redis.Client
	path string
	ttl  time.Duration
}

func NewEwayBillService(rdb *redis.Client, path string, ttl time.Duration) *EwayBillService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &EwayBillService{rdb: rdb, path: path, ttl: ttl}
}

// Get returns the bill image as a data URL.
func (s *EwayBillService) Get(ctx context.Context) (string, error) {
	if s.rdb != nil {
		if encoded, err := s.rdb.Get(ctx, ewayBillCacheKey).Result(); err == nil {
			return encoded, nil
		}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	encoded := artifact.Encode(data)

	if s.rdb != nil {
		s.rdb.Set(ctx, ewayBillCacheKey, encoded, s.ttl)
	}
	return encoded, nil
}
