package repository

import (
	"context"
	"encoding/json"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"
	"bloodlink-service/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// CachedGeoRepository wraps a GeoRepository with a read-through Redis cache.
// The reference tables change rarely, so entries are kept for a fixed TTL
// and a cache failure falls back to the database.
type CachedGeoRepository struct {
	inner  repository.GeoRepository
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewCachedGeoRepository creates a new cached geo repository
func NewCachedGeoRepository(inner repository.GeoRepository, client *redis.Client, ttl time.Duration, logger logger.Logger) repository.GeoRepository {
	return &CachedGeoRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// ListDivisions returns all divisions, from cache when possible
func (r *CachedGeoRepository) ListDivisions(ctx context.Context) ([]entity.Division, error) {
	var divisions []entity.Division
	if r.lookup(ctx, "geo:divisions", &divisions) {
		return divisions, nil
	}

	divisions, err := r.inner.ListDivisions(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, "geo:divisions", divisions)
	return divisions, nil
}

// ListDistricts returns the districts of a division, from cache when possible
func (r *CachedGeoRepository) ListDistricts(ctx context.Context, division string) ([]entity.District, error) {
	key := "geo:districts:" + division
	var districts []entity.District
	if r.lookup(ctx, key, &districts) {
		return districts, nil
	}

	districts, err := r.inner.ListDistricts(ctx, division)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, districts)
	return districts, nil
}

// ListUpazilas returns the upazilas of a district, from cache when possible
func (r *CachedGeoRepository) ListUpazilas(ctx context.Context, district string) ([]entity.Upazila, error) {
	key := "geo:upazilas:" + district
	var upazilas []entity.Upazila
	if r.lookup(ctx, key, &upazilas) {
		return upazilas, nil
	}

	upazilas, err := r.inner.ListUpazilas(ctx, district)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, upazilas)
	return upazilas, nil
}

func (r *CachedGeoRepository) lookup(ctx context.Context, key string, dest interface{}) bool {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("Geo cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Warn("Geo cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (r *CachedGeoRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("Geo cache write failed", "key", key, "error", err)
	}
}
