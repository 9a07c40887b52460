package repository

import (
	"context"

	"bloodlink-service/internal/domain/entity"
)

// GeoRepository defines the interface for administrative-area lookups.
// The tables are reference data maintained outside this service.
type GeoRepository interface {
	ListDivisions(ctx context.Context) ([]entity.Division, error)
	ListDistricts(ctx context.Context, division string) ([]entity.District, error)
	ListUpazilas(ctx context.Context, district string) ([]entity.Upazila, error)
}
