package repository

import (
	"context"
	"testing"
	"time"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct{}

func (silentLogger) Debug(string, ...interface{}) {}
func (silentLogger) Info(string, ...interface{})  {}
func (silentLogger) Warn(string, ...interface{})  {}
func (silentLogger) Error(string, ...interface{}) {}
func (silentLogger) Fatal(string, ...interface{}) {}
func (l silentLogger) With(...interface{}) logger.Logger {
	return l
}

// countingGeoRepo records how often the underlying store is hit.
type countingGeoRepo struct {
	divisionCalls int
	districtCalls int
}

func (c *countingGeoRepo) ListDivisions(ctx context.Context) ([]entity.Division, error) {
	c.divisionCalls++
	return []entity.Division{{ID: 1, Name: "Dhaka"}}, nil
}

func (c *countingGeoRepo) ListDistricts(ctx context.Context, division string) ([]entity.District, error) {
	c.districtCalls++
	return []entity.District{{ID: 10, Name: "Gazipur", DivisionID: 1}}, nil
}

func (c *countingGeoRepo) ListUpazilas(ctx context.Context, district string) ([]entity.Upazila, error) {
	return nil, nil
}

func newCacheUnderTest(t *testing.T) (*countingGeoRepo, *CachedGeoRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	inner := &countingGeoRepo{}
	cached := NewCachedGeoRepository(inner, client, time.Hour, silentLogger{}).(*CachedGeoRepository)
	return inner, cached, mr
}

func TestCachedGeoRepository_ServesSecondReadFromCache(t *testing.T) {
	inner, cached, _ := newCacheUnderTest(t)
	ctx := context.Background()

	first, err := cached.ListDivisions(ctx)
	require.NoError(t, err)
	second, err := cached.ListDivisions(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.divisionCalls)
}

func TestCachedGeoRepository_KeysDistrictsByDivision(t *testing.T) {
	inner, cached, _ := newCacheUnderTest(t)
	ctx := context.Background()

	_, err := cached.ListDistricts(ctx, "Dhaka")
	require.NoError(t, err)
	_, err = cached.ListDistricts(ctx, "Khulna")
	require.NoError(t, err)
	_, err = cached.ListDistricts(ctx, "Dhaka")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.districtCalls)
}

func TestCachedGeoRepository_ExpiredEntryFallsBackToStore(t *testing.T) {
	inner, cached, mr := newCacheUnderTest(t)
	ctx := context.Background()

	_, err := cached.ListDivisions(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = cached.ListDivisions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.divisionCalls)
}
