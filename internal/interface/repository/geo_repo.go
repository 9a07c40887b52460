package repository

import (
	"context"

	"bloodlink-service/internal/domain/entity"
	"bloodlink-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormGeoRepository implements the GeoRepository interface
type GormGeoRepository struct {
	db *gorm.DB
}

// NewGormGeoRepository creates a new GORM geo repository
func NewGormGeoRepository(db *gorm.DB) repository.GeoRepository {
	return &GormGeoRepository{
		db: db,
	}
}

// Divisions GORM model for database mapping
type Divisions struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:name;unique"`
}

// TableName overrides the default table name
func (Divisions) TableName() string {
	return "m_divisions"
}

// Districts GORM model for database mapping
type Districts struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"column:name"`
	DivisionID uint   `gorm:"column:division_id;index"`
}

// TableName overrides the default table name
func (Districts) TableName() string {
	return "m_districts"
}

// Upazilas GORM model for database mapping
type Upazilas struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"column:name"`
	DistrictID uint   `gorm:"column:district_id;index"`
}

// TableName overrides the default table name
func (Upazilas) TableName() string {
	return "m_upazilas"
}

// ListDivisions returns all divisions ordered by name
func (r *GormGeoRepository) ListDivisions(ctx context.Context) ([]entity.Division, error) {
	var rows []Divisions
	result := r.db.WithContext(ctx).Order("name").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	divisions := make([]entity.Division, len(rows))
	for i, row := range rows {
		divisions[i] = entity.Division{ID: row.ID, Name: row.Name}
	}
	return divisions, nil
}

// ListDistricts returns the districts of a division ordered by name
func (r *GormGeoRepository) ListDistricts(ctx context.Context, division string) ([]entity.District, error) {
	var rows []Districts
	result := r.db.WithContext(ctx).
		Joins("JOIN m_divisions ON m_divisions.id = m_districts.division_id").
		Where("m_divisions.name = ?", division).
		Order("m_districts.name").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	districts := make([]entity.District, len(rows))
	for i, row := range rows {
		districts[i] = entity.District{ID: row.ID, Name: row.Name, DivisionID: row.DivisionID}
	}
	return districts, nil
}

// ListUpazilas returns the upazilas of a district ordered by name
func (r *GormGeoRepository) ListUpazilas(ctx context.Context, district string) ([]entity.Upazila, error) {
	var rows []Upazilas
	result := r.db.WithContext(ctx).
		Joins("JOIN m_districts ON m_districts.id = m_upazilas.district_id").
		Where("m_districts.name = ?", district).
		Order("m_upazilas.name").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	upazilas := make([]entity.Upazila, len(rows))
	for i, row := range rows {
		upazilas[i] = entity.Upazila{ID: row.ID, Name: row.Name, DistrictID: row.DistrictID}
	}
	return upazilas, nil
}
