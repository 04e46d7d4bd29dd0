package compensation

import (
	"context"

	"go-fuelops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, profile *CompensationProfile) error
	RetireActiveByEmployee(ctx context.Context, companyID, employeeID string) error
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*CompensationProfile, error)
	FindHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]CompensationProfile, error)
	FindAllActiveByCompany(ctx context.Context, companyID string) ([]CompensationProfile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, profile *CompensationProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *repository) RetireActiveByEmployee(ctx context.Context, companyID, employeeID string) error {
	return r.db.WithContext(ctx).
		Model(&CompensationProfile{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Update("status", StatusInactive).Error
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) (*CompensationProfile, error) {
	var profile CompensationProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Order("effective_date DESC").
		First(&profile).Error
	return &profile, err
}

func (r *repository) FindHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]CompensationProfile, error) {
	var profiles []CompensationProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC, created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) FindAllActiveByCompany(ctx context.Context, companyID string) ([]CompensationProfile, error) {
	var profiles []CompensationProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusActive).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}
