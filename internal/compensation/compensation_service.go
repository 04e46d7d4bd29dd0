package compensation

import (
	"context"
	"errors"
	"time"

	compensationerrors "go-fuelops/internal/compensation/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateCompensationProfileRequest) (CompensationProfileResponse, error)
	GetActiveByEmployee(ctx context.Context, companyID, employeeID string) (CompensationProfileResponse, error)
	GetHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]CompensationProfileResponse, error)
	GetAll(ctx context.Context, companyID string) ([]CompensationProfileResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("compensation.service"),
	}
}

// Create menggantikan profil aktif sebelumnya (kalau ada) dalam satu transaksi:
// retire dulu, lalu insert baris ACTIVE baru.
func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateCompensationProfileRequest,
) (CompensationProfileResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CompensationProfileResponse{}, compensationerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CompensationProfileResponse{}, compensationerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return CompensationProfileResponse{}, compensationerrors.ErrInvalidEmployeeID
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return CompensationProfileResponse{}, compensationerrors.ErrInvalidDateFormat
	}

	if err := validateAmounts(req); err != nil {
		return CompensationProfileResponse{}, err
	}

	profile := &CompensationProfile{
		ID:                        uuid.New(),
		CompanyID:                 companyUUID,
		EmployeeID:                employeeUUID,
		BasicSalary:               req.BasicSalary,
		TransportAllowance:        req.TransportAllowance,
		MealAllowance:             req.MealAllowance,
		HousingAllowance:          req.HousingAllowance,
		OtherAllowance:            req.OtherAllowance,
		EpfEmployeePercent:        req.EpfEmployeePercent,
		EpfEmployerPercent:        req.EpfEmployerPercent,
		EtfPercent:                req.EtfPercent,
		TaxPercent:                req.TaxPercent,
		OvertimeMultiplier:        defaultMultiplier(req.OvertimeMultiplier, decimal.RequireFromString("1.5")),
		HolidayOvertimeMultiplier: defaultMultiplier(req.HolidayOvertimeMultiplier, decimal.NewFromInt(2)),
		EffectiveDate:             effectiveDate,
		Status:                    StatusActive,
		CreatedBy:                 actorUUID,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CompensationProfileResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.RetireActiveByEmployee(ctx, companyID, req.EmployeeID); err != nil {
		s.logger.Error("retire active profile failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return CompensationProfileResponse{}, err
	}

	if err := qtx.Create(ctx, profile); err != nil {
		return CompensationProfileResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return CompensationProfileResponse{}, err
	}

	return mapToResponse(*profile), nil
}

func (s *service) GetActiveByEmployee(ctx context.Context, companyID, employeeID string) (CompensationProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return CompensationProfileResponse{}, compensationerrors.ErrInvalidEmployeeID
	}

	profile, err := s.repo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompensationProfileResponse{}, compensationerrors.ErrProfileNotFound
		}
		return CompensationProfileResponse{}, err
	}

	return mapToResponse(*profile), nil
}

func (s *service) GetHistoryByEmployee(ctx context.Context, companyID, employeeID string) ([]CompensationProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, compensationerrors.ErrInvalidEmployeeID
	}

	profiles, err := s.repo.FindHistoryByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(profiles), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]CompensationProfileResponse, error) {
	profiles, err := s.repo.FindAllActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(profiles), nil
}

func validateAmounts(req CreateCompensationProfileRequest) error {
	amounts := []decimal.Decimal{
		req.BasicSalary,
		req.TransportAllowance,
		req.MealAllowance,
		req.HousingAllowance,
		req.OtherAllowance,
	}
	for _, a := range amounts {
		if a.IsNegative() {
			return compensationerrors.ErrNegativeAmount
		}
	}

	hundred := decimal.NewFromInt(100)
	percents := []decimal.Decimal{
		req.EpfEmployeePercent,
		req.EpfEmployerPercent,
		req.EtfPercent,
		req.TaxPercent,
	}
	for _, p := range percents {
		if p.IsNegative() || p.GreaterThan(hundred) {
			return compensationerrors.ErrInvalidPercent
		}
	}

	one := decimal.NewFromInt(1)
	for _, m := range []decimal.Decimal{req.OvertimeMultiplier, req.HolidayOvertimeMultiplier} {
		if !m.IsZero() && m.LessThan(one) {
			return compensationerrors.ErrInvalidMultiplier
		}
	}

	return nil
}

func defaultMultiplier(v, fallback decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return fallback
	}
	return v
}

func mapToResponse(profile CompensationProfile) CompensationProfileResponse {
	return CompensationProfileResponse{
		ID:                        profile.ID.String(),
		EmployeeID:                profile.EmployeeID.String(),
		BasicSalary:               profile.BasicSalary.StringFixed(2),
		TransportAllowance:        profile.TransportAllowance.StringFixed(2),
		MealAllowance:             profile.MealAllowance.StringFixed(2),
		HousingAllowance:          profile.HousingAllowance.StringFixed(2),
		OtherAllowance:            profile.OtherAllowance.StringFixed(2),
		EpfEmployeePercent:        profile.EpfEmployeePercent.StringFixed(2),
		EpfEmployerPercent:        profile.EpfEmployerPercent.StringFixed(2),
		EtfPercent:                profile.EtfPercent.StringFixed(2),
		TaxPercent:                profile.TaxPercent.StringFixed(2),
		OvertimeMultiplier:        profile.OvertimeMultiplier.StringFixed(2),
		HolidayOvertimeMultiplier: profile.HolidayOvertimeMultiplier.StringFixed(2),
		EffectiveDate:             profile.EffectiveDate.Format("2006-01-02"),
		Status:                    profile.Status,
	}
}

func mapToListResponse(profiles []CompensationProfile) []CompensationProfileResponse {
	resp := make([]CompensationProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp[i] = mapToResponse(profile)
	}
	return resp
}
