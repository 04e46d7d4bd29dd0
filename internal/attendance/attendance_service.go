package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "go-fuelops/internal/attendance/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	MarkDay(ctx context.Context, companyID string, req MarkDayRequest) (AttendanceResponse, error)
	RecordOvertime(ctx context.Context, companyID string, req RecordOvertimeRequest) (OvertimeResponse, error)
	ApproveOvertime(ctx context.Context, companyID, id, approverID string) error
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	// Shift pom bensin mulai jam 6 pagi; lewat 15 menit dianggap telat
	status := StatusPresent
	if now.Hour() > 6 || (now.Hour() == 6 && now.Minute() > 15) {
		status = StatusLate
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		AttendanceDate: today,
		ClockIn:        &now,
		Status:         status,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrClockInNotFound
		}
		return AttendanceResponse{}, err
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// MarkDay dipakai kantor pusat untuk mencatat cuti/absen/half-day per tanggal.
func (s *service) MarkDay(ctx context.Context, companyID string, req MarkDayRequest) (AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, req.EmployeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = &Attendance{
			ID:             uuid.New(),
			CompanyID:      companyUUID,
			EmployeeID:     employeeUUID,
			AttendanceDate: date,
			Status:         req.Status,
			Notes:          req.Notes,
		}
		if err := qtx.Create(ctx, row); err != nil {
			return AttendanceResponse{}, err
		}
	} else {
		row.Status = req.Status
		if req.Notes != nil {
			row.Notes = req.Notes
		}
		if err := qtx.Update(ctx, row); err != nil {
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) RecordOvertime(ctx context.Context, companyID string, req RecordOvertimeRequest) (OvertimeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return OvertimeResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return OvertimeResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return OvertimeResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	if !req.Hours.IsPositive() {
		return OvertimeResponse{}, attendanceerrors.ErrInvalidHours
	}

	kind := req.Kind
	if kind == "" {
		kind = OvertimeKindRegular
	}

	entry := &OvertimeEntry{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		EmployeeID:   employeeUUID,
		OvertimeDate: date,
		Hours:        req.Hours,
		Kind:         kind,
	}

	if err := s.repo.CreateOvertime(ctx, entry); err != nil {
		return OvertimeResponse{}, err
	}

	return mapOvertimeToResponse(*entry), nil
}

func (s *service) ApproveOvertime(ctx context.Context, companyID, id, approverID string) error {
	rows, err := s.repo.ApproveOvertime(ctx, companyID, id, approverID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return attendanceerrors.ErrOvertimeNotFound
	}
	return nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Status:         a.Status,
		Notes:          a.Notes,
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}

func mapOvertimeToResponse(e OvertimeEntry) OvertimeResponse {
	return OvertimeResponse{
		ID:           e.ID.String(),
		EmployeeID:   e.EmployeeID.String(),
		OvertimeDate: e.OvertimeDate.Format("2006-01-02"),
		Hours:        e.Hours.StringFixed(2),
		Kind:         e.Kind,
		Approved:     e.Approved,
	}
}
