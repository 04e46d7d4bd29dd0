package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-fuelops/internal/attendance"
	"go-fuelops/internal/compensation"
	"go-fuelops/internal/employee"
	"go-fuelops/internal/events"
	"go-fuelops/internal/loan"
	"go-fuelops/internal/messaging/kafka"
	payrollerrors "go-fuelops/internal/payroll/errors"
	"go-fuelops/internal/shared/contextutil"
	"go-fuelops/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, companyID, actorID string, req CalculateRequest) (PayrollResponse, error)
	RunBatch(ctx context.Context, companyID, actorID string, req RunBatchRequest) (BatchRunResult, error)

	Settle(ctx context.Context, companyID, actorID, id string, req SettleRequest) (PaymentEventResponse, error)
	SettleBatch(ctx context.Context, companyID, actorID string, req SettleBatchRequest) (SettleBatchResult, error)
	Cancel(ctx context.Context, companyID, id string) error

	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, payPeriod string) (PayrollResponse, error)
	GetAllByPeriod(ctx context.Context, companyID, payPeriod, status string) ([]PayrollResponse, error)
	GetPaymentEvents(ctx context.Context, companyID, payrollID string) ([]PaymentEventResponse, error)
	GetYearToDate(ctx context.Context, companyID, employeeID string, year int) (YearToDateResponse, error)

	GeneratePayslip(ctx context.Context, companyID, payrollID string) (string, error)
}

type service struct {
	db               *gorm.DB
	repo             Repository
	compensationRepo compensation.Repository
	attendanceRepo   attendance.Repository
	loanRepo         loan.Repository
	employeeRepo     employee.Repository
	counterRepo      counter.Repository
	outboxRepo       kafka.OutboxRepository
	payslipDir       string
	logger           *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	compensationRepo compensation.Repository,
	attendanceRepo attendance.Repository,
	loanRepo loan.Repository,
	employeeRepo employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	payslipDir string,
) Service {
	return &service{
		db:               db,
		repo:             repo,
		compensationRepo: compensationRepo,
		attendanceRepo:   attendanceRepo,
		loanRepo:         loanRepo,
		employeeRepo:     employeeRepo,
		counterRepo:      counterRepo,
		outboxRepo:       outboxRepo,
		payslipDir:       payslipDir,
		logger:           zap.L().Named("payroll_service"),
	}
}

func (s *service) Calculate(ctx context.Context, companyID, actorID string, req CalculateRequest) (PayrollResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, _, err := parsePeriod(req.PayPeriod); err != nil {
		return PayrollResponse{}, err
	}

	record, err := s.calculateOne(ctx, companyID, actorID, req.EmployeeID, req.PayPeriod, req.OvertimeAmount, req.OtherDeductions, true)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

// calculateOne runs gather -> compute -> upsert for one employee. The upsert
// itself is one transaction; gathering happens outside it.
//
// force hanya relevan di jalur batch: di jalur single, hitung ulang draft
// memang dimaksudkan menimpa.
func (s *service) calculateOne(
	ctx context.Context,
	companyID, actorID, employeeID, payPeriod string,
	presetOvertime *decimal.Decimal,
	otherDeductions decimal.Decimal,
	force bool,
) (*PayrollRecord, error) {
	periodStart, periodEnd, err := parsePeriod(payPeriod)
	if err != nil {
		return nil, err
	}

	profile, err := s.compensationRepo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrCompensationMissing
		}
		return nil, err
	}

	counts, err := s.attendanceRepo.GetPeriodCounts(ctx, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	overtime, err := s.attendanceRepo.GetApprovedOvertimeHours(ctx, companyID, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	activeLoans, err := s.loanRepo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	breakdown := Compute(CalculationInput{
		Profile:              *profile,
		Attendance:           counts,
		Overtime:             overtime,
		PresetOvertimeAmount: presetOvertime,
		ActiveLoans:          activeLoans,
		OtherDeductions:      otherDeductions,
	})

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndPeriod(ctx, companyID, employeeID, payPeriod)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var record *PayrollRecord
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = &PayrollRecord{
			ID:            uuid.New(),
			CompanyID:     uuid.MustParse(companyID),
			EmployeeID:    uuid.MustParse(employeeID),
			PayPeriod:     payPeriod,
			PaymentStatus: PaymentStatusPending,
			CalculatedBy:  uuid.MustParse(actorID),
		}
		applyBreakdown(record, breakdown)
		if err := qtx.Create(ctx, record); err != nil {
			return nil, err
		}
	} else {
		// Rekaman PAID dikunci: hitung ulang harus lewat jalur koreksi
		// eksplisit, bukan timpa diam-diam.
		switch existing.PaymentStatus {
		case PaymentStatusPaid:
			return nil, payrollerrors.ErrRecordAlreadyPaid
		case PaymentStatusCancelled:
			return nil, payrollerrors.ErrRecordCancelled
		}
		if !force {
			return existing, nil
		}
		record = existing
		record.CalculatedBy = uuid.MustParse(actorID)
		applyBreakdown(record, breakdown)
		if err := qtx.UpdateComputed(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return record, nil
}

// RunBatch hits the whole roster one employee at a time. One operator's
// missing profile must never sink the rest of the run.
func (s *service) RunBatch(ctx context.Context, companyID, actorID string, req RunBatchRequest) (BatchRunResult, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return BatchRunResult{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return BatchRunResult{}, payrollerrors.ErrInvalidActorID
	}
	if _, _, err := parsePeriod(req.PayPeriod); err != nil {
		return BatchRunResult{}, err
	}

	roster, err := s.employeeRepo.FindActiveByCompany(ctx, companyID, req.Department)
	if err != nil {
		return BatchRunResult{}, err
	}

	result := BatchRunResult{
		PayPeriod: req.PayPeriod,
		Results:   make([]BatchItemResult, 0, len(roster)),
	}

	for _, emp := range roster {
		employeeID := emp.ID.String()

		if !req.Force {
			_, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, req.PayPeriod)
			if err == nil {
				result.SkippedCount++
				result.Results = append(result.Results, BatchItemResult{
					EmployeeID: employeeID,
					Status:     BatchItemSkipped,
					Message:    "record already exists for period",
				})
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				result.FailedCount++
				result.Results = append(result.Results, BatchItemResult{
					EmployeeID: employeeID,
					Status:     BatchItemFailed,
					Message:    err.Error(),
				})
				continue
			}
		}

		if _, err := s.calculateOne(ctx, companyID, actorID, employeeID, req.PayPeriod, nil, decimal.Zero, req.Force); err != nil {
			result.FailedCount++
			result.Results = append(result.Results, BatchItemResult{
				EmployeeID: employeeID,
				Status:     BatchItemFailed,
				Message:    err.Error(),
			})
			s.logger.Warn("batch calculation failed for employee",
				zap.String("employee_id", employeeID),
				zap.String("pay_period", req.PayPeriod),
				zap.Error(err),
			)
			continue
		}

		result.SuccessCount++
		result.Results = append(result.Results, BatchItemResult{
			EmployeeID: employeeID,
			Status:     BatchItemSuccess,
		})
	}

	s.logger.Info("batch payroll run finished",
		zap.String("pay_period", req.PayPeriod),
		zap.Int("success", result.SuccessCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("failed", result.FailedCount),
	)

	return result, nil
}

func (s *service) Settle(ctx context.Context, companyID, actorID, id string, req SettleRequest) (PaymentEventResponse, error) {
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return PaymentEventResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PaymentEventResponse{}, payrollerrors.ErrInvalidActorID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return PaymentEventResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentEventResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PaymentEventResponse{}, err
	}
	switch record.PaymentStatus {
	case PaymentStatusPaid:
		return PaymentEventResponse{}, payrollerrors.ErrAlreadySettled
	case PaymentStatusCancelled:
		return PaymentEventResponse{}, payrollerrors.ErrRecordCancelled
	}

	referenceNo := req.ReferenceNo
	if referenceNo == "" {
		seq, err := s.counterRepo.GetNextValue(ctx, companyID, counter.TypePaymentReference)
		if err != nil {
			return PaymentEventResponse{}, err
		}
		referenceNo = fmt.Sprintf("PAY-%06d", seq)
	}

	// Guard satu-satunya terhadap dua settlement berbarengan: update
	// bersyarat, bukan read lalu write.
	rows, err := qtx.MarkPaid(ctx, companyID, id, paymentDate, req.PaymentMethod, referenceNo)
	if err != nil {
		return PaymentEventResponse{}, err
	}
	if rows == 0 {
		return PaymentEventResponse{}, payrollerrors.ErrAlreadySettled
	}

	// Potongan kasbon dievaluasi ulang terhadap saldo terkini, aturan yang
	// sama dengan kalkulator. Guard saldo dan flip COMPLETED ada di SQL.
	loanTx := s.loanRepo.WithTx(tx)
	activeLoans, err := loanTx.FindActiveByEmployee(ctx, companyID, record.EmployeeID.String())
	if err != nil {
		return PaymentEventResponse{}, err
	}
	for _, account := range activeLoans {
		deduction := loan.DeductionFor(account)
		if !deduction.IsPositive() {
			continue
		}
		paydown, err := loanTx.ApplyPaydown(ctx, companyID, account.ID.String(), deduction)
		if err != nil {
			return PaymentEventResponse{}, err
		}
		if paydown.Applied == 0 {
			continue
		}
		payrollID := record.ID
		if err := loanTx.CreateTransaction(ctx, &loan.LoanTransaction{
			ID:           uuid.New(),
			CompanyID:    record.CompanyID,
			LoanID:       account.ID,
			PayrollID:    &payrollID,
			Amount:       deduction,
			BalanceAfter: paydown.BalanceAfter,
			Source:       loan.TransactionSourcePayroll,
			RecordedBy:   &actorUUID,
		}); err != nil {
			return PaymentEventResponse{}, err
		}
	}

	event := &PaymentEvent{
		ID:            uuid.New(),
		CompanyID:     record.CompanyID,
		PayrollID:     record.ID,
		Amount:        record.NetSalary,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		ReferenceNo:   referenceNo,
		Notes:         req.Notes,
		PaidBy:        actorUUID,
	}
	if err := qtx.CreatePaymentEvent(ctx, event); err != nil {
		return PaymentEventResponse{}, err
	}

	settled := events.PayrollSettledEvent{
		EventType:   "payroll_settled",
		RequestID:   contextutil.GetRequestID(ctx),
		PayrollID:   record.ID.String(),
		CompanyID:   companyID,
		EmployeeID:  record.EmployeeID.String(),
		PayPeriod:   record.PayPeriod,
		NetAmount:   record.NetSalary.StringFixed(2),
		ReferenceNo: referenceNo,
		SettledBy:   actorID,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(settled)
	if err != nil {
		return PaymentEventResponse{}, err
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     settled.RequestID,
		AggregateType: "payroll",
		AggregateID:   record.ID.String(),
		EventType:     settled.EventType,
		Topic:         events.PayrollSettledTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return PaymentEventResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return PaymentEventResponse{}, err
	}

	s.logger.Info("payroll settled",
		zap.String("payroll_id", id),
		zap.String("reference_no", referenceNo),
		zap.String("net_amount", record.NetSalary.StringFixed(2)),
	)

	return mapPaymentEventToResponse(*event), nil
}

// SettleBatch mirrors RunBatch's isolation: one record per transaction, no
// cross-record atomicity.
func (s *service) SettleBatch(ctx context.Context, companyID, actorID string, req SettleBatchRequest) (SettleBatchResult, error) {
	result := SettleBatchResult{
		Results: make([]SettleItemResult, 0, len(req.PayrollIDs)),
	}

	for _, payrollID := range req.PayrollIDs {
		_, err := s.Settle(ctx, companyID, actorID, payrollID, SettleRequest{
			PaymentDate:   req.PaymentDate,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		})
		if err != nil {
			result.FailedCount++
			result.Results = append(result.Results, SettleItemResult{
				PayrollID: payrollID,
				Status:    BatchItemFailed,
				Message:   err.Error(),
			})
			continue
		}
		result.SuccessCount++
		result.Results = append(result.Results, SettleItemResult{
			PayrollID: payrollID,
			Status:    BatchItemSuccess,
		})
	}

	return result, nil
}

func (s *service) Cancel(ctx context.Context, companyID, id string) error {
	rows, err := s.repo.Cancel(ctx, companyID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		record, findErr := s.repo.FindByIDAndCompany(ctx, companyID, id)
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrPayrollNotFound
		}
		if findErr != nil {
			return findErr
		}
		if record.PaymentStatus == PaymentStatusPaid {
			return payrollerrors.ErrAlreadySettled
		}
		return payrollerrors.ErrRecordNotPending
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, payPeriod string) (PayrollResponse, error) {
	if _, _, err := parsePeriod(payPeriod); err != nil {
		return PayrollResponse{}, err
	}
	record, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, payPeriod)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) GetAllByPeriod(ctx context.Context, companyID, payPeriod, status string) ([]PayrollResponse, error) {
	if _, _, err := parsePeriod(payPeriod); err != nil {
		return nil, err
	}
	records, err := s.repo.FindAllByPeriod(ctx, companyID, payPeriod, status)
	if err != nil {
		return nil, err
	}
	resp := make([]PayrollResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, mapToResponse(record))
	}
	return resp, nil
}

func (s *service) GetPaymentEvents(ctx context.Context, companyID, payrollID string) ([]PaymentEventResponse, error) {
	evts, err := s.repo.ListPaymentEvents(ctx, companyID, payrollID)
	if err != nil {
		return nil, err
	}
	resp := make([]PaymentEventResponse, 0, len(evts))
	for _, evt := range evts {
		resp = append(resp, mapPaymentEventToResponse(evt))
	}
	return resp, nil
}

func (s *service) GetYearToDate(ctx context.Context, companyID, employeeID string, year int) (YearToDateResponse, error) {
	if year < 2000 || year > 2100 {
		return YearToDateResponse{}, payrollerrors.ErrInvalidYear
	}
	totals, err := s.repo.YearToDateTotals(ctx, companyID, employeeID, year)
	if err != nil {
		return YearToDateResponse{}, err
	}
	return YearToDateResponse{
		EmployeeID:  employeeID,
		Year:        year,
		Gross:       totals.Gross.StringFixed(2),
		EpfEmployee: totals.EpfEmployee.StringFixed(2),
		EpfEmployer: totals.EpfEmployer.StringFixed(2),
		Etf:         totals.Etf.StringFixed(2),
		Net:         totals.Net.StringFixed(2),
		Periods:     totals.Periods,
	}, nil
}

// GeneratePayslip renders the PDF to disk and records its URL. Dipanggil
// dari consumer event payroll_settled, bukan dari jalur request.
func (s *service) GeneratePayslip(ctx context.Context, companyID, payrollID string) (string, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, payrollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", payrollerrors.ErrPayrollNotFound
		}
		return "", err
	}

	emp, err := s.employeeRepo.FindByIDAndCompany(ctx, companyID, record.EmployeeID.String())
	if err != nil {
		return "", err
	}

	pdf, err := buildPayslipPDF(payslipLines(*record, emp.FullName, emp.EmployeeNumber))
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.pdf", record.ID)
	if err := os.MkdirAll(s.payslipDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.payslipDir, filename), pdf, 0o644); err != nil {
		return "", err
	}

	url := "/payslips/" + filename
	if err := s.repo.SetPayslipURL(ctx, companyID, payrollID, url); err != nil {
		return "", err
	}

	s.logger.Info("payslip generated",
		zap.String("payroll_id", payrollID),
		zap.String("url", url),
	)

	return url, nil
}

func parsePeriod(payPeriod string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", payPeriod)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriodFormat
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

func applyBreakdown(record *PayrollRecord, b Breakdown) {
	record.BasicSalary = b.BasicSalary
	record.TransportAllowance = b.TransportAllowance
	record.MealAllowance = b.MealAllowance
	record.HousingAllowance = b.HousingAllowance
	record.OtherAllowance = b.OtherAllowance
	record.OvertimeHours = b.OvertimeHours
	record.OvertimeAmount = b.OvertimeAmount
	record.GrossSalary = b.GrossSalary
	record.EpfEmployee = b.EpfEmployee
	record.EpfEmployer = b.EpfEmployer
	record.Etf = b.Etf
	record.PayeTax = b.PayeTax
	record.LoanDeductions = b.LoanDeductions
	record.OtherDeductions = b.OtherDeductions
	record.TotalDeductions = b.TotalDeductions
	record.NetSalary = b.NetSalary
	record.DaysWorked = b.DaysWorked
	record.LeaveDays = b.LeaveDays
	record.AbsentDays = b.AbsentDays
}

func mapToResponse(record PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		PayPeriod:  record.PayPeriod,

		BasicSalary:        record.BasicSalary.StringFixed(2),
		TransportAllowance: record.TransportAllowance.StringFixed(2),
		MealAllowance:      record.MealAllowance.StringFixed(2),
		HousingAllowance:   record.HousingAllowance.StringFixed(2),
		OtherAllowance:     record.OtherAllowance.StringFixed(2),
		OvertimeHours:      record.OvertimeHours.StringFixed(2),
		OvertimeAmount:     record.OvertimeAmount.StringFixed(2),
		GrossSalary:        record.GrossSalary.StringFixed(2),

		EpfEmployee:     record.EpfEmployee.StringFixed(2),
		EpfEmployer:     record.EpfEmployer.StringFixed(2),
		Etf:             record.Etf.StringFixed(2),
		PayeTax:         record.PayeTax.StringFixed(2),
		LoanDeductions:  record.LoanDeductions.StringFixed(2),
		OtherDeductions: record.OtherDeductions.StringFixed(2),
		TotalDeductions: record.TotalDeductions.StringFixed(2),
		NetSalary:       record.NetSalary.StringFixed(2),

		DaysWorked: record.DaysWorked,
		LeaveDays:  record.LeaveDays,
		AbsentDays: record.AbsentDays,

		PaymentStatus: record.PaymentStatus,
		PaymentMethod: record.PaymentMethod,
		ReferenceNo:   record.ReferenceNo,
		PayslipURL:    record.PayslipURL,
	}
	if record.PaymentDate != nil {
		v := record.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &v
	}
	return resp
}

func mapPaymentEventToResponse(event PaymentEvent) PaymentEventResponse {
	return PaymentEventResponse{
		ID:            event.ID.String(),
		PayrollID:     event.PayrollID.String(),
		Amount:        event.Amount.StringFixed(2),
		PaymentDate:   event.PaymentDate.Format("2006-01-02"),
		PaymentMethod: event.PaymentMethod,
		ReferenceNo:   event.ReferenceNo,
		Notes:         event.Notes,
	}
}
