package loan

import (
	"context"
	"errors"
	"time"

	loanerrors "go-fuelops/internal/loan/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_service.go -destination=mock/loan_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLoanRequest) (LoanResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LoanResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]LoanResponse, error)
	RecordManualPayment(ctx context.Context, companyID, actorID, id string, req RecordPaymentRequest) (LoanResponse, error)
	Cancel(ctx context.Context, companyID, id string) error
	GetTransactions(ctx context.Context, companyID, loanID string) ([]LoanTransactionResponse, error)
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
		logger: zap.L().Named("loan_service"),
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLoanRequest) (LoanResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidEmployeeID
	}
	issuedDate, err := time.Parse("2006-01-02", req.IssuedDate)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidDateFormat
	}
	if !req.Principal.IsPositive() {
		return LoanResponse{}, loanerrors.ErrInvalidPrincipal
	}
	if !req.MonthlyDeduction.IsPositive() || req.MonthlyDeduction.GreaterThan(req.Principal) {
		return LoanResponse{}, loanerrors.ErrInvalidDeduction
	}

	loanType := req.LoanType
	if loanType == "" {
		loanType = TypeLoan
	}

	account := &LoanAccount{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		EmployeeID:       employeeUUID,
		LoanType:         loanType,
		Principal:        req.Principal.RoundBank(2),
		MonthlyDeduction: req.MonthlyDeduction.RoundBank(2),
		RemainingBalance: req.Principal.RoundBank(2),
		Status:           StatusActive,
		IssuedDate:       issuedDate,
		Notes:            req.Notes,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return LoanResponse{}, err
	}

	s.logger.Info("loan account created",
		zap.String("loan_id", account.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*account), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LoanResponse, error) {
	account, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}
	return mapToResponse(*account), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]LoanResponse, error) {
	accounts, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]LoanResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, mapToResponse(account))
	}
	return resp, nil
}

// RecordManualPayment menurunkan saldo di luar siklus gaji, misal karyawan
// bayar tunai di kasir. Guard saldo ada di SQL, bukan di sini.
func (s *service) RecordManualPayment(ctx context.Context, companyID, actorID, id string, req RecordPaymentRequest) (LoanResponse, error) {
	if !req.Amount.IsPositive() {
		return LoanResponse{}, loanerrors.ErrInvalidAmount
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LoanResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	account, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}
	if account.Status != StatusActive {
		return LoanResponse{}, loanerrors.ErrLoanNotActive
	}
	if req.Amount.GreaterThan(account.RemainingBalance) {
		return LoanResponse{}, loanerrors.ErrPaymentExceedsBalance
	}

	result, err := qtx.ApplyPaydown(ctx, companyID, id, req.Amount.RoundBank(2))
	if err != nil {
		return LoanResponse{}, err
	}
	if result.Applied == 0 {
		// Status atau saldo berubah di antara read dan update
		return LoanResponse{}, loanerrors.ErrLoanNotActive
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidEmployeeID
	}

	trx := &LoanTransaction{
		ID:           uuid.New(),
		CompanyID:    account.CompanyID,
		LoanID:       account.ID,
		Amount:       req.Amount.RoundBank(2),
		BalanceAfter: result.BalanceAfter,
		Source:       TransactionSourceManual,
		RecordedBy:   &actorUUID,
	}
	if err := qtx.CreateTransaction(ctx, trx); err != nil {
		return LoanResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LoanResponse{}, err
	}

	account.RemainingBalance = result.BalanceAfter
	account.Status = result.Status

	s.logger.Info("manual loan payment recorded",
		zap.String("loan_id", id),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("balance_after", result.BalanceAfter.StringFixed(2)),
	)

	return mapToResponse(*account), nil
}

func (s *service) Cancel(ctx context.Context, companyID, id string) error {
	rows, err := s.repo.Cancel(ctx, companyID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		_, findErr := s.repo.FindByIDAndCompany(ctx, companyID, id)
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return loanerrors.ErrLoanNotFound
		}
		return loanerrors.ErrLoanNotActive
	}
	return nil
}

func (s *service) GetTransactions(ctx context.Context, companyID, loanID string) ([]LoanTransactionResponse, error) {
	trxs, err := s.repo.ListTransactions(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	resp := make([]LoanTransactionResponse, 0, len(trxs))
	for _, trx := range trxs {
		item := LoanTransactionResponse{
			ID:           trx.ID.String(),
			LoanID:       trx.LoanID.String(),
			Amount:       trx.Amount.StringFixed(2),
			BalanceAfter: trx.BalanceAfter.StringFixed(2),
			Source:       trx.Source,
			CreatedAt:    trx.CreatedAt.Format(time.RFC3339),
		}
		if trx.PayrollID != nil {
			v := trx.PayrollID.String()
			item.PayrollID = &v
		}
		resp = append(resp, item)
	}
	return resp, nil
}

// DeductionFor is the advisory amount the payroll engine should withhold:
// the monthly deduction, capped at what is still owed.
func DeductionFor(account LoanAccount) decimal.Decimal {
	if account.MonthlyDeduction.GreaterThan(account.RemainingBalance) {
		return account.RemainingBalance
	}
	return account.MonthlyDeduction
}

func mapToResponse(account LoanAccount) LoanResponse {
	resp := LoanResponse{
		ID:               account.ID.String(),
		EmployeeID:       account.EmployeeID.String(),
		LoanType:         account.LoanType,
		Principal:        account.Principal.StringFixed(2),
		MonthlyDeduction: account.MonthlyDeduction.StringFixed(2),
		RemainingBalance: account.RemainingBalance.StringFixed(2),
		Status:           account.Status,
		IssuedDate:       account.IssuedDate.Format("2006-01-02"),
		Notes:            account.Notes,
	}
	if account.EndDate != nil {
		v := account.EndDate.Format("2006-01-02")
		resp.EndDate = &v
	}
	return resp
}
