package payrollerrors

import (
	"net/http"

	"go-fuelops/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay period, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year",
		http.StatusBadRequest,
	)

	// Tidak ada profil kompensasi ACTIVE: hitungan tidak bisa jalan.
	ErrCompensationMissing = apperror.New(
		apperror.CodeInvalidState,
		"no active compensation profile for employee",
		http.StatusUnprocessableEntity,
	)

	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)
	ErrAlreadySettled = apperror.New(
		apperror.CodeConflict,
		"payroll record already paid",
		http.StatusConflict,
	)
	ErrRecordCancelled = apperror.New(
		apperror.CodeInvalidState,
		"payroll record is cancelled",
		http.StatusConflict,
	)
	ErrRecordAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"payroll record already paid, recalculation requires an explicit correction",
		http.StatusConflict,
	)
	ErrRecordNotPending = apperror.New(
		apperror.CodeInvalidState,
		"payroll record is not pending",
		http.StatusConflict,
	)
)
