package loanerrors

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
	ErrInvalidPrincipal = apperror.New(
		apperror.CodeInvalidInput,
		"loan principal must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDeduction = apperror.New(
		apperror.CodeInvalidInput,
		"monthly deduction must be greater than zero and not exceed the principal",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"payment amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan account not found",
		http.StatusNotFound,
	)
	ErrLoanNotActive = apperror.New(
		apperror.CodeInvalidState,
		"loan account is not active",
		http.StatusConflict,
	)
	ErrPaymentExceedsBalance = apperror.New(
		apperror.CodeInvalidInput,
		"payment amount exceeds remaining balance",
		http.StatusBadRequest,
	)
)
