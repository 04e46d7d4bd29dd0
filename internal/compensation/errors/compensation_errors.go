package compensationerrors

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
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary and allowance amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidPercent = apperror.New(
		apperror.CodeInvalidInput,
		"percentage rates must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidMultiplier = apperror.New(
		apperror.CodeInvalidInput,
		"overtime multipliers must be at least 1",
		http.StatusBadRequest,
	)
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"no active compensation profile for this employee",
		http.StatusNotFound,
	)
)
