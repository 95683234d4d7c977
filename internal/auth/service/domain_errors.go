package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/tasklist/backend/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid credentials",
	)

	ErrUsernameTaken = commonerrors.NewDomainError(
		"USER_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"User exists",
	)

	ErrMissingFields = commonerrors.NewDomainError(
		"MISSING_FIELDS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Missing fields",
	)
)

func newInternalError(code string, cause error) commonerrors.DomainError {
	return commonerrors.NewInternalError(code, commonerrors.ErrInternalError.Message(), cause)
}
