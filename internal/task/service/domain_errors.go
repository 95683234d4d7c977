package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/tasklist/backend/internal/common/errors"
)

var (
	ErrTextRequired = commonerrors.NewDomainError(
		"MISSING_TEXT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Missing text",
	)

	ErrTaskNotFound = commonerrors.NewDomainError(
		"TASK_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"Not found",
	)
)
