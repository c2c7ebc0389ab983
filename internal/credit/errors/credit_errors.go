package crediterrors

import (
	"net/http"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/apperror"
)

var (
	ErrInvalidClientID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid client id",
		http.StatusBadRequest,
	)
	ErrAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"credit application access has not been granted",
		http.StatusForbidden,
	)
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"client profile not found",
		http.StatusNotFound,
	)
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"credit application not found",
		http.StatusNotFound,
	)
	ErrApplicationLocked = apperror.New(
		apperror.CodeInvalidState,
		"credit application is submitted and locked; request a reopen to edit",
		http.StatusConflict,
	)
	ErrNotSubmitted = apperror.New(
		apperror.CodeInvalidState,
		"credit application has not been submitted",
		http.StatusConflict,
	)
	ErrReopenAlreadyPending = apperror.New(
		apperror.CodeConflict,
		"a credit reopen request is already pending",
		http.StatusConflict,
	)
	ErrDeclarationRequired = apperror.New(
		apperror.CodeValidationError,
		"Please confirm the declaration",
		http.StatusBadRequest,
	)
	ErrMissingDocuments = apperror.New(
		apperror.CodeValidationError,
		"required documents are missing",
		http.StatusBadRequest,
	)
)
