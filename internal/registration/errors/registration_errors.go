package registrationerrors

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
	ErrFormNotFound = apperror.New(
		apperror.CodeNotFound,
		"registration form not found",
		http.StatusNotFound,
	)
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"client profile not found",
		http.StatusNotFound,
	)
	ErrFormLocked = apperror.New(
		apperror.CodeInvalidState,
		"registration form is submitted and locked; request a reopen to edit",
		http.StatusConflict,
	)
	ErrNotSubmitted = apperror.New(
		apperror.CodeInvalidState,
		"registration form has not been submitted",
		http.StatusConflict,
	)
	ErrReopenAlreadyPending = apperror.New(
		apperror.CodeConflict,
		"a reopen request is already pending",
		http.StatusConflict,
	)
	ErrDeclarationRequired = apperror.New(
		apperror.CodeValidationError,
		"Please confirm the declaration",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid form status transition",
		http.StatusBadRequest,
	)
	ErrValidationFailed = apperror.New(
		apperror.CodeValidationError,
		"required fields are missing",
		http.StatusBadRequest,
	)
	ErrInvalidStep = apperror.New(
		apperror.CodeInvalidInput,
		"unknown form step",
		http.StatusBadRequest,
	)
)
