package clienterrors

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
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"client not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"a client with this email already exists",
		http.StatusConflict,
	)
	ErrCredentialsAlreadySent = apperror.New(
		apperror.CodeInvalidState,
		"credentials were already issued for this client",
		http.StatusConflict,
	)
	ErrNoReopenPending = apperror.New(
		apperror.CodeInvalidState,
		"no reopen request is pending for this client",
		http.StatusConflict,
	)
	ErrNoCreditReopenPending = apperror.New(
		apperror.CodeInvalidState,
		"no credit reopen request is pending for this client",
		http.StatusConflict,
	)
	ErrCreditAlreadyRequested = apperror.New(
		apperror.CodeConflict,
		"credit access was already requested",
		http.StatusConflict,
	)
	ErrCreditAlreadyGranted = apperror.New(
		apperror.CodeInvalidState,
		"credit access is already granted",
		http.StatusConflict,
	)
)
