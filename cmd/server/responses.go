package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Simplici0/dealdesk/internal/pricing"
	"github.com/Simplici0/dealdesk/internal/store"
)

type errorCode string

const (
	codeValidation   errorCode = "VALIDATION_ERROR"
	codePrecondition errorCode = "PRECONDITION_FAILED"
	codeNotFound     errorCode = "NOT_FOUND"
	codeInternal     errorCode = "INTERNAL_ERROR"
)

var statusByCode = map[errorCode]int{
	codeValidation:   http.StatusBadRequest,
	codePrecondition: http.StatusUnprocessableEntity,
	codeNotFound:     http.StatusNotFound,
	codeInternal:     http.StatusInternalServerError,
}

type apiError struct {
	code    errorCode
	message string
	details any
	cause   error
}

func newAPIError(code errorCode, message string) *apiError {
	return &apiError{code: code, message: message}
}

func (e *apiError) withDetails(details any) *apiError {
	e.details = details
	return e
}

func (e *apiError) wrap(err error) *apiError {
	e.cause = err
	return e
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *apiError) Unwrap() error {
	return e.cause
}

type successEnvelope struct {
	Data any `json:"data"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// classify maps domain errors onto API errors. Anything unknown is internal.
func classify(err error) *apiError {
	var typed *apiError
	if errors.As(err, &typed) {
		return typed
	}

	switch {
	case errors.Is(err, pricing.ErrNoPricedItems),
		errors.Is(err, pricing.ErrNoLandingCost),
		errors.Is(err, pricing.ErrInvalidOtdOffer):
		return newAPIError(codePrecondition, err.Error()).wrap(err)
	case errors.Is(err, pricing.ErrInvalidMarginTarget),
		errors.Is(err, pricing.ErrUnknownMode):
		return newAPIError(codeValidation, err.Error()).wrap(err)
	case errors.Is(err, store.ErrDealNotFound):
		return newAPIError(codeNotFound, err.Error()).wrap(err)
	}
	return newAPIError(codeInternal, "internal server error").wrap(err)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

func (s *server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	typed := classify(err)
	status, ok := statusByCode[typed.code]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		s.log.Error(ctx, "request.error", err)
	} else {
		s.log.Debug(s.log.WithField(ctx, "error", err.Error()), "request.rejected")
	}

	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    string(typed.code),
		Message: typed.message,
		Details: typed.details,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body + "\n"))
}
