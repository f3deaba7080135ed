package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"carparking/internal/parking"
)

const (
	CodeInvalidArgument       = "INVALID_ARGUMENT"
	CodeValidation            = "VALIDATION_ERROR"
	CodeBadRequest            = "BAD_REQUEST"
	CodeDuplicateLot          = "DUPLICATE_LOT"
	CodeLotFull               = "LOT_FULL"
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"
	CodeLotNotFound           = "LOT_NOT_FOUND"
	CodeSlotNotOccupied       = "SLOT_NOT_OCCUPIED"
	CodeNotFound              = "NOT_FOUND"
	CodeInternal              = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *AppError {
	return &AppError{Code: CodeBadRequest, Message: message, HTTPStatus: http.StatusBadRequest}
}

func ValidationFailed(err error) *AppError {
	return &AppError{Code: CodeValidation, Message: err.Error(), HTTPStatus: http.StatusBadRequest, Err: err}
}

var domainErrors = []struct {
	target error
	code   string
	status int
}{
	{parking.ErrInvalidArgument, CodeInvalidArgument, http.StatusBadRequest},
	{parking.ErrDuplicateLot, CodeDuplicateLot, http.StatusBadRequest},
	{parking.ErrFull, CodeLotFull, http.StatusBadRequest},
	{parking.ErrDuplicateRegistration, CodeDuplicateRegistration, http.StatusBadRequest},
	{parking.ErrLotNotFound, CodeLotNotFound, http.StatusNotFound},
	{parking.ErrSlotNotOccupied, CodeSlotNotOccupied, http.StatusNotFound},
	{parking.ErrNotFound, CodeNotFound, http.StatusNotFound},
}

// FromError maps a parking error onto its HTTP code and status.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.target) {
			return &AppError{Code: de.code, Message: err.Error(), HTTPStatus: de.status, Err: err}
		}
	}

	return &AppError{Code: CodeInternal, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

func WriteAppError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := FromError(err)
	WriteError(ctx, w, appErr.HTTPStatus, appErr.Code, appErr.Message)
}
