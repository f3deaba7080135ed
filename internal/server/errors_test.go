package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"carparking/internal/parking"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: size 0", parking.ErrInvalidArgument), http.StatusBadRequest, CodeInvalidArgument},
		{fmt.Errorf("%w: L1", parking.ErrDuplicateLot), http.StatusBadRequest, CodeDuplicateLot},
		{parking.ErrFull, http.StatusBadRequest, CodeLotFull},
		{parking.ErrDuplicateRegistration, http.StatusBadRequest, CodeDuplicateRegistration},
		{fmt.Errorf("%w: L9", parking.ErrLotNotFound), http.StatusNotFound, CodeLotNotFound},
		{parking.ErrSlotNotOccupied, http.StatusNotFound, CodeSlotNotOccupied},
		{parking.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{errors.New("disk on fire"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			appErr := FromError(tt.err)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.code, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromErrorKeepsAppError(t *testing.T) {
	bad := BadRequest("Invalid request body")

	assert.Same(t, bad, FromError(bad))
	assert.Same(t, bad, FromError(fmt.Errorf("decode: %w", bad)))
}

func TestInternalErrorHidesCause(t *testing.T) {
	appErr := FromError(errors.New("secret detail"))

	assert.Equal(t, "Internal server error", appErr.Message)
	assert.Contains(t, appErr.Error(), "secret detail")
}
