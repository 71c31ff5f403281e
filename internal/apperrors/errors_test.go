package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/finance_flow/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestNewStorageError_KeepsBothCauses(t *testing.T) {
	cause := errors.New("connection refused")

	err := apperrors.NewStorageError("append income", cause)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "append income")

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}

func TestNewStorageError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("failed to list income: %w", apperrors.NewStorageError("query income", errors.New("boom")))

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "query income", appErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestAppError_Unwrap(t *testing.T) {
	err := apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", apperrors.ErrStorage)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, "failed to begin transaction: storage error", err.Error())

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}

func TestAppError_NoCause(t *testing.T) {
	err := apperrors.NewAppError(http.StatusBadRequest, "bad input", nil)
	assert.Equal(t, "bad input", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
