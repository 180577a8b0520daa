package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

func validationCode(t *testing.T, err error) string {
	t.Helper()
	var verr *storage.FileValidationError
	require.True(t, errors.As(err, &verr), "want *FileValidationError, got %v", err)
	return verr.Code
}

func TestValidateReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		size     int64
		mime     string
		rules    []storage.ValidationRule
		wantCode string
	}{
		{"no rules", 10, "image/png", nil, ""},
		{"within max", 10, "image/png", []storage.ValidationRule{storage.MaxSize(10)}, ""},
		{"over max", 11, "image/png", []storage.ValidationRule{storage.MaxSize(10)}, storage.ErrCodeFileTooLarge},
		{"below min", 1, "image/png", []storage.ValidationRule{storage.MinSize(2)}, storage.ErrCodeFileTooSmall},
		{"empty", 0, "image/png", []storage.ValidationRule{storage.NotEmpty()}, storage.ErrCodeEmptyFile},
		{"image allowed", 5, "image/jpeg", []storage.ValidationRule{storage.ImageOnly()}, ""},
		{"image rejected", 5, "application/pdf", []storage.ValidationRule{storage.ImageOnly()}, storage.ErrCodeInvalidMIME},
		{"document allowed", 5, "application/pdf", []storage.ValidationRule{storage.DocumentsOnly()}, ""},
		{"document rejected", 5, "video/mp4", []storage.ValidationRule{storage.DocumentsOnly()}, storage.ErrCodeInvalidMIME},
		{
			"first failure wins", 100, "video/mp4",
			[]storage.ValidationRule{storage.MaxSize(10), storage.ImageOnly()},
			storage.ErrCodeFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := storage.ValidateReader(tt.size, tt.mime, tt.rules...)
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tt.wantCode, validationCode(t, err))
		})
	}
}

func TestValidationFunc(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("nope")
	rule := storage.ValidationFunc(func(size int64, _ string) error {
		if size == 42 {
			return sentinel
		}
		return nil
	})

	require.NoError(t, storage.ValidateReader(1, "", rule))
	require.ErrorIs(t, storage.ValidateReader(42, "", rule), sentinel)
}

func TestFileValidationError_Details(t *testing.T) {
	t.Parallel()

	err := storage.ValidateReader(11, "", storage.MaxSize(10))
	var verr *storage.FileValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, int64(10), verr.Details["limit"])
	require.Equal(t, int64(11), verr.Details["got"])
	require.Equal(t, "file size 11 exceeds limit of 10 bytes", verr.Error())
}
