// Test Type: Unit Test
// Description: Tests for the errors package - coded error construction and matching

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/modkeep/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrArchiveNotFound, "archive missing")
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrArchiveNotFound, err.Code)
	assert.Equal(t, "[ARCHIVE_NOT_FOUND] archive missing", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("open failed")
	err := errors.Wrap(inner, errors.ErrExtractionFailed, "could not extract")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "EXTRACTION_FAILED")
	assert.Contains(t, err.Error(), "open failed")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "nope"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "nope %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrArchiveUnsupported, "no backend for %s", ".rar")

	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveUnsupported))
	assert.False(t, errors.IsErrorCode(err, errors.ErrArchiveCorrupt))

	// Also through wrapping
	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrArchiveUnsupported))
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrPathTraversal, "entry escapes target")
	b := errors.New(errors.ErrPathTraversal, "different message")
	assert.True(t, stderrors.Is(a, b))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"coded error", errors.New(errors.ErrMergeFailed, "x"), errors.ErrMergeFailed},
		{"plain error", fmt.Errorf("plain"), errors.ErrUnknown},
		{"wrapped coded", fmt.Errorf("w: %w", errors.New(errors.ErrBackupWrite, "x")), errors.ErrBackupWrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.GetErrorCode(tt.err))
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrPathTraversal, "rejected").
		WithDetail("entry", "../../evil.txt")
	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "../../evil.txt", details["entry"])
}
