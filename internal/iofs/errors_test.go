package iofs

import (
	"errors"
	"testing"

	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateDirError_Structure verifies error structure.
func TestCreateDirError_Structure(t *testing.T) {
	testDir := "/test/dir"
	originalErr := errors.New("permission denied")

	err := CreateDirError(testDir, originalErr)

	require.NotNil(t, err)

	// Check if it's a gn.Error
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok,
		"Error should be of type *gn.Error")

	// Verify error code
	assert.Equal(t, errcode.CreateDirError, gnErr.Code,
		"Error code should be CreateDirError")

	// Verify user message
	assert.NotEmpty(t, gnErr.Msg,
		"User message should not be empty")
	assert.Contains(t, gnErr.Msg, "%s",
		"Message should contain format placeholder")

	// Verify vars for message formatting
	require.Len(t, gnErr.Vars, 1,
		"Should have one variable for message formatting")
	assert.Equal(t, testDir, gnErr.Vars[0],
		"Variable should be the directory path")

	// Verify wrapped error
	assert.NotNil(t, gnErr.Err,
		"Wrapped error should not be nil")
	assert.ErrorIs(t, gnErr.Err, originalErr,
		"Should wrap original error")
}

// TestCopyFileError_Structure verifies error structure.
func TestCopyFileError_Structure(t *testing.T) {
	testFile := "/test/config.yaml"
	originalErr := errors.New("no space left")

	err := CopyFileError(testFile, originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok,
		"Error should be of type *gn.Error")

	assert.Equal(t, errcode.CopyFileError, gnErr.Code,
		"Error code should be CopyFileError")

	require.Len(t, gnErr.Vars, 1,
		"Should have one variable")
	assert.Equal(t, testFile, gnErr.Vars[0],
		"Variable should be the file path")

	assert.NotNil(t, gnErr.Err)
	assert.ErrorIs(t, gnErr.Err, originalErr,
		"Should wrap original error")
}

// TestReadFileError_Structure verifies error structure.
func TestReadFileError_Structure(t *testing.T) {
	testPath := "/test/data.json"
	originalErr := errors.New("file not found")

	err := ReadFileError(testPath, originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok,
		"Error should be of type *gn.Error")

	assert.Equal(t, errcode.ReadFileError, gnErr.Code,
		"Error code should be ReadFileError")

	assert.Contains(t, gnErr.Msg, "<em>",
		"Message should contain emphasis tags")

	require.Len(t, gnErr.Vars, 1,
		"Should have one variable")
	assert.Equal(t, testPath, gnErr.Vars[0],
		"Variable should be the file path")

	assert.ErrorIs(t, gnErr.Err, originalErr,
		"Should wrap original error")
}

// TestErrorFunctions_CallerInfo verifies caller info
// is captured.
func TestErrorFunctions_CallerInfo(t *testing.T) {
	tests := []struct {
		name    string
		errorFn func() error
	}{
		{
			name: "CreateDirError",
			errorFn: func() error {
				return CreateDirError("/test",
					errors.New("test"))
			},
		},
		{
			name: "CopyFileError",
			errorFn: func() error {
				return CopyFileError("/test.txt",
					errors.New("test"))
			},
		},
		{
			name: "ReadFileError",
			errorFn: func() error {
				return ReadFileError("/data",
					errors.New("test"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.errorFn()
			gnErr := err.(*gn.Error)

			// Verify error contains function context
			// (from runtime.Caller)
			assert.NotNil(t, gnErr.Err,
				"Should capture caller context")
			assert.Contains(t, gnErr.Err.Error(), "from",
				"Error should mention caller context")
		})
	}
}
