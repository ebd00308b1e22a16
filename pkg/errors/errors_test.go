// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/apishape/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "no_modules_error",
			code:    errors.ErrNoModules,
			message: "no assemblies loaded",
			wantStr: "[NO_MODULES] no assemblies loaded",
		},
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigInvalid,
			message: "unknown writer kind",
			wantStr: "[CONFIG_INVALID] unknown writer kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigInvalid, "invalid docid %q on line %d", "X:y", 3)
	assert.Equal(t, `invalid docid "X:y" on line 3`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrRender, "render failed")

		assert.Equal(t, errors.ErrRender, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[RENDER] render failed: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		assert.Nil(t, err)
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrFileCreate, "cannot create %s", "a.cs")
		assert.Equal(t, "cannot create a.cs", err.Message)
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrLoad, "unresolved").
		WithDetail("assembly", "System.Runtime").
		WithDetails(map[string]interface{}{"referencedBy": "Contoso"})

	assert.Equal(t, "System.Runtime", err.Details["assembly"])
	assert.Equal(t, "Contoso", err.Details["referencedBy"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrRender, "error 1")
	err2 := errors.New(errors.ErrRender, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNoModules, "none"), errors.ErrNoModules, true},
		{"different_code", errors.New(errors.ErrNoModules, "none"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrRender, errors.GetErrorCode(errors.New(errors.ErrRender, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestIsConfigurationError(t *testing.T) {
	assert.True(t, errors.IsConfigurationError(errors.New(errors.ErrConfigInvalid, "x")))
	assert.True(t, errors.IsConfigurationError(errors.New(errors.ErrConfigLoad, "x")))
	assert.False(t, errors.IsConfigurationError(errors.New(errors.ErrNoModules, "x")))
	assert.False(t, errors.IsConfigurationError(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read list file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigInvalid, "exclude list unavailable")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigInvalid))

	var middle *errors.ApishapeError
	require.True(t, stderrors.As(configErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrFileAccess, middle.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}
