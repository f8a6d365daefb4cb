package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewError tests the basic creation of errors.
func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		code    ErrorCode
		message string
	}{
		{
			name:    "InvalidConfiguration",
			code:    InvalidConfiguration,
			message: "population size must be positive",
		},
		{
			name:    "ScoringExhausted",
			code:    ScoringExhausted,
			message: "every candidate failed scoring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)

			customErr, ok := err.(*Error)
			require.True(t, ok, "should be a custom *Error")

			assert.Equal(t, tt.code, customErr.Code())
			assert.Equal(t, tt.message, customErr.Error())
			assert.Nil(t, customErr.Unwrap())
		})
	}
}

// TestWrapError tests error wrapping functionality.
func TestWrapError(t *testing.T) {
	original := stderrors.New("analyzer blew up")

	err := Wrap(original, ReproductionFailed, "slot could not be filled")
	require.NotNil(t, err)

	customErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ReproductionFailed, customErr.Code())
	assert.Equal(t, "slot could not be filled: analyzer blew up", customErr.Error())
	assert.Equal(t, original, customErr.Unwrap())

	assert.Nil(t, Wrap(nil, ReproductionFailed, "ignored"))
}

func TestWithFields(t *testing.T) {
	t.Run("adds fields to structured error", func(t *testing.T) {
		err := New(InitializationFailed, "generation 0 construction failed")
		err = WithFields(err, Fields{"generation": 0, "phase": "initializing"})

		customErr, ok := err.(*Error)
		require.True(t, ok)
		assert.Equal(t, InitializationFailed, customErr.Code())
		assert.Equal(t, 0, customErr.Fields()["generation"])
		assert.Equal(t, "initializing", customErr.Fields()["phase"])
		assert.Contains(t, customErr.Error(), "generation=0")
	})

	t.Run("merge keeps existing fields and overrides collisions", func(t *testing.T) {
		err := WithFields(New(ScoringFailed, "evaluate failed"), Fields{"slot": 3, "generation": 1})
		err = WithFields(err, Fields{"generation": 2})

		customErr, ok := err.(*Error)
		require.True(t, ok)
		assert.Equal(t, 3, customErr.Fields()["slot"])
		assert.Equal(t, 2, customErr.Fields()["generation"])
	})

	t.Run("wraps plain errors with Unknown code", func(t *testing.T) {
		err := WithFields(stderrors.New("plain"), Fields{"slot": 1})

		customErr, ok := err.(*Error)
		require.True(t, ok)
		assert.Equal(t, Unknown, customErr.Code())
	})

	t.Run("nil error stays nil", func(t *testing.T) {
		assert.Nil(t, WithFields(nil, Fields{"slot": 1}))
	})
}

func TestErrorMatching(t *testing.T) {
	err := WithFields(New(ScoringExhausted, "no viable parents"), Fields{"generation": 4})
	wrapped := Wrap(err, Unknown, "run aborted")

	assert.True(t, stderrors.Is(wrapped, New(Unknown, "")))
	assert.True(t, stderrors.Is(err, New(ScoringExhausted, "")))
	assert.False(t, stderrors.Is(err, New(ReproductionFailed, "")))

	var custom *Error
	require.True(t, stderrors.As(err, &custom))
	assert.Equal(t, ScoringExhausted, custom.Code())
}

func TestCode(t *testing.T) {
	assert.Equal(t, ScoringExhausted, Code(New(ScoringExhausted, "x")))
	assert.Equal(t, ReproductionFailed, Code(Wrap(New(ReproductionFailed, "x"), ReproductionFailed, "y")))
	assert.Equal(t, Unknown, Code(stderrors.New("plain")))
}

func TestCheckContext(t *testing.T) {
	assert.NoError(t, CheckContext(context.Background(), "scoring"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CheckContext(ctx, "scoring")
	require.Error(t, err)
	assert.Equal(t, Canceled, Code(err))
	assert.Contains(t, err.Error(), "scoring canceled")
}
