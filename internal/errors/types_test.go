package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsiteErrorString(t *testing.T) {
	t.Run("code, file and cause", func(t *testing.T) {
		cause := errors.New("no such file or directory")
		err := NewIOError(ErrCodeFileNotFound, "cannot read stylesheet", cause).
			WithFile("docs/assets/responsive.scss")

		assert.Equal(t,
			"[ERR_FILE_NOT_FOUND] docs/assets/responsive.scss cannot read stylesheet: no such file or directory",
			err.Error())
	})

	t.Run("message only", func(t *testing.T) {
		err := &DocsiteError{Message: "plain"}
		assert.Equal(t, "plain", err.Error())
	})
}

func TestDocsiteErrorIs(t *testing.T) {
	err := NewAliasError(ErrCodePathNotFound, "path not found: src/api")
	wrapped := fmt.Errorf("loading aliases: %w", err)

	assert.True(t, errors.Is(wrapped, &DocsiteError{Type: ErrorTypeAlias, Code: ErrCodePathNotFound}))
	assert.False(t, errors.Is(wrapped, &DocsiteError{Type: ErrorTypeIO, Code: ErrCodePathNotFound}))
	assert.True(t, HasCode(wrapped, ErrCodePathNotFound))
	assert.False(t, HasCode(errors.New("x"), ErrCodePathNotFound))
	assert.Equal(t, ErrorTypeAlias, TypeOf(wrapped))
	assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("x")))
}

func TestDocsiteErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewBuildError(ErrCodeWriteFailed, "write page", cause)

	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestWithContext(t *testing.T) {
	err := NewValidationError(ErrCodeInvalidIconName, "bad icon").
		WithContext("icon", "../x").
		WithContext("page", "/index")

	require.Len(t, err.Context, 2)
	assert.Equal(t, "../x", err.Context["icon"])
}

type recordingLogger struct {
	level  string
	msg    string
	fields []interface{}
}

func (r *recordingLogger) Error(_ context.Context, _ error, msg string, fields ...interface{}) {
	r.level, r.msg, r.fields = "error", msg, fields
}

func (r *recordingLogger) Warn(_ context.Context, _ error, msg string, fields ...interface{}) {
	r.level, r.msg, r.fields = "warn", msg, fields
}

func TestErrorHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("typed error", func(t *testing.T) {
		logger := &recordingLogger{}
		NewErrorHandler(logger).Handle(ctx,
			NewReflectionError(ErrCodeReflectionInvalid, "bad json", nil).WithFile("typedoc.json"))

		assert.Equal(t, "error", logger.level)
		assert.Equal(t, "Build aborted", logger.msg)
		assert.Contains(t, logger.fields, "typedoc.json")
		assert.Contains(t, logger.fields, ErrCodeReflectionInvalid)
	})

	t.Run("validation error is a warning", func(t *testing.T) {
		logger := &recordingLogger{}
		NewErrorHandler(logger).Handle(ctx, NewValidationError(ErrCodeConfigInvalid, "bad"))
		assert.Equal(t, "warn", logger.level)
	})

	t.Run("foreign error", func(t *testing.T) {
		logger := &recordingLogger{}
		NewErrorHandler(logger).Handle(ctx, errors.New("x"))
		assert.Equal(t, "Unhandled error occurred", logger.msg)
	})

	t.Run("nil error", func(t *testing.T) {
		logger := &recordingLogger{}
		NewErrorHandler(logger).Handle(ctx, nil)
		assert.Empty(t, logger.level)
	})
}
