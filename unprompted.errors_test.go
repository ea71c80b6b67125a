package unprompted

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingAPIKeyError(t *testing.T) {
	err := NewMissingAPIKeyError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgMissingAPIKey)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	expected, ok := customErr.GetMetadata(MetaKeyExpected)
	assert.True(t, ok)
	assert.Equal(t, EnvAPIKey, expected)
}

func TestNewDescriptorError(t *testing.T) {
	err := NewDescriptorError("list of abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidDescriptor)
	assert.Contains(t, err.Error(), "list of abc")
}

func TestNewInvalidResponseError(t *testing.T) {
	raw := `{"error":{"message":"quota exceeded"}}`
	err := NewInvalidResponseError(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidResponse)
	assert.Contains(t, err.Error(), "quota exceeded")

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	response, ok := customErr.GetMetadata(MetaKeyResponse)
	assert.True(t, ok)
	assert.Equal(t, raw, response)
}

func TestNewCompletionError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewCompletionError(Slot{Name: "motto", Type: VarTypeLine}, StopLine, cause)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCompletionFailed)
	assert.True(t, errors.Is(err, cause))

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))

	variable, ok := customErr.GetMetadata(MetaKeyVariable)
	assert.True(t, ok)
	assert.Equal(t, "motto", variable)

	varType, ok := customErr.GetMetadata(MetaKeyType)
	assert.True(t, ok)
	assert.Equal(t, TypeKeywordLine, varType)

	stop, ok := customErr.GetMetadata(MetaKeyStop)
	assert.True(t, ok)
	assert.Equal(t, StopLine, stop)
}

func TestNewDocumentError(t *testing.T) {
	t.Run("with cause error", func(t *testing.T) {
		cause := errors.New("yaml: line 2")
		err := NewDocumentError(ErrMsgFrontmatterInvalid, cause)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFrontmatterInvalid)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("without cause error", func(t *testing.T) {
		err := NewDocumentError(ErrMsgDocumentEmpty, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgDocumentEmpty)
	})
}

func TestNewTemplateNotFoundError(t *testing.T) {
	err := NewTemplateNotFoundError("greeting")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	name, ok := customErr.GetMetadata(MetaKeyName)
	assert.True(t, ok)
	assert.Equal(t, "greeting", name)
}

func TestNewNotPausedError(t *testing.T) {
	err := NewNotPausedError(StateCompleted)
	require.Error(t, err)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	state, ok := customErr.GetMetadata(MetaKeyState)
	assert.True(t, ok)
	assert.Equal(t, "completed", state)
}

func TestStorageErrors(t *testing.T) {
	assert.Contains(t, NewStorageClosedError().Error(), ErrMsgStorageClosed)
	assert.Contains(t, NewInvalidTemplateNameError("../x").Error(), ErrMsgInvalidTemplateName)

	cause := errors.New("disk full")
	err := NewStorageError(ErrMsgStorageFailed, cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, NewStorageError(ErrMsgStorageFailed, nil).Error(), ErrMsgStorageFailed)
}
