package unprompted

import (
	"errors"

	"github.com/itsatony/go-cuserr"
)

// Error message constants
const (
	// Configuration errors
	ErrMsgMissingAPIKey = "API key has not been configured"

	// Descriptor errors
	ErrMsgInvalidDescriptor = "error parsing variable descriptor"
	ErrMsgUnknownVarType    = "unknown variable type"
	ErrMsgEmptyVarName      = "variable name cannot be empty"

	// Backend errors
	ErrMsgInvalidResponse  = "invalid response from completion backend"
	ErrMsgCompletionFailed = "completion request failed"

	// Input errors
	ErrMsgInvalidListInput = "list variable requires a sequence of strings"
	ErrMsgNotPaused        = "only a paused result can be resumed"
	ErrMsgNilCompleter     = "no completer configured"

	// Document errors
	ErrMsgDocumentEmpty       = "document is empty"
	ErrMsgDocumentTooLarge    = "document exceeds maximum size"
	ErrMsgFrontmatterUnclosed = "frontmatter is missing its closing delimiter"
	ErrMsgFrontmatterInvalid  = "frontmatter is not valid YAML"
	ErrMsgDocumentRead        = "failed to read document"

	// Storage errors
	ErrMsgTemplateNotFound     = "template not found"
	ErrMsgInvalidTemplateName  = "invalid template name"
	ErrMsgStorageClosed        = "template store is closed"
	ErrMsgStorageFailed        = "template store operation failed"
	ErrMsgPostgresEmptyConnStr = "postgres connection string is empty"

	// Store driver errors
	ErrMsgNilStoreDriver          = "store driver is nil"
	ErrMsgDriverAlreadyRegistered = "store driver already registered"
	ErrMsgStoreDriverNotFound     = "store driver not registered"
)

// ErrTemplateNotFound is wrapped by every store lookup miss
var ErrTemplateNotFound = errors.New(ErrMsgTemplateNotFound)

// Error code constants for categorization
const (
	ErrCodeConfig     = "UNPROMPTED_CONFIG"
	ErrCodeDescriptor = "UNPROMPTED_DESCRIPTOR"
	ErrCodeBackend    = "UNPROMPTED_BACKEND"
	ErrCodeInput      = "UNPROMPTED_INPUT"
	ErrCodeDocument   = "UNPROMPTED_DOCUMENT"
	ErrCodeStorage    = "UNPROMPTED_STORAGE"
)

// NewMissingAPIKeyError creates the error returned when a completion is
// requested before a credential was configured
func NewMissingAPIKeyError() error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgMissingAPIKey).
		WithMetadata(MetaKeyExpected, EnvAPIKey)
}

// NewDescriptorError creates an error for a malformed slot type string.
// The type string is part of the message so callers can spot the bad slot.
func NewDescriptorError(typeString string) error {
	return cuserr.NewValidationError(ErrCodeDescriptor, ErrMsgInvalidDescriptor+": "+typeString).
		WithMetadata(MetaKeyDescriptor, typeString)
}

// NewUnknownVarTypeError creates an error for a type keyword that is not
// line, multiline, wait or list of ...
func NewUnknownVarTypeError(typeString string) error {
	return cuserr.NewValidationError(ErrCodeDescriptor, ErrMsgUnknownVarType+": "+typeString).
		WithMetadata(MetaKeyDescriptor, typeString)
}

// NewEmptyVarNameError creates an error for a slot without a name
func NewEmptyVarNameError(descriptor string) error {
	return cuserr.NewValidationError(ErrCodeDescriptor, ErrMsgEmptyVarName).
		WithMetadata(MetaKeyDescriptor, descriptor)
}

// NewInvalidResponseError creates an error for a backend response that
// lacks completion choices. The raw response is kept for diagnosis.
func NewInvalidResponseError(raw string) error {
	return cuserr.NewValidationError(ErrCodeBackend, ErrMsgInvalidResponse+": "+raw).
		WithMetadata(MetaKeyResponse, raw)
}

// NewCompletionError wraps a completion failure with the slot settings
// that produced the request
func NewCompletionError(slot Slot, stop string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeBackend, ErrMsgCompletionFailed).
		WithMetadata(MetaKeyVariable, slot.Name).
		WithMetadata(MetaKeyType, slot.Type.String()).
		WithMetadata(MetaKeyStop, stop)
}

// NewInvalidListInputError creates an error for a list slot whose input is
// not a sequence
func NewInvalidListInputError(name string, actual string) error {
	return cuserr.NewValidationError(ErrCodeInput, ErrMsgInvalidListInput).
		WithMetadata(MetaKeyVariable, name).
		WithMetadata(MetaKeyActual, actual)
}

// NewNotPausedError creates an error for resuming a result that did not pause
func NewNotPausedError(state State) error {
	return cuserr.NewValidationError(ErrCodeInput, ErrMsgNotPaused).
		WithMetadata(MetaKeyState, state.String())
}

// NewNilCompleterError creates an error for a fill that needs the backend
// while none is configured
func NewNilCompleterError(name string) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgNilCompleter).
		WithMetadata(MetaKeyVariable, name)
}

// NewDocumentError creates a document parsing error
func NewDocumentError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeDocument, msg)
	}
	return cuserr.NewValidationError(ErrCodeDocument, msg)
}

// NewTemplateNotFoundError creates a store lookup error that matches
// ErrTemplateNotFound with errors.Is
func NewTemplateNotFoundError(name string) error {
	return cuserr.WrapStdError(ErrTemplateNotFound, ErrCodeStorage, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyName, name)
}

// NewInvalidTemplateNameError creates an error for names a store cannot hold
func NewInvalidTemplateNameError(name string) error {
	return cuserr.NewValidationError(ErrCodeStorage, ErrMsgInvalidTemplateName).
		WithMetadata(MetaKeyName, name)
}

// NewStorageClosedError creates an error for use of a closed store
func NewStorageClosedError() error {
	return cuserr.NewValidationError(ErrCodeStorage, ErrMsgStorageClosed)
}

// NewStorageError wraps a backend storage failure
func NewStorageError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeStorage, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeStorage, msg)
}

// NewStoreDriverNotFoundError creates an error for an unregistered driver name
func NewStoreDriverNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyName, ErrMsgStoreDriverNotFound).
		WithMetadata(MetaKeyName, name)
}
