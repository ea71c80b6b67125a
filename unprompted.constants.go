package unprompted

import "time"

// Variable type keywords used in slot descriptors
const (
	TypeKeywordLine      = "line"
	TypeKeywordMultiline = "multiline"
	TypeKeywordWait      = "wait"
	TypeKeywordList      = "list"
)

// Slot descriptor syntax
const (
	DescriptorSeparator = ":"
	ListTypePrefix      = "list of "
	ListRangeSeparator  = "-"
)

// Stop sequences sent to the completion backend
const (
	StopLine      = "\n"
	StopMultiline = "\n\n"
	StopList      = "\n\n"
)

// List rendering
const (
	ListMarker     = " -"
	ListItemPrefix = " - "
	ListItemSuffix = "\n"
	LineBreak      = "\n"
)

// Completion defaults
const (
	DefaultModel            = "gpt-3.5-turbo-instruct"
	DefaultTemperature      = 0.7
	DefaultMaxTokens        = 120
	DefaultTopP             = 1.0
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
)

// Environment variables read by BackendConfigFromEnv
const (
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvBaseURL      = "OPENAI_BASE_URL"
	EnvOrganization = "OPENAI_ORGANIZATION"
)

// Document constants
const (
	FrontmatterDelimiter   = "---"
	DocumentFileExtension  = ".prompt"
	DefaultMaxDocumentSize = 1 << 20
)

// Storage constants
const (
	PostgresTablePrefix         = "unprompted_"
	PostgresDefaultQueryTimeout = 30 * time.Second
	PostgresDefaultMaxOpenConns = 10
	PostgresDefaultMaxIdleConns = 2
	FilesystemDirPermissions    = 0o755
	FilesystemFilePermissions   = 0o644
)

// Store driver names
const (
	StoreDriverMemory     = "memory"
	StoreDriverFilesystem = "filesystem"
	StoreDriverPostgres   = "postgres"
)

// Cache defaults
const (
	CacheDefaultTTL         = 5 * time.Minute
	CacheDefaultMaxEntries  = 1000
	CacheDefaultNegativeTTL = 30 * time.Second
)

// Log messages
const (
	LogMsgFillStart         = "starting fill"
	LogMsgFillComplete      = "fill complete"
	LogMsgFillPaused        = "fill paused at wait slot"
	LogMsgFillResumed       = "resuming paused fill"
	LogMsgInputRendered     = "variable rendered from inputs"
	LogMsgListNewline       = "lists must start on their own line; adding a newline"
	LogMsgListRequest       = "requesting list items"
	LogMsgListComplete      = "list complete"
	LogMsgCompletionRequest = "requesting completion"
	LogMsgCompletionFailed  = "completion failed"
	LogMsgCompletionEmpty   = "no completion generated; the model may have predicted the stop sequence first"
	LogMsgBackendRequest    = "sending completion request"
	LogMsgBackendResponse   = "completion response received"
	LogMsgStoreMigrated     = "template store schema ready"
	LogMsgDocumentParsed    = "document parsed"
)

// Log field names
const (
	LogFieldVariable  = "variable"
	LogFieldType      = "type"
	LogFieldStop      = "stop"
	LogFieldModel     = "model"
	LogFieldParts     = "part_count"
	LogFieldItems     = "item_count"
	LogFieldMin       = "min"
	LogFieldMax       = "max"
	LogFieldValues    = "value_count"
	LogFieldPromptLen = "prompt_length"
	LogFieldResultLen = "result_length"
	LogFieldName      = "name"
)

// Metadata keys attached to errors
const (
	MetaKeyVariable   = "variable"
	MetaKeyType       = "type"
	MetaKeyStop       = "stop"
	MetaKeyDescriptor = "descriptor"
	MetaKeyResponse   = "response"
	MetaKeyExpected   = "expected"
	MetaKeyActual     = "actual"
	MetaKeyName       = "name"
	MetaKeyPath       = "path"
	MetaKeyState      = "state"
)
