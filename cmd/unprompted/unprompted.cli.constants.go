package main

import "os"

// CLI identity
const (
	CLIName        = "unprompted"
	CLIDescription = "Fill text templates with model-generated values"
)

// Command names
const (
	CmdNameFill     = "fill"
	CmdNameValidate = "validate"
	CmdNameList     = "list"
	CmdNameVersion  = "version"
)

// Flag names - long form
const (
	FlagTemplate    = "template"
	FlagName        = "name"
	FlagData        = "data"
	FlagDataFile    = "data-file"
	FlagOutput      = "output"
	FlagFormat      = "format"
	FlagQuiet       = "quiet"
	FlagVerbose     = "verbose"
	FlagEnvFile     = "env-file"
	FlagStoreDir    = "store-dir"
	FlagPostgresDSN = "postgres-dsn"
	FlagModel       = "model"
	FlagTemperature = "temperature"
	FlagMaxTokens   = "max-tokens"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagNameShort     = "n"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
	FlagQuietShort    = "q"
	FlagVerboseShort  = "v"
	FlagModelShort    = "m"
)

// Flag default values
const (
	FlagDefaultOutput  = "-" // stdout
	FlagDefaultFormat  = OutputFormatText
	FlagDefaultEnvFile = ".env"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
	ExitCodePaused          = 5
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// FilePermissions for files written by the CLI
const FilePermissions os.FileMode = 0o644

// Error messages - ALL must be constants
const (
	ErrMsgMissingTemplate     = "template source required: use --template or --name"
	ErrMsgConflictingTemplate = "--template and --name are mutually exclusive"
	ErrMsgConflictingStores   = "--store-dir and --postgres-dsn are mutually exclusive"
	ErrMsgMissingStore        = "template store required: use --store-dir or --postgres-dsn"
	ErrMsgOpenStoreFailed     = "failed to open template store"
	ErrMsgLoadTemplateFailed  = "failed to load template"
	ErrMsgListFailed          = "failed to list templates"
	ErrMsgInvalidJSON         = "invalid JSON data"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgParseDocumentFailed = "failed to parse template document"
	ErrMsgValidationFailed    = "template validation failed"
	ErrMsgFillFailed          = "template fill failed"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgEnvFileFailed       = "failed to load env file"
	ErrMsgJSONMarshalFailed   = "failed to marshal JSON"
)

// Output formatting
const (
	FmtError            = "error: %v\n"
	FmtMessageWithCause = "%s: %v"
	FmtNewline          = "\n"
	FmtSlotLine         = "%s\t%s\n"
	FmtPausedNote       = "paused at %s; supply %q in the data to continue\n"
	FmtValidTemplate    = "valid: %d slot(s)\n"
	FmtSpinnerDesc      = "[cyan]generating %s (stop %q)[reset]"
	VersionTextTemplate = "%s %s (commit %s, built %s, %s)"
	VersionUnknown      = "unknown"
)

// Log messages
const (
	LogMsgEnvFileLoaded = "env file loaded"
	LogMsgStoreOpened   = "template store opened"
	LogFieldPath        = "path"
	LogFieldStore       = "store"
)
