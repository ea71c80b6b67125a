package internal

// Slot delimiters
const (
	CharSlotOpen  = '{'
	CharSlotClose = '}'
)

// Scanner states
const (
	scanStateLiteral = iota
	scanStateSlot
)

// Log messages
const (
	LogMsgScannerCreated = "scanner created"
	LogMsgScanStart      = "starting scan"
	LogMsgScanEnd        = "scan complete"
)

// Log field names
const (
	LogFieldSource   = "source_length"
	LogFieldSegments = "segment_count"
	LogFieldSlots    = "slot_count"
)
