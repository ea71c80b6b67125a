package internal

import (
	"go.uber.org/zap"
)

// Scanner splits template source into literal and slot segments.
//
// A slot is '{' followed by one or more non-brace characters and '}'.
// Slots never nest: a '{' seen inside a candidate slot abandons the
// candidate (its text becomes literal) and starts a new one at that brace.
// "{}" and unterminated braces are literal text.
type Scanner struct {
	source string
	logger *zap.Logger
}

// NewScanner creates a scanner for the given source
func NewScanner(source string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated, zap.Int(LogFieldSource, len(source)))
	return &Scanner{
		source: source,
		logger: logger,
	}
}

// Scan returns the segments of the source in order.
// Empty literal segments are never produced, so concatenating the
// values of the result reproduces the source exactly.
func (s *Scanner) Scan() []Segment {
	s.logger.Debug(LogMsgScanStart)

	var segments []Segment
	state := scanStateLiteral
	literalStart := 0
	slotStart := 0
	slots := 0

	for i := 0; i < len(s.source); i++ {
		c := s.source[i]
		switch state {
		case scanStateLiteral:
			if c == CharSlotOpen {
				slotStart = i
				state = scanStateSlot
			}
		case scanStateSlot:
			switch c {
			case CharSlotOpen:
				slotStart = i
			case CharSlotClose:
				if i-slotStart < 2 {
					// "{}" has no body
					state = scanStateLiteral
					continue
				}
				if slotStart > literalStart {
					segments = append(segments, NewLiteralSegment(s.source[literalStart:slotStart], literalStart))
				}
				segments = append(segments, NewSlotSegment(s.source[slotStart:i+1], slotStart))
				slots++
				literalStart = i + 1
				state = scanStateLiteral
			}
		}
	}

	if literalStart < len(s.source) {
		segments = append(segments, NewLiteralSegment(s.source[literalStart:], literalStart))
	}

	s.logger.Debug(LogMsgScanEnd,
		zap.Int(LogFieldSegments, len(segments)),
		zap.Int(LogFieldSlots, slots))
	return segments
}
