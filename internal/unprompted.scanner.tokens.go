package internal

import "fmt"

// SegmentKind identifies what a scanned segment holds
type SegmentKind string

// Segment kind constants
const (
	SegmentKindLiteral SegmentKind = "LITERAL"
	SegmentKindSlot    SegmentKind = "SLOT"
)

// Segment is one piece of a scanned template
type Segment struct {
	Kind   SegmentKind // Literal text or slot
	Value  string      // Raw text; slots keep their braces
	Offset int         // Byte offset in the source
}

// String returns a human-readable representation of the segment
func (s Segment) String() string {
	return fmt.Sprintf("Segment{%s: %q @ %d}", s.Kind, s.Value, s.Offset)
}

// IsSlot returns true if this segment is a variable slot
func (s Segment) IsSlot() bool {
	return s.Kind == SegmentKindSlot
}

// Body returns the slot content without its braces.
// Literal segments return their value unchanged.
func (s Segment) Body() string {
	if !s.IsSlot() {
		return s.Value
	}
	return s.Value[1 : len(s.Value)-1]
}

// NewLiteralSegment creates a literal segment
func NewLiteralSegment(value string, offset int) Segment {
	return Segment{Kind: SegmentKindLiteral, Value: value, Offset: offset}
}

// NewSlotSegment creates a slot segment; value includes the braces
func NewSlotSegment(value string, offset int) Segment {
	return Segment{Kind: SegmentKindSlot, Value: value, Offset: offset}
}
