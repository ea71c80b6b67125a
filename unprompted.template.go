package unprompted

import (
	"strings"

	"github.com/itsatony/go-unprompted/internal"
	"go.uber.org/zap"
)

// Part is one piece of a parsed template: literal text or a slot
// descriptor including its braces.
type Part struct {
	Text   string
	IsSlot bool
	Offset int // Byte offset in the template source
}

// Body returns the descriptor text between the braces of a slot part
func (p Part) Body() string {
	if !p.IsSlot {
		return p.Text
	}
	return p.Text[1 : len(p.Text)-1]
}

// Template is an immutable parsed template. It can be filled any number
// of times, including concurrently.
type Template struct {
	source string
	parts  []Part
}

// NewTemplate parses source into a Template. Parsing never fails: text that
// does not form a slot stays literal. Slot descriptors are only checked when
// a fill reaches them, or by Validate.
func NewTemplate(source string) *Template {
	return newTemplate(source, nil)
}

func newTemplate(source string, logger *zap.Logger) *Template {
	segments := internal.NewScanner(source, logger).Scan()
	parts := make([]Part, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, Part{
			Text:   seg.Value,
			IsSlot: seg.IsSlot(),
			Offset: seg.Offset,
		})
	}
	return &Template{source: source, parts: parts}
}

// Source returns the template text
func (t *Template) Source() string {
	return t.source
}

// Parts returns a copy of the parsed parts. Joining their Text fields
// reproduces Source exactly.
func (t *Template) Parts() []Part {
	parts := make([]Part, len(t.parts))
	copy(parts, t.parts)
	return parts
}

// String joins the parts back together
func (t *Template) String() string {
	var sb strings.Builder
	for _, p := range t.parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Slots parses every slot descriptor in template order. It stops at the
// first malformed descriptor.
func (t *Template) Slots() ([]Slot, error) {
	var slots []Slot
	for _, p := range t.parts {
		if !p.IsSlot {
			continue
		}
		slot, err := ParseSlot(p.Body())
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// Validate checks every slot descriptor without filling anything
func (t *Template) Validate() error {
	_, err := t.Slots()
	return err
}

// remainder returns the template source from the given part onwards
func (t *Template) remainder(index int) string {
	if index >= len(t.parts) {
		return ""
	}
	return t.source[t.parts[index].Offset:]
}
