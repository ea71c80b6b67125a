package unprompted

import (
	"fmt"
	"strconv"
	"strings"
)

// VarType is the declared type of a template variable
type VarType int

// Variable types
const (
	VarTypeLine VarType = iota
	VarTypeMultiline
	VarTypeWait
	VarTypeList
)

// String returns the type keyword
func (t VarType) String() string {
	switch t {
	case VarTypeMultiline:
		return TypeKeywordMultiline
	case VarTypeWait:
		return TypeKeywordWait
	case VarTypeList:
		return TypeKeywordList
	default:
		return TypeKeywordLine
	}
}

// Stop returns the stop sequence used when the backend generates a value
// of this type. Wait slots are never generated and return "".
func (t VarType) Stop() string {
	switch t {
	case VarTypeLine:
		return StopLine
	case VarTypeMultiline:
		return StopMultiline
	case VarTypeList:
		return StopList
	default:
		return ""
	}
}

// Slot is a parsed variable descriptor such as "{items: list of 3-5}"
type Slot struct {
	Name string
	Type VarType
	// Min and Max bound the number of list items; both are zero for
	// non-list types.
	Min int
	Max int
}

// String renders the slot back into descriptor syntax
func (s Slot) String() string {
	switch s.Type {
	case VarTypeList:
		if s.Min == s.Max {
			return fmt.Sprintf("{%s: %s%d}", s.Name, ListTypePrefix, s.Min)
		}
		return fmt.Sprintf("{%s: %s%d%s%d}", s.Name, ListTypePrefix, s.Min, ListRangeSeparator, s.Max)
	default:
		return fmt.Sprintf("{%s: %s}", s.Name, s.Type)
	}
}

// ParseSlot parses a slot body (the text between the braces).
//
// The body is split on the first ':'. Without a type the slot is a line.
// List bounds are "list of MIN-MAX" or "list of N" for exactly N items.
func ParseSlot(body string) (Slot, error) {
	name, typeString, hasType := strings.Cut(body, DescriptorSeparator)
	name = strings.TrimSpace(name)
	if name == "" {
		return Slot{}, NewEmptyVarNameError(body)
	}
	if !hasType {
		return Slot{Name: name, Type: VarTypeLine}, nil
	}

	typeString = strings.TrimSpace(typeString)
	if strings.HasPrefix(typeString, ListTypePrefix) {
		minItems, maxItems, err := parseListBounds(typeString[len(ListTypePrefix):])
		if err != nil {
			return Slot{}, NewDescriptorError(typeString)
		}
		return Slot{Name: name, Type: VarTypeList, Min: minItems, Max: maxItems}, nil
	}

	switch typeString {
	case TypeKeywordLine:
		return Slot{Name: name, Type: VarTypeLine}, nil
	case TypeKeywordMultiline:
		return Slot{Name: name, Type: VarTypeMultiline}, nil
	case TypeKeywordWait:
		return Slot{Name: name, Type: VarTypeWait}, nil
	default:
		return Slot{}, NewUnknownVarTypeError(typeString)
	}
}

// parseListBounds parses "MIN-MAX" or "N"
func parseListBounds(countRange string) (int, int, error) {
	if !strings.Contains(countRange, ListRangeSeparator) {
		n, err := parseCount(countRange)
		if err != nil {
			return 0, 0, err
		}
		return n, n, nil
	}

	bounds := strings.Split(countRange, ListRangeSeparator)
	if len(bounds) != 2 {
		return 0, 0, fmt.Errorf("expected MIN%sMAX, got %q", ListRangeSeparator, countRange)
	}
	minItems, err := parseCount(bounds[0])
	if err != nil {
		return 0, 0, err
	}
	maxItems, err := parseCount(bounds[1])
	if err != nil {
		return 0, 0, err
	}
	if minItems > maxItems {
		return 0, 0, fmt.Errorf("min %d exceeds max %d", minItems, maxItems)
	}
	return minItems, maxItems, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
