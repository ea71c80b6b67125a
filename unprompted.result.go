package unprompted

import "fmt"

// State tells whether a fill ran to the end of its template
type State int

// Fill states
const (
	StateCompleted State = iota
	StatePaused
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateCompleted:
		return "completed"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Values maps variable names to values. Scalar values are strings;
// list values are []string.
type Values map[string]any

// String returns the named scalar value
func (v Values) String(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

// List returns the named list value
func (v Values) List(name string) ([]string, bool) {
	items, ok := v[name].([]string)
	return items, ok
}

// Result is the outcome of a fill.
//
// A completed result holds the finished text. A paused result stopped at a
// wait slot whose value was not supplied: Text is everything before that
// slot, Pending is the slot and Remaining is the template source from the
// slot onwards. Pass a paused result to Prompt.Resume to continue.
type Result struct {
	State State
	// Text is the running string at the end of the fill
	Text string
	// Values holds the generated values, keyed by variable name.
	// Variables taken from the inputs are not included.
	Values    Values
	Pending   Slot
	Remaining string

	template *Template
	resumeAt int
}

// IsPaused reports whether the fill stopped at a wait slot
func (r *Result) IsPaused() bool {
	return r.State == StatePaused
}

// IsCompleted reports whether the fill reached the end of the template
func (r *Result) IsCompleted() bool {
	return r.State == StateCompleted
}
