package unprompted

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// filler carries the state of one walk over a template
type filler struct {
	prompt   *Prompt
	template *Template
	inputs   Values
	values   Values
	current  strings.Builder
	logger   *zap.Logger

	// removedLastTrailingSpace strips one leading space from the next
	// recorded line or multiline value. Nothing sets it yet.
	removedLastTrailingSpace bool
}

func newFiller(p *Prompt, tmpl *Template, inputs Values, current string, values Values) *filler {
	f := &filler{
		prompt:   p,
		template: tmpl,
		inputs:   inputs,
		values:   make(Values, len(values)),
		logger:   p.logger,
	}
	for name, value := range values {
		f.values[name] = value
	}
	f.current.WriteString(current)
	return f
}

// run walks the template parts starting at index start
func (f *filler) run(ctx context.Context, start int) (*Result, error) {
	parts := f.template.parts
	for i := start; i < len(parts); i++ {
		part := parts[i]
		if !part.IsSlot {
			f.current.WriteString(mergeOverlap(f.current.String(), part.Text))
			continue
		}

		slot, err := ParseSlot(part.Body())
		if err != nil {
			return nil, err
		}

		if value, ok := f.inputs[slot.Name]; ok {
			if err := f.render(slot, value); err != nil {
				return nil, err
			}
			continue
		}

		switch slot.Type {
		case VarTypeWait:
			f.logger.Debug(LogMsgFillPaused,
				zap.String(LogFieldVariable, slot.Name),
				zap.Int(LogFieldValues, len(f.values)))
			return &Result{
				State:     StatePaused,
				Text:      f.current.String(),
				Values:    f.values,
				Pending:   slot,
				Remaining: f.template.remainder(i),
				template:  f.template,
				resumeAt:  i,
			}, nil
		case VarTypeList:
			items, err := f.generateList(ctx, slot)
			if err != nil {
				return nil, err
			}
			f.values[slot.Name] = items
		default:
			value, err := f.generateScalar(ctx, slot)
			if err != nil {
				return nil, err
			}
			f.values[slot.Name] = value
		}
	}

	f.logger.Debug(LogMsgFillComplete, zap.Int(LogFieldValues, len(f.values)))
	return &Result{
		State:    StateCompleted,
		Text:     f.current.String(),
		Values:   f.values,
		template: f.template,
		resumeAt: len(parts),
	}, nil
}

// render appends a supplied value to the running string
func (f *filler) render(slot Slot, value any) error {
	f.logger.Debug(LogMsgInputRendered,
		zap.String(LogFieldVariable, slot.Name),
		zap.String(LogFieldType, slot.Type.String()))

	if slot.Type != VarTypeList {
		f.current.WriteString(fmt.Sprint(value))
		return nil
	}

	items, err := listItems(slot.Name, value)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(f.current.String(), LineBreak) {
		f.logger.Warn(LogMsgListNewline, zap.String(LogFieldVariable, slot.Name))
		f.current.WriteString(LineBreak)
	}
	for _, item := range items {
		f.current.WriteString(ListItemPrefix + item + ListItemSuffix)
	}
	return nil
}

// generateScalar requests a line or multiline value with the running
// string as the prompt and appends the completion unchanged
func (f *filler) generateScalar(ctx context.Context, slot Slot) (string, error) {
	stop := slot.Type.Stop()
	result, err := f.complete(ctx, slot, f.current.String(), stop)
	if err != nil {
		return "", err
	}

	if result == "" {
		f.logger.Warn(LogMsgCompletionEmpty,
			zap.String(LogFieldVariable, slot.Name),
			zap.String(LogFieldType, slot.Type.String()),
			zap.String(LogFieldStop, stop))
	}

	recorded := result
	if f.removedLastTrailingSpace && strings.HasPrefix(result, " ") {
		recorded = result[1:]
	}
	f.current.WriteString(result)
	return recorded, nil
}

// generateList requests bulleted items until at least slot.Min are
// collected. Items past slot.Max are dropped, and a line without the list
// marker ends the current response.
func (f *filler) generateList(ctx context.Context, slot Slot) ([]string, error) {
	items := []string{}
	for len(items) < slot.Min {
		f.logger.Debug(LogMsgListRequest,
			zap.String(LogFieldVariable, slot.Name),
			zap.Int(LogFieldItems, len(items)),
			zap.Int(LogFieldMin, slot.Min),
			zap.Int(LogFieldMax, slot.Max))

		completion, err := f.complete(ctx, slot, f.current.String()+ListMarker, StopList)
		if err != nil {
			return nil, err
		}

		// The prompt ends with the marker, so the first line arrives without it.
		for _, line := range strings.Split(ListMarker+completion, LineBreak) {
			if len(items) == slot.Max {
				break
			}
			if !strings.HasPrefix(line, ListMarker) {
				break
			}
			item := strings.TrimSpace(line[len(ListMarker):])
			items = append(items, item)
			f.current.WriteString(ListItemPrefix + item + ListItemSuffix)
		}
	}

	f.logger.Debug(LogMsgListComplete,
		zap.String(LogFieldVariable, slot.Name),
		zap.Int(LogFieldItems, len(items)))
	return items, nil
}

// complete sends one request with the prompt's fixed settings
func (f *filler) complete(ctx context.Context, slot Slot, prompt string, stop string) (string, error) {
	if f.prompt.completer == nil {
		return "", NewNilCompleterError(slot.Name)
	}

	settings := f.prompt.settings
	temperature, ok := settings.GetTemperature()
	if !ok {
		temperature = DefaultTemperature
	}
	f.logger.Debug(LogMsgCompletionRequest,
		zap.String(LogFieldVariable, slot.Name),
		zap.String(LogFieldModel, settings.Model),
		zap.Int(LogFieldPromptLen, len(prompt)))

	result, err := f.prompt.completer.Complete(ctx, CompletionRequest{
		Model:       settings.Model,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   settings.MaxTokens,
		Stop:        stop,
	})
	if err != nil {
		f.logger.Error(LogMsgCompletionFailed,
			zap.String(LogFieldVariable, slot.Name),
			zap.String(LogFieldType, slot.Type.String()),
			zap.String(LogFieldStop, stop),
			zap.Error(err))
		return "", NewCompletionError(slot, stop, err)
	}
	return result, nil
}

// mergeOverlap returns the part of literal that should be appended to
// current.
//
// k starts at 1 and grows while the last k runes of current equal the
// first k runes of literal (k stays below both rune counts); literal is
// appended from its k-th rune on. A shared boundary such as a trailing and
// a leading newline is therefore written once. Offsets are computed on the
// raw bytes so invalid UTF-8 passes through unchanged.
func mergeOverlap(current, literal string) string {
	if literal == "" {
		return ""
	}
	litRunes := utf8.RuneCountInString(literal)
	curRunes := utf8.RuneCountInString(current)

	// literal[:end] holds the first k runes, current[start:] the last k
	keep := 0
	_, size := utf8.DecodeRuneInString(literal)
	end := size
	_, size = utf8.DecodeLastRuneInString(current)
	start := len(current) - size

	for k := 1; k < litRunes && k < curRunes && current[start:] == literal[:end]; k++ {
		keep = end
		_, size = utf8.DecodeRuneInString(literal[end:])
		end += size
		_, size = utf8.DecodeLastRuneInString(current[:start])
		start -= size
	}
	return literal[keep:]
}

// listItems converts a supplied list value to strings
func listItems(name string, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		return items, nil
	default:
		return nil, NewInvalidListInputError(name, fmt.Sprintf("%T", value))
	}
}
