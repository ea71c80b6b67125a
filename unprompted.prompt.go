package unprompted

import (
	"context"

	"go.uber.org/zap"
)

// Prompt fills a template, generating the values the caller does not
// supply through a Completer.
type Prompt struct {
	template  *Template
	completer Completer
	settings  ModelSettings
	logger    *zap.Logger
}

// NewPrompt parses source and returns a Prompt configured by opts
func NewPrompt(source string, opts ...Option) *Prompt {
	config := buildPromptConfig(opts)
	return &Prompt{
		template:  newTemplate(source, config.logger),
		completer: config.completer,
		settings:  config.settings,
		logger:    config.logger,
	}
}

// NewPromptFromTemplate returns a Prompt for an already parsed template
func NewPromptFromTemplate(tmpl *Template, opts ...Option) *Prompt {
	config := buildPromptConfig(opts)
	return &Prompt{
		template:  tmpl,
		completer: config.completer,
		settings:  config.settings,
		logger:    config.logger,
	}
}

func buildPromptConfig(opts []Option) *promptConfig {
	config := defaultPromptConfig()
	for _, opt := range opts {
		opt(config)
	}
	if config.logger == nil {
		config.logger = zap.NewNop()
	}
	return config
}

// Template returns the parsed template
func (p *Prompt) Template() *Template {
	return p.template
}

// Settings returns a copy of the generation settings sent with every request
func (p *Prompt) Settings() ModelSettings {
	return p.settings.clone()
}

// Fill walks the template in order. Literal text is merged into the running
// string, supplied variables are rendered from inputs and every other
// variable is generated by the completer. The walk pauses at the first wait
// slot whose value is not in inputs.
//
// Any error aborts the fill; no partial result is returned.
func (p *Prompt) Fill(ctx context.Context, inputs Values) (*Result, error) {
	p.logger.Debug(LogMsgFillStart, zap.Int(LogFieldParts, len(p.template.parts)))
	f := newFiller(p, p.template, inputs, "", nil)
	return f.run(ctx, 0)
}

// Resume continues a paused fill from its wait slot with the paused text
// as the running string. Values generated before the pause are carried
// into the new result. inputs should now hold the value of the wait slot;
// if it does not, the fill pauses at the same slot again.
func (p *Prompt) Resume(ctx context.Context, paused *Result, inputs Values) (*Result, error) {
	if paused == nil || !paused.IsPaused() {
		state := StateCompleted
		if paused != nil {
			state = paused.State
		}
		return nil, NewNotPausedError(state)
	}
	tmpl := paused.template
	if tmpl == nil {
		tmpl = p.template
	}
	p.logger.Debug(LogMsgFillResumed, zap.String(LogFieldVariable, paused.Pending.Name))
	f := newFiller(p, tmpl, inputs, paused.Text, paused.Values)
	return f.run(ctx, paused.resumeAt)
}

// Fill is a convenience function that parses source and fills it once
func Fill(ctx context.Context, source string, inputs Values, opts ...Option) (*Result, error) {
	return NewPrompt(source, opts...).Fill(ctx, inputs)
}
