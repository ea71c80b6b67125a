package unprompted

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a template file: optional YAML frontmatter with generation
// settings, followed by the template body.
//
//	---
//	description: product announcement
//	model: gpt-3.5-turbo-instruct
//	temperature: 0.7
//	max_tokens: 120
//	---
//	Today, we are announcing a new invention: the {invention_name}!
type Document struct {
	ModelSettings `yaml:",inline"`

	Description string `yaml:"description,omitempty"`

	// Body is the template source after the frontmatter
	Body string `yaml:"-"`
}

// ParseDocument parses a document. Content without a leading "---" line is
// treated entirely as the body.
func ParseDocument(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, NewDocumentError(ErrMsgDocumentEmpty, nil)
	}
	if len(data) > DefaultMaxDocumentSize {
		return nil, NewDocumentError(ErrMsgDocumentTooLarge, nil)
	}

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")

	if !strings.HasPrefix(content, FrontmatterDelimiter+"\n") && !strings.HasPrefix(content, FrontmatterDelimiter+"\r\n") {
		return &Document{Body: content}, nil
	}

	afterOpening := strings.TrimPrefix(content[len(FrontmatterDelimiter):], "\r")
	afterOpening = afterOpening[1:]

	var header, body string
	if strings.HasPrefix(afterOpening, FrontmatterDelimiter) {
		// Empty frontmatter
		body = afterOpening[len(FrontmatterDelimiter):]
	} else {
		closeIdx := strings.Index(afterOpening, "\n"+FrontmatterDelimiter)
		if closeIdx == -1 {
			return nil, NewDocumentError(ErrMsgFrontmatterUnclosed, nil)
		}
		header = afterOpening[:closeIdx]
		body = afterOpening[closeIdx+len("\n"+FrontmatterDelimiter):]
	}

	if strings.HasPrefix(body, "\r\n") {
		body = body[2:]
	} else if strings.HasPrefix(body, "\n") {
		body = body[1:]
	}

	var doc Document
	if err := yaml.Unmarshal([]byte(header), &doc); err != nil {
		return nil, NewDocumentError(ErrMsgFrontmatterInvalid, err)
	}
	doc.Body = body
	return &doc, nil
}

// ParseDocumentFile reads and parses a document from disk
func ParseDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError(ErrMsgDocumentRead, err)
	}
	return ParseDocument(data)
}

// Template parses the document body
func (d *Document) Template() *Template {
	return NewTemplate(d.Body)
}

// NewPrompt returns a Prompt for the body. Frontmatter settings apply
// first, so opts override them.
func (d *Document) NewPrompt(opts ...Option) *Prompt {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithModelSettings(d.ModelSettings))
	all = append(all, opts...)
	return NewPrompt(d.Body, all...)
}

// Marshal renders the document back to frontmatter + body form.
// Documents without settings or description are written as the bare body.
func (d *Document) Marshal() ([]byte, error) {
	if d.Description == "" && d.ModelSettings == (ModelSettings{}) {
		return []byte(d.Body), nil
	}
	header, err := yaml.Marshal(d)
	if err != nil {
		return nil, NewDocumentError(ErrMsgFrontmatterInvalid, err)
	}
	var sb strings.Builder
	sb.WriteString(FrontmatterDelimiter + "\n")
	sb.Write(header)
	sb.WriteString(FrontmatterDelimiter + "\n")
	sb.WriteString(d.Body)
	return []byte(sb.String()), nil
}
