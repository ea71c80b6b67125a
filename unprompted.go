// Package unprompted fills text templates whose placeholders are either
// supplied by the caller or generated by a text completion model.
//
// A template is plain text with variable slots in single braces:
//
//	Today, we are announcing a new invention: the {invention_name}!
//
//	Here are some of its capabilities:
//	{capabilities: list of 3-5}
//
//	Motto of the invention: "{motto}"
//
// # Variable Types
//
//	{name}                 same as {name: line}
//	{name: line}           generated until the next newline
//	{name: multiline}      generated until a blank line
//	{name: list of 4}      exactly 4 bulleted items
//	{name: list of 3-5}    between 3 and 5 bulleted items
//	{name: wait}           pause here unless the caller supplies it
//
// Whitespace around the name and the type is trimmed, so { name } and
// {name : line} both refer to the value "name".
//
// # Basic Usage
//
//	backend := unprompted.NewOpenAIBackend(unprompted.BackendConfigFromEnv(), nil)
//	prompt := unprompted.NewPrompt(source, unprompted.WithCompleter(backend))
//
//	result, err := prompt.Fill(ctx, unprompted.Values{
//	    "invention_name": "self-solving Rubik's Cube",
//	})
//	// result.Text holds the filled template,
//	// result.Values the generated capabilities and motto.
//
// Variables are resolved strictly in template order, and every completion
// request uses the text filled so far as its prompt.
//
// # Pausing
//
// A wait slot without a supplied value stops the fill. The result is
// paused: Text holds everything before the slot and Remaining the rest of
// the template. Resume the fill once the value is known:
//
//	result, err = prompt.Resume(ctx, result, unprompted.Values{"answer": "42"})
//
// # Documents and Storage
//
// A document adds YAML frontmatter with model settings to a template.
// Documents can be kept in a TemplateStore (memory, filesystem or
// PostgreSQL, optionally wrapped by CachedStore) and loaded by name:
//
//	store, err := unprompted.OpenStore("filesystem", "./prompts")
//	prompt, err := unprompted.LoadPrompt(ctx, store, "announcement",
//	    unprompted.WithCompleter(backend))
//
// # Error Handling
//
// Errors are go-cuserr custom errors carrying metadata such as the
// variable name and stop sequence. Any error aborts the fill.
package unprompted
