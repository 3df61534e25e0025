package models

// OutputFormat selects how the generated changelog is rendered.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatPlain    OutputFormat = "plain"
)

// Valid reports whether f is one of the supported formats.
func (f OutputFormat) Valid() bool {
	return f == FormatMarkdown || f == FormatPlain
}

// PromptPayload is the fully assembled prompt pair sent to the generation
// service. No templating remains once it is built.
type PromptPayload struct {
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
}

// ChangelogResult is the raw text returned by the generation service plus
// the format it should be rendered in.
type ChangelogResult struct {
	Text   string       `json:"text"`
	Format OutputFormat `json:"format"`
}
