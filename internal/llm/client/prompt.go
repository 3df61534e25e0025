package client

import (
	"fmt"
	"strings"

	"chronicle/internal/models"
)

// SystemPrompt returns the embedded changelog system prompt.
func SystemPrompt() string {
	data, err := embeddedPrompts.ReadFile("prompts/system.txt")
	if err != nil {
		// The embed directive guarantees the file ships with the binary.
		panic(fmt.Sprintf("embedded system prompt missing: %v", err))
	}
	return strings.TrimSpace(string(data))
}

// BuildPayload assembles the prompt pair for a scored commit sequence. The
// user prompt serializes commits in a stable line-oriented layout so the
// model sees them in priority order.
func BuildPayload(commits []models.ScoredCommit) models.PromptPayload {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a changelog from the following %d git commits.\n", len(commits))
	b.WriteString("Commits are listed in descending order of significance.\n\n")
	b.WriteString("### COMMIT DETAILS ###\n")

	for _, c := range commits {
		fmt.Fprintf(&b, "Commit: %s\n", shortHash(c.Hash))
		fmt.Fprintf(&b, "Author: %s\n", c.Author)
		fmt.Fprintf(&b, "Date: %s\n", c.Date.Format("2006-01-02"))
		if c.Category != models.CategoryNone {
			fmt.Fprintf(&b, "Category: %s\n", c.Category)
		}
		fmt.Fprintf(&b, "Subject: %s\n", c.Subject)
		if c.Body != "" {
			b.WriteString("Body: ")
			b.WriteString(strings.ReplaceAll(c.Body, "\n", "\n  "))
			b.WriteString("\n")
		}
		if c.FilesChanged > 0 {
			fmt.Fprintf(&b, "Files changed: %d\n", c.FilesChanged)
		}
		b.WriteString("\n")
	}

	b.WriteString("Respond with the changelog only, no preamble.\n")

	return models.PromptPayload{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   b.String(),
	}
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
