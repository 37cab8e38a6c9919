package server

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// renderMarkdown converts the markdown guidance carried by generated plans
// into HTML for the plan detail view.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
