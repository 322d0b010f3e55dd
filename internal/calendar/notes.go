package calendar

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// renderNotes converts footer notes from Markdown. Raw HTML in the source is
// omitted by goldmark's default renderer.
func renderNotes(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", &TemplateError{Err: fmt.Errorf("render notes: %w", err)}
	}
	return buf.String(), nil
}
