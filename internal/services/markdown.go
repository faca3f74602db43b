package services

import (
	"bytes"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// renderMarkdown converts a markdown body to HTML for detail responses. On a
// conversion error the raw source is returned so the content is never lost.
func renderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return buf.String()
}
