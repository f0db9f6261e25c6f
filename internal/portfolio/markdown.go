package portfolio

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in descriptions is dropped; goldmark escapes it unless WithUnsafe is set.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderMarkdown converts a project description to HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
