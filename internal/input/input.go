// Package input loads and normalizes purpose text before evaluation.
// Applications arrive as plain text, markdown, or HTML exported from
// upstream document extraction; HTML is reduced to its visible text so
// markup never leaks into pattern matching.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Load reads a purpose description from a file, stripping markup when
// the extension indicates HTML.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read purpose file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FromHTML(string(data))
	default:
		return Normalize(string(data)), nil
	}
}

// FromHTML extracts visible text from an HTML document, skipping
// script, style and other non-content elements.
func FromHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return Normalize(buf.String()), nil
}

// Normalize collapses whitespace runs so downstream regexes see a
// single-spaced text regardless of the source formatting.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
