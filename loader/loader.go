// Package loader reads documents for a translation session: plain UTF-8
// text files, and HTML files reduced to their visible text.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ignoredTags are HTML elements whose content is never part of the
// readable document text.
var ignoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"textarea": true,
	"code":     true,
	"pre":      true,
}

// FromFile reads a document from path. HTML files (.html, .htm) are
// reduced to their visible text; everything else is returned verbatim.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ExtractText(string(data))
	default:
		return string(data), nil
	}
}

// ExtractText strips markup from HTML content, returning the visible text
// with nodes joined by single spaces. Script, style and other non-content
// elements are skipped.
func ExtractText(content string) (string, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && ignoredTags[strings.ToLower(n.Data)] {
			return
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(parts, " "), nil
}

// DeclaredLang returns the base language code declared on the document's
// <html lang> attribute ("en" from lang="en-US"), or "" when absent. It
// gives LoadDocument an explicit language so the content heuristic can be
// skipped.
func DeclaredLang(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}

	lang, ok := doc.Find("html").Attr("lang")
	if !ok {
		return ""
	}

	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
