package wordstep

import (
	"html"
	"strings"
)

// Highlight compares the newest translation against the previous one and
// marks each token of current that did not appear in previous. When
// previous is empty, no token is marked: the first translation of a
// sentence is never rendered as all-new. Comparison is an exact,
// case-sensitive string match with no normalization, and the output
// preserves current's token order.
func Highlight(current, previous string) []HighlightedToken {
	currentWords := SplitWords(current)
	if len(currentWords) == 0 {
		return nil
	}

	tokens := make([]HighlightedToken, len(currentWords))

	if previous == "" {
		for i, word := range currentWords {
			tokens[i] = HighlightedToken{Text: word}
		}
		return tokens
	}

	previousSet := make(map[string]bool)
	for _, word := range SplitWords(previous) {
		previousSet[word] = true
	}

	for i, word := range currentWords {
		tokens[i] = HighlightedToken{Text: word, New: !previousSet[word]}
	}
	return tokens
}

// RenderHTML renders highlighted tokens as an HTML fragment, emphasizing
// new tokens in red bold. Token text is escaped.
func RenderHTML(tokens []HighlightedToken) string {
	parts := make([]string, len(tokens))
	for i, token := range tokens {
		escaped := html.EscapeString(token.Text)
		if token.New {
			parts[i] = `<span style="color: red; font-weight: bold;">` + escaped + `</span>`
		} else {
			parts[i] = escaped
		}
	}
	return strings.Join(parts, " ")
}
