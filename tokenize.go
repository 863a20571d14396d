package wordstep

import "strings"

// SplitSentences splits text into sentences. A run of one or more terminal
// punctuation marks (".", "!", "?") closes the accumulating sentence, with
// the punctuation retained at the sentence end. Trailing text without
// terminal punctuation becomes a final sentence if non-empty after
// trimming. Blank input yields nil.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if !isTerminal(runes[i]) {
			continue
		}

		// Consume the rest of the punctuation run.
		for i+1 < len(runes) && isTerminal(runes[i+1]) {
			i++
			current.WriteRune(runes[i])
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SplitWords splits a sentence into word tokens on runs of whitespace and
// tabs. Blank input yields nil.
func SplitWords(sentence string) []string {
	fields := strings.Fields(sentence)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// DetectLanguage guesses whether text is Korean or English: if at least
// 30% of the Hangul-or-Latin letters are Hangul, the text is Korean.
// Empty text defaults to English.
func DetectLanguage(text string) string {
	korean := 0
	total := 0

	for _, r := range text {
		switch {
		case isHangul(r):
			korean++
			total++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			total++
		}
	}

	if total == 0 {
		return "en"
	}

	// korean/total >= 0.3, in integer arithmetic
	if korean*10 >= total*3 {
		return "ko"
	}
	return "en"
}

// isHangul reports whether r is a Hangul syllable or jamo.
func isHangul(r rune) bool {
	switch {
	case r >= 0xAC00 && r <= 0xD7A3: // precomposed syllables
		return true
	case r >= 0x1100 && r <= 0x11FF: // jamo
		return true
	case r >= 0x3130 && r <= 0x318F: // compatibility jamo
		return true
	}
	return false
}

// ProcessText splits text into sentences and resolves the effective source
// language: explicitLang if given, otherwise the detected language. Blank
// text yields no sentences and the English default.
func ProcessText(text, explicitLang string) ([]string, string) {
	if strings.TrimSpace(text) == "" {
		return nil, "en"
	}

	lang := explicitLang
	if lang == "" {
		lang = DetectLanguage(text)
	}

	return SplitSentences(text), lang
}

// SentenceWords returns the word tokens of sentences[idx], or nil when the
// index is out of range.
func SentenceWords(sentences []string, idx int) []string {
	if idx < 0 || idx >= len(sentences) {
		return nil
	}
	return SplitWords(sentences[idx])
}
