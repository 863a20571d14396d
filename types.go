package wordstep

// TranslationRecord is a finished (original, translated) sentence pair.
// Records are keyed by sentence index inside the session, so re-saving a
// sentence overwrites its record instead of appending a duplicate.
type TranslationRecord struct {
	Original   string // Original sentence text
	Translated string // Translated text; empty means "original saved without translation"
}

// SelectedWord is one selected word token of the active sentence.
type SelectedWord struct {
	Index int    // 0-based position within the sentence's word sequence
	Text  string // The word token at that position
}

// HighlightedToken is one token of a translation result annotated with
// whether it is new relative to the previous result.
type HighlightedToken struct {
	Text string
	New  bool
}

// Snapshot is the saved working state of one sentence, restored when the
// session navigates back to it.
type Snapshot struct {
	Selected map[int]string // wordIndex -> word text
	Current  string         // last successful translation
	Previous string         // translation before that, for diffing
}

// clone returns a deep copy so session mutation never aliases a stored snapshot.
func (s Snapshot) clone() Snapshot {
	selected := make(map[int]string, len(s.Selected))
	for idx, word := range s.Selected {
		selected[idx] = word
	}
	return Snapshot{Selected: selected, Current: s.Current, Previous: s.Previous}
}
