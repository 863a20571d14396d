package wordstep

import (
	"context"
	"sort"
	"strings"
)

// Session is the state machine for one incremental translation session.
// It owns the loaded document, the per-sentence snapshots, the navigation
// cursor and the accumulated translation records. A session is not safe
// for concurrent use: each user action runs to completion before the next
// is accepted.
type Session struct {
	gateway Gateway

	sourceLang string
	targetLang string

	fullText  string
	sentences []string
	cursor    int

	words    []string       // word tokens of the active sentence
	selected map[int]string // wordIndex -> word text
	current  string         // latest translation of the accumulated text
	previous string         // translation before that, for diff highlighting

	snapshots map[int]Snapshot
	records   map[int]TranslationRecord
}

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session)

// WithLanguagePair sets the initial source and target languages as a pair.
func WithLanguagePair(sourceLang, targetLang string) SessionOption {
	return func(s *Session) {
		s.sourceLang = sourceLang
		s.targetLang = targetLang
	}
}

// NewSession creates a session with no document loaded. The gateway may be
// nil; toggles then update the selection without translating.
func NewSession(gateway Gateway, opts ...SessionOption) *Session {
	s := &Session{
		gateway:    gateway,
		sourceLang: DefaultSourceLang,
		targetLang: DefaultTargetLang,
		selected:   make(map[int]string),
		snapshots:  make(map[int]Snapshot),
		records:    make(map[int]TranslationRecord),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoadDocument replaces the session's document with text and returns the
// number of sentences found. Blank text fails with *EmptyInputError; text
// that tokenizes to zero sentences fails with *NoSentencesError. On
// success all prior state is discarded atomically: sentences are replaced,
// the cursor resets to 0, and every record and snapshot is cleared.
//
// requestedLang sets the source language explicitly; pass "" to detect it.
// A detected language adopts its Korean/English counterpart as the target.
func (s *Session) LoadDocument(text, requestedLang string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, &EmptyInputError{}
	}

	sentences, lang := ProcessText(text, requestedLang)
	if len(sentences) == 0 {
		return 0, &NoSentencesError{}
	}

	s.fullText = text
	s.sentences = sentences
	s.cursor = 0
	s.records = make(map[int]TranslationRecord)
	s.snapshots = make(map[int]Snapshot)

	s.sourceLang = lang
	if requestedLang == "" || s.targetLang == s.sourceLang {
		s.targetLang = Counterpart(lang)
	}

	s.restore(0)

	return len(sentences), nil
}

// Drop discards the loaded document and returns the session to its empty
// state. The language pair is kept.
func (s *Session) Drop() {
	s.fullText = ""
	s.sentences = nil
	s.cursor = 0
	s.words = nil
	s.selected = make(map[int]string)
	s.current = ""
	s.previous = ""
	s.snapshots = make(map[int]Snapshot)
	s.records = make(map[int]TranslationRecord)
}

// ToggleWord flips membership of the word at idx in the active selection
// and refreshes the translation of the accumulated text. An out-of-range
// index is a no-op. On gateway failure the error is returned, the current
// translation is cleared and the previous translation is left untouched.
func (s *Session) ToggleWord(ctx context.Context, idx int) error {
	if idx < 0 || idx >= len(s.words) {
		return nil
	}

	if _, ok := s.selected[idx]; ok {
		delete(s.selected, idx)
	} else {
		s.selected[idx] = s.words[idx]
	}

	return s.refreshTranslation(ctx)
}

// TranslateSentence selects every word of the active sentence and
// translates the whole sentence with the same translate-and-shift logic
// as ToggleWord.
func (s *Session) TranslateSentence(ctx context.Context) error {
	if len(s.sentences) == 0 {
		return nil
	}

	s.selected = make(map[int]string, len(s.words))
	for idx, word := range s.words {
		s.selected[idx] = word
	}

	return s.refreshTranslation(ctx)
}

// refreshTranslation recomputes the accumulated text and updates the
// translation pair. An empty selection shifts current into previous and
// clears current. A successful call shifts current into previous and
// stores the new result; a failed call clears current only, so the last
// successful result stays available for diffing the next success.
func (s *Session) refreshTranslation(ctx context.Context) error {
	text := s.AccumulatedText()

	if text == "" {
		s.previous = s.current
		s.current = ""
		return nil
	}

	if s.gateway == nil {
		return nil
	}

	result, err := s.gateway.Translate(ctx, text, s.sourceLang, s.targetLang)
	if err != nil {
		s.current = ""
		return err
	}

	s.previous = s.current
	s.current = result
	return nil
}

// SaveSentence upserts the TranslationRecord for the active sentence,
// pairing the sentence text with the current translation (possibly empty:
// saving the original alone is allowed). It reports whether an existing
// record was overwritten. Without a loaded document it does nothing.
func (s *Session) SaveSentence() bool {
	if len(s.sentences) == 0 {
		return false
	}

	_, existed := s.records[s.cursor]
	s.records[s.cursor] = TranslationRecord{
		Original:   s.sentences[s.cursor],
		Translated: s.current,
	}
	return existed
}

// Advance snapshots and saves the active sentence, then moves to the next
// one, restoring its saved state or initializing it empty. It returns
// false, without moving, when the cursor is already on the last sentence;
// the snapshot and record are still written.
func (s *Session) Advance() bool {
	if len(s.sentences) == 0 {
		return false
	}

	s.snapshot()
	s.SaveSentence()

	if s.cursor >= len(s.sentences)-1 {
		return false
	}

	s.cursor++
	s.restore(s.cursor)
	return true
}

// Retreat is the mirror of Advance, moving to the previous sentence.
func (s *Session) Retreat() bool {
	if len(s.sentences) == 0 {
		return false
	}

	s.snapshot()
	s.SaveSentence()

	if s.cursor == 0 {
		return false
	}

	s.cursor--
	s.restore(s.cursor)
	return true
}

// Reset reinitializes the active sentence. With hard set, the stored
// snapshot is deleted first, so the sentence is fully forgotten; otherwise
// the sentence is restored from its snapshot if one exists, exactly as on
// navigation.
func (s *Session) Reset(hard bool) {
	if len(s.sentences) == 0 {
		return
	}

	if hard {
		delete(s.snapshots, s.cursor)
	}

	s.restore(s.cursor)
}

// snapshot stores the active sentence's working state, overwriting any
// prior snapshot for that index.
func (s *Session) snapshot() {
	s.snapshots[s.cursor] = Snapshot{
		Selected: s.selected,
		Current:  s.current,
		Previous: s.previous,
	}.clone()
}

// restore recomputes the word list for sentences[idx] and loads its
// snapshot, or initializes empty working state when the sentence was
// never visited.
func (s *Session) restore(idx int) {
	s.words = SentenceWords(s.sentences, idx)

	if snap, ok := s.snapshots[idx]; ok {
		restored := snap.clone()
		s.selected = restored.Selected
		s.current = restored.Current
		s.previous = restored.Previous
		return
	}

	s.selected = make(map[int]string)
	s.current = ""
	s.previous = ""
}

// SwapDirection exchanges the source and target languages atomically.
// The loaded document is not reprocessed.
func (s *Session) SwapDirection() {
	s.sourceLang, s.targetLang = s.targetLang, s.sourceLang
}

// SetLanguagePair sets both languages atomically.
func (s *Session) SetLanguagePair(sourceLang, targetLang string) {
	s.sourceLang = sourceLang
	s.targetLang = targetLang
}

// SetGateway replaces the translation backend, e.g. after entering a new
// API key at runtime.
func (s *Session) SetGateway(gateway Gateway) {
	s.gateway = gateway
}

// Loaded reports whether a document is loaded.
func (s *Session) Loaded() bool {
	return len(s.sentences) > 0
}

// Sentences returns the document's sentences in order.
func (s *Session) Sentences() []string {
	return s.sentences
}

// Cursor returns the active sentence index.
func (s *Session) Cursor() int {
	return s.cursor
}

// ActiveSentence returns the text of the active sentence, or "" when no
// document is loaded.
func (s *Session) ActiveSentence() string {
	if len(s.sentences) == 0 {
		return ""
	}
	return s.sentences[s.cursor]
}

// Words returns the word tokens of the active sentence.
func (s *Session) Words() []string {
	return s.words
}

// Selected returns the active selection sorted by word index ascending.
func (s *Session) Selected() []SelectedWord {
	result := make([]SelectedWord, 0, len(s.selected))
	for idx, word := range s.selected {
		result = append(result, SelectedWord{Index: idx, Text: word})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result
}

// IsSelected reports whether the word at idx is part of the selection.
func (s *Session) IsSelected(idx int) bool {
	_, ok := s.selected[idx]
	return ok
}

// AccumulatedText joins the selected words with single spaces in word
// index order. The result depends only on the set of selected indices,
// not on toggle order.
func (s *Session) AccumulatedText() string {
	selected := s.Selected()
	words := make([]string, len(selected))
	for i, w := range selected {
		words[i] = w.Text
	}
	return strings.Join(words, " ")
}

// CurrentTranslation returns the latest translation result.
func (s *Session) CurrentTranslation() string {
	return s.current
}

// PreviousTranslation returns the translation before the latest one.
func (s *Session) PreviousTranslation() string {
	return s.previous
}

// Records returns the saved translation records ordered by sentence index.
func (s *Session) Records() []TranslationRecord {
	indices := make([]int, 0, len(s.records))
	for idx := range s.records {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	result := make([]TranslationRecord, 0, len(indices))
	for _, idx := range indices {
		result = append(result, s.records[idx])
	}
	return result
}

// SourceLang returns the source language code.
func (s *Session) SourceLang() string {
	return s.sourceLang
}

// TargetLang returns the target language code.
func (s *Session) TargetLang() string {
	return s.targetLang
}

// FullText returns the raw text the document was loaded from.
func (s *Session) FullText() string {
	return s.fullText
}
