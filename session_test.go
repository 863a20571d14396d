package wordstep

import (
	"context"
	"errors"
	"testing"
)

// echoGateway translates by wrapping the input, which makes results easy
// to assert on without a real backend.
type echoGateway struct {
	callCount int
	lastText  string
	err       error
}

func (g *echoGateway) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	g.callCount++
	g.lastText = text
	if g.err != nil {
		return "", g.err
	}
	return "T(" + text + ")", nil
}

func newTestSession(t *testing.T, text string) (*Session, *echoGateway) {
	t.Helper()
	gw := &echoGateway{}
	s := NewSession(gw)
	if _, err := s.LoadDocument(text, "en"); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	return s, gw
}

func TestLoadDocument_EmptyInput(t *testing.T) {
	s := NewSession(nil)

	_, err := s.LoadDocument("   \n ", "")
	var emptyErr *EmptyInputError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected EmptyInputError, got %v", err)
	}
	if s.Loaded() {
		t.Error("session should stay empty after a failed load")
	}
}

func TestLoadDocument_AdoptsDetectedPair(t *testing.T) {
	s := NewSession(nil)

	if _, err := s.LoadDocument("나는 학교에 간다.", ""); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if s.SourceLang() != "ko" || s.TargetLang() != "en" {
		t.Errorf("expected ko -> en, got %s -> %s", s.SourceLang(), s.TargetLang())
	}

	if _, err := s.LoadDocument("This is English text.", ""); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if s.SourceLang() != "en" || s.TargetLang() != "ko" {
		t.Errorf("expected en -> ko, got %s -> %s", s.SourceLang(), s.TargetLang())
	}
}

func TestLoadDocument_ExplicitLangKeepsTarget(t *testing.T) {
	s := NewSession(nil, WithLanguagePair("ko", "ja"))

	if _, err := s.LoadDocument("Some text here.", "en"); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if s.SourceLang() != "en" || s.TargetLang() != "ja" {
		t.Errorf("expected en -> ja, got %s -> %s", s.SourceLang(), s.TargetLang())
	}

	// A colliding pair falls back to the counterpart.
	s.SetLanguagePair("ko", "en")
	if _, err := s.LoadDocument("More text.", "en"); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if s.TargetLang() != "ko" {
		t.Errorf("expected collision fallback to ko, got %s", s.TargetLang())
	}
}

func TestLoadDocument_DiscardsAllPriorState(t *testing.T) {
	s, _ := newTestSession(t, "one two. three four.")
	ctx := context.Background()

	_ = s.ToggleWord(ctx, 0)
	s.SaveSentence()
	s.Advance()

	if _, err := s.LoadDocument("fresh start.", "en"); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	if s.Cursor() != 0 {
		t.Errorf("cursor should reset to 0, got %d", s.Cursor())
	}
	if len(s.Records()) != 0 {
		t.Errorf("records should be cleared, got %d", len(s.Records()))
	}
	if len(s.Selected()) != 0 || s.CurrentTranslation() != "" || s.PreviousTranslation() != "" {
		t.Error("working state should be reinitialized")
	}
}

func TestToggleWord_Translates(t *testing.T) {
	s, gw := newTestSession(t, "one two three.")
	ctx := context.Background()

	if err := s.ToggleWord(ctx, 0); err != nil {
		t.Fatalf("ToggleWord failed: %v", err)
	}

	if s.AccumulatedText() != "one" {
		t.Errorf("accumulated = %q, want %q", s.AccumulatedText(), "one")
	}
	if s.CurrentTranslation() != "T(one)" {
		t.Errorf("current = %q, want %q", s.CurrentTranslation(), "T(one)")
	}
	if gw.callCount != 1 {
		t.Errorf("expected 1 gateway call, got %d", gw.callCount)
	}

	// Second toggle shifts current into previous.
	if err := s.ToggleWord(ctx, 1); err != nil {
		t.Fatalf("ToggleWord failed: %v", err)
	}
	if s.PreviousTranslation() != "T(one)" {
		t.Errorf("previous = %q, want %q", s.PreviousTranslation(), "T(one)")
	}
	if s.CurrentTranslation() != "T(one two)" {
		t.Errorf("current = %q, want %q", s.CurrentTranslation(), "T(one two)")
	}
}

func TestToggleWord_Idempotence(t *testing.T) {
	s, _ := newTestSession(t, "one two three.")
	ctx := context.Background()

	_ = s.ToggleWord(ctx, 1)
	_ = s.ToggleWord(ctx, 1)

	if len(s.Selected()) != 0 {
		t.Errorf("double toggle should empty the selection, got %v", s.Selected())
	}
	if s.CurrentTranslation() != "" {
		t.Errorf("current translation should be cleared, got %q", s.CurrentTranslation())
	}
}

func TestToggleWord_OrderInvariance(t *testing.T) {
	ctx := context.Background()

	a, _ := newTestSession(t, "one two three.")
	_ = a.ToggleWord(ctx, 2)
	_ = a.ToggleWord(ctx, 0)

	b, _ := newTestSession(t, "one two three.")
	_ = b.ToggleWord(ctx, 0)
	_ = b.ToggleWord(ctx, 2)

	if a.AccumulatedText() != b.AccumulatedText() {
		t.Errorf("accumulated text depends on click order: %q vs %q",
			a.AccumulatedText(), b.AccumulatedText())
	}
	if a.AccumulatedText() != "one three." {
		t.Errorf("accumulated = %q, want %q", a.AccumulatedText(), "one three.")
	}
}

func TestToggleWord_OutOfRange(t *testing.T) {
	s, gw := newTestSession(t, "one two.")
	ctx := context.Background()

	if err := s.ToggleWord(ctx, 5); err != nil {
		t.Fatalf("out-of-range toggle should be a no-op, got %v", err)
	}
	if err := s.ToggleWord(ctx, -1); err != nil {
		t.Fatalf("negative toggle should be a no-op, got %v", err)
	}
	if len(s.Selected()) != 0 || gw.callCount != 0 {
		t.Error("out-of-range toggles must not change state or call the gateway")
	}
}

func TestToggleWord_GatewayFailure(t *testing.T) {
	s, gw := newTestSession(t, "one two three.")
	ctx := context.Background()

	_ = s.ToggleWord(ctx, 0) // current = T(one)

	gw.err = &TranslationError{Kind: KindQuota, Message: "quota exceeded"}
	err := s.ToggleWord(ctx, 1)

	var trErr *TranslationError
	if !errors.As(err, &trErr) || trErr.Kind != KindQuota {
		t.Fatalf("expected quota TranslationError, got %v", err)
	}
	if s.CurrentTranslation() != "" {
		t.Errorf("current should be cleared on failure, got %q", s.CurrentTranslation())
	}
	// The shift only happens on success, so previous still holds the
	// state from before the first toggle's success chain.
	if s.PreviousTranslation() != "" {
		t.Errorf("previous must survive a failure untouched, got %q", s.PreviousTranslation())
	}

	// A later success diffs against what is left.
	gw.err = nil
	if err := s.ToggleWord(ctx, 2); err != nil {
		t.Fatalf("ToggleWord failed: %v", err)
	}
	if s.CurrentTranslation() != "T(one two three.)" {
		t.Errorf("current = %q", s.CurrentTranslation())
	}
}

func TestTranslateSentence(t *testing.T) {
	s, gw := newTestSession(t, "one two three.")
	ctx := context.Background()

	if err := s.TranslateSentence(ctx); err != nil {
		t.Fatalf("TranslateSentence failed: %v", err)
	}

	if len(s.Selected()) != 3 {
		t.Errorf("expected all 3 words selected, got %d", len(s.Selected()))
	}
	if gw.lastText != "one two three." {
		t.Errorf("gateway received %q", gw.lastText)
	}
	if s.CurrentTranslation() != "T(one two three.)" {
		t.Errorf("current = %q", s.CurrentTranslation())
	}
}

func TestSaveSentence_Upserts(t *testing.T) {
	s, _ := newTestSession(t, "one two. three four.")
	ctx := context.Background()

	if updated := s.SaveSentence(); updated {
		t.Error("first save should not report an update")
	}
	if len(s.Records()) != 1 {
		t.Fatalf("expected 1 record, got %d", len(s.Records()))
	}
	if s.Records()[0].Translated != "" {
		t.Error("saving without a translation should store an empty translation")
	}

	_ = s.ToggleWord(ctx, 0)
	if updated := s.SaveSentence(); !updated {
		t.Error("second save should report an update")
	}
	if len(s.Records()) != 1 {
		t.Errorf("re-saving must overwrite, not append: got %d records", len(s.Records()))
	}
	if s.Records()[0].Translated != "T(one)" {
		t.Errorf("record translation = %q", s.Records()[0].Translated)
	}
}

func TestSaveSentence_NoDocument(t *testing.T) {
	s := NewSession(nil)
	if s.SaveSentence() {
		t.Error("SaveSentence without a document should do nothing")
	}
	if len(s.Records()) != 0 {
		t.Error("no record should be written without a document")
	}
}

func TestNavigation_SnapshotRoundTrip(t *testing.T) {
	s, _ := newTestSession(t, "one two three. four five.")
	ctx := context.Background()

	_ = s.ToggleWord(ctx, 0)
	_ = s.ToggleWord(ctx, 2)

	wantAccumulated := s.AccumulatedText()
	wantCurrent := s.CurrentTranslation()
	wantPrevious := s.PreviousTranslation()

	if !s.Advance() {
		t.Fatal("Advance should move off sentence 0")
	}

	// The destination sentence starts clean.
	if len(s.Selected()) != 0 || s.CurrentTranslation() != "" || s.PreviousTranslation() != "" {
		t.Error("unvisited sentence should initialize empty")
	}
	if len(s.Words()) != 2 {
		t.Errorf("destination words = %v", s.Words())
	}

	if !s.Retreat() {
		t.Fatal("Retreat should move back to sentence 0")
	}

	if s.AccumulatedText() != wantAccumulated {
		t.Errorf("restored accumulated = %q, want %q", s.AccumulatedText(), wantAccumulated)
	}
	if s.CurrentTranslation() != wantCurrent {
		t.Errorf("restored current = %q, want %q", s.CurrentTranslation(), wantCurrent)
	}
	if s.PreviousTranslation() != wantPrevious {
		t.Errorf("restored previous = %q, want %q", s.PreviousTranslation(), wantPrevious)
	}
}

func TestNavigation_Boundaries(t *testing.T) {
	s, _ := newTestSession(t, "one. two.")

	if s.Retreat() {
		t.Error("Retreat at cursor 0 should not move")
	}
	if s.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", s.Cursor())
	}

	if !s.Advance() {
		t.Fatal("Advance should reach the last sentence")
	}
	if s.Advance() {
		t.Error("Advance at the last sentence should not move")
	}
	if s.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", s.Cursor())
	}

	// The boundary advance still saved the active sentence.
	if len(s.Records()) != 2 {
		t.Errorf("expected both sentences recorded, got %d", len(s.Records()))
	}
}

func TestReset_SoftRestoresSnapshot(t *testing.T) {
	s, _ := newTestSession(t, "one two. three.")
	ctx := context.Background()

	_ = s.ToggleWord(ctx, 0)
	s.Advance()
	s.Retreat() // snapshot for sentence 0 now exists

	_ = s.ToggleWord(ctx, 1) // diverge from the snapshot

	s.Reset(false)
	if s.AccumulatedText() != "one" {
		t.Errorf("soft reset should restore the snapshot, got %q", s.AccumulatedText())
	}
}

func TestReset_HardForgets(t *testing.T) {
	s, _ := newTestSession(t, "one two. three.")
	ctx := context.Background()

	_ = s.ToggleWord(ctx, 0)
	s.Advance()
	s.Retreat()

	s.Reset(true)
	if len(s.Selected()) != 0 || s.CurrentTranslation() != "" {
		t.Error("hard reset should fully clear the sentence")
	}

	// The snapshot is gone: soft reset now initializes empty too.
	_ = s.ToggleWord(ctx, 1)
	s.Reset(false)
	if len(s.Selected()) != 0 {
		t.Error("soft reset after hard reset should find no snapshot")
	}
}

func TestSwapDirection(t *testing.T) {
	s := NewSession(nil, WithLanguagePair("ko", "en"))

	s.SwapDirection()
	if s.SourceLang() != "en" || s.TargetLang() != "ko" {
		t.Errorf("got %s -> %s", s.SourceLang(), s.TargetLang())
	}
}

func TestNilGateway_SelectionOnly(t *testing.T) {
	s := NewSession(nil)
	if _, err := s.LoadDocument("one two.", "en"); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	if err := s.ToggleWord(context.Background(), 0); err != nil {
		t.Fatalf("ToggleWord failed: %v", err)
	}
	if s.AccumulatedText() != "one" {
		t.Errorf("accumulated = %q", s.AccumulatedText())
	}
	if s.CurrentTranslation() != "" {
		t.Error("no translation expected without a gateway")
	}
}

func TestDrop(t *testing.T) {
	s, _ := newTestSession(t, "one two.")
	_ = s.ToggleWord(context.Background(), 0)
	s.SaveSentence()

	s.Drop()

	if s.Loaded() || len(s.Records()) != 0 || s.ActiveSentence() != "" {
		t.Error("Drop should return the session to its empty state")
	}
	if s.SourceLang() != "en" {
		t.Error("Drop should keep the language pair")
	}
}
