package wordstep_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hanmaru/wordstep"
	"github.com/hanmaru/wordstep/cache"
	"github.com/hanmaru/wordstep/provider"
	"github.com/hanmaru/wordstep/storage"
)

// Full session walkthrough: load a Korean document, build the first
// sentence word by word, navigate, and persist the records.
func TestSession_EndToEnd(t *testing.T) {
	mock := provider.NewMockGateway()
	mem := cache.NewInMemoryCache(0)
	gateway := wordstep.NewCachedGateway(mock, mem)

	sess := wordstep.NewSession(gateway)
	ctx := context.Background()

	count, err := sess.LoadDocument("나는 학교에 간다. 밥을 먹었다.", "")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 sentences, got %d", count)
	}
	if sess.SourceLang() != "ko" || sess.TargetLang() != "en" {
		t.Fatalf("unexpected pair %s -> %s", sess.SourceLang(), sess.TargetLang())
	}

	// Build the sentence incrementally.
	if err := sess.ToggleWord(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if sess.CurrentTranslation() != "I" {
		t.Errorf("current = %q", sess.CurrentTranslation())
	}

	if err := sess.ToggleWord(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := sess.ToggleWord(ctx, 2); err != nil {
		t.Fatal(err)
	}
	if sess.CurrentTranslation() != "I go to school" {
		t.Errorf("current = %q", sess.CurrentTranslation())
	}

	// The diff marks what the last toggle introduced.
	newTokens := []string{}
	for _, token := range wordstep.Highlight(sess.CurrentTranslation(), sess.PreviousTranslation()) {
		if token.New {
			newTokens = append(newTokens, token.Text)
		}
	}
	if !reflect.DeepEqual(newTokens, []string{"go"}) {
		t.Errorf("new tokens = %v", newTokens)
	}

	// Navigate forward and back: the first sentence's state survives.
	sess.Advance()
	if sess.CurrentTranslation() != "" {
		t.Error("second sentence should start clean")
	}
	sess.Retreat()
	if sess.CurrentTranslation() != "I go to school" {
		t.Errorf("state lost on round trip: %q", sess.CurrentTranslation())
	}

	// Repeating the same accumulated text is served from the cache.
	before := mock.CallCount
	_ = sess.ToggleWord(ctx, 2)
	_ = sess.ToggleWord(ctx, 2)
	if mock.CallCount != before {
		t.Errorf("cached selections should not hit the backend (%d extra calls)", mock.CallCount-before)
	}

	// Persist and reload.
	sess.SaveSentence()
	path, err := storage.Save(sess.Records(), "", filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := storage.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, sess.Records()) {
		t.Errorf("persistence round trip mismatch:\n%v\n%v", loaded, sess.Records())
	}
}
