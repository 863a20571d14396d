// Package wordstep implements an incremental word-for-word translation
// session.
//
// A session loads a source document, splits it into sentences, and lets the
// caller toggle individual word tokens of the active sentence. After every
// toggle the accumulated selection is translated through a Gateway backend
// and the previous result is kept for diff highlighting. Navigating between
// sentences snapshots and restores per-sentence state, so nothing is lost
// when the user moves back and forth.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/hanmaru/wordstep"
//	    "github.com/hanmaru/wordstep/provider"
//	)
//
//	func main() {
//	    gw := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    s := wordstep.NewSession(gw)
//	    if _, err := s.LoadDocument("안녕하세요. 반갑습니다.", ""); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    ctx := context.Background()
//	    _ = s.ToggleWord(ctx, 0)
//	    fmt.Println(s.CurrentTranslation())
//	}
package wordstep
