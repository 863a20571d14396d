package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	html := `<html><body>
		<h1>Title.</h1>
		<p>First sentence. Second sentence!</p>
		<script>var ignored = true;</script>
		<style>p { color: red; }</style>
	</body></html>`

	text, err := ExtractText(html)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if text != "Title. First sentence. Second sentence!" {
		t.Errorf("ExtractText = %q", text)
	}
}

func TestExtractText_SkipsCodeBlocks(t *testing.T) {
	text, err := ExtractText(`<p>Read this.</p><pre>not this</pre><code>or this</code>`)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if strings.Contains(text, "not this") || strings.Contains(text, "or this") {
		t.Errorf("code content should be skipped, got %q", text)
	}
}

func TestExtractText_PlainTextInput(t *testing.T) {
	// html.Parse accepts fragment input, so bare text passes through.
	text, err := ExtractText("just some text")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "just some text" {
		t.Errorf("ExtractText = %q", text)
	}
}

func TestDeclaredLang(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"simple", `<html lang="ko"><body>x</body></html>`, "ko"},
		{"region variant", `<html lang="en-US"><body>x</body></html>`, "en"},
		{"underscore variant", `<html lang="en_GB"><body>x</body></html>`, "en"},
		{"absent", `<html><body>x</body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeclaredLang(tt.html); got != tt.want {
				t.Errorf("DeclaredLang = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("나는 간다. 너도 간다."), 0o600); err != nil {
		t.Fatal(err)
	}

	text, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if text != "나는 간다. 너도 간다." {
		t.Errorf("FromFile = %q", text)
	}
}

func TestFromFile_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.html")
	if err := os.WriteFile(path, []byte("<p>Hello there.</p>"), 0o600); err != nil {
		t.Fatal(err)
	}

	text, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if text != "Hello there." {
		t.Errorf("FromFile = %q", text)
	}
}

func TestFromFile_Missing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
