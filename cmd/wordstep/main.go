// Command wordstep runs an interactive word-for-word translation session
// over a text or HTML document.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hanmaru/wordstep"
	"github.com/hanmaru/wordstep/cache"
	"github.com/hanmaru/wordstep/loader"
	"github.com/hanmaru/wordstep/provider"
	"github.com/hanmaru/wordstep/storage"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wordstep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	sourceLang := fs.String("source", "", "Source language code (default: auto-detect)")
	targetLang := fs.String("target", "", "Target language code (default: counterpart of source)")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "gpt-4o-mini", "OpenAI model to use")
	outputDir := fs.String("output-dir", storage.DefaultDir, "Directory for saved translation files")
	cacheTTL := fs.Int("cache-ttl", 3600, "Translation cache TTL in seconds (0 to disable)")
	redisURL := fs.String("redis", "", "Redis URL for a shared translation cache")
	cacheFile := fs.String("cache-file", "", "File to import the translation cache from and export it to")
	dryRun := fs.Bool("dry-run", false, "Tokenize the input and exit without calling the API")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", wordstep.Name, wordstep.FullVersion())
		if wordstep.BuildDate != "unknown" && wordstep.BuildDate != "" {
			fmt.Fprintf(stdout, "  built: %s\n", wordstep.BuildDate)
		}
		return nil
	}

	// Get input. "-" reads the document from stdin.
	var text, declared, inputName string
	switch {
	case fs.NArg() == 0 && !*dryRun:
		return fmt.Errorf("input file required (pass - or a path; see -h)")
	case fs.NArg() == 0 || fs.Arg(0) == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
		inputName = "stdin"
	default:
		var err error
		text, declared, err = loadInput(fs.Arg(0))
		if err != nil {
			return err
		}
		inputName = filepath.Base(fs.Arg(0))
	}

	// Explicit flag wins over the document's declared language.
	src := *sourceLang
	if src == "" {
		src = declared
	}

	if *dryRun {
		return runDryRun(text, src, inputName, stdout)
	}

	// Get API key
	key := *apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return fmt.Errorf("OpenAI API key required (--api-key or OPENAI_API_KEY env)")
	}

	// Translation cache
	var tcache wordstep.TranslationCache
	var mem *cache.InMemoryCache

	if *redisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: *redisURL, TTL: *cacheTTL})
		if err != nil {
			return fmt.Errorf("connecting to Redis: %w", err)
		}
		defer rc.Close()
		tcache = rc
	} else if *cacheTTL > 0 {
		mem = cache.NewInMemoryCache(*cacheTTL)
		if *cacheFile != "" {
			if result, err := cache.ImportFromFile(mem, *cacheFile); err == nil && !*quiet {
				fmt.Fprintf(stderr, "Imported %d cached translations\n", result.Imported)
			}
		}
		tcache = mem
	}

	gateway := newGateway(key, *model, tcache)

	sess := wordstep.NewSession(gateway)
	count, err := sess.LoadDocument(text, src)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	if *targetLang != "" {
		sess.SetLanguagePair(sess.SourceLang(), *targetLang)
	}

	if !*quiet {
		fmt.Fprintf(stderr, "Loaded %d sentences from %s (%s -> %s)\n",
			count, inputName, sess.SourceLang(), sess.TargetLang())
	}

	if err := repl(sess, *model, tcache, *outputDir, stdin, stdout, stderr); err != nil {
		return err
	}

	// Persist the cache for the next run.
	if mem != nil && *cacheFile != "" {
		if err := cache.ExportToFile(mem, *cacheFile, map[string]string{"model": *model}); err != nil && !*quiet {
			fmt.Fprintf(stderr, "cache export failed: %v\n", err)
		}
	}

	return nil
}

// loadInput reads a document file. HTML files are reduced to visible text
// and may carry a declared language on their <html> tag.
func loadInput(path string) (text, declared string, err error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return "", "", fmt.Errorf("reading file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = loader.ExtractText(string(data))
		if err != nil {
			return "", "", err
		}
		return text, loader.DeclaredLang(string(data)), nil
	default:
		return string(data), "", nil
	}
}

// newGateway builds the translation gateway, cache-wrapped when a cache
// is configured.
func newGateway(apiKey, model string, tcache wordstep.TranslationCache) wordstep.Gateway {
	p := provider.NewOpenAIProvider(provider.OpenAIConfig{APIKey: apiKey, Model: model})
	if tcache != nil {
		return wordstep.NewCachedGateway(p, tcache)
	}
	return p
}

// runDryRun prints the tokenized document without contacting the backend.
func runDryRun(text, requestedLang, inputName string, stdout io.Writer) error {
	sentences, lang := wordstep.ProcessText(text, requestedLang)

	fmt.Fprintf(stdout, "Dry run: %s (detected language: %s)\n", inputName, lang)
	fmt.Fprintf(stdout, "Found %d sentences:\n\n", len(sentences))

	for i, sentence := range sentences {
		fmt.Fprintf(stdout, "%3d. %s\n", i+1, sentence)
		fmt.Fprintf(stdout, "     words: %s\n", strings.Join(wordstep.SplitWords(sentence), " / "))
	}

	return nil
}

// repl drives one session interactively until quit or EOF.
func repl(sess *wordstep.Session, model string, tcache wordstep.TranslationCache, outputDir string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx := context.Background()
	scanner := bufio.NewScanner(stdin)

	printSentence(sess, stdout)

	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, rest := fields[0], fields[1:]

		// A bare number toggles that word.
		if idx, err := strconv.Atoi(cmd); err == nil {
			toggle(ctx, sess, idx, stdout, stderr)
			continue
		}

		switch cmd {
		case "t", "toggle":
			if len(rest) == 0 {
				fmt.Fprintln(stderr, "usage: t <word index>")
				continue
			}
			idx, err := strconv.Atoi(rest[0])
			if err != nil {
				fmt.Fprintf(stderr, "not a word index: %s\n", rest[0])
				continue
			}
			toggle(ctx, sess, idx, stdout, stderr)

		case "all":
			if err := sess.TranslateSentence(ctx); err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
			}
			printTranslation(sess, stdout)

		case "next":
			if !sess.Advance() {
				fmt.Fprintln(stdout, "Already at the last sentence.")
				continue
			}
			printSentence(sess, stdout)

		case "prev":
			if !sess.Retreat() {
				fmt.Fprintln(stdout, "Already at the first sentence.")
				continue
			}
			printSentence(sess, stdout)

		case "reset":
			hard := len(rest) > 0 && rest[0] == "hard"
			sess.Reset(hard)
			printSentence(sess, stdout)

		case "save":
			if sess.SaveSentence() {
				fmt.Fprintln(stdout, "Translation updated.")
			} else {
				fmt.Fprintln(stdout, "Translation saved.")
			}

		case "write":
			filename := ""
			if len(rest) > 0 {
				filename = rest[0]
			}
			path, err := storage.Save(sess.Records(), filename, outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				continue
			}
			fmt.Fprintf(stdout, "Wrote %d records to %s\n", len(sess.Records()), path)

		case "files":
			paths, err := storage.ListFiles(outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				continue
			}
			if len(paths) == 0 {
				fmt.Fprintln(stdout, "No saved translation files.")
				continue
			}
			for _, p := range paths {
				fmt.Fprintln(stdout, p)
			}

		case "swap":
			sess.SwapDirection()
			fmt.Fprintf(stdout, "Direction: %s -> %s\n", sess.SourceLang(), sess.TargetLang())

		case "key":
			if len(rest) == 0 {
				fmt.Fprintln(stderr, "usage: key <api key>")
				continue
			}
			p := provider.NewOpenAIProvider(provider.OpenAIConfig{APIKey: rest[0], Model: model})
			if err := p.ValidateKey(ctx); err != nil {
				fmt.Fprintf(stderr, "key rejected: %v\n", err)
				continue
			}
			if tcache != nil {
				sess.SetGateway(wordstep.NewCachedGateway(p, tcache))
			} else {
				sess.SetGateway(p)
			}
			fmt.Fprintln(stdout, "API key accepted.")

		case "show":
			printSentence(sess, stdout)

		case "help":
			printHelp(stdout)

		case "q", "quit", "exit":
			return nil

		default:
			fmt.Fprintf(stderr, "unknown command %q (try: help)\n", cmd)
		}
	}
}

func toggle(ctx context.Context, sess *wordstep.Session, idx int, stdout, stderr io.Writer) {
	if err := sess.ToggleWord(ctx, idx); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
	}
	printTranslation(sess, stdout)
}

// printSentence shows the active sentence with indexed words and the
// current selection marks.
func printSentence(sess *wordstep.Session, w io.Writer) {
	fmt.Fprintf(w, "\nSentence %d/%d: %s\n", sess.Cursor()+1, len(sess.Sentences()), sess.ActiveSentence())

	for idx, word := range sess.Words() {
		mark := " "
		if sess.IsSelected(idx) {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %2d %s\n", mark, idx, word)
	}

	printTranslation(sess, w)
}

// printTranslation shows the accumulated text and the translation, with
// tokens new since the previous result wrapped in asterisks.
func printTranslation(sess *wordstep.Session, w io.Writer) {
	fmt.Fprintf(w, "Selected: %s\n", sess.AccumulatedText())

	tokens := wordstep.Highlight(sess.CurrentTranslation(), sess.PreviousTranslation())
	parts := make([]string, len(tokens))
	for i, token := range tokens {
		if token.New {
			parts[i] = "*" + token.Text + "*"
		} else {
			parts[i] = token.Text
		}
	}
	fmt.Fprintf(w, "Translation: %s\n", strings.Join(parts, " "))
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  <n>, t <n>    toggle word n of the active sentence
  all           select every word and translate the whole sentence
  next, prev    move between sentences (state is kept per sentence)
  reset [hard]  reinitialize the sentence; hard also forgets its snapshot
  save          record the sentence's original + current translation
  write [name]  write all records to a file (default: timestamped)
  files         list saved translation files, newest first
  swap          swap translation direction
  key <apikey>  switch to a new API key (validated first)
  show          redisplay the active sentence
  quit          exit
`)
}
