// Package storage persists finished translation records to plain text
// files, one "original | translated" line per record.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hanmaru/wordstep"
)

const (
	// DefaultDir is the output directory used when none is given.
	DefaultDir = "translations"

	// separator divides original from translation on each line. Load
	// splits on its first occurrence only.
	separator = " | "
)

// DefaultFilename returns the timestamped default file name,
// translation_<YYYYMMDD_HHMMSS>.txt.
func DefaultFilename(now time.Time) string {
	return "translation_" + now.Format("20060102_150405") + ".txt"
}

// Save writes records to a UTF-8 text file and returns its path. An empty
// filename picks the timestamped default; an empty outputDir picks
// DefaultDir, created if absent. The file is written through a temporary
// path and renamed, so readers never observe a partial file. Failures are
// reported as *wordstep.StorageError; in-memory records are unaffected.
func Save(records []wordstep.TranslationRecord, filename, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = DefaultDir
	}
	if filename == "" {
		filename = DefaultFilename(time.Now())
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return "", &wordstep.StorageError{Message: "creating output directory", Cause: err}
	}

	tmp, err := os.CreateTemp(outputDir, ".wordstep-*")
	if err != nil {
		return "", &wordstep.StorageError{Message: "creating temporary file", Cause: err}
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, record := range records {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", record.Original, separator, record.Translated); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return "", &wordstep.StorageError{Message: "writing records", Cause: err}
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", &wordstep.StorageError{Message: "flushing records", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", &wordstep.StorageError{Message: "closing temporary file", Cause: err}
	}

	path := filepath.Join(outputDir, filename)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", &wordstep.StorageError{Message: "renaming into place", Cause: err}
	}

	return path, nil
}

// Load reads records back from a saved file. Each non-blank line is split
// on the first separator; malformed lines are skipped silently. A missing
// file yields an empty result, not an error.
func Load(path string) ([]wordstep.TranslationRecord, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &wordstep.StorageError{Message: "opening file", Cause: err}
	}
	defer f.Close()

	var records []wordstep.TranslationRecord

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, separator, 2)
		if len(parts) != 2 {
			continue
		}

		records = append(records, wordstep.TranslationRecord{
			Original:   strings.TrimSpace(parts[0]),
			Translated: strings.TrimSpace(parts[1]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, &wordstep.StorageError{Message: "reading file", Cause: err}
	}

	return records, nil
}

// ListFiles returns the .txt files under dir, newest first. A missing
// directory yields an empty result.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &wordstep.StorageError{Message: "listing directory", Cause: err}
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}

	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modTime.After(files[j].modTime) })

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}
