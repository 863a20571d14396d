package wordstep

import "fmt"

// EmptyInputError indicates blank text was submitted for loading.
// Recoverable: the caller re-prompts for input.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "empty input: no text to load"
}

// NoSentencesError indicates the tokenizer produced no sentences from
// non-blank text.
type NoSentencesError struct{}

func (e *NoSentencesError) Error() string {
	return "no sentences found in input text"
}

// ErrorKind classifies a translation backend failure.
type ErrorKind string

const (
	// KindQuota means the backend's usage quota is exhausted.
	KindQuota ErrorKind = "quota"
	// KindAuth means the API key was rejected.
	KindAuth ErrorKind = "auth"
	// KindConnectivity means the backend could not be reached.
	KindConnectivity ErrorKind = "connectivity"
	// KindGeneric covers every other backend failure.
	KindGeneric ErrorKind = "generic"
)

// TranslationError is a typed translation backend failure. It is surfaced
// to the user per action and never aborts the session: the current
// translation is cleared, but the previous translation and all sentence
// snapshots survive.
type TranslationError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("translation error (%s): %s", e.Kind, e.Message)
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// StorageError indicates a persistence failure. In-memory records are
// unaffected and remain available for retry.
type StorageError struct {
	Message string
	Cause   error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error: %s", e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
