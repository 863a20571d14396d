package wordstep

import "strings"

// DefaultSourceLang and DefaultTargetLang form the pair a fresh session
// starts with.
const (
	DefaultSourceLang = "ko"
	DefaultTargetLang = "en"
)

// BackendCodes maps the supported short language codes to the codes the
// translation backend expects.
var BackendCodes = map[string]string{
	"ko":    "KO",
	"en":    "EN-US",
	"en-us": "EN-US",
	"en-gb": "EN-GB",
	"ja":    "JA",
	"zh":    "ZH",
	"es":    "ES",
	"fr":    "FR",
	"de":    "DE",
	"it":    "IT",
	"pt":    "PT",
	"ru":    "RU",
}

// LanguageNames maps short codes to human-readable names for AI prompts.
var LanguageNames = map[string]string{
	"ko":    "Korean",
	"en":    "English",
	"en-us": "English (United States)",
	"en-gb": "English (United Kingdom)",
	"ja":    "Japanese",
	"zh":    "Chinese",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"it":    "Italian",
	"pt":    "Portuguese",
	"ru":    "Russian",
}

// BackendCode returns the backend's code for a short language code.
// Unrecognized codes fall back to American English.
func BackendCode(lang string) string {
	if code, ok := BackendCodes[strings.ToLower(lang)]; ok {
		return code
	}
	return "EN-US"
}

// LanguageName returns the human-readable name for a language code.
// Unrecognized codes resolve through BackendCode first, so they share
// its American English fallback.
func LanguageName(lang string) string {
	if name, ok := LanguageNames[strings.ToLower(lang)]; ok {
		return name
	}
	return LanguageNames[strings.ToLower(BackendCode(lang))]
}

// Counterpart returns the other half of the Korean/English pair: Korean
// maps to English, everything else maps to Korean.
func Counterpart(lang string) string {
	if strings.ToLower(lang) == "ko" {
		return "en"
	}
	return "ko"
}
