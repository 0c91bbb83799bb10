// Package language defines the normalized language model shared by every
// translation backend: the Language enumeration, its ISO 639-1 codes, and
// the Input type used on the source side of a translation.
//
// Provider adapters keep their own code tables; the codes here are only the
// normalized vocabulary callers speak.
package language

import "fmt"

// Language is a normalized, closed enumeration of the languages the library
// can translate to or report from detection.
type Language int

const (
	English Language = iota
	French
	Spanish
	Italian
	German
	Portuguese
	Dutch
	Polish
	Russian
	Turkish
	Arabic
	Japanese
	Chinese
	Korean
	Indonesian
	Esperanto
)

var languageNames = map[Language]string{
	English:    "English",
	French:     "French",
	Spanish:    "Spanish",
	Italian:    "Italian",
	German:     "German",
	Portuguese: "Portuguese",
	Dutch:      "Dutch",
	Polish:     "Polish",
	Russian:    "Russian",
	Turkish:    "Turkish",
	Arabic:     "Arabic",
	Japanese:   "Japanese",
	Chinese:    "Chinese",
	Korean:     "Korean",
	Indonesian: "Indonesian",
	Esperanto:  "Esperanto",
}

var languageCodes = map[Language]string{
	English:    "en",
	French:     "fr",
	Spanish:    "es",
	Italian:    "it",
	German:     "de",
	Portuguese: "pt",
	Dutch:      "nl",
	Polish:     "pl",
	Russian:    "ru",
	Turkish:    "tr",
	Arabic:     "ar",
	Japanese:   "ja",
	Chinese:    "zh",
	Korean:     "ko",
	Indonesian: "id",
	Esperanto:  "eo",
}

var codeToLanguage = func() map[string]Language {
	m := make(map[string]Language, len(languageCodes))
	for l, code := range languageCodes {
		m[code] = l
	}
	return m
}()

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// Code returns the ISO 639-1 code of the language.
func (l Language) Code() string {
	return languageCodes[l]
}

// All returns every Language variant, in declaration order.
func All() []Language {
	all := make([]Language, 0, len(languageCodes))
	for l := English; l <= Esperanto; l++ {
		all = append(all, l)
	}
	return all
}

// Parse resolves an ISO 639-1 code to a Language.
func Parse(code string) (Language, bool) {
	l, ok := codeToLanguage[code]
	return l, ok
}

// Input is the source-side language of a translation: either a defined
// Language, or the Automatic sentinel asking the provider to detect it.
// Input is used only as translate-call input, never as output.
type Input struct {
	language  Language
	automatic bool
}

// Automatic asks the provider to detect the source language itself.
var Automatic = Input{automatic: true}

// Defined wraps a specific source language.
func Defined(l Language) Input {
	return Input{language: l}
}

// IsAutomatic reports whether the provider should detect the source language.
func (in Input) IsAutomatic() bool {
	return in.automatic
}

// Language returns the defined source language. The second return is false
// for the Automatic sentinel.
func (in Input) Language() (Language, bool) {
	return in.language, !in.automatic
}

func (in Input) String() string {
	if in.automatic {
		return "Automatic"
	}
	return in.language.String()
}
