// Package moderation masks forbidden words in user supplied text before it
// is persisted or broadcast, and tags messages with a detected language.
package moderation

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks occurrences of forbidden words using an Aho-Corasick
// automaton over a lowercased projection of the input. A nil Moderator is
// valid and performs no masking.
type Moderator struct {
	matcher  *goahocorasick.Machine
	maskChar rune
}

// NewModerator builds the automaton from the forbidden word list. An empty
// list yields a nil Moderator.
func NewModerator(forbiddenWords []string, maskChar rune) (*Moderator, error) {
	if len(forbiddenWords) == 0 {
		return nil, nil
	}
	patterns := make([][]rune, len(forbiddenWords))
	for i, word := range forbiddenWords {
		patterns[i] = lowerRunes([]rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, maskChar: maskChar}, nil
}

// Mask replaces every character of each matched forbidden word, preserving
// the rest of the text untouched.
func (m *Moderator) Mask(text string) string {
	if m == nil || text == "" {
		return text
	}

	runes := []rune(text)
	spans := m.matcher.MultiPatternSearch(lowerRunes(runes), false)
	if len(spans) == 0 {
		return text
	}

	for _, span := range spans {
		end := span.Pos + len(span.Word)
		if span.Pos < 0 || end > len(runes) {
			continue
		}
		for i := span.Pos; i < end; i++ {
			if !unicode.IsSpace(runes[i]) {
				runes[i] = m.maskChar
			}
		}
	}
	return string(runes)
}

func lowerRunes(input []rune) []rune {
	out := make([]rune, len(input))
	for i, r := range input {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// DetectLanguage returns the ISO 639-3 code of the most likely language of
// the text, or an empty string when detection is unreliable.
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6393()
}
