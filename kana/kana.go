// Package kana normalizes segmenter readings into hiragana. Readings arrive
// either romanized (speech pipeline) or in katakana (morphological analyzer);
// both normalize to the hiragana form the annotation engine works with.
package kana

import (
	"strings"

	"kikitori/script"
)

// Transliterator converts a raw reading into hiragana. An empty result means
// the reading could not be transliterated; callers treat that as "no reading
// available" rather than an error.
type Transliterator interface {
	ToHiragana(s string) string
}

// Func adapts a plain function to the Transliterator interface.
type Func func(string) string

func (f Func) ToHiragana(s string) string { return f(s) }

// ToHiragana is the default transliteration: hiragana passes through,
// katakana folds down by code point, and Latin letters convert via the
// romaji syllable table. It returns "" as soon as any part of the input
// cannot be converted.
func ToHiragana(s string) string {
	var b strings.Builder
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case isLatin(r):
			j := i
			for j < len(runes) && isLatinSegment(runes[j]) {
				j++
			}
			h, ok := romajiToHiragana(string(runes[i:j]))
			if !ok {
				return ""
			}
			b.WriteString(h)
			i = j
		case r >= 0x30A1 && r <= 0x30F6:
			b.WriteRune(r - 0x60) // katakana to hiragana
			i++
		case script.Classify(r) == script.Hiragana || r == 'ー' || r == '～':
			b.WriteRune(r)
			i++
		case r == ' ':
			i++
		default:
			return ""
		}
	}
	return b.String()
}

func isLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isLatinSegment extends a Latin run with the marks the romaji converter
// understands (apostrophes for n', hyphens for long vowels).
func isLatinSegment(r rune) bool {
	return isLatin(r) || r == '\'' || r == '-'
}
