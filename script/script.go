// Package script classifies runes by Japanese writing system.
package script

// Kind identifies the writing system a rune belongs to.
type Kind string

const (
	Kanji    Kind = "kanji"
	Hiragana Kind = "hiragana"
	Katakana Kind = "katakana"
	Other    Kind = "other"
)

// Classify reports the writing system of r. Ranges: kanji U+4E00..U+9FFF,
// hiragana U+3040..U+309F, katakana U+30A0..U+30FF; anything else is Other.
func Classify(r rune) Kind {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF:
		return Kanji
	case r >= 0x3040 && r <= 0x309F:
		return Hiragana
	case r >= 0x30A0 && r <= 0x30FF:
		return Katakana
	default:
		return Other
	}
}
