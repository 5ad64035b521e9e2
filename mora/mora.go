// Package mora counts Japanese phonological units in kana strings.
package mora

// smallKana combine with the preceding mora instead of opening a new one.
var smallKana = map[rune]struct{}{
	'ぁ': {}, 'ぃ': {}, 'ぅ': {}, 'ぇ': {}, 'ぉ': {},
	'っ': {}, 'ゃ': {}, 'ゅ': {}, 'ょ': {}, 'ゎ': {},
	'ァ': {}, 'ィ': {}, 'ゥ': {}, 'ェ': {}, 'ォ': {},
	'ッ': {}, 'ャ': {}, 'ュ': {}, 'ョ': {}, 'ヮ': {},
}

// Count returns the number of morae in kana. The first rune always opens a
// mora; after that, small kana and the long-vowel marks ー and ～ attach to
// the preceding mora and every other rune opens a new one.
func Count(kana string) int {
	n := 0
	first := true
	for _, r := range kana {
		if first {
			n = 1
			first = false
			continue
		}
		if _, ok := smallKana[r]; ok {
			continue
		}
		if r == 'ー' || r == '～' {
			continue
		}
		n++
	}
	return n
}
