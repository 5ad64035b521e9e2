package kana

import "strings"

// romajiTable maps Hepburn syllables to hiragana, longest match first
// (3 runes, then 2, then 1). The syllabic n is handled separately.
var romajiTable = map[string]string{
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"sa": "さ", "shi": "し", "si": "し", "su": "す", "se": "せ", "so": "そ",
	"ta": "た", "chi": "ち", "ti": "ち", "tsu": "つ", "tu": "つ", "te": "て", "to": "と",
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"ha": "は", "hi": "ひ", "fu": "ふ", "hu": "ふ", "he": "へ", "ho": "ほ",
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"ya": "や", "yu": "ゆ", "yo": "よ",
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"wa": "わ", "wo": "を",
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"za": "ざ", "ji": "じ", "zi": "じ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"da": "だ", "di": "ぢ", "du": "づ", "de": "で", "do": "ど",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	"va": "ゔぁ", "vi": "ゔぃ", "vu": "ゔ", "ve": "ゔぇ", "vo": "ゔぉ",
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"sha": "しゃ", "shu": "しゅ", "sho": "しょ",
	"sya": "しゃ", "syu": "しゅ", "syo": "しょ",
	"cha": "ちゃ", "chu": "ちゅ", "cho": "ちょ",
	"tya": "ちゃ", "tyu": "ちゅ", "tyo": "ちょ",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	"ja": "じゃ", "ju": "じゅ", "jo": "じょ",
	"jya": "じゃ", "jyu": "じゅ", "jyo": "じょ",
	"zya": "じゃ", "zyu": "じゅ", "zyo": "じょ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	"fa": "ふぁ", "fi": "ふぃ", "fe": "ふぇ", "fo": "ふぉ",
	"she": "しぇ", "che": "ちぇ", "je": "じぇ",
	"wi": "うぃ", "we": "うぇ",
}

func isVowel(r rune) bool {
	return r == 'a' || r == 'i' || r == 'u' || r == 'e' || r == 'o'
}

func isConsonant(r rune) bool {
	return r >= 'a' && r <= 'z' && !isVowel(r)
}

// romajiToHiragana converts one romanized segment. It reports false when any
// part of the segment has no mapping, so a garbled reading degrades to "no
// reading" instead of a wrong one.
func romajiToHiragana(s string) (string, bool) {
	runes := []rune(strings.ToLower(s))
	var b strings.Builder
	i := 0
	for i < len(runes) {
		r := runes[i]
		// doubled consonant marks a sokuon: kk -> っk
		if isConsonant(r) && r != 'n' && i+1 < len(runes) && runes[i+1] == r {
			b.WriteRune('っ')
			i++
			continue
		}
		// syllabic n: before a consonant, an apostrophe, or at the end
		if r == 'n' {
			if i+1 == len(runes) {
				b.WriteRune('ん')
				i++
				continue
			}
			next := runes[i+1]
			if next == '\'' {
				b.WriteRune('ん')
				i += 2
				continue
			}
			if isConsonant(next) && next != 'y' {
				b.WriteRune('ん')
				i++
				continue
			}
		}
		matched := false
		for l := 3; l >= 1; l-- {
			if i+l > len(runes) {
				continue
			}
			if h, ok := romajiTable[string(runes[i:i+l])]; ok {
				b.WriteString(h)
				i += l
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if r == '-' {
			b.WriteRune('ー')
			i++
			continue
		}
		return "", false
	}
	return b.String(), true
}
