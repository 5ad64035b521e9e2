package mora

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	tests := []struct {
		kana string
		want int
	}{
		{"", 0},
		{"あ", 1},
		{"おはよう", 4},
		{"きょう", 2},
		{"おはようございます", 9},
		{"たべもの", 4},
		// long-vowel marks attach to the preceding mora
		{"コーヒー", 2},
		{"ラーメン", 3},
		{"あ～", 1},
		// small tsu attaches too
		{"がっこう", 3},
		{"チェック", 2},
		// a leading small kana still opens the first mora
		{"ょう", 2},
		{"ッ", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.kana), "Count(%q)", tt.kana)
	}
}
