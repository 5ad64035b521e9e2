package pitch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupExactMatch(t *testing.T) {
	d := FromEntries([]Entry{
		{Word: "箸", Reading: "はし", Accent: 1, Confidence: 0.98},
		{Word: "橋", Reading: "はし", Accent: 2, Confidence: 0.98},
	})

	e := d.Lookup("橋", "はし")
	require.NotNil(t, e)
	assert.Equal(t, 2, e.Accent)

	e = d.Lookup("箸", "はし")
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Accent)
}

func TestLookupReadingFallbackUsesInsertionOrder(t *testing.T) {
	// Two homophones with different accents: the fallback must always pick
	// the one loaded first, never an arbitrary map-iteration winner.
	d := FromEntries([]Entry{
		{Word: "箸", Reading: "はし", Accent: 1, Confidence: 0.98},
		{Word: "橋", Reading: "はし", Accent: 2, Confidence: 0.98},
	})

	e := d.Lookup("未知の表記", "はし")
	require.NotNil(t, e)
	assert.Equal(t, "箸", e.Word)
	assert.Equal(t, 1, e.Accent)
}

func TestLookupNoMatchReturnsNil(t *testing.T) {
	d := FromEntries([]Entry{{Word: "犬", Reading: "いぬ", Accent: 2, Confidence: 1}})
	assert.Nil(t, d.Lookup("未知語", "みちご"))
	assert.Nil(t, d.Lookup("犬", ""))

	var nilDict *Dictionary
	assert.Nil(t, nilDict.Lookup("犬", "いぬ"))
}

func TestFromEntriesDuplicateKeyFirstWins(t *testing.T) {
	d := FromEntries([]Entry{
		{Word: "雨", Reading: "あめ", Accent: 1, Confidence: 0.9},
		{Word: "雨", Reading: "あめ", Accent: 0, Confidence: 0.5},
	})
	e := d.Lookup("雨", "あめ")
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Accent)
}

func TestReadingOnlyEntry(t *testing.T) {
	d := FromEntries([]Entry{{Reading: "おはよう", Accent: 0, Confidence: 0.9}})
	e := d.Lookup("おはよう", "おはよう")
	require.NotNil(t, e)
	assert.Equal(t, 0, e.Accent)
	assert.Empty(t, e.Word)
}

func TestLoad(t *testing.T) {
	doc := `
entries:
  - {word: 猫, reading: ねこ, accent: 1, confidence: 0.98}
  - {word: 明日, reading: あした, accent: 3, confidence: 0.9, alternatives: [2]}
`
	d, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	e := d.Lookup("明日", "あした")
	require.NotNil(t, e)
	assert.Equal(t, 3, e.Accent)
	assert.Equal(t, []int{2}, e.Alternatives)
}

func TestLoadRejectsBadEntries(t *testing.T) {
	_, err := Load(strings.NewReader("entries: [{word: 猫, accent: 1, confidence: 1}]"))
	assert.ErrorContains(t, err, "missing reading")

	_, err = Load(strings.NewReader("entries: [{reading: ねこ, accent: -1, confidence: 1}]"))
	assert.ErrorContains(t, err, "negative accent")

	_, err = Load(strings.NewReader("entries: [{reading: ねこ, accent: 1, confidence: 1.5}]"))
	assert.ErrorContains(t, err, "confidence")

	_, err = Load(strings.NewReader("entries: ["))
	assert.Error(t, err)
}

func TestDefaultTable(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)
	assert.Greater(t, d.Len(), 30)

	e := d.Lookup("食べ物", "たべもの")
	require.NotNil(t, e)
	assert.Equal(t, 3, e.Accent)

	// homophone fallback order is part of the shipped data
	e = d.Lookup("", "はし")
	require.NotNil(t, e)
	assert.Equal(t, "箸", e.Word)
}
