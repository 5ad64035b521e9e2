// Package segment defines the word-segmentation boundary of the annotation
// pipeline and a kagome-backed implementation of it.
package segment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Unit is one segmenter output covering a contiguous span of the utterance.
// Reading is whatever the backing service produces — katakana from the
// morphological analyzer, romaji from a speech pipeline — and may be empty
// when the segmenter has no reading for the span.
type Unit struct {
	Text    string `json:"text"`
	Reading string `json:"reading,omitempty"`
}

// Segmenter splits an utterance into ordered units. Implementations sit at
// the boundary to an external service and are the only fallible stage of the
// annotation pipeline.
type Segmenter interface {
	Segment(ctx context.Context, text string) ([]Unit, error)
}

// Dictionary names accepted by NewKagome.
const (
	DictIPA = "ipa"
	DictUni = "uni"
)

// Kagome segments text with the kagome morphological analyzer.
type Kagome struct {
	tok *tokenizer.Tokenizer
}

// NewKagome builds a segmenter over the named system dictionary, IPA by
// default. The dictionary is embedded in the binary, so construction only
// fails on an unknown name or tokenizer misconfiguration.
func NewKagome(dictName string) (*Kagome, error) {
	var d *dict.Dict
	switch dictName {
	case "", DictIPA:
		d = ipa.Dict()
	case DictUni:
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("unknown segmenter dictionary %q", dictName)
	}
	tok, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init kagome tokenizer: %w", err)
	}
	return &Kagome{tok: tok}, nil
}

// Segment tokenizes text and merges verb+auxiliary sequences so conjugated
// forms come back as one unit with a combined reading.
func (k *Kagome) Segment(ctx context.Context, text string) ([]Unit, error) {
	if text == "" {
		return nil, nil
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var ms []morpheme
	for _, kt := range k.tok.Tokenize(text) {
		reading, ok := kt.Reading()
		if !ok {
			reading = ""
		}
		ms = append(ms, morpheme{
			surface: kt.Surface,
			reading: reading,
			pos:     strings.Join(kt.POS(), ","),
		})
	}
	ms = mergeVerbAuxiliaries(ms)

	units := make([]Unit, len(ms))
	for i, m := range ms {
		units[i] = Unit{Text: m.surface, Reading: m.reading}
	}
	return units, nil
}

type morpheme struct {
	surface string
	reading string
	pos     string
}

func isAuxiliary(pos string) bool {
	return strings.HasPrefix(pos, "助動詞") ||
		strings.HasPrefix(pos, "動詞,非自立") ||
		strings.HasPrefix(pos, "動詞,接尾")
}

// mergeVerbAuxiliaries folds auxiliary verbs and verbal suffixes into the
// preceding verb. A merged unit concatenates surfaces and readings; if any
// piece lacks a reading the merged reading is dropped rather than left
// partial.
func mergeVerbAuxiliaries(ms []morpheme) []morpheme {
	var out []morpheme
	i := 0
	for i < len(ms) {
		m := ms[i]
		if !strings.HasPrefix(m.pos, "動詞") {
			out = append(out, m)
			i++
			continue
		}
		j := i + 1
		for j < len(ms) && isAuxiliary(ms[j].pos) {
			j++
		}
		if j == i+1 {
			out = append(out, m)
			i++
			continue
		}
		merged := m
		complete := m.reading != ""
		for _, aux := range ms[i+1 : j] {
			merged.surface += aux.surface
			merged.reading += aux.reading
			if aux.reading == "" {
				complete = false
			}
		}
		if !complete {
			merged.reading = ""
		}
		out = append(out, merged)
		i = j
	}
	return out
}
