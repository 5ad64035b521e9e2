// Package annotate turns recognized Japanese utterances into annotated text
// runs carrying optional hiragana readings and per-mora pitch contours.
package annotate

import (
	"context"
	"fmt"
	"strings"

	"kikitori/kana"
	"kikitori/mora"
	"kikitori/pitch"
	"kikitori/script"
	"kikitori/segment"
)

// Token is one annotated run. An empty Reading means no reading is available
// and a nil Pitch means no pitch information; renderers must handle both.
type Token struct {
	Text          string        `json:"text"`
	Reading       string        `json:"reading,omitempty"`
	NeedsFurigana bool          `json:"needs_furigana"`
	Script        script.Kind   `json:"script"`
	Pitch         []pitch.Level `json:"pitch,omitempty"`
}

// NeedsFurigana reports whether a run should display a reading aid: only
// kanji runs with a reading that differs from the text qualify. Katakana
// runs never do, even when their reading differs.
func NeedsFurigana(t Token) bool {
	return t.Reading != "" && t.Reading != t.Text && t.Script == script.Kanji
}

// Split breaks one segmented unit into runs of a single writing system. The
// concatenated run texts always reproduce text exactly. When the unit mixes
// scripts, only the kanji runs carry the reading: the segmenter cannot
// attribute partial readings to sub-spans, so the whole-unit reading is
// attached to kanji runs as an approximation.
func Split(text, reading string) []Token {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if kind, uniform := uniformKind(runes); len(runes) == 1 || uniform {
		if len(runes) == 1 {
			kind = script.Classify(runes[0])
		}
		return []Token{{Text: text, Reading: reading, Script: kind}}
	}

	var out []Token
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && script.Classify(runes[i]) == script.Classify(runes[start]) {
			continue
		}
		k := script.Classify(runes[start])
		run := Token{Text: string(runes[start:i]), Script: k}
		if k == script.Kanji {
			run.Reading = reading
		}
		out = append(out, run)
		start = i
	}
	return out
}

// uniformKind reports the script kind shared by every non-Other rune, Other
// when the text has none, and false when two kinds are mixed.
func uniformKind(runes []rune) (script.Kind, bool) {
	var kind script.Kind
	for _, r := range runes {
		k := script.Classify(r)
		if k == script.Other {
			continue
		}
		if kind == "" {
			kind = k
			continue
		}
		if k != kind {
			return "", false
		}
	}
	if kind == "" {
		kind = script.Other
	}
	return kind, true
}

// Annotator composes the segmentation boundary, reading normalization and
// the pitch-accent dictionary into a single synchronous transform. All state
// is read-only after construction, so one Annotator serves any number of
// concurrent callers.
type Annotator struct {
	seg   segment.Segmenter
	dict  *pitch.Dictionary
	trans kana.Transliterator
}

// New wires an annotator. A nil transliterator falls back to the built-in
// kana converter; a nil dictionary disables pitch lookup.
func New(seg segment.Segmenter, dict *pitch.Dictionary, trans kana.Transliterator) *Annotator {
	if trans == nil {
		trans = kana.Func(kana.ToHiragana)
	}
	return &Annotator{seg: seg, dict: dict, trans: trans}
}

// Annotate segments text and annotates every run. The transliterator is
// consulted once per segmented unit; when it yields nothing, every run of
// that unit stays unread (no furigana, no pitch) rather than failing. Empty
// input yields an empty result. The segmenter is the only error source.
func (a *Annotator) Annotate(ctx context.Context, text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}
	units, err := a.seg.Segment(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	var out []Token
	for _, s := range coverGaps(text, units) {
		if s.gap {
			// uncovered runes surface as Other regardless of their script
			out = append(out, Token{Text: s.unit.Text, Script: script.Other})
			continue
		}
		u := s.unit
		reading := ""
		if u.Reading != "" {
			reading = a.trans.ToHiragana(u.Reading)
		}
		for _, run := range Split(u.Text, reading) {
			run.NeedsFurigana = NeedsFurigana(run)
			if run.Reading != "" {
				if e := a.dict.Lookup(run.Text, run.Reading); e != nil {
					run.Pitch = pitch.GeneratePattern(e.Accent, mora.Count(run.Reading))
				}
			}
			out = append(out, run)
		}
	}
	return out, nil
}

// span is one aligned stretch of the input: a segmenter unit, or a
// single-rune gap the segmenter left uncovered.
type span struct {
	unit segment.Unit
	gap  bool
}

// coverGaps fills input runes the segmenter skipped with single-character
// gap spans carrying no reading, so the annotated runs always cover the
// whole utterance. Units whose text does not occur in the remaining input
// are dropped.
func coverGaps(text string, units []segment.Unit) []span {
	out := make([]span, 0, len(units))
	rest := text
	for _, u := range units {
		if u.Text == "" {
			continue
		}
		idx := strings.Index(rest, u.Text)
		if idx < 0 {
			continue
		}
		for _, r := range rest[:idx] {
			out = append(out, span{unit: segment.Unit{Text: string(r)}, gap: true})
		}
		out = append(out, span{unit: u})
		rest = rest[idx+len(u.Text):]
	}
	for _, r := range rest {
		out = append(out, span{unit: segment.Unit{Text: string(r)}, gap: true})
	}
	return out
}

// Result pairs an utterance with its annotated runs.
type Result struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// Stream annotates complete utterances received on in and publishes one
// Result per utterance, preserving order. It stops on context cancellation,
// on the first segmenter error, or when in closes; both returned channels
// are closed on exit.
func (a *Annotator) Stream(ctx context.Context, in <-chan string) (<-chan Result, <-chan error) {
	out := make(chan Result, 8)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case text, ok := <-in:
				if !ok {
					return
				}
				toks, err := a.Annotate(ctx, text)
				if err != nil {
					errs <- err
					return
				}
				select {
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				case out <- Result{Text: text, Tokens: toks}:
				}
			}
		}
	}()
	return out, errs
}
