package pitch

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
)

// Entry is one pitch-accent record. Word may be empty for reading-only
// entries; Accent 0 is heiban and 1..N is the mora after which pitch drops.
type Entry struct {
	Word         string  `yaml:"word" json:"word,omitempty"`
	Reading      string  `yaml:"reading" json:"reading"`
	Accent       int     `yaml:"accent" json:"accent"`
	Confidence   float64 `yaml:"confidence" json:"confidence"`
	Alternatives []int   `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
}

// Dictionary is a read-only pitch-accent table built once at startup. It
// holds two indices: an exact (word, reading) index and a reading-only index
// used as a fallback. No mutation is possible after construction, so lookups
// are safe from any number of goroutines.
type Dictionary struct {
	byWordReading map[string]*Entry
	byReading     map[string][]*Entry
	size          int
}

func indexKey(word, reading string) string {
	return word + "\x00" + reading
}

// FromEntries builds a dictionary from entries in order. Order matters: the
// reading-only fallback resolves to the earliest entry sharing a reading, and
// the earliest entry wins a duplicate (word, reading) key. Entries with an
// empty reading are skipped.
func FromEntries(entries []Entry) *Dictionary {
	d := &Dictionary{
		byWordReading: make(map[string]*Entry, len(entries)),
		byReading:     make(map[string][]*Entry, len(entries)),
	}
	for i := range entries {
		e := entries[i]
		if e.Reading == "" {
			continue
		}
		k := indexKey(e.Word, e.Reading)
		if _, dup := d.byWordReading[k]; !dup {
			d.byWordReading[k] = &e
		}
		d.byReading[e.Reading] = append(d.byReading[e.Reading], &e)
		d.size++
	}
	return d
}

// Lookup resolves pitch information for a (word, reading) pair: an exact
// match on both first, then the first entry loaded with that reading alone.
// A nil result means no pitch information, not an error.
func (d *Dictionary) Lookup(word, reading string) *Entry {
	if d == nil || reading == "" {
		return nil
	}
	if e, ok := d.byWordReading[indexKey(word, reading)]; ok {
		return e
	}
	if es := d.byReading[reading]; len(es) > 0 {
		return es[0]
	}
	return nil
}

// Len returns the number of loaded entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

type accentDocument struct {
	Entries []Entry `yaml:"entries"`
}

// Load parses a YAML accent table from r. Entries keep their document order.
func Load(r io.Reader) (*Dictionary, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read accent table: %w", err)
	}
	var doc accentDocument
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse accent table: %w", err)
	}
	for i, e := range doc.Entries {
		if e.Reading == "" {
			return nil, fmt.Errorf("accent entry %d: missing reading", i)
		}
		if e.Accent < 0 {
			return nil, fmt.Errorf("accent entry %d (%s): negative accent position", i, e.Reading)
		}
		if e.Confidence < 0 || e.Confidence > 1 {
			return nil, fmt.Errorf("accent entry %d (%s): confidence %v outside [0,1]", i, e.Reading, e.Confidence)
		}
	}
	return FromEntries(doc.Entries), nil
}

// LoadFile loads a YAML accent table from disk.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

//go:embed accents.yaml
var defaultData []byte

var (
	defaultDict *Dictionary
	defaultErr  error
	defaultOnce sync.Once
)

// Default returns the built-in accent table, parsed once per process.
func Default() (*Dictionary, error) {
	defaultOnce.Do(func() {
		var doc accentDocument
		if err := yaml.Unmarshal(defaultData, &doc); err != nil {
			defaultErr = fmt.Errorf("parse built-in accent table: %w", err)
			return
		}
		defaultDict = FromEntries(doc.Entries)
	})
	return defaultDict, defaultErr
}
