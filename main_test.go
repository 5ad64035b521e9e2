package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kikitori/annotate"
	"kikitori/config"
	"kikitori/segment"
	"kikitori/transcribe"
)

type stubSegmenter struct {
	units []segment.Unit
	err   error
}

func (s stubSegmenter) Segment(ctx context.Context, text string) ([]segment.Unit, error) {
	return s.units, s.err
}

func newTestCmd(in string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(in))
	return cmd, &out
}

func TestLoadConfigResolvesLogsDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kikitori.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logs:\n  dir: artifacts\n"), 0o644))

	// a logs dir set only in the config file must survive resolution
	cfg, err := loadConfig(&options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, "artifacts", cfg.Logs.Dir)

	// the flag wins over the file
	cfg, err = loadConfig(&options{configPath: path, logsDir: "elsewhere"})
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.Logs.Dir)
}

func TestEmitWritesArtifactFromConfigLogsDir(t *testing.T) {
	dir := t.TempDir()
	cmd, out := newTestCmd("")
	cfg := config.Config{Logs: config.Logs{Dir: dir}}

	u, err := transcribe.NewUtterance("おはよう")
	require.NoError(t, err)
	toks := []annotate.Token{{Text: "おはよう", Reading: "おはよう", Script: "hiragana"}}

	// opts carries no --logs flag; the resolved config alone enables logging
	require.NoError(t, emit(cmd, &options{jsonOut: true}, cfg, u, toks))

	assert.Contains(t, out.String(), "おはよう")
	_, err = os.Stat(filepath.Join(dir, u.ID+"_tokens.json"))
	assert.NoError(t, err)
}

func TestEmitSkipsArtifactWhenLoggingDisabled(t *testing.T) {
	cmd, _ := newTestCmd("")
	u, err := transcribe.NewUtterance("はい")
	require.NoError(t, err)

	require.NoError(t, emit(cmd, &options{jsonOut: true}, config.Config{}, u, nil))

	wd, err := os.Getwd()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(wd, u.ID+"_tokens.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestAnnotateStdin(t *testing.T) {
	seg := stubSegmenter{units: []segment.Unit{{Text: "おはよう", Reading: "おはよう"}}}
	a := annotate.New(seg, nil, nil)

	dir := t.TempDir()
	cmd, out := newTestCmd("おはよう\n\nおはよう\n")
	cfg := config.Config{Logs: config.Logs{Dir: dir}}

	require.NoError(t, annotateStdin(cmd, &options{jsonOut: true}, cfg, a))

	assert.Equal(t, 2, strings.Count(out.String(), `"tokens"`), "one result per non-blank line")

	artifacts, err := filepath.Glob(filepath.Join(dir, "*_tokens.json"))
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)
}

func TestAnnotateStdinStopsOnSegmenterError(t *testing.T) {
	sentinel := errors.New("segmenter down")
	a := annotate.New(stubSegmenter{err: sentinel}, nil, nil)

	// more lines than the stream buffers, so the scanner outlives the stream
	lines := strings.Repeat("おはよう\n", 64)
	cmd, _ := newTestCmd(lines)

	err := annotateStdin(cmd, &options{jsonOut: true}, config.Config{}, a)
	assert.ErrorIs(t, err, sentinel)
}
