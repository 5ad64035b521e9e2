// Package logger writes annotation pipeline artifacts as JSON files so a run
// can be inspected after the fact.
package logger

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Init ensures the artifact directory exists and clears JSON artifacts from
// previous runs.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	stale, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	for _, f := range stale {
		if err := os.Remove(f); err != nil {
			logrus.WithField("file", f).WithError(err).Warn("could not remove stale artifact")
		}
	}
	return nil
}

// WriteJSON writes v as indented JSON to <dir>/<name>.json, going through a
// temporary file and a rename so readers never see a partial artifact.
func WriteJSON(dir, name string, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	final := filepath.Join(dir, filepath.Base(name)+".json")
	tmp := final + ".tmp"

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
