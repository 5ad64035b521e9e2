// Package config loads the YAML configuration for the annotation pipeline.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config controls segmenter dictionary selection, accent data, the
// transcription backend and artifact logging.
type Config struct {
	Segmenter  Segmenter  `yaml:"segmenter"`
	Accents    Accents    `yaml:"accents"`
	Transcribe Transcribe `yaml:"transcribe"`
	Logs       Logs       `yaml:"logs"`
}

// Segmenter selects the kagome system dictionary: "ipa" or "uni".
type Segmenter struct {
	Dict string `yaml:"dict"`
}

// Accents points at a YAML accent table; empty means the built-in table.
type Accents struct {
	Path string `yaml:"path"`
}

// Transcribe describes the speech-recognition endpoint. The API key is read
// from the environment variable named by APIKeyEnv, never from the file.
type Transcribe struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// Logs configures the JSON artifact directory. An empty Dir disables
// artifact logging.
type Logs struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Segmenter: Segmenter{Dict: "ipa"},
		Transcribe: Transcribe{
			Endpoint:  "https://api.openai.com/v1/audio/transcriptions",
			Model:     "whisper-1",
			APIKeyEnv: "OPENAI_API_KEY",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Segmenter.Dict == "" {
		cfg.Segmenter.Dict = "ipa"
	}
	return cfg, nil
}
