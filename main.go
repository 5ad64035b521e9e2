package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kikitori/annotate"
	"kikitori/config"
	"kikitori/logger"
	"kikitori/pitch"
	"kikitori/segment"
	"kikitori/transcribe"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

type options struct {
	configPath string
	accents    string
	dict       string
	logsDir    string
	jsonOut    bool
	verbose    bool
}

func rootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "kikitori",
		Short:         "Japanese transcription with furigana and pitch-accent annotation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	pf.StringVar(&opts.accents, "accents", "", "pitch-accent table (YAML), overrides config")
	pf.StringVar(&opts.dict, "dict", "", "segmenter dictionary: ipa or uni, overrides config")
	pf.StringVar(&opts.logsDir, "logs", "", "write JSON artifacts to this directory")
	pf.BoolVar(&opts.jsonOut, "json", false, "print annotated tokens as JSON")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(annotateCmd(opts), transcribeCmd(opts))
	return root
}

// loadConfig resolves the effective configuration from file plus flags.
func loadConfig(opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.accents != "" {
		cfg.Accents.Path = opts.accents
	}
	if opts.dict != "" {
		cfg.Segmenter.Dict = opts.dict
	}
	if opts.logsDir != "" {
		cfg.Logs.Dir = opts.logsDir
	}
	return cfg, nil
}

func buildAnnotator(cfg config.Config) (*annotate.Annotator, error) {
	seg, err := segment.NewKagome(cfg.Segmenter.Dict)
	if err != nil {
		return nil, err
	}
	var dict *pitch.Dictionary
	if cfg.Accents.Path != "" {
		dict, err = pitch.LoadFile(cfg.Accents.Path)
	} else {
		dict, err = pitch.Default()
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"segmenter": cfg.Segmenter.Dict,
		"accents":   dict.Len(),
	}).Debug("annotator ready")
	return annotate.New(seg, dict, nil), nil
}

func annotateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [text]",
		Short: "Annotate utterance text with furigana and pitch accent",
		Long: "Annotate reads one utterance per argument, or one per stdin line when " +
			"no arguments are given, and prints annotated token runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			a, err := buildAnnotator(cfg)
			if err != nil {
				return err
			}
			if cfg.Logs.Dir != "" {
				if err := logger.Init(cfg.Logs.Dir); err != nil {
					return fmt.Errorf("init log dir: %w", err)
				}
			}

			if len(args) > 0 {
				return annotateOne(cmd, opts, cfg, a, strings.Join(args, ""))
			}
			return annotateStdin(cmd, opts, cfg, a)
		},
	}
	return cmd
}

func annotateOne(cmd *cobra.Command, opts *options, cfg config.Config, a *annotate.Annotator, text string) error {
	u, err := transcribe.NewUtterance(text)
	if err != nil {
		return err
	}
	toks, err := a.Annotate(cmd.Context(), u.Text)
	if err != nil {
		return err
	}
	return emit(cmd, opts, cfg, u, toks)
}

// annotateStdin feeds input lines through the streaming annotator, one
// utterance per line. The scanner goroutine watches done so it never stays
// blocked on a send after the stream shuts down early.
func annotateStdin(cmd *cobra.Command, opts *options, cfg config.Config, a *annotate.Annotator) error {
	in := make(chan string, 8)
	out, errs := a.Stream(cmd.Context(), in)

	done := make(chan struct{})
	defer close(done)

	scanErr := make(chan error, 1)
	go func() {
		defer close(in)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case in <- line:
			case <-done:
				scanErr <- nil
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for res := range out {
		u, err := transcribe.NewUtterance(res.Text)
		if err != nil {
			continue
		}
		if err := emit(cmd, opts, cfg, u, res.Tokens); err != nil {
			return err
		}
	}
	if err := <-errs; err != nil {
		return err
	}
	return <-scanErr
}

func transcribeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcribe <audio>...",
		Short: "Transcribe audio files and annotate the recognized text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; flags and real env still win
			_ = godotenv.Load()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			a, err := buildAnnotator(cfg)
			if err != nil {
				return err
			}
			if cfg.Logs.Dir != "" {
				if err := logger.Init(cfg.Logs.Dir); err != nil {
					return fmt.Errorf("init log dir: %w", err)
				}
			}
			backend := transcribe.NewWhisperBackend(
				cfg.Transcribe.Endpoint,
				os.Getenv(cfg.Transcribe.APIKeyEnv),
				cfg.Transcribe.Model,
			)

			for _, audio := range args {
				res, err := backend.Transcribe(cmd.Context(), audio)
				if err != nil {
					return fmt.Errorf("%s: %w", audio, err)
				}
				logrus.WithFields(logrus.Fields{
					"audio": audio,
					"text":  res.Text,
				}).Info("recognized")
				if err := annotateOne(cmd, opts, cfg, a, res.Text); err != nil {
					return fmt.Errorf("%s: %w", audio, err)
				}
			}
			return nil
		},
	}
	return cmd
}

// emit prints one annotated utterance and, when enabled, writes a JSON
// artifact for later inspection.
func emit(cmd *cobra.Command, opts *options, cfg config.Config, u transcribe.Utterance, toks []annotate.Token) error {
	if opts.jsonOut {
		if err := printJSON(cmd.OutOrStdout(), u, toks); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), renderTokens(toks))
	}
	if cfg.Logs.Dir != "" {
		artifact := map[string]any{
			"utterance": u,
			"tokens":    toks,
		}
		if err := logger.WriteJSON(cfg.Logs.Dir, u.ID+"_tokens", artifact); err != nil {
			return fmt.Errorf("write artifact: %w", err)
		}
	}
	return nil
}
