package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/launchcast/client"
	"github.com/reoring/launchcast/config"
	"github.com/reoring/launchcast/i18n"
)

// app carries what subcommands share after flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "launchcast",
		Short:         "Fetch and validate launch records",
		Long:          `launchcast fetches launch documents from the launch API, checks them against the v5 and v3 launch schemas and prints or serves the validated result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json or console")

	root.AddCommand(
		newGetCmd(a),
		newLatestCmd(a),
		newLegacyCmd(a),
		newValidateCmd(a),
		newSchemaCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := config.LoadWithFallback(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	logger, err := newLogger(stderr, cfg.Logging)
	if err != nil {
		return err
	}
	i18n.SetLanguage(cfg.Language)
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) client(opts ...client.Option) *client.Client {
	opts = append([]client.Option{
		client.WithLogger(a.logger),
		client.WithQueryDefaults(a.cfg.Query),
	}, opts...)
	return client.New(a.cfg.API, opts...)
}

// newLogger builds a zerolog logger writing to w and sets the global level.
func newLogger(w io.Writer, cfg config.LoggingConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	switch cfg.Format {
	case "json":
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminal(w)}
	default:
		return zerolog.Nop(), fmt.Errorf("log format must be 'json' or 'console', got %q", cfg.Format)
	}
	return zerolog.New(w).With().Timestamp().Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
