package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jfmyers9/spotctl/internal/config"
	"github.com/jfmyers9/spotctl/pkg/spotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	logFile     string
	logLevel    string
	raiseErrors bool
	jsonOutput  bool
	formatFlag  string

	logger = zerolog.Nop()
)

// errNoResult is returned when the client swallowed a failure.
var errNoResult = errors.New("request failed (run with --raise-errors for details)")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spotctl",
	Short: "Command line client for the Spotify Web API",
	Long: `spotctl is a command line client for the Spotify Web API.

It reads the catalog (albums, artists, tracks, search), manages the saved
tracks of your library and your playlists, and can export your library to
a local SQLite database.

Run 'spotctl auth' once to authorize the application. Credentials and
tokens are stored in ~/.config/spotctl/config.yaml; any setting can be
overridden with SPOTCTL_* environment variables, for example
SPOTCTL_SPOTIFY_ACCESS_TOKEN.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = setupLogger(logFile, logLevel)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&raiseErrors, "raise-errors", false, "Report API errors instead of suppressing them")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON objects")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Track output template (overrides config)")
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	l := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		l = l.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return l
}

// zerologAdapter routes the client's debug output into zerolog.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Debug().Msgf(format, args...)
}

// loadClient loads the configuration and builds an API client from it.
func loadClient() (*spotify.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newClient(cfg), cfg, nil
}

func newClient(cfg *config.Config) *spotify.Client {
	if cfg.Spotify.AccessToken == "" {
		logger.Warn().Msg("No access token configured, run 'spotctl auth' first")
	}

	return spotify.NewClient(spotify.Config{
		AccessToken:  cfg.Spotify.AccessToken,
		RaiseErrors:  raiseErrors,
		Retries:      cfg.HTTP.Retries,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		Persistent:   cfg.HTTP.Persistent,
		BaseURL:      cfg.Spotify.BaseURL,
		Logger:       zerologAdapter{logger: logger.With().Str("component", "spotify").Logger()},
	})
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
