package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pevans/techdigest"
	"github.com/pevans/techdigest/config"
	"github.com/pevans/techdigest/discovery"
	"github.com/pevans/techdigest/publisher"
	"github.com/pevans/techdigest/summarizer"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options holds the global flags.
type options struct {
	configPath string
	envFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "techdigest",
		Short: "Post a Techmeme top 10 digest to Slack",
		Long: `techdigest fetches the Techmeme front page, asks a Gemini model for a
summary of the top 10 stories, and posts it to a Slack channel. Each
invocation performs exactly one run; schedule it with cron or CI.

Environment Variables:
  GEMINI_API_KEY        Gemini API key (required)
  GEMINI_MODEL          Gemini model name (default: ` + config.DefaultModel + `)
  SLACK_BOT_TOKEN       Slack bot token (required)
  SLACK_CHANNEL_ID      Slack channel to post to (required)
  TECHDIGEST_CONFIG     Path to YAML config file (default: ~/.techdigest/config.yaml)
  TECHDIGEST_LOG_LEVEL  Log level (default: info)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $TECHDIGEST_CONFIG or ~/.techdigest/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newModelsCmd(opts))

	return cmd
}

// loadConfig resolves the config file path and builds the run
// configuration. It does not validate credentials.
func loadConfig(opts *options) (*config.RunConfig, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}

	path := opts.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}

	return config.Load(path, os.LookupEnv)
}

// newLogger returns a console logger on out. verbose forces debug level.
func newLogger(out io.Writer, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()

	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
	}
	return log
}

// runDigest validates configuration before any client is built, then runs
// the pipeline once.
func runDigest(ctx context.Context, opts *options, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(stderr, cfg.LogLevel, opts.verbose)
	log.Debug().
		Str("model", cfg.ModelName).
		Str("source", cfg.Source.URL).
		Str("feed", cfg.Source.FeedURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Msg("Configuration loaded")

	pipeline, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	_, err = pipeline.Run(ctx)
	return err
}

// buildPipeline constructs the clients for each stage from cfg.
func buildPipeline(ctx context.Context, cfg *config.RunConfig, log zerolog.Logger) (*techdigest.Pipeline, error) {
	var source techdigest.HeadlineSource = discovery.NewExtractor(cfg, log)
	if cfg.Source.FeedURL != "" {
		source = discovery.NewFeedExtractor(cfg, log)
	}

	generator, err := summarizer.NewGeminiGenerator(ctx, cfg.APIKey, log)
	if err != nil {
		return nil, err
	}

	return techdigest.NewPipeline(
		source,
		summarizer.New(cfg, generator, log),
		publisher.New(cfg, log),
		log,
	), nil
}
