package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/justestif/go-spotify-mood-recommender/internal/config"
	"github.com/justestif/go-spotify-mood-recommender/internal/logging"
	"github.com/justestif/go-spotify-mood-recommender/internal/pipeline"
	"github.com/justestif/go-spotify-mood-recommender/internal/prompt"
	"github.com/justestif/go-spotify-mood-recommender/internal/spotify"
	"github.com/justestif/go-spotify-mood-recommender/internal/translate"
	"github.com/justestif/go-spotify-mood-recommender/internal/watson"
)

// app holds state shared by the commands.
type app struct {
	v        *viper.Viper
	envFile  string
	maxTurns int
}

func newRootCmd() *cobra.Command {
	return (&app{v: viper.New()}).rootCmd()
}

// flagKeys maps command-line flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level": "log_level",
	"addr":      "addr",
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood-recommender",
		Short: "Recommend a song that matches how you feel",
		Long: `Describe your mood in a sentence and get one Spotify track back.

Non-English input is translated with Google Cloud Translation, the dominant
emotion is detected with IBM Watson NLU, and the emotion is mapped to energy
and valence targets for Spotify's recommendations.`,
		SilenceUsage: true,
		RunE:         a.runPrompt,
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load (missing file is ignored)")
	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().IntVar(&a.maxTurns, "max-turns", 0, "stop after this many prompts without a recommendation (0 = unlimited)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.bindFlags(cmd)
	}

	cmd.AddCommand(newServeCmd(a))
	return cmd
}

// bindFlags binds the flags visible to cmd onto their config keys, so an
// explicitly set flag wins over the environment.
func (a *app) bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := a.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// setup loads configuration and wires the pipeline.
func (a *app) setup(ctx context.Context) (*config.Config, *zap.Logger, *pipeline.Pipeline, error) {
	cfg, err := config.Load(a.v, a.envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	translator, err := translate.NewFromConfig(ctx, cfg.Translate, logger.Named("translate"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating translator: %w", err)
	}
	classifier := watson.NewClient(cfg.Watson, logger.Named("watson"))
	recommender := spotify.NewFromConfig(ctx, cfg.Spotify)

	p := pipeline.New(translator, classifier, recommender, logger.Named("pipeline"))
	return cfg, logger, p, nil
}

func (a *app) runPrompt(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, logger, p, err := a.setup(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	loop := &prompt.Loop{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Pipeline: p,
		MaxTurns: a.maxTurns,
	}

	_, err = loop.Run(ctx)
	return err
}
