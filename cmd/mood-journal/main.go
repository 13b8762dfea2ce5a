// Command mood-journal runs the Mood Journal with Soundtrack web application.
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/justestif/go-mood-journal/internal/auth"
	"github.com/justestif/go-mood-journal/internal/config"
	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/mood"
	"github.com/justestif/go-mood-journal/internal/pipeline"
	"github.com/justestif/go-mood-journal/internal/spotify"
	"github.com/justestif/go-mood-journal/internal/web"
	webfs "github.com/justestif/go-mood-journal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr    string
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "mood-journal",
		Short: "Journal your mood and get a Spotify soundtrack for it",
		Long: `mood-journal serves a small web app: write how you feel, and it infers a mood
from your words, recommends Spotify tracks or playlists for it, and keeps a
per-session mood heatmap.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address (overrides ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "extra .env file to load")

	return cmd
}

func run(cfg *config.Config) error {
	model, err := buildModel(cfg)
	if err != nil {
		return fmt.Errorf("creating mood model: %w", err)
	}

	tokenOpts := []auth.Option{}
	if cfg.SpotifyTokenURL != "" {
		tokenOpts = append(tokenOpts, auth.WithTokenURL(cfg.SpotifyTokenURL))
	}
	tokens, err := auth.NewTokenProvider(cfg.SpotifyID, cfg.SpotifySecret, tokenOpts...)
	if err != nil {
		return fmt.Errorf("creating token provider: %w", err)
	}
	log.Printf("spotify token endpoint: %s", tokens.TokenURL())

	catalogOpts := []spotify.Option{}
	if cfg.SpotifyAPIURL != "" {
		catalogOpts = append(catalogOpts, spotify.WithBaseURL(cfg.SpotifyAPIURL))
	}
	catalog := spotify.NewCatalog(catalogOpts...)

	opts := pipeline.Options{
		UseKeywordPrefilter: cfg.KeywordPrefilter,
		NormalizeLabels:     cfg.NormalizeLabels,
		ResultKind:          cfg.ResultKind,
		Limit:               cfg.ResultLimit,
	}
	p := pipeline.New(pipeline.NewClassifier(model, cfg.ModelTimeout, opts), tokens, catalog, opts)

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}
	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	server, err := web.NewServer(web.ServerConfig{
		Addr:        cfg.Addr,
		Pipeline:    p,
		Journals:    journal.NewStore(journal.DefaultSessionTTL),
		TemplatesFS: templates,
		StaticFS:    static,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}

// buildModel returns the configured external classifier, or nil when
// classification should rely on keywords and the default mood only.
func buildModel(cfg *config.Config) (mood.Model, error) {
	switch cfg.Model {
	case config.ModelOpenAI:
		log.Printf("mood model: openai (%s)", cfg.OpenAIModel)
		m, err := mood.NewOpenAI(mood.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ModelNone:
		log.Printf("mood model: none, using keywords and %q only", mood.DefaultMood)
		return nil, nil
	default:
		log.Printf("mood model: huggingface (%s)", cfg.HFModel)
		return mood.NewHuggingFace(mood.HuggingFaceConfig{
			Token:   cfg.HFToken,
			Model:   cfg.HFModel,
			BaseURL: cfg.HFBaseURL,
		}), nil
	}
}
