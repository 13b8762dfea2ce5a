// Package config loads mood journal settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/justestif/go-mood-journal/internal/mood"
	"github.com/justestif/go-mood-journal/internal/spotify"
)

// DefaultAddr is the default listen address.
const DefaultAddr = "127.0.0.1:8080"

// Model backends.
const (
	ModelHuggingFace = "huggingface"
	ModelOpenAI      = "openai"
	ModelNone        = "none"
)

var (
	// ErrMissingCredentials is returned when SPOTIFY_ID or SPOTIFY_SECRET is unset.
	ErrMissingCredentials = errors.New("please set SPOTIFY_ID and SPOTIFY_SECRET environment variables")
	// ErrMissingOpenAIKey is returned when the OpenAI backend is selected without a key.
	ErrMissingOpenAIKey = errors.New("MOOD_MODEL=openai requires OPENAI_API_KEY")
	// ErrUnknownModel is returned for an unrecognized MOOD_MODEL.
	ErrUnknownModel = errors.New("unknown MOOD_MODEL")
)

// Config is the complete application configuration.
type Config struct {
	Addr string

	SpotifyID       string
	SpotifySecret   string
	SpotifyTokenURL string
	SpotifyAPIURL   string

	Model        string
	ModelTimeout time.Duration

	HFToken   string
	HFModel   string
	HFBaseURL string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	KeywordPrefilter bool
	NormalizeLabels  bool
	ResultKind       spotify.ResultKind
	ResultLimit      int
}

// LoadDotEnv loads .env.local and .env from the working directory, plus
// any extra files given. Missing files are skipped and variables that are
// already set are never overwritten.
func LoadDotEnv(extra ...string) error {
	paths := append([]string{".env.local", ".env"}, extra...)
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
		log.Printf("config: loaded env from %s", p)
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            getenv("ADDR", DefaultAddr),
		SpotifyID:       strings.TrimSpace(os.Getenv("SPOTIFY_ID")),
		SpotifySecret:   strings.TrimSpace(os.Getenv("SPOTIFY_SECRET")),
		SpotifyTokenURL: strings.TrimSpace(os.Getenv("SPOTIFY_TOKEN_URL")),
		SpotifyAPIURL:   strings.TrimSpace(os.Getenv("SPOTIFY_API_URL")),
		Model:           strings.ToLower(getenv("MOOD_MODEL", ModelHuggingFace)),
		HFToken:         strings.TrimSpace(os.Getenv("HF_API_TOKEN")),
		HFModel:         getenv("HF_MODEL", mood.DefaultHuggingFaceModel),
		HFBaseURL:       getenv("HF_BASE_URL", mood.DefaultHuggingFaceURL),
		OpenAIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:     getenv("OPENAI_MODEL", mood.DefaultOpenAIModel),
		OpenAIBaseURL:   getenv("OPENAI_BASE_URL", mood.DefaultOpenAIBaseURL),
	}

	if cfg.SpotifyID == "" || cfg.SpotifySecret == "" {
		return nil, ErrMissingCredentials
	}

	switch cfg.Model {
	case ModelHuggingFace, ModelNone:
	case ModelOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, ErrMissingOpenAIKey
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, cfg.Model)
	}

	var err error
	if cfg.ModelTimeout, err = durationEnv("MOOD_MODEL_TIMEOUT", mood.DefaultModelTimeout); err != nil {
		return nil, err
	}
	if cfg.KeywordPrefilter, err = boolEnv("KEYWORD_PREFILTER", true); err != nil {
		return nil, err
	}
	if cfg.NormalizeLabels, err = boolEnv("NORMALIZE_LABELS", true); err != nil {
		return nil, err
	}
	if cfg.ResultKind, err = spotify.ParseResultKind(getenv("RESULT_KIND", string(spotify.KindTrack))); err != nil {
		return nil, fmt.Errorf("RESULT_KIND: %w", err)
	}
	if cfg.ResultLimit, err = intEnv("RESULT_LIMIT", spotify.DefaultLimit); err != nil {
		return nil, err
	}
	if cfg.ResultLimit < 1 || cfg.ResultLimit > 50 {
		return nil, fmt.Errorf("RESULT_LIMIT must be between 1 and 50, got %d", cfg.ResultLimit)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
