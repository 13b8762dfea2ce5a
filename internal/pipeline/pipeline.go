// Package pipeline turns a journal entry into a mood and music recommendations.
package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/mood"
	"github.com/justestif/go-mood-journal/internal/spotify"
)

// User-facing status messages.
const (
	MsgEmptyInput = "Please enter something to analyze."
	MsgChoose     = "We found some mood words. Pick the one that fits best:"
	MsgAuthFailed = "Failed to get Spotify token. Check your credentials."
	MsgNoResults  = "No results found on Spotify for this mood."
)

// State is where a submission ended up.
type State string

const (
	StateIdle           State = "idle"
	StateWarning        State = "warning"
	StateDisambiguation State = "disambiguation"
	StateAuthError      State = "auth_error"
	StateNoResults      State = "no_results"
	StateResults        State = "results"
)

// Classifier infers a mood from text.
type Classifier interface {
	Classify(ctx context.Context, text string) mood.Result
}

// TokenSource fetches a fresh catalog token.
type TokenSource interface {
	FetchToken(ctx context.Context) (*oauth2.Token, error)
}

// Searcher looks up music for a mood.
type Searcher interface {
	Search(ctx context.Context, mood string, token *oauth2.Token, kind spotify.ResultKind, limit int) []spotify.Song
}

// Options selects pipeline behavior.
type Options struct {
	UseKeywordPrefilter bool
	NormalizeLabels     bool
	ResultKind          spotify.ResultKind // default when a submission names none
	Limit               int
}

// DefaultOptions mirrors the full-featured journal.
func DefaultOptions() Options {
	return Options{
		UseKeywordPrefilter: true,
		NormalizeLabels:     true,
		ResultKind:          spotify.KindTrack,
		Limit:               spotify.DefaultLimit,
	}
}

// Outcome is everything the presentation layer needs to render a submission.
type Outcome struct {
	State      State
	Message    string
	Mood       string // raw label, used as the search query
	Display    string // label shown to the user and logged
	Emoji      string
	Candidates []string
	Kind       spotify.ResultKind
	Songs      []spotify.Song
}

// Pipeline runs one submission at a time against its collaborators.
type Pipeline struct {
	classifier Classifier
	tokens     TokenSource
	catalog    Searcher
	opts       Options
	now        func() time.Time
}

// New creates a Pipeline.
func New(classifier Classifier, tokens TokenSource, catalog Searcher, opts Options) *Pipeline {
	if opts.ResultKind == "" {
		opts.ResultKind = spotify.KindTrack
	}
	if opts.Limit <= 0 {
		opts.Limit = spotify.DefaultLimit
	}
	return &Pipeline{
		classifier: classifier,
		tokens:     tokens,
		catalog:    catalog,
		opts:       opts,
		now:        time.Now,
	}
}

// NewClassifier builds the mood classifier matching opts. model may be nil,
// in which case unmatched text falls back to the default mood.
func NewClassifier(model mood.Model, timeout time.Duration, opts Options) *mood.Classifier {
	classifierOpts := []mood.Option{
		mood.WithKeywordPrefilter(opts.UseKeywordPrefilter),
		mood.WithTimeout(timeout),
	}
	if model != nil {
		classifierOpts = append(classifierOpts, mood.WithModel(model))
	}
	return mood.NewClassifier(classifierOpts...)
}

// Options returns the pipeline configuration.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Submit classifies text and, unless the user has to choose between several
// keywords, logs the mood and fetches recommendations.
func (p *Pipeline) Submit(ctx context.Context, moodLog *journal.Log, text string, kind spotify.ResultKind) Outcome {
	kind = p.kind(kind)

	if strings.TrimSpace(text) == "" {
		return Outcome{State: StateWarning, Message: MsgEmptyInput, Kind: kind}
	}

	log.Printf("DEBUG pipeline: analyzing entry (%d chars)", len(text))
	result := p.classifier.Classify(ctx, text)

	if result.NeedsChoice() {
		return Outcome{
			State:      StateDisambiguation,
			Message:    MsgChoose,
			Candidates: result.Candidates,
			Kind:       kind,
		}
	}

	display := result.Label
	if result.Source == mood.SourceModel && p.opts.NormalizeLabels {
		display = mood.Readable(result.Label)
	}
	return p.recommend(ctx, moodLog, result.Label, display, kind)
}

// Choose continues a submission with the keyword the user picked.
// Keyword moods are logged as-is, without normalization.
func (p *Pipeline) Choose(ctx context.Context, moodLog *journal.Log, keyword string, kind spotify.ResultKind) Outcome {
	kind = p.kind(kind)

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		keyword = mood.DefaultMood
	}
	return p.recommend(ctx, moodLog, keyword, keyword, kind)
}

// recommend logs the resolved mood, then fetches a token and searches.
// The log entry is kept even if the token or search step fails.
func (p *Pipeline) recommend(ctx context.Context, moodLog *journal.Log, label, display string, kind spotify.ResultKind) Outcome {
	out := Outcome{
		Mood:    label,
		Display: display,
		Emoji:   mood.Emoji(label),
		Kind:    kind,
	}

	moodLog.Append(p.now(), display)

	log.Printf("DEBUG pipeline: fetching token for mood %q", label)
	token, err := p.tokens.FetchToken(ctx)
	if err != nil {
		log.Printf("WARN pipeline: %v", err)
		out.State = StateAuthError
		out.Message = MsgAuthFailed
		return out
	}

	log.Printf("DEBUG pipeline: searching %s for %q", kind, label)
	out.Songs = p.catalog.Search(ctx, label, token, kind, p.opts.Limit)
	if len(out.Songs) == 0 {
		out.State = StateNoResults
		out.Message = MsgNoResults
		return out
	}

	out.State = StateResults
	return out
}

func (p *Pipeline) kind(k spotify.ResultKind) spotify.ResultKind {
	if k == "" {
		return p.opts.ResultKind
	}
	return k
}
