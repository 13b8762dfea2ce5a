package mood

import (
	"context"
	"log"
	"strings"
	"time"
)

// DefaultModelTimeout bounds a single model call.
const DefaultModelTimeout = 10 * time.Second

// Source identifies which path produced a classification.
type Source string

const (
	// SourceKeyword means the label came from the keyword vocabulary.
	SourceKeyword Source = "keyword"
	// SourceModel means the label came from the external model.
	SourceModel Source = "model"
	// SourceDefault means nothing matched and DefaultMood was used.
	SourceDefault Source = "default"
)

// Model is an external single-label text classifier.
// An error or an empty label both mean "no label produced".
type Model interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Result is the outcome of classifying one journal entry.
type Result struct {
	// Candidates holds every keyword match. More than one means the user
	// has to pick.
	Candidates []string
	// Label is the raw mood label. Empty when disambiguation is required.
	Label  string
	Source Source
}

// NeedsChoice reports whether the user must pick among several keywords.
func (r Result) NeedsChoice() bool {
	return r.Source == SourceKeyword && len(r.Candidates) > 1
}

// Classifier resolves text to a mood using keywords first, then a model,
// then DefaultMood.
type Classifier struct {
	model    Model
	keywords bool
	timeout  time.Duration
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithModel sets the model consulted when no keyword matches.
func WithModel(m Model) Option {
	return func(c *Classifier) {
		c.model = m
	}
}

// WithKeywordPrefilter toggles the keyword scan.
func WithKeywordPrefilter(enabled bool) Option {
	return func(c *Classifier) {
		c.keywords = enabled
	}
}

// WithTimeout sets the per-call model timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClassifier creates a Classifier. Keyword prefiltering is on by default
// and there is no model unless WithModel is given.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		keywords: true,
		timeout:  DefaultModelTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify infers the mood of text. It never fails: model errors fall
// through to DefaultMood.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	if c.keywords {
		if matches := MatchKeywords(text); len(matches) > 0 {
			r := Result{Candidates: matches, Source: SourceKeyword}
			if len(matches) == 1 {
				r.Label = matches[0]
			}
			return r
		}
	}

	if label := c.classifyWithModel(ctx, text); label != "" {
		return Result{Label: label, Source: SourceModel}
	}

	return Result{Label: DefaultMood, Source: SourceDefault}
}

func (c *Classifier) classifyWithModel(ctx context.Context, text string) string {
	if c.model == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	label, err := c.model.Classify(ctx, text)
	if err != nil {
		log.Printf("WARN mood: model unavailable, falling back: %v", err)
		return ""
	}
	return strings.TrimSpace(label)
}
