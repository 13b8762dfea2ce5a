package web

import (
	"log"
	"net/http"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/pipeline"
	"github.com/justestif/go-mood-journal/internal/spotify"
)

const pageTitle = "Mood Journal with Soundtrack"

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	pipeline  *pipeline.Pipeline
	sessions  *SessionStore
	templates *Templates
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(p *pipeline.Pipeline, sessions *SessionStore, templates *Templates) *Handlers {
	return &Handlers{
		pipeline:  p,
		sessions:  sessions,
		templates: templates,
	}
}

// Home handles the journal page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.FromRequest(w, r)
	data := h.pageData(r, session, h.pipeline.Options().ResultKind)
	h.render(w, r, data)
}

// Submit handles a journal entry (POST /journal).
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	kind, ok := h.formKind(w, r)
	if !ok {
		return
	}

	session := h.sessions.FromRequest(w, r)
	text := r.PostFormValue("entry")

	outcome := h.pipeline.Submit(r.Context(), session.Log, text, kind)
	if outcome.State == pipeline.StateDisambiguation {
		h.sessions.SetPending(session.ID, pendingChoice{
			Candidates: outcome.Candidates,
			Kind:       outcome.Kind,
		})
	} else {
		h.sessions.ClearPending(session.ID)
	}

	data := h.pageData(r, session, outcome.Kind)
	data.Entry = text
	applyOutcome(&data, outcome)
	h.render(w, r, data)
}

// Choose resolves a pending disambiguation (POST /journal/choose).
func (h *Handlers) Choose(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	session := h.sessions.FromRequest(w, r)
	choice, ok := h.sessions.Pending(session.ID)
	if !ok {
		http.Error(w, "No mood choice pending", http.StatusBadRequest)
		return
	}

	picked := r.PostFormValue("mood")
	if !choice.allows(picked) {
		http.Error(w, "Mood is not one of the offered choices", http.StatusBadRequest)
		return
	}
	h.sessions.ClearPending(session.ID)

	outcome := h.pipeline.Choose(r.Context(), session.Log, picked, choice.Kind)

	data := h.pageData(r, session, outcome.Kind)
	applyOutcome(&data, outcome)
	h.render(w, r, data)
}

// Heatmap renders the session's heatmap fragment (GET /heatmap).
// With ?format=text it returns a plain-text summary instead.
func (h *Handlers) Heatmap(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.FromRequest(w, r)
	cells := session.Log.Aggregate()

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(journal.Summary(cells)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, "heatmap", newHeatmapData(cells)); err != nil {
		log.Printf("WARN web: rendering heatmap: %v", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// formKind reads the optional result kind field. An unknown value is a
// client error and has already been answered when ok is false.
func (h *Handlers) formKind(w http.ResponseWriter, r *http.Request) (spotify.ResultKind, bool) {
	raw := r.PostFormValue("kind")
	if raw == "" {
		return "", true
	}
	kind, err := spotify.ParseResultKind(raw)
	if err != nil {
		http.Error(w, "Unknown result kind", http.StatusBadRequest)
		return "", false
	}
	return kind, true
}

func (h *Handlers) pageData(r *http.Request, session *journal.Session, kind spotify.ResultKind) HomePageData {
	return HomePageData{
		PageData: PageData{
			Title:       pageTitle,
			CurrentPath: r.URL.Path,
		},
		State:   string(pipeline.StateIdle),
		Kinds:   kindOptions(kind),
		Heatmap: newHeatmapData(session.Log.Aggregate()),
	}
}

// applyOutcome copies a pipeline outcome into the page.
func applyOutcome(data *HomePageData, o pipeline.Outcome) {
	data.State = string(o.State)
	data.Result = &ResultData{
		State:      string(o.State),
		Mood:       o.Mood,
		Display:    o.Display,
		Emoji:      o.Emoji,
		Candidates: o.Candidates,
		Kind:       string(o.Kind),
		KindLabel:  o.Kind.Label(),
		Songs:      o.Songs,
	}

	switch o.State {
	case pipeline.StateWarning:
		data.Flash = &FlashMessage{Type: "warning", Message: o.Message}
	case pipeline.StateAuthError:
		data.Flash = &FlashMessage{Type: "error", Message: o.Message}
	case pipeline.StateNoResults, pipeline.StateDisambiguation:
		data.Flash = &FlashMessage{Type: "info", Message: o.Message}
	}
}

// render writes the full page, or only the journal fragment for htmx.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, data HomePageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var err error
	if r.Header.Get("HX-Request") == "true" {
		err = h.templates.RenderPartial(w, "journal", data)
	} else {
		err = h.templates.Render(w, "home", data)
	}
	if err != nil {
		log.Printf("WARN web: rendering page: %v", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}
