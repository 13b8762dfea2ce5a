package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"math"
	"path"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/spotify"
)

// Templates manages HTML template rendering.
type Templates struct {
	pages    map[string]*template.Template
	partials *template.Template
	funcs    template.FuncMap
}

// NewTemplates loads layouts, pages and partials from templatesFS.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		pages: make(map[string]*template.Template),
		funcs: defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page inside the "base" layout.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a single named partial for htmx swaps.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	if t.partials == nil || t.partials.Lookup(partial) == nil {
		return fmt.Errorf("partial %q not found", partial)
	}
	return t.partials.ExecuteTemplate(w, partial, data)
}

func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}
	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}
	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Partials reference each other, so they are parsed as one set.
	if len(partials) > 0 {
		t.partials, err = template.New("partials").Funcs(t.funcs).ParseFS(templatesFS, partials...)
		if err != nil {
			return fmt.Errorf("parsing partials: %w", err)
		}
	}

	shared := slices.Concat(layouts, partials)
	for _, page := range pages {
		name := templateName(page)
		files := slices.Concat([]string{page}, shared)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}

	return nil
}

// templateName turns "pages/home.html" into "home".
func templateName(file string) string {
	return strings.TrimSuffix(path.Base(file), ".html")
}

const emptyCellColor = "#f7f4f1"

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"heatColor":  heatColor,
		"formatDate": formatDate,
		"title":      title,
	}
}

// heatColor shades a heatmap cell on an orange scale from pale peach to
// deep orange. Hex output passes html/template's CSS value filter.
func heatColor(count, maxCount int) string {
	if count <= 0 || maxCount <= 0 {
		return emptyCellColor
	}
	ratio := float64(min(count, maxCount)) / float64(maxCount)
	lerp := func(from, to int) int {
		return from + int(math.Round(ratio*float64(to-from)))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(0xff, 0xe6), lerp(0xe5, 0x5c), lerp(0xcc, 0x00))
}

// formatDate formats a log date ("2006-01-02") as "Jan 2, 2006".
func formatDate(date string) string {
	d, err := time.Parse(journal.DateFormat, date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2, 2006")
}

// title upper-cases the first letter of s.
func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// HomePageData contains data for the journal page.
type HomePageData struct {
	PageData
	State   string
	Entry   string
	Kinds   []KindOption
	Result  *ResultData
	Heatmap HeatmapData
}

// KindOption is one entry of the result kind selector.
type KindOption struct {
	Value    string
	Label    string
	Selected bool
}

// ResultData is the outcome of the latest submission.
type ResultData struct {
	State      string
	Mood       string
	Display    string
	Emoji      string
	Candidates []string
	Kind       string
	KindLabel  string
	Songs      []spotify.Song
}

// HeatmapData is the session's mood heatmap.
type HeatmapData struct {
	Empty bool
	Moods []string
	Rows  []HeatRow
	Max   int
	Total int
}

// HeatRow is one day of the heatmap.
type HeatRow struct {
	Date  string
	Cells []HeatCell
}

// HeatCell is the count for one (date, mood) pair.
type HeatCell struct {
	Date  string
	Mood  string
	Count int
}

func kindOptions(selected spotify.ResultKind) []KindOption {
	kinds := []spotify.ResultKind{spotify.KindTrack, spotify.KindPlaylist}
	opts := make([]KindOption, len(kinds))
	for i, k := range kinds {
		opts[i] = KindOption{
			Value:    string(k),
			Label:    k.Label(),
			Selected: k == selected,
		}
	}
	return opts
}

func newHeatmapData(cells []journal.Cell) HeatmapData {
	grid := journal.Heatmap(cells)
	data := HeatmapData{
		Empty: grid.Empty(),
		Moods: grid.Moods,
		Max:   grid.Max,
	}
	for _, c := range cells {
		data.Total += c.Count
	}

	data.Rows = make([]HeatRow, len(grid.Dates))
	for i, date := range grid.Dates {
		row := HeatRow{Date: date, Cells: make([]HeatCell, len(grid.Moods))}
		for j, m := range grid.Moods {
			row.Cells[j] = HeatCell{Date: date, Mood: m, Count: grid.Count(date, m)}
		}
		data.Rows[i] = row
	}
	return data
}
