package spotify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// ResultKind selects what a search returns.
type ResultKind string

const (
	// KindTrack searches for individual songs.
	KindTrack ResultKind = "track"
	// KindPlaylist searches for playlists.
	KindPlaylist ResultKind = "playlist"
)

// Song is a lightweight search result.
type Song struct {
	Title       string
	Attribution string // artist for tracks, owner for playlists
	Link        string
}

// ParseResultKind accepts the kind names used by forms and configuration.
func ParseResultKind(s string) (ResultKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "track", "tracks", "song", "songs":
		return KindTrack, nil
	case "playlist", "playlists":
		return KindPlaylist, nil
	default:
		return "", fmt.Errorf("unknown result kind %q", s)
	}
}

// Label returns the plural heading shown above results.
func (k ResultKind) Label() string {
	if k == KindPlaylist {
		return "Playlists"
	}
	return "Songs"
}

func (k ResultKind) searchType() spotify.SearchType {
	if k == KindPlaylist {
		return spotify.SearchTypePlaylist
	}
	return spotify.SearchTypeTrack
}

// Search looks up mood in the catalog and returns at most limit results in
// the order Spotify returned them. Any failure yields an empty slice;
// callers treat that as "no results".
func (c *Catalog) Search(ctx context.Context, mood string, token *oauth2.Token, kind ResultKind, limit int) []Song {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if kind != KindPlaylist {
		kind = KindTrack
	}

	result, err := c.api(ctx, token).Search(ctx, mood, kind.searchType(), spotify.Limit(limit))
	if err != nil {
		log.Printf("WARN spotify: search %s %q failed: %v", kind, mood, err)
		return []Song{}
	}

	switch kind {
	case KindPlaylist:
		return convertPlaylists(result.Playlists)
	default:
		return convertTracks(result.Tracks)
	}
}

// convertTracks maps a track page to songs, crediting the first artist.
func convertTracks(page *spotify.FullTrackPage) []Song {
	if page == nil {
		return []Song{}
	}

	songs := make([]Song, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		var artist string
		if len(t.Artists) > 0 {
			artist = t.Artists[0].Name
		}
		songs = append(songs, Song{
			Title:       t.Name,
			Attribution: artist,
			Link:        t.ExternalURLs["spotify"],
		})
	}
	return songs
}

// convertPlaylists maps a playlist page to songs, crediting the owner.
// Spotify pads playlist pages with nulls, which decode as empty entries.
func convertPlaylists(page *spotify.SimplePlaylistPage) []Song {
	if page == nil {
		return []Song{}
	}

	songs := make([]Song, 0, len(page.Playlists))
	for _, p := range page.Playlists {
		if p.ID == "" && p.Name == "" {
			continue
		}
		songs = append(songs, Song{
			Title:       p.Name,
			Attribution: p.Owner.DisplayName,
			Link:        p.ExternalURLs["spotify"],
		})
	}
	return songs
}
