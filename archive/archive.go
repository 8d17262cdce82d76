// Package archive loads the three playlist-archive datasets and builds the
// in-memory snapshot every query operation runs against. The snapshot is
// built once, never mutated, and safe for concurrent reads.
package archive

import (
	"strings"
	"sync"

	"spindex/config"
	"spindex/models"
)

// ArtistAppearance is one (artist, playlist) pairing: the distinct songs by
// that artist in that playlist, in first-seen order.
type ArtistAppearance struct {
	Date  string   `json:"date"`
	Title string   `json:"title"`
	Songs []string `json:"songs"`
}

// PlaylistRef is a lightweight playlist reference used in index entries.
type PlaylistRef struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// PairStats counts co-occurrences of one unordered artist pair.
type PairStats struct {
	Count     int
	Playlists []PlaylistRef
}

// Data is the immutable archive snapshot: raw entities plus derived
// indexes. Indexes are pure functions of the entities and are rebuilt in
// full on every load.
type Data struct {
	Playlists    []models.Playlist
	ArtistBios   map[string]models.ArtistBio
	SpotifyIndex map[string]models.SpotifyTrack

	ArtistToPlaylists map[string][]ArtistAppearance
	TagToArtists      map[string]map[string]struct{}
	DateToPlaylist    map[string]models.Playlist
	AllArtists        []string
	AllTags           []string

	// Co-occurrence counts keyed by the canonical unordered pair key, one
	// entry per pair.
	Pairs map[string]PairStats
}

// pairSep separates the two artist names inside a pair key. A control
// character keeps archive names from colliding with the separator.
const pairSep = "\x1f"

// PairKey canonicalizes an unordered artist pair: the lexicographically
// smaller name always comes first.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + pairSep + b
}

// SplitPairKey returns the two artists of a pair key.
func SplitPairKey(key string) (string, string) {
	a, b, _ := strings.Cut(key, pairSep)
	return a, b
}

// GetSpotifyTrack looks up the streaming-index entry for a track. Absence
// is a normal state, not an error.
func (d *Data) GetSpotifyTrack(artist, song string) (models.SpotifyTrack, bool) {
	t, ok := d.SpotifyIndex[models.TrackKey(artist, song)]
	return t, ok
}

// GetArtistBio looks up the bio entry for an artist. Absence is a normal
// state, not an error.
func (d *Data) GetArtistBio(artist string) (models.ArtistBio, bool) {
	b, ok := d.ArtistBios[artist]
	return b, ok
}

// Partner is one co-occurrence entry as seen from one artist's side.
type Partner struct {
	Artist string
	Stats  PairStats
}

// Partners returns every artist that co-appears with the given artist in
// at least one playlist, regardless of which side of the canonical pair
// the artist landed on.
func (d *Data) Partners(artist string) []Partner {
	var partners []Partner
	for key, stats := range d.Pairs {
		a, b := SplitPairKey(key)
		switch artist {
		case a:
			partners = append(partners, Partner{Artist: b, Stats: stats})
		case b:
			partners = append(partners, Partner{Artist: a, Stats: stats})
		}
	}
	return partners
}

var (
	loadOnce sync.Once
	loaded   *Data
	loadErr  error
)

// Get returns the process-wide snapshot, loading it from the configured
// dataset paths on first call. Concurrent early callers share the single
// in-flight load.
func Get() (*Data, error) {
	loadOnce.Do(func() {
		cfg := config.Config.Archive
		loaded, loadErr = Load(cfg.PlaylistsPath, cfg.ArtistBiosPath, cfg.SpotifyIndexPath)
	})
	return loaded, loadErr
}
