package models

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// Track is a single archive track. The same (artist, song) pair may appear
// in any number of playlists.
type Track struct {
	Artist string   `json:"artist"`
	Song   string   `json:"song"`
	Genres []string `json:"genres,omitempty"`
}

// Playlist is one archived show. Date is the primary key (YYYY-MM-DD,
// at most one playlist per date).
type Playlist struct {
	Date         string  `json:"date"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Tracks       []Track `json:"tracks"`
	SourceURL    string  `json:"source_url"`
	ArchivedDate string  `json:"archived_date"`
}

// GenreSources records where an artist's genre/tag labels came from.
type GenreSources struct {
	Lastfm        int `json:"lastfm,omitempty"`
	SpotifyArtist int `json:"spotifyArtist,omitempty"`
	SpotifyTracks int `json:"spotifyTracks,omitempty"`
	Total         int `json:"total,omitempty"`
}

// ArtistBio holds biographical and tag metadata for an artist, keyed by the
// exact display name used in Track.Artist. Most fields are optional; many
// archive artists have no bio entry at all.
type ArtistBio struct {
	Bio          string        `json:"bio,omitempty"`
	BioSummary   string        `json:"bioSummary,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	LastfmTags   []string      `json:"lastfmTags,omitempty"`
	URL          string        `json:"url,omitempty"`
	Image        string        `json:"image,omitempty"`
	Listeners    int           `json:"listeners,omitempty"`
	Playcount    int           `json:"playcount,omitempty"`
	SpotifyID    string        `json:"spotifyId,omitempty"`
	SpotifyURL   string        `json:"spotifyUrl,omitempty"`
	Popularity   *int          `json:"popularity,omitempty"`
	Followers    int           `json:"followers,omitempty"`
	Genres       []string      `json:"genres,omitempty"`
	GenreSources *GenreSources `json:"genreSources,omitempty"`
	TagSources   *GenreSources `json:"tagSources,omitempty"`
}

// SpotifyTrack is the streaming-index entry for one archive track, keyed by
// the same artist|song key as the track itself.
type SpotifyTrack struct {
	SpotifyID  string   `json:"spotifyId"`
	SpotifyURL string   `json:"spotifyUrl"`
	PreviewURL string   `json:"previewUrl,omitempty"`
	AlbumArt   string   `json:"albumArt,omitempty"`
	ArtistName string   `json:"artistName"`
	TrackName  string   `json:"trackName"`
	Genres     []string `json:"genres,omitempty"`
	Confidence string   `json:"confidence"`
	Manual     bool     `json:"manual,omitempty"`
}

// Streaming match confidence labels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

const trackKeySeparator = "|"

// TrackKey builds the composite artist|song key used to join tracks against
// the streaming index. Names containing the separator would collide with
// other keys, so they are logged for dataset cleanup.
func TrackKey(artist, song string) string {
	if strings.Contains(artist, trackKeySeparator) || strings.Contains(song, trackKeySeparator) {
		log.Warnf("track key contains separator: %q / %q", artist, song)
	}
	return artist + trackKeySeparator + song
}
