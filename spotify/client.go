package spotify

import (
	"context"
	"errors"
	"strings"
	"sync"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"spindex/config"
	"spindex/models"
)

var Spotify *spotifyclient.Client

// ArtistInfo is the enrichment payload for one Spotify artist.
type ArtistInfo struct {
	ID         string
	Name       string
	URL        string
	Image      string
	Popularity int
	Followers  int
	Genres     []string
}

func NewSpotifyClient() error {
	ctx := context.Background()
	credentials := &clientcredentials.Config{
		ClientID:     config.Config.Spotify.ClientID,
		ClientSecret: config.Config.Spotify.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := credentials.Token(ctx)
	if err != nil {
		sentry.CaptureException(err)
		return err
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	Spotify = spotifyclient.New(httpClient)
	return nil
}

// genre lookups repeat heavily across tracks by the same artist
var (
	genreCacheMu sync.Mutex
	genreCache   = map[string][]string{}
)

// SearchTrack looks up one (artist, song) pair and returns the best match
// with a confidence grade, or nil when Spotify has nothing for it.
func SearchTrack(ctx context.Context, artist, song string) (*models.SpotifyTrack, error) {
	span := sentry.StartSpan(ctx, "spotify.search_track")
	span.Description = "Search track on Spotify API"
	span.SetTag("artist", artist)
	defer span.Finish()

	query := "track:\"" + song + "\" artist:\"" + artist + "\""
	results, err := Spotify.Search(ctx, query, spotifyclient.SearchTypeTrack, spotifyclient.Limit(config.Config.Spotify.SearchLimit))
	if err != nil {
		log.Errorf("Spotify search failed for %s - %s: %v", artist, song, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		span.Status = sentry.SpanStatusOK
		return nil, nil
	}

	track := results.Tracks.Tracks[0]
	if len(track.Artists) == 0 {
		span.Status = sentry.SpanStatusOK
		return nil, nil
	}

	indexed := &models.SpotifyTrack{
		SpotifyID:  string(track.ID),
		SpotifyURL: track.ExternalURLs["spotify"],
		PreviewURL: track.PreviewURL,
		ArtistName: track.Artists[0].Name,
		TrackName:  track.Name,
		Confidence: calculateConfidence(artist, song, track.Artists[0].Name, track.Name),
	}
	if len(track.Album.Images) > 0 {
		indexed.AlbumArt = track.Album.Images[0].URL
	}

	genres, err := GetArtistGenres(ctx, string(track.Artists[0].ID))
	if err == nil {
		indexed.Genres = genres
	}

	log.Debugf("Indexed %s - %s (%s confidence)", artist, song, indexed.Confidence)
	span.Status = sentry.SpanStatusOK
	return indexed, nil
}

// GetArtistGenres fetches an artist's genre list, cached per process.
func GetArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	genreCacheMu.Lock()
	if genres, ok := genreCache[artistID]; ok {
		genreCacheMu.Unlock()
		return genres, nil
	}
	genreCacheMu.Unlock()

	span := sentry.StartSpan(ctx, "spotify.get_artist_genres")
	span.SetTag("artist_id", artistID)
	defer span.Finish()

	artist, err := Spotify.GetArtist(ctx, spotifyclient.ID(artistID))
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	genreCacheMu.Lock()
	genreCache[artistID] = artist.Genres
	genreCacheMu.Unlock()

	span.Status = sentry.SpanStatusOK
	return artist.Genres, nil
}

// SearchArtist looks up one artist for bio enrichment (image, popularity,
// followers, genres).
func SearchArtist(ctx context.Context, name string) (*ArtistInfo, error) {
	span := sentry.StartSpan(ctx, "spotify.search_artist")
	span.Description = "Search artist on Spotify API"
	span.SetTag("artist", name)
	defer span.Finish()

	results, err := Spotify.Search(ctx, name, spotifyclient.SearchTypeArtist, spotifyclient.Limit(1))
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}
	if results.Artists == nil || len(results.Artists.Artists) == 0 {
		span.Status = sentry.SpanStatusOK
		return nil, errors.New("artist not found")
	}

	artist := results.Artists.Artists[0]
	info := &ArtistInfo{
		ID:         string(artist.ID),
		Name:       artist.Name,
		URL:        artist.ExternalURLs["spotify"],
		Popularity: int(artist.Popularity),
		Followers:  int(artist.Followers.Count),
		Genres:     artist.Genres,
	}
	if len(artist.Images) > 0 {
		info.Image = artist.Images[0].URL
	}

	span.Status = sentry.SpanStatusOK
	return info, nil
}

// calculateConfidence grades how well a Spotify hit matches the playlist's
// own (artist, song) text: high when both sides line up, medium when only
// one does, low otherwise.
func calculateConfidence(origArtist, origSong, spotArtist, spotSong string) string {
	origArtist = normalizeMatch(origArtist)
	origSong = normalizeMatch(origSong)
	spotArtist = normalizeMatch(spotArtist)
	spotSong = normalizeMatch(spotSong)

	if origArtist == spotArtist && origSong == spotSong {
		return models.ConfidenceHigh
	}

	artistMatch := strings.Contains(origArtist, spotArtist) ||
		strings.Contains(spotArtist, origArtist) ||
		firstWord(origArtist) == firstWord(spotArtist)
	songMatch := strings.Contains(origSong, spotSong) ||
		strings.Contains(spotSong, origSong) ||
		firstWord(origSong) == firstWord(spotSong)

	if artistMatch && songMatch {
		return models.ConfidenceHigh
	}
	if artistMatch || songMatch {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}

func normalizeMatch(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '\t':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
