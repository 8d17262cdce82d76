// Package query implements the six core lookup operations over the archive
// snapshot. Every operation is a pure function of (snapshot, params);
// "nothing found" is a value, never an error.
package query

import (
	"regexp"
	"sort"
	"strings"

	"spindex/archive"
	"spindex/fuzzy"
	"spindex/models"
)

const (
	defaultPlaylistLimit = 20
	defaultArtistLimit   = 20
	defaultTrackLimit    = 50
)

var htmlLinkPattern = regexp.MustCompile(`<a[^>]*>.*?</a>`)

// cleanSummary strips the trailing last.fm HTML link bio summaries carry.
func cleanSummary(summary string) string {
	return strings.TrimSpace(htmlLinkPattern.ReplaceAllString(summary, ""))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// sampleArtists returns the distinct artists among the first 5 tracks.
func sampleArtists(tracks []models.Track) []string {
	seen := make(map[string]struct{})
	var artists []string
	for i, track := range tracks {
		if i == 5 {
			break
		}
		if _, ok := seen[track.Artist]; ok {
			continue
		}
		seen[track.Artist] = struct{}{}
		artists = append(artists, track.Artist)
	}
	return artists
}

// SearchPlaylistsParams filters the playlist search. Zero values mean
// "no filter"; Limit 0 uses the default of 20.
type SearchPlaylistsParams struct {
	Query     string `json:"query"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Limit     int    `json:"limit"`
}

// PlaylistSummary is the compact playlist shape used in list results.
type PlaylistSummary struct {
	Date          string   `json:"date"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TrackCount    int      `json:"trackCount"`
	SampleArtists []string `json:"sampleArtists"`
}

// SearchPlaylistsResult is a total count plus a truncated page.
type SearchPlaylistsResult struct {
	TotalResults int               `json:"totalResults"`
	Playlists    []PlaylistSummary `json:"playlists"`
}

// SearchPlaylists filters playlists by inclusive date range and free-text
// title/description match, newest first.
func SearchPlaylists(data *archive.Data, params SearchPlaylistsParams) SearchPlaylistsResult {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPlaylistLimit
	}

	var results []models.Playlist
	normalizedQuery := fuzzy.Normalize(params.Query)
	for _, p := range data.Playlists {
		if params.StartDate != "" && p.Date < params.StartDate {
			continue
		}
		if params.EndDate != "" && p.Date > params.EndDate {
			continue
		}
		if params.Query != "" {
			title := fuzzy.Normalize(p.Title)
			desc := fuzzy.Normalize(p.Description)
			if !strings.Contains(title, normalizedQuery) && !strings.Contains(desc, normalizedQuery) {
				continue
			}
		}
		results = append(results, p)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Date > results[j].Date
	})

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	summaries := make([]PlaylistSummary, 0, len(results))
	for _, p := range results {
		summaries = append(summaries, PlaylistSummary{
			Date:          p.Date,
			Title:         p.Title,
			Description:   truncate(p.Description, 200),
			TrackCount:    len(p.Tracks),
			SampleArtists: sampleArtists(p.Tracks),
		})
	}

	return SearchPlaylistsResult{TotalResults: total, Playlists: summaries}
}

// GetPlaylistParams identifies a playlist by its date key.
type GetPlaylistParams struct {
	Date string `json:"date"`
}

// PlaylistTrack is a track with its streaming links resolved.
type PlaylistTrack struct {
	Artist     string `json:"artist"`
	Song       string `json:"song"`
	SpotifyURL string `json:"spotifyUrl,omitempty"`
	AlbumArt   string `json:"albumArt,omitempty"`
}

// PlaylistDetail is the full playlist shape.
type PlaylistDetail struct {
	Date        string          `json:"date"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	SourceURL   string          `json:"source_url"`
	Tracks      []PlaylistTrack `json:"tracks"`
}

// GetPlaylistResult reports found/not-found; a miss carries up to 5
// nearby-date suggestions.
type GetPlaylistResult struct {
	Found       bool            `json:"found"`
	Playlist    *PlaylistDetail `json:"playlist,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// GetPlaylist looks a playlist up by exact date. On a miss it suggests
// dates from the same year-month, or the 5 most recent dates when none
// share the month.
func GetPlaylist(data *archive.Data, params GetPlaylistParams) GetPlaylistResult {
	playlist, ok := data.DateToPlaylist[params.Date]
	if !ok {
		allDates := make([]string, 0, len(data.DateToPlaylist))
		for date := range data.DateToPlaylist {
			allDates = append(allDates, date)
		}
		sort.Strings(allDates)

		prefix := params.Date
		if len(prefix) > 7 {
			prefix = prefix[:7]
		}
		var suggestions []string
		for _, date := range allDates {
			if strings.HasPrefix(date, prefix) {
				suggestions = append(suggestions, date)
				if len(suggestions) == 5 {
					break
				}
			}
		}
		if len(suggestions) == 0 && len(allDates) > 0 {
			start := len(allDates) - 5
			if start < 0 {
				start = 0
			}
			suggestions = allDates[start:]
		}
		return GetPlaylistResult{Suggestions: suggestions}
	}

	tracks := make([]PlaylistTrack, 0, len(playlist.Tracks))
	for _, t := range playlist.Tracks {
		pt := PlaylistTrack{Artist: t.Artist, Song: t.Song}
		if spotify, ok := data.GetSpotifyTrack(t.Artist, t.Song); ok {
			pt.SpotifyURL = spotify.SpotifyURL
			pt.AlbumArt = spotify.AlbumArt
		}
		tracks = append(tracks, pt)
	}

	return GetPlaylistResult{
		Found: true,
		Playlist: &PlaylistDetail{
			Date:        playlist.Date,
			Title:       playlist.Title,
			Description: playlist.Description,
			SourceURL:   playlist.SourceURL,
			Tracks:      tracks,
		},
	}
}

// SearchArtistsParams filters the artist search.
type SearchArtistsParams struct {
	Query         string   `json:"query"`
	Tags          []string `json:"tags"`
	MinPopularity *int     `json:"minPopularity"`
	Limit         int      `json:"limit"`
}

// ArtistSummary is the compact artist shape used in list results.
type ArtistSummary struct {
	Name          string   `json:"name"`
	Tags          []string `json:"tags"`
	Popularity    *int     `json:"popularity,omitempty"`
	Listeners     int      `json:"listeners,omitempty"`
	PlaylistCount int      `json:"playlistCount"`
	SpotifyURL    string   `json:"spotifyUrl,omitempty"`
	Image         string   `json:"image,omitempty"`
}

// SearchArtistsResult is a total count plus a truncated page.
type SearchArtistsResult struct {
	TotalResults int             `json:"totalResults"`
	Artists      []ArtistSummary `json:"artists"`
}

// SearchArtists filters artists by name/bio text, tag membership (any-of)
// and minimum popularity, sorted by descending playlist appearance count.
func SearchArtists(data *archive.Data, params SearchArtistsParams) SearchArtistsResult {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultArtistLimit
	}

	results := make([]string, 0, len(data.AllArtists))
	results = append(results, data.AllArtists...)

	if params.Query != "" {
		normalizedQuery := fuzzy.Normalize(params.Query)
		var filtered []string
		for _, artist := range results {
			bio, _ := data.GetArtistBio(artist)
			if strings.Contains(fuzzy.Normalize(artist), normalizedQuery) ||
				strings.Contains(fuzzy.Normalize(bio.Bio), normalizedQuery) {
				filtered = append(filtered, artist)
			}
		}
		results = filtered
	}

	if len(params.Tags) > 0 {
		wanted := make(map[string]struct{}, len(params.Tags))
		for _, tag := range params.Tags {
			wanted[strings.ToLower(tag)] = struct{}{}
		}
		var filtered []string
		for _, artist := range results {
			bio, _ := data.GetArtistBio(artist)
			for _, tag := range bio.Tags {
				if _, ok := wanted[strings.ToLower(tag)]; ok {
					filtered = append(filtered, artist)
					break
				}
			}
		}
		results = filtered
	}

	if params.MinPopularity != nil {
		var filtered []string
		for _, artist := range results {
			bio, _ := data.GetArtistBio(artist)
			if bio.Popularity != nil && *bio.Popularity >= *params.MinPopularity {
				filtered = append(filtered, artist)
			}
		}
		results = filtered
	}

	sort.SliceStable(results, func(i, j int) bool {
		return len(data.ArtistToPlaylists[results[i]]) > len(data.ArtistToPlaylists[results[j]])
	})

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	summaries := make([]ArtistSummary, 0, len(results))
	for _, name := range results {
		bio, _ := data.GetArtistBio(name)
		summaries = append(summaries, ArtistSummary{
			Name:          name,
			Tags:          bio.Tags,
			Popularity:    bio.Popularity,
			Listeners:     bio.Listeners,
			PlaylistCount: len(data.ArtistToPlaylists[name]),
			SpotifyURL:    bio.SpotifyURL,
			Image:         bio.Image,
		})
	}

	return SearchArtistsResult{TotalResults: total, Artists: summaries}
}

// GetArtistParams identifies an artist by display name; free text is
// resolved via fuzzy matching.
type GetArtistParams struct {
	Name string `json:"name"`
}

// AppearanceSong is one song within an appearance, with streaming link.
type AppearanceSong struct {
	Song       string `json:"song"`
	SpotifyURL string `json:"spotifyUrl,omitempty"`
}

// ArtistAppearanceDetail is one playlist appearance in an artist profile.
type ArtistAppearanceDetail struct {
	Date  string           `json:"date"`
	Title string           `json:"title"`
	Songs []AppearanceSong `json:"songs"`
}

// ArtistDetail is the full artist profile.
type ArtistDetail struct {
	Name        string                   `json:"name"`
	Bio         string                   `json:"bio,omitempty"`
	BioSummary  string                   `json:"bioSummary,omitempty"`
	Tags        []string                 `json:"tags"`
	Image       string                   `json:"image,omitempty"`
	SpotifyURL  string                   `json:"spotifyUrl,omitempty"`
	LastfmURL   string                   `json:"lastfmUrl,omitempty"`
	Listeners   int                      `json:"listeners,omitempty"`
	Playcount   int                      `json:"playcount,omitempty"`
	Popularity  *int                     `json:"popularity,omitempty"`
	Followers   int                      `json:"followers,omitempty"`
	Appearances []ArtistAppearanceDetail `json:"appearances"`
	TotalTracks int                      `json:"totalTracks"`
	UniqueSongs int                      `json:"uniqueSongs"`
}

// GetArtistResult reports found/not-found with name suggestions on a miss.
type GetArtistResult struct {
	Found       bool          `json:"found"`
	Artist      *ArtistDetail `json:"artist,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// GetArtist resolves a name (exact, then fuzzy against all archive
// artists) and returns the full profile with every playlist appearance.
func GetArtist(data *archive.Data, params GetArtistParams) GetArtistResult {
	name := params.Name
	appearances, ok := data.ArtistToPlaylists[name]

	if !ok {
		match := fuzzy.FindBestMatch(name, data.AllArtists)
		if !match.Found {
			suggestions := match.Suggestions
			if len(suggestions) == 0 {
				suggestions = fuzzy.ContainsMatch(name, data.AllArtists)
				if len(suggestions) > 5 {
					suggestions = suggestions[:5]
				}
			}
			return GetArtistResult{Suggestions: suggestions}
		}
		name = match.Match
		appearances = data.ArtistToPlaylists[name]
	}

	if len(appearances) == 0 {
		suggestions := fuzzy.ContainsMatch(params.Name, data.AllArtists)
		if len(suggestions) > 5 {
			suggestions = suggestions[:5]
		}
		return GetArtistResult{Suggestions: suggestions}
	}

	bio, _ := data.GetArtistBio(name)

	totalTracks := 0
	uniqueSongs := make(map[string]struct{})
	details := make([]ArtistAppearanceDetail, 0, len(appearances))
	for _, a := range appearances {
		songs := make([]AppearanceSong, 0, len(a.Songs))
		for _, song := range a.Songs {
			s := AppearanceSong{Song: song}
			if spotify, ok := data.GetSpotifyTrack(name, song); ok {
				s.SpotifyURL = spotify.SpotifyURL
			}
			songs = append(songs, s)
			uniqueSongs[song] = struct{}{}
			totalTracks++
		}
		details = append(details, ArtistAppearanceDetail{Date: a.Date, Title: a.Title, Songs: songs})
	}

	return GetArtistResult{
		Found: true,
		Artist: &ArtistDetail{
			Name:        name,
			Bio:         bio.Bio,
			BioSummary:  cleanSummary(bio.BioSummary),
			Tags:        bio.Tags,
			Image:       bio.Image,
			SpotifyURL:  bio.SpotifyURL,
			LastfmURL:   bio.URL,
			Listeners:   bio.Listeners,
			Playcount:   bio.Playcount,
			Popularity:  bio.Popularity,
			Followers:   bio.Followers,
			Appearances: details,
			TotalTracks: totalTracks,
			UniqueSongs: len(uniqueSongs),
		},
	}
}

// SearchTracksParams filters the track search.
type SearchTracksParams struct {
	Query  string   `json:"query"`
	Artist string   `json:"artist"`
	Genres []string `json:"genres"`
	Limit  int      `json:"limit"`
}

// TrackResult is one track hit with its first playlist appearance.
type TrackResult struct {
	Artist        string   `json:"artist"`
	Song          string   `json:"song"`
	PlaylistDate  string   `json:"playlistDate"`
	PlaylistTitle string   `json:"playlistTitle"`
	SpotifyURL    string   `json:"spotifyUrl,omitempty"`
	AlbumArt      string   `json:"albumArt,omitempty"`
	Genres        []string `json:"genres,omitempty"`
}

// SearchTracksResult is a total count plus a truncated page.
type SearchTracksResult struct {
	TotalResults int           `json:"totalResults"`
	Tracks       []TrackResult `json:"tracks"`
}

// SearchTracks flattens every (track, playlist) pair, applies the artist,
// free-text and genre filters, and deduplicates by track key keeping the
// first occurrence.
func SearchTracks(data *archive.Data, params SearchTracksParams) SearchTracksResult {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTrackLimit
	}

	normalizedArtist := fuzzy.Normalize(params.Artist)
	normalizedQuery := fuzzy.Normalize(params.Query)
	var wantedGenres []string
	for _, g := range params.Genres {
		wantedGenres = append(wantedGenres, strings.ToLower(g))
	}

	seen := make(map[string]struct{})
	var results []TrackResult
	for _, playlist := range data.Playlists {
		for _, track := range playlist.Tracks {
			if params.Artist != "" && !strings.Contains(fuzzy.Normalize(track.Artist), normalizedArtist) {
				continue
			}
			if params.Query != "" &&
				!strings.Contains(fuzzy.Normalize(track.Song), normalizedQuery) &&
				!strings.Contains(fuzzy.Normalize(track.Artist), normalizedQuery) {
				continue
			}

			spotify, hasSpotify := data.GetSpotifyTrack(track.Artist, track.Song)

			if len(wantedGenres) > 0 {
				if !hasSpotify || !genresMatch(spotify.Genres, wantedGenres) {
					continue
				}
			}

			key := models.TrackKey(track.Artist, track.Song)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			result := TrackResult{
				Artist:        track.Artist,
				Song:          track.Song,
				PlaylistDate:  playlist.Date,
				PlaylistTitle: playlist.Title,
			}
			if hasSpotify {
				result.SpotifyURL = spotify.SpotifyURL
				result.AlbumArt = spotify.AlbumArt
				result.Genres = spotify.Genres
			}
			results = append(results, result)
		}
	}

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return SearchTracksResult{TotalResults: total, Tracks: results}
}

func genresMatch(trackGenres, wanted []string) bool {
	for _, w := range wanted {
		for _, g := range trackGenres {
			if strings.Contains(strings.ToLower(g), w) {
				return true
			}
		}
	}
	return false
}

// GetTrackParams identifies a track by artist and song.
type GetTrackParams struct {
	Artist string `json:"artist"`
	Song   string `json:"song"`
}

// TrackDetail is the full track shape with streaming metadata and every
// playlist appearance.
type TrackDetail struct {
	Artist      string                `json:"artist"`
	Song        string                `json:"song"`
	SpotifyURL  string                `json:"spotifyUrl,omitempty"`
	PreviewURL  string                `json:"previewUrl,omitempty"`
	AlbumArt    string                `json:"albumArt,omitempty"`
	Genres      []string              `json:"genres,omitempty"`
	Confidence  string                `json:"confidence,omitempty"`
	Appearances []archive.PlaylistRef `json:"appearances"`
}

// TrackSuggestion names another song by the same artist.
type TrackSuggestion struct {
	Artist string `json:"artist"`
	Song   string `json:"song"`
}

// GetTrackResult reports found/not-found; a miss for a known artist
// suggests up to 5 of their other songs.
type GetTrackResult struct {
	Found       bool              `json:"found"`
	Track       *TrackDetail      `json:"track,omitempty"`
	Suggestions []TrackSuggestion `json:"suggestions,omitempty"`
}

// GetTrack collects every playlist appearance of a track, matching artist
// and song by exact normalized comparison.
func GetTrack(data *archive.Data, params GetTrackParams) GetTrackResult {
	normalizedArtist := fuzzy.Normalize(params.Artist)
	normalizedSong := fuzzy.Normalize(params.Song)

	var appearances []archive.PlaylistRef
	for _, playlist := range data.Playlists {
		for _, track := range playlist.Tracks {
			if fuzzy.Normalize(track.Artist) == normalizedArtist &&
				fuzzy.Normalize(track.Song) == normalizedSong {
				appearances = append(appearances, archive.PlaylistRef{Date: playlist.Date, Title: playlist.Title})
				break
			}
		}
	}

	if len(appearances) == 0 {
		artistAppearances, ok := data.ArtistToPlaylists[params.Artist]
		if !ok {
			return GetTrackResult{}
		}
		seen := make(map[string]struct{})
		var suggestions []TrackSuggestion
		for _, a := range artistAppearances {
			for _, song := range a.Songs {
				if _, dup := seen[song]; dup {
					continue
				}
				seen[song] = struct{}{}
				suggestions = append(suggestions, TrackSuggestion{Artist: params.Artist, Song: song})
				if len(suggestions) == 5 {
					return GetTrackResult{Suggestions: suggestions}
				}
			}
		}
		return GetTrackResult{Suggestions: suggestions}
	}

	detail := &TrackDetail{
		Artist:      params.Artist,
		Song:        params.Song,
		Appearances: appearances,
	}
	if spotify, ok := data.GetSpotifyTrack(params.Artist, params.Song); ok {
		detail.SpotifyURL = spotify.SpotifyURL
		detail.PreviewURL = spotify.PreviewURL
		detail.AlbumArt = spotify.AlbumArt
		detail.Genres = spotify.Genres
		detail.Confidence = spotify.Confidence
	}

	return GetTrackResult{Found: true, Track: detail}
}
