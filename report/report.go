// Package report generates shareable documents from the archive: playlist
// sheets, artist profiles, themed discovery reports and annual reviews.
// Every generator returns both a markdown rendering and a structured form.
package report

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"spindex/archive"
	"spindex/discover"
	"spindex/fuzzy"
	"spindex/models"
)

// PlaylistDocumentParams selects a playlist by exact date.
type PlaylistDocumentParams struct {
	Date                string `json:"date"`
	IncludeSpotifyLinks *bool  `json:"includeSpotifyLinks"`
}

// DocumentTrack is one positioned track in a playlist document.
type DocumentTrack struct {
	Position   int    `json:"position"`
	Artist     string `json:"artist"`
	Song       string `json:"song"`
	SpotifyURL string `json:"spotifyUrl,omitempty"`
	AlbumArt   string `json:"albumArt,omitempty"`
}

// PlaylistDocument is the structured form of a playlist sheet.
type PlaylistDocument struct {
	Date        string          `json:"date"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	SourceURL   string          `json:"source_url"`
	Tracks      []DocumentTrack `json:"tracks"`
}

// PlaylistDocumentResult carries both renderings or an error message.
type PlaylistDocumentResult struct {
	Success  bool              `json:"success"`
	Error    string            `json:"error,omitempty"`
	Markdown string            `json:"markdown,omitempty"`
	Document *PlaylistDocument `json:"json,omitempty"`
}

// GeneratePlaylistDocument renders one playlist as markdown plus a
// structured track list, with Spotify links by default.
func GeneratePlaylistDocument(data *archive.Data, params PlaylistDocumentParams) PlaylistDocumentResult {
	includeLinks := true
	if params.IncludeSpotifyLinks != nil {
		includeLinks = *params.IncludeSpotifyLinks
	}

	playlist, ok := data.DateToPlaylist[params.Date]
	if !ok {
		msg := fmt.Sprintf("Playlist not found for date %s.", params.Date)
		if suggestions := nearbyDates(data, params.Date); len(suggestions) > 0 {
			msg += fmt.Sprintf(" Did you mean: %s?", strings.Join(suggestions, ", "))
		}
		return PlaylistDocumentResult{Error: msg}
	}

	doc := PlaylistDocument{
		Date:        playlist.Date,
		Title:       playlist.Title,
		Description: playlist.Description,
		SourceURL:   playlist.SourceURL,
	}
	for i, track := range playlist.Tracks {
		dt := DocumentTrack{Position: i + 1, Artist: track.Artist, Song: track.Song}
		if spotify, found := data.GetSpotifyTrack(track.Artist, track.Song); found {
			if includeLinks {
				dt.SpotifyURL = spotify.SpotifyURL
			}
			dt.AlbumArt = spotify.AlbumArt
		}
		doc.Tracks = append(doc.Tracks, dt)
	}

	return PlaylistDocumentResult{
		Success:  true,
		Markdown: playlistMarkdown(data, playlist, includeLinks),
		Document: &doc,
	}
}

func nearbyDates(data *archive.Data, date string) []string {
	prefix := date
	if len(prefix) > 7 {
		prefix = prefix[:7]
	}
	dates := make([]string, 0, len(data.DateToPlaylist))
	for d := range data.DateToPlaylist {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	var suggestions []string
	for _, d := range dates {
		if strings.HasPrefix(d, prefix) {
			suggestions = append(suggestions, d)
			if len(suggestions) == 5 {
				break
			}
		}
	}
	return suggestions
}

func playlistMarkdown(data *archive.Data, playlist models.Playlist, includeLinks bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", playlist.Title)
	fmt.Fprintf(&b, "**Date:** %s\n\n", playlist.Date)
	if playlist.Description != "" {
		fmt.Fprintf(&b, "## Description\n\n%s\n\n", playlist.Description)
	}
	b.WriteString("## Tracks\n\n")
	for i, track := range playlist.Tracks {
		line := fmt.Sprintf("%s - %q", track.Artist, track.Song)
		if includeLinks {
			if spotify, ok := data.GetSpotifyTrack(track.Artist, track.Song); ok && spotify.SpotifyURL != "" {
				line += fmt.Sprintf(" [Spotify](%s)", spotify.SpotifyURL)
			}
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	fmt.Fprintf(&b, "\n**Source:** %s", playlist.SourceURL)
	return b.String()
}

// ArtistProfileParams resolves an artist fuzzily.
type ArtistProfileParams struct {
	Artist string `json:"artist"`
}

// ProfileSong is one song with an optional Spotify link.
type ProfileSong struct {
	Song       string `json:"song"`
	SpotifyURL string `json:"spotifyUrl,omitempty"`
}

// ProfileAppearance is one playlist appearance in an artist profile.
type ProfileAppearance struct {
	Date  string        `json:"date"`
	Title string        `json:"title"`
	Songs []ProfileSong `json:"songs"`
}

// ProfileStats carries the external service numbers.
type ProfileStats struct {
	Listeners  int  `json:"listeners,omitempty"`
	Playcount  int  `json:"playcount,omitempty"`
	Popularity *int `json:"popularity,omitempty"`
	Followers  int  `json:"followers,omitempty"`
}

// ShowStats summarizes the artist's presence in the archive.
type ShowStats struct {
	TotalAppearances int          `json:"totalAppearances"`
	UniqueSongs      int          `json:"uniqueSongs"`
	PlaylistCount    int          `json:"playlistCount"`
	DateRange        ProfileRange `json:"dateRange"`
}

type ProfileRange struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// ArtistProfile is the structured form of an artist research document.
type ArtistProfile struct {
	Name        string              `json:"name"`
	Bio         string              `json:"bio,omitempty"`
	Tags        []string            `json:"tags"`
	Image       string              `json:"image,omitempty"`
	SpotifyURL  string              `json:"spotifyUrl,omitempty"`
	LastfmURL   string              `json:"lastfmUrl,omitempty"`
	Stats       ProfileStats        `json:"stats"`
	ShowStats   ShowStats           `json:"showStats"`
	Appearances []ProfileAppearance `json:"appearances"`
}

// ArtistProfileResult carries both renderings or an error with suggestions.
type ArtistProfileResult struct {
	Success     bool           `json:"success"`
	Error       string         `json:"error,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Markdown    string         `json:"markdown,omitempty"`
	Profile     *ArtistProfile `json:"json,omitempty"`
}

// GenerateArtistProfile renders an artist's bio, stats and full appearance
// history as markdown plus a structured profile.
func GenerateArtistProfile(data *archive.Data, params ArtistProfileParams) ArtistProfileResult {
	name := params.Artist
	appearances, ok := data.ArtistToPlaylists[name]
	if !ok {
		match := fuzzy.FindBestMatch(name, data.AllArtists)
		if !match.Found {
			return ArtistProfileResult{
				Error:       fmt.Sprintf("Artist %q not found in archive.", params.Artist),
				Suggestions: match.Suggestions,
			}
		}
		name = match.Match
		appearances = data.ArtistToPlaylists[name]
	}
	if len(appearances) == 0 {
		return ArtistProfileResult{Error: fmt.Sprintf("No appearances found for %q.", name)}
	}
	bio, _ := data.GetArtistBio(name)

	totalSongs := 0
	unique := make(map[string]struct{})
	dates := make([]string, 0, len(appearances))
	for _, a := range appearances {
		totalSongs += len(a.Songs)
		for _, song := range a.Songs {
			unique[song] = struct{}{}
		}
		dates = append(dates, a.Date)
	}
	sort.Strings(dates)

	profile := ArtistProfile{
		Name:       name,
		Bio:        bio.Bio,
		Tags:       bio.Tags,
		Image:      bio.Image,
		SpotifyURL: bio.SpotifyURL,
		LastfmURL:  bio.URL,
		Stats: ProfileStats{
			Listeners:  bio.Listeners,
			Playcount:  bio.Playcount,
			Popularity: bio.Popularity,
			Followers:  bio.Followers,
		},
		ShowStats: ShowStats{
			TotalAppearances: totalSongs,
			UniqueSongs:      len(unique),
			PlaylistCount:    len(appearances),
			DateRange:        ProfileRange{First: dates[0], Last: dates[len(dates)-1]},
		},
	}
	for _, a := range appearances {
		pa := ProfileAppearance{Date: a.Date, Title: a.Title}
		for _, song := range a.Songs {
			ps := ProfileSong{Song: song}
			if spotify, found := data.GetSpotifyTrack(name, song); found {
				ps.SpotifyURL = spotify.SpotifyURL
			}
			pa.Songs = append(pa.Songs, ps)
		}
		profile.Appearances = append(profile.Appearances, pa)
	}

	return ArtistProfileResult{
		Success:  true,
		Markdown: artistMarkdown(data, name, bio, appearances),
		Profile:  &profile,
	}
}

func artistMarkdown(data *archive.Data, name string, bio models.ArtistBio, appearances []archive.ArtistAppearance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	if bio.Image != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", name, bio.Image)
	}

	b.WriteString("## Stats\n\n")
	if bio.Listeners > 0 {
		fmt.Fprintf(&b, "- **Last.fm Listeners:** %s\n", groupDigits(bio.Listeners))
	}
	if bio.Playcount > 0 {
		fmt.Fprintf(&b, "- **Last.fm Plays:** %s\n", groupDigits(bio.Playcount))
	}
	if bio.Followers > 0 {
		fmt.Fprintf(&b, "- **Spotify Followers:** %s\n", groupDigits(bio.Followers))
	}
	if bio.Popularity != nil {
		fmt.Fprintf(&b, "- **Spotify Popularity:** %d/100\n", *bio.Popularity)
	}
	b.WriteString("\n")

	if len(bio.Tags) > 0 {
		fmt.Fprintf(&b, "## Tags\n\n%s\n\n", strings.Join(bio.Tags, ", "))
	}
	if bio.Bio != "" {
		fmt.Fprintf(&b, "## Biography\n\n%s\n\n", bio.Bio)
	}

	b.WriteString("## Links\n\n")
	if bio.SpotifyURL != "" {
		fmt.Fprintf(&b, "- [Spotify](%s)\n", bio.SpotifyURL)
	}
	if bio.URL != "" {
		fmt.Fprintf(&b, "- [Last.fm](%s)\n", bio.URL)
	}
	b.WriteString("\n")

	b.WriteString("## Cyprus Avenue Appearances\n\n")
	sorted := make([]archive.ArtistAppearance, len(appearances))
	copy(sorted, appearances)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	for _, a := range sorted {
		fmt.Fprintf(&b, "### %s - %s\n\n", a.Date, a.Title)
		for _, song := range a.Songs {
			if spotify, ok := data.GetSpotifyTrack(name, song); ok && spotify.SpotifyURL != "" {
				fmt.Fprintf(&b, "- %q [Spotify](%s)\n", song, spotify.SpotifyURL)
			} else {
				fmt.Fprintf(&b, "- %q\n", song)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// groupDigits renders 1234567 as "1,234,567".
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

// DiscoveryReportParams names the tags a themed report covers.
type DiscoveryReportParams struct {
	Tags  []string `json:"tags"`
	Title string   `json:"title"`
}

// ReportArtist is one artist section in a discovery report.
type ReportArtist struct {
	Name         string        `json:"name"`
	Bio          string        `json:"bio,omitempty"`
	Tags         []string      `json:"tags"`
	Image        string        `json:"image,omitempty"`
	SpotifyURL   string        `json:"spotifyUrl,omitempty"`
	TrackCount   int           `json:"trackCount"`
	SampleTracks []ProfileSong `json:"sampleTracks"`
}

// DiscoveryReport is the structured form of a themed report.
type DiscoveryReport struct {
	Title       string         `json:"title"`
	Tags        []string       `json:"tags"`
	GeneratedAt string         `json:"generatedAt"`
	ArtistCount int            `json:"artistCount"`
	Artists     []ReportArtist `json:"artists"`
}

// DiscoveryReportResult carries both renderings or an error message.
type DiscoveryReportResult struct {
	Success  bool             `json:"success"`
	Error    string           `json:"error,omitempty"`
	Markdown string           `json:"markdown,omitempty"`
	Report   *DiscoveryReport `json:"json,omitempty"`
}

// GenerateDiscoveryReport builds a themed document over every artist whose
// tags match any of the requested tags.
func GenerateDiscoveryReport(data *archive.Data, params DiscoveryReportParams) DiscoveryReportResult {
	if len(params.Tags) == 0 {
		return DiscoveryReportResult{Error: "At least one tag is required for discovery."}
	}

	discovery := discover.DiscoverByTag(data, discover.DiscoverByTagParams{Tags: params.Tags, Limit: 50})
	if len(discovery.Artists) == 0 {
		return DiscoveryReportResult{
			Error: fmt.Sprintf("No artists found matching tags: %s", strings.Join(params.Tags, ", ")),
		}
	}

	title := params.Title
	if title == "" {
		titled := make([]string, 0, len(params.Tags))
		for _, tag := range params.Tags {
			titled = append(titled, capitalize(tag))
		}
		title = strings.Join(titled, " & ") + " Music in Cyprus Avenue"
	}

	reportArtists := make([]ReportArtist, 0, len(discovery.Artists))
	for _, hit := range discovery.Artists {
		bio, _ := data.GetArtistBio(hit.Name)
		ra := ReportArtist{
			Name:       hit.Name,
			Bio:        cleanSummary(bio.BioSummary),
			Tags:       bio.Tags,
			Image:      bio.Image,
			SpotifyURL: bio.SpotifyURL,
			TrackCount: hit.TrackCount,
		}
		for _, song := range sampleSongs(data, hit.Name, 5) {
			ps := ProfileSong{Song: song}
			if spotify, ok := data.GetSpotifyTrack(hit.Name, song); ok {
				ps.SpotifyURL = spotify.SpotifyURL
			}
			ra.SampleTracks = append(ra.SampleTracks, ps)
		}
		reportArtists = append(reportArtists, ra)
	}

	report := DiscoveryReport{
		Title:       title,
		Tags:        params.Tags,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ArtistCount: len(discovery.Artists),
		Artists:     reportArtists,
	}

	return DiscoveryReportResult{
		Success:  true,
		Markdown: discoveryMarkdown(data, title, params.Tags, reportArtists),
		Report:   &report,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var htmlLinkPattern = regexp.MustCompile(`<a[^>]*>.*?</a>`)

func cleanSummary(s string) string {
	return strings.TrimSpace(htmlLinkPattern.ReplaceAllString(s, ""))
}

// sampleSongs returns the artist's first distinct songs across appearances.
func sampleSongs(data *archive.Data, artist string, n int) []string {
	seen := make(map[string]struct{})
	var songs []string
	for _, a := range data.ArtistToPlaylists[artist] {
		for _, song := range a.Songs {
			if _, dup := seen[song]; dup {
				continue
			}
			seen[song] = struct{}{}
			songs = append(songs, song)
			if len(songs) == n {
				return songs
			}
		}
	}
	return songs
}

func discoveryMarkdown(data *archive.Data, title string, tags []string, artists []ReportArtist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(tags, ", "))
	fmt.Fprintf(&b, "**Artists Found:** %d\n\n", len(artists))
	for _, artist := range artists {
		fmt.Fprintf(&b, "## %s\n\n", artist.Name)
		if artist.Image != "" {
			fmt.Fprintf(&b, "![%s](%s)\n\n", artist.Name, artist.Image)
		}
		if artist.Bio != "" {
			fmt.Fprintf(&b, "%s\n\n", artist.Bio)
		}
		if artist.SpotifyURL != "" {
			fmt.Fprintf(&b, "[Listen on Spotify](%s)\n\n", artist.SpotifyURL)
		}
		if len(artist.SampleTracks) > 0 {
			b.WriteString("**Sample Tracks:**\n")
			for _, track := range artist.SampleTracks {
				if track.SpotifyURL != "" {
					fmt.Fprintf(&b, "- %q [Spotify](%s)\n", track.Song, track.SpotifyURL)
				} else {
					fmt.Fprintf(&b, "- %q\n", track.Song)
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// YearInReviewParams selects the year to summarize.
type YearInReviewParams struct {
	Year int `json:"year"`
}

// YearSummary is the headline numbers for a year.
type YearSummary struct {
	PlaylistCount int `json:"playlistCount"`
	TrackCount    int `json:"trackCount"`
	ArtistCount   int `json:"artistCount"`
}

// YearArtist is one ranked artist in the annual review.
type YearArtist struct {
	Artist     string `json:"artist"`
	TrackCount int    `json:"trackCount"`
}

// YearGenre is one ranked genre with its share of the year's tracks.
type YearGenre struct {
	Tag        string  `json:"tag"`
	TrackCount int     `json:"trackCount"`
	Percentage float64 `json:"percentage"`
}

// YearPlaylist is one show in the annual review listing.
type YearPlaylist struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	TrackCount  int    `json:"trackCount"`
	Description string `json:"description,omitempty"`
}

// YearInReview is the structured form of an annual summary.
type YearInReview struct {
	Year        int            `json:"year"`
	GeneratedAt string         `json:"generatedAt"`
	Summary     YearSummary    `json:"summary"`
	TopArtists  []YearArtist   `json:"topArtists"`
	TopGenres   []YearGenre    `json:"topGenres"`
	Playlists   []YearPlaylist `json:"playlists"`
}

// YearInReviewResult carries both renderings or an error naming the
// available years.
type YearInReviewResult struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Markdown string        `json:"markdown,omitempty"`
	Review   *YearInReview `json:"json,omitempty"`
}

// GenerateYearInReview summarizes one calendar year of shows: totals, the
// most featured artists and genres, and every playlist in date order.
func GenerateYearInReview(data *archive.Data, params YearInReviewParams) YearInReviewResult {
	var yearPlaylists []models.Playlist
	yearSet := make(map[int]struct{})
	for _, playlist := range data.Playlists {
		year := playlistYear(playlist.Date)
		yearSet[year] = struct{}{}
		if year == params.Year {
			yearPlaylists = append(yearPlaylists, playlist)
		}
	}
	if len(yearPlaylists) == 0 {
		years := make([]int, 0, len(yearSet))
		for year := range yearSet {
			years = append(years, year)
		}
		sort.Ints(years)
		labels := make([]string, 0, len(years))
		for _, year := range years {
			labels = append(labels, strconv.Itoa(year))
		}
		return YearInReviewResult{
			Error: fmt.Sprintf("No playlists found for year %d. Available years: %s",
				params.Year, strings.Join(labels, ", ")),
		}
	}

	artistCounts := make(map[string]int)
	tagCounts := make(map[string]int)
	totalTracks := 0
	for _, playlist := range yearPlaylists {
		for _, track := range playlist.Tracks {
			totalTracks++
			artistCounts[track.Artist]++
			bio, _ := data.GetArtistBio(track.Artist)
			for _, tag := range bio.Tags {
				tagCounts[strings.ToLower(tag)]++
			}
		}
	}

	topArtists := rankCounts(artistCounts, 15)
	topTags := rankCounts(tagCounts, 10)

	review := YearInReview{
		Year:        params.Year,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Summary: YearSummary{
			PlaylistCount: len(yearPlaylists),
			TrackCount:    totalTracks,
			ArtistCount:   len(artistCounts),
		},
	}
	for _, entry := range topArtists {
		review.TopArtists = append(review.TopArtists, YearArtist{Artist: entry.name, TrackCount: entry.count})
	}
	for _, entry := range topTags {
		review.TopGenres = append(review.TopGenres, YearGenre{
			Tag:        entry.name,
			TrackCount: entry.count,
			Percentage: math.Round(float64(entry.count)/float64(totalTracks)*1000) / 10,
		})
	}

	sorted := make([]models.Playlist, len(yearPlaylists))
	copy(sorted, yearPlaylists)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	for _, playlist := range sorted {
		review.Playlists = append(review.Playlists, YearPlaylist{
			Date:        playlist.Date,
			Title:       playlist.Title,
			TrackCount:  len(playlist.Tracks),
			Description: truncate(playlist.Description, 200),
		})
	}

	return YearInReviewResult{
		Success:  true,
		Markdown: yearMarkdown(params.Year, sorted, topArtists, topTags),
		Review:   &review,
	}
}

func playlistYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

type rankedCount struct {
	name  string
	count int
}

// rankCounts orders by count desc, name asc on ties.
func rankCounts(counts map[string]int, limit int) []rankedCount {
	ranked := make([]rankedCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, rankedCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func yearMarkdown(year int, playlists []models.Playlist, topArtists, topTags []rankedCount) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Cyprus Avenue %d Year in Review\n\n", year)
	fmt.Fprintf(&b, "**Total Shows:** %d\n", len(playlists))
	totalTracks := 0
	for _, playlist := range playlists {
		totalTracks += len(playlist.Tracks)
	}
	fmt.Fprintf(&b, "**Total Tracks:** %d\n\n", totalTracks)

	b.WriteString("## Most Featured Artists\n\n")
	for i, entry := range topArtists {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "%d. **%s** (%d tracks)\n", i+1, entry.name, entry.count)
	}
	b.WriteString("\n## Top Genres\n\n")
	for i, entry := range topTags {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "%d. **%s** (%d tracks)\n", i+1, entry.name, entry.count)
	}
	b.WriteString("\n## All Shows\n\n")
	for _, playlist := range playlists {
		fmt.Fprintf(&b, "### %s - %s\n\n", playlist.Date, playlist.Title)
		fmt.Fprintf(&b, "%d tracks\n", len(playlist.Tracks))
		if playlist.Description != "" {
			desc := truncate(playlist.Description, 200)
			if len([]rune(playlist.Description)) > 200 {
				desc += "..."
			}
			fmt.Fprintf(&b, "> %s\n", desc)
		}
		b.WriteString("\n")
	}
	return b.String()
}
