// Package analyze computes archive-wide statistics, top-artist rankings,
// genre trends, thematic groupings and the combined curation summary.
package analyze

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"spindex/archive"
	"spindex/models"
)

const defaultTopArtistLimit = 25

// dedicatedShowThreshold is the fraction of a playlist's tracks one artist
// must hold for the episode to count as dedicated to them.
const dedicatedShowThreshold = 0.8

// TagCount pairs a normalized tag with how many artists carry it.
type TagCount struct {
	Tag         string `json:"tag"`
	ArtistCount int    `json:"artistCount"`
}

// Statistics is the archive overview.
type Statistics struct {
	Playlists PlaylistStats `json:"playlists"`
	Artists   ArtistStats   `json:"artists"`
	Tracks    TrackStats    `json:"tracks"`
	Tags      TagStats      `json:"tags"`
}

type PlaylistStats struct {
	Total                    int       `json:"total"`
	DateRange                DateRange `json:"dateRange"`
	TotalTracks              int       `json:"totalTracks"`
	AverageTracksPerPlaylist int       `json:"averageTracksPerPlaylist"`
}

type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

type ArtistStats struct {
	Total      int `json:"total"`
	WithBios   int `json:"withBios"`
	WithImages int `json:"withImages"`
}

type TrackStats struct {
	Total           int    `json:"total"`
	Unique          int    `json:"unique"`
	SpotifyIndexed  int    `json:"spotifyIndexed"`
	SpotifyCoverage string `json:"spotifyCoverage"`
}

type TagStats struct {
	Total   int        `json:"total"`
	TopTags []TagCount `json:"topTags"`
}

// GetStatistics summarizes the whole archive: playlist span, track counts,
// bio and Spotify coverage, and the ten most common tags.
func GetStatistics(data *archive.Data) Statistics {
	var stats Statistics

	dates := make([]string, 0, len(data.Playlists))
	totalTracks := 0
	unique := make(map[string]struct{})
	for _, playlist := range data.Playlists {
		dates = append(dates, playlist.Date)
		totalTracks += len(playlist.Tracks)
		for _, track := range playlist.Tracks {
			unique[models.TrackKey(track.Artist, track.Song)] = struct{}{}
		}
	}
	sort.Strings(dates)

	stats.Playlists.Total = len(data.Playlists)
	if len(dates) > 0 {
		stats.Playlists.DateRange = DateRange{Earliest: dates[0], Latest: dates[len(dates)-1]}
		stats.Playlists.AverageTracksPerPlaylist = int(math.Round(float64(totalTracks) / float64(len(dates))))
	}
	stats.Playlists.TotalTracks = totalTracks

	withBios, withImages := 0, 0
	for _, bio := range data.ArtistBios {
		if bio.Bio != "" {
			withBios++
		}
		if bio.Image != "" {
			withImages++
		}
	}
	stats.Artists = ArtistStats{Total: len(data.AllArtists), WithBios: withBios, WithImages: withImages}

	indexed := len(data.SpotifyIndex)
	coverage := "0%"
	if len(unique) > 0 {
		coverage = fmt.Sprintf("%d%%", int(math.Round(float64(indexed)/float64(len(unique))*100)))
	}
	stats.Tracks = TrackStats{Total: totalTracks, Unique: len(unique), SpotifyIndexed: indexed, SpotifyCoverage: coverage}

	tagCounts := make(map[string]int)
	for _, bio := range data.ArtistBios {
		for _, tag := range bio.Tags {
			tagCounts[strings.ToLower(tag)]++
		}
	}
	stats.Tags.Total = len(tagCounts)
	for _, tc := range sortTagCounts(tagCounts, 10) {
		stats.Tags.TopTags = append(stats.Tags.TopTags, TagCount{Tag: tc.tag, ArtistCount: tc.count})
	}

	return stats
}

type tagCount struct {
	tag   string
	count int
}

// sortTagCounts orders by count desc, tag asc on ties.
func sortTagCounts(counts map[string]int, limit int) []tagCount {
	sorted := make([]tagCount, 0, len(counts))
	for tag, count := range counts {
		sorted = append(sorted, tagCount{tag, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].tag < sorted[j].tag
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// TopArtistsParams bounds the analysis window by year.
type TopArtistsParams struct {
	StartYear int `json:"startYear"`
	EndYear   int `json:"endYear"`
	Limit     int `json:"limit"`
}

// DedicatedShow is an episode centered on one artist.
type DedicatedShow struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// TopArtist is one ranked artist with appearance history.
type TopArtist struct {
	Artist           string          `json:"artist"`
	TotalAppearances int             `json:"totalAppearances"`
	UniqueSongs      int             `json:"uniqueSongs"`
	PlaylistCount    int             `json:"playlistCount"`
	FirstAppearance  string          `json:"firstAppearance"`
	LastAppearance   string          `json:"lastAppearance"`
	MostCommonTags   []string        `json:"mostCommonTags"`
	DedicatedShows   []DedicatedShow `json:"dedicatedShows"`
}

// TopArtistsResult ranks artists by total track appearances.
type TopArtistsResult struct {
	DateRange    AnalysisRange `json:"dateRange"`
	TotalArtists int           `json:"totalArtists"`
	TopArtists   []TopArtist   `json:"topArtists"`
}

type AnalysisRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AnalyzeTopArtists ranks artists within the year window by total track
// appearances, flagging dedicated shows (artist named in the title or
// holding 80%+ of the tracks).
func AnalyzeTopArtists(data *archive.Data, params TopArtistsParams) TopArtistsResult {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTopArtistLimit
	}

	var playlists []models.Playlist
	for _, playlist := range data.Playlists {
		year := playlistYear(playlist.Date)
		if params.StartYear > 0 && year < params.StartYear {
			continue
		}
		if params.EndYear > 0 && year > params.EndYear {
			continue
		}
		playlists = append(playlists, playlist)
	}

	type artistAgg struct {
		appearances int
		songs       map[string]struct{}
		playlists   map[string]struct{}
		firstDate   string
		lastDate    string
		dedicated   []DedicatedShow
	}
	aggs := make(map[string]*artistAgg)

	for _, playlist := range playlists {
		perArtist := make(map[string][]string)
		for _, track := range playlist.Tracks {
			perArtist[track.Artist] = append(perArtist[track.Artist], track.Song)
		}

		for artist, songs := range perArtist {
			agg := aggs[artist]
			if agg == nil {
				agg = &artistAgg{
					songs:     make(map[string]struct{}),
					playlists: make(map[string]struct{}),
					firstDate: playlist.Date,
					lastDate:  playlist.Date,
				}
				aggs[artist] = agg
			}

			agg.appearances += len(songs)
			agg.playlists[playlist.Date] = struct{}{}
			for _, song := range songs {
				agg.songs[song] = struct{}{}
			}
			if playlist.Date < agg.firstDate {
				agg.firstDate = playlist.Date
			}
			if playlist.Date > agg.lastDate {
				agg.lastDate = playlist.Date
			}

			titleMention := strings.Contains(strings.ToLower(playlist.Title), strings.ToLower(artist))
			share := float64(len(songs)) / float64(len(playlist.Tracks))
			if titleMention || share >= dedicatedShowThreshold {
				agg.dedicated = append(agg.dedicated, DedicatedShow{Date: playlist.Date, Title: playlist.Title})
			}
		}
	}

	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if aggs[names[i]].appearances != aggs[names[j]].appearances {
			return aggs[names[i]].appearances > aggs[names[j]].appearances
		}
		return names[i] < names[j]
	})

	var rangeStart, rangeEnd string
	if len(playlists) > 0 {
		dates := make([]string, 0, len(playlists))
		for _, p := range playlists {
			dates = append(dates, p.Date)
		}
		sort.Strings(dates)
		rangeStart, rangeEnd = dates[0], dates[len(dates)-1]
	}

	result := TopArtistsResult{
		DateRange:    AnalysisRange{Start: rangeStart, End: rangeEnd},
		TotalArtists: len(aggs),
	}
	if len(names) > limit {
		names = names[:limit]
	}
	for _, name := range names {
		agg := aggs[name]
		bio, _ := data.GetArtistBio(name)
		tags := bio.Tags
		if len(tags) > 5 {
			tags = tags[:5]
		}
		sort.Slice(agg.dedicated, func(i, j int) bool { return agg.dedicated[i].Date < agg.dedicated[j].Date })
		result.TopArtists = append(result.TopArtists, TopArtist{
			Artist:           name,
			TotalAppearances: agg.appearances,
			UniqueSongs:      len(agg.songs),
			PlaylistCount:    len(agg.playlists),
			FirstAppearance:  agg.firstDate,
			LastAppearance:   agg.lastDate,
			MostCommonTags:   tags,
			DedicatedShows:   agg.dedicated,
		})
	}
	return result
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

// GenreTrendsParams bounds the trend window by year.
type GenreTrendsParams struct {
	StartYear int `json:"startYear"`
	EndYear   int `json:"endYear"`
}

// GenreShare is one tag's presence within a year.
type GenreShare struct {
	Tag        string  `json:"tag"`
	TrackCount int     `json:"trackCount"`
	Percentage float64 `json:"percentage"`
}

// GenreTrend is one year's genre profile with movement vs the prior year.
type GenreTrend struct {
	Year            int          `json:"year"`
	PlaylistCount   int          `json:"playlistCount"`
	DominantGenres  []GenreShare `json:"dominantGenres"`
	RisingGenres    []string     `json:"risingGenres"`
	DecliningGenres []string     `json:"decliningGenres"`
}

// GenreTrendsResult is the year-by-year genre evolution.
type GenreTrendsResult struct {
	Years []GenreTrend `json:"years"`
}

// AnalyzeGenreTrends builds a per-year tag profile. A genre is rising when
// its count grew more than 20% over the previous year (or is new with more
// than 5 tracks) and declining when it shrank more than 20%.
func AnalyzeGenreTrends(data *archive.Data, params GenreTrendsParams) GenreTrendsResult {
	yearSet := make(map[int]struct{})
	for _, playlist := range data.Playlists {
		year := playlistYear(playlist.Date)
		if params.StartYear > 0 && year < params.StartYear {
			continue
		}
		if params.EndYear > 0 && year > params.EndYear {
			continue
		}
		yearSet[year] = struct{}{}
	}
	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	var trends []GenreTrend
	previous := make(map[string]int)

	for _, year := range years {
		tagCounts := make(map[string]int)
		totalTracks := 0
		playlistCount := 0

		for _, playlist := range data.Playlists {
			if playlistYear(playlist.Date) != year {
				continue
			}
			playlistCount++
			for _, track := range playlist.Tracks {
				totalTracks++
				bio, _ := data.GetArtistBio(track.Artist)
				for _, tag := range bio.Tags {
					tagCounts[strings.ToLower(tag)]++
				}
			}
		}

		var dominant []GenreShare
		for _, tc := range sortTagCounts(tagCounts, 10) {
			pct := 0.0
			if totalTracks > 0 {
				pct = math.Round(float64(tc.count)/float64(totalTracks)*1000) / 10
			}
			dominant = append(dominant, GenreShare{Tag: tc.tag, TrackCount: tc.count, Percentage: pct})
		}

		var rising, declining []string
		if len(previous) > 0 {
			for _, tc := range sortTagCounts(tagCounts, 0) {
				prev := previous[tc.tag]
				if prev > 0 {
					change := float64(tc.count-prev) / float64(prev)
					if change > 0.2 {
						rising = append(rising, tc.tag)
					}
					if change < -0.2 {
						declining = append(declining, tc.tag)
					}
				} else if tc.count > 5 {
					rising = append(rising, tc.tag)
				}
			}
		}
		if len(rising) > 5 {
			rising = rising[:5]
		}
		if len(declining) > 5 {
			declining = declining[:5]
		}

		trends = append(trends, GenreTrend{
			Year:            year,
			PlaylistCount:   playlistCount,
			DominantGenres:  dominant,
			RisingGenres:    rising,
			DecliningGenres: declining,
		})

		previous = tagCounts
	}

	return GenreTrendsResult{Years: trends}
}

// Theme is one recurring programming pattern with example episodes.
type Theme struct {
	Theme         string          `json:"theme"`
	Description   string          `json:"description"`
	PlaylistCount int             `json:"playlistCount"`
	Examples      []DedicatedShow `json:"examples"`
}

// ThemesResult lists the detected themes; empty buckets are omitted.
type ThemesResult struct {
	Themes []Theme `json:"themes"`
}

// AnalyzeThemes classifies playlists into recurring themes by title and
// description keywords, plus single-artist tribute detection.
func AnalyzeThemes(data *archive.Data) ThemesResult {
	var themes []Theme

	var tributes []DedicatedShow
	for _, playlist := range data.Playlists {
		if len(playlist.Tracks) == 0 {
			continue
		}
		counts := make(map[string]int)
		for _, track := range playlist.Tracks {
			counts[track.Artist]++
		}
		for _, count := range counts {
			if float64(count)/float64(len(playlist.Tracks)) >= dedicatedShowThreshold {
				tributes = append(tributes, DedicatedShow{Date: playlist.Date, Title: playlist.Title})
				break
			}
		}
	}
	if len(tributes) > 0 {
		themes = append(themes, Theme{
			Theme:         "Artist Tributes",
			Description:   "Episodes dedicated to celebrating a single artist's catalog",
			PlaylistCount: len(tributes),
			Examples:      firstN(tributes, 5),
		})
	}

	collect := func(match func(models.Playlist) bool) []DedicatedShow {
		var shows []DedicatedShow
		for _, playlist := range data.Playlists {
			if match(playlist) {
				shows = append(shows, DedicatedShow{Date: playlist.Date, Title: playlist.Title})
			}
		}
		return shows
	}
	titleHas := func(playlist models.Playlist, keywords ...string) bool {
		title := strings.ToLower(playlist.Title)
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				return true
			}
		}
		return false
	}

	bestOf := collect(func(p models.Playlist) bool {
		return titleHas(p, "best of", "favorites", "top music picks", "year in review")
	})
	if len(bestOf) > 0 {
		themes = append(themes, Theme{
			Theme:         "Year-End Best Of",
			Description:   "Annual retrospectives of favorite music",
			PlaylistCount: len(bestOf),
			Examples:      firstN(bestOf, 5),
		})
	}

	holiday := collect(func(p models.Playlist) bool {
		return titleHas(p, "christmas", "holiday", "seasonal")
	})
	if len(holiday) > 0 {
		themes = append(themes, Theme{
			Theme:         "Holiday Specials",
			Description:   "Christmas and seasonal music episodes",
			PlaylistCount: len(holiday),
			Examples:      firstN(holiday, 5),
		})
	}

	memorial := collect(func(p models.Playlist) bool {
		if titleHas(p, "memorial", "tribute", "remembering") {
			return true
		}
		desc := strings.ToLower(p.Description)
		return strings.Contains(desc, "passed away") || strings.Contains(desc, "who died")
	})
	if len(memorial) > 0 {
		themes = append(themes, Theme{
			Theme:         "Memorial Tributes",
			Description:   "Episodes honoring artists who recently passed away",
			PlaylistCount: len(memorial),
			Examples:      firstN(memorial, 5),
		})
	}

	era := collect(func(p models.Playlist) bool {
		return titleHas(p, "60s", "70s", "80s", "classic", "golden age")
	})
	if len(era) > 0 {
		themes = append(themes, Theme{
			Theme:         "Era Retrospectives",
			Description:   "Episodes focused on specific musical eras",
			PlaylistCount: len(era),
			Examples:      firstN(era, 5),
		})
	}

	return ThemesResult{Themes: themes}
}

func firstN(shows []DedicatedShow, n int) []DedicatedShow {
	if len(shows) > n {
		return shows[:n]
	}
	return shows
}

// SummaryArtist is the compact top-artist line in the curation summary.
type SummaryArtist struct {
	Artist         string `json:"artist"`
	Appearances    int    `json:"appearances"`
	DedicatedShows int    `json:"dedicatedShows"`
}

// SummaryGenre is one dominant genre with its share of all tracks.
type SummaryGenre struct {
	Tag        string  `json:"tag"`
	Percentage float64 `json:"percentage"`
}

// SummaryTheme is one theme with its episode count.
type SummaryTheme struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// CurationSummary is the combined archive-wide narrative.
type CurationSummary struct {
	Overview       string          `json:"overview"`
	DateRange      AnalysisRange   `json:"dateRange"`
	TotalPlaylists int             `json:"totalPlaylists"`
	TotalTracks    int             `json:"totalTracks"`
	TotalArtists   int             `json:"totalArtists"`
	TopArtists     []SummaryArtist `json:"topArtists"`
	DominantGenres []SummaryGenre  `json:"dominantGenres"`
	Themes         []SummaryTheme  `json:"themes"`
	Observations   []string        `json:"observations"`
}

// GetCurationSummary combines statistics, top artists, genres and themes
// into a prose overview with generated observations.
func GetCurationSummary(data *archive.Data) CurationSummary {
	stats := GetStatistics(data)
	top := AnalyzeTopArtists(data, TopArtistsParams{Limit: 10})
	themes := AnalyzeThemes(data)

	tagCounts := make(map[string]int)
	totalTracks := 0
	for _, playlist := range data.Playlists {
		for _, track := range playlist.Tracks {
			totalTracks++
			bio, _ := data.GetArtistBio(track.Artist)
			for _, tag := range bio.Tags {
				tagCounts[strings.ToLower(tag)]++
			}
		}
	}
	var dominant []SummaryGenre
	for _, tc := range sortTagCounts(tagCounts, 10) {
		pct := 0.0
		if totalTracks > 0 {
			pct = math.Round(float64(tc.count)/float64(totalTracks)*1000) / 10
		}
		dominant = append(dominant, SummaryGenre{Tag: tc.tag, Percentage: pct})
	}

	var observations []string
	if len(top.TopArtists) > 0 {
		lead := top.TopArtists[0]
		observations = append(observations, fmt.Sprintf(
			"%s is the most featured artist with %d track appearances across %d shows.",
			lead.Artist, lead.TotalAppearances, lead.PlaylistCount))
		if len(lead.DedicatedShows) > 0 {
			observations = append(observations, fmt.Sprintf(
				"%s had %d dedicated episode(s).", lead.Artist, len(lead.DedicatedShows)))
		}
	}
	if len(dominant) > 0 {
		n := 3
		if len(dominant) < n {
			n = len(dominant)
		}
		topGenres := make([]string, 0, n)
		for _, g := range dominant[:n] {
			topGenres = append(topGenres, g.Tag)
		}
		observations = append(observations, fmt.Sprintf(
			"The most common genres are %s, reflecting a strong roots music focus.",
			strings.Join(topGenres, ", ")))
	}
	for _, theme := range themes.Themes {
		if theme.Theme == "Artist Tributes" {
			observations = append(observations, fmt.Sprintf(
				"%d episodes were dedicated artist tributes, showcasing deep appreciation for individual artists.",
				theme.PlaylistCount))
			break
		}
	}

	overview := fmt.Sprintf(
		"Bill Shapiro's Cyprus Avenue archive spans %s to %s, featuring %d curated playlists with %d unique tracks from %d artists. The collection emphasizes roots music, classic soul, and singer-songwriters.",
		stats.Playlists.DateRange.Earliest, stats.Playlists.DateRange.Latest,
		stats.Playlists.Total, stats.Tracks.Unique, stats.Artists.Total)

	summaryArtists := make([]SummaryArtist, 0, 5)
	for i, a := range top.TopArtists {
		if i == 5 {
			break
		}
		summaryArtists = append(summaryArtists, SummaryArtist{
			Artist:         a.Artist,
			Appearances:    a.TotalAppearances,
			DedicatedShows: len(a.DedicatedShows),
		})
	}
	summaryThemes := make([]SummaryTheme, 0, len(themes.Themes))
	for _, t := range themes.Themes {
		summaryThemes = append(summaryThemes, SummaryTheme{Theme: t.Theme, Count: t.PlaylistCount})
	}

	return CurationSummary{
		Overview:       overview,
		DateRange:      AnalysisRange{Start: stats.Playlists.DateRange.Earliest, End: stats.Playlists.DateRange.Latest},
		TotalPlaylists: stats.Playlists.Total,
		TotalTracks:    stats.Tracks.Unique,
		TotalArtists:   stats.Artists.Total,
		TopArtists:     summaryArtists,
		DominantGenres: dominant,
		Themes:         summaryThemes,
		Observations:   observations,
	}
}
