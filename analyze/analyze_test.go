package analyze

import (
	"strings"
	"testing"

	"spindex/archive"
	"spindex/models"
)

func testData() *archive.Data {
	playlists := []models.Playlist{
		{
			Date:  "2019-03-10",
			Title: "Roots and Branches",
			Tracks: []models.Track{
				{Artist: "Aretha Franklin", Song: "Respect"},
				{Artist: "Otis Redding", Song: "Try a Little Tenderness"},
			},
		},
		{
			Date:  "2020-03-08",
			Title: "The Aretha Franklin Story",
			Tracks: []models.Track{
				{Artist: "Aretha Franklin", Song: "Think"},
				{Artist: "Aretha Franklin", Song: "Chain of Fools"},
				{Artist: "Aretha Franklin", Song: "Rock Steady"},
			},
		},
		{
			Date:  "2020-12-20",
			Title: "Christmas Special",
			Tracks: []models.Track{
				{Artist: "Otis Redding", Song: "Merry Christmas Baby"},
				{Artist: "Aretha Franklin", Song: "Winter Wonderland"},
			},
		},
	}
	bios := map[string]models.ArtistBio{
		"Aretha Franklin": {Bio: "The Queen of Soul.", Image: "http://img/aretha.jpg", Tags: []string{"soul", "gospel"}},
		"Otis Redding":    {Tags: []string{"soul"}},
	}
	spotify := map[string]models.SpotifyTrack{
		models.TrackKey("Aretha Franklin", "Respect"): {SpotifyURL: "https://open.spotify.com/track/abc"},
	}
	return archive.Build(playlists, bios, spotify)
}

func TestGetStatistics(t *testing.T) {
	stats := GetStatistics(testData())

	if stats.Playlists.Total != 3 {
		t.Errorf("playlists.total = %d, want 3", stats.Playlists.Total)
	}
	if stats.Playlists.DateRange.Earliest != "2019-03-10" || stats.Playlists.DateRange.Latest != "2020-12-20" {
		t.Errorf("dateRange = %+v", stats.Playlists.DateRange)
	}
	if stats.Playlists.TotalTracks != 7 {
		t.Errorf("totalTracks = %d, want 7", stats.Playlists.TotalTracks)
	}
	if stats.Playlists.AverageTracksPerPlaylist != 2 {
		t.Errorf("average = %d, want 2", stats.Playlists.AverageTracksPerPlaylist)
	}
	if stats.Artists.Total != 2 || stats.Artists.WithBios != 1 || stats.Artists.WithImages != 1 {
		t.Errorf("artists = %+v", stats.Artists)
	}
	if stats.Tracks.Unique != 7 {
		t.Errorf("unique = %d, want 7", stats.Tracks.Unique)
	}
	if stats.Tracks.SpotifyIndexed != 1 || stats.Tracks.SpotifyCoverage != "14%" {
		t.Errorf("spotify = %+v", stats.Tracks)
	}
	if stats.Tags.Total != 2 {
		t.Errorf("tags.total = %d, want 2", stats.Tags.Total)
	}
	if stats.Tags.TopTags[0].Tag != "soul" || stats.Tags.TopTags[0].ArtistCount != 2 {
		t.Errorf("topTags = %+v", stats.Tags.TopTags)
	}
}

func TestAnalyzeTopArtists(t *testing.T) {
	result := AnalyzeTopArtists(testData(), TopArtistsParams{})

	if result.TotalArtists != 2 {
		t.Fatalf("totalArtists = %d, want 2", result.TotalArtists)
	}
	lead := result.TopArtists[0]
	if lead.Artist != "Aretha Franklin" {
		t.Fatalf("lead = %q, want Aretha Franklin", lead.Artist)
	}
	if lead.TotalAppearances != 5 || lead.UniqueSongs != 5 || lead.PlaylistCount != 3 {
		t.Errorf("lead stats = %+v", lead)
	}
	if lead.FirstAppearance != "2019-03-10" || lead.LastAppearance != "2020-12-20" {
		t.Errorf("appearance span = %s..%s", lead.FirstAppearance, lead.LastAppearance)
	}
	// The 2020-03-08 show names her in the title and she holds all tracks.
	if len(lead.DedicatedShows) != 1 || lead.DedicatedShows[0].Date != "2020-03-08" {
		t.Errorf("dedicatedShows = %+v", lead.DedicatedShows)
	}
}

func TestAnalyzeTopArtistsYearFilter(t *testing.T) {
	result := AnalyzeTopArtists(testData(), TopArtistsParams{StartYear: 2020, EndYear: 2020})

	if result.DateRange.Start != "2020-03-08" || result.DateRange.End != "2020-12-20" {
		t.Errorf("dateRange = %+v", result.DateRange)
	}
	lead := result.TopArtists[0]
	if lead.Artist != "Aretha Franklin" || lead.TotalAppearances != 4 {
		t.Errorf("lead = %+v", lead)
	}
}

func TestAnalyzeGenreTrends(t *testing.T) {
	result := AnalyzeGenreTrends(testData(), GenreTrendsParams{})

	if len(result.Years) != 2 {
		t.Fatalf("got %d years, want 2", len(result.Years))
	}
	y2019 := result.Years[0]
	if y2019.Year != 2019 || y2019.PlaylistCount != 1 {
		t.Errorf("2019 = %+v", y2019)
	}
	// 2019: soul on both tracks, gospel on one of two.
	if y2019.DominantGenres[0].Tag != "soul" || y2019.DominantGenres[0].Percentage != 100.0 {
		t.Errorf("2019 dominant = %+v", y2019.DominantGenres)
	}
	// First year has no baseline, so no movement.
	if len(y2019.RisingGenres) != 0 || len(y2019.DecliningGenres) != 0 {
		t.Errorf("2019 movement = %v / %v", y2019.RisingGenres, y2019.DecliningGenres)
	}

	y2020 := result.Years[1]
	// soul went 2 -> 5 and gospel 1 -> 4, both rising.
	if len(y2020.RisingGenres) != 2 {
		t.Errorf("2020 rising = %v", y2020.RisingGenres)
	}
}

func TestAnalyzeThemes(t *testing.T) {
	result := AnalyzeThemes(testData())

	byName := make(map[string]Theme)
	for _, theme := range result.Themes {
		byName[theme.Theme] = theme
	}

	tribute, ok := byName["Artist Tributes"]
	if !ok {
		t.Fatalf("missing Artist Tributes: %+v", result.Themes)
	}
	if tribute.PlaylistCount != 1 || tribute.Examples[0].Date != "2020-03-08" {
		t.Errorf("tribute = %+v", tribute)
	}

	holiday, ok := byName["Holiday Specials"]
	if !ok {
		t.Fatalf("missing Holiday Specials: %+v", result.Themes)
	}
	if holiday.PlaylistCount != 1 || holiday.Examples[0].Title != "Christmas Special" {
		t.Errorf("holiday = %+v", holiday)
	}

	if _, ok := byName["Year-End Best Of"]; ok {
		t.Error("Year-End Best Of should be omitted when empty")
	}
}

func TestGetCurationSummary(t *testing.T) {
	summary := GetCurationSummary(testData())

	if summary.TotalPlaylists != 3 || summary.TotalTracks != 7 || summary.TotalArtists != 2 {
		t.Errorf("totals = %d/%d/%d", summary.TotalPlaylists, summary.TotalTracks, summary.TotalArtists)
	}
	if !strings.Contains(summary.Overview, "2019-03-10 to 2020-12-20") {
		t.Errorf("overview = %q", summary.Overview)
	}
	if len(summary.TopArtists) == 0 || summary.TopArtists[0].Artist != "Aretha Franklin" {
		t.Fatalf("topArtists = %+v", summary.TopArtists)
	}
	if summary.TopArtists[0].DedicatedShows != 1 {
		t.Errorf("dedicatedShows = %d, want 1", summary.TopArtists[0].DedicatedShows)
	}
	if len(summary.Observations) == 0 || !strings.Contains(summary.Observations[0], "most featured artist") {
		t.Errorf("observations = %v", summary.Observations)
	}
	if summary.DominantGenres[0].Tag != "soul" {
		t.Errorf("dominantGenres = %+v", summary.DominantGenres)
	}
}
