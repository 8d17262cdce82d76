package report

import (
	"strings"
	"testing"

	"spindex/archive"
	"spindex/models"
)

func intPtr(n int) *int { return &n }

func testData() *archive.Data {
	playlists := []models.Playlist{
		{
			Date:        "2020-06-15",
			Title:       "Summer Soul",
			Description: "A warm evening of soul classics.",
			SourceURL:   "https://example.org/shows/2020-06-15",
			Tracks: []models.Track{
				{Artist: "Aretha Franklin", Song: "Respect"},
				{Artist: "Otis Redding", Song: "Try a Little Tenderness"},
			},
		},
		{
			Date:      "2020-09-20",
			Title:     "Deep Cuts",
			SourceURL: "https://example.org/shows/2020-09-20",
			Tracks: []models.Track{
				{Artist: "Aretha Franklin", Song: "Think"},
			},
		},
	}
	bios := map[string]models.ArtistBio{
		"Aretha Franklin": {
			Bio:        "The Queen of Soul.",
			BioSummary: `The Queen of Soul. <a href="https://last.fm/aretha">Read more</a>`,
			Tags:       []string{"soul", "gospel"},
			Image:      "http://img/aretha.jpg",
			SpotifyURL: "https://open.spotify.com/artist/aretha",
			URL:        "https://last.fm/aretha",
			Listeners:  1234567,
			Popularity: intPtr(80),
		},
		"Otis Redding": {Tags: []string{"soul"}},
	}
	spotify := map[string]models.SpotifyTrack{
		models.TrackKey("Aretha Franklin", "Respect"): {
			SpotifyURL: "https://open.spotify.com/track/respect",
			AlbumArt:   "http://img/respect.jpg",
		},
	}
	return archive.Build(playlists, bios, spotify)
}

func TestGeneratePlaylistDocument(t *testing.T) {
	result := GeneratePlaylistDocument(testData(), PlaylistDocumentParams{Date: "2020-06-15"})
	if !result.Success {
		t.Fatalf("error: %s", result.Error)
	}

	doc := result.Document
	if doc.Title != "Summer Soul" || len(doc.Tracks) != 2 {
		t.Fatalf("document = %+v", doc)
	}
	if doc.Tracks[0].Position != 1 || doc.Tracks[0].SpotifyURL != "https://open.spotify.com/track/respect" {
		t.Errorf("track 1 = %+v", doc.Tracks[0])
	}
	if doc.Tracks[0].AlbumArt != "http://img/respect.jpg" {
		t.Errorf("albumArt = %q", doc.Tracks[0].AlbumArt)
	}

	md := result.Markdown
	for _, want := range []string{
		"# Summer Soul",
		"**Date:** 2020-06-15",
		"## Description",
		`1. Aretha Franklin - "Respect" [Spotify](https://open.spotify.com/track/respect)`,
		`2. Otis Redding - "Try a Little Tenderness"`,
		"**Source:** https://example.org/shows/2020-06-15",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestGeneratePlaylistDocumentNoLinks(t *testing.T) {
	off := false
	result := GeneratePlaylistDocument(testData(), PlaylistDocumentParams{Date: "2020-06-15", IncludeSpotifyLinks: &off})
	if !result.Success {
		t.Fatalf("error: %s", result.Error)
	}
	if strings.Contains(result.Markdown, "[Spotify]") {
		t.Error("markdown should not contain Spotify links")
	}
	if result.Document.Tracks[0].SpotifyURL != "" {
		t.Error("document should not carry a Spotify URL")
	}
}

func TestGeneratePlaylistDocumentMissing(t *testing.T) {
	result := GeneratePlaylistDocument(testData(), PlaylistDocumentParams{Date: "2020-06-99"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Error, "Did you mean: 2020-06-15?") {
		t.Errorf("error = %q", result.Error)
	}
}

func TestGenerateArtistProfile(t *testing.T) {
	result := GenerateArtistProfile(testData(), ArtistProfileParams{Artist: "Aretha Franklin"})
	if !result.Success {
		t.Fatalf("error: %s", result.Error)
	}

	profile := result.Profile
	if profile.ShowStats.TotalAppearances != 2 || profile.ShowStats.UniqueSongs != 2 || profile.ShowStats.PlaylistCount != 2 {
		t.Errorf("showStats = %+v", profile.ShowStats)
	}
	if profile.ShowStats.DateRange.First != "2020-06-15" || profile.ShowStats.DateRange.Last != "2020-09-20" {
		t.Errorf("dateRange = %+v", profile.ShowStats.DateRange)
	}
	if profile.Appearances[0].Songs[0].SpotifyURL == "" {
		t.Error("expected Spotify link on Respect")
	}

	md := result.Markdown
	for _, want := range []string{
		"# Aretha Franklin",
		"- **Last.fm Listeners:** 1,234,567",
		"- **Spotify Popularity:** 80/100",
		"## Tags",
		"soul, gospel",
		"## Cyprus Avenue Appearances",
		"### 2020-06-15 - Summer Soul",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestGenerateArtistProfileFuzzy(t *testing.T) {
	result := GenerateArtistProfile(testData(), ArtistProfileParams{Artist: "aretha franklyn"})
	if !result.Success || result.Profile.Name != "Aretha Franklin" {
		t.Fatalf("got %+v, want fuzzy resolution", result)
	}
}

func TestGenerateArtistProfileMissing(t *testing.T) {
	result := GenerateArtistProfile(testData(), ArtistProfileParams{Artist: "Zebulon Quartet"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestGenerateDiscoveryReport(t *testing.T) {
	result := GenerateDiscoveryReport(testData(), DiscoveryReportParams{Tags: []string{"soul"}})
	if !result.Success {
		t.Fatalf("error: %s", result.Error)
	}

	report := result.Report
	if report.Title != "Soul Music in Cyprus Avenue" {
		t.Errorf("title = %q", report.Title)
	}
	if report.ArtistCount != 2 {
		t.Errorf("artistCount = %d, want 2", report.ArtistCount)
	}
	// HTML links are stripped from the bio summary.
	if strings.Contains(report.Artists[0].Bio, "<a") {
		t.Errorf("bio not cleaned: %q", report.Artists[0].Bio)
	}
	if len(report.Artists[0].SampleTracks) == 0 {
		t.Error("expected sample tracks")
	}

	if !strings.Contains(result.Markdown, "**Tags:** soul") {
		t.Errorf("markdown missing tags line:\n%s", result.Markdown)
	}
}

func TestGenerateDiscoveryReportNoTags(t *testing.T) {
	result := GenerateDiscoveryReport(testData(), DiscoveryReportParams{})
	if result.Success || !strings.Contains(result.Error, "At least one tag") {
		t.Fatalf("got %+v", result)
	}
}

func TestGenerateYearInReview(t *testing.T) {
	result := GenerateYearInReview(testData(), YearInReviewParams{Year: 2020})
	if !result.Success {
		t.Fatalf("error: %s", result.Error)
	}

	review := result.Review
	if review.Summary.PlaylistCount != 2 || review.Summary.TrackCount != 3 || review.Summary.ArtistCount != 2 {
		t.Errorf("summary = %+v", review.Summary)
	}
	if review.TopArtists[0].Artist != "Aretha Franklin" || review.TopArtists[0].TrackCount != 2 {
		t.Errorf("topArtists = %+v", review.TopArtists)
	}
	// soul: 3 of 3 tracks tagged.
	if review.TopGenres[0].Tag != "soul" || review.TopGenres[0].Percentage != 100.0 {
		t.Errorf("topGenres = %+v", review.TopGenres)
	}
	if review.Playlists[0].Date != "2020-06-15" {
		t.Errorf("playlists = %+v", review.Playlists)
	}

	for _, want := range []string{
		"# Cyprus Avenue 2020 Year in Review",
		"**Total Shows:** 2",
		"**Total Tracks:** 3",
		"1. **Aretha Franklin** (2 tracks)",
		"### 2020-06-15 - Summer Soul",
	} {
		if !strings.Contains(result.Markdown, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestGenerateYearInReviewMissingYear(t *testing.T) {
	result := GenerateYearInReview(testData(), YearInReviewParams{Year: 1999})
	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Error, "Available years: 2020") {
		t.Errorf("error = %q", result.Error)
	}
}
