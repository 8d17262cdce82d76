package similarity

import (
	"math"
	"reflect"
	"testing"

	"spindex/archive"
	"spindex/models"
)

func TestTagSimilarity(t *testing.T) {
	tests := []struct {
		name  string
		tags1 []string
		tags2 []string
		want  float64
	}{
		{name: "both empty", tags1: nil, tags2: nil, want: 0},
		{name: "one empty", tags1: []string{"soul"}, tags2: nil, want: 0},
		{name: "disjoint", tags1: []string{"soul"}, tags2: []string{"punk"}, want: 0},
		{name: "identical", tags1: []string{"soul", "funk"}, tags2: []string{"Funk", "SOUL"}, want: 1},
		{name: "one third", tags1: []string{"soul", "r&b"}, tags2: []string{"soul", "funk"}, want: 1.0 / 3.0},
		{name: "duplicates collapse", tags1: []string{"soul", "soul"}, tags2: []string{"soul"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TagSimilarity(tt.tags1, tt.tags2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TagSimilarity = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("TagSimilarity out of bounds: %v", got)
			}
		})
	}
}

func TestSharedTags(t *testing.T) {
	got := SharedTags([]string{"Soul", "R&B", "gospel"}, []string{"soul", "funk", "r&b"})
	want := []string{"soul", "r&b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SharedTags = %v, want %v", got, want)
	}
}

func TestConnectionStrength(t *testing.T) {
	tests := []struct {
		name                     string
		coOcc, tags, maxCo, maxT int
		want                     float64
	}{
		{name: "full", coOcc: 4, tags: 3, maxCo: 4, maxT: 3, want: 1},
		{name: "zero denominators", coOcc: 2, tags: 2, maxCo: 0, maxT: 0, want: 0},
		{name: "co-occurrence only", coOcc: 2, tags: 0, maxCo: 4, maxT: 3, want: 0.3},
		{name: "tags only", coOcc: 0, tags: 3, maxCo: 4, maxT: 3, want: 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConnectionStrength(tt.coOcc, tt.tags, tt.maxCo, tt.maxT)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConnectionStrength = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("ConnectionStrength out of bounds: %v", got)
			}
		})
	}
}

func soulRevueData() *archive.Data {
	playlists := []models.Playlist{
		{
			Date:  "2020-06-15",
			Title: "Cyprus Avenue: Soul Revue",
			Tracks: []models.Track{
				{Artist: "Aretha Franklin", Song: "Respect"},
				{Artist: "Otis Redding", Song: "Respect"},
			},
		},
	}
	bios := map[string]models.ArtistBio{
		"Aretha Franklin": {Tags: []string{"soul", "r&b"}},
		"Otis Redding":    {Tags: []string{"soul", "funk"}},
	}
	return archive.Build(playlists, bios, nil)
}

func TestFindSimilarArtists(t *testing.T) {
	data := soulRevueData()

	got := FindSimilarArtists(data, "Aretha Franklin", 20)
	if len(got) != 1 {
		t.Fatalf("results = %+v, want one", got)
	}
	if got[0].Artist != "Otis Redding" {
		t.Errorf("artist = %q", got[0].Artist)
	}
	if math.Abs(got[0].Similarity-1.0/3.0) > 1e-9 {
		t.Errorf("similarity = %v, want 1/3", got[0].Similarity)
	}
	if !reflect.DeepEqual(got[0].SharedTags, []string{"soul"}) {
		t.Errorf("shared tags = %v", got[0].SharedTags)
	}
}

func TestFindSimilarArtistsNoTags(t *testing.T) {
	data := archive.Build(nil, map[string]models.ArtistBio{"Nobody": {}}, nil)
	if got := FindSimilarArtists(data, "Nobody", 20); got != nil {
		t.Errorf("tagless source artist should yield nil, got %v", got)
	}
}

func TestFindArtistConnections(t *testing.T) {
	data := soulRevueData()

	for _, source := range []string{"Aretha Franklin", "Otis Redding"} {
		got := FindArtistConnections(data, source, 1, 20)
		if len(got) != 1 {
			t.Fatalf("connections from %s = %+v, want one", source, got)
		}
		conn := got[0]
		if conn.CoOccurrences != 1 {
			t.Errorf("coOccurrences = %d, want 1", conn.CoOccurrences)
		}
		if !reflect.DeepEqual(conn.SharedTags, []string{"soul"}) {
			t.Errorf("sharedTags = %v, want [soul]", conn.SharedTags)
		}
		if len(conn.SharedPlaylists) != 1 || conn.SharedPlaylists[0].Date != "2020-06-15" {
			t.Errorf("sharedPlaylists = %+v", conn.SharedPlaylists)
		}
		if conn.ConnectionStrength != 1 {
			t.Errorf("strength = %v, want 1 (both maxima from this result)", conn.ConnectionStrength)
		}
	}
}

func TestFindArtistConnectionsMinFilter(t *testing.T) {
	data := soulRevueData()
	if got := FindArtistConnections(data, "Aretha Franklin", 2, 20); got != nil {
		t.Errorf("min co-occurrence filter should exclude the pair, got %v", got)
	}
}
