package lastfm

import (
	"testing"

	lastfmapi "github.com/shkh/lastfm-go/lastfm"
)

func TestShapeBio(t *testing.T) {
	var info lastfmapi.ArtistGetInfo
	info.Name = "Aretha Franklin"
	info.Url = "https://www.last.fm/music/Aretha+Franklin"
	info.Stats.Listeners = "1234567"
	info.Stats.Plays = "89012345"
	info.Bio.Summary = `The Queen of Soul. <a href="https://www.last.fm/music/Aretha+Franklin">Read more on Last.fm</a>. `
	info.Bio.Content = "The Queen of Soul. Born in Memphis."

	bio := shapeBio(info)
	if bio.URL != info.Url {
		t.Errorf("url = %q", bio.URL)
	}
	if bio.Listeners != 1234567 {
		t.Errorf("listeners = %d, want 1234567", bio.Listeners)
	}
	if bio.Playcount != 89012345 {
		t.Errorf("playcount = %d, want 89012345", bio.Playcount)
	}
	if bio.BioSummary != "The Queen of Soul." {
		t.Errorf("bioSummary = %q", bio.BioSummary)
	}
	if bio.Bio != "The Queen of Soul. Born in Memphis." {
		t.Errorf("bio = %q", bio.Bio)
	}
	if bio.Image != "" {
		t.Errorf("image = %q, want empty", bio.Image)
	}
}

func TestCleanFooter(t *testing.T) {
	in := `The Queen of Soul. <a href="https://www.last.fm/music/Aretha+Franklin">Read more on Last.fm</a>. `
	if got := cleanFooter(in); got != "The Queen of Soul." {
		t.Errorf("cleanFooter() = %q", got)
	}
}

func TestBestImage(t *testing.T) {
	tests := []struct {
		name   string
		images []apiImage
		want   string
	}{
		{
			name: "prefers extralarge",
			images: []apiImage{
				{Size: "small", Url: "http://img/s.jpg"},
				{Size: "extralarge", Url: "http://img/xl.jpg"},
			},
			want: "http://img/xl.jpg",
		},
		{
			name: "rejects placeholder",
			images: []apiImage{
				{Size: "extralarge", Url: "http://img/2a96cbd8b46e442fc41c2b86b821562f.png"},
			},
			want: "",
		},
		{
			name: "falls back to any non-empty",
			images: []apiImage{
				{Size: "weird", Url: "http://img/w.jpg"},
			},
			want: "http://img/w.jpg",
		},
		{
			name: "no images",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bestImage(tt.images); got != tt.want {
				t.Errorf("bestImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAtoiSafe(t *testing.T) {
	if got := atoiSafe(" 1234567 "); got != 1234567 {
		t.Errorf("atoiSafe() = %d", got)
	}
	if got := atoiSafe("not a number"); got != 0 {
		t.Errorf("atoiSafe() = %d, want 0", got)
	}
}
