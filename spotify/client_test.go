package spotify

import (
	"testing"

	"spindex/models"
)

func TestCalculateConfidence(t *testing.T) {
	tests := []struct {
		name       string
		origArtist string
		origSong   string
		spotArtist string
		spotSong   string
		want       string
	}{
		{
			name:       "exact match",
			origArtist: "Aretha Franklin",
			origSong:   "Respect",
			spotArtist: "Aretha Franklin",
			spotSong:   "Respect",
			want:       models.ConfidenceHigh,
		},
		{
			name:       "punctuation ignored",
			origArtist: "The Band",
			origSong:   "Up On Cripple Creek!",
			spotArtist: "The Band",
			spotSong:   "Up on Cripple Creek",
			want:       models.ConfidenceHigh,
		},
		{
			name:       "both sides substring",
			origArtist: "Aretha Franklin",
			origSong:   "Respect",
			spotArtist: "Aretha Franklin & The Muscle Shoals Band",
			spotSong:   "Respect (Remastered)",
			want:       models.ConfidenceHigh,
		},
		{
			name:       "artist only",
			origArtist: "Aretha Franklin",
			origSong:   "Respect",
			spotArtist: "Aretha Franklin",
			spotSong:   "Chain of Fools",
			want:       models.ConfidenceMedium,
		},
		{
			name:       "first word of artist matches",
			origArtist: "Aretha Franklin",
			origSong:   "Respect",
			spotArtist: "Aretha Louise Franklin",
			spotSong:   "Think",
			want:       models.ConfidenceMedium,
		},
		{
			name:       "nothing matches",
			origArtist: "Aretha Franklin",
			origSong:   "Respect",
			spotArtist: "Miles Davis",
			spotSong:   "So What",
			want:       models.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateConfidence(tt.origArtist, tt.origSong, tt.spotArtist, tt.spotSong)
			if got != tt.want {
				t.Errorf("calculateConfidence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeMatch(t *testing.T) {
	if got := normalizeMatch("  Sly & The Family Stone  "); got != "sly the family stone" {
		t.Errorf("normalizeMatch() = %q", got)
	}
}
