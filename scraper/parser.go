package scraper

import (
	"regexp"
	"strings"
	"time"

	"spindex/models"
)

// RawArticle is a fetched article before track parsing.
type RawArticle struct {
	Title string
	Date  string
	URL   string
	Lines []string
}

// markers that separate the description prose from the track listing
var trackMarkers = []string{
	"track list:", "track list",
	"tracks:", "tracks list:", "tracks",
	"tracklist:", "tracklist",
	"playlist:", "playlist",
}

var (
	numberedPrefix = regexp.MustCompile(`^\d+\.\s*`)
	quotedPattern  = regexp.MustCompile(`^(.+?)\s*[-–—]\s*["“](.+?)["”]`)
	dashPattern    = regexp.MustCompile(`^(.+?)\s*[-–—]\s*(.+)$`)
	fromSuffix     = regexp.MustCompile(`\s+from\s+.+$`)
	songFromAlbum  = regexp.MustCompile(`^["“](.+?)["”]\s+from\s+.+$`)
	bareQuoted     = regexp.MustCompile(`^["“](.+?)["”]\s*$`)
	commaPattern   = regexp.MustCompile(`^(.+?),\s+(.+)$`)
	albumListLine  = regexp.MustCompile(`^[^,]+,\s+.+$`)
)

// ParseArticle converts raw article lines into a structured playlist. The
// format varies across fifteen years of shows, so parsing is a cascade of
// line patterns. Single-artist shows list bare song titles and inherit
// the show title as artist.
func ParseArticle(raw *RawArticle) models.Playlist {
	descriptionLines, trackLines := splitSections(raw.Lines)

	var tracks []models.Track
	for _, line := range trackLines {
		if track, ok := parseTrackLine(line, raw.Title, len(tracks)); ok {
			tracks = append(tracks, track)
		}
	}

	return models.Playlist{
		Date:         raw.Date,
		Title:        raw.Title,
		Description:  strings.Join(descriptionLines, " "),
		Tracks:       tracks,
		SourceURL:    raw.URL,
		ArchivedDate: time.Now().Format("2006-01-02"),
	}
}

func splitSections(lines []string) (description, trackLines []string) {
	// Album-list shows have no marker; every line is "Artist, Album".
	if isSimpleAlbumList(lines) {
		return nil, lines
	}

	inTracks := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "By ") {
			continue
		}
		if !inTracks && hasTrackMarker(line) {
			inTracks = true
			continue
		}
		if inTracks {
			trackLines = append(trackLines, line)
		} else if !strings.HasPrefix(line, "CREDIT") {
			description = append(description, line)
		}
	}
	return description, trackLines
}

func isSimpleAlbumList(lines []string) bool {
	var sample []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "By ") {
			continue
		}
		sample = append(sample, line)
		if len(sample) == 5 {
			break
		}
	}
	if len(sample) == 0 {
		return false
	}
	for _, line := range sample {
		if !albumListLine.MatchString(line) {
			return false
		}
	}
	return true
}

func hasTrackMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range trackMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func parseTrackLine(line, showTitle string, parsed int) (models.Track, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "CREDIT") || strings.HasPrefix(line, "Credit") || strings.Contains(line, "FLICKR") {
		return models.Track{}, false
	}
	line = numberedPrefix.ReplaceAllString(line, "")

	if m := quotedPattern.FindStringSubmatch(line); m != nil {
		return models.Track{Artist: strings.TrimSpace(m[1]), Song: strings.TrimSpace(m[2])}, true
	}
	if m := dashPattern.FindStringSubmatch(line); m != nil {
		song := fromSuffix.ReplaceAllString(strings.TrimSpace(m[2]), "")
		return models.Track{Artist: strings.TrimSpace(m[1]), Song: strings.TrimSpace(song)}, true
	}
	if m := songFromAlbum.FindStringSubmatch(line); m != nil {
		return models.Track{Artist: showTitle, Song: strings.TrimSpace(m[1])}, true
	}
	if m := bareQuoted.FindStringSubmatch(line); m != nil {
		return models.Track{Artist: showTitle, Song: strings.TrimSpace(m[1])}, true
	}
	// Comma lines early in a show are almost always best-of album lists.
	if m := commaPattern.FindStringSubmatch(line); m != nil && parsed < 20 {
		return models.Track{Artist: strings.TrimSpace(m[1]), Song: strings.TrimSpace(m[2])}, true
	}
	if !strings.HasPrefix(line, "By ") && len(line) > 3 {
		return models.Track{Artist: showTitle, Song: line}, true
	}
	return models.Track{}, false
}
