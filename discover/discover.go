// Package discover implements the exploratory operations: tag discovery,
// temporal lookback, similarity, random sampling, connection traversal and
// mood/era suggestion.
package discover

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"spindex/archive"
	"spindex/fuzzy"
	"spindex/models"
	"spindex/moods"
	"spindex/similarity"
)

const (
	defaultTagLimit        = 30
	defaultSimilarLimit    = 20
	defaultConnectionLimit = 20
	defaultSuggestionLimit = 10
)

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// DiscoverByTagParams selects artists by bio tag membership.
type DiscoverByTagParams struct {
	Tags     []string `json:"tags"`
	MatchAll bool     `json:"matchAll"`
	Limit    int      `json:"limit"`
}

// TagArtist is one artist hit in a tag discovery result.
type TagArtist struct {
	Name         string   `json:"name"`
	MatchingTags []string `json:"matchingTags"`
	AllTags      []string `json:"allTags"`
	TrackCount   int      `json:"trackCount"`
	Popularity   *int     `json:"popularity,omitempty"`
	Image        string   `json:"image,omitempty"`
	SpotifyURL   string   `json:"spotifyUrl,omitempty"`
}

// DiscoverByTagResult lists matching artists, most tag matches first.
type DiscoverByTagResult struct {
	Tags         []string    `json:"tags"`
	MatchType    string      `json:"matchType"`
	TotalArtists int         `json:"totalArtists"`
	Artists      []TagArtist `json:"artists"`
}

// DiscoverByTag matches artists whose bio tags intersect the query tags,
// either fully (MatchAll) or partially, sorted by matching-tag count then
// playlist appearance count.
func DiscoverByTag(data *archive.Data, params DiscoverByTagParams) DiscoverByTagResult {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTagLimit
	}

	normalizedTags := make([]string, 0, len(params.Tags))
	for _, tag := range params.Tags {
		normalizedTags = append(normalizedTags, strings.ToLower(tag))
	}

	matchType := "any"
	if params.MatchAll {
		matchType = "all"
	}

	// Bios are scanned in sorted-name order so ties rank deterministically.
	names := make([]string, 0, len(data.ArtistBios))
	for name := range data.ArtistBios {
		names = append(names, name)
	}
	sort.Strings(names)

	var matches []TagArtist
	for _, name := range names {
		bio := data.ArtistBios[name]
		artistTags := make(map[string]struct{}, len(bio.Tags))
		for _, tag := range bio.Tags {
			artistTags[strings.ToLower(tag)] = struct{}{}
		}

		var matching []string
		for _, tag := range normalizedTags {
			if _, ok := artistTags[tag]; ok {
				matching = append(matching, tag)
			}
		}

		if params.MatchAll && len(matching) != len(normalizedTags) {
			continue
		}
		if len(matching) == 0 {
			continue
		}

		matches = append(matches, TagArtist{
			Name:         name,
			MatchingTags: matching,
			AllTags:      bio.Tags,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if len(matches[i].MatchingTags) != len(matches[j].MatchingTags) {
			return len(matches[i].MatchingTags) > len(matches[j].MatchingTags)
		}
		return appearanceCount(data, matches[i].Name) > appearanceCount(data, matches[j].Name)
	})

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	for i := range matches {
		bio := data.ArtistBios[matches[i].Name]
		matches[i].TrackCount = trackCount(data, matches[i].Name)
		matches[i].Popularity = bio.Popularity
		matches[i].Image = bio.Image
		matches[i].SpotifyURL = bio.SpotifyURL
	}

	return DiscoverByTagResult{
		Tags:         params.Tags,
		MatchType:    matchType,
		TotalArtists: total,
		Artists:      matches,
	}
}

func appearanceCount(data *archive.Data, artist string) int {
	return len(data.ArtistToPlaylists[artist])
}

func trackCount(data *archive.Data, artist string) int {
	count := 0
	for _, a := range data.ArtistToPlaylists[artist] {
		count += len(a.Songs)
	}
	return count
}

// ThisWeekInHistoryParams sets the reference date (today when empty).
type ThisWeekInHistoryParams struct {
	Date string `json:"date"`
}

// HistoryPlaylist is one past-year playlist near the reference week.
type HistoryPlaylist struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TrackCount  int    `json:"trackCount"`
	YearsAgo    int    `json:"yearsAgo"`
}

// ThisWeekInHistoryResult lists prior-year playlists, most recent first.
type ThisWeekInHistoryResult struct {
	ReferenceDate string            `json:"referenceDate"`
	Playlists     []HistoryPlaylist `json:"playlists"`
}

// ThisWeekInHistory finds playlists from prior years whose month/day falls
// within 3 days of the reference date's, with a 31-day boundary check for
// the December/January wrap. Other month boundaries are intentionally not
// special-cased; a show airing weekly makes the window forgiving enough.
func ThisWeekInHistory(data *archive.Data, params ThisWeekInHistoryParams) ThisWeekInHistoryResult {
	ref := time.Now()
	if params.Date != "" {
		if parsed, err := time.Parse("2006-01-02", params.Date); err == nil {
			ref = parsed
		}
	}
	refYear, refMonth, refDay := ref.Date()

	var matching []HistoryPlaylist
	for _, playlist := range data.Playlists {
		parsed, err := time.Parse("2006-01-02", playlist.Date)
		if err != nil {
			continue
		}
		year, month, day := parsed.Date()
		yearsAgo := refYear - year
		if yearsAgo <= 0 {
			continue
		}

		withinWindow := false
		if month == refMonth && abs(day-refDay) <= 3 {
			withinWindow = true
		}
		// Dec/Jan wrap: Jan 2 should still see Dec 30 shows.
		if refMonth == time.January && month == time.December && (31-day)+refDay <= 3 {
			withinWindow = true
		}
		if refMonth == time.December && month == time.January && (31-refDay)+day <= 3 {
			withinWindow = true
		}
		if !withinWindow {
			continue
		}

		matching = append(matching, HistoryPlaylist{
			Date:        playlist.Date,
			Title:       playlist.Title,
			Description: truncate(playlist.Description, 200),
			TrackCount:  len(playlist.Tracks),
			YearsAgo:    yearsAgo,
		})
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].YearsAgo < matching[j].YearsAgo
	})

	return ThisWeekInHistoryResult{
		ReferenceDate: ref.Format("2006-01-02"),
		Playlists:     matching,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// SimilarArtistsParams resolves an artist and ranks its tag neighbors.
type SimilarArtistsParams struct {
	Artist string `json:"artist"`
	Limit  int    `json:"limit"`
}

// SimilarArtist is one similarity hit with display metadata.
type SimilarArtist struct {
	Artist     string   `json:"artist"`
	Similarity float64  `json:"similarity"`
	SharedTags []string `json:"sharedTags"`
	Popularity *int     `json:"popularity,omitempty"`
	Image      string   `json:"image,omitempty"`
	SpotifyURL string   `json:"spotifyUrl,omitempty"`
}

// SimilarArtistsResult reports found/not-found with suggestions on a miss.
type SimilarArtistsResult struct {
	Found        bool            `json:"found"`
	SourceArtist string          `json:"sourceArtist,omitempty"`
	SourceTags   []string        `json:"sourceTags,omitempty"`
	Similar      []SimilarArtist `json:"similar,omitempty"`
	Suggestions  []string        `json:"suggestions,omitempty"`
}

// SimilarArtists resolves the artist name (fuzzily against artists that
// have bios) and ranks every other tagged artist by Jaccard similarity.
func SimilarArtists(data *archive.Data, params SimilarArtistsParams) SimilarArtistsResult {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	name := params.Artist
	bio, ok := data.GetArtistBio(name)
	if !ok {
		match := fuzzy.FindBestMatch(name, bioNames(data))
		if !match.Found {
			return SimilarArtistsResult{Suggestions: match.Suggestions}
		}
		name = match.Match
		bio, _ = data.GetArtistBio(name)
	}

	similar := similarity.FindSimilarArtists(data, name, limit)
	results := make([]SimilarArtist, 0, len(similar))
	for _, s := range similar {
		sBio, _ := data.GetArtistBio(s.Artist)
		results = append(results, SimilarArtist{
			Artist:     s.Artist,
			Similarity: round2(s.Similarity),
			SharedTags: s.SharedTags,
			Popularity: sBio.Popularity,
			Image:      sBio.Image,
			SpotifyURL: sBio.SpotifyURL,
		})
	}

	return SimilarArtistsResult{
		Found:        true,
		SourceArtist: name,
		SourceTags:   bio.Tags,
		Similar:      results,
	}
}

func bioNames(data *archive.Data) []string {
	names := make([]string, 0, len(data.ArtistBios))
	for name := range data.ArtistBios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RandomDiscoveryParams selects what kind of entity to sample.
type RandomDiscoveryParams struct {
	Type string `json:"type"`
}

// RandomPlaylist is the playlist shape of a random pick.
type RandomPlaylist struct {
	Date          string   `json:"date"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TrackCount    int      `json:"trackCount"`
	SampleArtists []string `json:"sampleArtists"`
}

// RandomArtist is the artist shape of a random pick.
type RandomArtist struct {
	Name       string   `json:"name"`
	Bio        string   `json:"bio,omitempty"`
	Tags       []string `json:"tags"`
	TrackCount int      `json:"trackCount"`
	Image      string   `json:"image,omitempty"`
	SpotifyURL string   `json:"spotifyUrl,omitempty"`
}

// RandomDiscoveryResult holds exactly one of Playlist or Artist.
type RandomDiscoveryResult struct {
	Type     string          `json:"type"`
	Playlist *RandomPlaylist `json:"playlist,omitempty"`
	Artist   *RandomArtist   `json:"artist,omitempty"`
}

// RandomDiscovery picks one playlist or one artist uniformly at random.
func RandomDiscovery(data *archive.Data, params RandomDiscoveryParams) RandomDiscoveryResult {
	if params.Type == "artist" {
		if len(data.AllArtists) == 0 {
			return RandomDiscoveryResult{Type: "artist"}
		}
		name := data.AllArtists[rand.Intn(len(data.AllArtists))]
		bio, _ := data.GetArtistBio(name)
		return RandomDiscoveryResult{
			Type: "artist",
			Artist: &RandomArtist{
				Name:       name,
				Bio:        strings.TrimSpace(bio.BioSummary),
				Tags:       bio.Tags,
				TrackCount: trackCount(data, name),
				Image:      bio.Image,
				SpotifyURL: bio.SpotifyURL,
			},
		}
	}

	if len(data.Playlists) == 0 {
		return RandomDiscoveryResult{Type: "playlist"}
	}
	playlist := data.Playlists[rand.Intn(len(data.Playlists))]
	return RandomDiscoveryResult{
		Type: "playlist",
		Playlist: &RandomPlaylist{
			Date:          playlist.Date,
			Title:         playlist.Title,
			Description:   truncate(playlist.Description, 300),
			TrackCount:    len(playlist.Tracks),
			SampleArtists: sampleArtistsOf(playlist.Tracks),
		},
	}
}

// FindConnectionsParams resolves an artist and traverses its co-occurrence
// neighborhood.
type FindConnectionsParams struct {
	Artist           string `json:"artist"`
	MinCoOccurrences int    `json:"minCoOccurrences"`
	Limit            int    `json:"limit"`
}

// ConnectedArtist is one connection hit with display metadata.
type ConnectedArtist struct {
	Artist             string                `json:"artist"`
	CoOccurrences      int                   `json:"coOccurrences"`
	SharedPlaylists    []archive.PlaylistRef `json:"sharedPlaylists"`
	SharedTags         []string              `json:"sharedTags"`
	ConnectionStrength float64               `json:"connectionStrength"`
	Image              string                `json:"image,omitempty"`
	SpotifyURL         string                `json:"spotifyUrl,omitempty"`
}

// FindConnectionsResult reports found/not-found with suggestions on a miss.
type FindConnectionsResult struct {
	Found            bool              `json:"found"`
	SourceArtist     string            `json:"sourceArtist,omitempty"`
	SourceTags       []string          `json:"sourceTags,omitempty"`
	TotalConnections int               `json:"totalConnections"`
	Connections      []ConnectedArtist `json:"connections,omitempty"`
	Suggestions      []string          `json:"suggestions,omitempty"`
}

// FindConnections resolves the artist name and returns its strongest
// co-occurrence partners.
func FindConnections(data *archive.Data, params FindConnectionsParams) FindConnectionsResult {
	minCo := params.MinCoOccurrences
	if minCo <= 0 {
		minCo = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultConnectionLimit
	}

	name := params.Artist
	if _, ok := data.ArtistToPlaylists[name]; !ok {
		match := fuzzy.FindBestMatch(name, data.AllArtists)
		if !match.Found {
			return FindConnectionsResult{Suggestions: match.Suggestions}
		}
		name = match.Match
	}
	bio, _ := data.GetArtistBio(name)

	connections := similarity.FindArtistConnections(data, name, minCo, limit)
	results := make([]ConnectedArtist, 0, len(connections))
	for _, c := range connections {
		cBio, _ := data.GetArtistBio(c.Artist)
		results = append(results, ConnectedArtist{
			Artist:             c.Artist,
			CoOccurrences:      c.CoOccurrences,
			SharedPlaylists:    c.SharedPlaylists,
			SharedTags:         c.SharedTags,
			ConnectionStrength: round2(c.ConnectionStrength),
			Image:              cBio.Image,
			SpotifyURL:         cBio.SpotifyURL,
		})
	}

	return FindConnectionsResult{
		Found:            true,
		SourceArtist:     name,
		SourceTags:       bio.Tags,
		TotalConnections: len(results),
		Connections:      results,
	}
}

// SuggestParams resolves a descriptive query to playlists.
type SuggestParams struct {
	Query     string          `json:"query"`
	QueryType moods.QueryType `json:"queryType"`
	Limit     int             `json:"limit"`
}

// Interpretation explains how the query was understood.
type Interpretation struct {
	Type        moods.QueryType `json:"type"`
	MappedTags  []string        `json:"mappedTags"`
	Description string          `json:"description,omitempty"`
}

// PlaylistSuggestion is one scored playlist hit.
type PlaylistSuggestion struct {
	Date          string   `json:"date"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TrackCount    int      `json:"trackCount"`
	MatchScore    float64  `json:"matchScore"`
	MatchReason   string   `json:"matchReason"`
	SampleArtists []string `json:"sampleArtists"`
	DominantTags  []string `json:"dominantTags"`
}

// SuggestResult lists scored playlist suggestions, best first.
type SuggestResult struct {
	Query         string               `json:"query"`
	InterpretedAs Interpretation       `json:"interpretedAs"`
	TotalMatches  int                  `json:"totalMatches"`
	Suggestions   []PlaylistSuggestion `json:"suggestions"`
}

// SuggestByMoodOrEra maps a descriptive query to tags via the vocabulary,
// scores every playlist by the share of its tracks whose artist tags
// overlap those tags (+0.2 when the title itself mentions one), and
// returns the best matches with the dominant tags seen among them.
func SuggestByMoodOrEra(data *archive.Data, params SuggestParams) SuggestResult {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	queryType := params.QueryType
	if queryType == "" {
		queryType = moods.QueryAuto
	}
	detected := queryType
	if detected == moods.QueryAuto {
		detected = moods.DetectQueryType(params.Query)
	}
	mappedTags := moods.TagsForQuery(params.Query, queryType)

	var description string
	if detected == moods.QueryEra {
		description = moods.EraDescription(params.Query)
	}

	if len(mappedTags) == 0 {
		return SuggestResult{
			Query:         params.Query,
			InterpretedAs: Interpretation{Type: moods.QueryUnknown, MappedTags: []string{}},
			Suggestions:   []PlaylistSuggestion{},
		}
	}

	normalizedTags := make([]string, 0, len(mappedTags))
	for _, tag := range mappedTags {
		normalizedTags = append(normalizedTags, strings.ToLower(tag))
	}

	var scored []PlaylistSuggestion
	for _, playlist := range data.Playlists {
		if len(playlist.Tracks) == 0 {
			continue
		}

		matchingTracks := 0
		tagCounts := make(map[string]int)
		for _, track := range playlist.Tracks {
			bio, _ := data.GetArtistBio(track.Artist)
			artistTags := make([]string, 0, len(bio.Tags))
			for _, tag := range bio.Tags {
				artistTags = append(artistTags, strings.ToLower(tag))
			}

			matched := false
			for _, queryTag := range normalizedTags {
				for _, artistTag := range artistTags {
					if strings.Contains(artistTag, queryTag) || strings.Contains(queryTag, artistTag) {
						matched = true
						break
					}
				}
				if matched {
					break
				}
			}
			if matched {
				matchingTracks++
				for _, tag := range artistTags {
					tagCounts[tag]++
				}
			}
		}

		if matchingTracks == 0 {
			continue
		}

		score := float64(matchingTracks) / float64(len(playlist.Tracks))
		titleBoost := 0.0
		titleLower := strings.ToLower(playlist.Title)
		for _, tag := range normalizedTags {
			if strings.Contains(titleLower, tag) {
				titleBoost = 0.2
				break
			}
		}

		reason := fmt.Sprintf("%d of %d tracks match", matchingTracks, len(playlist.Tracks))
		if titleBoost > 0 {
			reason += "; title matches query"
		}

		scored = append(scored, PlaylistSuggestion{
			Date:          playlist.Date,
			Title:         playlist.Title,
			Description:   truncate(playlist.Description, 200),
			TrackCount:    len(playlist.Tracks),
			MatchScore:    round2(score + titleBoost),
			MatchReason:   reason,
			SampleArtists: sampleArtistsOf(playlist.Tracks),
			DominantTags:  dominantTags(tagCounts, 5),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	total := len(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return SuggestResult{
		Query:         params.Query,
		InterpretedAs: Interpretation{Type: detected, MappedTags: mappedTags, Description: description},
		TotalMatches:  total,
		Suggestions:   scored,
	}
}

func sampleArtistsOf(tracks []models.Track) []string {
	sample := make([]string, 0, 5)
	seen := make(map[string]struct{})
	for i, track := range tracks {
		if i == 5 {
			break
		}
		if _, dup := seen[track.Artist]; dup {
			continue
		}
		seen[track.Artist] = struct{}{}
		sample = append(sample, track.Artist)
	}
	return sample
}

// dominantTags returns the most frequent tags, count desc, name asc on ties.
func dominantTags(counts map[string]int, n int) []string {
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}
