// Package similarity scores artist relatedness two ways: tag overlap
// (Jaccard) and playlist co-occurrence (weighted composite).
package similarity

import (
	"sort"
	"strings"

	"spindex/archive"
)

// TagSimilarity is the Jaccard index of two case-insensitive tag sets.
// Two empty sets score 0: no shared context yields no similarity.
func TagSimilarity(tags1, tags2 []string) float64 {
	set1 := toSet(tags1)
	set2 := toSet(tags2)
	if len(set1) == 0 && len(set2) == 0 {
		return 0
	}

	intersection := 0
	for tag := range set1 {
		if _, ok := set2[tag]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection

	return float64(intersection) / float64(union)
}

// SharedTags returns the lower-cased tags present in both lists, in
// first-seen order of tags1.
func SharedTags(tags1, tags2 []string) []string {
	set2 := toSet(tags2)
	seen := make(map[string]struct{})
	var shared []string
	for _, tag := range tags1 {
		normalized := strings.ToLower(tag)
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		if _, ok := set2[normalized]; ok {
			shared = append(shared, normalized)
		}
	}
	return shared
}

// ConnectionStrength combines co-occurrence and shared-tag counts into a
// [0,1] score: 0.6 weight on co-occurrences, 0.4 on shared tags, each
// min-max normalized against the current result set's maxima. A zero
// denominator zeroes its term.
func ConnectionStrength(coOccurrences, sharedTagCount, maxCoOccurrences, maxTags int) float64 {
	var normalizedCoOcc, normalizedTags float64
	if maxCoOccurrences > 0 {
		normalizedCoOcc = float64(coOccurrences) / float64(maxCoOccurrences)
	}
	if maxTags > 0 {
		normalizedTags = float64(sharedTagCount) / float64(maxTags)
	}
	return normalizedCoOcc*0.6 + normalizedTags*0.4
}

// SimilarArtist is one tag-similarity result.
type SimilarArtist struct {
	Artist     string
	Similarity float64
	SharedTags []string
}

// FindSimilarArtists ranks every other artist with a non-empty tag list by
// Jaccard similarity against the source artist's tags, keeping strictly
// positive scores.
func FindSimilarArtists(data *archive.Data, artistName string, limit int) []SimilarArtist {
	bio, ok := data.GetArtistBio(artistName)
	if !ok || len(bio.Tags) == 0 {
		return nil
	}

	var results []SimilarArtist
	for otherArtist, otherBio := range data.ArtistBios {
		if otherArtist == artistName || len(otherBio.Tags) == 0 {
			continue
		}
		sim := TagSimilarity(bio.Tags, otherBio.Tags)
		if sim > 0 {
			results = append(results, SimilarArtist{
				Artist:     otherArtist,
				Similarity: sim,
				SharedTags: SharedTags(bio.Tags, otherBio.Tags),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Artist < results[j].Artist
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Connection is one co-occurrence result as seen from the source artist.
type Connection struct {
	Artist             string                `json:"artist"`
	CoOccurrences      int                   `json:"coOccurrences"`
	SharedPlaylists    []archive.PlaylistRef `json:"sharedPlaylists"`
	SharedTags         []string              `json:"sharedTags"`
	ConnectionStrength float64               `json:"connectionStrength"`
}

// FindArtistConnections collects every artist co-appearing with the source
// artist at least minCoOccurrences times, scores each connection against
// the result set's own maxima, and returns the strongest first.
func FindArtistConnections(data *archive.Data, artistName string, minCoOccurrences, limit int) []Connection {
	bio, _ := data.GetArtistBio(artistName)
	artistTags := bio.Tags

	var connections []Connection
	for _, partner := range data.Partners(artistName) {
		if partner.Stats.Count < minCoOccurrences {
			continue
		}
		otherBio, _ := data.GetArtistBio(partner.Artist)
		connections = append(connections, Connection{
			Artist:          partner.Artist,
			CoOccurrences:   partner.Stats.Count,
			SharedPlaylists: partner.Stats.Playlists,
			SharedTags:      SharedTags(artistTags, otherBio.Tags),
		})
	}

	if len(connections) == 0 {
		return nil
	}

	// Normalize against this result set's maxima, floored at 1.
	maxCoOcc, maxTags := 1, 1
	for _, c := range connections {
		if c.CoOccurrences > maxCoOcc {
			maxCoOcc = c.CoOccurrences
		}
		if len(c.SharedTags) > maxTags {
			maxTags = len(c.SharedTags)
		}
	}

	for i := range connections {
		connections[i].ConnectionStrength = ConnectionStrength(
			connections[i].CoOccurrences, len(connections[i].SharedTags), maxCoOcc, maxTags)
	}

	sort.Slice(connections, func(i, j int) bool {
		if connections[i].ConnectionStrength != connections[j].ConnectionStrength {
			return connections[i].ConnectionStrength > connections[j].ConnectionStrength
		}
		return connections[i].Artist < connections[j].Artist
	})

	if limit > 0 && len(connections) > limit {
		connections = connections[:limit]
	}
	return connections
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[strings.ToLower(tag)] = struct{}{}
	}
	return set
}
