package archive

import (
	"sort"
	"strings"

	"spindex/models"
)

// Build derives the snapshot indexes from the raw entities. It is a pure
// function: the same entities always produce the same indexes. Each index
// is built in a single pass and depends only on the raw collections.
func Build(playlists []models.Playlist, bios map[string]models.ArtistBio, spotifyIndex map[string]models.SpotifyTrack) *Data {
	if bios == nil {
		bios = map[string]models.ArtistBio{}
	}
	if spotifyIndex == nil {
		spotifyIndex = map[string]models.SpotifyTrack{}
	}
	return &Data{
		Playlists:         playlists,
		ArtistBios:        bios,
		SpotifyIndex:      spotifyIndex,
		ArtistToPlaylists: buildArtistIndex(playlists),
		TagToArtists:      buildTagIndex(bios),
		DateToPlaylist:    buildDateIndex(playlists),
		AllArtists:        extractAllArtists(playlists),
		AllTags:           extractAllTags(bios),
		Pairs:             buildPairIndex(playlists),
	}
}

func buildArtistIndex(playlists []models.Playlist) map[string][]ArtistAppearance {
	index := make(map[string][]ArtistAppearance)

	for _, playlist := range playlists {
		// Distinct songs per artist, both in first-seen order.
		var artistOrder []string
		artistSongs := make(map[string][]string)

		for _, track := range playlist.Tracks {
			songs, seen := artistSongs[track.Artist]
			if !seen {
				artistOrder = append(artistOrder, track.Artist)
			}
			if !containsString(songs, track.Song) {
				songs = append(songs, track.Song)
			}
			artistSongs[track.Artist] = songs
		}

		for _, artist := range artistOrder {
			index[artist] = append(index[artist], ArtistAppearance{
				Date:  playlist.Date,
				Title: playlist.Title,
				Songs: artistSongs[artist],
			})
		}
	}

	return index
}

func buildTagIndex(bios map[string]models.ArtistBio) map[string]map[string]struct{} {
	index := make(map[string]map[string]struct{})

	for artist, bio := range bios {
		for _, tag := range bio.Tags {
			normalized := strings.ToLower(tag)
			artists, ok := index[normalized]
			if !ok {
				artists = make(map[string]struct{})
				index[normalized] = artists
			}
			artists[artist] = struct{}{}
		}
	}

	return index
}

func buildDateIndex(playlists []models.Playlist) map[string]models.Playlist {
	index := make(map[string]models.Playlist, len(playlists))
	for _, playlist := range playlists {
		index[playlist.Date] = playlist
	}
	return index
}

func buildPairIndex(playlists []models.Playlist) map[string]PairStats {
	pairs := make(map[string]PairStats)

	for _, playlist := range playlists {
		var artists []string
		seen := make(map[string]struct{})
		for _, track := range playlist.Tracks {
			if _, ok := seen[track.Artist]; ok {
				continue
			}
			seen[track.Artist] = struct{}{}
			artists = append(artists, track.Artist)
		}

		for i := 0; i < len(artists); i++ {
			for j := i + 1; j < len(artists); j++ {
				key := PairKey(artists[i], artists[j])
				stats := pairs[key]
				stats.Count++
				stats.Playlists = append(stats.Playlists, PlaylistRef{Date: playlist.Date, Title: playlist.Title})
				pairs[key] = stats
			}
		}
	}

	return pairs
}

func extractAllArtists(playlists []models.Playlist) []string {
	seen := make(map[string]struct{})
	var artists []string
	for _, playlist := range playlists {
		for _, track := range playlist.Tracks {
			if _, ok := seen[track.Artist]; ok {
				continue
			}
			seen[track.Artist] = struct{}{}
			artists = append(artists, track.Artist)
		}
	}
	sort.Strings(artists)
	return artists
}

func extractAllTags(bios map[string]models.ArtistBio) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, bio := range bios {
		for _, tag := range bio.Tags {
			normalized := strings.ToLower(tag)
			if _, ok := seen[normalized]; ok {
				continue
			}
			seen[normalized] = struct{}{}
			tags = append(tags, normalized)
		}
	}
	sort.Strings(tags)
	return tags
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
