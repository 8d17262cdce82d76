package archive

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"spindex/models"
)

// Load reads and parses the three archive datasets and builds the snapshot.
// Any unreadable or malformed file fails the whole load; a partial snapshot
// is never published.
func Load(playlistsPath, biosPath, spotifyPath string) (*Data, error) {
	var playlists []models.Playlist
	if err := readJSON(playlistsPath, &playlists); err != nil {
		return nil, fmt.Errorf("load playlists: %w", err)
	}

	var bios map[string]models.ArtistBio
	if err := readJSON(biosPath, &bios); err != nil {
		return nil, fmt.Errorf("load artist bios: %w", err)
	}

	var spotifyIndex map[string]models.SpotifyTrack
	if err := readJSON(spotifyPath, &spotifyIndex); err != nil {
		return nil, fmt.Errorf("load spotify index: %w", err)
	}

	log.Infof("Loaded %d playlists, %d artist bios, %d spotify tracks",
		len(playlists), len(bios), len(spotifyIndex))

	data := Build(playlists, bios, spotifyIndex)

	log.Infof("Indexed %d artists, %d tags, %d artist pairs",
		len(data.ArtistToPlaylists), len(data.TagToArtists), len(data.Pairs))

	return data, nil
}

func readJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
