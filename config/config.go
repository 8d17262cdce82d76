package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Archive ArchiveConfig
	Lastfm  LastfmConfig
	Spotify SpotifyConfig
	Scraper ScraperConfig
	Options Options
}

type ArchiveConfig struct {
	PlaylistsPath    string
	ArtistBiosPath   string
	SpotifyIndexPath string
	MoodMappingsPath string
}

type LastfmConfig struct {
	APIKey  string
	Enabled bool
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Enabled      bool
	SearchLimit  int
}

type ScraperConfig struct {
	BaseURL   string
	DelayMs   int
	UserAgent string
}

type Options struct {
	Port     string
	LogLevel string
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Archive: ArchiveConfig{
			PlaylistsPath:    getenvDefault("PLAYLISTS_PATH", "data/playlists.json"),
			ArtistBiosPath:   getenvDefault("ARTIST_BIOS_PATH", "data/artist-bios.json"),
			SpotifyIndexPath: getenvDefault("SPOTIFY_INDEX_PATH", "data/spotify-track-index.json"),
			MoodMappingsPath: os.Getenv("MOOD_MAPPINGS_PATH"),
		},
		Lastfm: LastfmConfig{
			APIKey:  os.Getenv("LASTFM_API_KEY"),
			Enabled: os.Getenv("LASTFM_API_KEY") != "",
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			Enabled:      os.Getenv("SPOTIFY_ENABLED") == "true",
			SearchLimit:  getSearchLimit(),
		},
		Scraper: ScraperConfig{
			BaseURL:   getenvDefault("SCRAPER_BASE_URL", "https://www.kcur.org"),
			DelayMs:   getScraperDelay(),
			UserAgent: getenvDefault("SCRAPER_USER_AGENT", "spindex-collector/1.0"),
		},
		Options: Options{
			Port:     getenvDefault("PORT", "8080"),
			LogLevel: getenvDefault("LOG_LEVEL", "info"),
		},
	}

	Config = config
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getSearchLimit() int {
	limitStr := os.Getenv("SPOTIFY_SEARCH_LIMIT")
	if limitStr == "" {
		return 5
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 5
	}
	if limit > 50 {
		return 50 // Cap at 50 (Spotify API max per page)
	}
	return limit
}

func getScraperDelay() int {
	delayStr := os.Getenv("SCRAPER_DELAY_MS")
	if delayStr == "" {
		return 500
	}
	delay, err := strconv.Atoi(delayStr)
	if err != nil || delay < 0 {
		return 500
	}
	return delay
}
