// Command indexer runs the offline collection pipeline that produces the
// three archive datasets: playlist scraping, streaming-index matching, and
// artist bio enrichment. Each stage is incremental and merges into the
// existing dataset file, so reruns only fetch what is missing.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"spindex/config"
	"spindex/lastfm"
	"spindex/models"
	"spindex/scraper"
	"spindex/sentry"
	"spindex/spotify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	config.NewConfig()
	sentry.Init()

	app := &cli.App{
		Name:  "indexer",
		Usage: "Collect and enrich the playlist archive datasets.",
		Commands: []*cli.Command{
			{
				Name:  "discover",
				Usage: "Scrape the show's article listing for new playlists",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "tag listing page to walk"},
					&cli.IntFlag{Name: "max-pages", Value: 50, Usage: "maximum listing pages to fetch"},
				},
				Action: func(c *cli.Context) error {
					listURL := c.String("url")
					if listURL == "" {
						listURL = config.Config.Scraper.BaseURL + "/tags/cyprus-avenue"
					}
					return runDiscover(c.Context, listURL, c.Int("max-pages"))
				},
			},
			{
				Name:  "spotify",
				Usage: "Match unindexed archive tracks against the Spotify catalog",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "stop after this many lookups (0 = no limit)"},
				},
				Action: func(c *cli.Context) error {
					return runSpotify(c.Context, c.Int("limit"))
				},
			},
			{
				Name:  "bios",
				Usage: "Fetch Last.fm bios and Spotify metadata for archive artists",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "stop after this many lookups (0 = no limit)"},
					&cli.BoolFlag{Name: "refresh", Usage: "refetch artists that already have a bio"},
				},
				Action: func(c *cli.Context) error {
					return runBios(c.Context, c.Int("limit"), c.Bool("refresh"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		sentry.ReportError(err)
		log.Fatal(err)
	}
}

func delay() {
	time.Sleep(time.Duration(config.Config.Scraper.DelayMs) * time.Millisecond)
}

// runDiscover walks the show's tag listing pages, fetches every article not
// already archived, and parses each into a playlist.
func runDiscover(ctx context.Context, listURL string, maxPages int) error {
	playlists, err := loadPlaylists()
	if err != nil {
		return err
	}
	byDate := make(map[string]models.Playlist, len(playlists))
	for _, p := range playlists {
		byDate[p.Date] = p
	}

	added := 0
	for page := 1; page <= maxPages; page++ {
		pageURL := listURL
		if page > 1 {
			pageURL = fmt.Sprintf("%s?page=%d", listURL, page)
		}
		articles, err := scraper.DiscoverArticles(ctx, pageURL)
		if err != nil {
			return fmt.Errorf("discover page %d: %w", page, err)
		}
		if len(articles) == 0 {
			break
		}

		newOnPage := 0
		for _, article := range articles {
			if _, ok := byDate[article.Date]; ok {
				continue
			}
			delay()
			raw, err := scraper.FetchArticle(ctx, article)
			if err != nil {
				log.Errorf("Error fetching %s: %v", article.URL, err)
				continue
			}
			playlist := scraper.ParseArticle(raw)
			if len(playlist.Tracks) == 0 {
				log.Warnf("No tracks parsed from %s, skipping", article.URL)
				continue
			}
			byDate[playlist.Date] = playlist
			newOnPage++
			log.Infof("Archived %s: %s (%d tracks)", playlist.Date, playlist.Title, len(playlist.Tracks))
		}
		added += newOnPage
		if newOnPage == 0 && page > 1 {
			break
		}
		delay()
	}

	merged := make([]models.Playlist, 0, len(byDate))
	for _, p := range byDate {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })

	if err := writeJSON(config.Config.Archive.PlaylistsPath, merged); err != nil {
		return err
	}
	log.Infof("Done: %d new playlists, %d total", added, len(merged))
	return nil
}

// runSpotify matches every archive track missing from the streaming index
// against the Spotify catalog. Manual entries are never overwritten.
func runSpotify(ctx context.Context, limit int) error {
	if err := spotify.NewSpotifyClient(); err != nil {
		return err
	}

	playlists, err := loadPlaylists()
	if err != nil {
		return err
	}
	index := map[string]models.SpotifyTrack{}
	if err := readJSONIfExists(config.Config.Archive.SpotifyIndexPath, &index); err != nil {
		return err
	}

	type pending struct{ artist, song string }
	seen := map[string]struct{}{}
	var missing []pending
	for _, p := range playlists {
		for _, t := range p.Tracks {
			key := models.TrackKey(t.Artist, t.Song)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := index[key]; !ok {
				missing = append(missing, pending{t.Artist, t.Song})
			}
		}
	}
	log.Infof("%d unique tracks, %d already indexed, %d to look up",
		len(seen), len(seen)-len(missing), len(missing))

	matched, misses := 0, 0
	for i, track := range missing {
		if limit > 0 && i >= limit {
			break
		}
		result, err := spotify.SearchTrack(ctx, track.artist, track.song)
		if err != nil {
			log.Errorf("Error searching %s - %s: %v", track.artist, track.song, err)
			delay()
			continue
		}
		if result == nil {
			misses++
			delay()
			continue
		}
		index[models.TrackKey(track.artist, track.song)] = *result
		matched++
		delay()
	}

	if err := writeJSON(config.Config.Archive.SpotifyIndexPath, index); err != nil {
		return err
	}
	log.Infof("Done: %d matched, %d not found, %d total indexed", matched, misses, len(index))
	return nil
}

// runBios fetches a Last.fm bio for every archive artist without one, then
// enriches each with Spotify artist metadata when credentials are set.
func runBios(ctx context.Context, limit int, refresh bool) error {
	lastfmClient, err := lastfm.NewClient()
	if err != nil {
		return err
	}
	spotifyEnabled := config.Config.Spotify.Enabled
	if spotifyEnabled {
		if err := spotify.NewSpotifyClient(); err != nil {
			return err
		}
	}

	playlists, err := loadPlaylists()
	if err != nil {
		return err
	}
	bios := map[string]models.ArtistBio{}
	if err := readJSONIfExists(config.Config.Archive.ArtistBiosPath, &bios); err != nil {
		return err
	}

	artistSet := map[string]struct{}{}
	for _, p := range playlists {
		for _, t := range p.Tracks {
			artistSet[t.Artist] = struct{}{}
		}
	}
	var artists []string
	for name := range artistSet {
		if _, ok := bios[name]; ok && !refresh {
			continue
		}
		artists = append(artists, name)
	}
	sort.Strings(artists)
	log.Infof("%d unique artists, %d to fetch", len(artistSet), len(artists))

	fetched := 0
	for i, name := range artists {
		if limit > 0 && i >= limit {
			break
		}
		bio, err := lastfmClient.GetArtistBio(name)
		if err != nil {
			if err != lastfm.ErrNotFound {
				log.Errorf("Error fetching bio for %s: %v", name, err)
			}
			bio = &models.ArtistBio{}
		}
		delay()

		if spotifyEnabled {
			enrichFromSpotify(ctx, name, bio)
			delay()
		}

		bio.Tags = mergeTags(bio.LastfmTags, bio.Genres)
		bios[name] = *bio
		fetched++
	}

	if err := writeJSON(config.Config.Archive.ArtistBiosPath, bios); err != nil {
		return err
	}
	log.Infof("Done: %d fetched, %d total bios", fetched, len(bios))
	return nil
}

func enrichFromSpotify(ctx context.Context, name string, bio *models.ArtistBio) {
	info, err := spotify.SearchArtist(ctx, name)
	if err != nil {
		log.Errorf("Error searching Spotify for %s: %v", name, err)
		return
	}
	if info == nil {
		return
	}
	bio.SpotifyID = info.ID
	bio.SpotifyURL = info.URL
	popularity := info.Popularity
	bio.Popularity = &popularity
	bio.Followers = info.Followers
	bio.Genres = info.Genres
	if bio.Image == "" {
		bio.Image = info.Image
	}
}

// mergeTags combines Last.fm tags with Spotify genres, Last.fm first, each
// label once. Both sources already use lowercase display labels.
func mergeTags(lastfmTags, genres []string) []string {
	seen := map[string]struct{}{}
	var merged []string
	for _, group := range [][]string{lastfmTags, genres} {
		for _, tag := range group {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, tag)
		}
	}
	return merged
}

func loadPlaylists() ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := readJSONIfExists(config.Config.Archive.PlaylistsPath, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func readJSONIfExists(path string, v any) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
