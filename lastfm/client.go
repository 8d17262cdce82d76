// Package lastfm fetches artist biographies and tags for the bio dataset.
package lastfm

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	lastfmapi "github.com/shkh/lastfm-go/lastfm"

	"spindex/config"
	"spindex/models"
)

// ErrNotFound is returned when Last.fm has no page for the artist.
var ErrNotFound = errors.New("artist not found on last.fm")

// placeholder hash in image URLs Last.fm serves when it has no real image
const placeholderHash = "2a96cbd8b46e442fc41c2b86b821562f"

const maxTags = 10

type Client struct {
	api *lastfmapi.Api
}

func NewClient() (*Client, error) {
	if !config.Config.Lastfm.Enabled {
		return nil, errors.New("LASTFM_API_KEY must be set")
	}
	return &Client{api: lastfmapi.New(config.Config.Lastfm.APIKey, "")}, nil
}

var footerPattern = regexp.MustCompile(`(?i)<a href="https://www\.last\.fm/music/[^"]+">Read more on Last\.fm</a>\.\s*`)

// GetArtistBio fetches artist.getinfo and shapes it into the archive's bio
// record: cleaned bio text, top 10 tags, and the best non-placeholder image.
func (c *Client) GetArtistBio(name string) (*models.ArtistBio, error) {
	info, err := c.api.Artist.GetInfo(lastfmapi.P{"artist": name, "autocorrect": 1})
	if err != nil {
		log.Warnf("last.fm lookup failed for %s: %v", name, err)
		sentry.CaptureException(err)
		return nil, err
	}
	if info.Name == "" {
		return nil, ErrNotFound
	}
	return shapeBio(info), nil
}

// shapeBio maps an artist.getinfo response onto the archive's bio record.
func shapeBio(info lastfmapi.ArtistGetInfo) *models.ArtistBio {
	bio := &models.ArtistBio{
		Bio:        cleanFooter(info.Bio.Content),
		BioSummary: cleanFooter(info.Bio.Summary),
		URL:        info.Url,
		Listeners:  atoiSafe(info.Stats.Listeners),
		Playcount:  atoiSafe(info.Stats.Plays),
	}

	for _, tag := range info.Tags {
		bio.Tags = append(bio.Tags, tag.Name)
		if len(bio.Tags) == maxTags {
			break
		}
	}
	bio.LastfmTags = bio.Tags

	images := make([]apiImage, 0, len(info.Images))
	for _, img := range info.Images {
		images = append(images, apiImage{Size: img.Size, Url: img.Url})
	}
	bio.Image = bestImage(images)
	return bio
}

func cleanFooter(text string) string {
	return strings.TrimSpace(footerPattern.ReplaceAllString(text, ""))
}

func atoiSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

type apiImage struct {
	Size string
	Url  string
}

// bestImage prefers the larger formats and rejects Last.fm's "no image"
// placeholder outright.
func bestImage(images []apiImage) string {
	for _, size := range []string{"extralarge", "large", "mega", "medium", "small"} {
		for _, img := range images {
			if img.Size != size || img.Url == "" {
				continue
			}
			if strings.Contains(img.Url, placeholderHash) {
				return ""
			}
			return img.Url
		}
	}
	for _, img := range images {
		if img.Url != "" && !strings.Contains(img.Url, placeholderHash) {
			return img.Url
		}
	}
	return ""
}
