package handlers

// handlers is the tool-call boundary: it maps tool names to archive
// operations, decodes parameters, and validates input shape before the
// core operations run.

import (
	"bytes"
	"fmt"
	"net/http"

	sentry "github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"spindex/analyze"
	"spindex/archive"
	"spindex/discover"
	"spindex/query"
	"spindex/report"
	"spindex/sentryhelper"
)

// maxLimit caps every page size a caller can ask for.
const maxLimit = 200

type Manager struct {
	data *archive.Data
}

func NewManager(data *archive.Data) *Manager {
	return &Manager{data: data}
}

// ToolNames lists every dispatchable tool in a stable order.
func ToolNames() []string {
	return []string{
		"search_playlists",
		"get_playlist",
		"search_artists",
		"get_artist",
		"search_tracks",
		"get_track",
		"discover_by_tag",
		"this_week_in_history",
		"similar_artists",
		"random_discovery",
		"find_artist_connections",
		"suggest_by_mood_or_era",
		"get_statistics",
		"analyze_top_artists",
		"analyze_genre_trends",
		"analyze_themes",
		"get_curation_summary",
		"generate_playlist_document",
		"generate_artist_profile",
		"generate_discovery_report",
		"generate_year_in_review",
	}
}

func decode(raw []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func checkLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if limit > maxLimit {
		return fmt.Errorf("limit must not exceed %d", maxLimit)
	}
	return nil
}

// Handle dispatches one tool call. The raw params are decoded into the
// tool's own param struct; a decode failure or out-of-range value is an
// error here, before any core operation runs.
func (manager *Manager) Handle(name string, rawParams []byte) (interface{}, error) {
	if len(rawParams) == 0 {
		rawParams = []byte("{}")
	}

	switch name {
	case "search_playlists":
		var params query.SearchPlaylistsParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return query.SearchPlaylists(manager.data, params), nil
	case "get_playlist":
		var params query.GetPlaylistParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Date == "" {
			return nil, fmt.Errorf("date is required")
		}
		return query.GetPlaylist(manager.data, params), nil
	case "search_artists":
		var params query.SearchArtistsParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return query.SearchArtists(manager.data, params), nil
	case "get_artist":
		var params query.GetArtistParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Name == "" {
			return nil, fmt.Errorf("name is required")
		}
		return query.GetArtist(manager.data, params), nil
	case "search_tracks":
		var params query.SearchTracksParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return query.SearchTracks(manager.data, params), nil
	case "get_track":
		var params query.GetTrackParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Artist == "" || params.Song == "" {
			return nil, fmt.Errorf("artist and song are required")
		}
		return query.GetTrack(manager.data, params), nil
	case "discover_by_tag":
		var params discover.DiscoverByTagParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if len(params.Tags) == 0 {
			return nil, fmt.Errorf("at least one tag is required")
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return discover.DiscoverByTag(manager.data, params), nil
	case "this_week_in_history":
		var params discover.ThisWeekInHistoryParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		return discover.ThisWeekInHistory(manager.data, params), nil
	case "similar_artists":
		var params discover.SimilarArtistsParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Artist == "" {
			return nil, fmt.Errorf("artist is required")
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return discover.SimilarArtists(manager.data, params), nil
	case "random_discovery":
		var params discover.RandomDiscoveryParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Type != "" && params.Type != "playlist" && params.Type != "artist" {
			return nil, fmt.Errorf("type must be \"playlist\" or \"artist\", got %q", params.Type)
		}
		return discover.RandomDiscovery(manager.data, params), nil
	case "find_artist_connections":
		var params discover.FindConnectionsParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Artist == "" {
			return nil, fmt.Errorf("artist is required")
		}
		if params.MinCoOccurrences < 0 {
			return nil, fmt.Errorf("minCoOccurrences must not be negative")
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return discover.FindConnections(manager.data, params), nil
	case "suggest_by_mood_or_era":
		var params discover.SuggestParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Query == "" {
			return nil, fmt.Errorf("query is required")
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return discover.SuggestByMoodOrEra(manager.data, params), nil
	case "get_statistics":
		return analyze.GetStatistics(manager.data), nil
	case "analyze_top_artists":
		var params analyze.TopArtistsParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if err := checkLimit(params.Limit); err != nil {
			return nil, err
		}
		return analyze.AnalyzeTopArtists(manager.data, params), nil
	case "analyze_genre_trends":
		var params analyze.GenreTrendsParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		return analyze.AnalyzeGenreTrends(manager.data, params), nil
	case "analyze_themes":
		return analyze.AnalyzeThemes(manager.data), nil
	case "get_curation_summary":
		return analyze.GetCurationSummary(manager.data), nil
	case "generate_playlist_document":
		var params report.PlaylistDocumentParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Date == "" {
			return nil, fmt.Errorf("date is required")
		}
		return report.GeneratePlaylistDocument(manager.data, params), nil
	case "generate_artist_profile":
		var params report.ArtistProfileParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Artist == "" {
			return nil, fmt.Errorf("artist is required")
		}
		return report.GenerateArtistProfile(manager.data, params), nil
	case "generate_discovery_report":
		var params report.DiscoveryReportParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		return report.GenerateDiscoveryReport(manager.data, params), nil
	case "generate_year_in_review":
		var params report.YearInReviewParams
		if err := decode(rawParams, &params); err != nil {
			return nil, err
		}
		if params.Year == 0 {
			return nil, fmt.Errorf("year is required")
		}
		return report.GenerateYearInReview(manager.data, params), nil
	default:
		return nil, errUnknownTool(name)
	}
}

type unknownToolError string

func errUnknownTool(name string) error { return unknownToolError(name) }

func (e unknownToolError) Error() string { return fmt.Sprintf("unknown tool %q", string(e)) }

// HandleHTTP is the gin endpoint for POST /tools/:name.
func (manager *Manager) HandleHTTP(c *gin.Context) {
	name := c.Param("name")
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body: " + err.Error()})
		return
	}

	ctx, transaction := sentryhelper.StartToolTransaction(c.Request.Context(), name)
	defer transaction.Finish()

	defer func() {
		if r := recover(); r != nil {
			transaction.Status = sentry.SpanStatusInternalError
			sentryhelper.ReportPanic(ctx, r)
			log.Errorf("panic handling tool %s: %v", name, r)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
	}()

	sentryhelper.AddBreadcrumb(ctx, &sentry.Breadcrumb{
		Category: "tool",
		Message:  name,
		Level:    sentry.LevelInfo,
	})

	log.WithFields(log.Fields{"tool": name}).Debug("tool call")
	result, err := manager.Handle(name, body)
	if err != nil {
		status := http.StatusBadRequest
		transaction.Status = sentry.SpanStatusInvalidArgument
		if _, unknown := err.(unknownToolError); unknown {
			status = http.StatusNotFound
			transaction.Status = sentry.SpanStatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	transaction.Status = sentry.SpanStatusOK
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ListToolsHTTP is the gin endpoint for GET /tools.
func (manager *Manager) ListToolsHTTP(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": ToolNames()})
}
