package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"spindex/archive"
	"spindex/models"
	"spindex/query"
)

func testManager() *Manager {
	playlists := []models.Playlist{
		{
			Date:        "2020-06-13",
			Title:       "Soul Revue",
			Description: "An hour of classic soul.",
			Tracks: []models.Track{
				{Artist: "Aretha Franklin", Song: "Respect"},
				{Artist: "Otis Redding", Song: "Try a Little Tenderness"},
			},
		},
	}
	bios := map[string]models.ArtistBio{
		"Aretha Franklin": {Bio: "The Queen of Soul.", Tags: []string{"soul", "gospel"}},
		"Otis Redding":    {Bio: "Stax great.", Tags: []string{"soul"}},
	}
	return NewManager(archive.Build(playlists, bios, nil))
}

func TestHandleDispatch(t *testing.T) {
	manager := testManager()

	result, err := manager.Handle("get_playlist", []byte(`{"date":"2020-06-13"}`))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	playlist, ok := result.(query.GetPlaylistResult)
	if !ok {
		t.Fatalf("got result type %T", result)
	}
	if !playlist.Found {
		t.Fatal("expected playlist to be found")
	}
	if playlist.Playlist.Title != "Soul Revue" {
		t.Errorf("got title %q", playlist.Playlist.Title)
	}
}

func TestHandleEmptyParams(t *testing.T) {
	manager := testManager()

	for _, name := range []string{"get_statistics", "analyze_themes", "get_curation_summary", "random_discovery"} {
		if _, err := manager.Handle(name, nil); err != nil {
			t.Errorf("%s with empty params: %v", name, err)
		}
	}
}

func TestHandleUnknownTool(t *testing.T) {
	manager := testManager()

	_, err := manager.Handle("summon_artist", []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if _, ok := err.(unknownToolError); !ok {
		t.Errorf("got error type %T, want unknownToolError", err)
	}
}

func TestHandleRejectsBadParams(t *testing.T) {
	manager := testManager()

	tests := []struct {
		name    string
		tool    string
		params  string
		wantErr string
	}{
		{"negative limit", "search_playlists", `{"limit":-1}`, "negative"},
		{"excess limit", "search_artists", `{"limit":500}`, "exceed"},
		{"unknown field", "search_playlists", `{"quarry":"soul"}`, "invalid params"},
		{"missing date", "get_playlist", `{}`, "date is required"},
		{"missing name", "get_artist", `{}`, "name is required"},
		{"missing song", "get_track", `{"artist":"Aretha Franklin"}`, "artist and song are required"},
		{"missing tags", "discover_by_tag", `{}`, "tag is required"},
		{"missing query", "suggest_by_mood_or_era", `{}`, "query is required"},
		{"bad random type", "random_discovery", `{"type":"album"}`, "type must be"},
		{"negative min", "find_artist_connections", `{"artist":"Otis Redding","minCoOccurrences":-2}`, "negative"},
		{"missing year", "generate_year_in_review", `{}`, "year is required"},
		{"malformed json", "get_artist", `{"name":`, "invalid params"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Handle(tt.tool, []byte(tt.params))
			if err == nil {
				t.Fatalf("%s(%s): expected error", tt.tool, tt.params)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func newTestRouter(manager *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/tools", manager.ListToolsHTTP)
	router.POST("/tools/:name", manager.HandleHTTP)
	return router
}

func TestHandleHTTP(t *testing.T) {
	router := newTestRouter(testManager())

	tests := []struct {
		name       string
		tool       string
		body       string
		wantStatus int
	}{
		{"ok", "get_playlist", `{"date":"2020-06-13"}`, http.StatusOK},
		{"bad params", "get_playlist", `{}`, http.StatusBadRequest},
		{"unknown tool", "summon_artist", `{}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tools/"+tt.tool, strings.NewReader(tt.body))
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestListToolsHTTP(t *testing.T) {
	router := newTestRouter(testManager())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}

	var body struct {
		Tools []string `json:"tools"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tools) != len(ToolNames()) {
		t.Errorf("got %d tools, want %d", len(body.Tools), len(ToolNames()))
	}
}
