// Package moods maps descriptive query words ("soulful", "60s", "rainy
// day") to archive genre tags via fixed vocabulary tables. The built-in
// tables can be replaced wholesale from a JSON mappings file so the
// vocabulary can grow without a rebuild.
package moods

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// QueryType classifies what kind of descriptive query a string is.
type QueryType string

const (
	QueryMood    QueryType = "mood"
	QueryEra     QueryType = "era"
	QueryUnknown QueryType = "unknown"
	// QueryAuto asks the vocabulary to classify the query itself.
	QueryAuto QueryType = "auto"
)

// Mood maps one mood keyword to its tag list.
type Mood struct {
	Keyword string   `json:"keyword"`
	Tags    []string `json:"tags"`
}

// Era maps one era keyword to a description and tag list.
type Era struct {
	Keyword     string   `json:"keyword"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Tables are kept as ordered slices: the partial-match fallback scan takes
// the first hit, so table order is part of the contract.
var moodTable = defaultMoods()
var eraTable = defaultEras()
var eraKeywords = defaultEraKeywords()

// DetectQueryType classifies a descriptive query: era keyword substrings
// first, then era table keys, then mood table keys, else unknown.
func DetectQueryType(query string) QueryType {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, keyword := range eraKeywords {
		if strings.Contains(q, keyword) {
			return QueryEra
		}
	}
	if _, ok := lookupEra(q); ok {
		return QueryEra
	}
	if _, ok := lookupMood(q); ok {
		return QueryMood
	}
	return QueryUnknown
}

// TagsForQuery resolves a descriptive query to a tag list. Exact key match
// wins; otherwise the first table entry whose keyword contains the query
// (or vice versa) in table order. Empty when nothing matches.
func TagsForQuery(query string, queryType QueryType) []string {
	q := strings.ToLower(strings.TrimSpace(query))

	detected := queryType
	if detected == QueryAuto || detected == "" {
		detected = DetectQueryType(q)
	}

	if detected == QueryEra {
		if era, ok := lookupEra(q); ok {
			return era.Tags
		}
		for _, era := range eraTable {
			if strings.Contains(q, era.Keyword) || strings.Contains(era.Keyword, q) {
				return era.Tags
			}
		}
	}

	if detected == QueryMood || detected == QueryUnknown {
		if mood, ok := lookupMood(q); ok {
			return mood.Tags
		}
		for _, mood := range moodTable {
			if strings.Contains(q, mood.Keyword) || strings.Contains(mood.Keyword, q) {
				return mood.Tags
			}
		}
	}

	return nil
}

// EraDescription returns the description of the first era whose keyword
// matches the query by substring in either direction.
func EraDescription(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, era := range eraTable {
		if strings.Contains(q, era.Keyword) || strings.Contains(era.Keyword, q) {
			return era.Description
		}
	}
	return ""
}

func lookupMood(q string) (Mood, bool) {
	for _, mood := range moodTable {
		if mood.Keyword == q {
			return mood, true
		}
	}
	return Mood{}, false
}

func lookupEra(q string) (Era, bool) {
	for _, era := range eraTable {
		if era.Keyword == q {
			return era, true
		}
	}
	return Era{}, false
}

// mappingsFile is the on-disk shape accepted by LoadMappings. Slices keep
// the fallback-scan order explicit.
type mappingsFile struct {
	Moods       []Mood   `json:"moods"`
	Eras        []Era    `json:"eras"`
	EraKeywords []string `json:"eraKeywords"`
}

// LoadMappings replaces the built-in vocabulary with the tables from a
// JSON mappings file. Keywords are lower-cased on load.
func LoadMappings(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read mappings: %w", err)
	}
	var file mappingsFile
	if err := json.Unmarshal(content, &file); err != nil {
		return fmt.Errorf("parse mappings %s: %w", path, err)
	}
	if len(file.Moods) == 0 && len(file.Eras) == 0 {
		return fmt.Errorf("mappings %s defines no tables", path)
	}

	for i := range file.Moods {
		file.Moods[i].Keyword = strings.ToLower(file.Moods[i].Keyword)
	}
	for i := range file.Eras {
		file.Eras[i].Keyword = strings.ToLower(file.Eras[i].Keyword)
	}
	for i := range file.EraKeywords {
		file.EraKeywords[i] = strings.ToLower(file.EraKeywords[i])
	}

	if len(file.Moods) > 0 {
		moodTable = file.Moods
	}
	if len(file.Eras) > 0 {
		eraTable = file.Eras
	}
	if len(file.EraKeywords) > 0 {
		eraKeywords = file.EraKeywords
	}

	log.Infof("Loaded vocabulary mappings from %s: %d moods, %d eras",
		path, len(moodTable), len(eraTable))
	return nil
}
