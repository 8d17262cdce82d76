package moods

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDetectQueryType(t *testing.T) {
	tests := []struct {
		query string
		want  QueryType
	}{
		{query: "60s", want: QueryEra},
		{query: "music from the sixties", want: QueryEra},
		{query: "motown", want: QueryEra},
		{query: "soulful", want: QueryMood},
		{query: "rainy day", want: QueryMood},
		{query: "Soulful  ", want: QueryMood},
		{query: "quantum physics", want: QueryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := DetectQueryType(tt.query); got != tt.want {
				t.Errorf("DetectQueryType(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestTagsForQuerySoulful(t *testing.T) {
	want := []string{"soul", "classic soul", "gospel", "rhythm and blues", "r&b"}
	got := TagsForQuery("soulful", QueryAuto)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagsForQuery(soulful) = %v, want %v", got, want)
	}
}

func TestTagsForQueryPartialMatch(t *testing.T) {
	// "funky grooves" is not a table key; the fallback scan should land on
	// the "funky" mood entry.
	got := TagsForQuery("funky grooves", QueryAuto)
	want := []string{"funk", "soul", "r&b", "motown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagsForQuery(funky grooves) = %v, want %v", got, want)
	}
}

func TestTagsForQueryEra(t *testing.T) {
	got := TagsForQuery("the 60s", QueryAuto)
	want := []string{"60s", "motown", "british invasion", "folk", "psychedelic"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagsForQuery(the 60s) = %v, want %v", got, want)
	}
}

func TestTagsForQueryNoMatch(t *testing.T) {
	if got := TagsForQuery("quantum physics", QueryAuto); got != nil {
		t.Errorf("TagsForQuery(quantum physics) = %v, want nil", got)
	}
}

func TestEraDescription(t *testing.T) {
	if got := EraDescription("motown classics"); got != "The Motown sound - Detroit soul" {
		t.Errorf("EraDescription = %q", got)
	}
	if got := EraDescription("nothing"); got != "" {
		t.Errorf("EraDescription miss = %q, want empty", got)
	}
}

func TestLoadMappings(t *testing.T) {
	defer func() {
		moodTable = defaultMoods()
		eraTable = defaultEras()
		eraKeywords = defaultEraKeywords()
	}()

	path := filepath.Join(t.TempDir(), "mappings.json")
	content := `{"moods":[{"keyword":"Spooky","tags":["surf","garage"]}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadMappings(path); err != nil {
		t.Fatalf("LoadMappings: %v", err)
	}

	got := TagsForQuery("spooky", QueryAuto)
	if !reflect.DeepEqual(got, []string{"surf", "garage"}) {
		t.Errorf("TagsForQuery(spooky) = %v", got)
	}
	if got := TagsForQuery("soulful", QueryAuto); got != nil {
		t.Errorf("replaced table should drop built-in moods, got %v", got)
	}
}

func TestLoadMappingsRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadMappings(path); err == nil {
		t.Error("expected error for mappings with no tables")
	}
}
