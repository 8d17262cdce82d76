package fuzzy

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "Aretha Franklin", want: "aretha franklin"},
		{name: "special characters", in: "AC/DC", want: "acdc"},
		{name: "apostrophe", in: "Booker T. & the MG's", want: "booker t the mgs"},
		{name: "whitespace runs", in: "  Otis   Redding ", want: "otis redding"},
		{name: "digits kept", in: "U2", want: "u2"},
		{name: "empty", in: "", want: ""},
		{name: "only specials", in: "!!!", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "Van Morrison", b: "van morrison", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "both normalize empty", a: "!!!", b: "...", want: 1},
		{name: "one edit", a: "abcd", b: "abce", want: 0.75},
		{name: "disjoint", a: "abc", b: "xyz", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFindBestMatchExact(t *testing.T) {
	candidates := []string{"Otis Redding", "Aretha Franklin", "Sam Cooke"}
	got := FindBestMatch("aretha franklin", candidates)
	if !got.Found || got.Match != "Aretha Franklin" {
		t.Fatalf("expected exact match, got %+v", got)
	}
	if got.Score != 1 {
		t.Errorf("exact match score = %v, want 1", got.Score)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("exact match should carry no suggestions, got %v", got.Suggestions)
	}
}

func TestFindBestMatchFuzzy(t *testing.T) {
	candidates := []string{"Otis Redding", "Aretha Franklin", "Sam Cooke"}
	got := FindBestMatch("otis reding", candidates)
	if !got.Found || got.Match != "Otis Redding" {
		t.Fatalf("expected fuzzy match for misspelling, got %+v", got)
	}
	if got.Score >= 1 || got.Score < DefaultThreshold {
		t.Errorf("score = %v, want in [%v, 1)", got.Score, DefaultThreshold)
	}
	if len(got.Suggestions) != 2 {
		t.Errorf("suggestions = %v, want remaining 2 candidates", got.Suggestions)
	}
}

func TestFindBestMatchMiss(t *testing.T) {
	candidates := []string{"Otis Redding", "Aretha Franklin", "Sam Cooke", "Al Green", "Etta James", "Bill Withers"}
	got := FindBestMatch("zzzzzzzzzzzz", candidates)
	if got.Found {
		t.Fatalf("expected no match, got %+v", got)
	}
	if len(got.Suggestions) != 5 {
		t.Errorf("miss should suggest top 5, got %d", len(got.Suggestions))
	}
}

func TestFindBestMatchNoCandidates(t *testing.T) {
	got := FindBestMatch("anything", nil)
	if got.Found || got.Score != 0 || len(got.Suggestions) != 0 {
		t.Errorf("empty candidates should yield zero result, got %+v", got)
	}
}

func TestContainsMatch(t *testing.T) {
	candidates := []string{"The Rolling Stones", "Stone Temple Pilots", "Sam Cooke"}
	got := ContainsMatch("stones", candidates)
	want := []string{"The Rolling Stones"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContainsMatch = %v, want %v", got, want)
	}

	// Query containing the candidate matches too.
	got = ContainsMatch("the sam cooke band", candidates)
	want = []string{"Sam Cooke"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContainsMatch = %v, want %v", got, want)
	}
}
