package moods

func defaultMoods() []Mood {
	return []Mood{
		// Emotional moods
		{Keyword: "upbeat", Tags: []string{"soul", "funk", "motown", "rock & roll", "pop"}},
		{Keyword: "melancholy", Tags: []string{"blues", "soul blues", "singer-songwriter", "folk"}},
		{Keyword: "reflective", Tags: []string{"folk", "singer-songwriter", "americana", "acoustic"}},
		{Keyword: "energetic", Tags: []string{"rock", "rock & roll", "rockabilly", "punk"}},
		{Keyword: "romantic", Tags: []string{"soul", "classic soul", "jazz", "vocal jazz", "doo-wop"}},
		{Keyword: "nostalgic", Tags: []string{"oldies", "classic rock", "doo-wop", "motown", "60s", "70s"}},
		{Keyword: "rebellious", Tags: []string{"rock", "punk", "outlaw country", "blues rock"}},
		{Keyword: "peaceful", Tags: []string{"folk", "acoustic", "singer-songwriter", "jazz"}},
		{Keyword: "soulful", Tags: []string{"soul", "classic soul", "gospel", "rhythm and blues", "r&b"}},
		{Keyword: "rootsy", Tags: []string{"americana", "bluegrass", "country", "folk", "roots rock"}},
		{Keyword: "funky", Tags: []string{"funk", "soul", "r&b", "motown"}},
		{Keyword: "bluesy", Tags: []string{"blues", "blues rock", "soul blues", "electric blues"}},
		{Keyword: "jazzy", Tags: []string{"jazz", "vocal jazz", "swing", "bebop"}},
		{Keyword: "country", Tags: []string{"country", "outlaw country", "alt country", "americana"}},
		{Keyword: "folksy", Tags: []string{"folk", "folk rock", "singer-songwriter", "acoustic"}},

		// Activity-based
		{Keyword: "party", Tags: []string{"funk", "soul", "motown", "rock & roll", "disco"}},
		{Keyword: "road trip", Tags: []string{"rock", "country", "americana", "classic rock"}},
		{Keyword: "rainy day", Tags: []string{"blues", "jazz", "singer-songwriter", "folk"}},
		{Keyword: "working", Tags: []string{"jazz", "acoustic", "folk", "instrumental"}},
		{Keyword: "relaxing", Tags: []string{"folk", "acoustic", "jazz", "singer-songwriter"}},
		{Keyword: "dancing", Tags: []string{"funk", "soul", "motown", "disco", "rock & roll"}},

		// Seasonal
		{Keyword: "summer", Tags: []string{"reggae", "soul", "funk", "rock"}},
		{Keyword: "winter", Tags: []string{"folk", "acoustic", "singer-songwriter"}},
		{Keyword: "holiday", Tags: []string{"christmas", "gospel", "holiday"}},
		{Keyword: "christmas", Tags: []string{"christmas", "gospel", "holiday"}},
	}
}

func defaultEras() []Era {
	return []Era{
		{
			Keyword:     "50s",
			Description: "1950s rock & roll, doo-wop, early R&B",
			Tags:        []string{"50s", "doo-wop", "rock & roll", "rockabilly", "early rock"},
		},
		{
			Keyword:     "60s",
			Description: "British Invasion, Motown, folk revival, psychedelia",
			Tags:        []string{"60s", "motown", "british invasion", "folk", "psychedelic"},
		},
		{
			Keyword:     "70s",
			Description: "Classic rock, soul, disco, punk",
			Tags:        []string{"70s", "classic rock", "soul", "funk", "disco", "punk"},
		},
		{
			Keyword:     "80s",
			Description: "New wave, synth-pop, hair metal, post-punk",
			Tags:        []string{"80s", "new wave", "pop", "rock", "synth-pop"},
		},
		{
			Keyword:     "90s",
			Description: "Grunge, alternative, hip-hop golden age",
			Tags:        []string{"90s", "alternative", "grunge", "indie"},
		},
		{
			Keyword:     "classic soul",
			Description: "Golden age of soul music (1960s-70s)",
			Tags:        []string{"classic soul", "motown", "soul", "rhythm and blues", "r&b"},
		},
		{
			Keyword:     "classic rock",
			Description: "Rock music from 1960s-80s",
			Tags:        []string{"classic rock", "rock", "blues rock", "hard rock"},
		},
		{
			Keyword:     "americana",
			Description: "Roots music blending country, folk, blues",
			Tags:        []string{"americana", "alt country", "roots rock", "folk", "country rock"},
		},
		{
			Keyword:     "british invasion",
			Description: "UK bands of the 1960s",
			Tags:        []string{"british invasion", "60s", "rock", "pop"},
		},
		{
			Keyword:     "motown",
			Description: "The Motown sound - Detroit soul",
			Tags:        []string{"motown", "soul", "r&b", "classic soul"},
		},
		{
			Keyword:     "new orleans",
			Description: "New Orleans R&B, jazz, and funk",
			Tags:        []string{"new orleans", "jazz", "funk", "r&b", "blues"},
		},
	}
}

func defaultEraKeywords() []string {
	return []string{
		"50s", "1950s", "fifties",
		"60s", "1960s", "sixties",
		"70s", "1970s", "seventies",
		"80s", "1980s", "eighties",
		"90s", "1990s", "nineties",
		"classic rock", "classic soul",
		"americana", "british invasion", "motown",
		"new orleans",
	}
}
