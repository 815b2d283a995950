package books

import "testing"

func TestCacheKeyNormalization(t *testing.T) {
	cases := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "lowercase and trim",
			query: Query{Title: "  The Dispossessed ", Author: " Ursula K. Le Guin "},
			want:  "book:the dispossessed:ursula k. le guin",
		},
		{
			name:  "absent author uses sentinel",
			query: Query{Title: "Dune"},
			want:  "book:dune:unknown",
		},
		{
			name:  "whitespace author counts as absent",
			query: Query{Title: "Dune", Author: "   "},
			want:  "book:dune:unknown",
		},
		{
			name:  "unicode lowering",
			query: Query{Title: "ÉDUCATION", Author: "STENDHAL"},
			want:  "book:éducation:stendhal",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CacheKey(tc.query); got != tc.want {
				t.Fatalf("CacheKey(%+v) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestCacheKeyAuthorDistinguishes(t *testing.T) {
	bare := CacheKey(Query{Title: "Dune"})
	authored := CacheKey(Query{Title: "Dune", Author: "Frank Herbert"})
	if bare == authored {
		t.Fatalf("expected distinct keys, both were %q", bare)
	}
}

func TestQueryIsZero(t *testing.T) {
	if !(Query{Author: "someone"}).IsZero() {
		t.Fatal("query without title should be zero")
	}
	if (Query{Title: "x"}).IsZero() {
		t.Fatal("query with title should not be zero")
	}
}
