package city

import (
	"testing"
	"time"
)

func TestFindExact(t *testing.T) {
	tests := []struct {
		query   string
		want    string
		country string
		found   bool
	}{
		{query: "Boston", want: "Boston", country: "US", found: true},
		{query: "boston", want: "Boston", country: "US", found: true},
		{query: "SYDNEY", want: "Sydney", country: "AU", found: true},
		{query: "Atlantis", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, ok := FindExact(tt.query)
			if ok != tt.found {
				t.Fatalf("FindExact(%q) found = %v, want %v", tt.query, ok, tt.found)
			}
			if !ok {
				return
			}
			if c.Name != tt.want || c.Country != tt.country {
				t.Errorf("FindExact(%q) = %s, %s", tt.query, c.Name, c.Country)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Run("substring hits rank first", func(t *testing.T) {
		matches := Search("san fran")
		if len(matches) == 0 {
			t.Fatal("no matches for 'san fran'")
		}
		if matches[0].City.Name != "San Francisco" {
			t.Errorf("top match = %s, want San Francisco", matches[0].City.Name)
		}
	})

	t.Run("scores descend", func(t *testing.T) {
		matches := Search("lon")
		for i := 1; i < len(matches); i++ {
			if matches[i].Score > matches[i-1].Score {
				t.Fatal("matches not sorted by score")
			}
		}
	})

	t.Run("no match", func(t *testing.T) {
		if matches := Search("zzzzzzz"); len(matches) != 0 {
			t.Errorf("got %d matches for nonsense query", len(matches))
		}
	})
}

func TestTableIsWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range All() {
		if c.Name == "" || c.Country == "" {
			t.Errorf("entry with empty name or country: %+v", c)
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lon <= -180 || c.Lon > 180 {
			t.Errorf("%s: coordinates out of range (%v, %v)", c.Name, c.Lat, c.Lon)
		}
		if _, err := time.LoadLocation(c.TZ); err != nil {
			t.Errorf("%s: bad zone %q: %v", c.Name, c.TZ, err)
		}
		if seen[c.Label()] {
			t.Errorf("duplicate entry %s", c.Label())
		}
		seen[c.Label()] = true
	}
}
