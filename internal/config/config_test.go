package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	want := &Config{
		Lat:   42.3601,
		Lon:   -71.0589,
		ElevM: 43,
		TZ:    "America/New_York",
		City:  "Boston",
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("load returned nil for existing file")
	}
	if *got != *want {
		t.Errorf("round trip: got %+v, want %+v", *got, *want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if got != nil {
		t.Errorf("missing file should return nil config, got %+v", got)
	}
}

func TestLoadRejectsBadContent(t *testing.T) {
	dir := t.TempDir()

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("missing tz", func(t *testing.T) {
		path := filepath.Join(dir, "notz.json")
		if err := os.WriteFile(path, []byte(`{"lat": 1, "lon": 2}`), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Error("expected validation error")
		}
	})
}
