package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
)

const upstreamFixtures = `[
  {"id": 2, "event": 1, "kickoff_time": "2024-08-17T14:00:00Z", "team_h": 5, "team_a": 12},
  {"id": 1, "event": 1, "kickoff_time": "2024-08-16T19:00:00Z", "team_h": 1, "team_a": 20},
  {"id": "bad"},
  {"id": 9, "event": null, "kickoff_time": null, "team_h": 16, "team_a": 13}
]`

func readMap(t *testing.T, path string) map[int]fixtures.MapEntry {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read map: %v", err)
	}
	var m map[int]fixtures.MapEntry
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode map: %v", err)
	}
	return m
}

func TestRunFetchesAndWritesMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(upstreamFixtures))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "data", "fixtures_map.json")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-output", out, "-base-url", srv.URL}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Wrote parsed fixtures_map to "+out) {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}

	m := readMap(t, out)
	if len(m) != 3 {
		t.Fatalf("expected 3 fixtures, got %d", len(m))
	}
	if m[1].TeamH != 1 || m[1].KickoffTime == nil || m[1].KickoffTime.Hour() != 19 {
		t.Fatalf("unexpected fixture 1 %+v", m[1])
	}
	if m[9].Event != nil || m[9].KickoffTime != nil {
		t.Fatalf("expected unscheduled fixture 9, got %+v", m[9])
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(out), rawFixturesFile)); err != nil {
		t.Fatalf("expected raw fixtures saved next to the map, got %v", err)
	}
}

func TestRunNoFetchReadsLocalFixtures(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, rawFixturesFile), []byte(upstreamFixtures), 0o644); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}
	out := filepath.Join(dir, "fixtures_map.json")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-output", out, "-no-fetch"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if m := readMap(t, out); len(m) != 3 || m[2].TeamA != 12 {
		t.Fatalf("unexpected map %+v", m)
	}
}

func TestRunNoFetchWithoutLocalFileWritesEmptyMap(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fixtures_map.json")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-output", out, "-no-fetch"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "No fixtures available; writing empty map") {
		t.Fatalf("expected empty map notice, got %q", stdout.String())
	}
	if m := readMap(t, out); len(m) != 0 {
		t.Fatalf("expected empty map, got %+v", m)
	}
}

func TestRunFetchFailureExitsTwo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "fixtures_map.json")
	if code := run([]string{"-output", out, "-base-url", srv.URL}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Failed to obtain fixtures") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunWriteFailureExitsThree(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	var stdout, stderr bytes.Buffer
	out := filepath.Join(blocker, "fixtures_map.json")
	if code := run([]string{"-output", out, "-no-fetch"}, &stdout, &stderr); code != 3 {
		t.Fatalf("expected exit 3, got %d (stderr %q)", code, stderr.String())
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-bogus"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}
