package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
)

func writeBootstrap(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(fixture.Bootstrap())
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "bootstrap-static.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunJSONListsTeamsByID(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-bootstrap", writeBootstrap(t)}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	var got []teams.Team
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 9 {
		t.Fatalf("expected 9 teams, got %d", len(got))
	}
	if got[0].ID != 1 || got[0].Name != "Arsenal" || got[0].Code != "3" {
		t.Fatalf("unexpected first team %+v", got[0])
	}
	if got[8].ID != 20 {
		t.Fatalf("expected last team id 20, got %d", got[8].ID)
	}
}

func TestRunCSVQuotesNames(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-bootstrap", writeBootstrap(t), "-format", "csv"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if lines[0] != "id,short_name,name" {
		t.Fatalf("expected csv header, got %q", lines[0])
	}
	if lines[1] != "1,ARS,Arsenal" {
		t.Fatalf("expected arsenal row, got %q", lines[1])
	}
	if len(lines) != 10 {
		t.Fatalf("expected header plus 9 rows, got %d", len(lines))
	}
}

func TestRunPrettyFiltersByTeam(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-bootstrap", writeBootstrap(t), "-format", "pretty", "-team", "liv"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "LIV") || !strings.Contains(out, "Liverpool") {
		t.Fatalf("expected liverpool row, got %q", out)
	}
	if strings.Contains(out, "Arsenal") {
		t.Fatalf("expected only the matching team, got %q", out)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "teams.json")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-bootstrap", writeBootstrap(t), "-output", out}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "Wrote teams to: "+out) {
		t.Fatalf("expected confirmation, got %q", stdout.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	bootstrapPath := writeBootstrap(t)
	cases := map[string]struct {
		args []string
		code int
	}{
		"missing bootstrap": {[]string{"-bootstrap", filepath.Join(t.TempDir(), "absent.json")}, 2},
		"bad format":        {[]string{"-bootstrap", bootstrapPath, "-format", "yaml"}, 2},
		"unknown team":      {[]string{"-bootstrap", bootstrapPath, "-team", "Leeds"}, 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tc.args, &stdout, &stderr); code != tc.code {
				t.Fatalf("expected exit %d, got %d", tc.code, code)
			}
		})
	}
}
