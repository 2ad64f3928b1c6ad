// Command fixtures fetches the FPL fixture list and writes the fixture map
// (fixture id to event, kickoff and teams) as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/file"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fpl"
)

const (
	rawFixturesFile = "fixtures.json"
	fetchTimeout    = 20 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fixtures", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		outputPath = fs.String("output", "fixtures_map.json", "where to write the fixture map; its directory also holds the raw fixtures.json")
		noFetch    = fs.Bool("no-fetch", false, "read fixtures.json from the output directory instead of the network")
		baseURL    = fs.String("base-url", "https://fantasy.premierleague.com/api", "FPL API base url")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	dir := filepath.Dir(*outputPath)
	rawPath := filepath.Join(dir, rawFixturesFile)

	var list []fixtures.Fixture
	if *noFetch {
		local := &file.Provider{FixturesPath: rawPath}
		got, err := local.FetchFixtures(context.Background())
		if err != nil {
			fmt.Fprintf(stderr, "local fixtures unreadable: %v\n", err)
		}
		list = got
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		got, err := fpl.NewClient(fpl.Config{BaseURL: *baseURL}).FetchFixtures(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to obtain fixtures: %v\n", err)
			return 2
		}
		list = got
		if err := writeJSON(rawPath, list); err != nil {
			fmt.Fprintf(stderr, "save raw fixtures: %v\n", err)
		}
	}

	m := fixtures.BuildMap(list)
	if len(m) == 0 {
		fmt.Fprintln(stdout, "No fixtures available; writing empty map")
	}
	if err := writeJSON(*outputPath, m); err != nil {
		fmt.Fprintf(stderr, "Failed to write fixtures_map to %s: %v\n", *outputPath, err)
		return 3
	}
	fmt.Fprintf(stdout, "Wrote parsed fixtures_map to %s\n", *outputPath)
	return 0
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
