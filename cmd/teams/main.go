// Command teams lists the clubs of a bootstrap-static document.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	appteams "github.com/preston-bernstein/fpl-squad-service/internal/app/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/file"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

const (
	formatJSON   = "json"
	formatCSV    = "csv"
	formatPretty = "pretty"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("teams", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		bootstrapPath = fs.String("bootstrap", "bootstrap-static.json", "path to bootstrap-static.json")
		format        = fs.String("format", formatJSON, "output format: json|csv|pretty")
		outputPath    = fs.String("output", "", "file to write output to (stdout when empty)")
		lookup        = fs.String("team", "", "only print the team matching this name, short name or code")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	render, ok := renderers[*format]
	if !ok {
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return 2
	}

	b, err := file.New(*bootstrapPath).FetchBootstrap(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "bootstrap file not readable: %v\n", err)
		return 2
	}
	ms := store.NewMemoryStore()
	ms.SetIndex(roster.Build(b), providers.NameFile, time.Now())
	svc := appteams.NewService(ms)

	list, err := svc.Teams()
	if err != nil {
		fmt.Fprintf(stderr, "list teams: %v\n", err)
		return 1
	}
	if *lookup != "" {
		t, found, err := svc.Lookup(*lookup)
		if err != nil {
			fmt.Fprintf(stderr, "lookup team: %v\n", err)
			return 1
		}
		if !found {
			fmt.Fprintf(stderr, "team not found: %s\n", *lookup)
			return 1
		}
		list = []teams.Team{t}
	}

	out := stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(stderr, "create output: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	if err := render(out, list); err != nil {
		fmt.Fprintf(stderr, "write teams: %v\n", err)
		return 1
	}
	if *outputPath != "" {
		fmt.Fprintf(stdout, "Wrote teams to: %s\n", *outputPath)
	}
	return 0
}

var renderers = map[string]func(io.Writer, []teams.Team) error{
	formatJSON:   renderJSON,
	formatCSV:    renderCSV,
	formatPretty: renderPretty,
}

func renderJSON(w io.Writer, list []teams.Team) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func renderCSV(w io.Writer, list []teams.Team) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "short_name", "name"}); err != nil {
		return err
	}
	for _, t := range list {
		if err := cw.Write([]string{strconv.Itoa(t.ID), t.ShortName, t.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderPretty(w io.Writer, list []teams.Team) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range list {
		if _, err := fmt.Fprintf(tw, "%3d\t%s\t%s\n", t.ID, t.ShortName, t.Name); err != nil {
			return err
		}
	}
	return tw.Flush()
}
