// Command validate resolves a squad file against a bootstrap-static document
// and checks it against the league rules.
//
// Exit codes: 0 ok, 2 input error, 3 missing or ambiguous players, 4 rule violations.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/squads"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/file"
	"github.com/preston-bernstein/fpl-squad-service/internal/query"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
	"github.com/preston-bernstein/fpl-squad-service/internal/squad"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

const (
	exitOK         = 0
	exitInputError = 2
	exitUnresolved = 3
	exitViolations = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		bootstrapPath = fs.String("bootstrap", "bootstrap-static.json", "path to bootstrap-static.json")
		inputPath     = fs.String("input", "-", "squad file, one \"Name; Team\" per line (- for stdin)")
		outputPath    = fs.String("output", "", "write the JSON result to this file instead of stdout")
		budgetRaw     = fs.String("budget", squad.DefaultBudget.StringFixed(1), "budget in millions")
		noEnforce     = fs.Bool("no-enforce-rules", false, "only resolve names, skip squad rules")
		logLevel      = fs.String("log-level", "warn", "log level")
	)
	if err := fs.Parse(args); err != nil {
		return exitInputError
	}

	logger := logging.NewLogger(logging.Config{
		Level:   *logLevel,
		Service: "fpl-validate",
		Output:  stderr,
	})

	budget, err := decimal.NewFromString(*budgetRaw)
	if err != nil || !budget.IsPositive() {
		fmt.Fprintf(stderr, "invalid budget: %s\n", *budgetRaw)
		return exitInputError
	}

	ctx := context.Background()
	b, err := file.New(*bootstrapPath).FetchBootstrap(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "bootstrap file not readable: %v\n", err)
		return exitInputError
	}

	lines, err := readInput(*inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "input team file not readable: %v\n", err)
		return exitInputError
	}

	ms := store.NewMemoryStore()
	ms.SetIndex(roster.Build(b), providers.NameFile, time.Now())
	ps := players.NewService(ms, players.Options{Logger: logger})
	svc := squads.NewService(ps, squads.Options{Budget: budget, Logger: logger})

	res, err := svc.Validate(ctx, squads.Request{Lines: lines, EnforceRules: !*noEnforce})
	if errors.Is(err, squads.ErrNoLines) {
		fmt.Fprintln(stderr, "No players found in input file.")
		return exitInputError
	}
	if err != nil {
		fmt.Fprintf(stderr, "validation failed: %v\n", err)
		return exitInputError
	}

	if err := writeResult(res, *outputPath, stdout); err != nil {
		fmt.Fprintf(stderr, "write result: %v\n", err)
		return exitInputError
	}

	if !res.Resolved() {
		printUnresolved(stderr, res)
		return exitUnresolved
	}
	if res.Report != nil && !res.Report.Valid() {
		fmt.Fprintln(stderr, "Violations:")
		for _, msg := range res.Report.Messages() {
			fmt.Fprintf(stderr, "  - %s\n", msg)
		}
		return exitViolations
	}
	return exitOK
}

func readInput(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		return query.ReadLines(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return query.ReadLines(f)
}

func writeResult(res squads.Result, path string, stdout io.Writer) error {
	out := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printUnresolved(w io.Writer, res squads.Result) {
	if len(res.Missing) > 0 {
		fmt.Fprintln(w, "Missing players (not found in bootstrap):")
		for _, m := range res.Missing {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
	if len(res.Ambiguous) > 0 {
		fmt.Fprintln(w, "Ambiguous matches:")
		for _, a := range res.Ambiguous {
			fmt.Fprintf(w, "  %s -> %v\n", a.Query, a.Candidates)
		}
	}
}
