// Package query parses user-typed squad lines of the form "Name" or
// "Name; Team".
package query

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// HintDelimiter separates a player name from an optional team hint.
const HintDelimiter = ";"

// Query is one parsed input line.
type Query struct {
	Name     string `json:"name"`
	TeamHint string `json:"team_hint,omitempty"`
}

// HasHint reports whether a non-empty team hint was supplied.
func (q Query) HasHint() bool {
	return q.TeamHint != ""
}

// String renders the query back into line form.
func (q Query) String() string {
	if !q.HasHint() {
		return q.Name
	}
	return q.Name + HintDelimiter + " " + q.TeamHint
}

// Parse splits line on the first delimiter. Both parts are trimmed; an empty
// hint is treated as absent.
func Parse(line string) Query {
	name, hint, found := strings.Cut(line, HintDelimiter)
	if !found {
		return Query{Name: strings.TrimSpace(line)}
	}
	return Query{
		Name:     strings.TrimSpace(name),
		TeamHint: strings.TrimSpace(hint),
	}
}

// ParseAll parses every line in order.
func ParseAll(lines []string) []Query {
	out := make([]Query, 0, len(lines))
	for _, line := range lines {
		out = append(out, Parse(line))
	}
	return out
}

// ReadLines returns the non-blank lines of r with trailing whitespace removed.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRightFunc(scanner.Text(), isSpace)
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read squad lines: %w", err)
	}
	return lines, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}
