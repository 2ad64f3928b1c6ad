package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

// Strategy names reported in Result.Strategy.
const (
	StrategyExact     = "exact"
	StrategyInitial   = "initial"
	StrategySubstring = "substring"
	StrategyFuzzy     = "fuzzy"
)

// FuzzyCutoff is the minimum similarity ratio a fuzzy match must reach.
const FuzzyCutoff = 0.6

// MatchFunc returns the players matching an already-normalized query.
type MatchFunc func(ix *roster.Index, q string) []players.Player

// Strategy is one step of the resolution chain.
type Strategy struct {
	Name  string
	Match MatchFunc
}

// DefaultStrategies returns the chain in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: StrategyExact, Match: MatchExact},
		{Name: StrategyInitial, Match: MatchInitial},
		{Name: StrategySubstring, Match: MatchSubstring},
		{Name: StrategyFuzzy, Match: MatchFuzzy},
	}
}

// MatchExact looks q up among web, full and surname keys.
func MatchExact(ix *roster.Index, q string) []players.Player {
	if q == "" {
		return nil
	}
	return ix.Exact(q)
}

// MatchInitial handles abbreviated first names such as "m salah".
func MatchInitial(ix *roster.Index, q string) []players.Player {
	tokens := strings.Fields(q)
	if len(tokens) < 2 {
		return nil
	}
	initial, ok := leadingInitial(tokens[0])
	if !ok {
		return nil
	}
	surname := strings.Join(tokens[1:], " ")

	var out []players.Player
	for _, p := range ix.Candidates(surname) {
		if p.Keys.Second != surname {
			continue
		}
		first, _ := utf8.DecodeRuneInString(p.Keys.First)
		if first == initial {
			out = append(out, p)
		}
	}
	return out
}

func leadingInitial(token string) (rune, bool) {
	token = strings.TrimSuffix(token, ".")
	if utf8.RuneCountInString(token) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(token)
	return r, true
}

// MatchSubstring collects every player with any candidate key containing q.
func MatchSubstring(ix *roster.Index, q string) []players.Player {
	if q == "" {
		return nil
	}
	var out []players.Player
	for _, key := range ix.Vocabulary() {
		if strings.Contains(key, q) {
			out = append(out, ix.Candidates(key)...)
		}
	}
	return out
}

// MatchFuzzy returns the players of the single closest vocabulary key whose
// ratio is at least FuzzyCutoff. Equal ratios resolve to the greater key.
func MatchFuzzy(ix *roster.Index, q string) []players.Player {
	if q == "" {
		return nil
	}
	key, ok := closestKey(q, ix.Vocabulary())
	if !ok {
		return nil
	}
	return ix.Candidates(key)
}

func closestKey(q string, vocabulary []string) (string, bool) {
	matcher := difflib.NewMatcher(nil, strings.Split(q, ""))
	best, bestRatio := "", -1.0
	for _, key := range vocabulary {
		matcher.SetSeq1(strings.Split(key, ""))
		if matcher.RealQuickRatio() < FuzzyCutoff || matcher.QuickRatio() < FuzzyCutoff {
			continue
		}
		ratio := matcher.Ratio()
		if ratio < FuzzyCutoff {
			continue
		}
		// vocabulary is sorted, so >= keeps the greater key on ties.
		if ratio >= bestRatio {
			best, bestRatio = key, ratio
		}
	}
	return best, bestRatio >= 0
}
