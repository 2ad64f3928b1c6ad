package resolver

import (
	"sync"
	"testing"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/query"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	return New(roster.Build(fixture.Bootstrap()))
}

func ids(res Result) []int {
	out := make([]int, 0, len(res.Players))
	for _, p := range res.Players {
		out = append(out, p.ID)
	}
	return out
}

func assertIDs(t *testing.T, res Result, want ...int) {
	t.Helper()
	got := ids(res)
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v (strategy %q)", want, got, res.Strategy)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v (strategy %q)", want, got, res.Strategy)
		}
	}
}

func TestExactMatchWinsOverSubstring(t *testing.T) {
	r := newResolver(t)
	if n := len(MatchSubstring(r.Index(), "raya")); n < 2 {
		t.Fatalf("expected substring to see several raya keys, got %d", n)
	}
	res := r.Resolve("Raya", "")
	assertIDs(t, res, 1)
	if res.Strategy != StrategyExact {
		t.Fatalf("expected exact strategy, got %q", res.Strategy)
	}
}

func TestAccentInsensitiveExact(t *testing.T) {
	r := newResolver(t)
	assertIDs(t, r.Resolve("raya martin", ""), 1)
	assertIDs(t, r.Resolve("J Timber", ""), 3)
	assertIDs(t, r.Resolve("Ait Nouri", ""), 62)
}

func TestAmbiguousSurname(t *testing.T) {
	r := newResolver(t)
	res := r.Resolve("White", "")
	assertIDs(t, res, 11, 498)
	if res.Outcome() != Ambiguous {
		t.Fatalf("expected ambiguous, got %s", res.Outcome())
	}
	labels := res.Labels()
	if labels[0] != "Benjamin White (White)" || labels[1] != "Joe White (White)" {
		t.Fatalf("unexpected labels %v", labels)
	}
}

func TestHintDisambiguates(t *testing.T) {
	r := newResolver(t)
	for _, hint := range []string{"Arsenal", "ARS", "arsenal", "3"} {
		res := r.Resolve("White", hint)
		assertIDs(t, res, 11)
		if !res.HintApplied || res.HintIgnored {
			t.Fatalf("hint %q: expected applied, got %+v", hint, res)
		}
	}
	assertIDs(t, r.Resolve("White", "Newcastle"), 498)
}

func TestUnknownHintFallsBack(t *testing.T) {
	res := newResolver(t).Resolve("White", "Nonexistent")
	assertIDs(t, res, 11, 498)
	if res.HintApplied || !res.HintIgnored {
		t.Fatalf("expected hint to be ignored, got %+v", res)
	}
}

func TestHintNotUsedForUniqueMatch(t *testing.T) {
	res := newResolver(t).Resolve("Saka", "Chelsea")
	assertIDs(t, res, 44)
	if res.HintApplied || res.HintIgnored {
		t.Fatalf("expected hint untouched, got %+v", res)
	}
}

func TestInitialForm(t *testing.T) {
	r := newResolver(t)
	res := r.Resolve("E Haaland", "")
	assertIDs(t, res, 50)
	if res.Strategy != StrategyInitial {
		t.Fatalf("expected initial strategy, got %q", res.Strategy)
	}
	assertIDs(t, r.Resolve("B. White", ""), 11)
	assertIDs(t, r.Resolve("J White", ""), 498)
	assertIDs(t, r.Resolve("M Salah", ""), 40)
}

func TestInitialRejectsLongLeadingToken(t *testing.T) {
	ix := roster.Build(fixture.Bootstrap())
	if got := MatchInitial(ix, "er haaland"); len(got) != 0 {
		t.Fatalf("expected no match, got %d", len(got))
	}
	if got := MatchInitial(ix, "haaland"); len(got) != 0 {
		t.Fatalf("expected no match for single token, got %d", len(got))
	}
	if got := MatchInitial(ix, "x haaland"); len(got) != 0 {
		t.Fatalf("expected initial mismatch, got %d", len(got))
	}
}

func TestSubstringDeduplicates(t *testing.T) {
	r := newResolver(t)
	res := r.Resolve("haal", "")
	assertIDs(t, res, 50)
	if res.Strategy != StrategySubstring {
		t.Fatalf("expected substring strategy, got %q", res.Strategy)
	}
	assertIDs(t, r.Resolve("Emiliano Martínez", ""), 2)
}

func TestFuzzyMatch(t *testing.T) {
	res := newResolver(t).Resolve("Haalnd", "")
	assertIDs(t, res, 50)
	if res.Strategy != StrategyFuzzy {
		t.Fatalf("expected fuzzy strategy, got %q", res.Strategy)
	}
}

func TestFuzzyBelowCutoff(t *testing.T) {
	res := newResolver(t).Resolve("Zzqxv", "")
	if res.Outcome() != NotFound || res.Strategy != "" {
		t.Fatalf("expected not found, got %+v", res)
	}
}

func TestFuzzyTiePrefersGreaterKey(t *testing.T) {
	key, ok := closestKey("abc", []string{"abcx", "abcy"})
	if !ok || key != "abcy" {
		t.Fatalf("expected abcy, got %q (%v)", key, ok)
	}
}

func TestEmptyQuery(t *testing.T) {
	r := newResolver(t)
	for _, q := range []string{"", "   ", "..", "-"} {
		if res := r.Resolve(q, ""); res.Outcome() != NotFound {
			t.Fatalf("query %q: expected not found, got %v", q, ids(res))
		}
	}
}

func TestResolveQuery(t *testing.T) {
	res := newResolver(t).ResolveQuery(query.Parse("White; NEW"))
	assertIDs(t, res, 498)
	if p, ok := res.Player(); !ok || p.TeamShortName != "NEW" {
		t.Fatalf("expected Newcastle player, got %+v", p)
	}
}

func TestResolvesValidSquadLines(t *testing.T) {
	r := newResolver(t)
	for i, line := range fixture.ValidSquadLines {
		res := r.ResolveQuery(query.Parse(line))
		p, ok := res.Player()
		if !ok {
			t.Fatalf("line %q: expected unique match, got %v", line, ids(res))
		}
		if p.ID != fixture.ValidSquad[i] {
			t.Fatalf("line %q: expected id %d, got %d", line, fixture.ValidSquad[i], p.ID)
		}
	}
}

func TestDeterministicAcrossCallsAndGoroutines(t *testing.T) {
	r := newResolver(t)
	want := ids(r.Resolve("white", ""))
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := ids(r.Resolve("white", ""))
			if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
				errs <- "mismatch"
			}
		}()
	}
	wg.Wait()
	close(errs)
	if len(errs) > 0 {
		t.Fatalf("expected identical results, got %d mismatches", len(errs))
	}
}

func TestCustomStrategyChain(t *testing.T) {
	ix := roster.Build(fixture.Bootstrap())
	r := NewWithStrategies(ix, []Strategy{{Name: StrategyExact, Match: MatchExact}})
	if res := r.Resolve("haal", ""); res.Outcome() != NotFound {
		t.Fatalf("expected exact-only chain to miss, got %v", ids(res))
	}
}

func TestNilIndexResolvesNothing(t *testing.T) {
	if res := New(nil).Resolve("White", ""); res.Outcome() != NotFound {
		t.Fatalf("expected not found, got %v", ids(res))
	}
}

func TestEmptyRoster(t *testing.T) {
	r := New(roster.Build(bootstrap.Bootstrap{}))
	if res := r.Resolve("White", "Arsenal"); res.Outcome() != NotFound {
		t.Fatalf("expected not found, got %v", ids(res))
	}
}
