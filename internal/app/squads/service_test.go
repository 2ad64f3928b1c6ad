package squads

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/resolver"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
	"github.com/preston-bernstein/fpl-squad-service/internal/squad"
)

type stubStore struct {
	ix *roster.Index
}

func (s *stubStore) Index() *roster.Index { return s.ix }

func newService(t *testing.T) (*Service, *metrics.Recorder) {
	t.Helper()
	rec := metrics.NewRecorder()
	ps := players.NewService(&stubStore{ix: roster.Build(fixture.Bootstrap())}, players.Options{Metrics: rec})
	return NewService(ps, Options{Workers: 3, Metrics: rec}), rec
}

func withLine(lines []string, i int, line string) []string {
	out := append([]string(nil), lines...)
	out[i] = line
	return out
}

func TestValidateValidSquad(t *testing.T) {
	svc, rec := newService(t)

	res, err := svc.Validate(context.Background(), Request{Lines: fixture.ValidSquadLines, EnforceRules: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Status != StatusValid {
		t.Fatalf("expected valid, got %s (%v)", res.Status, res.Report)
	}
	if len(res.Entries) != 15 || len(res.Squad) != 15 {
		t.Fatalf("expected 15 entries, got %d/%d", len(res.Entries), len(res.Squad))
	}
	for i, id := range fixture.ValidSquad {
		if res.Squad[i].ID != id {
			t.Fatalf("expected squad order to mirror input at %d: want %d got %d", i, id, res.Squad[i].ID)
		}
		if res.Entries[i].Line != fixture.ValidSquadLines[i] {
			t.Fatalf("expected entry %d line %q, got %q", i, fixture.ValidSquadLines[i], res.Entries[i].Line)
		}
	}
	if !res.Report.TotalCost.Equal(decimal.RequireFromString("96.9")) {
		t.Fatalf("expected total 96.9, got %s", res.Report.TotalCost)
	}
	if rec.Validations(true) != 1 {
		t.Fatalf("expected one valid validation recorded, got %d", rec.Validations(true))
	}
	if res.RosterVersion == "" {
		t.Fatalf("expected roster version")
	}
}

func TestValidateWithoutRules(t *testing.T) {
	svc, rec := newService(t)

	res, err := svc.Validate(context.Background(), Request{Lines: fixture.ValidSquadLines[:3]})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Status != StatusResolved || res.Report != nil {
		t.Fatalf("expected resolved without report, got %s %v", res.Status, res.Report)
	}
	if rec.Validations(true)+rec.Validations(false) != 0 {
		t.Fatalf("expected no validation recorded")
	}
}

func TestValidateUnresolved(t *testing.T) {
	svc, _ := newService(t)

	lines := withLine(fixture.ValidSquadLines, 2, "White")
	lines = withLine(lines, 14, "Zzqxv")
	res, err := svc.Validate(context.Background(), Request{Lines: lines, EnforceRules: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Status != StatusUnresolved || res.Report != nil {
		t.Fatalf("expected unresolved without report, got %s", res.Status)
	}
	if !reflect.DeepEqual(res.Missing, []string{"Zzqxv"}) {
		t.Fatalf("expected Zzqxv missing, got %v", res.Missing)
	}
	if len(res.Ambiguous) != 1 || res.Ambiguous[0].Query != "White" {
		t.Fatalf("expected White ambiguous, got %+v", res.Ambiguous)
	}
	want := []string{"Benjamin White (White)", "Joe White (White)"}
	if !reflect.DeepEqual(res.Ambiguous[0].Candidates, want) {
		t.Fatalf("expected %v, got %v", want, res.Ambiguous[0].Candidates)
	}
	if res.Entries[2].Outcome != resolver.Ambiguous || res.Entries[14].Outcome != resolver.NotFound {
		t.Fatalf("expected per-line outcomes, got %s %s", res.Entries[2].Outcome, res.Entries[14].Outcome)
	}
}

func TestValidateBudgetOverride(t *testing.T) {
	svc, rec := newService(t)

	budget := decimal.RequireFromString("96.8")
	res, err := svc.Validate(context.Background(), Request{Lines: fixture.ValidSquadLines, Budget: &budget, EnforceRules: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Status != StatusInvalid {
		t.Fatalf("expected invalid, got %s", res.Status)
	}
	if len(res.Report.Violations) != 1 || res.Report.Violations[0].Kind != squad.KindBudget {
		t.Fatalf("expected single budget violation, got %+v", res.Report.Violations)
	}
	if res.Report.Violations[0].Message != "Total squad cost 96.9 > budget 96.8" {
		t.Fatalf("unexpected message %q", res.Report.Violations[0].Message)
	}
	if rec.Validations(false) != 1 {
		t.Fatalf("expected invalid validation recorded")
	}
}

func TestValidateSkipsBlankLines(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Validate(context.Background(), Request{Lines: []string{"", "   ", " ; "}})
	if !errors.Is(err, ErrNoLines) {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}
	res, err := svc.Validate(context.Background(), Request{Lines: []string{"", "Saka", "  "}})
	if err != nil || len(res.Entries) != 1 {
		t.Fatalf("expected one entry, got %v err=%v", res.Entries, err)
	}
}

func TestValidateCanceledContext(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Validate(ctx, Request{Lines: fixture.ValidSquadLines}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestValidateWithoutRoster(t *testing.T) {
	svc := NewService(players.NewService(&stubStore{}, players.Options{}), Options{})
	if _, err := svc.Validate(context.Background(), Request{Lines: []string{"Saka"}}); !errors.Is(err, roster.ErrNotLoaded) {
		t.Fatalf("expected roster.ErrNotLoaded, got %v", err)
	}
	if !svc.Budget().Equal(squad.DefaultBudget) {
		t.Fatalf("expected default budget, got %s", svc.Budget())
	}
}
