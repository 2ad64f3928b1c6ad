package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
)

// Provider returns static data useful for local testing and bootstrapping.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchBootstrap returns the deterministic fixture roster.
func (p *Provider) FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	if err := ctx.Err(); err != nil {
		return bootstrap.Bootstrap{}, err
	}
	return Bootstrap(), nil
}

// FetchFixtures returns the deterministic fixture calendar.
func (p *Provider) FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Fixtures(), nil
}

// FetchPlayerHistory returns the canned history for playerID, empty for
// players that have not played.
func (p *Provider) FetchPlayerHistory(ctx context.Context, playerID int) ([]fixtures.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return History(playerID), nil
}

// ValidSquad lists the ids of a fifteen-player squad from Bootstrap that
// satisfies every default rule (96.9m total).
var ValidSquad = []int{1, 2, 11, 5, 20, 21, 30, 498, 45, 46, 42, 43, 51, 52, 53}

// ValidSquadLines is ValidSquad written as user input lines.
var ValidSquadLines = []string{
	"Raya",
	"Emiliano Martínez",
	"White; Arsenal",
	"Gabriel",
	"Alexander-Arnold",
	"Virgil",
	"Gvardiol",
	"White; NEW",
	"Mbeumo",
	"Rogers",
	"Mitoma",
	"Gordon",
	"Isak",
	"Watkins",
	"Wood",
}

// Bootstrap builds the fixture roster. Two players share the surname White,
// one player has no numeric price and one element has no id.
func Bootstrap() bootstrap.Bootstrap {
	id := bootstrap.IntPtr
	return bootstrap.Bootstrap{
		ElementTypes: []bootstrap.ElementType{
			{ID: id(1), SingularName: "Goalkeeper", SingularNameShort: "GKP"},
			{ID: id(2), SingularName: "Defender", SingularNameShort: "DEF"},
			{ID: id(3), SingularName: "Midfielder", SingularNameShort: "MID"},
			{ID: id(4), SingularName: "Forward", SingularNameShort: "FWD"},
		},
		Teams: []bootstrap.Team{
			{ID: id(1), Name: "Arsenal", ShortName: "ARS", Code: "3"},
			{ID: id(2), Name: "Aston Villa", ShortName: "AVL", Code: "7"},
			{ID: id(4), Name: "Brentford", ShortName: "BRE", Code: "94"},
			{ID: id(5), Name: "Brighton", ShortName: "BHA", Code: "36"},
			{ID: id(12), Name: "Liverpool", ShortName: "LIV", Code: "14"},
			{ID: id(13), Name: "Man City", ShortName: "MCI", Code: "43"},
			{ID: id(15), Name: "Newcastle", ShortName: "NEW", Code: "4"},
			{ID: id(16), Name: "Nott'm Forest", ShortName: "NFO", Code: "17"},
			{ID: id(20), Name: "Wolves", ShortName: "WOL", Code: "39"},
		},
		Elements: []bootstrap.Element{
			element(1, "David", "Raya Martín", "Raya", 1, 56, 1),
			element(2, "Emiliano", "Martínez Romero", "Martinez", 1, 45, 2),
			element(3, "Jurriën", "Timber", "J.Timber", 2, 55, 1),
			element(5, "Gabriel", "dos Santos Magalhães", "Gabriel", 2, 60, 1),
			element(11, "Benjamin", "White", "White", 2, 54, 1),
			element(20, "Trent", "Alexander-Arnold", "Alexander-Arnold", 2, 71, 12),
			element(21, "Virgil", "van Dijk", "Virgil", 2, 63, 12),
			element(30, "Joško", "Gvardiol", "Gvardiol", 2, 60, 13),
			salah(),
			element(42, "Kaoru", "Mitoma", "Mitoma", 3, 65, 5),
			element(43, "Anthony", "Gordon", "Gordon", 3, 75, 15),
			element(44, "Bukayo", "Saka", "Saka", 3, 100, 1),
			element(45, "Bryan", "Mbeumo", "Mbeumo", 3, 75, 4),
			element(46, "Morgan", "Rogers", "Rogers", 3, 55, 2),
			element(498, "Joe", "White", "White", 3, 45, 15),
			element(50, "Erling", "Haaland", "Haaland", 4, 150, 13),
			element(51, "Alexander", "Isak", "Isak", 4, 85, 15),
			element(52, "Ollie", "Watkins", "Watkins", 4, 90, 2),
			element(53, "Chris", "Wood", "Wood", 4, 70, 16),
			element(62, "Rayan", "Aït-Nouri", "Aït-Nouri", 2, 45, 20),
			{ID: id(61), FirstName: "Danny", SecondName: "Welbeck", WebName: "Welbeck", ElementType: 4, Team: id(5)},
			{FirstName: "Broken", SecondName: "Entry", WebName: "Entry", ElementType: 3, NowCost: bootstrap.NewPrice(40), Team: id(1)},
		},
	}
}

func element(pid int, first, second, web string, elementType int, tenths int64, team int) bootstrap.Element {
	return bootstrap.Element{
		ID:          bootstrap.IntPtr(pid),
		FirstName:   first,
		SecondName:  second,
		WebName:     web,
		ElementType: elementType,
		NowCost:     bootstrap.NewPrice(tenths),
		Team:        bootstrap.IntPtr(team),
	}
}

// salah carries a full set of season stats.
func salah() bootstrap.Element {
	el := element(40, "Mohamed", "Salah", "M.Salah", 3, 130, 12)
	el.TotalPoints = 12
	el.Status = "a"
	el.Stats = players.Stats{
		Minutes:         90,
		GoalsScored:     1,
		Assists:         1,
		Bonus:           3,
		BPS:             45,
		EventPoints:     12,
		Influence:       players.NewStat("55.2"),
		Creativity:      players.NewStat("38.1"),
		Threat:          players.NewStat("46.0"),
		ICTIndex:        players.NewStat("13.9"),
		ExpectedGoals:   players.NewStat("0.87"),
		ExpectedAssists: players.NewStat("0.31"),
		PointsPerGame:   players.NewStat("12.0"),
	}
	return el
}

// Fixtures builds the fixture calendar: three played gameweek-1 matches,
// two upcoming gameweek-2 matches and one unscheduled fixture.
func Fixtures() []fixtures.Fixture {
	ev := fixtures.IntPtr
	return []fixtures.Fixture{
		played(1, 1, kickoff(2024, 8, 16, 19, 0), 1, 20, 2, 0),
		played(2, 1, kickoff(2024, 8, 17, 14, 0), 5, 12, 0, 2),
		played(3, 1, kickoff(2024, 8, 17, 16, 30), 15, 4, 1, 0),
		{ID: 4, Event: ev(2), KickoffTime: kickoff(2024, 8, 24, 14, 0), TeamH: 12, TeamA: 13},
		{ID: 5, Event: ev(2), KickoffTime: kickoff(2024, 8, 24, 16, 30), TeamH: 2, TeamA: 1},
		{ID: 6, TeamH: 16, TeamA: 13},
	}
}

// History returns the per-match history for playerID.
func History(playerID int) []fixtures.HistoryEntry {
	switch playerID {
	case 40:
		return []fixtures.HistoryEntry{
			{Element: 40, Fixture: 2, OpponentTeam: 5, Round: 1, TotalPoints: 12, Minutes: 90, GoalsScored: 1, Assists: 1, Bonus: 3, BPS: 45, Value: 130},
		}
	case 11:
		return []fixtures.HistoryEntry{
			{Element: 11, Fixture: 1, OpponentTeam: 20, Round: 1, WasHome: true, TotalPoints: 6, Minutes: 90, CleanSheets: 1, Value: 54},
		}
	default:
		return []fixtures.HistoryEntry{}
	}
}

func played(id, event int, at *time.Time, home, away, homeGoals, awayGoals int) fixtures.Fixture {
	return fixtures.Fixture{
		ID:          id,
		Event:       fixtures.IntPtr(event),
		KickoffTime: at,
		TeamH:       home,
		TeamA:       away,
		TeamHScore:  fixtures.IntPtr(homeGoals),
		TeamAScore:  fixtures.IntPtr(awayGoals),
		Finished:    true,
	}
}

func kickoff(year int, month time.Month, day, hour, minute int) *time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &t
}
