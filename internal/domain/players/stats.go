package players

import "github.com/shopspring/decimal"

// Stats are the season scoring totals FPL publishes per element.
type Stats struct {
	Minutes                  int  `json:"minutes"`
	GoalsScored              int  `json:"goals_scored"`
	Assists                  int  `json:"assists"`
	CleanSheets              int  `json:"clean_sheets"`
	GoalsConceded            int  `json:"goals_conceded"`
	OwnGoals                 int  `json:"own_goals"`
	PenaltiesSaved           int  `json:"penalties_saved"`
	PenaltiesMissed          int  `json:"penalties_missed"`
	YellowCards              int  `json:"yellow_cards"`
	RedCards                 int  `json:"red_cards"`
	Saves                    int  `json:"saves"`
	Bonus                    int  `json:"bonus"`
	BPS                      int  `json:"bps"`
	EventPoints              int  `json:"event_points"`
	Influence                Stat `json:"influence"`
	Creativity               Stat `json:"creativity"`
	Threat                   Stat `json:"threat"`
	ICTIndex                 Stat `json:"ict_index"`
	ExpectedGoals            Stat `json:"expected_goals"`
	ExpectedAssists          Stat `json:"expected_assists"`
	ExpectedGoalInvolvements Stat `json:"expected_goal_involvements"`
	ExpectedGoalsConceded    Stat `json:"expected_goals_conceded"`
	PointsPerGame            Stat `json:"points_per_game"`
	EPThis                   Stat `json:"ep_this"`
	EPNext                   Stat `json:"ep_next"`
}

// Stat is a decimal figure upstream sends as a quoted number. Anything that
// does not parse decodes as null.
type Stat struct {
	decimal.NullDecimal
}

// NewStat builds a valid stat from its text form. It panics on bad input and
// is meant for fixtures.
func NewStat(v string) Stat {
	return Stat{decimal.NewNullDecimal(decimal.RequireFromString(v))}
}

func (s *Stat) UnmarshalJSON(data []byte) error {
	var d decimal.NullDecimal
	if err := d.UnmarshalJSON(data); err != nil {
		*s = Stat{}
		return nil
	}
	s.NullDecimal = d
	return nil
}
