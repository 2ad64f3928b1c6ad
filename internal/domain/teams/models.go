package teams

// Team is the roster's view of a club. Players reference it by ID.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Code      string `json:"code"`
}
