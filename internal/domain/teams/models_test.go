package teams

import (
	"encoding/json"
	"testing"
)

func TestTeamJSONShape(t *testing.T) {
	data, err := json.Marshal(Team{ID: 12, Name: "Liverpool", ShortName: "LIV", Code: "14"})
	if err != nil {
		t.Fatalf("marshal team: %v", err)
	}
	want := `{"id":12,"name":"Liverpool","short_name":"LIV","code":"14"}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}
