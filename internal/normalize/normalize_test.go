package normalize

import "testing"

func TestStringStripsAccentsAndCase(t *testing.T) {
	cases := map[string]string{
		"Raya Martín":          "raya martin",
		"J.Timber":             "j timber",
		"J Timber":             "j timber",
		"Alexander-Arnold":     "alexander arnold",
		"  Ødegaard  ":         "ødegaard",
		"Gabriel   Magalhães":  "gabriel magalhaes",
		"N'Golo\tKanté":        "n'golo kante",
		"":                     "",
		"...":                  "",
		"M. Salah":             "m salah",
		"Dominik Szoboszlai\n": "dominik szoboszlai",
	}
	for in, want := range cases {
		if got := String(in); got != want {
			t.Fatalf("String(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestStringIsIdempotent(t *testing.T) {
	inputs := []string{
		"Raya Martín", "J.Timber", "Ødegaard", "İlkay Gündoğan", "ℌarry Kane",
		"Son Heung-min", "Mitrović", "  a  .  b - c ", "Ä", "",
	}
	for _, in := range inputs {
		once := String(in)
		if twice := String(once); twice != once {
			t.Fatalf("expected idempotent normalization for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSeparatorAndAccentVariantsCollide(t *testing.T) {
	if String("J.Timber") != String("J Timber") {
		t.Fatalf("expected dotted and spaced forms to match")
	}
	if String("Raya Martín") != String("raya martin") {
		t.Fatalf("expected accented and plain forms to match")
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Arsenal", "ARSENAL") {
		t.Fatalf("expected case-insensitive equality")
	}
	if Equal("", "") {
		t.Fatalf("expected empty values to never be equal")
	}
	if Equal("Arsenal", "Newcastle") {
		t.Fatalf("expected different names to differ")
	}
}
