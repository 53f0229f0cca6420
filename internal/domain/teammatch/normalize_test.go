package teammatch

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Manchester United FC", want: "manchester united"},
		{in: "Man Utd", want: "manchester united"},
		{in: "Paris Saint-Germain FC", want: "paris saint germain"},
		{in: "PSG", want: "paris saint germain"},
		{in: "Club Atlético de Madrid", want: "atletico de madrid"},
		{in: "1. FC Köln", want: "koln"},
		{in: "Brighton & Hove Albion FC", want: "brighton and hove albion"},
		{in: "Nott'm Forest", want: "nottingham forest"},
		{in: "Borussia Mönchengladbach", want: "borussia monchengladbach"},
		{in: "São Paulo", want: "sao paulo"},
		{in: "Bodø/Glimt", want: "bodo glimt"},
		{in: "FC Schalke 04", want: "schalke"},
		{in: "Stade Toulousain", want: "toulousain"},
		{in: "Wolves", want: "wolverhampton wanderers"},
		{in: "Springboks", want: "south africa"},
		{in: "  AFC   Bournemouth ", want: "bournemouth"},
		{in: "FC", want: "fc"},
		{in: "   ", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("unexpected normalized name: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestTokensAndInitials(t *testing.T) {
	t.Parallel()

	if got := Tokens("real real madrid"); !reflect.DeepEqual(got, []string{"real", "madrid"}) {
		t.Fatalf("unexpected tokens: got=%v", got)
	}
	if got := Initials("queens park rangers"); got != "qpr" {
		t.Fatalf("unexpected initials: got=%q want=%q", got, "qpr")
	}
	if got := Initials(""); got != "" {
		t.Fatalf("unexpected initials for empty name: got=%q", got)
	}
}
