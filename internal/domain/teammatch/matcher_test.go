package teammatch

import (
	"math"
	"testing"
)

func footballCandidates() []Candidate {
	return []Candidate{
		{ID: "t-ars", Name: "Arsenal", ShortName: "ARS", Aliases: []string{"The Gunners"}},
		{ID: "t-mun", Name: "Manchester United", ShortName: "MUN"},
		{ID: "t-mci", Name: "Manchester City", ShortName: "MCI"},
		{ID: "t-tot", Name: "Tottenham Hotspur", ShortName: "TOT"},
		{ID: "t-wol", Name: "Wolverhampton Wanderers", ShortName: "WOL"},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDistanceAndSimilarity(t *testing.T) {
	t.Parallel()

	if got := Distance("kitten", "sitting"); got != 3 {
		t.Fatalf("unexpected distance: got=%d want=3", got)
	}
	if got := Distance("köln", "koln"); got != 1 {
		t.Fatalf("distance should count runes: got=%d want=1", got)
	}
	if got := Similarity("kitten", "sitting"); !almostEqual(got, 1-3.0/7.0) {
		t.Fatalf("unexpected similarity: got=%v", got)
	}
	if got := Similarity("", ""); got != 1 {
		t.Fatalf("empty strings should be identical: got=%v", got)
	}
	if got := Similarity("abc", ""); got != 0 {
		t.Fatalf("unexpected similarity against empty: got=%v", got)
	}
	if got := TokenOverlap("a b", "b c"); !almostEqual(got, 1.0/3.0) {
		t.Fatalf("unexpected token overlap: got=%v", got)
	}
}

func TestMatcherBest(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultWeights())
	tests := []struct {
		name       string
		external   string
		threshold  float64
		wantID     string
		wantMethod Method
		wantOK     bool
	}{
		{name: "provider suffix", external: "Manchester United FC", threshold: 0.75, wantID: "t-mun", wantMethod: MethodExact, wantOK: true},
		{name: "known nickname", external: "Man Utd", threshold: 0.75, wantID: "t-mun", wantMethod: MethodExact, wantOK: true},
		{name: "alias table", external: "Spurs", threshold: 0.75, wantID: "t-tot", wantMethod: MethodExact, wantOK: true},
		{name: "candidate alias", external: "The Gunners", threshold: 0.75, wantID: "t-ars", wantMethod: MethodAlias, wantOK: true},
		{name: "short form", external: "Tottenham", threshold: 0.75, wantID: "t-tot", wantMethod: MethodContains, wantOK: true},
		{name: "typo", external: "Manchster City", threshold: 0.6, wantID: "t-mci", wantMethod: MethodLevenshtein, wantOK: true},
		{name: "typo below strict threshold", external: "Manchster City", threshold: 0.75, wantOK: false},
		{name: "unknown club", external: "Real Madrid CF", threshold: 0.5, wantOK: false},
		{name: "empty name", external: "", threshold: 0, wantOK: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := m.Best(tc.external, footballCandidates(), tc.threshold)
			if ok != tc.wantOK {
				t.Fatalf("unexpected match state: got=%v want=%v (match=%+v)", ok, tc.wantOK, got)
			}
			if !ok {
				return
			}
			if got.Candidate.ID != tc.wantID {
				t.Fatalf("unexpected candidate: got=%s want=%s", got.Candidate.ID, tc.wantID)
			}
			if got.Method != tc.wantMethod {
				t.Fatalf("unexpected method: got=%s want=%s", got.Method, tc.wantMethod)
			}
		})
	}
}

func TestMatcherScoreValues(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultWeights())

	contains := m.Score("Tottenham", Candidate{ID: "t-tot", Name: "Tottenham Hotspur"})
	if want := 0.85 + 0.1*9.0/17.0; !almostEqual(contains.Score, want) {
		t.Fatalf("unexpected contains score: got=%v want=%v", contains.Score, want)
	}
	if contains.Confidence != ConfidenceHigh {
		t.Fatalf("unexpected confidence: got=%s want=%s", contains.Confidence, ConfidenceHigh)
	}

	typo := m.Score("Manchster City", Candidate{ID: "t-mci", Name: "Manchester City"})
	if want := 0.6*(14.0/15.0) + 0.4*(1.0/3.0); !almostEqual(typo.Score, want) {
		t.Fatalf("unexpected blended score: got=%v want=%v", typo.Score, want)
	}
	if typo.Distance != 1 {
		t.Fatalf("unexpected distance: got=%d want=1", typo.Distance)
	}
	if typo.Confidence != ConfidenceLow {
		t.Fatalf("unexpected confidence: got=%s want=%s", typo.Confidence, ConfidenceLow)
	}
}

func TestMatcherInitials(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultWeights())
	candidates := []Candidate{
		{ID: "r-lei", Name: "Leicester Tigers", ShortName: "LEI"},
		{ID: "r-nor", Name: "Northampton Saints", ShortName: "NOR"},
	}

	got, ok := m.Best("LEI", candidates, 0.75)
	if !ok || got.Candidate.ID != "r-lei" || got.Method != MethodInitials {
		t.Fatalf("unexpected short code match: ok=%v match=%+v", ok, got)
	}

	got, ok = m.Best("NS", candidates, 0.75)
	if !ok || got.Candidate.ID != "r-nor" || got.Method != MethodInitials {
		t.Fatalf("unexpected initials match: ok=%v match=%+v", ok, got)
	}
}

func TestMatcherTieBreaksOnID(t *testing.T) {
	t.Parallel()

	m := NewMatcher(Weights{})
	candidates := []Candidate{
		{ID: "b", Name: "Arsenal"},
		{ID: "a", Name: "Arsenal FC"},
	}
	got, ok := m.Best("Arsenal", candidates, 0.9)
	if !ok || got.Candidate.ID != "a" {
		t.Fatalf("unexpected tie break: ok=%v id=%s", ok, got.Candidate.ID)
	}
}

func TestMatcherBestRejectsNonFiniteThreshold(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultWeights())
	candidates := []Candidate{{ID: "t1", Name: "Manchester City"}}
	for _, threshold := range []float64{math.NaN(), math.Inf(-1)} {
		if got, ok := m.Best("Leeds United", candidates, threshold); ok {
			t.Fatalf("threshold %v: unexpected match id=%s score=%.3f", threshold, got.Candidate.ID, got.Score)
		}
	}
}

func TestMatcherRank(t *testing.T) {
	t.Parallel()

	m := NewMatcher(DefaultWeights())
	ranked := m.Rank("Manchester City FC", footballCandidates(), 2)
	if len(ranked) != 2 {
		t.Fatalf("unexpected rank size: got=%d want=2", len(ranked))
	}
	if ranked[0].Candidate.ID != "t-mci" || ranked[0].Score != 1 {
		t.Fatalf("unexpected top suggestion: %+v", ranked[0])
	}
	if ranked[1].Candidate.ID != "t-mun" {
		t.Fatalf("unexpected runner-up: got=%s want=t-mun", ranked[1].Candidate.ID)
	}
	if ranked[0].Score < ranked[1].Score {
		t.Fatalf("rank should be sorted by score")
	}
}

func TestConfidenceFor(t *testing.T) {
	t.Parallel()

	cases := map[float64]Confidence{
		1:    ConfidenceHigh,
		0.9:  ConfidenceHigh,
		0.75: ConfidenceMedium,
		0.5:  ConfidenceLow,
		0.49: ConfidenceNone,
	}
	for score, want := range cases {
		if got := ConfidenceFor(score); got != want {
			t.Fatalf("unexpected confidence for %v: got=%s want=%s", score, got, want)
		}
	}
}
