package teammatch

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	aliasScore       = 0.98
	containsBase     = 0.85
	containsSpan     = 0.10
	initialsScore    = 0.80
	minContainsRunes = 3
)

// Weights of the edit-distance and token-overlap blend.
type Weights struct {
	Levenshtein float64
	Token       float64
}

func DefaultWeights() Weights {
	return Weights{Levenshtein: 0.6, Token: 0.4}
}

// Matcher scores external team names against internal candidates. It keeps no state
// between calls.
type Matcher struct {
	weights Weights
}

func NewMatcher(weights Weights) *Matcher {
	if weights.Levenshtein <= 0 && weights.Token <= 0 {
		weights = DefaultWeights()
	}
	return &Matcher{weights: weights}
}

// Distance is the rune-level Levenshtein distance between two strings.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity maps the edit distance onto [0,1] relative to the longer string.
func Similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}

// TokenOverlap is the Jaccard index of the two word sets.
func TokenOverlap(a, b string) float64 {
	ta, tb := Tokens(a), Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		set[t] = struct{}{}
	}
	shared := 0
	for _, t := range tb {
		if _, ok := set[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

// Score grades one candidate against an external name.
func (m *Matcher) Score(name string, candidate Candidate) Match {
	external := Normalize(name)
	internal := Normalize(candidate.Name)
	out := Match{
		Candidate: candidate,
		Method:    MethodNone,
		Distance:  Distance(external, internal),
	}
	if external == "" || internal == "" {
		out.Confidence = ConfidenceNone
		return out
	}

	consider := func(score float64, method Method) {
		if score > out.Score {
			out.Score = score
			out.Method = method
		}
	}

	if external == internal {
		consider(1, MethodExact)
	}
	for _, alias := range candidate.Aliases {
		if Normalize(alias) == external {
			consider(aliasScore, MethodAlias)
			break
		}
	}
	consider(containsScore(external, internal), MethodContains)

	lev := Similarity(external, internal)
	tok := TokenOverlap(external, internal)
	blend := m.weights.Levenshtein*lev + m.weights.Token*tok
	if m.weights.Levenshtein*lev >= m.weights.Token*tok {
		consider(blend, MethodLevenshtein)
	} else {
		consider(blend, MethodToken)
	}

	if initialsMatch(external, internal, candidate.ShortName) {
		consider(initialsScore, MethodInitials)
	}

	out.Confidence = ConfidenceFor(out.Score)
	return out
}

// Rank scores every candidate and returns them best first. limit <= 0 keeps all.
func (m *Matcher) Rank(name string, candidates []Candidate, limit int) []Match {
	out := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, m.Score(name, c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return better(out[i], out[j])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Best returns the top candidate scoring at least threshold.
func (m *Matcher) Best(name string, candidates []Candidate, threshold float64) (Match, bool) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return Match{}, false
	}
	var (
		best  Match
		found bool
	)
	for _, c := range candidates {
		match := m.Score(name, c)
		if match.Score < threshold || match.Score == 0 {
			continue
		}
		if !found || better(match, best) {
			best = match
			found = true
		}
	}
	return best, found
}

func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Candidate.ID < b.Candidate.ID
}

func containsScore(a, b string) float64 {
	short, long := a, b
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	shortLen := utf8.RuneCountInString(short)
	if short == long || shortLen < minContainsRunes {
		return 0
	}
	if !strings.Contains(" "+long+" ", " "+short+" ") {
		return 0
	}
	return containsBase + containsSpan*float64(shortLen)/float64(utf8.RuneCountInString(long))
}

func initialsMatch(external, internal, shortName string) bool {
	code := strings.ToLower(strings.TrimSpace(shortName))
	if code != "" && !strings.Contains(external, " ") && external == code {
		return true
	}
	if !strings.Contains(external, " ") && utf8.RuneCountInString(external) >= 2 {
		if initials := Initials(internal); utf8.RuneCountInString(initials) >= 2 && external == initials {
			return true
		}
	}
	if code != "" && strings.Contains(external, " ") && Initials(external) == code {
		return true
	}
	return false
}
