package teammatch

type Method string

const (
	MethodExact       Method = "exact"
	MethodAlias       Method = "alias"
	MethodContains    Method = "contains"
	MethodLevenshtein Method = "levenshtein"
	MethodToken       Method = "token"
	MethodInitials    Method = "initials"
	MethodNone        Method = "none"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

const (
	HighConfidenceThreshold   = 0.9
	MediumConfidenceThreshold = 0.7
	LowConfidenceThreshold    = 0.5
)

// Candidate is an internal team that an external name may refer to.
type Candidate struct {
	ID        string
	Name      string
	ShortName string
	Aliases   []string
}

// Match is a scored candidate for one external name.
type Match struct {
	Candidate  Candidate
	Score      float64
	Method     Method
	Distance   int
	Confidence Confidence
}

func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= HighConfidenceThreshold:
		return ConfidenceHigh
	case score >= MediumConfidenceThreshold:
		return ConfidenceMedium
	case score >= LowConfidenceThreshold:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}
