package setting

import "time"

const (
	KeyScoringExactPoints         = "scoring.exact_points"
	KeyScoringOutcomePoints       = "scoring.outcome_points"
	KeyScoringMissPoints          = "scoring.miss_points"
	KeyLiveSyncEnabled            = "live_sync.enabled"
	KeyLiveSyncAutoFinishFootball = "live_sync.auto_finish_football"
	KeyLiveSyncAutoFinishRugby    = "live_sync.auto_finish_rugby"
	KeyLiveSyncMatchThreshold     = "live_sync.match_threshold"
)

type ValueType string

const (
	TypeInt      ValueType = "int"
	TypeBool     ValueType = "bool"
	TypeDuration ValueType = "duration"
	TypeRatio    ValueType = "ratio"
)

// Setting is one admin-editable configuration value stored as text.
type Setting struct {
	Key       string
	Value     string
	UpdatedBy string
	UpdatedAt time.Time
}

// Definition describes a known key and how its value is parsed.
type Definition struct {
	Key         string
	Type        ValueType
	Description string
}

var Definitions = []Definition{
	{Key: KeyScoringExactPoints, Type: TypeInt, Description: "points for an exact score prediction"},
	{Key: KeyScoringOutcomePoints, Type: TypeInt, Description: "points for a correct match outcome"},
	{Key: KeyScoringMissPoints, Type: TypeInt, Description: "points for a wrong prediction"},
	{Key: KeyLiveSyncEnabled, Type: TypeBool, Description: "whether live score sync writes updates"},
	{Key: KeyLiveSyncAutoFinishFootball, Type: TypeDuration, Description: "time after kickoff when a live football game is closed"},
	{Key: KeyLiveSyncAutoFinishRugby, Type: TypeDuration, Description: "time after kickoff when a live rugby game is closed"},
	{Key: KeyLiveSyncMatchThreshold, Type: TypeRatio, Description: "minimum team-name similarity for a match"},
}

func Lookup(key string) (Definition, bool) {
	for _, def := range Definitions {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}
