package footballdata

// matchesEnvelope is the v4 /competitions/{code}/matches response, trimmed to what the sync reads.
type matchesEnvelope struct {
	Competition competitionRef `json:"competition"`
	ResultSet   resultSet      `json:"resultSet"`
	Matches     []matchItem    `json:"matches"`
}

type competitionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type resultSet struct {
	Count  int    `json:"count"`
	First  string `json:"first"`
	Last   string `json:"last"`
	Played int    `json:"played"`
}

type matchItem struct {
	ID          int64          `json:"id"`
	UTCDate     string         `json:"utcDate"`
	Status      string         `json:"status"`
	Minute      any            `json:"minute"`
	InjuryTime  *int           `json:"injuryTime"`
	Matchday    *int           `json:"matchday"`
	Stage       string         `json:"stage"`
	LastUpdated string         `json:"lastUpdated"`
	Competition competitionRef `json:"competition"`
	HomeTeam    teamRef        `json:"homeTeam"`
	AwayTeam    teamRef        `json:"awayTeam"`
	Score       score          `json:"score"`
}

type teamRef struct {
	ID        *int64 `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

type score struct {
	Winner   *string    `json:"winner"`
	Duration string     `json:"duration"`
	FullTime scoreSides `json:"fullTime"`
	HalfTime scoreSides `json:"halfTime"`
}

type scoreSides struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type apiError struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}
