package teammatch

// Club-form words that say nothing about which club it is.
var clubTokens = map[string]struct{}{
	"fc": {}, "afc": {}, "cf": {}, "sc": {}, "ac": {}, "as": {}, "ssc": {}, "rc": {},
	"fk": {}, "sk": {}, "nk": {}, "bk": {}, "cd": {}, "ud": {}, "sv": {}, "vfb": {},
	"vfl": {}, "tsg": {}, "club": {}, "calcio": {}, "rugby": {}, "stade": {},
}

// Nicknames and short forms mapped to the normalized full name. Keys and values are
// already in normalized form.
var knownAliases = map[string]string{
	"man utd":              "manchester united",
	"man united":           "manchester united",
	"manchester utd":       "manchester united",
	"man city":             "manchester city",
	"spurs":                "tottenham hotspur",
	"wolves":               "wolverhampton wanderers",
	"nottm forest":         "nottingham forest",
	"notts forest":         "nottingham forest",
	"sheffield utd":        "sheffield united",
	"brighton hove albion": "brighton and hove albion",
	"west brom":            "west bromwich albion",
	"qpr":                  "queens park rangers",
	"psg":                  "paris saint germain",
	"paris sg":             "paris saint germain",
	"inter":                "internazionale milano",
	"inter milan":          "internazionale milano",
	"internazionale":       "internazionale milano",
	"bayern munich":        "bayern munchen",
	"bayern":               "bayern munchen",
	"atletico madrid":      "atletico de madrid",
	"atleti":               "atletico de madrid",
	"barca":                "barcelona",
	"gladbach":             "borussia monchengladbach",
	"leverkusen":           "bayer 04 leverkusen",
	"all blacks":           "new zealand",
	"wallabies":            "australia",
	"springboks":           "south africa",
	"boks":                 "south africa",
	"les bleus":            "france",
	"azzurri":              "italy",
	"pumas":                "argentina",
}
