package teammatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry no combining mark under NFD and need an explicit ASCII form.
var letterReplacer = strings.NewReplacer(
	"ß", "ss",
	"ø", "o", "Ø", "O",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ı", "i",
)

// Normalize reduces a team name to the form used for comparison: accents folded, lower
// case, punctuation removed, known aliases resolved and club-form tokens stripped from
// either end.
func Normalize(name string) string {
	s := foldAccents(name)
	s = strings.ToLower(s)
	s = cleanPunctuation(s)
	if s == "" {
		return ""
	}

	if alias, ok := knownAliases[s]; ok {
		return alias
	}

	s = stripClubTokens(s)
	if alias, ok := knownAliases[s]; ok {
		return alias
	}
	return s
}

func foldAccents(s string) string {
	s = letterReplacer.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func cleanPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString(" and ")
		case r == '\'' || r == '’' || r == '`' || r == '.':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripClubTokens(s string) string {
	tokens := strings.Fields(s)
	for len(tokens) > 1 && isStrippable(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) > 1 && isStrippable(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}

func isStrippable(token string) bool {
	if _, ok := clubTokens[token]; ok {
		return true
	}
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Tokens returns the distinct words of an already normalized name.
func Tokens(normalized string) []string {
	fields := strings.Fields(normalized)
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Initials returns the first letter of each word of a normalized name.
func Initials(normalized string) string {
	var b strings.Builder
	for _, f := range strings.Fields(normalized) {
		for _, r := range f {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}
