package extract

import (
	"regexp"
	"strings"
)

var (
	parentheticalRe     = regexp.MustCompile(`\([^)]*\)`)
	leadingHonorificRe  = regexp.MustCompile(`^(?i:mr|mrs|ms|mstr|miss|dr)\.?\s+`)
	trailingHonorificRe = regexp.MustCompile(`\s+(?i:mr|mrs|ms|mstr|miss|dr)\.?$`)
	trailingFlightRe    = regexp.MustCompile(`\s+(?i:flight)\b.*$`)
	surnameFirstRe      = regexp.MustCompile(`^([A-Za-z'-]+)/([A-Za-z'. -]+)$`)
)

// NormalizeName cleans a raw passenger name capture into "Given Middle
// Surname" title case. Idempotent: normalized input passes through
// unchanged.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	name = parentheticalRe.ReplaceAllString(name, " ")

	// Only the first passenger when multiple are newline-separated
	if idx := strings.IndexAny(name, "\r\n"); idx >= 0 {
		name = name[:idx]
	}

	name = CollapseWhitespace(name)
	name = trailingFlightRe.ReplaceAllString(name, "")
	name = leadingHonorificRe.ReplaceAllString(name, "")
	name = trailingHonorificRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	// SURNAME/GIVEN MIDDLE becomes Given Middle Surname
	if m := surnameFirstRe.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(m[2]) + " " + m[1]
	}

	tokens := strings.Fields(name)
	for i, tok := range tokens {
		tokens[i] = titleCaseToken(tok)
	}
	return strings.Join(tokens, " ")
}

// FirstNameToken returns the leading token of a normalized name, used for
// the passenger substring lookup
func FirstNameToken(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

func titleCaseToken(tok string) string {
	if tok == "" {
		return tok
	}
	lower := strings.ToLower(tok)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
