// Package extract provides pure text extractors for intake fields. Every
// function is total: bad input yields a "no match" result, never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// AgeStatus qualifies the outcome of an age extraction so the caller can
// emit a range-specific corrective prompt.
type AgeStatus int

const (
	AgeOK AgeStatus = iota
	AgeNotFound
	AgeTooYoung
	AgeTooOld
)

const (
	minAge = 18
	maxAge = 100
)

var ageTokenRe = regexp.MustCompile(`\b\d{1,3}\b`)

// Age scans text for a standalone 1-3 digit number in [18,100] and returns
// the first one. When the whole trimmed input is a single out-of-range
// integer it reports AgeTooYoung/AgeTooOld instead of a generic miss.
func Age(text string) (int, AgeStatus) {
	for _, tok := range ageTokenRe.FindAllString(strings.TrimSpace(text), -1) {
		age, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if age >= minAge && age <= maxAge {
			return age, AgeOK
		}
	}

	clean := strings.TrimSpace(text)
	if clean != "" && isAllDigits(clean) {
		age, err := strconv.Atoi(clean)
		if err == nil {
			if age < minAge {
				return 0, AgeTooYoung
			}
			return 0, AgeTooOld
		}
	}

	return 0, AgeNotFound
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Spanish phone shapes, tried in order. There is deliberately no generic
// digit-count fallback: the collection flow must be able to tell
// phone-shaped input apart from emails and names.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+34\s*\d{9}`),
	regexp.MustCompile(`\+34\s*\d{3}\s*\d{3}\s*\d{3}`),
	regexp.MustCompile(`\d{9}`),
	regexp.MustCompile(`\d{3}\s*\d{3}\s*\d{3}`),
}

var spaceRe = regexp.MustCompile(`\s+`)

// Phone returns the first phone-shaped match with internal whitespace
// stripped, or false when nothing matches.
func Phone(text string) (string, bool) {
	for _, re := range phonePatterns {
		if m := re.FindString(text); m != "" {
			return spaceRe.ReplaceAllString(m, ""), true
		}
	}
	return "", false
}

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Email returns the first local@domain.tld match verbatim.
func Email(text string) (string, bool) {
	if m := emailRe.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

// Name validates a full name: at least two whitespace-separated tokens,
// letters only (accents allowed). Returns the trimmed name on success.
func Name(text string) (string, bool) {
	clean := strings.TrimSpace(text)
	if len(clean) <= 2 {
		return "", false
	}
	tokens := strings.Fields(clean)
	if len(tokens) < 2 {
		return "", false
	}
	for _, tok := range tokens {
		for _, r := range tok {
			if !unicode.IsLetter(r) {
				return "", false
			}
		}
	}
	return clean, true
}

// Strongly affirmative words: these always signal consent.
var affirmativeWords = map[string]bool{
	"sí": true, "si": true, "yes": true, "ok": true, "okay": true,
	"claro": true, "correcto": true, "exacto": true, "afirmativo": true,
}

// Context-dependent words: affirmative only as the entire reply (alone or
// followed by a short courtesy token), so "bueno" inside an unrelated
// sentence is never misread as consent.
var contextAffirmativeWords = map[string]bool{
	"perfecto": true, "excelente": true, "genial": true, "bueno": true, "vale": true,
}

var courtesyTokens = map[string]bool{
	"gracias": true, "ok": true, "vale": true,
}

func wordTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(strings.TrimSpace(text)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// IsAffirmative classifies trimmed lowercase input as an affirmative
// judgment using the two-tier rule.
func IsAffirmative(text string) bool {
	tokens := wordTokens(text)
	for _, tok := range tokens {
		if affirmativeWords[tok] {
			return true
		}
	}
	if len(tokens) == 1 && contextAffirmativeWords[tokens[0]] {
		return true
	}
	if len(tokens) == 2 && contextAffirmativeWords[tokens[0]] && courtesyTokens[tokens[1]] {
		return true
	}
	return false
}

var negativeWords = map[string]bool{
	"no": true, "nop": true, "nope": true, "negativo": true,
	"incorrecto": true, "mal": true, "error": true,
}

var negativePhrases = []string{"no me interesa", "no por ahora"}

// IsNegative classifies input as a negative judgment.
func IsNegative(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range negativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, tok := range wordTokens(text) {
		if negativeWords[tok] {
			return true
		}
	}
	return false
}

// Self-introduction phrasings, checked in order.
var namePhrases = []string{
	"me llamo", "mi nombre es", "soy", "me llaman", "mi nombre completo es",
}

// UserName extracts a remembered name from phrasing like "me llamo Ana
// García". At most two tokens are kept, title-cased.
func UserName(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range namePhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(text[idx+len(phrase):])
		if len(rest) <= 2 {
			continue
		}
		parts := strings.Fields(rest)
		if len(parts) > 2 {
			parts = parts[:2]
		}
		for i, p := range parts {
			parts[i] = titleCase(p)
		}
		return strings.Join(parts, " "), true
	}
	return "", false
}

func titleCase(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
