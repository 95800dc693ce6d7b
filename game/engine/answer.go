package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// answerAlternativeSep separates accepted alternatives in a free-text answer.
const answerAlternativeSep = "|"

var foldCase = cases.Fold()

// normalizeAnswer strips diacritics, folds case, drops punctuation and
// collapses whitespace so "Noé" and " noe " compare equal.
func normalizeAnswer(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	stripped = foldCase.String(stripped)
	stripped = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, stripped)
	return strings.Join(strings.Fields(stripped), " ")
}

// acceptedAnswers expands both languages of an answer into their alternatives.
func acceptedAnswers(answer Text) []string {
	var out []string
	for _, raw := range []string{answer.PT, answer.EN} {
		for _, alt := range strings.Split(raw, answerAlternativeSep) {
			if n := normalizeAnswer(alt); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// MatchesAnswer reports whether reply matches any accepted answer in either
// language.
func MatchesAnswer(reply string, answer Text) bool {
	r := normalizeAnswer(reply)
	if r == "" {
		return false
	}
	for _, a := range acceptedAnswers(answer) {
		if r == a {
			return true
		}
	}
	return false
}

// displayAnswer returns the first alternative of the localized answer.
func displayAnswer(answer Text, lang Lang) string {
	first, _, _ := strings.Cut(answer.In(lang), answerAlternativeSep)
	return strings.TrimSpace(first)
}
