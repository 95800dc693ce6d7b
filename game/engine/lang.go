package engine

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is the language used for event and label text.
type Lang string

const (
	LangPT Lang = "pt"
	LangEN Lang = "en"

	DefaultLang = LangPT
)

var supportedLangs = []Lang{LangPT, LangEN}

var langMatcher = language.NewMatcher([]language.Tag{
	language.Portuguese,
	language.English,
})

// ParseLang maps a language tag ("en", "pt-BR") or an Accept-Language header
// value onto a supported Lang. Anything unrecognized yields DefaultLang.
func ParseLang(s string) Lang {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := langMatcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	return supportedLangs[idx]
}
