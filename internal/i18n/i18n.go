// Package i18n resolves user-facing message strings for the three storefront
// locales. Russian is the ultimate fallback for missing keys.
package i18n

import (
	"net/http"
	"strings"
)

const (
	LangRu = "ru"
	LangEn = "en"
	LangUz = "uz"

	DefaultLang = LangRu

	// HeaderLanguage takes precedence over Accept-Language.
	HeaderLanguage = "x-language"
)

var supported = map[string]bool{LangRu: true, LangEn: true, LangUz: true}

// FromRequest negotiates the response language: x-language header first,
// then Accept-Language, then ru.
func FromRequest(r *http.Request) string {
	if lang := normalize(r.Header.Get(HeaderLanguage)); lang != "" {
		return lang
	}
	for _, part := range strings.Split(r.Header.Get("Accept-Language"), ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalize(tag); lang != "" {
			return lang
		}
	}
	return DefaultLang
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if idx := strings.Index(tag, "-"); idx > 0 {
		tag = tag[:idx]
	}
	if supported[tag] {
		return tag
	}
	return ""
}

// T looks up a message key for a language, falling back to ru and finally
// to the key itself.
func T(lang, key string) string {
	if table, ok := messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[LangRu][key]; ok {
		return msg
	}
	return key
}
