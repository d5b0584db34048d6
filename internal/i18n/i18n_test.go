package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	t.Run("x-language header wins", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("x-language", "uz")
		r.Header.Set("Accept-Language", "en-US,en;q=0.9")
		assert.Equal(t, LangUz, FromRequest(r))
	})

	t.Run("Accept-Language fallback", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Accept-Language", "en-US,ru;q=0.8")
		assert.Equal(t, LangEn, FromRequest(r))
	})

	t.Run("Unknown languages skipped", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Accept-Language", "de-DE,uz;q=0.7")
		assert.Equal(t, LangUz, FromRequest(r))
	})

	t.Run("Default is ru", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		assert.Equal(t, LangRu, FromRequest(r))
	})

	t.Run("Unsupported x-language falls through", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("x-language", "fr")
		assert.Equal(t, LangRu, FromRequest(r))
	})
}

func TestT(t *testing.T) {
	t.Run("Known key in each language", func(t *testing.T) {
		assert.Equal(t, "Not found", T(LangEn, MsgNotFound))
		assert.Equal(t, "Topilmadi", T(LangUz, MsgNotFound))
		assert.Equal(t, "Не найдено", T(LangRu, MsgNotFound))
	})

	t.Run("Missing key falls back to ru", func(t *testing.T) {
		// All keys exist in all tables today, so simulate with an unknown language.
		assert.Equal(t, "Не найдено", T("kk", MsgNotFound))
	})

	t.Run("Unknown key returns the key", func(t *testing.T) {
		assert.Equal(t, "nope.missing", T(LangEn, "nope.missing"))
	})
}
