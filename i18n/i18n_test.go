package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLanguageFallback(t *testing.T) {
	d := MustLoad()

	// "noPosts" exists only in English; every language resolves to it.
	for _, lang := range Languages {
		assert.Equal(t, "No posts found. Check back soon for new content.",
			d.Resolve(lang, "noPosts"), string(lang))
	}
}

func TestMissingKeyEchoesKey(t *testing.T) {
	d := MustLoad()
	for _, lang := range Languages {
		assert.Equal(t, "definitelyNotAKey", d.Resolve(lang, "definitelyNotAKey"), string(lang))
	}
}

func TestLanguageSpecificValues(t *testing.T) {
	d := MustLoad()
	assert.Equal(t, "Home", d.Resolve(English, "home"))
	assert.Equal(t, "होम", d.Resolve(Hindi, "home"))
	// Kannada has no "home" entry and falls back to English.
	assert.Equal(t, "Home", d.Resolve(Kannada, "home"))
}

func TestOverridesTakePrecedence(t *testing.T) {
	d := MustLoad()

	// The override table carries tuned wording for the recommendation flow.
	assert.Equal(t, "अपनी सूर्य राशि चुनें", d.Resolve(Hindi, "recommendationsSelectSunSign"))
	assert.Equal(t, "ನಿಮ್ಮ ಸೂರ್ಯ ರಾಶಿ ಆಯ್ಕೆಮಾಡಿ", d.Resolve(Kannada, "recommendationsSelectSunSign"))

	// Overrides never apply to the default language.
	assert.Equal(t, "Select Your Sun Sign", d.Resolve(English, "recommendationsSelectSunSign"))
}

func TestEnglishIsCompletenessBaseline(t *testing.T) {
	d := MustLoad()

	// Every key present in any table must resolve to a non-empty,
	// non-echoed value in English, or rule 4 leaks raw keys to users.
	for _, key := range d.Keys() {
		got := d.Resolve(English, key)
		require.NotEmpty(t, got, key)
		assert.NotEqual(t, key, got, "key %q has no English entry", key)
	}
}

func TestParse(t *testing.T) {
	lang, ok := Parse("hi")
	assert.True(t, ok)
	assert.Equal(t, Hindi, lang)

	lang, ok = Parse("fr")
	assert.False(t, ok)
	assert.Equal(t, Default, lang)
}

func TestFunc(t *testing.T) {
	d := MustLoad()
	tr := d.Func(Hindi)
	assert.Equal(t, "सेवाएं", tr("services"))
}
