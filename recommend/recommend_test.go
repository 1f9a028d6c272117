package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVedicLookup(t *testing.T) {
	e := MustNew()

	result, err := e.Generate(Request{
		Mode:      ModeVedic,
		Nakshatra: "Rohini",
		Raashi:    "Vrishabha (Taurus)",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vrishabha (Taurus)", result.Raashi)
	assert.Equal(t, []string{"O", "Va", "Vi", "Vu"}, result.Syllables)
	assert.Equal(t, 6, result.Number)
	assert.Equal(t, "Diamond", result.Gemstone)
	assert.Equal(t, "#FFFDD0", result.ColorHex)
}

func TestVedicWithoutNakshatra(t *testing.T) {
	e := MustNew()

	result, err := e.Generate(Request{Mode: ModeVedic, Raashi: "Simha (Leo)"})
	require.NoError(t, err)
	assert.Empty(t, result.Syllables)
	assert.Equal(t, 1, result.Number)
	assert.Equal(t, "Ruby", result.Gemstone)
}

func TestWesternMapsToRaashi(t *testing.T) {
	e := MustNew()

	result, err := e.Generate(Request{Mode: ModeWestern, Zodiac: "Scorpio"})
	require.NoError(t, err)
	assert.Equal(t, "Vrishchika (Scorpio)", result.Raashi)
	assert.Equal(t, 9, result.Number)
	assert.Equal(t, "Coral", result.Gemstone)
	// The western flow carries no birth star, so no syllables.
	assert.Empty(t, result.Syllables)
}

func TestUnknownInputs(t *testing.T) {
	e := MustNew()

	_, err := e.Generate(Request{Mode: ModeVedic, Raashi: "Ophiuchus"})
	assert.Error(t, err)

	_, err = e.Generate(Request{Mode: ModeVedic, Raashi: "Simha (Leo)", Nakshatra: "Polaris"})
	assert.Error(t, err)

	_, err = e.Generate(Request{Mode: ModeWestern, Zodiac: "Ophiuchus"})
	assert.Error(t, err)

	_, err = e.Generate(Request{Mode: "numerology"})
	assert.Error(t, err)
}

func TestDatasetCompleteness(t *testing.T) {
	e := MustNew()

	assert.Len(t, e.Raashis(), 12)
	assert.Len(t, e.Nakshatras(), 27)
	assert.Len(t, e.WesternSigns(), 12)

	// Every western sign must map to a raashi with attributes.
	for _, sign := range e.WesternSigns() {
		result, err := e.Generate(Request{Mode: ModeWestern, Zodiac: sign})
		require.NoError(t, err, sign)
		assert.NotZero(t, result.Number, sign)
		assert.NotEmpty(t, result.Gemstone, sign)
	}

	// Every nakshatra must carry syllables.
	for _, n := range e.Nakshatras() {
		result, err := e.Generate(Request{Mode: ModeVedic, Raashi: "Mesha (Aries)", Nakshatra: n})
		require.NoError(t, err, n)
		assert.NotEmpty(t, result.Syllables, n)
	}
}
