package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTaggerMarksStopwords(t *testing.T) {
	tagged, err := NewSimpleTagger().Tag("the python developer with 5 years")
	require.NoError(t, err)
	require.Len(t, tagged.Tokens, 6)

	assert.True(t, tagged.Tokens[0].StopWord)
	assert.Equal(t, "NOUN", tagged.Tokens[1].POS)
	assert.Equal(t, "developer", tagged.Tokens[2].Text)
	assert.True(t, tagged.Tokens[3].StopWord)
	assert.Equal(t, "NUM", tagged.Tokens[4].POS)
	assert.Empty(t, tagged.Entities)
}

func TestUniversalTag(t *testing.T) {
	cases := map[string]string{
		"NN": "NOUN", "NNS": "NOUN", "NNP": "PROPN", "NNPS": "PROPN",
		"VBG": "VERB", "JJ": "ADJ", "RB": "ADV", "CD": "NUM", "DT": "X",
	}
	for penn, want := range cases {
		assert.Equal(t, want, universalTag(penn), penn)
	}
}

func TestProseTaggerFindsNouns(t *testing.T) {
	tagged, err := NewProseTagger().Tag("we need an engineer for the platform team")
	require.NoError(t, err)

	var nouns []string
	for _, tok := range tagged.Tokens {
		if tok.POS == "NOUN" {
			nouns = append(nouns, tok.Text)
		}
	}
	assert.Contains(t, nouns, "engineer")
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.False(t, IsStopword("kubernetes"))
}
