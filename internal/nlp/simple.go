package nlp

import (
	"regexp"
	"strings"

	"atsopt/internal/domain"
)

// SimpleTagger is a lexical tagger: every non-stop-word token is treated as
// a common noun and no entities are produced. It needs no model data.
type SimpleTagger struct {
	tokenPattern *regexp.Regexp
}

// NewSimpleTagger creates the model-free tagger.
func NewSimpleTagger() *SimpleTagger {
	return &SimpleTagger{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\d+`),
	}
}

// Name returns the identifier of this tagger implementation.
func (t *SimpleTagger) Name() string { return "simple" }

// Tag splits text into tokens and marks stop-words.
func (t *SimpleTagger) Tag(text string) (domain.Tagged, error) {
	raw := t.tokenPattern.FindAllString(text, -1)
	tokens := make([]domain.Token, 0, len(raw))
	for _, w := range raw {
		stop := IsStopword(strings.ToLower(w))
		pos := "NOUN"
		if stop {
			pos = "X"
		} else if isNumber(w) {
			pos = "NUM"
		}
		tokens = append(tokens, domain.Token{Text: w, POS: pos, StopWord: stop})
	}
	return domain.Tagged{Tokens: tokens}, nil
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
