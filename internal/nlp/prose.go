package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"atsopt/internal/domain"
)

// ProseTagger runs the prose averaged-perceptron POS tagger and its
// named-entity chunker. Build it once at startup and share it.
type ProseTagger struct {
	opts []prose.DocOpt
}

// NewProseTagger creates a tagger with sentence segmentation disabled;
// job descriptions are tagged as a single stream.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{opts: []prose.DocOpt{prose.WithSegmentation(false)}}
}

// Name returns the identifier of this tagger implementation.
func (t *ProseTagger) Name() string { return "prose" }

// Tag returns universal POS tags and entity spans for text.
func (t *ProseTagger) Tag(text string) (domain.Tagged, error) {
	doc, err := prose.NewDocument(text, t.opts...)
	if err != nil {
		return domain.Tagged{}, fmt.Errorf("prose tagging failed: %w", err)
	}
	var out domain.Tagged
	for _, tok := range doc.Tokens() {
		out.Tokens = append(out.Tokens, domain.Token{
			Text:     tok.Text,
			POS:      universalTag(tok.Tag),
			StopWord: IsStopword(strings.ToLower(tok.Text)),
		})
	}
	for _, ent := range doc.Entities() {
		out.Entities = append(out.Entities, domain.Entity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}

// universalTag maps Penn Treebank tags to the coarse universal set.
func universalTag(penn string) string {
	switch {
	case penn == "NNP" || penn == "NNPS":
		return "PROPN"
	case strings.HasPrefix(penn, "NN"):
		return "NOUN"
	case strings.HasPrefix(penn, "VB"):
		return "VERB"
	case strings.HasPrefix(penn, "JJ"):
		return "ADJ"
	case strings.HasPrefix(penn, "RB"):
		return "ADV"
	case penn == "CD":
		return "NUM"
	default:
		return "X"
	}
}
