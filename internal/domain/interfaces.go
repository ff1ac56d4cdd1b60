package domain

import (
	"context"
	"io"
)

// Extractor turns job-description text into a ranked keyword list.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, jobDescription string, maxKeywords int) (KeywordList, error)
}

// Token is a single tagged word produced by a Tagger.
type Token struct {
	Text     string
	POS      string // NOUN, PROPN, VERB, ... (universal tags)
	StopWord bool
}

// Entity is a named-entity span produced by a Tagger.
type Entity struct {
	Text  string
	Label string // ORG, PRODUCT, LANGUAGE, SKILL, PERSON, GPE, ...
}

// Tagged is the result of running a Tagger over a text.
type Tagged struct {
	Tokens   []Token
	Entities []Entity
}

// Tagger provides part-of-speech tagging and named-entity recognition.
// Implementations are built once per process and injected where needed.
type Tagger interface {
	Name() string
	Tag(text string) (Tagged, error)
}

// ChatClient sends a single-turn prompt to a remote language model.
// raw is the undecoded provider payload, kept for diagnostics.
type ChatClient interface {
	Name() string
	Complete(ctx context.Context, prompt string) (content string, raw string, err error)
}

// Store publishes produced artifacts somewhere outside the working directory.
type Store interface {
	Name() string
	Put(ctx context.Context, key string, r io.Reader) error
}
