package extractor

import (
	"context"
	"errors"

	"atsopt/internal/domain"
)

type fakeTagger struct {
	tagged domain.Tagged
	err    error
}

func (f fakeTagger) Name() string { return "fake" }

func (f fakeTagger) Tag(string) (domain.Tagged, error) { return f.tagged, f.err }

type fakeChat struct {
	content string
	raw     string
	err     error
	prompts []string
}

func (f *fakeChat) Name() string { return "fake" }

func (f *fakeChat) Complete(_ context.Context, prompt string) (string, string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.content, f.raw, f.err
}

var errOffline = errors.New("offline")

func nouns(words ...string) []domain.Token {
	out := make([]domain.Token, len(words))
	for i, w := range words {
		out[i] = domain.Token{Text: w, POS: "NOUN"}
	}
	return out
}
