package extractor

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsopt/internal/domain"
	"atsopt/internal/llm"
)

const sampleJD = "Senior engineer: Python, AWS, Docker, Kubernetes and SQL. Machine learning and MLOps a plus."

const sampleResume = "Jane Doe. Built Python services on AWS."

func newFallback() *FallbackExtractor {
	tagger := fakeTagger{tagged: domain.Tagged{Tokens: nouns("engineer", "services")}}
	return NewFallbackExtractor(NewHeuristicExtractor(tagger), sampleResume)
}

func TestLLMExtractorUsesModelKeywordsExclusively(t *testing.T) {
	chat := &fakeChat{content: "Kubernetes, Docker, MLOps", raw: `{"id":"1"}`}
	dir := t.TempDir()
	e := NewLLMExtractor(chat, newFallback(), sampleResume, dir)

	kws, err := e.Extract(context.Background(), sampleJD, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.KeywordList{"Kubernetes", "Docker", "MLOps"}, kws)

	require.Len(t, chat.prompts, 1)
	assert.Contains(t, chat.prompts[0], sampleJD)
	assert.Contains(t, chat.prompts[0], sampleResume)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var kinds []string
	for _, entry := range entries {
		name := entry.Name()
		kinds = append(kinds, name[strings.LastIndex(name, "_")+1:])
	}
	assert.ElementsMatch(t, []string{"prompt.txt", "response.txt"}, kinds)
}

func TestLLMExtractorFallsBackOnMissingCredential(t *testing.T) {
	t.Setenv("ABSENT_KEY", "")
	_, initErr := llm.NewOpenAIClient(llm.Config{APIKeyEnv: "ABSENT_KEY"})
	require.Error(t, initErr)

	fb := newFallback()
	e := NewLLMExtractor(llm.Unavailable{Err: initErr}, fb, sampleResume, "")

	got, err := e.Extract(context.Background(), sampleJD, 5)
	require.NoError(t, err)
	want, _ := fb.Extract(context.Background(), sampleJD, 5)
	assert.Equal(t, want, got)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 5)
}

func TestLLMExtractorFallsBackOnUnparseableResponse(t *testing.T) {
	chat := &fakeChat{content: "Here are some thoughts, but no list"}
	fb := newFallback()
	e := NewLLMExtractor(chat, fb, sampleResume, "")

	got, err := e.Extract(context.Background(), sampleJD, 5)
	require.NoError(t, err)
	want, _ := fb.Extract(context.Background(), sampleJD, 5)
	assert.Equal(t, want, got)
}

func TestLLMExtractorFallsBackOnTransportError(t *testing.T) {
	e := NewLLMExtractor(&fakeChat{err: errOffline}, newFallback(), sampleResume, "")
	got, err := e.Extract(context.Background(), sampleJD, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFallbackNeverReturnsResumeSubstrings(t *testing.T) {
	fb := newFallback()
	got, err := fb.Extract(context.Background(), sampleJD, 50)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	resume := strings.ToLower(sampleResume)
	for _, kw := range got {
		assert.NotContains(t, resume, strings.ToLower(kw))
	}
	assert.NotContains(t, got, "python")
	assert.NotContains(t, got, "aws")
	assert.Contains(t, got, "docker")
}

func TestFallbackPreservesHeuristicOrder(t *testing.T) {
	tagger := fakeTagger{}
	h := NewHeuristicExtractor(tagger)
	fb := NewFallbackExtractor(h, "")
	want, _ := h.Extract(context.Background(), sampleJD, 4)
	got, _ := fb.Extract(context.Background(), sampleJD, 4)
	assert.Equal(t, want, got)
}
