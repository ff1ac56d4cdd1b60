// Package extractor ranks job-description keywords, either with local
// heuristics or with a remote language model.
package extractor

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"atsopt/internal/domain"
	"atsopt/internal/logger"
)

const (
	techWeight   = 3
	entityWeight = 2
	phraseWeight = 2
	nounWeight   = 1
)

var techPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:python|java|javascript|react|node\.?js|aws|docker|kubernetes|sql|nosql)\b`),
	regexp.MustCompile(`\b(?:machine learning|deep learning|ai|artificial intelligence|nlp|llm)\b`),
	regexp.MustCompile(`\b(?:tensorflow|pytorch|scikit-learn|pandas|numpy|fastapi|langchain)\b`),
	regexp.MustCompile(`\b(?:rag|retrieval|augmented|generation|vector|embedding|transformer)\b`),
	regexp.MustCompile(`\b(?:sagemaker|hugging face|pinecone|faiss|chroma|mlops)\b`),
	regexp.MustCompile(`\b(?:prompt engineering|fine-tuning|lora|peft|agentic)\b`),
}

var techPhrases = []string{
	"machine learning", "deep learning", "natural language processing",
	"retrieval augmented generation", "large language models",
	"prompt engineering", "vector databases", "generative ai",
	"artificial intelligence", "data science", "cloud computing",
}

var entityLabels = map[string]struct{}{
	"ORG": {}, "PRODUCT": {}, "LANGUAGE": {}, "SKILL": {},
}

// HeuristicExtractor scores terms with fixed vocabulary patterns, tagger
// output and a phrase list. It needs no network access.
type HeuristicExtractor struct {
	tagger domain.Tagger
	log    zerolog.Logger
}

// NewHeuristicExtractor creates a heuristic extractor. tagger may be nil, in
// which case only the pattern and phrase passes run.
func NewHeuristicExtractor(tagger domain.Tagger) *HeuristicExtractor {
	return &HeuristicExtractor{tagger: tagger, log: logger.Component("extractor")}
}

// Name returns the identifier of this extractor implementation.
func (e *HeuristicExtractor) Name() string { return "heuristic" }

// Extract returns the top maxKeywords terms. It never fails.
func (e *HeuristicExtractor) Extract(_ context.Context, jobDescription string, maxKeywords int) (domain.KeywordList, error) {
	if maxKeywords <= 0 {
		maxKeywords = domain.DefaultMaxKeywords
	}
	scored := e.Score(jobDescription)
	if len(scored) > maxKeywords {
		scored = scored[:maxKeywords]
	}
	out := make(domain.KeywordList, len(scored))
	for i, kw := range scored {
		out[i] = kw.Term
	}
	return out, nil
}

// Score returns every candidate term with its total weight, highest first.
// Equal scores keep the order in which terms were first seen.
func (e *HeuristicExtractor) Score(jobDescription string) []domain.Keyword {
	text := strings.ToLower(jobDescription)
	acc := newAccumulator()

	for _, p := range techPatterns {
		for _, m := range p.FindAllString(text, -1) {
			acc.add(m, techWeight)
		}
	}

	if e.tagger != nil {
		tagged, err := e.tagger.Tag(text)
		if err != nil {
			e.log.Warn().Err(err).Str("tagger", e.tagger.Name()).Msg("tagging failed, continuing without it")
		} else {
			for _, ent := range tagged.Entities {
				if _, ok := entityLabels[ent.Label]; !ok {
					continue
				}
				clean := domain.Normalize(ent.Text)
				if len(clean) > 2 {
					acc.add(clean, entityWeight)
				}
			}
			for _, tok := range tagged.Tokens {
				if (tok.POS == "NOUN" || tok.POS == "PROPN") &&
					!tok.StopWord && len(tok.Text) > 2 && isAlpha(tok.Text) {
					acc.add(tok.Text, nounWeight)
				}
			}
		}
	}

	for _, phrase := range techPhrases {
		if strings.Contains(text, phrase) {
			acc.add(phrase, phraseWeight)
		}
	}
	return acc.ranked()
}

type accumulator struct {
	order  []string
	scores map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{scores: make(map[string]int)}
}

func (a *accumulator) add(term string, weight int) {
	key := domain.Normalize(term)
	if key == "" {
		return
	}
	if _, ok := a.scores[key]; !ok {
		a.order = append(a.order, key)
	}
	a.scores[key] += weight
}

func (a *accumulator) ranked() []domain.Keyword {
	out := make([]domain.Keyword, len(a.order))
	for i, term := range a.order {
		out[i] = domain.Keyword{Term: term, Score: a.scores[term]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
