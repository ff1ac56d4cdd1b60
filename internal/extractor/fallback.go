package extractor

import (
	"context"
	"strings"

	"atsopt/internal/domain"
)

// FallbackExtractor runs the heuristic extractor twice as wide and drops
// every candidate the resume already contains.
type FallbackExtractor struct {
	heuristic  *HeuristicExtractor
	resumeText string
}

// NewFallbackExtractor snapshots the resume text once; it is lower-cased here
// and never changes afterwards.
func NewFallbackExtractor(h *HeuristicExtractor, resumeText string) *FallbackExtractor {
	return &FallbackExtractor{heuristic: h, resumeText: strings.ToLower(resumeText)}
}

// Name returns the identifier of this extractor implementation.
func (e *FallbackExtractor) Name() string { return "fallback" }

// Extract never fails.
func (e *FallbackExtractor) Extract(ctx context.Context, jobDescription string, maxKeywords int) (domain.KeywordList, error) {
	if maxKeywords <= 0 {
		maxKeywords = domain.DefaultMaxKeywords
	}
	wide, _ := e.heuristic.Extract(ctx, jobDescription, 2*maxKeywords)
	out := make(domain.KeywordList, 0, maxKeywords)
	for _, kw := range wide {
		if strings.Contains(e.resumeText, strings.ToLower(kw)) {
			continue
		}
		out = append(out, kw)
		if len(out) == maxKeywords {
			break
		}
	}
	return out, nil
}
