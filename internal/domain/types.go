package domain

import (
	"strings"
	"time"
)

// DefaultMaxKeywords bounds extractor output when the caller passes zero.
const DefaultMaxKeywords = 50

// Keyword is a candidate term and its accumulated relevance score.
type Keyword struct {
	Term  string
	Score int
}

// KeywordList is an ordered, case-insensitively unique list of keywords,
// highest priority first.
type KeywordList []string

// Normalize lower-cases and trims a keyword surface form.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Dedup returns l without entries that repeat an earlier entry after
// normalization, keeping first occurrences and dropping blanks.
func (l KeywordList) Dedup() KeywordList {
	seen := make(map[string]struct{}, len(l))
	out := make(KeywordList, 0, len(l))
	for _, kw := range l {
		n := Normalize(kw)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, strings.TrimSpace(kw))
	}
	return out
}

// Truncate returns at most n leading entries.
func (l KeywordList) Truncate(n int) KeywordList {
	if n < 0 || len(l) <= n {
		return l
	}
	return l[:n]
}

// Slice returns l[from:to] clamped to the list bounds.
func (l KeywordList) Slice(from, to int) KeywordList {
	if from >= len(l) {
		return nil
	}
	if to > len(l) {
		to = len(l)
	}
	return l[from:to]
}

// Join joins the keywords with sep.
func (l KeywordList) Join(sep string) string {
	return strings.Join(l, sep)
}

// BatchJob is one job application queued for batch optimization.
type BatchJob struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// NewBatchJob stamps a job with the current local time in ISO-8601.
func NewBatchJob(company, position, description string) BatchJob {
	return BatchJob{
		Company:     company,
		Position:    position,
		Description: description,
		Timestamp:   time.Now().Format("2006-01-02T15:04:05.000000"),
	}
}

// JobResult is one entry of a batch results summary.
type JobResult struct {
	Company       string `json:"company"`
	Position      string `json:"position"`
	Success       bool   `json:"success"`
	KeywordsCount int    `json:"keywords_count"`
	OutputDir     string `json:"output_dir,omitempty"`
	Error         string `json:"error,omitempty"`
}

// OptimizeRequest describes a single resume optimization.
type OptimizeRequest struct {
	JobDescription string
	ResumePath     string
	OutputDocx     string
	OutputPDF      string // empty disables PDF rendering
	PublishPrefix  string // defaults to the output directory name
}

// OptimizeResult reports what an optimization produced.
type OptimizeResult struct {
	Keywords   KeywordList
	Strategy   string
	OutputDocx string
	OutputPDF  string
	PDFError   error
	StepErrors map[string]error
	Published  []string
}
