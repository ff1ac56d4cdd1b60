package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"atsopt/internal/domain"
)

var explanatoryPrefix = regexp.MustCompile(`(?i)^\s*(?:note\b|here (?:are|is)\b|the following\b|based on\b|these are\b|i(?:'ve| have)\b|sure\b|certainly\b|missing keywords\b|explanation\b)`)

var keywordsLabel = regexp.MustCompile(`(?i)^\s*(?:ats\s+)?keywords\s*:\s*`)

const tokenCutset = " \t\"'`*•-"

// ParseKeywordLine pulls the comma-separated keyword line out of a model
// response. It returns nil when no usable line is present.
func ParseKeywordLine(content string, maxKeywords int) domain.KeywordList {
	var line string
	for _, l := range strings.Split(content, "\n") {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "```") {
			continue
		}
		if !strings.Contains(l, ",") || explanatoryPrefix.MatchString(l) {
			continue
		}
		line = keywordsLabel.ReplaceAllString(l, "")
		break
	}
	if line == "" {
		return nil
	}

	var out domain.KeywordList
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimRight(strings.Trim(strings.TrimSpace(tok), tokenCutset), ".")
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if explanatoryPrefix.MatchString(tok) {
			continue
		}
		out = append(out, tok)
	}
	out = out.Dedup()
	if maxKeywords > 0 {
		out = out.Truncate(maxKeywords)
	}
	return out
}
