package extractor

import (
	"strings"

	"atsopt/internal/domain"
)

var (
	techMarkers = []string{"python", "aws", "ai", "ml", "docker", "kubernetes", "sql"}
	softMarkers = []string{"communication", "leadership", "collaboration", "problem"}
)

// Analysis summarises an extracted keyword list for display.
type Analysis struct {
	Total      int
	Top        domain.KeywordList
	TechSkills domain.KeywordList
	SoftSkills domain.KeywordList
}

// Analyze groups keywords into technical and soft skills by substring markers.
func Analyze(keywords domain.KeywordList) Analysis {
	a := Analysis{Total: len(keywords), Top: keywords.Truncate(10)}
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		if containsAny(lower, techMarkers) {
			a.TechSkills = append(a.TechSkills, kw)
		}
		if containsAny(lower, softMarkers) {
			a.SoftSkills = append(a.SoftSkills, kw)
		}
	}
	a.TechSkills = a.TechSkills.Truncate(5)
	a.SoftSkills = a.SoftSkills.Truncate(3)
	return a
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
