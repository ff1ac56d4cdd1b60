package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atsopt/internal/domain"
)

func TestAnalyze(t *testing.T) {
	kws := domain.KeywordList{
		"python", "aws", "leadership", "docker", "kubernetes", "sql", "mlops",
		"communication", "problem solving", "collaboration", "teamwork", "html",
	}
	a := Analyze(kws)
	assert.Equal(t, 12, a.Total)
	assert.Len(t, a.Top, 10)
	assert.Equal(t, domain.KeywordList{"python", "aws", "docker", "kubernetes", "sql"}, a.TechSkills)
	assert.Equal(t, domain.KeywordList{"leadership", "communication", "problem solving"}, a.SoftSkills)
}
