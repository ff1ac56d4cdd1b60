package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atsopt/internal/domain"
)

func TestParseKeywordLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    domain.KeywordList
	}{
		{
			name:    "plain line",
			content: "Kubernetes, Terraform, gRPC",
			max:     10,
			want:    domain.KeywordList{"Kubernetes", "Terraform", "gRPC"},
		},
		{
			name:    "skips explanatory lines",
			content: "Here are the keywords, ordered by priority:\nNote: some, are optional\n\"Go\", 'Rust', `C++`\n",
			max:     10,
			want:    domain.KeywordList{"Go", "Rust", "C++"},
		},
		{
			name:    "strips label and bullets",
			content: "KEYWORDS: - CI/CD, * Helm, .NET, x, , Helm",
			max:     10,
			want:    domain.KeywordList{"CI/CD", "Helm", ".NET"},
		},
		{
			name:    "drops explanatory tokens",
			content: "Kafka, Note: these are inferred, Spark.",
			max:     10,
			want:    domain.KeywordList{"Kafka", "Spark"},
		},
		{
			name:    "truncates",
			content: "a1, b2, c3, d4",
			max:     2,
			want:    domain.KeywordList{"a1", "b2"},
		},
		{
			name:    "code fence ignored",
			content: "```\nSQL, NoSQL\n```",
			max:     5,
			want:    domain.KeywordList{"SQL", "NoSQL"},
		},
		{
			name:    "no comma line",
			content: "I could not find any missing keywords.",
			max:     5,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeywordLine(tt.content, tt.max))
		})
	}
}

func TestRenderPrompt(t *testing.T) {
	p := RenderPrompt("Needs Go and Kafka", "Experienced in Python")
	assert.Contains(t, p, "JOB DESCRIPTION:\nNeeds Go and Kafka")
	assert.Contains(t, p, "CURRENT RESUME CONTENT:\nExperienced in Python")
	assert.NotContains(t, p, "{jd_text}")
	assert.NotContains(t, p, "{resume_text}")
}
