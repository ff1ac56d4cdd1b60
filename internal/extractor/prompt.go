package extractor

import "strings"

const keywordPromptTemplate = `You are an ATS (Applicant Tracking System) keyword extraction expert helping a candidate pass automated resume screening.

JOB DESCRIPTION:
{jd_text}

CURRENT RESUME CONTENT:
{resume_text}

TASK: List the keywords from the job description that are MISSING from the resume and that an ATS is likely to filter on.

Consider:
1. Technical skills and tools: languages, frameworks, platforms, databases
2. Certifications, degrees and licenses
3. Methodologies and industry terms
4. Job title variations
5. Required experience and seniority
6. Must-have qualifications
7. Action verbs describing the required work
8. Compliance standards and regulations

Rules:
- Use the exact wording of the job description, not synonyms.
- Prefer exact technical phrases over generic words.
- Include acronyms and their expansions when both appear.
- Keep specific versions when mentioned (for example "Python 3.x").
- Skip anything already present in the resume (case-insensitive).
- Skip vague words such as "good", "strong" or "excellent".

OUTPUT FORMAT: a single line of comma-separated keywords ordered from highest to lowest priority, with no explanation or other text.

KEYWORDS:`

// RenderPrompt fills the keyword prompt with the job description and the
// resume's plain text.
func RenderPrompt(jobDescription, resumeText string) string {
	r := strings.NewReplacer("{jd_text}", jobDescription, "{resume_text}", resumeText)
	return r.Replace(keywordPromptTemplate)
}
