package main

import (
	"strings"

	"atsopt/internal/document"
	"atsopt/internal/domain"
	"atsopt/internal/embedder"
	"atsopt/internal/tui"
)

const demoFile = "demo_invisible_strategies.docx"

var demoKeywords = domain.KeywordList{
	"python", "aws", "machine learning", "docker", "kubernetes", "ai", "nlp",
	"tensorflow", "pytorch", "fastapi", "langchain",
}

// demo builds a small resume from scratch, embeds a fixed keyword list and
// reads the result back to show what a human sees versus what is stored.
func (a *app) demo() error {
	doc, err := document.NewBlank(
		"Resume Optimization Demo",
		"This is a sample resume with normal, visible content.",
		"Skills: Communication, Leadership, Problem Solving",
		"Experience: 5+ years in software development",
		"Education: Computer Science Degree",
	)
	if err != nil {
		return err
	}
	emb := embedder.New(embedder.Options{
		ChunkSize:          a.cfg.Embedder.ChunkSize,
		CustomKeywordCount: a.cfg.Embedder.CustomKeywordCount,
		StyledRunSize:      a.cfg.Embedder.StyledRunSize,
		FontHalfPoints:     a.cfg.Embedder.FontHalfPoints,
		Color:              a.cfg.Embedder.Color,
	})
	report := emb.Apply(doc, demoKeywords)
	for _, step := range embedder.FailedSteps(report.Failed) {
		a.printf("%s\n", tui.Warn("%s skipped: %v", step, report.Failed[step]))
	}
	if err := doc.SetCustomProperty("ats_optimization", "enabled"); err != nil {
		a.printf("%s\n", tui.Warn("custom properties not supported: %v", err))
	}
	if err := doc.Save(demoFile); err != nil {
		return err
	}
	a.printf("%s\n", tui.OK("Demo document created: %s (%s)", demoFile, strings.Join(report.Applied, ", ")))

	back, err := document.Open(demoFile)
	if err != nil {
		return err
	}
	a.printf("\n%s\n", tui.Title("Document metadata"))
	for _, p := range []struct{ label, name string }{
		{"Keywords", document.PropKeywords},
		{"Comments", document.PropComments},
		{"Subject", document.PropSubject},
	} {
		v, err := back.CoreProperty(p.name)
		if err != nil {
			return err
		}
		a.printf("  %-9s %s\n", p.label+":", v)
	}
	if v, ok, err := back.CustomProperty("ats_keywords"); err == nil && ok {
		a.printf("  %-9s %s\n", "Custom:", v)
	}

	visible := strings.Split(back.VisibleText(), "\n")
	a.printf("\n%s\n", tui.Title("Visible content"))
	for i, line := range visible {
		a.printf("  %d. %s\n", i+1, line)
	}
	a.printf("\n%s\n", tui.Hint("Readers see only the lines above; parsers also read the metadata and hidden runs."))
	return nil
}
