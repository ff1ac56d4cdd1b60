package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"atsopt/internal/config"
	"atsopt/internal/document"
	"atsopt/internal/domain"
	"atsopt/internal/embedder"
	"atsopt/internal/extractor"
	"atsopt/internal/render"
	"atsopt/internal/service"
	"atsopt/internal/tui"
)

const jobDescFile = "job_description.txt"

type prompter interface {
	Choose(title string, options []string) (int, error)
	Input(title, placeholder string) (string, error)
	Paste(title string) (string, error)
	Confirm(question string) (bool, error)
	Review(title string, keywords domain.KeywordList, sections ...tui.Section) error
}

type app struct {
	cfg    *config.AppConfig
	opts   options
	prompt prompter
	out    io.Writer
}

func (a *app) interactive() bool { return !a.opts.nonInteractive }

func (a *app) printf(format string, args ...any) { fmt.Fprintf(a.out, format, args...) }

func (a *app) optimize(ctx context.Context) error {
	jd, err := a.jobDescription()
	if err != nil {
		return err
	}
	resume, err := a.resumePath()
	if err != nil {
		return err
	}
	strategy, err := a.strategy()
	if err != nil {
		return err
	}
	svc, err := a.build(ctx, strategy, resume)
	if err != nil {
		return err
	}

	a.printf("%s\n", tui.Hint(fmt.Sprintf("Extracting keywords (%s)...", strategy)))
	kws, err := svc.Extract(ctx, jd)
	if err != nil {
		return err
	}
	a.printAnalysis(kws)

	wantPDF := a.cfg.PDF.Enabled
	if !wantPDF && a.interactive() {
		if wantPDF, err = a.prompt.Confirm("Also generate a PDF?"); err != nil {
			return err
		}
	}
	docxPath, pdfPath := service.OutputPaths(a.cfg.Output.Dir, resume, a.cfg.Output.Suffix)
	if !wantPDF {
		pdfPath = ""
	}
	res, err := svc.Embed(ctx, domain.OptimizeRequest{
		JobDescription: jd,
		ResumePath:     resume,
		OutputDocx:     docxPath,
		OutputPDF:      pdfPath,
	}, kws)
	if err != nil {
		return err
	}
	a.printResult(res)
	return nil
}

func (a *app) analyze(ctx context.Context) error {
	jd, err := a.jobDescription()
	if err != nil {
		return err
	}
	strategy, err := a.strategy()
	if err != nil {
		return err
	}
	resume := ""
	if strategy == "llm" {
		if resume, err = a.resumePath(); err != nil {
			return err
		}
	}
	svc, err := a.build(ctx, strategy, resume)
	if err != nil {
		return err
	}
	kws, err := svc.Extract(ctx, jd)
	if err != nil {
		return err
	}
	a.printAnalysis(kws)
	if !a.interactive() {
		return nil
	}
	an := extractor.Analyze(kws)
	return a.prompt.Review("Keyword review", kws,
		tui.Section{Title: "Keywords", Body: kws.Join("\n")},
		tui.Section{Title: "Technical", Body: an.TechSkills.Join("\n")},
		tui.Section{Title: "Soft skills", Body: an.SoftSkills.Join("\n")},
		tui.Section{Title: "Job description", Body: jd})
}

func (a *app) build(ctx context.Context, strategy, resume string) (*service.OptimizerService, error) {
	tagger, err := service.NewTagger(a.cfg.Extractor.Tagger)
	if err != nil {
		return nil, err
	}
	resumeText := ""
	if strategy == "llm" && resume != "" {
		doc, err := document.Open(resume)
		if err != nil {
			return nil, err
		}
		resumeText = doc.FullText()
	}
	return service.NewFromConfig(ctx, a.cfg, strategy, tagger, resumeText)
}

func (a *app) jobDescription() (string, error) {
	if a.opts.jd != "" {
		return render.ReadText(a.opts.jd)
	}
	if !a.interactive() {
		return render.ReadText(jobDescFile)
	}
	choice, err := a.prompt.Choose("Job description source", []string{
		"Use existing " + jobDescFile,
		"Paste job description",
		"Load from file (.txt or .pdf)",
	})
	if err != nil {
		return "", err
	}
	var text string
	switch choice {
	case 0:
		return render.ReadText(jobDescFile)
	case 1:
		text, err = a.prompt.Paste("Paste the job description (Ctrl+D or Esc when done)")
	case 2:
		var path string
		if path, err = a.prompt.Input("Job description file", "path/to/job.pdf"); err == nil {
			text, err = render.ReadText(strings.TrimSpace(path))
		}
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewOpError(domain.ErrInputNotFound, "job description", "", errors.New("no text provided"))
	}
	if err := os.WriteFile(jobDescFile, []byte(text), 0o644); err != nil {
		a.printf("%s\n", tui.Warn("could not save %s: %v", jobDescFile, err))
	} else {
		a.printf("%s\n", tui.OK("Job description saved to %s", jobDescFile))
	}
	return text, nil
}

func (a *app) resumePath() (string, error) {
	var c service.Chooser
	if a.interactive() {
		c = a.prompt
	}
	path, err := service.SelectResume(a.opts.resume, ".", a.cfg.Output.Suffix, c)
	if err != nil {
		return "", err
	}
	a.printf("%s\n", tui.OK("Using resume: %s", filepath.Base(path)))
	return path, nil
}

func (a *app) strategy() (string, error) {
	if a.opts.strategy != "" {
		return a.opts.strategy, nil
	}
	if !a.interactive() {
		return a.cfg.Extractor.Type, nil
	}
	options := []string{"heuristic", "llm"}
	idx, err := a.prompt.Choose("Keyword extraction strategy", []string{
		"Heuristic (local patterns and tagging, no network)",
		"LLM (remote model, falls back to local extraction)",
	})
	if err != nil {
		return "", err
	}
	return options[idx], nil
}

func (a *app) printAnalysis(kws domain.KeywordList) {
	an := extractor.Analyze(kws)
	a.printf("\n%s\n", tui.Title("Job description analysis"))
	a.printf("  Total keywords: %d\n", an.Total)
	a.printf("  Top keywords:   %s\n", an.Top.Join(", "))
	if len(an.TechSkills) > 0 {
		a.printf("  Technical:      %s\n", an.TechSkills.Join(", "))
	}
	if len(an.SoftSkills) > 0 {
		a.printf("  Soft skills:    %s\n", an.SoftSkills.Join(", "))
	}
	a.printf("\n")
}

func (a *app) printResult(res *domain.OptimizeResult) {
	a.printf("%s\n", tui.OK("Optimized resume: %s (%d keywords, %s)", res.OutputDocx, len(res.Keywords), res.Strategy))
	for _, step := range embedder.FailedSteps(res.StepErrors) {
		a.printf("%s\n", tui.Warn("%s skipped: %v", step, res.StepErrors[step]))
	}
	switch {
	case res.OutputPDF != "":
		a.printf("%s\n", tui.OK("PDF: %s", res.OutputPDF))
	case res.PDFError != nil:
		a.printf("%s\n", tui.Warn("PDF not generated: %v", res.PDFError))
	}
	for _, key := range res.Published {
		a.printf("%s\n", tui.OK("Published %s", key))
	}
}
