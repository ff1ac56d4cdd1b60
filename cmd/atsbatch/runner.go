package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"atsopt/internal/batch"
	"atsopt/internal/config"
	"atsopt/internal/document"
	"atsopt/internal/domain"
	"atsopt/internal/service"
	"atsopt/internal/tui"
)

type prompter interface {
	batch.Prompter
	service.Chooser
}

type runner struct {
	cfg            *config.AppConfig
	prompt         prompter
	out            io.Writer
	strategy       string
	resume         string
	batchFile      string
	outDir         string
	pdf            bool
	nonInteractive bool
}

func (r *runner) println(s string) { fmt.Fprintln(r.out, s) }

func (r *runner) run(ctx context.Context) error {
	jobs, err := r.jobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return domain.NewOpError(domain.ErrInputNotFound, "batch", r.batchFile, errors.New("no jobs found"))
	}
	r.println(tui.Title(fmt.Sprintf("Found %d jobs:", len(jobs))))
	for i, j := range jobs {
		fmt.Fprintf(r.out, "  %d. %s - %s\n", i+1, j.Company, j.Position)
	}

	resume, err := r.resumePath()
	if err != nil {
		return err
	}
	if !r.nonInteractive {
		ok, err := r.prompt.Confirm(fmt.Sprintf("Process %d jobs with %s?", len(jobs), filepath.Base(resume)))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	tagger, err := service.NewTagger(r.cfg.Extractor.Tagger)
	if err != nil {
		return err
	}
	resumeText := ""
	if r.strategy == "llm" {
		if resumeText, err = readResumeText(resume); err != nil {
			return err
		}
	}
	svc, err := service.NewFromConfig(ctx, r.cfg, r.strategy, tagger, resumeText)
	if err != nil {
		return err
	}
	p := batch.NewProcessor(svc, batch.Options{
		ResumePath: resume,
		BaseDir:    r.outDir,
		DirPrefix:  r.cfg.Batch.DirPrefix,
		Suffix:     r.cfg.Output.Suffix,
		PDF:        r.pdf,
	})
	run, err := p.Process(ctx, jobs)
	if run != nil {
		r.printSummary(run)
	}
	return err
}

func (r *runner) jobs() ([]domain.BatchJob, error) {
	if r.nonInteractive {
		return batch.Load(r.batchFile)
	}
	choice, err := r.prompt.Choose("Batch ATS Resume Optimizer", []string{
		"Create new job batch",
		"Load existing batch",
		"Process existing " + r.batchFile,
	})
	if err != nil {
		return nil, err
	}
	switch choice {
	case 0:
		jobs, err := batch.Create(r.prompt)
		if err != nil {
			return nil, err
		}
		if len(jobs) > 0 {
			if err := batch.Save(r.batchFile, jobs); err != nil {
				return nil, err
			}
			r.println(tui.OK("Saved %d jobs to %s", len(jobs), r.batchFile))
		}
		return jobs, nil
	case 1:
		name, err := r.prompt.Input("Batch file name", r.batchFile)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = r.batchFile
		}
		return batch.Load(name)
	default:
		return batch.Load(r.batchFile)
	}
}

func (r *runner) resumePath() (string, error) {
	var c service.Chooser
	if !r.nonInteractive {
		c = r.prompt
	}
	path, err := service.SelectResume(r.resume, ".", r.cfg.Output.Suffix, c)
	if err != nil {
		return "", err
	}
	r.println(tui.OK("Using resume: %s", filepath.Base(path)))
	return path, nil
}

func (r *runner) printSummary(run *batch.Run) {
	ok := 0
	for _, res := range run.Results {
		if res.Success {
			ok++
			r.println(tui.OK("%s - %s: %d keywords -> %s", res.Company, res.Position, res.KeywordsCount, res.OutputDir))
		} else {
			r.println(tui.Fail("%s - %s: %s", res.Company, res.Position, res.Error))
		}
	}
	fmt.Fprintf(r.out, "\n%s\n", tui.Title(fmt.Sprintf("%d/%d jobs optimized", ok, len(run.Results))))
	r.println(tui.Hint("Results saved to " + filepath.Join(run.Dir, batch.ResultsFile)))
}

func readResumeText(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", err
	}
	return doc.FullText(), nil
}
