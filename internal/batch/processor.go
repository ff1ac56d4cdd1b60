package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"atsopt/internal/domain"
	"atsopt/internal/logger"
	"atsopt/internal/service"
)

const (
	ResultsFile     = "batch_results.json"
	JobDescFile     = "job_description.txt"
	KeywordsFile    = "extracted_keywords.txt"
	runDirTimestamp = "20060102_150405"
)

// Options configures a batch run.
type Options struct {
	ResumePath string
	BaseDir    string
	DirPrefix  string
	Suffix     string
	PDF        bool
	Now        func() time.Time
}

// Processor optimizes one resume against every queued job, strictly one
// job at a time.
type Processor struct {
	svc  *service.OptimizerService
	opts Options
	log  zerolog.Logger
}

func NewProcessor(svc *service.OptimizerService, opts Options) *Processor {
	if opts.DirPrefix == "" {
		opts.DirPrefix = "batch_optimized"
	}
	if opts.Suffix == "" {
		opts.Suffix = "_ATS_Optimized"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Processor{svc: svc, opts: opts, log: logger.Component("batch")}
}

// Run is the outcome of a batch.
type Run struct {
	Dir     string
	Results []domain.JobResult
}

// Process runs every job and returns the per-job results. The results file
// is rewritten after each job, so an interrupted run keeps what finished.
// Cancellation is checked between jobs and returned as the error.
func (p *Processor) Process(ctx context.Context, jobs []domain.BatchJob) (*Run, error) {
	if len(jobs) == 0 {
		return nil, domain.NewOpError(domain.ErrInputNotFound, "batch", "", errors.New("no jobs to process"))
	}
	if _, err := os.Stat(p.opts.ResumePath); err != nil {
		return nil, domain.NewOpError(domain.ErrInputNotFound, "batch", p.opts.ResumePath, err)
	}
	run := &Run{Dir: filepath.Join(p.opts.BaseDir, p.opts.DirPrefix+"_"+p.opts.Now().Format(runDirTimestamp))}
	if err := os.MkdirAll(run.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}
	resultsPath := filepath.Join(run.Dir, ResultsFile)
	used := make(map[string]bool)

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			p.log.Warn().Int("done", i).Int("total", len(jobs)).Msg("batch interrupted")
			return run, err
		}
		name := uniqueName(used, JobDirName(job.Company, job.Position))
		res := p.processJob(ctx, job, run.Dir, name)
		run.Results = append(run.Results, res)
		if err := writeJSON(resultsPath, run.Results); err != nil {
			return run, err
		}
		lvl := zerolog.InfoLevel
		if !res.Success {
			lvl = zerolog.WarnLevel
		}
		p.log.WithLevel(lvl).
			Str("company", job.Company).
			Str("position", job.Position).
			Int("keywords", res.KeywordsCount).
			Str("error", res.Error).
			Msg("job processed")
	}
	p.svc.Publish(ctx, filepath.Base(run.Dir), resultsPath)
	return run, nil
}

func (p *Processor) processJob(ctx context.Context, job domain.BatchJob, runDir, name string) domain.JobResult {
	res := domain.JobResult{Company: job.Company, Position: job.Position}
	dir := filepath.Join(runDir, name)
	prefix := filepath.Join(filepath.Base(runDir), name)
	fail := func(err error) domain.JobResult {
		res.Error = err.Error()
		return res
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(err)
	}
	jdPath := filepath.Join(dir, JobDescFile)
	if err := os.WriteFile(jdPath, []byte(job.Description), 0o644); err != nil {
		return fail(err)
	}

	kws, err := p.svc.Extract(ctx, job.Description)
	if err != nil {
		return fail(err)
	}
	res.KeywordsCount = len(kws)
	kwPath := filepath.Join(dir, KeywordsFile)
	if err := os.WriteFile(kwPath, []byte(kws.Join("\n")+"\n"), 0o644); err != nil {
		return fail(err)
	}

	docxPath, pdfPath := service.OutputPaths(dir, p.opts.ResumePath, p.opts.Suffix)
	if !p.opts.PDF {
		pdfPath = ""
	}
	out, err := p.svc.Embed(ctx, domain.OptimizeRequest{
		JobDescription: job.Description,
		ResumePath:     p.opts.ResumePath,
		OutputDocx:     docxPath,
		OutputPDF:      pdfPath,
		PublishPrefix:  prefix,
	}, kws)
	if err != nil {
		return fail(err)
	}
	if out.PDFError != nil {
		p.log.Warn().Err(out.PDFError).Str("company", job.Company).Msg("pdf skipped")
	}
	p.svc.Publish(ctx, prefix, jdPath, kwPath)

	res.Success = true
	res.OutputDir = dir
	return res
}

func uniqueName(used map[string]bool, name string) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		candidate = name + "_" + strconv.Itoa(n)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
