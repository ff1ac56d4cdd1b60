package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"atsopt/internal/config"
	"atsopt/internal/logger"
	"atsopt/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath        string
		strategy       string
		resume         string
		batchFile      string
		outDir         string
		pdf            bool
		nonInteractive bool
	)
	pflag.StringVar(&cfgPath, "config", "", "Path to YAML config file (defaults to ./config.yaml or ~/.config/atsopt/config.yaml)")
	pflag.StringVar(&strategy, "strategy", "", "Keyword extraction strategy: heuristic or llm")
	pflag.StringVar(&resume, "resume", "", "Resume .docx to optimize")
	pflag.StringVar(&batchFile, "batch", "", "Job batch JSON file")
	pflag.StringVar(&outDir, "out", ".", "Directory that receives the batch output folder")
	pflag.BoolVar(&pdf, "pdf", false, "Also render each optimized resume to PDF")
	pflag.BoolVar(&nonInteractive, "non-interactive", false, "Process the batch file without prompting")
	pflag.Parse()

	var (
		cfg *config.AppConfig
		err error
	)
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.Fail("failed to load config: %v", err))
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format})
	if batchFile == "" {
		batchFile = cfg.Batch.File
	}
	if strategy == "" {
		strategy = cfg.Extractor.Type
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &runner{
		cfg:            cfg,
		prompt:         tui.NewPrompter(),
		out:            os.Stdout,
		strategy:       strategy,
		resume:         resume,
		batchFile:      batchFile,
		outDir:         outDir,
		pdf:            pdf || cfg.PDF.Enabled,
		nonInteractive: nonInteractive,
	}
	if err := r.run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Println(tui.Warn("cancelled; finished jobs are kept in the results file"))
			os.Exit(130)
		}
		fmt.Println(tui.Fail("%v", err))
		os.Exit(1)
	}
}
