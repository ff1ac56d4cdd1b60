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

type options struct {
	configPath     string
	strategy       string
	resume         string
	jd             string
	out            string
	pdf            bool
	maxKeywords    int
	nonInteractive bool
}

func main() {
	_ = godotenv.Load()

	var opts options
	pflag.StringVar(&opts.configPath, "config", "", "Path to YAML config file (defaults to ./config.yaml or ~/.config/atsopt/config.yaml)")
	pflag.StringVar(&opts.strategy, "strategy", "", "Keyword extraction strategy: heuristic or llm")
	pflag.StringVar(&opts.resume, "resume", "", "Resume .docx to optimize")
	pflag.StringVar(&opts.jd, "jd", "", "Job description file (.txt or .pdf)")
	pflag.StringVar(&opts.out, "out", "", "Output directory for optimized files")
	pflag.BoolVar(&opts.pdf, "pdf", false, "Also render the optimized resume to PDF")
	pflag.IntVar(&opts.maxKeywords, "max-keywords", 0, "Maximum number of keywords to embed")
	pflag.BoolVar(&opts.nonInteractive, "non-interactive", false, "Never prompt; use flags, config and job_description.txt")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: atsopt [flags] [optimize|analyze|demo]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, tui.Fail("failed to load config: %v", err))
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := "optimize"
	if pflag.NArg() > 0 {
		cmd = pflag.Arg(0)
	}
	a := &app{cfg: cfg, opts: opts, prompt: tui.NewPrompter(), out: os.Stdout}
	switch cmd {
	case "optimize":
		err = a.optimize(ctx)
	case "analyze":
		err = a.analyze(ctx)
	case "demo":
		err = a.demo()
	default:
		pflag.Usage()
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Println(tui.Warn("cancelled"))
			os.Exit(130)
		}
		fmt.Println(tui.Fail("%v", err))
		os.Exit(1)
	}
}

func loadConfig(opts options) (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if opts.configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(opts.configPath)
	}
	if err != nil {
		return nil, err
	}
	if opts.out != "" {
		cfg.Output.Dir = opts.out
	}
	if opts.maxKeywords > 0 {
		cfg.Extractor.MaxKeywords = opts.maxKeywords
	}
	if opts.pdf {
		cfg.PDF.Enabled = true
	}
	return cfg, nil
}
