package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"atsopt/internal/domain"
	"atsopt/internal/embedder"
	"atsopt/internal/logger"
	"atsopt/internal/storage"
)

// PDFConverter renders a saved DOCX to PDF.
type PDFConverter interface {
	ToPDF(ctx context.Context, docxPath, pdfPath string) error
}

// OptimizerService runs one resume through extraction, embedding and the
// optional PDF and publication steps.
type OptimizerService struct {
	extractor   domain.Extractor
	embedder    *embedder.Embedder
	converter   PDFConverter
	store       domain.Store
	maxKeywords int
	log         zerolog.Logger
}

// NewOptimizerService wires the pipeline. converter and store may be nil.
func NewOptimizerService(extractor domain.Extractor, emb *embedder.Embedder, converter PDFConverter, store domain.Store, maxKeywords int) *OptimizerService {
	if maxKeywords <= 0 {
		maxKeywords = domain.DefaultMaxKeywords
	}
	return &OptimizerService{
		extractor:   extractor,
		embedder:    emb,
		converter:   converter,
		store:       store,
		maxKeywords: maxKeywords,
		log:         logger.Component("optimizer"),
	}
}

// Strategy names the configured extractor.
func (s *OptimizerService) Strategy() string { return s.extractor.Name() }

// Extract returns the ranked keywords for a job description.
func (s *OptimizerService) Extract(ctx context.Context, jobDescription string) (domain.KeywordList, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, domain.NewOpError(domain.ErrInputNotFound, "extract", "", errors.New("job description is empty"))
	}
	kws, err := s.extractor.Extract(ctx, jobDescription, s.maxKeywords)
	if err != nil {
		return nil, err
	}
	return kws.Dedup().Truncate(s.maxKeywords), nil
}

// Optimize extracts keywords and embeds them into a copy of the resume.
// PDF and publication failures are reported in the result, not as errors.
func (s *OptimizerService) Optimize(ctx context.Context, req domain.OptimizeRequest) (*domain.OptimizeResult, error) {
	kws, err := s.Extract(ctx, req.JobDescription)
	if err != nil {
		return nil, err
	}
	return s.Embed(ctx, req, kws)
}

// Embed writes already extracted keywords into the resume. An empty list
// still produces the output document; only the metadata fields are touched.
func (s *OptimizerService) Embed(ctx context.Context, req domain.OptimizeRequest, kws domain.KeywordList) (*domain.OptimizeResult, error) {
	report, err := s.embedder.Embed(req.ResumePath, kws, req.OutputDocx)
	if err != nil {
		return nil, err
	}
	res := &domain.OptimizeResult{
		Keywords:   kws,
		Strategy:   s.extractor.Name(),
		OutputDocx: req.OutputDocx,
		StepErrors: report.Failed,
	}

	if req.OutputPDF != "" && s.converter != nil {
		if err := s.converter.ToPDF(ctx, req.OutputDocx, req.OutputPDF); err != nil {
			s.log.Warn().Err(err).Str("pdf", req.OutputPDF).Msg("pdf conversion failed")
			res.PDFError = err
		} else {
			res.OutputPDF = req.OutputPDF
		}
	}

	s.publish(ctx, req.PublishPrefix, res)
	return res, nil
}

// Publish uploads extra files produced alongside a result, keyed by base name.
func (s *OptimizerService) Publish(ctx context.Context, prefix string, paths ...string) []string {
	if s.store == nil {
		return nil
	}
	var keys []string
	for _, p := range paths {
		key := storage.Key(prefix, filepath.Base(p))
		if err := storage.PutFile(ctx, s.store, key, p); err != nil {
			s.log.Warn().Err(err).Str("store", s.store.Name()).Str("key", key).Msg("publish failed")
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func (s *OptimizerService) publish(ctx context.Context, prefix string, res *domain.OptimizeResult) {
	if s.store == nil {
		return
	}
	paths := []string{res.OutputDocx}
	if res.OutputPDF != "" {
		paths = append(paths, res.OutputPDF)
	}
	if prefix == "" {
		prefix = filepath.Base(filepath.Dir(res.OutputDocx))
	}
	res.Published = s.Publish(ctx, prefix, paths...)
}

// OutputPaths derives the DOCX and PDF paths for an optimized resume.
func OutputPaths(dir, resumePath, suffix string) (docxPath, pdfPath string) {
	base := strings.TrimSuffix(filepath.Base(resumePath), filepath.Ext(resumePath))
	docxPath = filepath.Join(dir, base+suffix+".docx")
	pdfPath = filepath.Join(dir, base+suffix+".pdf")
	return docxPath, pdfPath
}
