// Package embedder writes keyword lists into resume documents in places a
// parser reads but a human reader does not see.
package embedder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"atsopt/internal/chunker"
	"atsopt/internal/document"
	"atsopt/internal/domain"
	"atsopt/internal/logger"
)

// Options tunes the embedding steps.
type Options struct {
	ChunkSize          int
	CustomKeywordCount int
	StyledRunSize      int
	FontHalfPoints     int
	Color              string
}

func (o *Options) applyDefaults() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = 200
	}
	if o.CustomKeywordCount <= 0 {
		o.CustomKeywordCount = 20
	}
	if o.StyledRunSize <= 0 {
		o.StyledRunSize = 10
	}
	if o.FontHalfPoints <= 0 {
		o.FontHalfPoints = document.MaxInvisibleHalfPoints
	}
	if o.Color == "" {
		o.Color = document.InvisibleColor
	}
}

func (o Options) styledRun() document.RunStyle {
	return document.RunStyle{Color: o.Color, HalfPoints: o.FontHalfPoints}
}

// Target is the document a step mutates and the keywords it embeds.
// Paragraphs is the paragraph count before any step ran.
type Target struct {
	Doc        *document.Document
	Keywords   domain.KeywordList
	Paragraphs int
}

// Step is one independently fallible document mutation.
type Step struct {
	Name  string
	Apply func(t *Target) error
}

// Built-in step names, in the order they run.
const (
	StepCoreMetadata     = "core-metadata"
	StepCustomProperties = "custom-properties"
	StepHiddenParagraph  = "hidden-paragraph"
	StepStyledRuns       = "styled-runs"
)

var stepOrder = []string{StepCoreMetadata, StepCustomProperties, StepHiddenParagraph, StepStyledRuns}

// FailedSteps returns the names in failed ordered as the steps run; names
// of steps outside the built-in set follow in lexical order.
func FailedSteps(failed map[string]error) []string {
	out := make([]string, 0, len(failed))
	for _, name := range stepOrder {
		if _, ok := failed[name]; ok {
			out = append(out, name)
		}
	}
	var rest []string
	for name := range failed {
		if !slices.Contains(stepOrder, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// Report lists the outcome of each step of one embedding run.
type Report struct {
	Applied []string
	Failed  map[string]error
}

// Partial reports whether any step failed.
func (r Report) Partial() bool { return len(r.Failed) > 0 }

// Embedder applies its steps in a fixed order. It keeps no state between
// calls.
type Embedder struct {
	opts    Options
	steps   []Step
	chunker *chunker.FixedChunker
	log     zerolog.Logger
}

// New builds an embedder. A styled-run style a reader would see is replaced
// by the default white 1pt style.
func New(opts Options) *Embedder {
	opts.applyDefaults()
	e := &Embedder{
		chunker: chunker.NewFixedChunker(opts.ChunkSize),
		log:     logger.Component("embedder"),
	}
	if !opts.styledRun().Invisible() {
		e.log.Warn().
			Str("color", opts.Color).
			Int("half_points", opts.FontHalfPoints).
			Msg("styled run style would be visible, using defaults")
		opts.Color = document.InvisibleColor
		opts.FontHalfPoints = document.MaxInvisibleHalfPoints
	}
	e.opts = opts
	e.steps = []Step{
		{Name: StepCoreMetadata, Apply: e.coreMetadata},
		{Name: StepCustomProperties, Apply: e.customProperties},
		{Name: StepHiddenParagraph, Apply: e.hiddenParagraph},
		{Name: StepStyledRuns, Apply: e.styledRuns},
	}
	return e
}

// Steps returns the ordered step names.
func (e *Embedder) Steps() []string {
	names := make([]string, len(e.steps))
	for i, s := range e.steps {
		names[i] = s.Name
	}
	return names
}

// Embed loads the resume at inputPath, applies every step and saves the
// result to outputPath. Only load and save failures are returned; step
// failures are recorded in the report.
func (e *Embedder) Embed(inputPath string, kws domain.KeywordList, outputPath string) (Report, error) {
	doc, err := document.Open(inputPath)
	if err != nil {
		return Report{}, err
	}
	report := e.Apply(doc, kws)
	if err := doc.Save(outputPath); err != nil {
		return report, err
	}
	e.log.Info().
		Str("output", outputPath).
		Int("keywords", len(kws)).
		Int("failed_steps", len(report.Failed)).
		Msg("keywords embedded")
	return report, nil
}

// Apply runs every step against doc in order.
func (e *Embedder) Apply(doc *document.Document, kws domain.KeywordList) Report {
	report := Report{Failed: make(map[string]error)}
	t := &Target{Doc: doc, Keywords: kws, Paragraphs: doc.ParagraphCount()}
	for _, s := range e.steps {
		if err := runStep(s, t); err != nil {
			e.log.Warn().Err(err).Str("step", s.Name).Msg("embedding step failed")
			report.Failed[s.Name] = domain.NewOpError(domain.ErrPartialEmbed, s.Name, doc.Path(), err)
			continue
		}
		report.Applied = append(report.Applied, s.Name)
	}
	return report
}

func runStep(s Step, t *Target) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Apply(t)
}

// coreMetadata spreads the joined keyword string over the keywords,
// comments and subject fields in fixed-size chunks.
func (e *Embedder) coreMetadata(t *Target) error {
	chunks := e.chunker.Chunk(t.Keywords.Join(", "))
	fields := []string{document.PropKeywords, document.PropComments, document.PropSubject}
	for i, chunk := range chunks {
		if i >= len(fields) {
			break
		}
		if err := t.Doc.SetCoreProperty(fields[i], chunk); err != nil {
			return err
		}
	}
	return nil
}

var highValueTerms = []string{"python", "aws", "ai", "ml", "data"}

func (e *Embedder) customProperties(t *Target) error {
	if err := t.Doc.SetCustomProperty("ats_keywords", t.Keywords.Truncate(e.opts.CustomKeywordCount).Join(", ")); err != nil {
		return err
	}
	return t.Doc.SetCustomProperty("skills", HighValue(t.Keywords).Join(", "))
}

// HighValue returns the keywords containing one of a few high-value
// technical terms.
func HighValue(kws domain.KeywordList) domain.KeywordList {
	var out domain.KeywordList
	for _, kw := range kws {
		lower := strings.ToLower(kw)
		for _, term := range highValueTerms {
			if strings.Contains(lower, term) {
				out = append(out, kw)
				break
			}
		}
	}
	return out
}

func (e *Embedder) hiddenParagraph(t *Target) error {
	if len(t.Keywords) == 0 {
		return nil
	}
	t.Doc.AppendParagraph(t.Keywords.Join(" "), document.RunStyle{Hidden: true})
	return nil
}

// styledRuns needs more than three original paragraphs; it targets the
// second one and the one nearest the middle.
func (e *Embedder) styledRuns(t *Target) error {
	if t.Paragraphs <= 3 {
		return nil
	}
	kws := t.Keywords
	style := e.opts.styledRun()
	n := e.opts.StyledRunSize
	placements := []struct {
		index int
		words domain.KeywordList
	}{
		{1, kws.Slice(0, n)},
		{t.Paragraphs / 2, kws.Slice(n, 2*n)},
	}
	for _, p := range placements {
		if len(p.words) == 0 {
			continue
		}
		if err := t.Doc.AppendRun(p.index, " "+p.words.Join(" "), style); err != nil {
			return err
		}
	}
	return nil
}
