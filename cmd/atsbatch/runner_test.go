package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsopt/internal/batch"
	"atsopt/internal/config"
	"atsopt/internal/document"
	"atsopt/internal/domain"
)

type scripted struct {
	choices  []int
	inputs   []string
	pastes   []string
	confirms []bool
	asked    []string
}

func (s *scripted) Choose(title string, _ []string) (int, error) {
	s.asked = append(s.asked, title)
	c := s.choices[0]
	s.choices = s.choices[1:]
	return c, nil
}

func (s *scripted) Input(title, _ string) (string, error) {
	s.asked = append(s.asked, title)
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scripted) Paste(title string) (string, error) {
	s.asked = append(s.asked, title)
	v := s.pastes[0]
	s.pastes = s.pastes[1:]
	return v, nil
}

func (s *scripted) Confirm(question string) (bool, error) {
	s.asked = append(s.asked, question)
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeResume(t *testing.T, name string) {
	t.Helper()
	data, err := document.BlankPackage("Jane Doe", "Engineer", "Go services", "Postgres", "Education")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(name, data, 0o644))
}

func newRunner(dir string, p prompter, out *bytes.Buffer) *runner {
	cfg := config.Default()
	cfg.Extractor.Tagger = "simple"
	return &runner{
		cfg:            cfg,
		prompt:         p,
		out:            out,
		strategy:       "heuristic",
		batchFile:      "job_batch.json",
		outDir:         dir,
		nonInteractive: p == nil,
	}
}

func runDirs(t *testing.T, dir string) []string {
	t.Helper()
	found, err := filepath.Glob(filepath.Join(dir, "batch_optimized_*"))
	require.NoError(t, err)
	return found
}

func TestRunCreatesSavesAndProcessesBatch(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeResume(t, "jane.docx")
	p := &scripted{
		choices:  []int{0},
		inputs:   []string{"Acme", "Data Engineer"},
		pastes:   []string{"Python, AWS and SQL pipelines"},
		confirms: []bool{false, true},
	}

	var out bytes.Buffer
	require.NoError(t, newRunner(dir, p, &out).run(context.Background()))

	saved, err := batch.Load("job_batch.json")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Acme", saved[0].Company)

	runs := runDirs(t, dir)
	require.Len(t, runs, 1)
	assert.FileExists(t, filepath.Join(runs[0], "Acme_Data_Engineer", "jane_ATS_Optimized.docx"))
	assert.FileExists(t, filepath.Join(runs[0], batch.ResultsFile))
	assert.Contains(t, out.String(), "Saved 1 jobs to job_batch.json")
	assert.Contains(t, out.String(), "1/1 jobs optimized")
	assert.Contains(t, p.asked, "Process 1 jobs with jane.docx?")
}

func TestRunNonInteractiveReportsFailedJobs(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeResume(t, "jane.docx")
	require.NoError(t, batch.Save("job_batch.json", []domain.BatchJob{
		domain.NewBatchJob("Empty", "Nothing", "  "),
		domain.NewBatchJob("Globex", "ML Engineer", "Machine learning with Docker and Kubernetes"),
	}))

	var out bytes.Buffer
	require.NoError(t, newRunner(dir, nil, &out).run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Found 2 jobs:")
	assert.Contains(t, text, "Empty - Nothing:")
	assert.Contains(t, text, "1/2 jobs optimized")
	assert.Len(t, runDirs(t, dir), 1)
}

func TestRunDeclinedDoesNothing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeResume(t, "jane.docx")
	require.NoError(t, batch.Save("custom.json", []domain.BatchJob{domain.NewBatchJob("Acme", "Engineer", "Python")}))
	p := &scripted{choices: []int{1}, inputs: []string{"custom.json"}, confirms: []bool{false}}

	require.NoError(t, newRunner(dir, p, &bytes.Buffer{}).run(context.Background()))
	assert.Empty(t, runDirs(t, dir))
}

func TestRunPicksResumeWhenSeveral(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeResume(t, "a.docx")
	writeResume(t, "b.docx")
	require.NoError(t, batch.Save("job_batch.json", []domain.BatchJob{domain.NewBatchJob("Acme", "Engineer", "Python and Docker")}))
	p := &scripted{choices: []int{2, 1}, confirms: []bool{true}}

	var out bytes.Buffer
	require.NoError(t, newRunner(dir, p, &out).run(context.Background()))
	assert.Contains(t, p.asked, "Select resume file")

	runs := runDirs(t, dir)
	require.Len(t, runs, 1)
	assert.FileExists(t, filepath.Join(runs[0], "Acme_Engineer", "b_ATS_Optimized.docx"))
}

func TestRunWithoutJobs(t *testing.T) {
	chdir(t, t.TempDir())
	err := newRunner(".", nil, &bytes.Buffer{}).run(context.Background())
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}
