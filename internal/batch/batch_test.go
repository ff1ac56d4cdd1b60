package batch

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atsopt/internal/document"
	"atsopt/internal/domain"
	"atsopt/internal/embedder"
	"atsopt/internal/extractor"
	"atsopt/internal/nlp"
	"atsopt/internal/service"
	"atsopt/internal/storage/memory"
)

func fixedNow() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local) }

func setup(t *testing.T, store *memory.Store) (*service.OptimizerService, string, string) {
	t.Helper()
	base := t.TempDir()
	data, err := document.BlankPackage("Jane Doe", "Engineer", "Go services", "Postgres", "Education")
	require.NoError(t, err)
	resume := filepath.Join(base, "jane.docx")
	require.NoError(t, os.WriteFile(resume, data, 0o644))

	h := extractor.NewHeuristicExtractor(nlp.NewSimpleTagger())
	var svc *service.OptimizerService
	if store != nil {
		svc = service.NewOptimizerService(h, embedder.New(embedder.Options{}), nil, store, 30)
	} else {
		svc = service.NewOptimizerService(h, embedder.New(embedder.Options{}), nil, nil, 30)
	}
	return svc, resume, base
}

func TestProcessTwoCompanies(t *testing.T) {
	store := memory.NewStore()
	svc, resume, base := setup(t, store)
	jobs := []domain.BatchJob{
		domain.NewBatchJob("Acme Corp.", "Data Engineer", "Python, AWS and SQL pipelines"),
		domain.NewBatchJob("Globex/Inc", "ML Engineer", "Machine learning with Docker and Kubernetes"),
	}

	p := NewProcessor(svc, Options{ResumePath: resume, BaseDir: base, Now: fixedNow})
	run, err := p.Process(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "batch_optimized_20260304_050607"), run.Dir)

	require.Len(t, run.Results, 2)
	assert.Equal(t, filepath.Join(run.Dir, "Acme_Corp_Data_Engineer"), run.Results[0].OutputDir)
	assert.Equal(t, filepath.Join(run.Dir, "GlobexInc_ML_Engineer"), run.Results[1].OutputDir)
	for _, r := range run.Results {
		assert.True(t, r.Success, r.Error)
		assert.Positive(t, r.KeywordsCount)
		assert.FileExists(t, filepath.Join(r.OutputDir, "jane_ATS_Optimized.docx"))
		assert.FileExists(t, filepath.Join(r.OutputDir, JobDescFile))
		kw, err := os.ReadFile(filepath.Join(r.OutputDir, KeywordsFile))
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(string(kw)), "\n"), r.KeywordsCount)
	}

	raw, err := os.ReadFile(filepath.Join(run.Dir, ResultsFile))
	require.NoError(t, err)
	var summary []map[string]any
	require.NoError(t, json.Unmarshal(raw, &summary))
	require.Len(t, summary, 2)
	for _, entry := range summary {
		assert.IsType(t, true, entry["success"])
	}

	assert.Contains(t, store.Keys(), "batch_optimized_20260304_050607/batch_results.json")
	assert.Contains(t, store.Keys(), "batch_optimized_20260304_050607/Acme_Corp_Data_Engineer/jane_ATS_Optimized.docx")
	assert.Contains(t, store.Keys(), "batch_optimized_20260304_050607/GlobexInc_ML_Engineer/extracted_keywords.txt")
}

func TestProcessDuplicateNamesGetDistinctDirs(t *testing.T) {
	svc, resume, base := setup(t, nil)
	jobs := []domain.BatchJob{
		domain.NewBatchJob("Acme", "Engineer", "Python"),
		domain.NewBatchJob("Acme!", "Engineer", "AWS"),
	}
	run, err := NewProcessor(svc, Options{ResumePath: resume, BaseDir: base, Now: fixedNow}).Process(context.Background(), jobs)
	require.NoError(t, err)
	assert.NotEqual(t, run.Results[0].OutputDir, run.Results[1].OutputDir)
	assert.Equal(t, "Acme_Engineer_2", filepath.Base(run.Results[1].OutputDir))
}

func TestProcessRecordsFailedJob(t *testing.T) {
	svc, resume, base := setup(t, nil)
	jobs := []domain.BatchJob{
		domain.NewBatchJob("Empty", "Nothing", "   "),
		domain.NewBatchJob("Acme", "Engineer", "Python and Docker"),
	}
	run, err := NewProcessor(svc, Options{ResumePath: resume, BaseDir: base, Now: fixedNow}).Process(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, run.Results, 2)
	assert.False(t, run.Results[0].Success)
	assert.NotEmpty(t, run.Results[0].Error)
	assert.True(t, run.Results[1].Success)
}

func TestProcessStopsWhenCancelled(t *testing.T) {
	svc, resume, base := setup(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := NewProcessor(svc, Options{ResumePath: resume, BaseDir: base, Now: fixedNow}).
		Process(ctx, []domain.BatchJob{domain.NewBatchJob("Acme", "Engineer", "Python")})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, run)
	assert.Empty(t, run.Results)
}

func TestProcessRequiresResumeAndJobs(t *testing.T) {
	svc, _, base := setup(t, nil)
	p := NewProcessor(svc, Options{ResumePath: filepath.Join(base, "missing.docx"), BaseDir: base})

	_, err := p.Process(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
	_, err = p.Process(context.Background(), []domain.BatchJob{domain.NewBatchJob("a", "b", "c")})
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job_batch.json")
	jobs, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	want := []domain.BatchJob{{Company: "R&D <Labs>", Position: "Eng", Description: "Go", Timestamp: "2026-01-02T03:04:05.000000"}}
	require.NoError(t, Save(path, want))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"company": "R&D <Labs>"`)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestSafeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Acme Corp.", "Acme_Corp"},
		{"  Globex/Inc ", "GlobexInc"},
		{"Senior Dev-Ops_Eng", "Senior_Dev-Ops_Eng"},
		{"Zürich AG", "Zürich_AG"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeName(tt.in), tt.in)
	}
	assert.Equal(t, "job", JobDirName("!!", "??"))
}

type scriptedPrompter struct {
	inputs   []string
	pastes   []string
	confirms []bool
}

func (s *scriptedPrompter) Input(string, string) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input")
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *scriptedPrompter) Paste(string) (string, error) {
	v := s.pastes[0]
	s.pastes = s.pastes[1:]
	return v, nil
}

func (s *scriptedPrompter) Confirm(string) (bool, error) {
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func TestCreate(t *testing.T) {
	p := &scriptedPrompter{
		inputs:   []string{"Acme ", "Engineer", "Skipped", "Role", "Globex", "Analyst"},
		pastes:   []string{"Python", "", "SQL"},
		confirms: []bool{true, true, false},
	}
	jobs, err := Create(p)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "Analyst", jobs[1].Position)
	assert.NotEmpty(t, jobs[1].Timestamp)
}
