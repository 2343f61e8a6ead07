package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"reddit-persona/internal/cache"
	"reddit-persona/internal/domain"
	"reddit-persona/internal/persona"
	"reddit-persona/internal/repository"
	"reddit-persona/internal/taxonomy"
)

type mockFetcher struct {
	items []domain.RawContent
	err   error
	calls int
}

func (m *mockFetcher) FetchUserContent(_ context.Context, _ string, _ int) ([]domain.RawContent, error) {
	m.calls++
	return m.items, m.err
}

type mockRunRepo struct {
	saved   []domain.AnalysisRun
	saveErr error
	latest  domain.AnalysisRun
	getErr  error
}

func (m *mockRunRepo) Save(_ context.Context, run domain.AnalysisRun) error {
	m.saved = append(m.saved, run)
	return m.saveErr
}

func (m *mockRunRepo) GetLatestByUsername(_ context.Context, _ string) (domain.AnalysisRun, error) {
	return m.latest, m.getErr
}

func (m *mockRunRepo) ListByUsername(_ context.Context, _ string, _ int) ([]domain.AnalysisRun, error) {
	return []domain.AnalysisRun{m.latest}, m.getErr
}

func newServiceAnalyzer(t *testing.T) *persona.Analyzer {
	t.Helper()
	a, err := persona.NewAnalyzer(persona.DefaultConfig(), taxonomy.Default(), zap.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return a
}

func sampleRaws() []domain.RawContent {
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	return []domain.RawContent{
		{ID: "t3_1", Kind: domain.KindPost, Title: "learning python", Body: "working through a course", Subreddit: "learnpython", Score: 12, CreatedAt: now},
		{ID: "t1_2", Kind: domain.KindComment, Body: "thanks, great advice", Subreddit: "learnpython", Score: 3, CreatedAt: now.Add(-time.Hour)},
		{ID: "t1_3", Kind: domain.KindComment, Body: "", Subreddit: "", CreatedAt: now.Add(-2 * time.Hour)},
	}
}

func TestGeneratePersonaCountsSkipped(t *testing.T) {
	fetcher := &mockFetcher{items: sampleRaws()}
	svc := NewPersonaService(zap.NewNop(), fetcher, newServiceAnalyzer(t), nil, nil, 50, 0)

	run, err := svc.GeneratePersona(context.Background(), "kojied")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if run.ItemCount != 2 {
		t.Fatalf("expected 2 items analyzed, got %d", run.ItemCount)
	}
	if run.SkippedCount != 1 {
		t.Fatalf("expected 1 skipped item, got %d", run.SkippedCount)
	}
	if run.ID == "" {
		t.Fatalf("expected run id to be assigned")
	}
	if run.Username != "kojied" {
		t.Fatalf("unexpected username %q", run.Username)
	}
}

func TestGeneratePersonaPropagatesFetchError(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("reddit down")}
	svc := NewPersonaService(zap.NewNop(), fetcher, newServiceAnalyzer(t), nil, nil, 50, 0)

	if _, err := svc.GeneratePersona(context.Background(), "kojied"); err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
}

func TestGeneratePersonaUsesCacheOnSecondRun(t *testing.T) {
	fetcher := &mockFetcher{items: sampleRaws()}
	svc := NewPersonaService(zap.NewNop(), fetcher, newServiceAnalyzer(t), cache.NewMemoryContentCache(), nil, 50, time.Minute)

	if _, err := svc.GeneratePersona(context.Background(), "kojied"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := svc.GeneratePersona(context.Background(), "kojied"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetcher.calls)
	}
}

func TestGeneratePersonaSavesRun(t *testing.T) {
	repo := &mockRunRepo{}
	fetcher := &mockFetcher{items: sampleRaws()}
	svc := NewPersonaService(zap.NewNop(), fetcher, newServiceAnalyzer(t), nil, repo, 50, 0)

	run, err := svc.GeneratePersona(context.Background(), "kojied")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != run.ID {
		t.Fatalf("expected run to be persisted")
	}
}

func TestGeneratePersonaSurvivesSaveFailure(t *testing.T) {
	repo := &mockRunRepo{saveErr: errors.New("db down")}
	fetcher := &mockFetcher{items: sampleRaws()}
	svc := NewPersonaService(zap.NewNop(), fetcher, newServiceAnalyzer(t), nil, repo, 50, 0)

	run, err := svc.GeneratePersona(context.Background(), "kojied")
	if err != nil {
		t.Fatalf("save failure must not fail the run, got %v", err)
	}
	if run.ItemCount != 2 {
		t.Fatalf("expected run despite save failure, got %+v", run)
	}
}

func TestLatestRunWithoutStorage(t *testing.T) {
	svc := NewPersonaService(zap.NewNop(), &mockFetcher{}, newServiceAnalyzer(t), nil, nil, 50, 0)

	if _, err := svc.LatestRun(context.Background(), "kojied"); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
}

func TestLatestRunNotFound(t *testing.T) {
	repo := &mockRunRepo{getErr: repository.ErrRunNotFound}
	svc := NewPersonaService(zap.NewNop(), &mockFetcher{}, newServiceAnalyzer(t), nil, repo, 50, 0)

	if _, err := svc.LatestRun(context.Background(), "kojied"); !errors.Is(err, repository.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}
