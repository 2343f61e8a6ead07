package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reddit-persona/internal/cache"
	"reddit-persona/internal/domain"
	"reddit-persona/internal/persona"
	"reddit-persona/internal/repository"
)

// ErrStorageDisabled indica que el servicio corre sin base de datos.
var ErrStorageDisabled = errors.New("run storage not configured")

// ContentFetcher es el colaborador de adquisicion: entrega el contenido
// crudo de un usuario. El core no sabe como se obtuvo.
type ContentFetcher interface {
	FetchUserContent(ctx context.Context, username string, limit int) ([]domain.RawContent, error)
}

// PersonaService orquesta el pipeline: fetch (o cache) -> normalizar ->
// clasificar -> persistir. Cache y storage son opcionales (nil).
type PersonaService struct {
	logger     *zap.Logger
	fetcher    ContentFetcher
	analyzer   *persona.Analyzer
	cache      cache.ContentCache
	runs       repository.RunRepository
	fetchLimit int
	cacheTTL   time.Duration
}

func NewPersonaService(
	logger *zap.Logger,
	fetcher ContentFetcher,
	analyzer *persona.Analyzer,
	contentCache cache.ContentCache,
	runs repository.RunRepository,
	fetchLimit int,
	cacheTTL time.Duration,
) *PersonaService {
	if fetchLimit <= 0 {
		fetchLimit = 50
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Minute
	}
	return &PersonaService{
		logger:     logger,
		fetcher:    fetcher,
		analyzer:   analyzer,
		cache:      contentCache,
		runs:       runs,
		fetchLimit: fetchLimit,
		cacheTTL:   cacheTTL,
	}
}

// GeneratePersona corre el analisis completo para un usuario y devuelve
// la corrida. Las anomalias por item se absorben (solo se cuentan); los
// fallos del colaborador de adquisicion si se propagan.
func (s *PersonaService) GeneratePersona(ctx context.Context, username string) (domain.AnalysisRun, error) {
	raws, err := s.loadContent(ctx, username)
	if err != nil {
		return domain.AnalysisRun{}, fmt.Errorf("load content for %s: %w", username, err)
	}

	items, skipped := persona.NormalizeAll(raws)
	if skipped > 0 {
		s.logger.Debug("items skipped during normalization",
			zap.String("username", username),
			zap.Int("skipped", skipped),
		)
	}

	result := s.analyzer.Analyze(username, items)

	run := domain.AnalysisRun{
		ID:           uuid.NewString(),
		Username:     username,
		Persona:      result.Persona,
		Citations:    result.Citations,
		ItemCount:    len(items),
		SkippedCount: skipped,
		CreatedAt:    time.Now().UTC(),
	}

	if s.runs != nil {
		if err := s.runs.Save(ctx, run); err != nil {
			// La corrida sigue siendo valida aunque no se pueda guardar.
			s.logger.Warn("persist analysis run failed", zap.Error(err), zap.String("run_id", run.ID))
		}
	}

	s.logger.Info("persona generated",
		zap.String("username", username),
		zap.String("run_id", run.ID),
		zap.Int("items", run.ItemCount),
		zap.Int("citations", len(run.Citations)),
	)
	return run, nil
}

// LatestRun devuelve la ultima corrida guardada del usuario.
func (s *PersonaService) LatestRun(ctx context.Context, username string) (domain.AnalysisRun, error) {
	if s.runs == nil {
		return domain.AnalysisRun{}, ErrStorageDisabled
	}
	return s.runs.GetLatestByUsername(ctx, username)
}

func (s *PersonaService) loadContent(ctx context.Context, username string) ([]domain.RawContent, error) {
	if s.cache != nil {
		raws, hit, err := s.cache.Get(ctx, username)
		if err != nil {
			s.logger.Warn("content cache read failed", zap.Error(err), zap.String("username", username))
		} else if hit {
			s.logger.Debug("content cache hit", zap.String("username", username), zap.Int("items", len(raws)))
			return raws, nil
		}
	}

	raws, err := s.fetcher.FetchUserContent(ctx, username, s.fetchLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, username, raws, s.cacheTTL); err != nil {
			s.logger.Warn("content cache write failed", zap.Error(err), zap.String("username", username))
		}
	}
	return raws, nil
}
