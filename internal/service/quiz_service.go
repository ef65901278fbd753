package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/synth"
	"quizcraft/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService orchestrates quiz generation: it validates the request,
// consults the response cache, calls the external provider, and falls back
// to the local synthesizer when the provider is unconfigured or fails.
type QuizService interface {
	GenerateQuiz(ctx context.Context, userID string, req *domain.QuizRequest) (*domain.QuizResult, error)
	SetGenerator(generator domain.QuizGenerator)
}

type quizServiceImpl struct {
	mu        sync.RWMutex
	generator domain.QuizGenerator

	fallback  *synth.Synthesizer
	validator *validation.Validator
	admin     AdminService
	cache     domain.Cache
	cacheTTL  time.Duration
	sfGroup   singleflight.Group
}

// NewQuizService creates a QuizService. generator may be nil when no
// provider credential is configured; responseCache may be nil when Redis is
// unavailable, in which case caching is skipped.
func NewQuizService(
	generator domain.QuizGenerator,
	fallback *synth.Synthesizer,
	validator *validation.Validator,
	admin AdminService,
	responseCache domain.Cache,
	cacheTTL time.Duration,
) QuizService {
	return &quizServiceImpl{
		generator: generator,
		fallback:  fallback,
		validator: validator,
		admin:     admin,
		cache:     responseCache,
		cacheTTL:  cacheTTL,
	}
}

// SetGenerator swaps the provider implementation at runtime. Used when an
// admin updates the provider credential.
func (s *quizServiceImpl) SetGenerator(generator domain.QuizGenerator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generator = generator
}

func (s *quizServiceImpl) currentGenerator() domain.QuizGenerator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generator
}

// GenerateQuiz produces a quiz for one request. Question counts above the
// admin-configured ceiling are clamped, not rejected. Identical concurrent
// requests are collapsed onto a single provider call.
func (s *quizServiceImpl) GenerateQuiz(ctx context.Context, userID string, req *domain.QuizRequest) (*domain.QuizResult, error) {
	if errs := s.validator.ValidateQuizRequest(req); len(errs) > 0 {
		return nil, errs
	}

	maxQuestions := s.admin.MaxQuestionsPerQuiz()
	if req.MCQCount > maxQuestions {
		req.MCQCount = maxQuestions
	}
	if req.TrueFalseCount > maxQuestions {
		req.TrueFalseCount = maxQuestions
	}

	key := cache.QuizRequestKey(req)

	if quiz := s.cachedQuiz(ctx, key); quiz != nil {
		s.admin.RecordQuizGenerated(userID)
		return &domain.QuizResult{Quiz: quiz, FallbackUsed: false}, nil
	}

	v, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		return s.generate(ctx, req, key)
	})
	if err != nil {
		return nil, err
	}

	result := v.(*domain.QuizResult)
	s.admin.RecordQuizGenerated(userID)
	return result, nil
}

// generate runs one uncached generation. Provider failures fall back to
// the local synthesizer, except timeouts: an expired provider call or a
// caller-side deadline is surfaced as an error so the client can retry
// instead of silently receiving degraded content.
func (s *quizServiceImpl) generate(ctx context.Context, req *domain.QuizRequest, key string) (*domain.QuizResult, error) {
	generator := s.currentGenerator()
	if generator == nil {
		logger.Get().Info("No provider configured, using local generation")
		return s.generateFallback(req)
	}

	s.admin.RecordProviderCall()
	quiz, err := generator.Generate(ctx, req)
	if err == nil {
		s.storeQuiz(ctx, key, quiz)
		return &domain.QuizResult{Quiz: quiz, FallbackUsed: false}, nil
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == domain.CodeProviderTimeout {
		return nil, domainErr
	}
	if ctx.Err() != nil {
		return nil, domain.NewProviderTimeoutError(err)
	}

	logger.Get().Warn("Provider generation failed, falling back to local generation", zap.Error(err))
	return s.generateFallback(req)
}

func (s *quizServiceImpl) generateFallback(req *domain.QuizRequest) (*domain.QuizResult, error) {
	if !s.admin.FallbackEnabled() {
		return nil, domain.NewUpstreamProviderError("Quiz generation is currently unavailable", nil)
	}
	return &domain.QuizResult{Quiz: s.fallback.Generate(req), FallbackUsed: true}, nil
}

// cachedQuiz returns the cached provider response for key, or nil on miss,
// cache unavailability, or a corrupt entry.
func (s *quizServiceImpl) cachedQuiz(ctx context.Context, key string) *domain.GeneratedQuiz {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Quiz cache lookup failed", zap.Error(err), zap.String("key", key))
		}
		return nil
	}

	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		logger.Get().Warn("Corrupt quiz cache entry, dropping it", zap.Error(err), zap.String("key", key))
		if delErr := s.cache.Delete(ctx, key); delErr != nil {
			logger.Get().Warn("Failed to delete corrupt cache entry", zap.Error(delErr), zap.String("key", key))
		}
		return nil
	}
	return &quiz
}

// storeQuiz caches a successful provider response. Fallback output is never
// cached; it is cheap to regenerate and should not mask a recovered
// provider.
func (s *quizServiceImpl) storeQuiz(ctx context.Context, key string, quiz *domain.GeneratedQuiz) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(quiz)
	if err != nil {
		logger.Get().Warn("Failed to marshal quiz for caching", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		logger.Get().Warn("Failed to cache quiz", zap.Error(err), zap.String("key", key))
	}
}
