package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
)

// activeUserWindow is how recently a user must have generated a quiz to
// count as active in the admin stats.
const activeUserWindow = 24 * time.Hour

const maskedAPIKey = "***********"

// AdminService exposes system statistics and runtime-mutable settings for
// the admin panel, and the setting accessors the rest of the service layer
// consults.
type AdminService interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	GetConfig() *dto.AdminConfigResponse
	UpdateAPIConfig(req *dto.UpdateAPIConfigRequest) error
	UpdateSystemConfig(req *dto.UpdateSystemConfigRequest)
	ListUsers(ctx context.Context) (*dto.AdminUsersResponse, error)

	MaxQuestionsPerQuiz() int
	PDFUploadEnabled() bool
	FallbackEnabled() bool

	RecordQuizGenerated(userID string)
	RecordProviderCall()
}

type adminServiceImpl struct {
	userRepo domain.UserRepository

	mu                       sync.RWMutex
	providerAPIKey           string
	maxQuestionsPerQuiz      int
	enablePDFUpload          bool
	enableFallbackGeneration bool
	applyProviderKey         func(apiKey string) error

	quizzesGenerated atomic.Int64
	providerCalls    atomic.Int64

	activeMu   sync.Mutex
	lastActive map[string]time.Time
}

// NewAdminService creates an AdminService seeded from static configuration.
// applyProviderKey is invoked when an admin updates the provider credential
// at runtime (the composition root uses it to swap the generator); it may
// be nil.
func NewAdminService(userRepo domain.UserRepository, cfg config.AdminConfig, providerAPIKey string, applyProviderKey func(apiKey string) error) AdminService {
	return &adminServiceImpl{
		userRepo:                 userRepo,
		providerAPIKey:           providerAPIKey,
		maxQuestionsPerQuiz:      cfg.MaxQuestionsPerQuiz,
		enablePDFUpload:          cfg.EnablePDFUpload,
		enableFallbackGeneration: cfg.EnableFallbackGeneration,
		applyProviderKey:         applyProviderKey,
		lastActive:               make(map[string]time.Time),
	}
}

func (s *adminServiceImpl) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to count users", err)
	}

	return &dto.AdminStatsResponse{
		TotalUsers:   totalUsers,
		TotalQuizzes: s.quizzesGenerated.Load(),
		ActiveUsers:  s.countActiveUsers(),
		APIUsage:     s.providerCalls.Load(),
	}, nil
}

func (s *adminServiceImpl) GetConfig() *dto.AdminConfigResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	masked := ""
	if s.providerAPIKey != "" {
		masked = maskedAPIKey
	}
	return &dto.AdminConfigResponse{
		ProviderAPIKey:           masked,
		MaxQuestionsPerQuiz:      s.maxQuestionsPerQuiz,
		EnablePDFUpload:          s.enablePDFUpload,
		EnableFallbackGeneration: s.enableFallbackGeneration,
	}
}

func (s *adminServiceImpl) UpdateAPIConfig(req *dto.UpdateAPIConfigRequest) error {
	if req.ProviderAPIKey == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.providerAPIKey = req.ProviderAPIKey
	if s.applyProviderKey != nil {
		if err := s.applyProviderKey(req.ProviderAPIKey); err != nil {
			return domain.NewInternalError("Failed to apply provider credential", err)
		}
	}
	logger.Get().Info("Provider API credential updated")
	return nil
}

func (s *adminServiceImpl) UpdateSystemConfig(req *dto.UpdateSystemConfigRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.MaxQuestionsPerQuiz != nil && *req.MaxQuestionsPerQuiz > 0 && *req.MaxQuestionsPerQuiz <= 50 {
		s.maxQuestionsPerQuiz = *req.MaxQuestionsPerQuiz
	}
	if req.EnablePDFUpload != nil {
		s.enablePDFUpload = *req.EnablePDFUpload
	}
	if req.EnableFallbackGeneration != nil {
		s.enableFallbackGeneration = *req.EnableFallbackGeneration
	}

	logger.Get().Info("System settings updated",
		zap.Int("max_questions_per_quiz", s.maxQuestionsPerQuiz),
		zap.Bool("enable_pdf_upload", s.enablePDFUpload),
		zap.Bool("enable_fallback_generation", s.enableFallbackGeneration),
	)
}

func (s *adminServiceImpl) ListUsers(ctx context.Context) (*dto.AdminUsersResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list users", err)
	}

	resp := &dto.AdminUsersResponse{Success: true, Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, ToUserResponse(u))
	}
	return resp, nil
}

func (s *adminServiceImpl) MaxQuestionsPerQuiz() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxQuestionsPerQuiz
}

func (s *adminServiceImpl) PDFUploadEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enablePDFUpload
}

func (s *adminServiceImpl) FallbackEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enableFallbackGeneration
}

func (s *adminServiceImpl) RecordQuizGenerated(userID string) {
	s.quizzesGenerated.Add(1)

	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	s.lastActive[userID] = time.Now()
}

func (s *adminServiceImpl) RecordProviderCall() {
	s.providerCalls.Add(1)
}

func (s *adminServiceImpl) countActiveUsers() int {
	cutoff := time.Now().Add(-activeUserWindow)

	s.activeMu.Lock()
	defer s.activeMu.Unlock()

	active := 0
	for userID, seen := range s.lastActive {
		if seen.After(cutoff) {
			active++
		} else {
			delete(s.lastActive, userID)
		}
	}
	return active
}
