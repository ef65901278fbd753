package handler

import (
	"strconv"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FallbackUsedHeader tells clients whether the quiz came from the local
// generator instead of the external provider.
const FallbackUsedHeader = "X-Fallback-Used"

// QuizHandler handles quiz generation HTTP requests.
type QuizHandler struct {
	quizService service.QuizService
}

func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates MCQ and true/false questions from the provided study text
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Failure 504 {object} middleware.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("Invalid request body")
	}

	userID := middleware.UserID(c)
	result, err := h.quizService.GenerateQuiz(c.Context(), userID, req.ToDomain())
	if err != nil {
		return err
	}

	logger.Get().Info("Quiz generated",
		zap.String("user_id", userID),
		zap.Int("mcqs", len(result.Quiz.MCQs)),
		zap.Int("true_false", len(result.Quiz.TrueFalse)),
		zap.Bool("fallback_used", result.FallbackUsed),
	)

	c.Set(FallbackUsedHeader, strconv.FormatBool(result.FallbackUsed))
	return c.JSON(dto.GenerateQuizResponse{
		Success: true,
		Quiz:    result.Quiz,
	})
}
