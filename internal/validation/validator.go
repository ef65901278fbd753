package validation

import (
	"regexp"
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
)

// Validator provides request validation functionality
type Validator struct {
	PasswordMinLength int
}

// NewValidator creates a new validator instance
func NewValidator(passwordMinLength int) *Validator {
	return &Validator{PasswordMinLength: passwordMinLength}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateSignupRequest validates the signup request fields.
func (v *Validator) ValidateSignupRequest(req *dto.SignupRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	} else if !emailPattern.MatchString(req.Email) {
		errs = append(errs, domain.NewInvalidFormatError("email", req.Email))
	}

	if req.Password == "" {
		errs = append(errs, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < v.PasswordMinLength {
		errs = append(errs, domain.NewOutOfRangeError("password", len(req.Password), v.PasswordMinLength, 128))
	}

	if strings.TrimSpace(req.FirstName) == "" {
		errs = append(errs, domain.NewMissingFieldError("firstName"))
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs = append(errs, domain.NewMissingFieldError("lastName"))
	}

	return errs
}

// ValidateLoginRequest validates the login request fields.
func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	}
	if req.Password == "" {
		errs = append(errs, domain.NewMissingFieldError("password"))
	}

	return errs
}

// ValidateQuizRequest validates a quiz-generation request. Counts above
// the admin-configured ceiling are clamped by the service, not rejected
// here, so only negative counts fail validation.
func (v *Validator) ValidateQuizRequest(req *domain.QuizRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.SourceText) == "" {
		errs = append(errs, domain.NewMissingFieldError("pdf_text"))
	}
	if req.Difficulty == "" {
		errs = append(errs, domain.NewMissingFieldError("difficulty_level"))
	} else if !req.Difficulty.IsValid() {
		errs = append(errs, domain.NewInvalidFormatError("difficulty_level", string(req.Difficulty)))
	}

	if !req.IncludeMCQ && !req.IncludeTrueFalse {
		errs = append(errs, domain.ValidationError{
			Field:   "include_mcq",
			Message: "at least one question type (MCQ or True/False) must be selected",
		})
	}

	if req.IncludeMCQ && req.MCQCount < 0 {
		errs = append(errs, domain.NewOutOfRangeError("mcq_count", req.MCQCount, 0, 50))
	}
	if req.IncludeTrueFalse && req.TrueFalseCount < 0 {
		errs = append(errs, domain.NewOutOfRangeError("true_false_count", req.TrueFalseCount, 0, 50))
	}

	return errs
}
