package validation

import (
	"regexp"
	"strings"

	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
)

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateID validates a ULID path or body parameter.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errs = append(errs, domain.NewInvalidFormatError(field, id))
	}
	return errs
}

// ValidateStartQuizRequest validates the start quiz request.
func (v *Validator) ValidateStartQuizRequest(req dto.StartQuizRequest) domain.ValidationErrors {
	return v.ValidateID("course_id", req.CourseID)
}

// ValidateSelectAnswerRequest validates an answer selection.
func (v *Validator) ValidateSelectAnswerRequest(req dto.SelectAnswerRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(req.Option) == "" {
		errs = append(errs, domain.NewMissingFieldError("option"))
	}
	return errs
}

// ValidateCreatePostRequest validates a new community post.
func (v *Validator) ValidateCreatePostRequest(req dto.CreatePostRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, domain.NewMissingFieldError("title"))
	} else if len(req.Title) > 200 {
		errs = append(errs, domain.NewOutOfRangeError("title", len(req.Title), 1, 200))
	}
	if strings.TrimSpace(req.Content) == "" {
		errs = append(errs, domain.NewMissingFieldError("content"))
	} else if len(req.Content) > 10000 {
		errs = append(errs, domain.NewOutOfRangeError("content", len(req.Content), 1, 10000))
	}
	return errs
}

// ValidateSynthesizeRequest validates a speech request.
func (v *Validator) ValidateSynthesizeRequest(req dto.SynthesizeRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(req.Text) == "" {
		errs = append(errs, domain.NewMissingFieldError("text"))
	} else if len(req.Text) > 500 {
		errs = append(errs, domain.NewOutOfRangeError("text", len(req.Text), 1, 500))
	}
	return errs
}

func isValidULID(s string) bool {
	return ulidPattern.MatchString(s)
}
