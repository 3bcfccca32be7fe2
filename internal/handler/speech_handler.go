package handler

import (
	"hangeul-path/internal/domain"
	"hangeul-path/internal/dto"
	"hangeul-path/internal/service"
	"hangeul-path/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SpeechHandler handles pronunciation audio requests.
type SpeechHandler struct {
	speechService service.SpeechService
	validator     *validation.Validator
}

// NewSpeechHandler creates a new SpeechHandler instance
func NewSpeechHandler(speechService service.SpeechService, validator *validation.Validator) *SpeechHandler {
	return &SpeechHandler{speechService: speechService, validator: validator}
}

// Synthesize godoc
// @Summary Pronounce a Korean text
// @Description Returns MP3 audio of the given text
// @Tags tts
// @Accept json
// @Produce audio/mpeg
// @Param request body dto.SynthesizeRequest true "Text to speak"
// @Success 200 {file} binary
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /tts [post]
func (h *SpeechHandler) Synthesize(c *fiber.Ctx) error {
	var req dto.SynthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateSynthesizeRequest(req); len(errs) > 0 {
		return errs
	}
	audio, err := h.speechService.Pronounce(c.Context(), req.Text)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}
