package api

import (
	"alcyxob/fitcoach-api/internal/ai"
	"alcyxob/fitcoach-api/internal/schema"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const generationFailedMessage = "AI could not generate a valid JSON program. Try again."

// ProgramHandler serves program generation.
type ProgramHandler struct {
	generator ai.ProgramGenerator
	debug     bool // expose the last generation error in 502 responses
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(generator ai.ProgramGenerator, debug bool) *ProgramHandler {
	return &ProgramHandler{generator: generator, debug: debug}
}

type GenerateProgramRequest struct {
	Text        string              `json:"text" binding:"required,min=1,max=4000"`
	Preferences *schema.Preferences `json:"preferences"`
}

type RejectionResponse struct {
	Code    schema.RejectionCode `json:"code"`
	Message string               `json:"message"`
	Hints   []string             `json:"hints"`
}

type GenerationFailedResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Debug   *GenerationDebug `json:"debug,omitempty"`
}

type GenerationDebug struct {
	LastError string `json:"last_error"`
	Attempts  int    `json:"attempts"`
}

// GenerateProgram godoc
// @Summary Generate a workout program from free text
// @Tags AI
// @Accept json
// @Produce json
// @Param request body GenerateProgramRequest true "Request text and preferences"
// @Success 200 {object} schema.ProgramOK
// @Failure 422 {object} RejectionResponse "Request rejected by the model"
// @Failure 502 {object} GenerationFailedResponse "Model never produced a valid program"
// @Router /api/ai/program [post]
func (h *ProgramHandler) GenerateProgram(c *gin.Context) {
	var req GenerateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	req.Preferences.Normalize()

	program, err := h.generator.Generate(c.Request.Context(), req.Text, req.Preferences)
	if err != nil {
		var genErr *ai.GenerationError
		if !errors.As(err, &genErr) {
			log.Printf("ERROR: Program generation failed: %v", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during generation")
			return
		}
		log.Printf("ERROR: %v", genErr)
		resp := GenerationFailedResponse{Code: ai.ErrorCode, Message: generationFailedMessage}
		if h.debug {
			resp.Debug = &GenerationDebug{Attempts: genErr.Attempts}
			if genErr.Last != nil {
				resp.Debug.LastError = genErr.Last.Error()
			}
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, resp)
		return
	}

	if program.IsRejected() {
		r := program.Rejected
		hints := r.Hints
		if hints == nil {
			hints = []string{}
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, RejectionResponse{Code: r.Code, Message: r.Message, Hints: hints})
		return
	}

	c.JSON(http.StatusOK, program)
}
