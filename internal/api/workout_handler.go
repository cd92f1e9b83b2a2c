package api

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/schema"
	"alcyxob/fitcoach-api/internal/service"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves saved workout programs.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type SaveWorkoutRequest struct {
	Title       string              `json:"title" binding:"required,min=1,max=80"`
	InputText   *string             `json:"input_text"`
	Preferences *schema.Preferences `json:"preferences"`
	Program     *schema.Program     `json:"program" binding:"required"`
}

type RenameWorkoutRequest struct {
	Title string `json:"title" binding:"required,min=1,max=80"`
}

type WorkoutSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type WorkoutDetail struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	InputText   *string             `json:"input_text"`
	Preferences *schema.Preferences `json:"preferences"`
	Program     schema.Program      `json:"program"`
	CreatedAt   time.Time           `json:"created_at"`
}

// --- Handler Methods ---

// SaveWorkout godoc
// @Summary Save a generated program
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body SaveWorkoutRequest true "Program to save"
// @Success 200 {object} WorkoutSummary
// @Router /api/workouts [post]
func (h *WorkoutHandler) SaveWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req SaveWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.Save(c.Request.Context(), userID, req.Title, req.InputText, req.Preferences, *req.Program)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutSummary(*workout))
}

// ListWorkouts returns the caller's programs, newest first.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]WorkoutSummary, 0, len(workouts))
	for _, w := range workouts {
		resp = append(resp, mapWorkoutSummary(w))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, WorkoutDetail{
		ID:          workout.ID,
		Title:       workout.Title,
		InputText:   workout.InputText,
		Preferences: workout.Preferences,
		Program:     workout.Program,
		CreatedAt:   workout.CreatedAt,
	})
}

func (h *WorkoutHandler) RenameWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req RenameWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.Rename(c.Request.Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkoutSummary(*workout))
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportWorkout godoc
// @Summary Export a saved program to object storage
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} service.ExportResult
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /api/workouts/{id}/export [post]
func (h *WorkoutHandler) ExportWorkout(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	result, err := h.workoutService.Export(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *WorkoutHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrStorageDisabled):
		abortWithError(c, http.StatusServiceUnavailable, "Program export is not available")
	default:
		log.Printf("ERROR: Workout request failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func mapWorkoutSummary(w domain.WorkoutProgram) WorkoutSummary {
	return WorkoutSummary{ID: w.ID, Title: w.Title, CreatedAt: w.CreatedAt}
}
