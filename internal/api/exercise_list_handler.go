package api

import (
	"alcyxob/fitcoach-api/internal/domain"
	"alcyxob/fitcoach-api/internal/service"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExerciseListHandler holds the exercise list service dependency.
type ExerciseListHandler struct {
	listService service.ExerciseListService
}

// NewExerciseListHandler creates a new ExerciseListHandler.
func NewExerciseListHandler(listService service.ExerciseListService) *ExerciseListHandler {
	return &ExerciseListHandler{listService: listService}
}

type CreateExerciseListRequest struct {
	Name  string   `json:"name" binding:"required,min=1,max=80"`
	Items []string `json:"items" binding:"required,min=1,max=200"`
}

type ExerciseListSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ExerciseListDetail struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateExerciseList godoc
// @Summary Create an exercise list
// @Tags ExerciseLists
// @Accept json
// @Produce json
// @Param list body CreateExerciseListRequest true "Exercise list"
// @Success 200 {object} ExerciseListSummary
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /api/exercise-lists [post]
func (h *ExerciseListHandler) CreateExerciseList(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateExerciseListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	list, err := h.listService.Create(c.Request.Context(), userID, req.Name, req.Items)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapExerciseListSummary(*list))
}

func (h *ExerciseListHandler) ListExerciseLists(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	lists, err := h.listService.List(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]ExerciseListSummary, 0, len(lists))
	for _, l := range lists {
		resp = append(resp, mapExerciseListSummary(l))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExerciseListHandler) GetExerciseList(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	list, err := h.listService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ExerciseListDetail{
		ID:        list.ID,
		Name:      list.Name,
		Items:     list.Items,
		CreatedAt: list.CreatedAt,
	})
}

func (h *ExerciseListHandler) DeleteExerciseList(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.listService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExerciseListHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseListNotFound):
		abortWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: Exercise list request failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func mapExerciseListSummary(l domain.ExerciseList) ExerciseListSummary {
	return ExerciseListSummary{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}
