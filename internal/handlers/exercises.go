package handlers

import (
	"net/http"

	"learning_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List exercises
// @Tags         exercises
// @Produce      json
// @Param        moduleId  path      string  true  "Module ID"
// @Success      200       {array}   models.Exercise
// @Failure      404       {object}  errorResponse
// @Router       /modules/{moduleId}/exercises [get]
// @Security     BearerAuth
func (h *Handler) listExercises(c *gin.Context) {
	moduleID := c.Param("moduleId")
	list, err := h.services.Exercises.List(c.Request.Context(), moduleID)
	if err != nil {
		h.respondError(c, err, "exercises_list_failed", "module_id", moduleID)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Add exercise
// @Tags         exercises
// @Accept       json
// @Produce      json
// @Param        moduleId  path      string                 true  "Module ID"
// @Param        body      body      service.ExerciseInput  true  "title and description"
// @Success      201       {object}  models.Exercise
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /modules/{moduleId}/exercises [post]
// @Security     BearerAuth
func (h *Handler) addExercise(c *gin.Context) {
	var input service.ExerciseInput
	if !h.bindJSON(c, &input) {
		return
	}
	moduleID := c.Param("moduleId")
	ex, err := h.services.Exercises.Add(c.Request.Context(), moduleID, input)
	if err != nil {
		h.respondError(c, err, "exercise_add_failed", "module_id", moduleID)
		return
	}
	c.JSON(http.StatusCreated, ex)
}

// @Summary      Add exercises in bulk
// @Description  Appends every entry in one write; nothing is stored if any entry is incomplete.
// @Tags         exercises
// @Accept       json
// @Produce      json
// @Param        moduleId  path      string                   true  "Module ID"
// @Param        body      body      []service.ExerciseInput  true  "non-empty array"
// @Success      201       {array}   models.Exercise
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /modules/{moduleId}/exercises/bulk [post]
// @Security     BearerAuth
func (h *Handler) addExercisesBulk(c *gin.Context) {
	var input []service.ExerciseInput
	if !h.bindJSON(c, &input) {
		return
	}
	moduleID := c.Param("moduleId")
	added, err := h.services.Exercises.AddMany(c.Request.Context(), moduleID, input)
	if err != nil {
		h.respondError(c, err, "exercise_bulk_add_failed", "module_id", moduleID, "count", len(input))
		return
	}
	c.JSON(http.StatusCreated, added)
}

// @Summary      Get exercise
// @Tags         exercises
// @Produce      json
// @Param        moduleId    path      string  true  "Module ID"
// @Param        exerciseId  path      string  true  "Exercise ID"
// @Success      200         {object}  models.Exercise
// @Failure      404         {object}  errorResponse
// @Router       /modules/{moduleId}/exercises/{exerciseId} [get]
// @Security     BearerAuth
func (h *Handler) getExercise(c *gin.Context) {
	moduleID, exerciseID := c.Param("moduleId"), c.Param("exerciseId")
	ex, err := h.services.Exercises.Get(c.Request.Context(), moduleID, exerciseID)
	if err != nil {
		h.respondError(c, err, "exercise_get_failed", "module_id", moduleID, "exercise_id", exerciseID)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// @Summary      Update exercise
// @Description  Non-empty fields replace the stored values; empty or absent fields are kept.
// @Tags         exercises
// @Accept       json
// @Produce      json
// @Param        moduleId    path      string                 true  "Module ID"
// @Param        exerciseId  path      string                 true  "Exercise ID"
// @Param        body        body      service.ExercisePatch  true  "fields to change"
// @Success      200         {object}  models.Exercise
// @Failure      404         {object}  errorResponse
// @Router       /modules/{moduleId}/exercises/{exerciseId} [put]
// @Security     BearerAuth
func (h *Handler) updateExercise(c *gin.Context) {
	var patch service.ExercisePatch
	if !h.bindJSON(c, &patch) {
		return
	}
	moduleID, exerciseID := c.Param("moduleId"), c.Param("exerciseId")
	ex, err := h.services.Exercises.Update(c.Request.Context(), moduleID, exerciseID, patch)
	if err != nil {
		h.respondError(c, err, "exercise_update_failed", "module_id", moduleID, "exercise_id", exerciseID)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// @Summary      Remove exercise
// @Tags         exercises
// @Produce      json
// @Param        moduleId    path      string  true  "Module ID"
// @Param        exerciseId  path      string  true  "Exercise ID"
// @Success      200         {object}  messageResponse
// @Failure      404         {object}  errorResponse
// @Router       /modules/{moduleId}/exercises/{exerciseId} [delete]
// @Security     BearerAuth
func (h *Handler) removeExercise(c *gin.Context) {
	moduleID, exerciseID := c.Param("moduleId"), c.Param("exerciseId")
	if err := h.services.Exercises.Remove(c.Request.Context(), moduleID, exerciseID); err != nil {
		h.respondError(c, err, "exercise_remove_failed", "module_id", moduleID, "exercise_id", exerciseID)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Exercise deleted successfully"})
}
