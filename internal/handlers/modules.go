package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TitleRequest struct {
	Title string `json:"title" example:"Concurrency in Go"`
}

// @Summary      List modules
// @Tags         modules
// @Produce      json
// @Success      200  {array}   models.Module
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /modules [get]
// @Security     BearerAuth
func (h *Handler) listModules(c *gin.Context) {
	modules, err := h.services.Modules.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "modules_list_failed")
		return
	}
	c.JSON(http.StatusOK, modules)
}

// @Summary      Create module
// @Description  Creates a module with an empty exercise list.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        body  body      TitleRequest  true  "module title"
// @Success      201   {object}  models.Module
// @Failure      400   {object}  errorResponse
// @Router       /modules [post]
// @Security     BearerAuth
func (h *Handler) createModule(c *gin.Context) {
	var input TitleRequest
	if !h.bindJSON(c, &input) {
		return
	}
	m, err := h.services.Modules.Create(c.Request.Context(), input.Title)
	if err != nil {
		h.respondError(c, err, "module_create_failed")
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary      Get module
// @Tags         modules
// @Produce      json
// @Param        moduleId  path      string  true  "Module ID"
// @Success      200       {object}  models.Module
// @Failure      404       {object}  errorResponse
// @Router       /modules/{moduleId} [get]
// @Security     BearerAuth
func (h *Handler) getModule(c *gin.Context) {
	id := c.Param("moduleId")
	m, err := h.services.Modules.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "module_get_failed", "module_id", id)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Rename module
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        moduleId  path      string        true  "Module ID"
// @Param        body      body      TitleRequest  true  "new title"
// @Success      200       {object}  models.Module
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /modules/{moduleId} [put]
// @Security     BearerAuth
func (h *Handler) updateModule(c *gin.Context) {
	var input TitleRequest
	if !h.bindJSON(c, &input) {
		return
	}
	id := c.Param("moduleId")
	m, err := h.services.Modules.UpdateTitle(c.Request.Context(), id, input.Title)
	if err != nil {
		h.respondError(c, err, "module_update_failed", "module_id", id)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Delete module
// @Description  Deletes the module and every exercise in it.
// @Tags         modules
// @Produce      json
// @Param        moduleId  path      string  true  "Module ID"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  errorResponse
// @Router       /modules/{moduleId} [delete]
// @Security     BearerAuth
func (h *Handler) deleteModule(c *gin.Context) {
	id := c.Param("moduleId")
	if err := h.services.Modules.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "module_delete_failed", "module_id", id)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Module deleted successfully"})
}
