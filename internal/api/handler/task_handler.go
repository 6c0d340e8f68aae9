package handler

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/todolist/internal/api/dto"
	"github.com/martijn/todolist/internal/api/middleware"
	"github.com/martijn/todolist/internal/core/service"
)

// QuoteSource supplies the quote shown above the task list. Implementations
// must always return displayable text.
type QuoteSource interface {
	Quote(ctx context.Context) string
}

type TaskHandler struct {
	taskService *service.TaskService
	quotes      QuoteSource
}

func NewTaskHandler(taskService *service.TaskService, quotes QuoteSource) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		quotes:      quotes,
	}
}

// ListTasks handles GET /tasks
//
// @Summary  Task list of the current user
// @Tags     tasks
// @Produce  html
// @Success  200
// @Success  302 "anonymous, redirect to /login"
// @Router   /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	tasks, err := h.taskService.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.HTML(http.StatusOK, "tasks.html", gin.H{
		"Title":    "Mis Tareas",
		"Flash":    middleware.PopFlash(c),
		"User":     user,
		"Tasks":    tasks,
		"Quote":    h.quotes.Quote(c.Request.Context()),
		"RandomID": rand.IntN(10000) + 1,
	})
}

// AddTask handles POST /add_task
//
// @Summary  Create a task
// @Tags     tasks
// @Accept   x-www-form-urlencoded
// @Param    title formData string false "Task title; blank titles are ignored"
// @Success  302 "redirect to /tasks"
// @Router   /add_task [post]
func (h *TaskHandler) AddTask(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var form dto.TaskForm
	_ = c.ShouldBind(&form)

	if _, err := h.taskService.Create(c.Request.Context(), form.Title, user.ID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, "/tasks")
}

// CompleteTask handles GET /complete_task/:id
//
// @Summary  Toggle completion of an owned task
// @Tags     tasks
// @Param    id path int true "Task ID"
// @Success  302 "redirect to /tasks"
// @Failure  404
// @Router   /complete_task/{id} [get]
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var uri dto.TaskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		NotFound(c)
		return
	}

	_, err := h.taskService.ToggleComplete(c.Request.Context(), uri.ID, user.ID)
	if !h.handleTaskError(c, err) {
		return
	}

	c.Redirect(http.StatusFound, "/tasks")
}

// DeleteTask handles GET /delete_task/:id
//
// @Summary  Delete an owned task
// @Tags     tasks
// @Param    id path int true "Task ID"
// @Success  302 "redirect to /tasks"
// @Failure  404
// @Router   /delete_task/{id} [get]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var uri dto.TaskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		NotFound(c)
		return
	}

	err := h.taskService.Delete(c.Request.Context(), uri.ID, user.ID)
	if !h.handleTaskError(c, err) {
		return
	}

	c.Redirect(http.StatusFound, "/tasks")
}

// handleTaskError reports whether the request may continue
func (h *TaskHandler) handleTaskError(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, service.ErrTaskNotFound) {
		NotFound(c)
		return false
	}
	_ = c.Error(err)
	return false
}

// NotFound renders the 404 page
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", dto.ErrorPage{
		Title:   "No encontrado",
		Status:  http.StatusNotFound,
		Message: "La página solicitada no existe.",
	})
}
