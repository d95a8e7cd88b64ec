package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bizopshq/bizops_backend/internal/apperrors"
	portssvc "github.com/bizopshq/bizops_backend/internal/core/ports/services"
	"github.com/bizopshq/bizops_backend/internal/dto"
	"github.com/bizopshq/bizops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taskHandler handles HTTP requests related to tasks.
type taskHandler struct {
	taskService portssvc.TaskSvcFacade
}

// newTaskHandler creates a new taskHandler.
func newTaskHandler(taskService portssvc.TaskSvcFacade) *taskHandler {
	return &taskHandler{
		taskService: taskService,
	}
}

// createTask godoc
// @Summary Create a task
// @Description Creates a new task for the authenticated user
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   task body dto.CreateTaskRequest true "Task details"
// @Success 201 {object} dto.TaskResponse "The created task"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create task"
// @Router /tasks/ [post]
func (h *taskHandler) createTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateTaskRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateTask", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), ownerID, createReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating task", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create task in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	logger.Info("Task created successfully", slog.String("task_id", task.TaskID))
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// getTask godoc
// @Summary Get a task
// @Description Retrieves a task by ID
// @Tags tasks
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Success 200 {object} dto.TaskResponse "The task"
// @Failure 404 {object} map[string]string "Task not found"
// @Failure 500 {object} map[string]string "Failed to retrieve task"
// @Router /tasks/{taskID} [get]
func (h *taskHandler) getTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.taskService.GetTaskByID(c.Request.Context(), ownerID, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Task not found", slog.String("task_id", taskID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		logger.Error("Failed to get task from service", slog.String("error", err.Error()), slog.String("task_id", taskID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// listTasks godoc
// @Summary List tasks
// @Description Lists all tasks belonging to the authenticated user
// @Tags tasks
// @Produce  json
// @Success 200 {array} dto.TaskResponse "The user's tasks"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list tasks"
// @Router /tasks/ [get]
func (h *taskHandler) listTasks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list tasks from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTaskResponse(tasks))
}

// updateTask godoc
// @Summary Update a task
// @Description Updates an existing task's details
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Param   task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse "The updated task"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Task not found"
// @Failure 500 {object} map[string]string "Failed to update task"
// @Router /tasks/{taskID} [put]
func (h *taskHandler) updateTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	updateReq := dto.UpdateTaskRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateTask", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), ownerID, taskID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Task not found for update", slog.String("task_id", taskID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating task", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update task in service", slog.String("error", err.Error()), slog.String("task_id", taskID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// deleteTask godoc
// @Summary Delete a task
// @Description Deletes a task by ID
// @Tags tasks
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Success 204 "Task deleted"
// @Failure 404 {object} map[string]string "Task not found"
// @Failure 500 {object} map[string]string "Failed to delete task"
// @Router /tasks/{taskID} [delete]
func (h *taskHandler) deleteTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), ownerID, taskID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Task not found for delete", slog.String("task_id", taskID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		logger.Error("Failed to delete task in service", slog.String("error", err.Error()), slog.String("task_id", taskID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

// addTaskComment godoc
// @Summary Comment on a task
// @Description Appends a comment to a task
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   taskID path string true "Task ID"
// @Param   comment body dto.AddTaskCommentRequest true "Comment text"
// @Success 200 {object} dto.TaskResponse "The task with the new comment"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Task not found"
// @Failure 500 {object} map[string]string "Failed to add comment"
// @Router /tasks/{taskID}/comments [post]
func (h *taskHandler) addTaskComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taskID := c.Param("taskID")

	commentReq := dto.AddTaskCommentRequest{}
	if err := c.ShouldBindJSON(&commentReq); err != nil {
		logger.Error("Failed to bind JSON for AddTaskComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	task, err := h.taskService.AddTaskComment(c.Request.Context(), ownerID, taskID, commentReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Task not found for comment", slog.String("task_id", taskID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error adding comment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to add comment in service", slog.String("error", err.Error()), slog.String("task_id", taskID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// registerTaskRoutes registers task specific routes
func registerTaskRoutes(group *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	taskHandler := newTaskHandler(taskService)

	tasks := group.Group("/tasks")
	{
		tasks.POST("/", taskHandler.createTask)
		tasks.GET("/", taskHandler.listTasks)
		tasks.GET("/:taskID", taskHandler.getTask)
		tasks.PUT("/:taskID", taskHandler.updateTask)
		tasks.DELETE("/:taskID", taskHandler.deleteTask)
		tasks.POST("/:taskID/comments", taskHandler.addTaskComment)
	}
}
