package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dicapisar/taskboard/internal/api/middleware"
	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/service"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Subject     string     `json:"subject"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

func (req TaskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Status:      domain.TaskStatus(req.Status),
		Subject:     req.Subject,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	tasks, err := h.taskService.GetTasks(r.Context(), sess.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondSuccess(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, sess.ID)
	if err != nil {
		h.respondTaskError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task retrieved successfully", task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), sess.ID, req.toInput())
	if err != nil {
		h.respondTaskError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Task created successfully", task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, sess.ID, req.toInput())
	if err != nil {
		h.respondTaskError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.ChangeTaskStatus(r.Context(), taskID, sess.ID, domain.TaskStatus(req.Status))
	if err != nil {
		h.respondTaskError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task status updated successfully", task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID, sess.ID); err != nil {
		h.respondTaskError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

func (h *TaskHandler) respondTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		// Not-owned tasks surface as not-found as well.
		respondError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, domain.ErrEmptyTaskTitle):
		respondError(w, http.StatusBadRequest, "Task title is required")
	case errors.Is(err, domain.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "Invalid task status")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func taskIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
