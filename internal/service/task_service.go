package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository"
	"gorm.io/gorm"
)

// TaskService applies ownership and validation rules over the task
// repository. Tasks are never cached, so no invalidation is involved.
type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type TaskInput struct {
	Title       string
	Description string
	IsCompleted bool
	Priority    int
	DueDate     *time.Time
	Status      domain.TaskStatus
	Subject     string
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ErrEmptyTaskTitle
	}
	if in.Status != "" && !in.Status.IsValid() {
		return domain.ErrInvalidStatus
	}
	return nil
}

func (s *TaskService) GetTasks(ctx context.Context, ownerID int) ([]*domain.Task, error) {
	return s.taskRepo.ListByOwner(ctx, ownerID)
}

// GetTask returns the task only when it belongs to ownerID. A task
// owned by someone else comes back as ErrTaskNotFound with no field
// leakage.
func (s *TaskService) GetTask(ctx context.Context, taskID, ownerID int) (*domain.Task, error) {
	task, err := s.taskRepo.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID int, input TaskInput) (*domain.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusNotStarted
	}
	priority := input.Priority
	if priority == 0 {
		priority = 1
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     ownerID,
		IsCompleted: input.IsCompleted,
		Priority:    priority,
		DueDate:     input.DueDate,
		Status:      status,
		Subject:     input.Subject,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID, ownerID int, input TaskInput) (*domain.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.IsCompleted = input.IsCompleted
	task.Priority = input.Priority
	task.DueDate = input.DueDate
	if input.Status != "" {
		task.Status = input.Status
	}
	task.Subject = input.Subject

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ChangeTaskStatus moves the task to the given status. Any valid
// status may follow any other; only enum membership is checked.
func (s *TaskService) ChangeTaskStatus(ctx context.Context, taskID, ownerID int, status domain.TaskStatus) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.GetTask(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, ownerID int) error {
	task, err := s.GetTask(ctx, taskID, ownerID)
	if err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, task.ID)
}
