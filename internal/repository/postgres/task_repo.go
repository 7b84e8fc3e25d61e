package postgres

import (
	"context"

	"github.com/dicapisar/taskboard/internal/domain"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByIDAndOwner scopes the lookup to the owner so a foreign task is
// indistinguishable from an absent one.
func (r *taskRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID int) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}
