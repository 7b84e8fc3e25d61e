package domain

import "time"

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusBlocked    TaskStatus = "blocked"
)

// IsValid checks if a task status is a known value. Transitions between
// valid statuses are otherwise unrestricted.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted, TaskStatusBlocked:
		return true
	}
	return false
}

func (s TaskStatus) String() string {
	return string(s)
}

type Task struct {
	ID          int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"size:100;not null"`
	Description string     `json:"description" gorm:"size:255"`
	OwnerID     int        `json:"ownerId" gorm:"not null;index"`
	IsCompleted bool       `json:"isCompleted" gorm:"not null;default:false"`
	Priority    int        `json:"priority" gorm:"not null;default:1"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	Status      TaskStatus `json:"status" gorm:"size:50;not null;default:'not_started'"`
	Subject     string     `json:"subject" gorm:"size:100"`

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}
