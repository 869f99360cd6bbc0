package model

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusComplete   TaskStatus = "COMPLETE"
	StatusCancelled  TaskStatus = "CANCELLED"
	StatusOnHold     TaskStatus = "ON_HOLD"
	StatusOverdue    TaskStatus = "OVERDUE"
	StatusArchived   TaskStatus = "ARCHIVED"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete, StatusCancelled,
		StatusOnHold, StatusOverdue, StatusArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Task struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"not null;uniqueIndex:idx_owner_title" json:"title"`
	Description string `json:"description,omitempty"`

	// Ownership is exclusive. The owner/title pair carries a unique
	// index so no account can hold two tasks with the same title.
	OwnerID string `gorm:"not null;uniqueIndex:idx_owner_title;index" json:"owner_id"`

	Status   TaskStatus   `gorm:"not null;default:PENDING" json:"status"`
	Priority TaskPriority `gorm:"not null" json:"priority"`
	Category string       `json:"category,omitempty"`

	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
