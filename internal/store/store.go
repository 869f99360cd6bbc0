// Package store abstracts durable account and task records behind small
// interfaces so the service layer can be exercised without a database.
// The gorm adapters in this package are the production implementation;
// their unique indexes are the final backstop for every uniqueness rule
// the services pre-check.
package store

import (
	"context"
	"time"

	"taskwell/task-api/internal/model"
)

type Users interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)

	// UsernameTaken and EmailTaken report whether another account
	// already holds the value. A non-empty excludeID skips that record
	// so self-updates don't collide with themselves.
	UsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)

	Create(ctx context.Context, u *model.User) error
	Save(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
}

type Tasks interface {
	FindByID(ctx context.Context, id uint) (*model.Task, error)

	// Query projections. An empty ownerID means "across all owners";
	// callers decide who may use that form.
	FindByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	FindByStatus(ctx context.Context, ownerID string, status model.TaskStatus) ([]model.Task, error)
	FindByPriority(ctx context.Context, ownerID string, priority model.TaskPriority) ([]model.Task, error)
	FindByCategory(ctx context.Context, ownerID, category string) ([]model.Task, error)
	FindByDueDate(ctx context.Context, ownerID string, day time.Time) ([]model.Task, error)
	FindOverdue(ctx context.Context, ownerID string) ([]model.Task, error)
	FindUpcoming(ctx context.Context, ownerID string) ([]model.Task, error)

	// TitleTaken reports whether the owner already has a task with this
	// exact title, excluding the given task id (0 excludes nothing).
	TitleTaken(ctx context.Context, ownerID, title string, excludeID uint) (bool, error)

	Create(ctx context.Context, t *model.Task) error
	Save(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id uint) error
}
