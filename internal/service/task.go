package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskwell/task-api/internal/apperr"
	"taskwell/task-api/internal/authz"
	"taskwell/task-api/internal/model"
	"taskwell/task-api/internal/store"
	"taskwell/task-api/validators"

	"go.uber.org/zap"
)

var ErrTitleTaken = fmt.Errorf("%w: you already have a task with this title", apperr.ErrConflict)

// TaskDraft carries the caller-settable fields for a new task. The owner
// is always the acting principal, never part of the draft.
type TaskDraft struct {
	Title       string
	Description string
	Priority    model.TaskPriority
	Category    string
	DueDate     *time.Time
}

// TaskPatch updates mutable task fields; nil means "leave unchanged".
// Owner and id can never be patched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	Category    *string
	DueDate     *time.Time
}

// TaskService owns task creation, mutation and the ownership rules
// around them. Mutations load the task first and then authorize against
// the loaded record, so "doesn't exist" and "not yours" stay distinct.
type TaskService struct {
	tasks store.Tasks
	users store.Users
}

func NewTaskService(tasks store.Tasks, users store.Users) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// Create makes a new PENDING task owned by the principal. Requires a
// verified account.
func (s *TaskService) Create(ctx context.Context, p *authz.Principal, draft TaskDraft) (*model.Task, error) {
	if err := authz.Authorize(p, authz.ActionCreateTask, authz.None).Err(); err != nil {
		return nil, err
	}

	if err := validators.TaskTitleValidator(draft.Title); err != nil {
		return nil, err
	}
	if err := validators.TaskDescriptionValidator(draft.Description); err != nil {
		return nil, err
	}
	if !draft.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", apperr.ErrValidation, draft.Priority)
	}
	if err := validators.DueDateValidator(draft.DueDate); err != nil {
		return nil, err
	}

	if taken, err := s.tasks.TitleTaken(ctx, p.ID, draft.Title, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrTitleTaken
	}

	task := &model.Task{
		Title:       draft.Title,
		Description: draft.Description,
		OwnerID:     p.ID,
		Status:      model.StatusPending,
		Priority:    draft.Priority,
		Category:    draft.Category,
		DueDate:     draft.DueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	zap.L().Info("Task created", zap.Uint("taskID", task.ID), zap.String("ownerID", p.ID))
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, p *authz.Principal, id uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(p, authz.ActionReadTask, authz.Task(task.OwnerID)).Err(); err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies a patch to an existing task.
func (s *TaskService) Update(ctx context.Context, p *authz.Principal, id uint, patch TaskPatch) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(p, authz.ActionUpdateTask, authz.Task(task.OwnerID)).Err(); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validators.TaskTitleValidator(*patch.Title); err != nil {
			return nil, err
		}

		if taken, err := s.tasks.TitleTaken(ctx, task.OwnerID, *patch.Title, task.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrTitleTaken
		}

		task.Title = *patch.Title
	}

	if patch.Description != nil {
		if err := validators.TaskDescriptionValidator(*patch.Description); err != nil {
			return nil, err
		}
		task.Description = *patch.Description
	}

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, *patch.Status)
		}
		s.transitionStatus(task, *patch.Status)
	}

	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", apperr.ErrValidation, *patch.Priority)
		}
		task.Priority = *patch.Priority
	}

	if patch.Category != nil {
		task.Category = *patch.Category
	}

	if patch.DueDate != nil {
		if err := validators.DueDateValidator(patch.DueDate); err != nil {
			return nil, err
		}
		task.DueDate = patch.DueDate
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	zap.L().Info("Task updated", zap.Uint("taskID", task.ID))
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, p *authz.Principal, id uint) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(p, authz.ActionDeleteTask, authz.Task(task.OwnerID)).Err(); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	zap.L().Info("Task deleted", zap.Uint("taskID", id))
	return nil
}

// MarkCompleted sets the task to COMPLETE and stamps completedAt. The
// completion toggles pass through the same ownership rule as update and
// delete.
func (s *TaskService) MarkCompleted(ctx context.Context, p *authz.Principal, id uint) (*model.Task, error) {
	return s.toggleCompleted(ctx, p, id, model.StatusComplete)
}

// MarkUncompleted reverts the task to PENDING and clears completedAt.
func (s *TaskService) MarkUncompleted(ctx context.Context, p *authz.Principal, id uint) (*model.Task, error) {
	return s.toggleCompleted(ctx, p, id, model.StatusPending)
}

func (s *TaskService) toggleCompleted(ctx context.Context, p *authz.Principal, id uint, status model.TaskStatus) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(p, authz.ActionCompleteTask, authz.Task(task.OwnerID)).Err(); err != nil {
		return nil, err
	}

	s.transitionStatus(task, status)

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	zap.L().Info("Task status toggled", zap.Uint("taskID", task.ID), zap.String("status", string(status)))
	return task, nil
}

// Reassign transfers ownership to another existing account. The acting
// principal must be authorized against the task's current owner.
func (s *TaskService) Reassign(ctx context.Context, p *authz.Principal, id uint, newOwnerID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(p, authz.ActionReassignTask, authz.Task(task.OwnerID)).Err(); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, newOwnerID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: new owner does not exist", apperr.ErrNotFound)
		}
		return nil, err
	}

	if taken, err := s.tasks.TitleTaken(ctx, newOwnerID, task.Title, task.ID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrTitleTaken
	}

	task.OwnerID = newOwnerID

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	zap.L().Info("Task reassigned", zap.Uint("taskID", task.ID), zap.String("newOwnerID", newOwnerID))
	return task, nil
}

// transitionStatus applies a status change and keeps completedAt in sync:
// set on entering COMPLETE, cleared on leaving it.
func (s *TaskService) transitionStatus(task *model.Task, status model.TaskStatus) {
	if status == model.StatusComplete && task.Status != model.StatusComplete {
		now := time.Now()
		task.CompletedAt = &now
	}
	if status != model.StatusComplete {
		task.CompletedAt = nil
	}
	task.Status = status
}

// scope decides whether the principal may browse ownerID's tasks. An
// empty ownerID means "across all owners" and is admin territory.
func (s *TaskService) scope(p *authz.Principal, ownerID string) error {
	if p == nil {
		return fmt.Errorf("%w: authentication required", apperr.ErrUnauthorized)
	}
	if ownerID == p.ID || p.IsAdmin() {
		return nil
	}
	return fmt.Errorf("%w: not the owner", apperr.ErrForbidden)
}

func (s *TaskService) ByOwner(ctx context.Context, p *authz.Principal, ownerID string) ([]model.Task, error) {
	if err := s.scope(p, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindByOwner(ctx, ownerID)
}

func (s *TaskService) ByStatus(ctx context.Context, p *authz.Principal, ownerID string, status model.TaskStatus) ([]model.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, status)
	}
	if err := s.scope(p, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindByStatus(ctx, ownerID, status)
}

func (s *TaskService) ByPriority(ctx context.Context, p *authz.Principal, ownerID string, priority model.TaskPriority) ([]model.Task, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", apperr.ErrValidation, priority)
	}
	if err := s.scope(p, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindByPriority(ctx, ownerID, priority)
}

func (s *TaskService) ByCategory(ctx context.Context, p *authz.Principal, ownerID, category string) ([]model.Task, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: no category provided", apperr.ErrValidation)
	}
	if err := s.scope(p, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindByCategory(ctx, ownerID, category)
}

func (s *TaskService) ByDueDate(ctx context.Context, p *authz.Principal, ownerID string, day time.Time) ([]model.Task, error) {
	if err := s.scope(p, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindByDueDate(ctx, ownerID, day)
}

func (s *TaskService) Overdue(ctx context.Context, p *authz.Principal, ownerID string) ([]model.Task, error) {
	if err := s.scope(p, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindOverdue(ctx, ownerID)
}

func (s *TaskService) Upcoming(ctx context.Context, p *authz.Principal, ownerID string) ([]model.Task, error) {
	if err := s.scope(p, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindUpcoming(ctx, ownerID)
}
