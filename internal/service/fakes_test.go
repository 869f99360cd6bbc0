package service

import (
	"context"
	"sync"
	"time"

	"taskwell/task-api/internal/apperr"
	"taskwell/task-api/internal/model"
)

// In-memory stores for exercising the services without a database. They
// enforce the same uniqueness rules the gorm adapters get from their
// unique indexes.

type fakeUsers struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]model.User)}
}

func cloneUser(u model.User) *model.User {
	out := u
	if u.VerificationToken != nil {
		token := *u.VerificationToken
		out.VerificationToken = &token
	}
	return &out
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	u, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, u := range f.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUsers) FindByVerificationToken(_ context.Context, token string) (*model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, u := range f.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUsers) List(context.Context) ([]model.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (f *fakeUsers) UsernameTaken(_ context.Context, username, excludeID string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, u := range f.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) checkUnique(u *model.User) error {
	for _, other := range f.users {
		if other.ID == u.ID {
			continue
		}
		if other.Username == u.Username || other.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	return nil
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[u.ID]; ok {
		return apperr.ErrConflict
	}
	if err := f.checkUnique(u); err != nil {
		return err
	}

	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *cloneUser(*u)
	return nil
}

func (f *fakeUsers) Save(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	if err := f.checkUnique(u); err != nil {
		return err
	}

	u.UpdatedAt = time.Now()
	f.users[u.ID] = *cloneUser(*u)
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.users, id)
	return nil
}

type fakeTasks struct {
	mu     sync.RWMutex
	nextID uint
	tasks  map[uint]model.Task
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{nextID: 1, tasks: make(map[uint]model.Task)}
}

func cloneTask(t model.Task) *model.Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.CompletedAt != nil {
		d := *t.CompletedAt
		out.CompletedAt = &d
	}
	return &out
}

func (f *fakeTasks) FindByID(_ context.Context, id uint) (*model.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	t, ok := f.tasks[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return cloneTask(t), nil
}

func (f *fakeTasks) filter(ownerID string, keep func(model.Task) bool) []model.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []model.Task
	for _, t := range f.tasks {
		if ownerID != "" && t.OwnerID != ownerID {
			continue
		}
		if keep(t) {
			out = append(out, *cloneTask(t))
		}
	}
	return out
}

func (f *fakeTasks) FindByOwner(_ context.Context, ownerID string) ([]model.Task, error) {
	return f.filter(ownerID, func(model.Task) bool { return true }), nil
}

func (f *fakeTasks) FindByStatus(_ context.Context, ownerID string, status model.TaskStatus) ([]model.Task, error) {
	return f.filter(ownerID, func(t model.Task) bool { return t.Status == status }), nil
}

func (f *fakeTasks) FindByPriority(_ context.Context, ownerID string, priority model.TaskPriority) ([]model.Task, error) {
	return f.filter(ownerID, func(t model.Task) bool { return t.Priority == priority }), nil
}

func (f *fakeTasks) FindByCategory(_ context.Context, ownerID, category string) ([]model.Task, error) {
	return f.filter(ownerID, func(t model.Task) bool { return t.Category == category }), nil
}

func (f *fakeTasks) FindByDueDate(_ context.Context, ownerID string, day time.Time) ([]model.Task, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	return f.filter(ownerID, func(t model.Task) bool {
		return t.DueDate != nil && !t.DueDate.Before(start) && t.DueDate.Before(end)
	}), nil
}

func settled(s model.TaskStatus) bool {
	return s == model.StatusComplete || s == model.StatusCancelled || s == model.StatusArchived
}

func (f *fakeTasks) FindOverdue(_ context.Context, ownerID string) ([]model.Task, error) {
	now := time.Now()
	return f.filter(ownerID, func(t model.Task) bool {
		return t.DueDate != nil && t.DueDate.Before(now) && !settled(t.Status)
	}), nil
}

func (f *fakeTasks) FindUpcoming(_ context.Context, ownerID string) ([]model.Task, error) {
	now := time.Now()
	return f.filter(ownerID, func(t model.Task) bool {
		return t.DueDate != nil && !t.DueDate.Before(now) && !settled(t.Status)
	}), nil
}

func (f *fakeTasks) TitleTaken(_ context.Context, ownerID, title string, excludeID uint) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, t := range f.tasks {
		if t.OwnerID == ownerID && t.Title == title && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTasks) checkUnique(t *model.Task) error {
	for _, other := range f.tasks {
		if other.ID == t.ID {
			continue
		}
		if other.OwnerID == t.OwnerID && other.Title == t.Title {
			return apperr.ErrConflict
		}
	}
	return nil
}

func (f *fakeTasks) Create(_ context.Context, t *model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkUnique(t); err != nil {
		return err
	}

	t.ID = f.nextID
	f.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = *cloneTask(*t)
	return nil
}

func (f *fakeTasks) Save(_ context.Context, t *model.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[t.ID]; !ok {
		return apperr.ErrNotFound
	}
	if err := f.checkUnique(t); err != nil {
		return err
	}

	t.UpdatedAt = time.Now()
	f.tasks[t.ID] = *cloneTask(*t)
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.tasks, id)
	return nil
}
