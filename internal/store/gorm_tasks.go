package store

import (
	"context"
	"time"

	"taskwell/task-api/internal/model"

	"gorm.io/gorm"
)

// Statuses that keep a past-due task out of the overdue listing.
var settledStatuses = []model.TaskStatus{
	model.StatusComplete,
	model.StatusCancelled,
	model.StatusArchived,
}

type GormTasks struct {
	db *gorm.DB
}

func NewTasks(db *gorm.DB) *GormTasks {
	return &GormTasks{db: db}
}

func (s *GormTasks) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var t model.Task

	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).
		Error
	if err != nil {
		return nil, translateErr(err)
	}

	return &t, nil
}

func (s *GormTasks) FindByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.find(ctx, ownerID, func(q *gorm.DB) *gorm.DB { return q })
}

func (s *GormTasks) FindByStatus(ctx context.Context, ownerID string, status model.TaskStatus) ([]model.Task, error) {
	return s.find(ctx, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

func (s *GormTasks) FindByPriority(ctx context.Context, ownerID string, priority model.TaskPriority) ([]model.Task, error) {
	return s.find(ctx, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("priority = ?", priority)
	})
}

func (s *GormTasks) FindByCategory(ctx context.Context, ownerID, category string) ([]model.Task, error) {
	return s.find(ctx, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("category = ?", category)
	})
}

// FindByDueDate matches tasks due anywhere within the given calendar day.
func (s *GormTasks) FindByDueDate(ctx context.Context, ownerID string, day time.Time) ([]model.Task, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	return s.find(ctx, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("due_date >= ? AND due_date < ?", start, end)
	})
}

func (s *GormTasks) FindOverdue(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.find(ctx, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("due_date < ? AND status NOT IN ?", time.Now(), settledStatuses)
	})
}

func (s *GormTasks) FindUpcoming(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.find(ctx, ownerID, func(q *gorm.DB) *gorm.DB {
		return q.Where("due_date >= ? AND status NOT IN ?", time.Now(), settledStatuses)
	})
}

func (s *GormTasks) find(ctx context.Context, ownerID string, scope func(*gorm.DB) *gorm.DB) ([]model.Task, error) {
	var tasks []model.Task

	q := s.db.WithContext(ctx).Order("created_at asc")
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}

	if err := scope(q).Find(&tasks).Error; err != nil {
		return nil, translateErr(err)
	}

	return tasks, nil
}

func (s *GormTasks) TitleTaken(ctx context.Context, ownerID, title string, excludeID uint) (bool, error) {
	var found bool

	q := s.db.WithContext(ctx).
		Model(model.Task{}).
		Select("count(*) > 0").
		Where("owner_id = ? AND title = ?", ownerID, title)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Find(&found).Error; err != nil {
		return false, translateErr(err)
	}

	return found, nil
}

func (s *GormTasks) Create(ctx context.Context, t *model.Task) error {
	return translateErr(s.db.WithContext(ctx).Create(t).Error)
}

func (s *GormTasks) Save(ctx context.Context, t *model.Task) error {
	return translateErr(s.db.WithContext(ctx).
		Model(t).
		Select("title", "description", "owner_id", "status", "priority", "category", "due_date", "completed_at").
		Updates(t).
		Error)
}

func (s *GormTasks) Delete(ctx context.Context, id uint) error {
	return translateErr(s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(model.Task{}).
		Error)
}
