package store

import (
	"context"

	"taskwell/task-api/internal/model"

	"gorm.io/gorm"
)

type GormUsers struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (s *GormUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).
		Error
	if err != nil {
		return nil, translateErr(err)
	}

	return &u, nil
}

func (s *GormUsers) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).
		Error
	if err != nil {
		return nil, translateErr(err)
	}

	return &u, nil
}

func (s *GormUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).
		Error
	if err != nil {
		return nil, translateErr(err)
	}

	return &u, nil
}

func (s *GormUsers) FindByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	var u model.User

	err := s.db.WithContext(ctx).
		Where("verification_token = ?", token).
		First(&u).
		Error
	if err != nil {
		return nil, translateErr(err)
	}

	return &u, nil
}

func (s *GormUsers) List(ctx context.Context) ([]model.User, error) {
	var users []model.User

	err := s.db.WithContext(ctx).
		Order("created_at asc").
		Find(&users).
		Error
	if err != nil {
		return nil, translateErr(err)
	}

	return users, nil
}

func (s *GormUsers) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	return s.taken(ctx, "username = ?", username, excludeID)
}

func (s *GormUsers) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	return s.taken(ctx, "email = ?", email, excludeID)
}

func (s *GormUsers) taken(ctx context.Context, cond, value, excludeID string) (bool, error) {
	var found bool

	q := s.db.WithContext(ctx).
		Model(model.User{}).
		Select("count(*) > 0").
		Where(cond, value)

	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Find(&found).Error; err != nil {
		return false, translateErr(err)
	}

	return found, nil
}

func (s *GormUsers) Create(ctx context.Context, u *model.User) error {
	return translateErr(s.db.WithContext(ctx).Create(u).Error)
}

func (s *GormUsers) Save(ctx context.Context, u *model.User) error {
	// Save with a full struct skips zero values, which would make it
	// impossible to persist verified=false -> locked toggles or a
	// cleared verification token. Select forces every mutable column.
	return translateErr(s.db.WithContext(ctx).
		Model(u).
		Select("username", "email", "password_hash", "role", "locked", "verified", "verification_token").
		Updates(u).
		Error)
}

func (s *GormUsers) Delete(ctx context.Context, id string) error {
	return translateErr(s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(model.User{}).
		Error)
}
