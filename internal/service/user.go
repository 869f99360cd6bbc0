// Package service implements the business logic sitting between the HTTP
// layer and the stores: the account lifecycle and task ownership rules.
package service

import (
	"context"
	"errors"
	"fmt"

	"taskwell/task-api/internal/apperr"
	"taskwell/task-api/internal/authz"
	"taskwell/task-api/internal/model"
	"taskwell/task-api/internal/store"
	"taskwell/task-api/pkg/security"
	"taskwell/task-api/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	ErrUsernameTaken = fmt.Errorf("%w: this username is already registered", apperr.ErrConflict)
	ErrEmailTaken    = fmt.Errorf("%w: this email is already registered", apperr.ErrConflict)
	ErrBadPassword   = fmt.Errorf("%w: current password is incorrect", apperr.ErrUnauthorized)
)

// UserService owns the account lifecycle: registration, email
// verification, credential changes, role and lock management, deletion.
// All authorization goes through the authz evaluator; the acting
// principal is always passed in explicitly.
type UserService struct {
	users store.Users
	argon *security.ArgonHash
}

func NewUserService(users store.Users, argon *security.ArgonHash) *UserService {
	return &UserService{users: users, argon: argon}
}

// Register creates a new unverified USER account. The returned record
// carries the plaintext verification token; this is the only place it is
// ever exposed.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if err := validators.UsernameValidator(username); err != nil {
		return nil, err
	}
	if err := validators.EmailValidator(email); err != nil {
		return nil, err
	}
	if err := validators.PasswordValidator(password); err != nil {
		return nil, err
	}

	// Friendly pre-checks. The unique indexes remain the source of
	// truth if two registrations race past these.
	if taken, err := s.users.UsernameTaken(ctx, username, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	if taken, err := s.users.EmailTaken(ctx, email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	token := security.NewVerificationToken()

	user := &model.User{
		ID:                id,
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Role:              model.RoleUser,
		Verified:          false,
		VerificationToken: &token,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("User registered", zap.String("userID", id), zap.String("username", username))
	return user, nil
}

// Verify redeems a verification token. An unknown token is not an error,
// just a false return, so callers can show a neutral message.
func (s *UserService) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	user, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			zap.L().Warn("Verification failed, token not found")
			return false, nil
		}
		return false, err
	}

	user.Verified = true
	user.VerificationToken = nil

	if err := s.users.Save(ctx, user); err != nil {
		return false, err
	}

	zap.L().Info("User verified", zap.String("userID", user.ID))
	return true, nil
}

// ForceVerify marks an account verified without consuming a token, for
// deployments where token delivery happens out of band. Admin only.
func (s *UserService) ForceVerify(ctx context.Context, p *authz.Principal, targetID string) (*model.User, error) {
	if err := authz.Authorize(p, authz.ActionForceVerify, authz.Account(targetID)).Err(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Verified = true
	user.VerificationToken = nil

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("User force-verified", zap.String("userID", user.ID))
	return user, nil
}

// ChangeUsername updates the username after authorization, an optional
// current-password re-confirmation and a self-excluded uniqueness check.
func (s *UserService) ChangeUsername(ctx context.Context, p *authz.Principal, targetID, newUsername, currentPassword string) (*model.User, error) {
	if err := authz.Authorize(p, authz.ActionChangeUsername, authz.Account(targetID)).Err(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.confirmPassword(p, user, currentPassword); err != nil {
		return nil, err
	}

	if err := validators.UsernameValidator(newUsername); err != nil {
		return nil, err
	}

	if taken, err := s.users.UsernameTaken(ctx, newUsername, targetID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	user.Username = newUsername

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("Username changed", zap.String("userID", user.ID))
	return user, nil
}

// ChangeEmail mirrors ChangeUsername for the email field.
func (s *UserService) ChangeEmail(ctx context.Context, p *authz.Principal, targetID, newEmail, currentPassword string) (*model.User, error) {
	if err := authz.Authorize(p, authz.ActionChangeEmail, authz.Account(targetID)).Err(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.confirmPassword(p, user, currentPassword); err != nil {
		return nil, err
	}

	if err := validators.EmailValidator(newEmail); err != nil {
		return nil, err
	}

	if taken, err := s.users.EmailTaken(ctx, newEmail, targetID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	user.Email = newEmail

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("Email changed", zap.String("userID", user.ID))
	return user, nil
}

// ChangePassword re-hashes and stores a new password. The plaintext is
// never persisted or logged.
func (s *UserService) ChangePassword(ctx context.Context, p *authz.Principal, targetID, newPassword, currentPassword string) (*model.User, error) {
	if err := authz.Authorize(p, authz.ActionChangePassword, authz.Account(targetID)).Err(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.confirmPassword(p, user, currentPassword); err != nil {
		return nil, err
	}

	if err := validators.PasswordValidator(newPassword); err != nil {
		return nil, err
	}

	hash, err := s.argon.GenerateFromPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	user.PasswordHash = hash

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("Password changed", zap.String("userID", user.ID))
	return user, nil
}

// ChangeRole assigns a new role. Admin only, no password confirmation.
func (s *UserService) ChangeRole(ctx context.Context, p *authz.Principal, targetID string, newRole model.Role) (*model.User, error) {
	if err := authz.Authorize(p, authz.ActionChangeRole, authz.Account(targetID)).Err(); err != nil {
		return nil, err
	}

	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, newRole)
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = newRole

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("Role changed", zap.String("userID", user.ID), zap.String("role", string(newRole)))
	return user, nil
}

// ToggleLocked flips the account suspension flag. Admin only.
func (s *UserService) ToggleLocked(ctx context.Context, p *authz.Principal, targetID string) (*model.User, error) {
	if err := authz.Authorize(p, authz.ActionToggleLock, authz.Account(targetID)).Err(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Locked = !user.Locked

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Info("User lock toggled", zap.String("userID", user.ID), zap.Bool("locked", user.Locked))
	return user, nil
}

// Delete removes an account permanently. Self or admin only.
func (s *UserService) Delete(ctx context.Context, p *authz.Principal, targetID string) error {
	if err := authz.Authorize(p, authz.ActionDeleteAccount, authz.Account(targetID)).Err(); err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	zap.L().Info("User deleted", zap.String("userID", targetID))
	return nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// FindByEmail is gated: email lookups reveal more than the public reads,
// so the caller must be verified or an admin.
func (s *UserService) FindByEmail(ctx context.Context, p *authz.Principal, email string) (*model.User, error) {
	if err := authz.Authorize(p, authz.ActionLookupEmail, authz.None).Err(); err != nil {
		return nil, err
	}
	return s.users.FindByEmail(ctx, email)
}

// List returns every account. Admin only.
func (s *UserService) List(ctx context.Context, p *authz.Principal) ([]model.User, error) {
	if err := authz.Authorize(p, authz.ActionListAccounts, authz.None).Err(); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// CheckCredentials verifies a username/password pair for the login
// boundary. Locked accounts are refused here so a suspension takes
// effect on the next authentication.
func (s *UserService) CheckCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	ok, err := s.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	if user.Locked {
		return nil, fmt.Errorf("%w: account is locked", apperr.ErrForbidden)
	}

	return user, nil
}

// confirmPassword enforces the current-password re-confirmation rule for
// credential changes. It must run before any mutation reaches the store.
func (s *UserService) confirmPassword(p *authz.Principal, target *model.User, currentPassword string) error {
	if !authz.RequiresPasswordConfirm(p, target.ID) {
		return nil
	}

	ok, err := s.argon.VerifyPasswd(currentPassword, target.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return ErrBadPassword
	}

	return nil
}
