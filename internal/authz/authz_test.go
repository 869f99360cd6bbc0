package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskwell/task-api/internal/apperr"
	"taskwell/task-api/internal/model"
)

var (
	anon  *Principal
	user  = &Principal{ID: "u1", Role: model.RoleUser, Verified: true}
	fresh = &Principal{ID: "u2", Role: model.RoleUser, Verified: false}
	admin = &Principal{ID: "a1", Role: model.RoleAdmin, Verified: true}
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		p       *Principal
		action  Action
		res     Resource
		allowed bool
		reason  string
	}{
		{"anonymous may register", anon, ActionRegister, None, true, ""},
		{"anonymous may verify", anon, ActionVerify, None, true, ""},
		{"anonymous may read accounts", anon, ActionReadAccount, Account("u1"), true, ""},
		{"anonymous cannot create tasks", anon, ActionCreateTask, None, false, "authentication required"},
		{"anonymous cannot read tasks", anon, ActionReadTask, Task("u1"), false, "authentication required"},
		{"anonymous cannot delete accounts", anon, ActionDeleteAccount, Account("u1"), false, "authentication required"},

		{"admin changes any username", admin, ActionChangeUsername, Account("u1"), true, ""},
		{"admin changes roles", admin, ActionChangeRole, Account("u1"), true, ""},
		{"admin locks accounts", admin, ActionToggleLock, Account("u1"), true, ""},
		{"admin lists accounts", admin, ActionListAccounts, None, true, ""},
		{"admin touches any task", admin, ActionDeleteTask, Task("u1"), true, ""},
		{"admin reassigns any task", admin, ActionReassignTask, Task("u1"), true, ""},

		{"verified user creates tasks", user, ActionCreateTask, None, true, ""},
		{"unverified user cannot create tasks", fresh, ActionCreateTask, None, false, "must be verified"},

		{"user mutates own account", user, ActionChangePassword, Account("u1"), true, ""},
		{"user deletes own account", user, ActionDeleteAccount, Account("u1"), true, ""},
		{"user cannot mutate other accounts", user, ActionChangeEmail, Account("u2"), false, "not your account"},
		{"user cannot delete other accounts", user, ActionDeleteAccount, Account("u2"), false, "not your account"},

		{"owner reads own task", user, ActionReadTask, Task("u1"), true, ""},
		{"owner updates own task", user, ActionUpdateTask, Task("u1"), true, ""},
		{"owner completes own task", user, ActionCompleteTask, Task("u1"), true, ""},
		{"owner reassigns own task", user, ActionReassignTask, Task("u1"), true, ""},
		{"non-owner cannot read task", user, ActionReadTask, Task("u2"), false, "not the owner"},
		{"non-owner cannot complete task", user, ActionCompleteTask, Task("u2"), false, "not the owner"},

		{"verified user looks up by email", user, ActionLookupEmail, None, true, ""},
		{"unverified user cannot look up by email", fresh, ActionLookupEmail, None, false, "must be verified"},

		{"user cannot list accounts", user, ActionListAccounts, None, false, "not allowed"},
		{"user cannot change roles", user, ActionChangeRole, Account("u1"), false, "not allowed"},
		{"user cannot lock accounts", user, ActionToggleLock, Account("u2"), false, "not allowed"},
		{"user cannot force-verify", user, ActionForceVerify, Account("u1"), false, "not allowed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(tc.p, tc.action, tc.res)
			assert.Equal(t, tc.allowed, d.Allowed)
			assert.Equal(t, tc.reason, d.Reason)
		})
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Allow.Err())

	err := Authorize(anon, ActionCreateTask, None).Err()
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	err = Authorize(user, ActionReadTask, Task("u2")).Err()
	assert.True(t, errors.Is(err, apperr.ErrForbidden))
	assert.ErrorContains(t, err, "not the owner")
}

func TestRequiresPasswordConfirm(t *testing.T) {
	assert.True(t, RequiresPasswordConfirm(user, "u1"), "self-service change confirms")
	assert.True(t, RequiresPasswordConfirm(admin, "a1"), "admin on own account confirms")
	assert.False(t, RequiresPasswordConfirm(admin, "u1"), "admin on others skips confirmation")
}
