// Package authz is the single place where access rules live. Every
// mutating call in the service layer asks Authorize before touching the
// store, so each resource type's rule is defined once instead of being
// scattered across call sites.
//
// The evaluator is stateless and side-effect free: everything it reads
// (id, role, verified) is a snapshot loaded for the principal at
// authentication time.
package authz

import (
	"fmt"

	"taskwell/task-api/internal/apperr"
	"taskwell/task-api/internal/model"
)

// Principal is the authenticated identity attempting an action. A nil
// *Principal means the request is unauthenticated.
type Principal struct {
	ID       string
	Role     model.Role
	Verified bool
	Locked   bool
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == model.RoleAdmin
}

type Action string

const (
	ActionRegister Action = "register"
	ActionVerify   Action = "verify"

	ActionReadAccount    Action = "account.read"
	ActionLookupEmail    Action = "account.lookup_email"
	ActionListAccounts   Action = "account.list"
	ActionChangeUsername Action = "account.change_username"
	ActionChangeEmail    Action = "account.change_email"
	ActionChangePassword Action = "account.change_password"
	ActionChangeRole     Action = "account.change_role"
	ActionToggleLock     Action = "account.toggle_lock"
	ActionForceVerify    Action = "account.force_verify"
	ActionDeleteAccount  Action = "account.delete"

	ActionCreateTask   Action = "task.create"
	ActionReadTask     Action = "task.read"
	ActionUpdateTask   Action = "task.update"
	ActionDeleteTask   Action = "task.delete"
	ActionCompleteTask Action = "task.complete"
	ActionReassignTask Action = "task.reassign"
)

// Resource identifies what an action targets: an account (by id), a task
// (by its current owner's id), or nothing.
type Resource struct {
	AccountID string
	OwnerID   string
}

var None = Resource{}

func Account(id string) Resource {
	return Resource{AccountID: id}
}

func Task(ownerID string) Resource {
	return Resource{OwnerID: ownerID}
}

type Decision struct {
	Allowed bool
	Reason  string

	kind error
}

var Allow = Decision{Allowed: true}

func deny(reason string) Decision {
	return Decision{Reason: reason, kind: apperr.ErrForbidden}
}

func denyUnauthenticated() Decision {
	return Decision{Reason: "authentication required", kind: apperr.ErrUnauthorized}
}

// Err returns nil for an allowed decision and a wrapped taxonomy error
// otherwise, so callers can bubble it straight up.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", d.kind, d.Reason)
}

func isPublic(action Action) bool {
	return action == ActionRegister || action == ActionVerify || action == ActionReadAccount
}

func isAccountMutation(action Action) bool {
	switch action {
	case ActionChangeUsername, ActionChangeEmail, ActionChangePassword, ActionDeleteAccount:
		return true
	}
	return false
}

func isTaskAction(action Action) bool {
	switch action {
	case ActionReadTask, ActionUpdateTask, ActionDeleteTask, ActionCompleteTask, ActionReassignTask:
		return true
	}
	return false
}

// Authorize decides whether the principal may perform action on res.
// Rules are checked in a fixed order and the first match wins.
func Authorize(p *Principal, action Action, res Resource) Decision {
	// 1. Unauthenticated principals may only register, redeem a
	// verification token or read public account data.
	if p == nil {
		if isPublic(action) {
			return Allow
		}
		return denyUnauthenticated()
	}

	// 2. Admins may perform every account-management and task action.
	// Current-password re-confirmation for self-service credential
	// changes is still enforced by the lifecycle manager (see
	// RequiresPasswordConfirm).
	if p.IsAdmin() {
		return Allow
	}

	// 3. Creating tasks requires a verified account.
	if action == ActionCreateTask {
		if p.Verified {
			return Allow
		}
		return deny("must be verified")
	}

	// 4. Non-admins may only mutate their own account.
	if isAccountMutation(action) {
		if res.AccountID == p.ID {
			return Allow
		}
		return deny("not your account")
	}

	// 5. Task access belongs to the task's owner.
	if isTaskAction(action) {
		if res.OwnerID == p.ID {
			return Allow
		}
		return deny("not the owner")
	}

	if isPublic(action) {
		return Allow
	}

	// Looking accounts up by email exposes more than the public reads
	// do, so it stays behind verification.
	if action == ActionLookupEmail {
		if p.Verified {
			return Allow
		}
		return deny("must be verified")
	}

	// 6. Everything else is denied.
	return deny("not allowed")
}

// RequiresPasswordConfirm reports whether a credential change on target
// must re-verify the current password first. Only an admin acting on
// somebody else's account skips the confirmation; admins changing their
// own credentials confirm like everyone else.
func RequiresPasswordConfirm(p *Principal, targetID string) bool {
	return !p.IsAdmin() || p.ID == targetID
}
