// internal/models/capability.go
package models

// Capability checks are pure functions of role and ownership. Both the
// HTTP layer (to gate pages and hide controls) and the repositories (to
// reject unauthorized mutations) consult the same functions, so a caller
// that bypasses the view layer hits the same rules.

// CanAdministrate reports whether the account may manage other accounts.
func CanAdministrate(role Role) bool { return role == RoleAdmin }

// CanUseCalendar is the page-level allow-list for the calendar. Lab Staff
// is denied before any query runs.
func CanUseCalendar(role Role) bool {
	switch role {
	case RoleAdmin, RoleDoctor, RoleResearcher:
		return true
	}
	return false
}

// CanCreateTask reports whether the account may create tasks. Lab Staff
// only works tasks, it does not assign them.
func CanCreateTask(role Role) bool { return role != RoleLabStaff }

// CanSeeAllTasks reports whether list() returns the full board. Lab Staff
// sees only its own assignments.
func CanSeeAllTasks(role Role) bool { return role != RoleLabStaff }

// CanManageTask gates full edit and delete: the creator or an Admin.
func CanManageTask(actor Account, t Task) bool {
	return actor.Role == RoleAdmin || actor.Email == t.CreatedBy
}

// CanSetTaskStatus additionally allows the assignee to move its own task.
func CanSetTaskStatus(actor Account, t Task) bool {
	return actor.Email == t.Assignee || CanManageTask(actor, t)
}
