package auth

import "github.com/shrimpsizemoose/semla/internal/models"

// View is the panel an authenticated account is routed to.
type View string

const (
	// ViewBlocked is the waiting room for teachers whose accounts an
	// administrator has not approved yet. Login itself succeeds; only
	// routing is refused. The only exits are an approval observed on a
	// later read of the account, or logout.
	ViewBlocked View = "blocked"

	ViewAdmin   View = "admin"
	ViewTeacher View = "teacher"
	ViewStudent View = "student"
)

// ResolveView decides the reachable panel from the account's current
// fields alone. It is evaluated fresh on every call and holds no state,
// so an approval granted while a teacher was logged out takes effect on
// their next login.
func ResolveView(account models.Account) View {
	switch account.Role {
	case models.RoleAdmin:
		return ViewAdmin
	case models.RoleTeacher:
		if !account.Approved {
			return ViewBlocked
		}
		return ViewTeacher
	default:
		return ViewStudent
	}
}
