package roster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shrimpsizemoose/semla/internal/models"
)

// Register builds a new account. Students and administrators are
// approved immediately; teachers start unapproved and wait for an
// administrator. No duplicate-handle check is performed: the platform
// this replaces allowed duplicates, and login resolves them by
// first-match in stored order.
func Register(name, handle, secret string, role models.Role) (models.Account, error) {
	account := models.Account{
		ID:       uuid.NewString(),
		Name:     name,
		Handle:   handle,
		Secret:   secret,
		Role:     role,
		Approved: role != models.RoleTeacher,
	}

	if err := account.Validate(); err != nil {
		return models.Account{}, fmt.Errorf("invalid registration: %w", err)
	}

	return account, nil
}

// Approve flips a teacher's approval flag. Approving an account that is
// already approved, or an id that does not exist, is a no-op.
func Approve(id string, accounts []models.Account) []models.Account {
	out := make([]models.Account, len(accounts))
	copy(out, accounts)
	for i := range out {
		if out[i].ID == id {
			out[i].Approved = true
		}
	}
	return out
}

// Remove deletes the matching account. Confirmation is the caller's
// concern; the operation itself is unconditional. Courses and results
// owned by the account are kept, dangling references and all.
func Remove(id string, accounts []models.Account) []models.Account {
	out := make([]models.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.ID != id {
			out = append(out, account)
		}
	}
	return out
}
