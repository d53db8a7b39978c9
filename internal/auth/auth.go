package auth

import (
	"errors"

	"github.com/shrimpsizemoose/semla/internal/models"
)

// ErrAuthFailed deliberately carries no detail about which field was
// wrong, so a caller cannot enumerate handles by probing error text.
var ErrAuthFailed = errors.New("invalid username or password")

// Authenticate scans accounts in stored (insertion) order and returns
// the first one matching both handle and secret exactly. The linear
// first-match rule is the chosen tie-break: handles are not unique, and
// an account registered behind a duplicate handle is unreachable.
func Authenticate(handle, secret string, accounts []models.Account) (*models.Account, error) {
	for i := range accounts {
		if accounts[i].Handle == handle && accounts[i].Secret == secret {
			found := accounts[i]
			return &found, nil
		}
	}
	return nil, ErrAuthFailed
}

// Session is the transient record of the currently authenticated
// account. It is never persisted and at most one exists per process.
type Session struct {
	account *models.Account
}

func (s *Session) Start(account *models.Account) {
	s.account = account
}

// Logout is a pure in-memory operation with no store interaction.
func (s *Session) Logout() {
	s.account = nil
}

func (s *Session) Account() *models.Account {
	return s.account
}

func (s *Session) Active() bool {
	return s.account != nil
}
