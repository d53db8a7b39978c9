package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole rejects anything outside the three known roles so a bad
// stored record fails loudly instead of being misrouted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Account secret is stored in clear text, matching the platform it
// replaces. This is a demo simplification, not a security mechanism.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Handle   string `json:"username" validate:"required"`
	Secret   string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=admin teacher student"`
	Approved bool   `json:"approved"`
}

func (a *Account) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// SeedAccounts are the two built-in administrators present when the
// durable store holds no prior state.
func SeedAccounts() []Account {
	return []Account{
		{ID: "1", Name: "Head Administrator", Handle: "20262025", Secret: "20262025", Role: RoleAdmin, Approved: true},
		{ID: "2", Name: "Deputy Administrator", Handle: "156996", Secret: "156996", Role: RoleAdmin, Approved: true},
	}
}
