package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "admin", input: "admin", want: RoleAdmin},
		{name: "teacher", input: "teacher", want: RoleTeacher},
		{name: "student", input: "student", want: RoleStudent},
		{name: "unknown role is rejected", input: "superuser", wantErr: true},
		{name: "empty role is rejected", input: "", wantErr: true},
		{name: "case matters", input: "ADMIN", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := ParseRole(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, role)
		})
	}
}

func TestAccount_UnmarshalRejectsUnknownRole(t *testing.T) {
	blob := `{"id":"x","name":"N","username":"u","password":"p","role":"wizard","approved":true}`

	var account Account
	err := json.Unmarshal([]byte(blob), &account)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestAccount_Validate(t *testing.T) {
	account := Account{ID: "x", Name: "Ali", Handle: "ali1", Secret: "pw1", Role: RoleTeacher}
	assert.NoError(t, account.Validate())

	missing := Account{ID: "x", Name: "", Handle: "ali1", Secret: "pw1", Role: RoleTeacher}
	assert.Error(t, missing.Validate())

	badRole := Account{ID: "x", Name: "Ali", Handle: "ali1", Secret: "pw1", Role: Role("wizard")}
	assert.Error(t, badRole.Validate())
}

func TestSeedAccounts(t *testing.T) {
	seed := SeedAccounts()
	require.Len(t, seed, 2)
	for _, account := range seed {
		assert.Equal(t, RoleAdmin, account.Role)
		assert.True(t, account.Approved)
		assert.Equal(t, account.Handle, account.Secret)
	}
	assert.Equal(t, "20262025", seed[0].Handle)
	assert.Equal(t, "156996", seed[1].Handle)
}

func TestSnapshot_Clone(t *testing.T) {
	snap := SeedSnapshot()
	snap.Courses = append(snap.Courses, CoursePackage{ID: "c1", TeacherID: "t1", Title: "Algebra", Code: "1234"})

	clone := snap.Clone()
	clone.Accounts[0].Name = "changed"
	clone.Courses[0].Title = "changed"

	assert.Equal(t, "Head Administrator", snap.Accounts[0].Name)
	assert.Equal(t, "Algebra", snap.Courses[0].Title)
}
