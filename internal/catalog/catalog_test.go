package catalog

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/semla/internal/models"
)

var codeRe = regexp.MustCompile(`^[1-9]\d{3}$`)

func approvedTeacher() models.Account {
	return models.Account{ID: "t1", Name: "Ali", Handle: "ali1", Secret: "pw1", Role: models.RoleTeacher, Approved: true}
}

func TestGenerateCode_ReRollsOnCollision(t *testing.T) {
	taken := map[string]bool{"1000": true, "1001": true}

	draws := []int{0, 1, 2} // 1000, 1001, 1002
	i := 0
	intN := func(int) int {
		n := draws[i]
		i++
		return n
	}

	code, err := GenerateCode(taken, intN)
	require.NoError(t, err)
	assert.Equal(t, "1002", code)
	assert.Equal(t, 3, i, "collisions consumed two draws first")
}

func TestGenerateCode_ExhaustedSpace(t *testing.T) {
	taken := make(map[string]bool, 9000)
	for c := 1000; c <= 9999; c++ {
		taken[fmt.Sprintf("%d", c)] = true
	}
	_, err := GenerateCode(taken, nil)
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
}

func TestPublish(t *testing.T) {
	course, courses, err := Publish(approvedTeacher(), "Algebra", "https://v", "https://p", nil)
	require.NoError(t, err)

	assert.Regexp(t, codeRe, course.Code)
	assert.Equal(t, "t1", course.TeacherID)
	assert.Equal(t, "Ali", course.TeacherName, "display name is copied at publish time")
	assert.Equal(t, "Algebra", course.Title)
	require.Len(t, courses, 1)
	assert.Equal(t, course, courses[0])
}

func TestPublish_CodesStayUnique(t *testing.T) {
	teacher := approvedTeacher()

	var courses []models.CoursePackage
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		course, next, err := Publish(teacher, fmt.Sprintf("Course %d", i), "", "", courses)
		require.NoError(t, err)
		assert.False(t, seen[course.Code], "duplicate code %s", course.Code)
		seen[course.Code] = true
		courses = next
	}
	assert.Len(t, courses, 200)
}

func TestPublish_RequiresApprovedTeacher(t *testing.T) {
	pending := approvedTeacher()
	pending.Approved = false
	_, _, err := Publish(pending, "Algebra", "", "", nil)
	assert.ErrorIs(t, err, ErrTeacherNotApproved)

	student := models.Account{ID: "s1", Name: "Sara", Role: models.RoleStudent, Approved: true}
	_, _, err = Publish(student, "Algebra", "", "", nil)
	assert.ErrorIs(t, err, ErrTeacherNotApproved)
}

func TestUnpublish(t *testing.T) {
	courses := []models.CoursePackage{
		{ID: "c1", TeacherID: "t1", Title: "Algebra", Code: "1234"},
		{ID: "c2", TeacherID: "t2", Title: "Physics", Code: "5678"},
	}

	t.Run("owner removes own course", func(t *testing.T) {
		out, err := Unpublish("c1", "t1", courses)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "c2", out[0].ID)
	})

	t.Run("other teacher is refused even with the right id", func(t *testing.T) {
		_, err := Unpublish("c2", "t1", courses)
		assert.ErrorIs(t, err, ErrNotCourseOwner)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := Unpublish("ghost", "t1", courses)
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestEnroll(t *testing.T) {
	courses := []models.CoursePackage{
		{ID: "c1", TeacherID: "t1", TeacherName: "Ali", Title: "Algebra", Code: "1234"},
		{ID: "c2", TeacherID: "t2", TeacherName: "Noor", Title: "Physics", Code: "5678"},
	}

	testCases := []struct {
		name    string
		code    string
		wantID  string
		wantErr bool
	}{
		{name: "exact code resolves to its course", code: "1234", wantID: "c1"},
		{name: "surrounding whitespace is trimmed", code: "  5678 ", wantID: "c2"},
		{name: "unknown code fails", code: "9999", wantErr: true},
		{name: "partial code fails", code: "123", wantErr: true},
		{name: "empty code fails", code: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			course, err := Enroll(tc.code, courses)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrCourseNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, course.ID)
		})
	}
}

func TestEnroll_ReadOnly(t *testing.T) {
	courses := []models.CoursePackage{
		{ID: "c1", TeacherID: "t1", Title: "Algebra", Code: "1234"},
	}
	course, err := Enroll("1234", courses)
	require.NoError(t, err)

	course.Title = "changed"
	assert.Equal(t, "Algebra", courses[0].Title)
}
