package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/shrimpsizemoose/semla/internal/models"
)

var (
	ErrCourseNotFound     = errors.New("no course with that code")
	ErrNotCourseOwner     = errors.New("course belongs to another teacher")
	ErrTeacherNotApproved = errors.New("teacher is not approved to publish")
	ErrCodeSpaceExhausted = errors.New("no free enrollment codes left")
)

const (
	codeMin  = 1000
	codeSpan = 9000
)

// GenerateCode draws a 4-digit code uniformly from 1000-9999 and
// re-rolls until it differs from every code in taken. Uniqueness of
// live codes is what makes enrollment lookup unambiguous.
func GenerateCode(taken map[string]bool, intN func(int) int) (string, error) {
	if len(taken) >= codeSpan {
		return "", ErrCodeSpaceExhausted
	}
	if intN == nil {
		intN = rand.IntN
	}
	for {
		code := fmt.Sprintf("%d", codeMin+intN(codeSpan))
		if !taken[code] {
			return code, nil
		}
	}
}

// Publish creates a course package owned by teacher, with a freshly
// generated enrollment code, and returns it along with the extended
// collection. The teacher's display name is copied into the package so
// it survives later removal of the account.
func Publish(teacher models.Account, title, videoURL, pdfURL string, courses []models.CoursePackage) (models.CoursePackage, []models.CoursePackage, error) {
	if teacher.Role != models.RoleTeacher || !teacher.Approved {
		return models.CoursePackage{}, nil, ErrTeacherNotApproved
	}

	taken := make(map[string]bool, len(courses))
	for _, c := range courses {
		taken[c.Code] = true
	}
	code, err := GenerateCode(taken, nil)
	if err != nil {
		return models.CoursePackage{}, nil, err
	}

	course := models.CoursePackage{
		ID:          uuid.NewString(),
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Title:       title,
		Code:        code,
		VideoURL:    videoURL,
		PDFURL:      pdfURL,
	}
	if err := course.Validate(); err != nil {
		return models.CoursePackage{}, nil, fmt.Errorf("invalid course: %w", err)
	}

	out := make([]models.CoursePackage, len(courses), len(courses)+1)
	copy(out, courses)
	out = append(out, course)
	return course, out, nil
}

// Unpublish removes a course, but only for the teacher that owns it.
// The ownership check holds even when the caller somehow knows another
// teacher's course id.
func Unpublish(courseID, teacherID string, courses []models.CoursePackage) ([]models.CoursePackage, error) {
	for i, c := range courses {
		if c.ID != courseID {
			continue
		}
		if c.TeacherID != teacherID {
			return nil, ErrNotCourseOwner
		}
		out := make([]models.CoursePackage, 0, len(courses)-1)
		out = append(out, courses[:i]...)
		out = append(out, courses[i+1:]...)
		return out, nil
	}
	return nil, ErrCourseNotFound
}

// Enroll resolves a submitted code to its course package. Read-only:
// joining a course never writes anything.
func Enroll(code string, courses []models.CoursePackage) (*models.CoursePackage, error) {
	code = strings.TrimSpace(code)
	for i := range courses {
		if courses[i].Code == code {
			found := courses[i]
			return &found, nil
		}
	}
	return nil, ErrCourseNotFound
}
