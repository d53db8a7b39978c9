package models

import (
	"github.com/go-playground/validator/v10"
)

// CoursePackage is never edited in place: teachers delete and republish.
// TeacherName is a denormalized copy taken at publish time, so removing
// the teacher account later leaves the course intact and displayable.
type CoursePackage struct {
	ID          string `json:"id"`
	TeacherID   string `json:"teacherId" validate:"required"`
	TeacherName string `json:"teacherName"`
	Title       string `json:"title" validate:"required"`
	Code        string `json:"courseId" validate:"required,len=4,numeric"`
	VideoURL    string `json:"videoUrl"`
	PDFURL      string `json:"pdfUrl"`
}

func (c *CoursePackage) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
