package model

import (
	"time"

	"github.com/google/uuid"
)

// CourseAssignmentModel grants a student access to a course, either
// directly (student_id set) or through a whole class section.
type CourseAssignmentModel struct {
	CourseAssignmentID       uuid.UUID `gorm:"column:course_assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_assignment_id"`
	CourseAssignmentSchoolID uuid.UUID `gorm:"column:course_assignment_school_id;type:uuid;not null" json:"course_assignment_school_id"`

	CourseAssignmentCourseID       uuid.UUID  `gorm:"column:course_assignment_course_id;type:uuid;not null;index:idx_course_assignments_course" json:"course_assignment_course_id"`
	CourseAssignmentStudentID      *uuid.UUID `gorm:"column:course_assignment_student_id;type:uuid;index:idx_course_assignments_student" json:"course_assignment_student_id,omitempty"`
	CourseAssignmentClassSectionID *uuid.UUID `gorm:"column:course_assignment_class_section_id;type:uuid;index:idx_course_assignments_section" json:"course_assignment_class_section_id,omitempty"`

	CourseAssignmentCreatedAt time.Time `gorm:"column:course_assignment_created_at;not null;autoCreateTime" json:"course_assignment_created_at"`
}

func (CourseAssignmentModel) TableName() string { return "course_assignments" }
