package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseModel is maintained by the school CRUD service; the quiz feature
// reads it for ownership checks only.
type CourseModel struct {
	CourseID       uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseSchoolID uuid.UUID `gorm:"column:course_school_id;type:uuid;not null;index:idx_courses_school" json:"course_school_id"`

	CourseTeacherID uuid.UUID `gorm:"column:course_teacher_id;type:uuid;not null;index:idx_courses_teacher" json:"course_teacher_id"`
	CourseTitle     string    `gorm:"column:course_title;type:varchar(180);not null" json:"course_title"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }
