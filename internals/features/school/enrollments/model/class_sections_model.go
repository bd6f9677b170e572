package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassSectionModel struct {
	ClassSectionID       uuid.UUID `gorm:"column:class_section_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_section_id"`
	ClassSectionSchoolID uuid.UUID `gorm:"column:class_section_school_id;type:uuid;not null;index:idx_class_sections_school" json:"class_section_school_id"`

	ClassSectionName string `gorm:"column:class_section_name;type:varchar(120);not null" json:"class_section_name"`

	ClassSectionCreatedAt time.Time      `gorm:"column:class_section_created_at;not null;autoCreateTime" json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time      `gorm:"column:class_section_updated_at;not null;autoUpdateTime" json:"class_section_updated_at"`
	ClassSectionDeletedAt gorm.DeletedAt `gorm:"column:class_section_deleted_at;index" json:"class_section_deleted_at,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }

// ClassEnrollmentModel links a student to a class section.
type ClassEnrollmentModel struct {
	ClassEnrollmentID       uuid.UUID `gorm:"column:class_enrollment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_enrollment_id"`
	ClassEnrollmentSchoolID uuid.UUID `gorm:"column:class_enrollment_school_id;type:uuid;not null" json:"class_enrollment_school_id"`

	ClassEnrollmentClassSectionID uuid.UUID `gorm:"column:class_enrollment_class_section_id;type:uuid;not null;index:idx_class_enrollments_section;uniqueIndex:uq_class_enrollments_section_student,priority:1" json:"class_enrollment_class_section_id"`
	ClassEnrollmentStudentID      uuid.UUID `gorm:"column:class_enrollment_student_id;type:uuid;not null;index:idx_class_enrollments_student;uniqueIndex:uq_class_enrollments_section_student,priority:2" json:"class_enrollment_student_id"`

	ClassEnrollmentIsActive bool `gorm:"column:class_enrollment_is_active;not null;default:true" json:"class_enrollment_is_active"`

	ClassEnrollmentCreatedAt time.Time `gorm:"column:class_enrollment_created_at;not null;autoCreateTime" json:"class_enrollment_created_at"`
	ClassEnrollmentUpdatedAt time.Time `gorm:"column:class_enrollment_updated_at;not null;autoUpdateTime" json:"class_enrollment_updated_at"`
}

func (ClassEnrollmentModel) TableName() string { return "class_enrollments" }
