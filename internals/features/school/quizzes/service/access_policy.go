// file: internals/features/school/quizzes/service/access_policy.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	emodel "schoolbridge_backend/internals/features/school/enrollments/model"
	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

/* =========================================================
   AccessPolicy — one object answering "may this caller see
   this resource", instead of role string checks scattered
   through handlers. Denials never reveal whether the
   resource exists; controllers map false to a generic 403.
========================================================= */

type AccessPolicy struct {
	DB *gorm.DB
}

func NewAccessPolicy(db *gorm.DB) *AccessPolicy {
	return &AccessPolicy{DB: db}
}

// CanStudentAccessQuiz: a course assignment must link the student to the
// quiz's course, either directly or through an active class enrollment.
func (p *AccessPolicy) CanStudentAccessQuiz(ctx context.Context, studentID uuid.UUID, quiz *qmodel.QuizModel) (bool, error) {
	sections := p.DB.Model(&emodel.ClassEnrollmentModel{}).
		Select("class_enrollment_class_section_id").
		Where("class_enrollment_student_id = ? AND class_enrollment_is_active", studentID)

	var n int64
	err := p.DB.WithContext(ctx).Model(&emodel.CourseAssignmentModel{}).
		Where("course_assignment_course_id = ? AND course_assignment_school_id = ?",
			quiz.QuizCourseID, quiz.QuizSchoolID).
		Where("course_assignment_student_id = ? OR course_assignment_class_section_id IN (?)",
			studentID, sections).
		Count(&n).Error
	return n > 0, err
}

// CanTeacherOwnCourse: the teacher must own the course.
func (p *AccessPolicy) CanTeacherOwnCourse(ctx context.Context, teacherID, courseID uuid.UUID) (bool, error) {
	var n int64
	err := p.DB.WithContext(ctx).Model(&emodel.CourseModel{}).
		Where("course_id = ? AND course_teacher_id = ?", courseID, teacherID).
		Count(&n).Error
	return n > 0, err
}

// CanTeacherManageQuiz: ownership of the quiz's course.
func (p *AccessPolicy) CanTeacherManageQuiz(ctx context.Context, teacherID uuid.UUID, quiz *qmodel.QuizModel) (bool, error) {
	return p.CanTeacherOwnCourse(ctx, teacherID, quiz.QuizCourseID)
}

// CanParentViewStudent: only a verified guardian link grants visibility.
func (p *AccessPolicy) CanParentViewStudent(ctx context.Context, parentID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := p.DB.WithContext(ctx).Model(&emodel.GuardianLinkModel{}).
		Where("guardian_link_parent_id = ? AND guardian_link_student_id = ? AND guardian_link_is_verified",
			parentID, studentID).
		Count(&n).Error
	return n > 0, err
}
