package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: Quiz mode ('exam','practice')
============================================================================= */

type QuizMode string

const (
	QuizModeExam     QuizMode = "exam"
	QuizModePractice QuizMode = "practice"
)

func (m QuizMode) String() string { return string(m) }
func (m QuizMode) Valid() bool {
	return m == QuizModeExam || m == QuizModePractice
}

func (m *QuizMode) Scan(value any) error {
	if value == nil {
		*m = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = QuizMode(v)
	case []byte:
		*m = QuizMode(string(v))
	default:
		return fmt.Errorf("unsupported type for QuizMode: %T", value)
	}
	if !m.Valid() {
		return fmt.Errorf("invalid QuizMode: %q", *m)
	}
	return nil
}

func (m QuizMode) Value() (driver.Value, error) {
	if m == "" {
		return nil, nil
	}
	if !m.Valid() {
		return nil, fmt.Errorf("invalid QuizMode: %q", m)
	}
	return string(m), nil
}

/* =============================================================================
   MODEL: quizzes
============================================================================= */

type QuizModel struct {
	QuizID       uuid.UUID `gorm:"column:quiz_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_id"`
	QuizSchoolID uuid.UUID `gorm:"column:quiz_school_id;type:uuid;not null;index:idx_quizzes_school" json:"quiz_school_id"`
	QuizCourseID uuid.UUID `gorm:"column:quiz_course_id;type:uuid;not null;index:idx_quizzes_course" json:"quiz_course_id"`

	QuizTitle       string  `gorm:"column:quiz_title;type:varchar(180);not null" json:"quiz_title"`
	QuizDescription *string `gorm:"column:quiz_description;type:text" json:"quiz_description,omitempty"`

	// percentage threshold, 0..100
	QuizPassingScore float64  `gorm:"column:quiz_passing_score;type:numeric(5,2);not null;default:0" json:"quiz_passing_score"`
	QuizTimeLimitMin *int     `gorm:"column:quiz_time_limit_min" json:"quiz_time_limit_min,omitempty"`
	QuizMode         QuizMode `gorm:"column:quiz_mode;type:varchar(10);not null;default:'exam'" json:"quiz_mode"`

	QuizShowAnswersAfter bool `gorm:"column:quiz_show_answers_after;not null;default:false" json:"quiz_show_answers_after"`
	QuizIsPublished      bool `gorm:"column:quiz_is_published;not null;default:false" json:"quiz_is_published"`

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;not null;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;not null;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index" json:"quiz_deleted_at,omitempty"`
}

func (QuizModel) TableName() string { return "quizzes" }

func (m *QuizModel) IsPractice() bool { return m.QuizMode == QuizModePractice }

// Deadline returns the server-side submission deadline for an attempt
// started at the given time, or nil when the quiz has no time limit.
func (m *QuizModel) Deadline(startedAt time.Time, grace time.Duration) *time.Time {
	if m.QuizTimeLimitMin == nil || *m.QuizTimeLimitMin <= 0 {
		return nil
	}
	d := startedAt.Add(time.Duration(*m.QuizTimeLimitMin)*time.Minute + grace)
	return &d
}
