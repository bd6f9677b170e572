// file: internals/features/school/quizzes/model/quiz_attempts_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: Attempt status ('in_progress','submitted','graded')
============================================================================= */

type QuizAttemptStatus string

const (
	QuizAttemptInProgress QuizAttemptStatus = "in_progress"
	QuizAttemptSubmitted  QuizAttemptStatus = "submitted"
	QuizAttemptGraded     QuizAttemptStatus = "graded"
)

func (s QuizAttemptStatus) String() string { return string(s) }
func (s QuizAttemptStatus) Valid() bool {
	switch s {
	case QuizAttemptInProgress, QuizAttemptSubmitted, QuizAttemptGraded:
		return true
	default:
		return false
	}
}

// IsFinal: attempt no longer accepts student responses.
func (s QuizAttemptStatus) IsFinal() bool {
	return s == QuizAttemptSubmitted || s == QuizAttemptGraded
}

// EffectiveReviewStatus picks the attempt status that gates review
// content (explanations): an open attempt defers to the student's most
// recent finished attempt, if any, so starting a retake does not hide
// content an earlier submission already unlocked.
func EffectiveReviewStatus(current QuizAttemptStatus, lastFinished *QuizAttemptStatus) QuizAttemptStatus {
	if current.IsFinal() || lastFinished == nil || !lastFinished.IsFinal() {
		return current
	}
	return *lastFinished
}

func (s *QuizAttemptStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = QuizAttemptStatus(v)
	case []byte:
		*s = QuizAttemptStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for QuizAttemptStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid QuizAttemptStatus: %q", *s)
	}
	return nil
}

func (s QuizAttemptStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid QuizAttemptStatus: %q", s)
	}
	return string(s), nil
}

/* =============================================================================
   MODEL: quiz_attempts

   The partial unique index on (quiz_id, student_id) WHERE status =
   'in_progress' is what makes get-or-create race-free: two concurrent
   starts collide in the DB, one wins, the loser re-reads.
============================================================================= */

type QuizAttemptModel struct {
	QuizAttemptID       uuid.UUID `json:"quiz_attempt_id" gorm:"column:quiz_attempt_id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuizAttemptSchoolID uuid.UUID `json:"quiz_attempt_school_id" gorm:"column:quiz_attempt_school_id;type:uuid;not null;index:idx_quiz_attempts_school_quiz,priority:1"`

	QuizAttemptQuizID    uuid.UUID `json:"quiz_attempt_quiz_id" gorm:"column:quiz_attempt_quiz_id;type:uuid;not null;index:idx_quiz_attempts_school_quiz,priority:2;index:idx_quiz_attempts_quiz_student,priority:1;uniqueIndex:uq_quiz_attempts_active,priority:1,where:quiz_attempt_status = 'in_progress'"`
	QuizAttemptStudentID uuid.UUID `json:"quiz_attempt_student_id" gorm:"column:quiz_attempt_student_id;type:uuid;not null;index:idx_quiz_attempts_quiz_student,priority:2;index:idx_quiz_attempts_student;uniqueIndex:uq_quiz_attempts_active,priority:2,where:quiz_attempt_status = 'in_progress'"`

	// monotonic per (student, quiz)
	QuizAttemptNumber int `json:"quiz_attempt_number" gorm:"column:quiz_attempt_number;not null;default:1"`

	QuizAttemptStatus QuizAttemptStatus `json:"quiz_attempt_status" gorm:"column:quiz_attempt_status;type:varchar(16);not null;default:'in_progress';index:idx_quiz_attempts_status"`

	QuizAttemptStartedAt    time.Time  `json:"quiz_attempt_started_at" gorm:"column:quiz_attempt_started_at;type:timestamptz;not null;default:now()"`
	QuizAttemptSubmittedAt  *time.Time `json:"quiz_attempt_submitted_at,omitempty" gorm:"column:quiz_attempt_submitted_at;type:timestamptz"`
	QuizAttemptTimeSpentSec int        `json:"quiz_attempt_time_spent_sec" gorm:"column:quiz_attempt_time_spent_sec;not null;default:0"`

	QuizAttemptEarnedPoints float64 `json:"quiz_attempt_earned_points" gorm:"column:quiz_attempt_earned_points;type:numeric(7,3);not null;default:0"`
	QuizAttemptTotalPoints  float64 `json:"quiz_attempt_total_points" gorm:"column:quiz_attempt_total_points;type:numeric(7,3);not null;default:0"`
	QuizAttemptScorePercent float64 `json:"quiz_attempt_score_percent" gorm:"column:quiz_attempt_score_percent;type:numeric(6,3);not null;default:0"`

	QuizAttemptCreatedAt time.Time `json:"quiz_attempt_created_at" gorm:"column:quiz_attempt_created_at;type:timestamptz;not null;default:now()"`
	QuizAttemptUpdatedAt time.Time `json:"quiz_attempt_updated_at" gorm:"column:quiz_attempt_updated_at;type:timestamptz;not null;default:now()"`
}

func (QuizAttemptModel) TableName() string { return "quiz_attempts" }

func (m *QuizAttemptModel) BeforeSave(_ *gorm.DB) error {
	m.QuizAttemptUpdatedAt = time.Now()
	return nil
}

/* ===================================================================
   Helper methods
=================================================================== */

func (m *QuizAttemptModel) IsInProgress() bool {
	return m.QuizAttemptStatus == QuizAttemptInProgress
}

func (m *QuizAttemptModel) MarkSubmitted(earned, total, scorePct float64, submittedAt time.Time, timeSpentSec int) {
	m.QuizAttemptStatus = QuizAttemptSubmitted
	m.QuizAttemptSubmittedAt = &submittedAt
	m.QuizAttemptTimeSpentSec = timeSpentSec
	m.QuizAttemptEarnedPoints = earned
	m.QuizAttemptTotalPoints = total
	m.QuizAttemptScorePercent = scorePct
}

func (m *QuizAttemptModel) MarkGraded(earned, scorePct float64) {
	m.QuizAttemptStatus = QuizAttemptGraded
	m.QuizAttemptEarnedPoints = earned
	m.QuizAttemptScorePercent = scorePct
}

// Passed applies the quiz threshold; exactly-at-threshold passes.
func (m *QuizAttemptModel) Passed(passingScore float64) bool {
	return m.QuizAttemptScorePercent >= passingScore
}
