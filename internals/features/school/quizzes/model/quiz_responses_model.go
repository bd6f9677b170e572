package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   QuizResponse (quiz_responses)

   One row per (attempt, question), created only at submission.
   is_correct is tri-state: true/false for auto-graded answers,
   NULL for subjective answers awaiting manual review.
   ========================================================= */

type QuizResponseModel struct {
	QuizResponseID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:quiz_response_id" json:"quiz_response_id"`
	QuizResponseSchoolID uuid.UUID `gorm:"type:uuid;not null;column:quiz_response_school_id" json:"quiz_response_school_id"`

	// denormalized quiz id keeps teacher-side queries cheap
	QuizResponseQuizID uuid.UUID `gorm:"type:uuid;not null;column:quiz_response_quiz_id;index:idx_quiz_responses_quiz" json:"quiz_response_quiz_id"`

	QuizResponseAttemptID  uuid.UUID `gorm:"type:uuid;not null;column:quiz_response_attempt_id;index:idx_quiz_responses_attempt;uniqueIndex:uq_quiz_responses_attempt_question,priority:1" json:"quiz_response_attempt_id"`
	QuizResponseQuestionID uuid.UUID `gorm:"type:uuid;not null;column:quiz_response_question_id;index:idx_quiz_responses_question;uniqueIndex:uq_quiz_responses_attempt_question,priority:2" json:"quiz_response_question_id"`

	// raw student answer: JSON string, string array, or boolean; NULL when
	// the question was left unanswered
	QuizResponseAnswer datatypes.JSON `gorm:"type:jsonb;column:quiz_response_answer" json:"quiz_response_answer,omitempty"`

	QuizResponseIsCorrect    *bool   `gorm:"column:quiz_response_is_correct" json:"quiz_response_is_correct,omitempty"`
	QuizResponseEarnedPoints float64 `gorm:"type:numeric(6,2);not null;default:0;column:quiz_response_earned_points" json:"quiz_response_earned_points"`

	// manual grading trail
	QuizResponseGradedByTeacherID *uuid.UUID `gorm:"type:uuid;column:quiz_response_graded_by_teacher_id" json:"quiz_response_graded_by_teacher_id,omitempty"`
	QuizResponseGradedAt          *time.Time `gorm:"type:timestamptz;column:quiz_response_graded_at" json:"quiz_response_graded_at,omitempty"`
	QuizResponseFeedback          *string    `gorm:"type:text;column:quiz_response_feedback" json:"quiz_response_feedback,omitempty"`

	QuizResponseAnsweredAt time.Time `gorm:"type:timestamptz;not null;default:now();column:quiz_response_answered_at" json:"quiz_response_answered_at"`

	Attempt  *QuizAttemptModel  `gorm:"foreignKey:QuizResponseAttemptID;references:QuizAttemptID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE" json:"attempt,omitempty"`
	Question *QuizQuestionModel `gorm:"foreignKey:QuizResponseQuestionID;references:QuizQuestionID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE" json:"question,omitempty"`
}

func (QuizResponseModel) TableName() string { return "quiz_responses" }

// IsPendingReview: subjective answer that has not been manually graded yet.
func (m *QuizResponseModel) IsPendingReview() bool {
	return m.QuizResponseIsCorrect == nil && m.QuizResponseGradedAt == nil
}
