// file: internals/features/school/quizzes/dto/quiz_attempts_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"schoolbridge_backend/internals/features/school/quizzes/service"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

/* ==========================================================================================
   REQUEST — SUBMIT
========================================================================================== */

type SubmitAnswerPayload struct {
	QuestionID uuid.UUID       `json:"question_id" validate:"required"`
	Answer     json.RawMessage `json:"answer"`
}

type SubmitQuizRequest struct {
	SubmissionID     uuid.UUID             `json:"submission_id" validate:"required"`
	Answers          []SubmitAnswerPayload `json:"answers" validate:"required,dive"`
	TimeSpentSeconds int                   `json:"time_spent_seconds" validate:"gte=0"`
}

// AnswersMap keys the payload by question; the last entry wins on duplicates.
func (r *SubmitQuizRequest) AnswersMap() map[uuid.UUID]json.RawMessage {
	out := make(map[uuid.UUID]json.RawMessage, len(r.Answers))
	for _, a := range r.Answers {
		out[a.QuestionID] = a.Answer
	}
	return out
}

/* ==========================================================================================
   REQUEST — MANUAL GRADING (teacher)
========================================================================================== */

type ResponseGradePayload struct {
	ResponseID   uuid.UUID `json:"response_id" validate:"required"`
	PointsEarned float64   `json:"points_earned" validate:"gte=0"`
	IsCorrect    *bool     `json:"is_correct" validate:"omitempty"`
	Feedback     *string   `json:"feedback" validate:"omitempty"`
}

type GradeAttemptRequest struct {
	Grades   []ResponseGradePayload `json:"grades" validate:"required,min=1,dive"`
	Finalize bool                   `json:"finalize"`
}

func (r *GradeAttemptRequest) ToServiceGrades() []service.ResponseGrade {
	out := make([]service.ResponseGrade, 0, len(r.Grades))
	for _, g := range r.Grades {
		out = append(out, service.ResponseGrade{
			ResponseID:   g.ResponseID,
			PointsEarned: g.PointsEarned,
			IsCorrect:    g.IsCorrect,
			Feedback:     g.Feedback,
		})
	}
	return out
}

/* ==========================================================================================
   RESPONSE DTOs
========================================================================================== */

type QuizAttemptResponse struct {
	QuizAttemptID        uuid.UUID `json:"quiz_attempt_id"`
	QuizAttemptQuizID    uuid.UUID `json:"quiz_attempt_quiz_id"`
	QuizAttemptStudentID uuid.UUID `json:"quiz_attempt_student_id"`

	QuizAttemptNumber int    `json:"quiz_attempt_number"`
	QuizAttemptStatus string `json:"quiz_attempt_status"`

	QuizAttemptStartedAt    time.Time  `json:"quiz_attempt_started_at"`
	QuizAttemptSubmittedAt  *time.Time `json:"quiz_attempt_submitted_at,omitempty"`
	QuizAttemptTimeSpentSec int        `json:"quiz_attempt_time_spent_sec"`

	QuizAttemptEarnedPoints float64 `json:"quiz_attempt_earned_points"`
	QuizAttemptTotalPoints  float64 `json:"quiz_attempt_total_points"`
	QuizAttemptScorePercent float64 `json:"quiz_attempt_score_percent"`
}

func FromModelQuizAttempt(m *qmodel.QuizAttemptModel) *QuizAttemptResponse {
	return &QuizAttemptResponse{
		QuizAttemptID:           m.QuizAttemptID,
		QuizAttemptQuizID:       m.QuizAttemptQuizID,
		QuizAttemptStudentID:    m.QuizAttemptStudentID,
		QuizAttemptNumber:       m.QuizAttemptNumber,
		QuizAttemptStatus:       m.QuizAttemptStatus.String(),
		QuizAttemptStartedAt:    m.QuizAttemptStartedAt,
		QuizAttemptSubmittedAt:  m.QuizAttemptSubmittedAt,
		QuizAttemptTimeSpentSec: m.QuizAttemptTimeSpentSec,
		QuizAttemptEarnedPoints: m.QuizAttemptEarnedPoints,
		QuizAttemptTotalPoints:  m.QuizAttemptTotalPoints,
		QuizAttemptScorePercent: m.QuizAttemptScorePercent,
	}
}

func FromModelQuizAttempts(ms []qmodel.QuizAttemptModel) []QuizAttemptResponse {
	out := make([]QuizAttemptResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModelQuizAttempt(&ms[i]))
	}
	return out
}

type SubmissionResultResponse struct {
	Attempt       *QuizAttemptResponse `json:"attempt"`
	Passed        bool                 `json:"passed"`
	ScorePercent  float64              `json:"score_percent"`
	EarnedPoints  float64              `json:"earned_points"`
	TotalPoints   float64              `json:"total_points"`
	PendingReview bool                 `json:"pending_review"`
}

func FromSubmissionResult(r *service.SubmissionResult) *SubmissionResultResponse {
	return &SubmissionResultResponse{
		Attempt:       FromModelQuizAttempt(r.Attempt),
		Passed:        r.Passed,
		ScorePercent:  r.ScorePercent,
		EarnedPoints:  r.EarnedPoints,
		TotalPoints:   r.TotalPoints,
		PendingReview: r.PendingReview,
	}
}

// QuizResponseDetail is the teacher-facing review row.
type QuizResponseDetail struct {
	QuizResponseID         uuid.UUID       `json:"quiz_response_id"`
	QuizResponseQuestionID uuid.UUID       `json:"quiz_response_question_id"`
	QuizResponseAnswer     json.RawMessage `json:"quiz_response_answer,omitempty"`

	QuizResponseIsCorrect    *bool   `json:"quiz_response_is_correct"`
	QuizResponseEarnedPoints float64 `json:"quiz_response_earned_points"`
	QuizResponseFeedback     *string `json:"quiz_response_feedback,omitempty"`

	QuizResponseGradedAt *time.Time `json:"quiz_response_graded_at,omitempty"`

	Question *QuizQuestionResponse `json:"question,omitempty"`
}

func FromModelQuizResponse(m *qmodel.QuizResponseModel) *QuizResponseDetail {
	d := &QuizResponseDetail{
		QuizResponseID:           m.QuizResponseID,
		QuizResponseQuestionID:   m.QuizResponseQuestionID,
		QuizResponseAnswer:       json.RawMessage(m.QuizResponseAnswer),
		QuizResponseIsCorrect:    m.QuizResponseIsCorrect,
		QuizResponseEarnedPoints: m.QuizResponseEarnedPoints,
		QuizResponseFeedback:     m.QuizResponseFeedback,
		QuizResponseGradedAt:     m.QuizResponseGradedAt,
	}
	if m.Question != nil {
		d.Question = FromModelQuizQuestion(m.Question)
	}
	return d
}
