// file: internals/features/school/quizzes/dto/quizzes_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

/* ==========================================================================================
   REQUEST — CREATE / UPDATE (teacher authoring)
========================================================================================== */

type CreateQuizRequest struct {
	QuizCourseID uuid.UUID `json:"quiz_course_id" validate:"required"`

	QuizTitle       string  `json:"quiz_title" validate:"required,max=180"`
	QuizDescription *string `json:"quiz_description" validate:"omitempty"`

	QuizPassingScore float64 `json:"quiz_passing_score" validate:"gte=0,lte=100"`
	QuizTimeLimitMin *int    `json:"quiz_time_limit_min" validate:"omitempty,gt=0"`
	QuizMode         string  `json:"quiz_mode" validate:"omitempty,oneof=exam practice"`

	QuizShowAnswersAfter bool `json:"quiz_show_answers_after"`
}

func (r *CreateQuizRequest) ToModel(schoolID uuid.UUID) *qmodel.QuizModel {
	mode := qmodel.QuizMode(r.QuizMode)
	if !mode.Valid() {
		mode = qmodel.QuizModeExam
	}
	return &qmodel.QuizModel{
		QuizSchoolID:         schoolID,
		QuizCourseID:         r.QuizCourseID,
		QuizTitle:            r.QuizTitle,
		QuizDescription:      r.QuizDescription,
		QuizPassingScore:     r.QuizPassingScore,
		QuizTimeLimitMin:     r.QuizTimeLimitMin,
		QuizMode:             mode,
		QuizShowAnswersAfter: r.QuizShowAnswersAfter,
	}
}

// UpdateQuizRequest patches only the fields that were sent.
type UpdateQuizRequest struct {
	QuizTitle       *string `json:"quiz_title" validate:"omitempty,max=180"`
	QuizDescription *string `json:"quiz_description" validate:"omitempty"`

	QuizPassingScore *float64 `json:"quiz_passing_score" validate:"omitempty,gte=0,lte=100"`
	QuizTimeLimitMin *int     `json:"quiz_time_limit_min" validate:"omitempty,gt=0"`
	QuizMode         *string  `json:"quiz_mode" validate:"omitempty,oneof=exam practice"`

	QuizShowAnswersAfter *bool `json:"quiz_show_answers_after" validate:"omitempty"`
	QuizIsPublished      *bool `json:"quiz_is_published" validate:"omitempty"`
}

func (r *UpdateQuizRequest) ApplyToModel(m *qmodel.QuizModel) {
	if r.QuizTitle != nil {
		m.QuizTitle = *r.QuizTitle
	}
	if r.QuizDescription != nil {
		m.QuizDescription = r.QuizDescription
	}
	if r.QuizPassingScore != nil {
		m.QuizPassingScore = *r.QuizPassingScore
	}
	if r.QuizTimeLimitMin != nil {
		m.QuizTimeLimitMin = r.QuizTimeLimitMin
	}
	if r.QuizMode != nil {
		if mode := qmodel.QuizMode(*r.QuizMode); mode.Valid() {
			m.QuizMode = mode
		}
	}
	if r.QuizShowAnswersAfter != nil {
		m.QuizShowAnswersAfter = *r.QuizShowAnswersAfter
	}
	if r.QuizIsPublished != nil {
		// publishing is one-way, unpublish is ignored once set
		if *r.QuizIsPublished {
			m.QuizIsPublished = true
		}
	}
}

/* ==========================================================================================
   RESPONSE — teacher-facing quiz resource
========================================================================================== */

type QuizResponse struct {
	QuizID       uuid.UUID `json:"quiz_id"`
	QuizSchoolID uuid.UUID `json:"quiz_school_id"`
	QuizCourseID uuid.UUID `json:"quiz_course_id"`

	QuizTitle       string  `json:"quiz_title"`
	QuizDescription *string `json:"quiz_description,omitempty"`

	QuizPassingScore float64 `json:"quiz_passing_score"`
	QuizTimeLimitMin *int    `json:"quiz_time_limit_min,omitempty"`
	QuizMode         string  `json:"quiz_mode"`

	QuizShowAnswersAfter bool `json:"quiz_show_answers_after"`
	QuizIsPublished      bool `json:"quiz_is_published"`

	QuizCreatedAt time.Time `json:"quiz_created_at"`
	QuizUpdatedAt time.Time `json:"quiz_updated_at"`
}

func FromModelQuiz(m *qmodel.QuizModel) *QuizResponse {
	return &QuizResponse{
		QuizID:               m.QuizID,
		QuizSchoolID:         m.QuizSchoolID,
		QuizCourseID:         m.QuizCourseID,
		QuizTitle:            m.QuizTitle,
		QuizDescription:      m.QuizDescription,
		QuizPassingScore:     m.QuizPassingScore,
		QuizTimeLimitMin:     m.QuizTimeLimitMin,
		QuizMode:             m.QuizMode.String(),
		QuizShowAnswersAfter: m.QuizShowAnswersAfter,
		QuizIsPublished:      m.QuizIsPublished,
		QuizCreatedAt:        m.QuizCreatedAt,
		QuizUpdatedAt:        m.QuizUpdatedAt,
	}
}

/* ==========================================================================================
   QuizView — the access-filtered shape students receive.

   The view type has no field for the correct-answer spec, so it cannot
   leak regardless of role or quiz mode. Explanations appear only in
   practice mode once the caller's attempt has left in_progress.
========================================================================================== */

type QuizView struct {
	QuizID    uuid.UUID `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`

	QuizDescription  *string `json:"quiz_description,omitempty"`
	QuizPassingScore float64 `json:"quiz_passing_score"`
	QuizTimeLimitMin *int    `json:"quiz_time_limit_min,omitempty"`
	QuizMode         string  `json:"quiz_mode"`

	Questions []QuizQuestionView `json:"questions"`
}

func BuildQuizView(quiz *qmodel.QuizModel, questions []qmodel.QuizQuestionModel, attemptStatus qmodel.QuizAttemptStatus) *QuizView {
	showExplanations := quiz.IsPractice() && attemptStatus.IsFinal()

	views := make([]QuizQuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, BuildQuestionView(&questions[i], showExplanations))
	}
	return &QuizView{
		QuizID:           quiz.QuizID,
		QuizTitle:        quiz.QuizTitle,
		QuizDescription:  quiz.QuizDescription,
		QuizPassingScore: quiz.QuizPassingScore,
		QuizTimeLimitMin: quiz.QuizTimeLimitMin,
		QuizMode:         quiz.QuizMode.String(),
		Questions:        views,
	}
}
