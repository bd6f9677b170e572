// file: internals/features/school/quizzes/dto/quiz_questions_dto.go
package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

/* ==========================================================================================
   REQUEST — CREATE / UPDATE (teacher authoring)
========================================================================================== */

type CreateQuizQuestionRequest struct {
	QuizQuestionType     string  `json:"quiz_question_type" validate:"required,oneof=multiple_choice true_false short_answer essay"`
	QuizQuestionText     string  `json:"quiz_question_text" validate:"required"`
	QuizQuestionPosition int     `json:"quiz_question_position" validate:"gte=0"`
	QuizQuestionPoints   float64 `json:"quiz_question_points" validate:"required,gt=0"`

	QuizQuestionOptions     []string           `json:"quiz_question_options" validate:"omitempty,dive,required"`
	QuizQuestionCorrect     *qmodel.AnswerSpec `json:"quiz_question_correct" validate:"omitempty"`
	QuizQuestionExplanation *string            `json:"quiz_question_explanation" validate:"omitempty"`
}

// ToModel builds the question; caller runs ValidateShape before persisting.
func (r *CreateQuizQuestionRequest) ToModel(schoolID, quizID uuid.UUID) (*qmodel.QuizQuestionModel, error) {
	m := &qmodel.QuizQuestionModel{
		QuizQuestionQuizID:      quizID,
		QuizQuestionSchoolID:    schoolID,
		QuizQuestionType:        qmodel.QuizQuestionType(r.QuizQuestionType),
		QuizQuestionText:        r.QuizQuestionText,
		QuizQuestionPosition:    r.QuizQuestionPosition,
		QuizQuestionPoints:      r.QuizQuestionPoints,
		QuizQuestionExplanation: r.QuizQuestionExplanation,
	}
	if len(r.QuizQuestionOptions) > 0 {
		if err := m.SetOptions(r.QuizQuestionOptions); err != nil {
			return nil, err
		}
	}
	if r.QuizQuestionCorrect != nil {
		if err := m.SetCorrectSpec(r.QuizQuestionCorrect); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type UpdateQuizQuestionRequest struct {
	QuizQuestionText     *string  `json:"quiz_question_text" validate:"omitempty"`
	QuizQuestionPosition *int     `json:"quiz_question_position" validate:"omitempty,gte=0"`
	QuizQuestionPoints   *float64 `json:"quiz_question_points" validate:"omitempty,gt=0"`

	QuizQuestionOptions     []string           `json:"quiz_question_options" validate:"omitempty,dive,required"`
	QuizQuestionCorrect     *qmodel.AnswerSpec `json:"quiz_question_correct" validate:"omitempty"`
	QuizQuestionExplanation *string            `json:"quiz_question_explanation" validate:"omitempty"`
}

func (r *UpdateQuizQuestionRequest) ApplyToModel(m *qmodel.QuizQuestionModel) error {
	if r.QuizQuestionText != nil {
		m.QuizQuestionText = *r.QuizQuestionText
	}
	if r.QuizQuestionPosition != nil {
		m.QuizQuestionPosition = *r.QuizQuestionPosition
	}
	if r.QuizQuestionPoints != nil {
		m.QuizQuestionPoints = *r.QuizQuestionPoints
	}
	if r.QuizQuestionOptions != nil {
		if err := m.SetOptions(r.QuizQuestionOptions); err != nil {
			return err
		}
	}
	if r.QuizQuestionCorrect != nil {
		if err := m.SetCorrectSpec(r.QuizQuestionCorrect); err != nil {
			return err
		}
	}
	if r.QuizQuestionExplanation != nil {
		m.QuizQuestionExplanation = r.QuizQuestionExplanation
	}
	return nil
}

/* ==========================================================================================
   VIEW — student/parent-facing question shape. No correct-answer field
   exists on this type; explanation is copied in only when the caller is
   allowed to see it.
========================================================================================== */

type QuizQuestionView struct {
	QuizQuestionID       uuid.UUID `json:"quiz_question_id"`
	QuizQuestionType     string    `json:"quiz_question_type"`
	QuizQuestionText     string    `json:"quiz_question_text"`
	QuizQuestionPosition int       `json:"quiz_question_position"`
	QuizQuestionPoints   float64   `json:"quiz_question_points"`

	QuizQuestionOptions     []string `json:"quiz_question_options,omitempty"`
	QuizQuestionExplanation *string  `json:"quiz_question_explanation,omitempty"`
}

func BuildQuestionView(m *qmodel.QuizQuestionModel, includeExplanation bool) QuizQuestionView {
	v := QuizQuestionView{
		QuizQuestionID:       m.QuizQuestionID,
		QuizQuestionType:     string(m.QuizQuestionType),
		QuizQuestionText:     m.QuizQuestionText,
		QuizQuestionPosition: m.QuizQuestionPosition,
		QuizQuestionPoints:   m.QuizQuestionPoints,
	}
	if len(m.QuizQuestionOptions) > 0 {
		// tolerate a bad options blob rather than failing the whole view
		var opts []string
		if err := json.Unmarshal(m.QuizQuestionOptions, &opts); err == nil {
			v.QuizQuestionOptions = opts
		}
	}
	if includeExplanation {
		v.QuizQuestionExplanation = m.QuizQuestionExplanation
	}
	return v
}

/* ==========================================================================================
   RESPONSE — teacher-facing full question (includes the answer spec)
========================================================================================== */

type QuizQuestionResponse struct {
	QuizQuestionID       uuid.UUID `json:"quiz_question_id"`
	QuizQuestionQuizID   uuid.UUID `json:"quiz_question_quiz_id"`
	QuizQuestionType     string    `json:"quiz_question_type"`
	QuizQuestionText     string    `json:"quiz_question_text"`
	QuizQuestionPosition int       `json:"quiz_question_position"`
	QuizQuestionPoints   float64   `json:"quiz_question_points"`

	QuizQuestionOptions     []string           `json:"quiz_question_options,omitempty"`
	QuizQuestionCorrect     *qmodel.AnswerSpec `json:"quiz_question_correct,omitempty"`
	QuizQuestionExplanation *string            `json:"quiz_question_explanation,omitempty"`
}

func FromModelQuizQuestion(m *qmodel.QuizQuestionModel) *QuizQuestionResponse {
	resp := &QuizQuestionResponse{
		QuizQuestionID:          m.QuizQuestionID,
		QuizQuestionQuizID:      m.QuizQuestionQuizID,
		QuizQuestionType:        string(m.QuizQuestionType),
		QuizQuestionText:        m.QuizQuestionText,
		QuizQuestionPosition:    m.QuizQuestionPosition,
		QuizQuestionPoints:      m.QuizQuestionPoints,
		QuizQuestionExplanation: m.QuizQuestionExplanation,
	}
	if opts, err := m.Options(); err == nil {
		resp.QuizQuestionOptions = opts
	}
	if spec, err := m.CorrectSpec(); err == nil {
		resp.QuizQuestionCorrect = spec
	}
	return resp
}
