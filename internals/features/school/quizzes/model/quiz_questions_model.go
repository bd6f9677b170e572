// file: internals/features/school/quizzes/model/quiz_questions_model.go
package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizQuestionType string

const (
	QuizQuestionTypeMultipleChoice QuizQuestionType = "multiple_choice"
	QuizQuestionTypeTrueFalse      QuizQuestionType = "true_false"
	QuizQuestionTypeShortAnswer    QuizQuestionType = "short_answer"
	QuizQuestionTypeEssay          QuizQuestionType = "essay"
)

func (t QuizQuestionType) Valid() bool {
	switch t {
	case QuizQuestionTypeMultipleChoice, QuizQuestionTypeTrueFalse,
		QuizQuestionTypeShortAnswer, QuizQuestionTypeEssay:
		return true
	default:
		return false
	}
}

// IsAutoGradable: correctness derivable from the stored answer spec.
func (t QuizQuestionType) IsAutoGradable() bool {
	return t == QuizQuestionTypeMultipleChoice || t == QuizQuestionTypeTrueFalse
}

type QuizQuestionModel struct {
	QuizQuestionID       uuid.UUID        `gorm:"column:quiz_question_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"quiz_question_id"`
	QuizQuestionQuizID   uuid.UUID        `gorm:"column:quiz_question_quiz_id;type:uuid;not null;index:idx_quiz_questions_quiz" json:"quiz_question_quiz_id"`
	QuizQuestionSchoolID uuid.UUID        `gorm:"column:quiz_question_school_id;type:uuid;not null" json:"quiz_question_school_id"`
	QuizQuestionType     QuizQuestionType `gorm:"column:quiz_question_type;type:varchar(16);not null" json:"quiz_question_type"`
	QuizQuestionText     string           `gorm:"column:quiz_question_text;type:text;not null" json:"quiz_question_text"`
	QuizQuestionPosition int              `gorm:"column:quiz_question_position;not null;default:0" json:"quiz_question_position"`
	QuizQuestionPoints   float64          `gorm:"column:quiz_question_points;type:numeric(6,2);not null;default:1" json:"quiz_question_points"`

	// Option identifiers for choice types, e.g. ["a","b","c","d"].
	QuizQuestionOptions datatypes.JSON `gorm:"column:quiz_question_options;type:jsonb" json:"quiz_question_options,omitempty"`

	// AnswerSpec tagged union; NULL for subjective types. Never sent to
	// students — the DTO layer owns that guarantee.
	QuizQuestionCorrect datatypes.JSON `gorm:"column:quiz_question_correct;type:jsonb" json:"-"`

	QuizQuestionExplanation *string `gorm:"column:quiz_question_explanation;type:text" json:"quiz_question_explanation,omitempty"`

	QuizQuestionCreatedAt time.Time      `gorm:"column:quiz_question_created_at;autoCreateTime" json:"quiz_question_created_at"`
	QuizQuestionUpdatedAt time.Time      `gorm:"column:quiz_question_updated_at;autoUpdateTime" json:"quiz_question_updated_at"`
	QuizQuestionDeletedAt gorm.DeletedAt `gorm:"column:quiz_question_deleted_at" json:"quiz_question_deleted_at,omitempty"`
}

func (QuizQuestionModel) TableName() string { return "quiz_questions" }

// ------------------------
// Helpers
// ------------------------

func (m *QuizQuestionModel) IsSubjective() bool {
	return !m.QuizQuestionType.IsAutoGradable()
}

// Options decodes the stored option identifiers; nil when unset.
func (m *QuizQuestionModel) Options() ([]string, error) {
	if len(m.QuizQuestionOptions) == 0 {
		return nil, nil
	}
	var opts []string
	if err := json.Unmarshal(m.QuizQuestionOptions, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (m *QuizQuestionModel) SetOptions(opts []string) error {
	b, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	m.QuizQuestionOptions = datatypes.JSON(b)
	return nil
}

// CorrectSpec decodes the answer spec; (nil, nil) when the column is NULL.
func (m *QuizQuestionModel) CorrectSpec() (*AnswerSpec, error) {
	if len(m.QuizQuestionCorrect) == 0 {
		return nil, nil
	}
	var spec AnswerSpec
	if err := json.Unmarshal(m.QuizQuestionCorrect, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (m *QuizQuestionModel) SetCorrectSpec(spec *AnswerSpec) error {
	if spec == nil {
		m.QuizQuestionCorrect = nil
		return nil
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	m.QuizQuestionCorrect = datatypes.JSON(b)
	return nil
}

// ValidateShape mirrors the DB CHECK constraints so bad questions fail at
// authoring time instead of at grading time.
func (m *QuizQuestionModel) ValidateShape() error {
	if !m.QuizQuestionType.Valid() {
		return errors.New("unknown question type")
	}
	if m.QuizQuestionPoints <= 0 {
		return errors.New("point value must be > 0")
	}

	if m.IsSubjective() {
		if len(m.QuizQuestionCorrect) != 0 {
			return errors.New("subjective questions must not carry an answer spec")
		}
		if len(m.QuizQuestionOptions) != 0 {
			return errors.New("subjective questions must not carry options")
		}
		return nil
	}

	spec, err := m.CorrectSpec()
	if err != nil {
		return errors.New("answer spec is not valid JSON")
	}
	if spec == nil {
		return errors.New("auto-gradable questions require an answer spec")
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	switch m.QuizQuestionType {
	case QuizQuestionTypeTrueFalse:
		if spec.Kind != AnswerSpecSingle || (spec.Value != "true" && spec.Value != "false") {
			return errors.New("true_false requires a single spec with value 'true' or 'false'")
		}
		return nil
	case QuizQuestionTypeMultipleChoice:
		opts, err := m.Options()
		if err != nil {
			return errors.New("options is not a valid JSON string array")
		}
		if len(opts) < 2 {
			return errors.New("multiple_choice requires at least 2 options")
		}
		optSet := make(map[string]struct{}, len(opts))
		for _, o := range opts {
			if o == "" {
				return errors.New("option identifier must not be empty")
			}
			if _, dup := optSet[o]; dup {
				return errors.New("duplicate option identifier")
			}
			optSet[o] = struct{}{}
		}
		switch spec.Kind {
		case AnswerSpecSingle:
			if _, ok := optSet[spec.Value]; !ok {
				return errors.New("correct value is not among the options")
			}
		case AnswerSpecMultiple:
			for _, v := range spec.Values {
				if _, ok := optSet[v]; !ok {
					return errors.New("correct value is not among the options")
				}
			}
		}
		return nil
	}
	return nil
}
