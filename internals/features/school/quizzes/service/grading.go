// file: internals/features/school/quizzes/service/grading.go
package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

// GradedItem is one graded question, ready to persist as a response row.
type GradedItem struct {
	QuestionID   uuid.UUID
	Answer       datatypes.JSON // nil when unanswered
	IsCorrect    *bool          // nil = pending manual review
	EarnedPoints float64
	Subjective   bool
}

// GradeSubmission evaluates every question of the quiz against the supplied
// answers. Unanswered questions still produce an item (answer nil,
// is_correct false, 0 points) so response counts stay stable downstream.
// pendingReview is true when at least one subjective answer awaits a teacher.
func GradeSubmission(
	questions []qmodel.QuizQuestionModel,
	answers map[uuid.UUID]json.RawMessage,
) (items []GradedItem, earned, total float64, pendingReview bool) {
	items = make([]GradedItem, 0, len(questions))

	for i := range questions {
		q := &questions[i]
		total += q.QuizQuestionPoints

		raw, answered := answers[q.QuizQuestionID]
		if answered && len(raw) == 0 {
			answered = false
		}

		item := GradedItem{
			QuestionID: q.QuizQuestionID,
			Subjective: q.IsSubjective(),
		}

		if !answered {
			// unanswered: scored zero immediately, even for subjective types
			item.IsCorrect = boolPtr(false)
			items = append(items, item)
			continue
		}

		item.Answer = datatypes.JSON(raw)
		item.IsCorrect, item.EarnedPoints = Evaluate(q, raw)
		earned += item.EarnedPoints

		if item.IsCorrect == nil {
			pendingReview = true
		}
		items = append(items, item)
	}
	return items, earned, total, pendingReview
}
