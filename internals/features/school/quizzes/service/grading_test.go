package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

func gradedQuiz(t *testing.T) []qmodel.QuizQuestionModel {
	t.Helper()

	q1 := mcQuestion(t, 5, qmodel.AnswerSpec{Kind: qmodel.AnswerSpecSingle, Value: "b"}, "a", "b", "c")
	q1.QuizQuestionID = uuid.New()

	q2 := mcQuestion(t, 3, qmodel.AnswerSpec{Kind: qmodel.AnswerSpecMultiple, Values: []string{"a", "c"}}, "a", "b", "c")
	q2.QuizQuestionID = uuid.New()

	essay := &qmodel.QuizQuestionModel{
		QuizQuestionID:     uuid.New(),
		QuizQuestionType:   qmodel.QuizQuestionTypeEssay,
		QuizQuestionPoints: 10,
	}
	return []qmodel.QuizQuestionModel{*q1, *q2, *essay}
}

func TestGradeSubmissionMixedAnswers(t *testing.T) {
	questions := gradedQuiz(t)

	answers := map[uuid.UUID]json.RawMessage{
		questions[0].QuizQuestionID: json.RawMessage(`"b"`),       // correct, 5
		questions[1].QuizQuestionID: json.RawMessage(`["a"]`),     // partial set, 0
		questions[2].QuizQuestionID: json.RawMessage(`"because"`), // essay, pending
	}

	items, earned, total, pending := GradeSubmission(questions, answers)

	if len(items) != 3 {
		t.Fatalf("items = %d, want one per question", len(items))
	}
	if earned != 5 {
		t.Errorf("earned = %v, want 5", earned)
	}
	if total != 18 {
		t.Errorf("total = %v, want 18", total)
	}
	if !pending {
		t.Error("pending = false, want true while essay awaits review")
	}

	if items[0].IsCorrect == nil || !*items[0].IsCorrect {
		t.Error("q1 should be marked correct")
	}
	if items[1].IsCorrect == nil || *items[1].IsCorrect {
		t.Error("q2 partial selection should be marked wrong")
	}
	if items[2].IsCorrect != nil {
		t.Error("essay verdict should stay nil until graded")
	}
	if !items[2].Subjective {
		t.Error("essay item should carry the subjective flag")
	}
}

func TestGradeSubmissionUnansweredQuestions(t *testing.T) {
	questions := gradedQuiz(t)

	// nothing answered at all
	items, earned, total, pending := GradeSubmission(questions, nil)

	if len(items) != 3 {
		t.Fatalf("items = %d, want a row for every question", len(items))
	}
	if earned != 0 || total != 18 {
		t.Errorf("(earned, total) = (%v, %v), want (0, 18)", earned, total)
	}
	if pending {
		t.Error("unanswered essay scores zero immediately, nothing is pending")
	}
	for i, it := range items {
		if it.Answer != nil {
			t.Errorf("item %d: answer should stay nil when unanswered", i)
		}
		if it.IsCorrect == nil || *it.IsCorrect {
			t.Errorf("item %d: unanswered must be wrong, not pending", i)
		}
		if it.EarnedPoints != 0 {
			t.Errorf("item %d: earned = %v, want 0", i, it.EarnedPoints)
		}
	}
}

func TestGradeSubmissionEmptyRawTreatedAsUnanswered(t *testing.T) {
	questions := gradedQuiz(t)
	answers := map[uuid.UUID]json.RawMessage{
		questions[2].QuizQuestionID: json.RawMessage(``),
	}
	items, _, _, pending := GradeSubmission(questions, answers)
	if pending {
		t.Error("empty payload should count as unanswered, not pending review")
	}
	if items[2].IsCorrect == nil || *items[2].IsCorrect {
		t.Error("empty essay answer should be wrong with zero points")
	}
}

func TestGradeSubmissionIgnoresUnknownQuestionIDs(t *testing.T) {
	questions := gradedQuiz(t)
	answers := map[uuid.UUID]json.RawMessage{
		questions[0].QuizQuestionID: json.RawMessage(`"b"`),
		uuid.New():                  json.RawMessage(`"injected"`),
	}
	items, earned, _, _ := GradeSubmission(questions, answers)
	if len(items) != 3 {
		t.Fatalf("items = %d, stray answers must not create rows", len(items))
	}
	if earned != 5 {
		t.Errorf("earned = %v, want 5", earned)
	}
}

func TestGradeSubmissionAllCorrectFullScore(t *testing.T) {
	questions := gradedQuiz(t)[:2] // auto-gradable only
	answers := map[uuid.UUID]json.RawMessage{
		questions[0].QuizQuestionID: json.RawMessage(`"b"`),
		questions[1].QuizQuestionID: json.RawMessage(`["c","a"]`),
	}
	_, earned, total, pending := GradeSubmission(questions, answers)
	if earned != total {
		t.Errorf("earned = %v, want total %v", earned, total)
	}
	if pending {
		t.Error("no subjective questions, nothing should be pending")
	}
	if got := ScorePercent(earned, total); got != 100 {
		t.Errorf("ScorePercent = %v, want 100", got)
	}
}
