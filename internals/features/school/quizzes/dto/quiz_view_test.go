package dto

import (
	"encoding/json"
	"strings"
	"testing"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

func sampleQuiz(mode qmodel.QuizMode) *qmodel.QuizModel {
	desc := "weekly check"
	return &qmodel.QuizModel{
		QuizTitle:        "Algebra 1",
		QuizDescription:  &desc,
		QuizPassingScore: 70,
		QuizMode:         mode,
	}
}

func sampleQuestions(t *testing.T) []qmodel.QuizQuestionModel {
	t.Helper()
	expl := "b is right because of the distributive law"
	q := qmodel.QuizQuestionModel{
		QuizQuestionType:        qmodel.QuizQuestionTypeMultipleChoice,
		QuizQuestionText:        "2(x+1) = ?",
		QuizQuestionPoints:      5,
		QuizQuestionExplanation: &expl,
	}
	if err := q.SetOptions([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if err := q.SetCorrectSpec(&qmodel.AnswerSpec{Kind: qmodel.AnswerSpecSingle, Value: "b"}); err != nil {
		t.Fatal(err)
	}
	return []qmodel.QuizQuestionModel{q}
}

// The serialized student view must never contain the correct-answer spec,
// whatever the mode or attempt state.
func TestQuizViewNeverLeaksCorrectAnswer(t *testing.T) {
	questions := sampleQuestions(t)

	for _, mode := range []qmodel.QuizMode{qmodel.QuizModeExam, qmodel.QuizModePractice} {
		for _, status := range []qmodel.QuizAttemptStatus{
			qmodel.QuizAttemptInProgress, qmodel.QuizAttemptSubmitted, qmodel.QuizAttemptGraded,
		} {
			view := BuildQuizView(sampleQuiz(mode), questions, status)
			b, err := json.Marshal(view)
			if err != nil {
				t.Fatal(err)
			}
			body := string(b)
			if strings.Contains(body, "correct") {
				t.Errorf("mode=%s status=%s: view contains a correct-answer key: %s", mode, status, body)
			}
			if strings.Contains(body, `"type":"single"`) {
				t.Errorf("mode=%s status=%s: answer spec leaked into view", mode, status)
			}
		}
	}
}

func TestQuizViewExplanationGating(t *testing.T) {
	questions := sampleQuestions(t)

	tests := []struct {
		name   string
		mode   qmodel.QuizMode
		status qmodel.QuizAttemptStatus
		want   bool
	}{
		{"practice graded shows explanation", qmodel.QuizModePractice, qmodel.QuizAttemptGraded, true},
		{"practice submitted shows explanation", qmodel.QuizModePractice, qmodel.QuizAttemptSubmitted, true},
		{"practice in progress hides explanation", qmodel.QuizModePractice, qmodel.QuizAttemptInProgress, false},
		{"exam never shows explanation", qmodel.QuizModeExam, qmodel.QuizAttemptGraded, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := BuildQuizView(sampleQuiz(tc.mode), questions, tc.status)
			got := view.Questions[0].QuizQuestionExplanation != nil
			if got != tc.want {
				t.Errorf("explanation visible = %v, want %v", got, tc.want)
			}
		})
	}
}

// Resolving a practice quiz always yields an in_progress attempt, so the
// view must be gated on the latest finished attempt or explanations would
// never be reachable through the API.
func TestQuizViewExplanationAfterFinishedAttempt(t *testing.T) {
	questions := sampleQuestions(t)

	graded := qmodel.QuizAttemptGraded
	status := qmodel.EffectiveReviewStatus(qmodel.QuizAttemptInProgress, &graded)
	view := BuildQuizView(sampleQuiz(qmodel.QuizModePractice), questions, status)
	if view.Questions[0].QuizQuestionExplanation == nil {
		t.Error("practice quiz with a prior graded attempt must surface explanations")
	}

	// first ever attempt: nothing finished yet, explanations stay hidden
	status = qmodel.EffectiveReviewStatus(qmodel.QuizAttemptInProgress, nil)
	view = BuildQuizView(sampleQuiz(qmodel.QuizModePractice), questions, status)
	if view.Questions[0].QuizQuestionExplanation != nil {
		t.Error("no finished attempt yet, explanations must stay hidden")
	}

	// exam mode never shows explanations, prior attempts or not
	status = qmodel.EffectiveReviewStatus(qmodel.QuizAttemptInProgress, &graded)
	view = BuildQuizView(sampleQuiz(qmodel.QuizModeExam), questions, status)
	if view.Questions[0].QuizQuestionExplanation != nil {
		t.Error("exam mode must hide explanations regardless of history")
	}
}

func TestQuizViewCarriesOptionsAndMeta(t *testing.T) {
	view := BuildQuizView(sampleQuiz(qmodel.QuizModeExam), sampleQuestions(t), qmodel.QuizAttemptInProgress)

	if len(view.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(view.Questions))
	}
	q := view.Questions[0]
	if len(q.QuizQuestionOptions) != 3 {
		t.Errorf("options = %v, want the 3 identifiers", q.QuizQuestionOptions)
	}
	if q.QuizQuestionPoints != 5 {
		t.Errorf("points = %v, want 5", q.QuizQuestionPoints)
	}
	if view.QuizPassingScore != 70 {
		t.Errorf("passing score = %v, want 70", view.QuizPassingScore)
	}
}
