package service

import (
	"encoding/json"
	"testing"

	"gorm.io/datatypes"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

func mcQuestion(t *testing.T, points float64, spec qmodel.AnswerSpec, options ...string) *qmodel.QuizQuestionModel {
	t.Helper()
	q := &qmodel.QuizQuestionModel{
		QuizQuestionType:   qmodel.QuizQuestionTypeMultipleChoice,
		QuizQuestionText:   "pick one",
		QuizQuestionPoints: points,
	}
	if len(options) > 0 {
		if err := q.SetOptions(options); err != nil {
			t.Fatalf("SetOptions: %v", err)
		}
	}
	if err := q.SetCorrectSpec(&spec); err != nil {
		t.Fatalf("SetCorrectSpec: %v", err)
	}
	return q
}

func TestEvaluateSingleChoice(t *testing.T) {
	q := mcQuestion(t, 5, qmodel.AnswerSpec{Kind: qmodel.AnswerSpecSingle, Value: "b"}, "a", "b", "c")

	tests := []struct {
		name       string
		answer     string
		wantOK     bool
		wantPoints float64
	}{
		{"correct option", `"b"`, true, 5},
		{"wrong option", `"a"`, false, 0},
		{"case sensitive", `"B"`, false, 0},
		{"not in options", `"z"`, false, 0},
		{"wrong json type", `["b"]`, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict, pts := Evaluate(q, json.RawMessage(tc.answer))
			if verdict == nil {
				t.Fatal("verdict = nil, want decided")
			}
			if *verdict != tc.wantOK || pts != tc.wantPoints {
				t.Errorf("Evaluate(%s) = (%v, %v), want (%v, %v)", tc.answer, *verdict, pts, tc.wantOK, tc.wantPoints)
			}
		})
	}
}

func TestEvaluateMultipleChoiceSetEquality(t *testing.T) {
	q := mcQuestion(t, 4, qmodel.AnswerSpec{Kind: qmodel.AnswerSpecMultiple, Values: []string{"a", "c"}}, "a", "b", "c", "d")

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"exact set", `["a","c"]`, true},
		{"order independent", `["c","a"]`, true},
		{"duplicates collapse", `["a","a","c"]`, true},
		{"partial gets nothing", `["a"]`, false},
		{"superset gets nothing", `["a","b","c"]`, false},
		{"empty selection", `[]`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict, pts := Evaluate(q, json.RawMessage(tc.answer))
			if verdict == nil {
				t.Fatal("verdict = nil, want decided")
			}
			if *verdict != tc.want {
				t.Errorf("Evaluate(%s) = %v, want %v", tc.answer, *verdict, tc.want)
			}
			if tc.want && pts != 4 {
				t.Errorf("points = %v, want full 4 (no partial credit)", pts)
			}
			if !tc.want && pts != 0 {
				t.Errorf("points = %v, want 0", pts)
			}
		})
	}
}

func TestEvaluateTrueFalseBooleanAnswer(t *testing.T) {
	q := &qmodel.QuizQuestionModel{
		QuizQuestionType:   qmodel.QuizQuestionTypeTrueFalse,
		QuizQuestionPoints: 2,
	}
	if err := q.SetCorrectSpec(&qmodel.AnswerSpec{Kind: qmodel.AnswerSpecSingle, Value: "true"}); err != nil {
		t.Fatal(err)
	}

	// clients may send either the JSON boolean or its string form
	for _, answer := range []string{`true`, `"true"`} {
		verdict, pts := Evaluate(q, json.RawMessage(answer))
		if verdict == nil || !*verdict || pts != 2 {
			t.Errorf("Evaluate(%s): want (true, 2)", answer)
		}
	}
	verdict, pts := Evaluate(q, json.RawMessage(`false`))
	if verdict == nil || *verdict || pts != 0 {
		t.Error("Evaluate(false): want (false, 0)")
	}
}

func TestEvaluateSubjectiveIsPending(t *testing.T) {
	for _, typ := range []qmodel.QuizQuestionType{qmodel.QuizQuestionTypeShortAnswer, qmodel.QuizQuestionTypeEssay} {
		q := &qmodel.QuizQuestionModel{QuizQuestionType: typ, QuizQuestionPoints: 10}
		verdict, pts := Evaluate(q, json.RawMessage(`"my essay text"`))
		if verdict != nil {
			t.Errorf("%s: verdict = %v, want nil (pending review)", typ, *verdict)
		}
		if pts != 0 {
			t.Errorf("%s: points = %v, want 0 before review", typ, pts)
		}
	}
}

func TestEvaluateMalformedSpecDegradesToPending(t *testing.T) {
	q := &qmodel.QuizQuestionModel{
		QuizQuestionType:    qmodel.QuizQuestionTypeMultipleChoice,
		QuizQuestionPoints:  3,
		QuizQuestionCorrect: datatypes.JSON(`{"type":"???"`), // truncated JSON
	}
	verdict, pts := Evaluate(q, json.RawMessage(`"a"`))
	if verdict != nil || pts != 0 {
		t.Error("malformed spec must yield (nil, 0), not fail or award points")
	}

	q.QuizQuestionCorrect = nil
	verdict, pts = Evaluate(q, json.RawMessage(`"a"`))
	if verdict != nil || pts != 0 {
		t.Error("missing spec on auto-gradable question must yield (nil, 0)")
	}
}

func TestEvaluateEmptyAnswerIsWrong(t *testing.T) {
	q := mcQuestion(t, 1, qmodel.AnswerSpec{Kind: qmodel.AnswerSpecSingle, Value: "a"}, "a", "b")
	verdict, pts := Evaluate(q, nil)
	if verdict == nil || *verdict || pts != 0 {
		t.Error("nil answer on auto-gradable question: want (false, 0)")
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		earned, total, want float64
	}{
		{7, 10, 70},
		{0, 10, 0},
		{10, 10, 100},
		{5, 0, 0},  // no gradable points
		{5, -1, 0}, // defensive
	}
	for _, tc := range tests {
		if got := ScorePercent(tc.earned, tc.total); got != tc.want {
			t.Errorf("ScorePercent(%v, %v) = %v, want %v", tc.earned, tc.total, got, tc.want)
		}
	}
}
