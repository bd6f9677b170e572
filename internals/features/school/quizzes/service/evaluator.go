// file: internals/features/school/quizzes/service/evaluator.go
package service

import (
	"encoding/json"
	"strconv"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

/* =========================================================
   Answer evaluator — pure, no I/O.

   Verdicts:
     (true/false, points) for auto-gradable questions
     (nil, 0)             for subjective questions or a spec the
                          evaluator cannot interpret (degrades to
                          the manual-review path instead of failing
                          the submission)
========================================================= */

// Evaluate compares a submitted answer against the question's stored
// correct-answer spec. raw is the student's answer as JSON (string,
// string array, or boolean); nil means unanswered.
func Evaluate(q *qmodel.QuizQuestionModel, raw json.RawMessage) (*bool, float64) {
	if q.IsSubjective() {
		return nil, 0
	}

	spec, err := q.CorrectSpec()
	if err != nil || spec == nil {
		// malformed or missing spec: leave for manual review
		return nil, 0
	}

	if len(raw) == 0 {
		return boolPtr(false), 0
	}

	var correct bool
	switch spec.Kind {
	case qmodel.AnswerSpecSingle:
		ans, ok := decodeSingleAnswer(raw)
		// exact match, case-sensitive option identifiers
		correct = ok && ans == spec.Value
	case qmodel.AnswerSpecMultiple:
		ans, ok := decodeMultiAnswer(raw)
		// set equality, order-independent, no partial credit
		correct = ok && stringSetsEqual(ans, spec.Values)
	default:
		return nil, 0
	}

	if correct {
		return boolPtr(true), q.QuizQuestionPoints
	}
	return boolPtr(false), 0
}

// ScorePercent derives the 0..100 score, guarding divide-by-zero.
func ScorePercent(earned, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * earned / total
}

func decodeSingleAnswer(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	// true/false questions may arrive as a JSON boolean
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	return "", false
}

func decodeMultiAnswer(raw json.RawMessage) ([]string, bool) {
	var vs []string
	if err := json.Unmarshal(raw, &vs); err == nil {
		return vs, true
	}
	return nil, false
}

func stringSetsEqual(a, b []string) bool {
	aset := make(map[string]struct{}, len(a))
	for _, v := range a {
		aset[v] = struct{}{}
	}
	bset := make(map[string]struct{}, len(b))
	for _, v := range b {
		bset[v] = struct{}{}
	}
	if len(aset) != len(bset) {
		return false
	}
	for v := range aset {
		if _, ok := bset[v]; !ok {
			return false
		}
	}
	return true
}

func boolPtr(v bool) *bool { return &v }
