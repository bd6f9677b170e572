package model

import (
	"encoding/json"
	"testing"
)

func TestAnswerSpecRoundTrip(t *testing.T) {
	single := AnswerSpec{Kind: AnswerSpecSingle, Value: "b"}
	b, err := json.Marshal(single)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"type":"single","value":"b"}` {
		t.Errorf("single wire shape = %s", b)
	}

	multi := AnswerSpec{Kind: AnswerSpecMultiple, Values: []string{"a", "c"}}
	b, err = json.Marshal(multi)
	if err != nil {
		t.Fatal(err)
	}
	var back AnswerSpec
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Kind != AnswerSpecMultiple || len(back.Values) != 2 {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestAnswerSpecUnmarshalRejectsUnknownType(t *testing.T) {
	var s AnswerSpec
	if err := json.Unmarshal([]byte(`{"type":"fuzzy","value":"x"}`), &s); err == nil {
		t.Error("unknown type tag must be rejected")
	}
	if err := json.Unmarshal([]byte(`{"type":"single","value":["a"]}`), &s); err == nil {
		t.Error("single spec with array value must be rejected")
	}
}

func TestAnswerSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    AnswerSpec
		wantErr bool
	}{
		{"single ok", AnswerSpec{Kind: AnswerSpecSingle, Value: "a"}, false},
		{"single empty value", AnswerSpec{Kind: AnswerSpecSingle}, true},
		{"multiple ok", AnswerSpec{Kind: AnswerSpecMultiple, Values: []string{"a", "b"}}, false},
		{"multiple empty", AnswerSpec{Kind: AnswerSpecMultiple}, true},
		{"multiple duplicate", AnswerSpec{Kind: AnswerSpecMultiple, Values: []string{"a", "a"}}, true},
		{"multiple empty member", AnswerSpec{Kind: AnswerSpecMultiple, Values: []string{"a", ""}}, true},
		{"unknown kind", AnswerSpec{Kind: "other"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.spec.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestQuestionValidateShape(t *testing.T) {
	mkMC := func(opts []string, spec *AnswerSpec) *QuizQuestionModel {
		q := &QuizQuestionModel{
			QuizQuestionType:   QuizQuestionTypeMultipleChoice,
			QuizQuestionText:   "q",
			QuizQuestionPoints: 1,
		}
		if opts != nil {
			if err := q.SetOptions(opts); err != nil {
				t.Fatal(err)
			}
		}
		if spec != nil {
			if err := q.SetCorrectSpec(spec); err != nil {
				t.Fatal(err)
			}
		}
		return q
	}

	t.Run("valid multiple_choice", func(t *testing.T) {
		q := mkMC([]string{"a", "b"}, &AnswerSpec{Kind: AnswerSpecSingle, Value: "a"})
		if err := q.ValidateShape(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing spec", func(t *testing.T) {
		q := mkMC([]string{"a", "b"}, nil)
		if err := q.ValidateShape(); err == nil {
			t.Error("auto-gradable question without a spec must fail")
		}
	})

	t.Run("correct value outside options", func(t *testing.T) {
		q := mkMC([]string{"a", "b"}, &AnswerSpec{Kind: AnswerSpecSingle, Value: "z"})
		if err := q.ValidateShape(); err == nil {
			t.Error("spec value not among options must fail")
		}
	})

	t.Run("too few options", func(t *testing.T) {
		q := mkMC([]string{"a"}, &AnswerSpec{Kind: AnswerSpecSingle, Value: "a"})
		if err := q.ValidateShape(); err == nil {
			t.Error("single-option question must fail")
		}
	})

	t.Run("zero points", func(t *testing.T) {
		q := mkMC([]string{"a", "b"}, &AnswerSpec{Kind: AnswerSpecSingle, Value: "a"})
		q.QuizQuestionPoints = 0
		if err := q.ValidateShape(); err == nil {
			t.Error("zero-point question must fail")
		}
	})

	t.Run("true_false needs true/false value", func(t *testing.T) {
		q := &QuizQuestionModel{
			QuizQuestionType:   QuizQuestionTypeTrueFalse,
			QuizQuestionPoints: 1,
		}
		if err := q.SetCorrectSpec(&AnswerSpec{Kind: AnswerSpecSingle, Value: "yes"}); err != nil {
			t.Fatal(err)
		}
		if err := q.ValidateShape(); err == nil {
			t.Error("true_false spec with value 'yes' must fail")
		}
		if err := q.SetCorrectSpec(&AnswerSpec{Kind: AnswerSpecSingle, Value: "false"}); err != nil {
			t.Fatal(err)
		}
		if err := q.ValidateShape(); err != nil {
			t.Errorf("true_false with value 'false': %v", err)
		}
	})

	t.Run("essay must not carry spec or options", func(t *testing.T) {
		q := &QuizQuestionModel{
			QuizQuestionType:   QuizQuestionTypeEssay,
			QuizQuestionPoints: 10,
		}
		if err := q.ValidateShape(); err != nil {
			t.Errorf("bare essay: %v", err)
		}
		if err := q.SetOptions([]string{"a", "b"}); err != nil {
			t.Fatal(err)
		}
		if err := q.ValidateShape(); err == nil {
			t.Error("essay with options must fail")
		}
	})
}
