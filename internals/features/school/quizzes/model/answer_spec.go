package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

/* =============================================================================
   AnswerSpec — tagged union for the stored correct answer.

   Wire/storage shape (jsonb):
     {"type":"single","value":"b"}
     {"type":"multiple","value":["a","c"]}

   Single covers multiple_choice with one correct option and true_false
   (value "true"/"false"). Subjective questions carry no spec at all.
============================================================================= */

type AnswerSpecKind string

const (
	AnswerSpecSingle   AnswerSpecKind = "single"
	AnswerSpecMultiple AnswerSpecKind = "multiple"
)

type AnswerSpec struct {
	Kind   AnswerSpecKind
	Value  string   // single
	Values []string // multiple
}

type answerSpecWire struct {
	Type  AnswerSpecKind  `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (s AnswerSpec) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case AnswerSpecSingle:
		v, err := json.Marshal(s.Value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(answerSpecWire{Type: s.Kind, Value: v})
	case AnswerSpecMultiple:
		v, err := json.Marshal(s.Values)
		if err != nil {
			return nil, err
		}
		return json.Marshal(answerSpecWire{Type: s.Kind, Value: v})
	default:
		return nil, fmt.Errorf("invalid answer spec kind: %q", s.Kind)
	}
}

func (s *AnswerSpec) UnmarshalJSON(b []byte) error {
	var w answerSpecWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch w.Type {
	case AnswerSpecSingle:
		var v string
		if err := json.Unmarshal(w.Value, &v); err != nil {
			return fmt.Errorf("single answer spec: %w", err)
		}
		*s = AnswerSpec{Kind: AnswerSpecSingle, Value: v}
		return nil
	case AnswerSpecMultiple:
		var vs []string
		if err := json.Unmarshal(w.Value, &vs); err != nil {
			return fmt.Errorf("multiple answer spec: %w", err)
		}
		*s = AnswerSpec{Kind: AnswerSpecMultiple, Values: vs}
		return nil
	default:
		return fmt.Errorf("unknown answer spec type: %q", w.Type)
	}
}

// Validate checks internal consistency, not question-type fit (ValidateShape
// on the question does that).
func (s *AnswerSpec) Validate() error {
	switch s.Kind {
	case AnswerSpecSingle:
		if s.Value == "" {
			return errors.New("single answer spec: value is required")
		}
		return nil
	case AnswerSpecMultiple:
		if len(s.Values) == 0 {
			return errors.New("multiple answer spec: at least one value is required")
		}
		seen := make(map[string]struct{}, len(s.Values))
		for _, v := range s.Values {
			if v == "" {
				return errors.New("multiple answer spec: empty value")
			}
			if _, dup := seen[v]; dup {
				return fmt.Errorf("multiple answer spec: duplicate value %q", v)
			}
			seen[v] = struct{}{}
		}
		return nil
	default:
		return fmt.Errorf("unknown answer spec kind: %q", s.Kind)
	}
}
