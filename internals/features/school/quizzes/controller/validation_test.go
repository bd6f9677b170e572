package controller

import (
	"errors"
	"testing"

	validator "github.com/go-playground/validator/v10"
)

func TestValidationMessages(t *testing.T) {
	type payload struct {
		Title string  `validate:"required"`
		Score float64 `validate:"gte=0,lte=100"`
	}
	v := validator.New()

	err := v.Struct(&payload{Score: 150})
	msgs := validationMessages(err)
	if len(msgs["Title"]) == 0 {
		t.Error("missing required Title should produce a message")
	}
	if len(msgs["Score"]) == 0 {
		t.Error("out-of-range Score should produce a message")
	}

	if err := v.Struct(&payload{Title: "ok", Score: 50}); err != nil {
		t.Fatalf("valid payload failed: %v", err)
	}

	// non-validator errors flatten to an empty map, never panic
	if msgs := validationMessages(errors.New("boom")); len(msgs) != 0 {
		t.Errorf("unexpected messages for plain error: %v", msgs)
	}
}
