package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

func intPtr(v int) *int { return &v }

func openAttempt(quizID, studentID uuid.UUID, startedAt time.Time) *qmodel.QuizAttemptModel {
	return &qmodel.QuizAttemptModel{
		QuizAttemptID:        uuid.New(),
		QuizAttemptQuizID:    quizID,
		QuizAttemptStudentID: studentID,
		QuizAttemptStatus:    qmodel.QuizAttemptInProgress,
		QuizAttemptStartedAt: startedAt,
	}
}

func TestSubmitGuards(t *testing.T) {
	quizID := uuid.New()
	studentID := uuid.New()
	started := time.Now().UTC().Add(-5 * time.Minute)
	quiz := &qmodel.QuizModel{QuizID: quizID, QuizTimeLimitMin: intPtr(10)}
	now := time.Now().UTC()

	t.Run("happy path", func(t *testing.T) {
		a := openAttempt(quizID, studentID, started)
		if err := submitGuards(a, quiz, studentID, quizID, now); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		a := openAttempt(quizID, studentID, started)
		if err := submitGuards(a, quiz, uuid.New(), quizID, now); !errors.Is(err, ErrNotAttemptOwner) {
			t.Errorf("err = %v, want ErrNotAttemptOwner", err)
		}
	})

	t.Run("ownership checked before state", func(t *testing.T) {
		// a stranger poking at an already-submitted attempt must see the
		// ownership error, not learn the attempt's progress from a 409
		a := openAttempt(quizID, studentID, started)
		a.QuizAttemptStatus = qmodel.QuizAttemptSubmitted
		if err := submitGuards(a, quiz, uuid.New(), quizID, now); !errors.Is(err, ErrNotAttemptOwner) {
			t.Errorf("err = %v, want ErrNotAttemptOwner", err)
		}
	})

	t.Run("quiz mismatch", func(t *testing.T) {
		a := openAttempt(quizID, studentID, started)
		if err := submitGuards(a, quiz, studentID, uuid.New(), now); !errors.Is(err, ErrAttemptQuizMismatch) {
			t.Errorf("err = %v, want ErrAttemptQuizMismatch", err)
		}
	})

	t.Run("resubmission rejected", func(t *testing.T) {
		for _, status := range []qmodel.QuizAttemptStatus{qmodel.QuizAttemptSubmitted, qmodel.QuizAttemptGraded} {
			a := openAttempt(quizID, studentID, started)
			a.QuizAttemptStatus = status
			if err := submitGuards(a, quiz, studentID, quizID, now); !errors.Is(err, ErrAttemptNotInProgress) {
				t.Errorf("status %s: err = %v, want ErrAttemptNotInProgress", status, err)
			}
		}
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		a := openAttempt(quizID, studentID, started)
		late := started.Add(10*time.Minute + submitGrace + time.Second)
		if err := submitGuards(a, quiz, studentID, quizID, late); !errors.Is(err, ErrDeadlineExceeded) {
			t.Errorf("err = %v, want ErrDeadlineExceeded", err)
		}
	})

	t.Run("within grace window", func(t *testing.T) {
		a := openAttempt(quizID, studentID, started)
		justInTime := started.Add(10*time.Minute + submitGrace - time.Second)
		if err := submitGuards(a, quiz, studentID, quizID, justInTime); err != nil {
			t.Errorf("unexpected error inside grace window: %v", err)
		}
	})

	t.Run("no time limit never expires", func(t *testing.T) {
		a := openAttempt(quizID, studentID, started)
		untimed := &qmodel.QuizModel{QuizID: quizID}
		wayLate := started.Add(48 * time.Hour)
		if err := submitGuards(a, untimed, studentID, quizID, wayLate); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSubmissionStatus(t *testing.T) {
	auto := GradedItem{QuestionID: uuid.New()}
	subjective := GradedItem{QuestionID: uuid.New(), Subjective: true}

	if got := submissionStatus([]GradedItem{auto, auto}); got != qmodel.QuizAttemptGraded {
		t.Errorf("all auto-gradable: status = %s, want graded", got)
	}
	if got := submissionStatus([]GradedItem{auto, subjective}); got != qmodel.QuizAttemptSubmitted {
		t.Errorf("with subjective: status = %s, want submitted", got)
	}
	if got := submissionStatus(nil); got != qmodel.QuizAttemptGraded {
		t.Errorf("empty quiz: status = %s, want graded", got)
	}
}
