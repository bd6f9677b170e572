// file: internals/features/school/quizzes/service/quiz_attempt_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

// late submissions get a small allowance for network/clock skew
const submitGrace = 30 * time.Second

var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrNotAttemptOwner      = errors.New("attempt does not belong to caller")
	ErrAttemptQuizMismatch  = errors.New("attempt does not belong to this quiz")
	ErrAttemptNotInProgress = errors.New("attempt has already been submitted")
	ErrAttemptStillOpen     = errors.New("attempt has not been submitted yet")
	ErrDeadlineExceeded     = errors.New("time limit exceeded")
	ErrResponseNotFound     = errors.New("response not found")
	ErrNotSubjective        = errors.New("response is not manually gradable")
)

/* =========================================================
   SERVICE
========================================================= */

type QuizAttemptService struct {
	DB *gorm.DB
}

func NewQuizAttemptService(db *gorm.DB) *QuizAttemptService {
	return &QuizAttemptService{DB: db}
}

/* =========================================================
   GET OR CREATE (idempotent resume)
========================================================= */

// GetOrCreateAttempt returns the student's in-progress attempt for the quiz,
// creating one when none exists. The partial unique index on
// (quiz_id, student_id) WHERE status='in_progress' makes the create
// conflict-safe: the losing side of a race re-reads the winner's row.
func (s *QuizAttemptService) GetOrCreateAttempt(
	ctx context.Context,
	schoolID, quizID, studentID uuid.UUID,
) (*qmodel.QuizAttemptModel, bool, error) {
	var existing qmodel.QuizAttemptModel
	err := s.DB.WithContext(ctx).
		First(&existing,
			"quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ? AND quiz_attempt_status = ?",
			quizID, studentID, qmodel.QuizAttemptInProgress).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	var prior int64
	if err := s.DB.WithContext(ctx).
		Model(&qmodel.QuizAttemptModel{}).
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ?", quizID, studentID).
		Count(&prior).Error; err != nil {
		return nil, false, err
	}

	m := &qmodel.QuizAttemptModel{
		QuizAttemptSchoolID:  schoolID,
		QuizAttemptQuizID:    quizID,
		QuizAttemptStudentID: studentID,
		QuizAttemptNumber:    int(prior) + 1,
		QuizAttemptStatus:    qmodel.QuizAttemptInProgress,
		QuizAttemptStartedAt: time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			// lost the race: the concurrent request created the attempt
			var winner qmodel.QuizAttemptModel
			if err2 := s.DB.WithContext(ctx).
				First(&winner,
					"quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ? AND quiz_attempt_status = ?",
					quizID, studentID, qmodel.QuizAttemptInProgress).Error; err2 != nil {
				return nil, false, err2
			}
			return &winner, false, nil
		}
		return nil, false, err
	}
	return m, true, nil
}

/* =========================================================
   SUBMIT
========================================================= */

type SubmitAttemptInput struct {
	AttemptID uuid.UUID
	QuizID    uuid.UUID
	StudentID uuid.UUID

	TimeSpentSec int

	// key = quiz_question_id, value = raw answer JSON
	// (string, string array, or boolean)
	Answers map[uuid.UUID]json.RawMessage
}

type SubmissionResult struct {
	Attempt       *qmodel.QuizAttemptModel
	Passed        bool
	ScorePercent  float64
	EarnedPoints  float64
	TotalPoints   float64
	PendingReview bool
}

// submitGuards validates the attempt against the caller and the clock
// before any write. Ordering matters: ownership is checked before state,
// so a non-owner learns nothing about the attempt's progress.
func submitGuards(attempt *qmodel.QuizAttemptModel, quiz *qmodel.QuizModel, studentID, quizID uuid.UUID, now time.Time) error {
	if attempt.QuizAttemptStudentID != studentID {
		return ErrNotAttemptOwner
	}
	if quizID != uuid.Nil && attempt.QuizAttemptQuizID != quizID {
		return ErrAttemptQuizMismatch
	}
	if !attempt.IsInProgress() {
		return ErrAttemptNotInProgress
	}
	if deadline := quiz.Deadline(attempt.QuizAttemptStartedAt, submitGrace); deadline != nil && now.After(*deadline) {
		return ErrDeadlineExceeded
	}
	return nil
}

// submissionStatus: an attempt with nothing left for a teacher to review
// finalizes immediately.
func submissionStatus(items []GradedItem) qmodel.QuizAttemptStatus {
	for _, it := range items {
		if it.Subjective {
			return qmodel.QuizAttemptSubmitted
		}
	}
	return qmodel.QuizAttemptGraded
}

// SubmitAttempt grades and persists the submission in one transaction.
// Resubmission is rejected: submitted/graded are terminal for the student.
func (s *QuizAttemptService) SubmitAttempt(
	ctx context.Context,
	in *SubmitAttemptInput,
) (*SubmissionResult, error) {
	if in == nil || in.AttemptID == uuid.Nil {
		return nil, ErrAttemptNotFound
	}

	var result *SubmissionResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt qmodel.QuizAttemptModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, "quiz_attempt_id = ?", in.AttemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}

		var quiz qmodel.QuizModel
		if err := tx.First(&quiz, "quiz_id = ?", attempt.QuizAttemptQuizID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuizNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if err := submitGuards(&attempt, &quiz, in.StudentID, in.QuizID, now); err != nil {
			return err
		}

		var questions []qmodel.QuizQuestionModel
		if err := tx.
			Where("quiz_question_quiz_id = ? AND quiz_question_school_id = ?",
				attempt.QuizAttemptQuizID, attempt.QuizAttemptSchoolID).
			Order("quiz_question_position ASC").
			Find(&questions).Error; err != nil {
			return err
		}

		items, earned, total, pendingReview := GradeSubmission(questions, in.Answers)

		rows := make([]qmodel.QuizResponseModel, 0, len(items))
		for _, it := range items {
			rows = append(rows, qmodel.QuizResponseModel{
				QuizResponseSchoolID:     attempt.QuizAttemptSchoolID,
				QuizResponseQuizID:       attempt.QuizAttemptQuizID,
				QuizResponseAttemptID:    attempt.QuizAttemptID,
				QuizResponseQuestionID:   it.QuestionID,
				QuizResponseAnswer:       it.Answer,
				QuizResponseIsCorrect:    it.IsCorrect,
				QuizResponseEarnedPoints: it.EarnedPoints,
				QuizResponseAnsweredAt:   now,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		score := ScorePercent(earned, total)
		attempt.MarkSubmitted(earned, total, score, now, in.TimeSpentSec)
		attempt.QuizAttemptStatus = submissionStatus(items)
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		log.Printf("[INFO] attempt submitted. attempt_id=%s quiz_id=%s score=%.3f earned=%.2f total=%.2f pending_review=%v",
			attempt.QuizAttemptID, attempt.QuizAttemptQuizID, score, earned, total, pendingReview)

		result = &SubmissionResult{
			Attempt:       &attempt,
			Passed:        attempt.Passed(quiz.QuizPassingScore),
			ScorePercent:  score,
			EarnedPoints:  earned,
			TotalPoints:   total,
			PendingReview: pendingReview,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

/* =========================================================
   MANUAL GRADING (subjective responses)
========================================================= */

type ResponseGrade struct {
	ResponseID   uuid.UUID
	PointsEarned float64
	IsCorrect    *bool
	Feedback     *string
}

type GradeSubjectiveInput struct {
	AttemptID uuid.UUID
	TeacherID uuid.UUID
	Grades    []ResponseGrade
	Finalize  bool
}

// GradeSubjective lets a teacher assign points to short-answer/essay
// responses and recomputes the attempt score. Finalize moves the attempt
// to graded.
func (s *QuizAttemptService) GradeSubjective(
	ctx context.Context,
	in *GradeSubjectiveInput,
) (*qmodel.QuizAttemptModel, error) {
	if in == nil || in.AttemptID == uuid.Nil {
		return nil, ErrAttemptNotFound
	}

	var out *qmodel.QuizAttemptModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt qmodel.QuizAttemptModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, "quiz_attempt_id = ?", in.AttemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}
		if attempt.IsInProgress() {
			return ErrAttemptStillOpen
		}

		now := time.Now().UTC()
		for _, g := range in.Grades {
			var resp qmodel.QuizResponseModel
			if err := tx.Preload("Question").
				First(&resp, "quiz_response_id = ? AND quiz_response_attempt_id = ?",
					g.ResponseID, attempt.QuizAttemptID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrResponseNotFound
				}
				return err
			}
			if resp.Question == nil || !resp.Question.IsSubjective() {
				return ErrNotSubjective
			}

			points := g.PointsEarned
			if points < 0 {
				points = 0
			}
			if max := resp.Question.QuizQuestionPoints; points > max {
				points = max
			}

			resp.QuizResponseEarnedPoints = points
			resp.QuizResponseIsCorrect = g.IsCorrect
			resp.QuizResponseFeedback = g.Feedback
			resp.QuizResponseGradedByTeacherID = &in.TeacherID
			resp.QuizResponseGradedAt = &now
			if err := tx.Save(&resp).Error; err != nil {
				return err
			}
		}

		var earned float64
		if err := tx.Model(&qmodel.QuizResponseModel{}).
			Where("quiz_response_attempt_id = ?", attempt.QuizAttemptID).
			Select("COALESCE(SUM(quiz_response_earned_points), 0)").
			Scan(&earned).Error; err != nil {
			return err
		}

		score := ScorePercent(earned, attempt.QuizAttemptTotalPoints)
		if in.Finalize {
			attempt.MarkGraded(earned, score)
		} else {
			attempt.QuizAttemptEarnedPoints = earned
			attempt.QuizAttemptScorePercent = score
		}
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		out = &attempt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =========================================================
   Postgres error detection (SQLSTATE 23505)
========================================================= */

type pgStateError interface{ SQLState() string }

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgStateError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "23505")
}
