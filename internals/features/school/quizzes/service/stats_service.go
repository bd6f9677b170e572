// file: internals/features/school/quizzes/service/stats_service.go
package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

/* =========================================================
   Rollups. Only submitted/graded attempts count; in-progress
   attempts never influence any aggregate.
========================================================= */

type QuizStats struct {
	TotalAttempts int     `json:"total_attempts"`
	Submitted     int     `json:"submitted"`
	Passed        int     `json:"passed"`
	AverageScore  float64 `json:"average_score"`
	PassRate      int     `json:"pass_rate"`
}

type StudentStats struct {
	TotalAttempts  int     `json:"total_attempts"`
	AverageScore   float64 `json:"average_score"`
	BestScore      float64 `json:"best_score"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
}

// ComputeQuizStats is the pure rollup over a quiz's attempts.
func ComputeQuizStats(attempts []qmodel.QuizAttemptModel, passingScore float64) QuizStats {
	stats := QuizStats{TotalAttempts: len(attempts)}

	var sum float64
	for i := range attempts {
		a := &attempts[i]
		if !a.QuizAttemptStatus.IsFinal() {
			continue
		}
		stats.Submitted++
		sum += a.QuizAttemptScorePercent
		if a.Passed(passingScore) {
			stats.Passed++
		}
	}
	if stats.Submitted > 0 {
		stats.AverageScore = sum / float64(stats.Submitted)
		stats.PassRate = int(math.Round(float64(stats.Passed) / float64(stats.Submitted) * 100))
	}
	return stats
}

// ComputeStudentStats rolls up one student's finished attempts and the
// correct/total ratio over their persisted responses.
func ComputeStudentStats(attempts []qmodel.QuizAttemptModel, responses []qmodel.QuizResponseModel) StudentStats {
	var stats StudentStats

	var sum float64
	for i := range attempts {
		a := &attempts[i]
		if !a.QuizAttemptStatus.IsFinal() {
			continue
		}
		stats.TotalAttempts++
		sum += a.QuizAttemptScorePercent
		if a.QuizAttemptScorePercent > stats.BestScore {
			stats.BestScore = a.QuizAttemptScorePercent
		}
	}
	if stats.TotalAttempts > 0 {
		stats.AverageScore = sum / float64(stats.TotalAttempts)
	}

	for i := range responses {
		stats.TotalQuestions++
		if v := responses[i].QuizResponseIsCorrect; v != nil && *v {
			stats.CorrectAnswers++
		}
	}
	return stats
}

/* =========================================================
   SERVICE (fetch + compute)
========================================================= */

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

func (s *StatsService) QuizStats(ctx context.Context, schoolID, quizID uuid.UUID) (*QuizStats, error) {
	var quiz qmodel.QuizModel
	if err := s.DB.WithContext(ctx).
		First(&quiz, "quiz_id = ? AND quiz_school_id = ?", quizID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var attempts []qmodel.QuizAttemptModel
	if err := s.DB.WithContext(ctx).
		Where("quiz_attempt_quiz_id = ?", quizID).
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	stats := ComputeQuizStats(attempts, quiz.QuizPassingScore)
	return &stats, nil
}

func (s *StatsService) StudentStats(ctx context.Context, schoolID, studentID uuid.UUID) (*StudentStats, error) {
	var attempts []qmodel.QuizAttemptModel
	if err := s.DB.WithContext(ctx).
		Where("quiz_attempt_student_id = ? AND quiz_attempt_school_id = ?", studentID, schoolID).
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	// responses exist only for finished attempts, joining keeps it that way
	var responses []qmodel.QuizResponseModel
	if err := s.DB.WithContext(ctx).
		Joins("JOIN quiz_attempts ON quiz_attempts.quiz_attempt_id = quiz_responses.quiz_response_attempt_id").
		Where("quiz_attempts.quiz_attempt_student_id = ? AND quiz_attempts.quiz_attempt_status IN ?",
			studentID, []string{string(qmodel.QuizAttemptSubmitted), string(qmodel.QuizAttemptGraded)}).
		Find(&responses).Error; err != nil {
		return nil, err
	}

	stats := ComputeStudentStats(attempts, responses)
	return &stats, nil
}
