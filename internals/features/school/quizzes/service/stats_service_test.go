package service

import (
	"testing"

	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
)

func attemptWithScore(status qmodel.QuizAttemptStatus, score float64) qmodel.QuizAttemptModel {
	return qmodel.QuizAttemptModel{
		QuizAttemptStatus:       status,
		QuizAttemptScorePercent: score,
	}
}

func TestComputeQuizStats(t *testing.T) {
	attempts := []qmodel.QuizAttemptModel{
		attemptWithScore(qmodel.QuizAttemptGraded, 60),
		attemptWithScore(qmodel.QuizAttemptGraded, 80),
		attemptWithScore(qmodel.QuizAttemptSubmitted, 100),
		attemptWithScore(qmodel.QuizAttemptInProgress, 0), // never counted
	}

	stats := ComputeQuizStats(attempts, 70)

	if stats.TotalAttempts != 4 {
		t.Errorf("TotalAttempts = %d, want 4", stats.TotalAttempts)
	}
	if stats.Submitted != 3 {
		t.Errorf("Submitted = %d, want 3 (in-progress excluded)", stats.Submitted)
	}
	if stats.Passed != 2 {
		t.Errorf("Passed = %d, want 2", stats.Passed)
	}
	if stats.AverageScore != 80 {
		t.Errorf("AverageScore = %v, want 80", stats.AverageScore)
	}
	if stats.PassRate != 67 {
		t.Errorf("PassRate = %d, want 67 (rounded)", stats.PassRate)
	}
}

func TestComputeQuizStatsPassAtExactThreshold(t *testing.T) {
	attempts := []qmodel.QuizAttemptModel{
		attemptWithScore(qmodel.QuizAttemptGraded, 70),
	}
	stats := ComputeQuizStats(attempts, 70)
	if stats.Passed != 1 {
		t.Error("score equal to the passing score must pass")
	}
	if stats.PassRate != 100 {
		t.Errorf("PassRate = %d, want 100", stats.PassRate)
	}
}

func TestComputeQuizStatsNoSubmissions(t *testing.T) {
	attempts := []qmodel.QuizAttemptModel{
		attemptWithScore(qmodel.QuizAttemptInProgress, 0),
	}
	stats := ComputeQuizStats(attempts, 70)
	if stats.Submitted != 0 || stats.AverageScore != 0 || stats.PassRate != 0 {
		t.Errorf("empty rollup should stay zero, got %+v", stats)
	}
}

func TestComputeStudentStats(t *testing.T) {
	attempts := []qmodel.QuizAttemptModel{
		attemptWithScore(qmodel.QuizAttemptGraded, 50),
		attemptWithScore(qmodel.QuizAttemptSubmitted, 90),
		attemptWithScore(qmodel.QuizAttemptInProgress, 0),
	}
	yes, no := true, false
	responses := []qmodel.QuizResponseModel{
		{QuizResponseIsCorrect: &yes},
		{QuizResponseIsCorrect: &yes},
		{QuizResponseIsCorrect: &no},
		{QuizResponseIsCorrect: nil}, // pending review counts as not-correct
	}

	stats := ComputeStudentStats(attempts, responses)

	if stats.TotalAttempts != 2 {
		t.Errorf("TotalAttempts = %d, want 2 finished", stats.TotalAttempts)
	}
	if stats.AverageScore != 70 {
		t.Errorf("AverageScore = %v, want 70", stats.AverageScore)
	}
	if stats.BestScore != 90 {
		t.Errorf("BestScore = %v, want 90", stats.BestScore)
	}
	if stats.CorrectAnswers != 2 {
		t.Errorf("CorrectAnswers = %d, want 2", stats.CorrectAnswers)
	}
	if stats.TotalQuestions != 4 {
		t.Errorf("TotalQuestions = %d, want 4", stats.TotalQuestions)
	}
}
