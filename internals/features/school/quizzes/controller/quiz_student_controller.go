// file: internals/features/school/quizzes/controller/quiz_student_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	validator "github.com/go-playground/validator/v10"

	qdto "schoolbridge_backend/internals/features/school/quizzes/dto"
	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
	"schoolbridge_backend/internals/features/school/quizzes/service"
	helper "schoolbridge_backend/internals/helpers"
)

type QuizStudentController struct {
	DB        *gorm.DB
	validator *validator.Validate

	policy   *service.AccessPolicy
	attempts *service.QuizAttemptService
	stats    *service.StatsService
}

func NewQuizStudentController(db *gorm.DB) *QuizStudentController {
	return &QuizStudentController{
		DB:       db,
		policy:   service.NewAccessPolicy(db),
		attempts: service.NewQuizAttemptService(db),
		stats:    service.NewStatsService(db),
	}
}

func (ctl *QuizStudentController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// GET /api/s/quizzes/:id
// Resolves (or starts) the caller's attempt and returns the filtered
// question set plus the submission id to submit against.
func (ctl *QuizStudentController) GetQuiz(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	var quiz qmodel.QuizModel
	if err := ctl.DB.
		First(&quiz, "quiz_id = ? AND quiz_school_id = ? AND quiz_is_published = TRUE", quizID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load quiz")
	}

	allowed, err := ctl.policy.CanStudentAccessQuiz(c.UserContext(), studentID, &quiz)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check access")
	}
	if !allowed {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this resource")
	}

	attempt, _, err := ctl.attempts.GetOrCreateAttempt(c.UserContext(), schoolID, quiz.QuizID, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start attempt")
	}

	var questions []qmodel.QuizQuestionModel
	if err := ctl.DB.
		Where("quiz_question_quiz_id = ? AND quiz_question_school_id = ?", quiz.QuizID, schoolID).
		Order("quiz_question_position ASC").
		Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load questions")
	}

	// the resolved attempt is always in_progress, so review gating looks
	// at the student's latest finished attempt for this quiz
	viewStatus := attempt.QuizAttemptStatus
	if !viewStatus.IsFinal() {
		var prior qmodel.QuizAttemptModel
		err := ctl.DB.
			Where("quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ? AND quiz_attempt_status IN ?",
				quiz.QuizID, studentID,
				[]string{string(qmodel.QuizAttemptSubmitted), string(qmodel.QuizAttemptGraded)}).
			Order("quiz_attempt_submitted_at DESC").
			First(&prior).Error
		switch {
		case err == nil:
			viewStatus = qmodel.EffectiveReviewStatus(viewStatus, &prior.QuizAttemptStatus)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attempts")
		}
	}

	view := qdto.BuildQuizView(&quiz, questions, viewStatus)
	return helper.JsonOK(c, "ok", fiber.Map{
		"quiz":           view,
		"submission_id":  attempt.QuizAttemptID,
		"attempt_number": attempt.QuizAttemptNumber,
		"attempt_status": attempt.QuizAttemptStatus,
		"started_at":     attempt.QuizAttemptStartedAt,
	})
}

// POST /api/s/quizzes/:id/submit
func (ctl *QuizStudentController) Submit(c *fiber.Ctx) error {
	ctl.ensureValidator()

	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	var req qdto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMessages(err))
	}

	result, err := ctl.attempts.SubmitAttempt(c.UserContext(), &service.SubmitAttemptInput{
		AttemptID:    req.SubmissionID,
		QuizID:       quizID,
		StudentID:    studentID,
		TimeSpentSec: req.TimeSpentSeconds,
		Answers:      req.AnswersMap(),
	})
	if err != nil {
		return mapAttemptServiceError(c, err)
	}
	return helper.JsonOK(c, "Submission graded", qdto.FromSubmissionResult(result))
}

// GET /api/s/quizzes/attempts?quiz_id=
func (ctl *QuizStudentController) MyAttempts(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&qmodel.QuizAttemptModel{}).
		Where("quiz_attempt_student_id = ? AND quiz_attempt_school_id = ?", studentID, schoolID)
	if rawQuizID := c.Query("quiz_id"); rawQuizID != "" {
		quizID, err := uuid.Parse(rawQuizID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz_id filter")
		}
		q = q.Where("quiz_attempt_quiz_id = ?", quizID)
	}
	q = q.Session(&gorm.Session{}) // count and page reuse the same base

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count attempts")
	}

	var attempts []qmodel.QuizAttemptModel
	if err := q.Order("quiz_attempt_started_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attempts")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", qdto.FromModelQuizAttempts(attempts), &pagination)
}

// GET /api/s/stats
func (ctl *QuizStudentController) MyStats(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	stats, err := ctl.stats.StudentStats(c.UserContext(), schoolID, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	return helper.JsonOK(c, "ok", stats)
}

// mapAttemptServiceError translates service sentinels into the API error
// taxonomy. Forbidden stays generic so existence never leaks.
func mapAttemptServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrResponseNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrNotAttemptOwner),
		errors.Is(err, service.ErrAttemptQuizMismatch):
		return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this resource")
	case errors.Is(err, service.ErrAttemptNotInProgress):
		return helper.JsonError(c, fiber.StatusConflict, "Attempt has already been submitted")
	case errors.Is(err, service.ErrAttemptStillOpen):
		return helper.JsonError(c, fiber.StatusConflict, "Attempt has not been submitted yet")
	case errors.Is(err, service.ErrDeadlineExceeded):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Time limit exceeded")
	case errors.Is(err, service.ErrNotSubjective):
		return helper.JsonError(c, fiber.StatusBadRequest, "Only subjective responses can be graded manually")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}
}
