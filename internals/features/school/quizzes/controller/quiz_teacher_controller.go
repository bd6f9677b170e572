// file: internals/features/school/quizzes/controller/quiz_teacher_controller.go
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

type QuizTeacherController struct {
	DB        *gorm.DB
	validator *validator.Validate

	policy   *service.AccessPolicy
	attempts *service.QuizAttemptService
	stats    *service.StatsService
}

func NewQuizTeacherController(db *gorm.DB) *QuizTeacherController {
	return &QuizTeacherController{
		DB:       db,
		policy:   service.NewAccessPolicy(db),
		attempts: service.NewQuizAttemptService(db),
		stats:    service.NewStatsService(db),
	}
}

func (ctl *QuizTeacherController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// loadOwnedQuiz fetches the quiz and checks course ownership in one step.
func (ctl *QuizTeacherController) loadOwnedQuiz(c *fiber.Ctx, quizID uuid.UUID) (*qmodel.QuizModel, error) {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var quiz qmodel.QuizModel
	if err := ctl.DB.
		First(&quiz, "quiz_id = ? AND quiz_school_id = ?", quizID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load quiz")
	}

	owned, err := ctl.policy.CanTeacherManageQuiz(c.UserContext(), teacherID, &quiz)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check access")
	}
	if !owned && !helper.IsAdmin(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You do not have access to this resource")
	}
	return &quiz, nil
}

// quizIsFrozen: published quizzes with existing attempts must not change
// shape, so already-graded attempts keep their pass/fail semantics.
func (ctl *QuizTeacherController) quizIsFrozen(quiz *qmodel.QuizModel) (bool, error) {
	if !quiz.QuizIsPublished {
		return false, nil
	}
	var n int64
	if err := ctl.DB.Model(&qmodel.QuizAttemptModel{}).
		Where("quiz_attempt_quiz_id = ?", quiz.QuizID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

/* =========================================================
   QUIZ AUTHORING
========================================================= */

// POST /api/t/quizzes
func (ctl *QuizTeacherController) CreateQuiz(c *fiber.Ctx) error {
	ctl.ensureValidator()

	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req qdto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMessages(err))
	}

	owned, err := ctl.policy.CanTeacherOwnCourse(c.UserContext(), teacherID, req.QuizCourseID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check access")
	}
	if !owned && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not have access to this resource")
	}

	m := req.ToModel(schoolID)
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create quiz")
	}
	return helper.JsonCreated(c, "Quiz created", qdto.FromModelQuiz(m))
}

// PATCH /api/t/quizzes/:id
func (ctl *QuizTeacherController) UpdateQuiz(c *fiber.Ctx) error {
	ctl.ensureValidator()

	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	quiz, ferr := ctl.loadOwnedQuiz(c, quizID)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req qdto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMessages(err))
	}

	// scoring fields are frozen once students have attempts
	if req.QuizPassingScore != nil || req.QuizTimeLimitMin != nil {
		frozen, err := ctl.quizIsFrozen(quiz)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check attempts")
		}
		if frozen {
			return helper.JsonError(c, fiber.StatusConflict, "Quiz already has attempts, scoring rules are frozen")
		}
	}

	req.ApplyToModel(quiz)
	if err := ctl.DB.Save(quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update quiz")
	}
	return helper.JsonUpdated(c, "Quiz updated", qdto.FromModelQuiz(quiz))
}

// DELETE /api/t/quizzes/:id (soft delete)
func (ctl *QuizTeacherController) DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	quiz, ferr := ctl.loadOwnedQuiz(c, quizID)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	if err := ctl.DB.Delete(quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete quiz")
	}
	return helper.JsonDeleted(c, "Quiz deleted", fiber.Map{"quiz_id": quiz.QuizID})
}

// GET /api/t/quizzes/:id
func (ctl *QuizTeacherController) GetQuiz(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	quiz, ferr := ctl.loadOwnedQuiz(c, quizID)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var questions []qmodel.QuizQuestionModel
	if err := ctl.DB.
		Where("quiz_question_quiz_id = ?", quiz.QuizID).
		Order("quiz_question_position ASC").
		Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load questions")
	}

	items := make([]*qdto.QuizQuestionResponse, 0, len(questions))
	for i := range questions {
		items = append(items, qdto.FromModelQuizQuestion(&questions[i]))
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"quiz":      qdto.FromModelQuiz(quiz),
		"questions": items,
	})
}

/* =========================================================
   QUESTION AUTHORING
========================================================= */

// POST /api/t/quizzes/:id/questions
func (ctl *QuizTeacherController) CreateQuestion(c *fiber.Ctx) error {
	ctl.ensureValidator()

	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	quiz, ferr := ctl.loadOwnedQuiz(c, quizID)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	frozen, err := ctl.quizIsFrozen(quiz)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check attempts")
	}
	if frozen {
		return helper.JsonError(c, fiber.StatusConflict, "Quiz already has attempts, questions are frozen")
	}

	var req qdto.CreateQuizQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMessages(err))
	}

	m, err := req.ToModel(quiz.QuizSchoolID, quiz.QuizID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := m.ValidateShape(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create question")
	}
	return helper.JsonCreated(c, "Question created", qdto.FromModelQuizQuestion(m))
}

// PATCH /api/t/questions/:id
func (ctl *QuizTeacherController) UpdateQuestion(c *fiber.Ctx) error {
	ctl.ensureValidator()

	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var question qmodel.QuizQuestionModel
	if err := ctl.DB.First(&question, "quiz_question_id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load question")
	}

	quiz, ferr := ctl.loadOwnedQuiz(c, question.QuizQuestionQuizID)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	frozen, err := ctl.quizIsFrozen(quiz)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check attempts")
	}
	if frozen {
		return helper.JsonError(c, fiber.StatusConflict, "Quiz already has attempts, questions are frozen")
	}

	var req qdto.UpdateQuizQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMessages(err))
	}
	if err := req.ApplyToModel(&question); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := question.ValidateShape(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := ctl.DB.Save(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update question")
	}
	return helper.JsonUpdated(c, "Question updated", qdto.FromModelQuizQuestion(&question))
}

// DELETE /api/t/questions/:id
func (ctl *QuizTeacherController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var question qmodel.QuizQuestionModel
	if err := ctl.DB.First(&question, "quiz_question_id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load question")
	}

	quiz, ferr := ctl.loadOwnedQuiz(c, question.QuizQuestionQuizID)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	frozen, err := ctl.quizIsFrozen(quiz)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check attempts")
	}
	if frozen {
		return helper.JsonError(c, fiber.StatusConflict, "Quiz already has attempts, questions are frozen")
	}

	if err := ctl.DB.Delete(&question).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"quiz_question_id": question.QuizQuestionID})
}

/* =========================================================
   REVIEW & GRADING
========================================================= */

// GET /api/t/quizzes/:id/submissions
func (ctl *QuizTeacherController) ListSubmissions(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}
	quiz, ferr := ctl.loadOwnedQuiz(c, quizID)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := ctl.DB.Model(&qmodel.QuizAttemptModel{}).
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_status IN ?", quiz.QuizID,
			[]string{string(qmodel.QuizAttemptSubmitted), string(qmodel.QuizAttemptGraded)}).
		Session(&gorm.Session{}) // count and page reuse the same base

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count submissions")
	}

	var attempts []qmodel.QuizAttemptModel
	if err := base.Order("quiz_attempt_submitted_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load submissions")
	}

	stats, err := ctl.stats.QuizStats(c.UserContext(), schoolID, quiz.QuizID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", fiber.Map{
		"submissions": qdto.FromModelQuizAttempts(attempts),
		"stats":       stats,
	}, &pagination)
}

// GET /api/t/attempts/:id/responses
func (ctl *QuizTeacherController) ListAttemptResponses(c *fiber.Ctx) error {
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	var attempt qmodel.QuizAttemptModel
	if err := ctl.DB.First(&attempt, "quiz_attempt_id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attempt not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attempt")
	}

	if _, ferr := ctl.loadOwnedQuiz(c, attempt.QuizAttemptQuizID); ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var responses []qmodel.QuizResponseModel
	if err := ctl.DB.Preload("Question").
		Where("quiz_response_attempt_id = ?", attempt.QuizAttemptID).
		Find(&responses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load responses")
	}

	items := make([]*qdto.QuizResponseDetail, 0, len(responses))
	for i := range responses {
		items = append(items, qdto.FromModelQuizResponse(&responses[i]))
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"attempt":   qdto.FromModelQuizAttempt(&attempt),
		"responses": items,
	})
}

// POST /api/t/attempts/:id/grade
func (ctl *QuizTeacherController) GradeAttempt(c *fiber.Ctx) error {
	ctl.ensureValidator()

	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	var attempt qmodel.QuizAttemptModel
	if err := ctl.DB.First(&attempt, "quiz_attempt_id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Attempt not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attempt")
	}
	if _, ferr := ctl.loadOwnedQuiz(c, attempt.QuizAttemptQuizID); ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req qdto.GradeAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctl.validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, validationMessages(err))
	}

	graded, err := ctl.attempts.GradeSubjective(c.UserContext(), &service.GradeSubjectiveInput{
		AttemptID: attempt.QuizAttemptID,
		TeacherID: teacherID,
		Grades:    req.ToServiceGrades(),
		Finalize:  req.Finalize,
	})
	if err != nil {
		return mapAttemptServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Attempt graded", qdto.FromModelQuizAttempt(graded))
}
