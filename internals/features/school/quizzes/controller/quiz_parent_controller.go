// file: internals/features/school/quizzes/controller/quiz_parent_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	qdto "schoolbridge_backend/internals/features/school/quizzes/dto"
	qmodel "schoolbridge_backend/internals/features/school/quizzes/model"
	"schoolbridge_backend/internals/features/school/quizzes/service"
	helper "schoolbridge_backend/internals/helpers"
)

type QuizParentController struct {
	DB *gorm.DB

	policy *service.AccessPolicy
	stats  *service.StatsService
}

func NewQuizParentController(db *gorm.DB) *QuizParentController {
	return &QuizParentController{
		DB:     db,
		policy: service.NewAccessPolicy(db),
		stats:  service.NewStatsService(db),
	}
}

// guardChild resolves the :student_id param and requires a verified
// guardian link. An unverified or missing link gets the same generic 403
// as a nonexistent student.
func (ctl *QuizParentController) guardChild(c *fiber.Ctx) (uuid.UUID, error) {
	parentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	linked, err := ctl.policy.CanParentViewStudent(c.UserContext(), parentID, studentID)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check access")
	}
	if !linked {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "You do not have access to this resource")
	}
	return studentID, nil
}

// GET /api/p/children/:student_id/attempts
// Parents only see finished work; in-progress attempts stay hidden.
func (ctl *QuizParentController) ChildAttempts(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	studentID, ferr := ctl.guardChild(c)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&qmodel.QuizAttemptModel{}).
		Where("quiz_attempt_student_id = ? AND quiz_attempt_school_id = ?", studentID, schoolID).
		Where("quiz_attempt_status IN ?",
			[]string{string(qmodel.QuizAttemptSubmitted), string(qmodel.QuizAttemptGraded)}).
		Session(&gorm.Session{}) // count and page reuse the same base

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count attempts")
	}

	var attempts []qmodel.QuizAttemptModel
	if err := q.Order("quiz_attempt_submitted_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load attempts")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "ok", qdto.FromModelQuizAttempts(attempts), &pagination)
}

// GET /api/p/children/:student_id/stats
func (ctl *QuizParentController) ChildStats(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	studentID, ferr := ctl.guardChild(c)
	if ferr != nil {
		fe := ferr.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	stats, err := ctl.stats.StudentStats(c.UserContext(), schoolID, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	return helper.JsonOK(c, "ok", stats)
}
