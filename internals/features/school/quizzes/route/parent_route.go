package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizcontroller "schoolbridge_backend/internals/features/school/quizzes/controller"
)

// QuizParentRoutes mounts the read-only child views under /api/p.
func QuizParentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := quizcontroller.NewQuizParentController(db)

	children := r.Group("/children")
	children.Get("/:student_id/attempts", ctl.ChildAttempts)
	children.Get("/:student_id/stats", ctl.ChildStats)
}
