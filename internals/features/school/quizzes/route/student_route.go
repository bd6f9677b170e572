package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizcontroller "schoolbridge_backend/internals/features/school/quizzes/controller"
)

// QuizStudentRoutes mounts the attempt lifecycle under the student group.
//
// Paths:
//   - GET  /api/s/quizzes/:id          (resolve quiz + open attempt)
//   - POST /api/s/quizzes/:id/submit
//   - GET  /api/s/quizzes/attempts
//   - GET  /api/s/stats
func QuizStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := quizcontroller.NewQuizStudentController(db)

	quizzes := r.Group("/quizzes")
	quizzes.Get("/attempts", ctl.MyAttempts) // before /:id so "attempts" never parses as an id
	quizzes.Get("/:id", ctl.GetQuiz)
	quizzes.Post("/:id/submit", ctl.Submit)

	r.Get("/stats", ctl.MyStats)
}
