package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizcontroller "schoolbridge_backend/internals/features/school/quizzes/controller"
)

// QuizTeacherRoutes mounts quiz authoring and grading under the teacher
// group (/api/t). Role enforcement happens on the parent router.
func QuizTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := quizcontroller.NewQuizTeacherController(db)

	quizzes := r.Group("/quizzes")
	quizzes.Post("/", ctl.CreateQuiz)          // POST   /api/t/quizzes
	quizzes.Get("/:id", ctl.GetQuiz)           // GET    /api/t/quizzes/:id
	quizzes.Patch("/:id", ctl.UpdateQuiz)      // PATCH  /api/t/quizzes/:id
	quizzes.Delete("/:id", ctl.DeleteQuiz)     // DELETE /api/t/quizzes/:id
	quizzes.Post("/:id/questions", ctl.CreateQuestion)
	quizzes.Get("/:id/submissions", ctl.ListSubmissions)

	questions := r.Group("/questions")
	questions.Patch("/:id", ctl.UpdateQuestion)
	questions.Delete("/:id", ctl.DeleteQuestion)

	attempts := r.Group("/attempts")
	attempts.Get("/:id/responses", ctl.ListAttemptResponses)
	attempts.Post("/:id/grade", ctl.GradeAttempt)
}
