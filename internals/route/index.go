// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolbridge_backend/internals/constants"
	quizroute "schoolbridge_backend/internals/features/school/quizzes/route"
	"schoolbridge_backend/internals/middlewares/auth"
)

// SetupRoutes wires the three role-scoped API groups. Every group runs
// the JWT middleware first; role checks sit on the group, not on the
// individual handlers.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== STUDENT =====================
	log.Println("[INFO] Setting up STUDENT group (/api/s)...")
	student := app.Group("/api/s",
		auth.AuthMiddleware(),
		auth.OnlyRoles(constants.ErrOnlyStudentsCanAccess, constants.RoleStudent),
	)
	quizroute.QuizStudentRoutes(student, db)

	// ===================== TEACHER / ADMIN =====================
	log.Println("[INFO] Setting up TEACHER group (/api/t)...")
	teacher := app.Group("/api/t",
		auth.AuthMiddleware(),
		auth.OnlyRoles(constants.ErrOnlyTeachersCanAccess, constants.TeacherAndAbove...),
	)
	quizroute.QuizTeacherRoutes(teacher, db)

	// ===================== PARENT =====================
	log.Println("[INFO] Setting up PARENT group (/api/p)...")
	parent := app.Group("/api/p",
		auth.AuthMiddleware(),
		auth.OnlyRoles(constants.ErrOnlyParentsCanAccess, constants.RoleParent),
	)
	quizroute.QuizParentRoutes(parent, db)
}
