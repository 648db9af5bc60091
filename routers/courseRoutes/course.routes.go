package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseHierarchy)
	courseGroup.Post("/:id/enroll", validators.CourseID(), controllers.EnrollInCourse)

	contentGroup := app.Group("/content", middleware.JWTMiddleware)
	contentGroup.Get("/:content_id", validators.ContentID(), controllers.GetContent)

	// Quiz
	contentGroup.Post("/:content_id/quiz/submit", validators.SubmitQuiz(), controllers.SubmitQuiz)
	contentGroup.Get("/:content_id/quiz/attempts", validators.ContentID(), controllers.GetAttemptsLeft)

	// Project
	contentGroup.Post("/:content_id/project/submit", validators.SubmitProject(), controllers.SubmitProject)
	contentGroup.Get("/:content_id/project/submissions", validators.ContentID(), controllers.GetProjectSubmissions)

	// Live session
	contentGroup.Post("/:content_id/session/attendance", validators.MarkAttendance(), controllers.MarkAttendance)
	contentGroup.Get("/:content_id/session/attendance", validators.ContentID(), controllers.GetAttendance)
}
