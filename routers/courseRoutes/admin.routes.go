package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly)

	// Course CRUD and ordering
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Put("/:id/modules/order", validators.ReorderModules(), controllers.AdminReorderModules)
	adminGroup.Post("/:id/module/:module_id/attach", validators.AddModule(), controllers.AdminAddModuleToCourse)
	adminGroup.Delete("/:id/module/:module_id", validators.RemoveModule(), controllers.AdminRemoveModuleFromCourse)
	adminGroup.Delete("/", validators.DeleteCourses(), controllers.AdminDeleteCourses)

	// Module management
	adminGroup.Post("/:id/module", validators.CreateModule(), controllers.AdminCreateModule)

	moduleGroup := app.Group("/admin/module", middleware.JWTMiddleware, middleware.AdminOnly)
	moduleGroup.Put("/:module_id", validators.UpdateModule(), controllers.AdminUpdateModule)
	moduleGroup.Put("/:module_id/contents/order", validators.ReorderContents(), controllers.AdminReorderContents)
	moduleGroup.Post("/:module_id/content", validators.CreateContent(), controllers.AdminCreateContent)
	moduleGroup.Delete("/:module_id/contents", validators.DetachContents(), controllers.AdminDetachContents)
	moduleGroup.Delete("/", validators.DeleteModules(), controllers.AdminDeleteModules)

	// Content management
	contentGroup := app.Group("/admin/content", middleware.JWTMiddleware, middleware.AdminOnly)
	contentGroup.Put("/:content_id", validators.UpdateContent(), controllers.AdminUpdateContent)
	contentGroup.Delete("/", validators.DeleteContents(), controllers.AdminDeleteContents)

	// Grading
	contentGroup.Post("/:content_id/grade", validators.GradeProject(), controllers.GradeProject)
}
