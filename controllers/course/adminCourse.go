package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
	models "lms/models/course"
	"lms/store"
	courseValidator "lms/validators/course"
)

// AdminCreateCourse creates a new course
func AdminCreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		ThumbnailKey: reqData.ThumbnailKey,
		CreatedBy:    userId,
	}
	if reqData.OrganizationID != "" {
		orgID, _ := primitive.ObjectIDFromHex(reqData.OrganizationID)
		course.OrganizationID = orgID
	}

	if err := store.CreateCourse(c.Context(), &course); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := store.UpdateCourse(c.Context(), courseID, &store.CoursePatch{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		ThumbnailKey: reqData.ThumbnailKey,
		IsPublished:  reqData.IsPublished,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// GetCourseHierarchy returns the course with its modules resolved in
// canonical order; ?include_contents=true resolves one level deeper.
func GetCourseHierarchy(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(primitive.ObjectID)
	includeContents := c.Query("include_contents") == "true"

	course, err := store.GetWithOrderedHierarchy(c.Context(), courseID, includeContents)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// AdminReorderModules replaces the course's module order
func AdminReorderModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(primitive.ObjectID)
	order := c.Locals("validatedOrder").([]primitive.ObjectID)

	course, err := store.ReorderModules(c.Context(), courseID, order)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules reordered successfully!", course)
}

// AdminAddModuleToCourse attaches an existing module to the course list
func AdminAddModuleToCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(primitive.ObjectID)
	moduleID := c.Locals("moduleID").(primitive.ObjectID)

	if err := store.AddModuleToCourse(c.Context(), courseID, moduleID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module added to course!", nil)
}

// AdminRemoveModuleFromCourse detaches a module from the course list without
// deleting the module document
func AdminRemoveModuleFromCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(primitive.ObjectID)
	moduleID := c.Locals("moduleID").(primitive.ObjectID)

	if err := store.RemoveModuleFromCourse(c.Context(), courseID, moduleID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module removed from course!", nil)
}

// AdminDeleteCourses cascade-deletes a batch of courses
func AdminDeleteCourses(c *fiber.Ctx) error {
	ids := c.Locals("validatedIds").([]primitive.ObjectID)

	if err := store.DeleteCourses(c.Context(), ids); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses deleted successfully!", nil)
}
