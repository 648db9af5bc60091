package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
	"lms/store"
)

// EnrollInCourse enrolls the caller into a course
func EnrollInCourse(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(primitive.ObjectID)

	enrollment, err := store.EnrollStudent(c.Context(), courseID, studentID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}
