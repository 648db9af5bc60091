package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
)

// CreateCourseRequest is the validated create-course payload.
type CreateCourseRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Author         string `json:"author"`
	OrganizationID string `json:"organization_id"`
	ThumbnailKey   string `json:"thumbnail_key"`
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.OrganizationID != "" {
			if _, err := primitive.ObjectIDFromHex(reqData.OrganizationID); err != nil {
				errors["organization_id"] = "Invalid organization id!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseRequest uses pointers so absent fields stay untouched.
type UpdateCourseRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Author       *string `json:"author"`
	ThumbnailKey *string `json:"thumbnail_key"`
	IsPublished  *bool   `json:"is_published"`
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validator middleware for routes that only need the path id
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// ReorderRequest carries a proposed new ordering of child ids.
type ReorderRequest struct {
	Order []string `json:"order"`
}

// ReorderModules validator middleware
func ReorderModules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(ReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Order) == 0 {
			errors["order"] = "Order must not be empty!"
		}
		order := parseIDList(reqData.Order, "order", errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrder", order)
		return c.Next()
	}
}

// AddModule validator middleware for attaching an existing module
func AddModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}
		if err := parseIDParam(c, "module_id", "moduleID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// RemoveModule validator middleware for detaching a module from the course
func RemoveModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}
		if err := parseIDParam(c, "module_id", "moduleID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// DeleteManyRequest carries a batch of ids to delete.
type DeleteManyRequest struct {
	Ids []string `json:"ids"`
}

// DeleteCourses validator middleware
func DeleteCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DeleteManyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Ids) == 0 {
			errors["ids"] = "Ids must not be empty!"
		}
		ids := parseIDList(reqData.Ids, "ids", errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedIds", ids)
		return c.Next()
	}
}
