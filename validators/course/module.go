package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CreateModuleRequest is the validated create-module payload.
type CreateModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "id", "courseID"); err != nil {
			return err
		}

		reqData := new(CreateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModuleRequest uses pointers so absent fields stay untouched.
type UpdateModuleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateModule validator middleware
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "module_id", "moduleID"); err != nil {
			return err
		}

		reqData := new(UpdateModuleRequest)
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

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// ReorderContents validator middleware
func ReorderContents() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "module_id", "moduleID"); err != nil {
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

// DetachContents validator middleware for pulling contents out of a module's
// ordering without deleting the documents
func DetachContents() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "module_id", "moduleID"); err != nil {
			return err
		}

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

// DeleteModules validator middleware
func DeleteModules() fiber.Handler {
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
