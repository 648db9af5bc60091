package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
	models "lms/models/course"
	"lms/store"
	courseValidator "lms/validators/course"
)

// AdminCreateModule creates a new module in a course
func AdminCreateModule(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedModule").(*courseValidator.CreateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module := models.Module{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		CreatedBy:   userId,
	}

	if err := store.CreateModule(c.Context(), &module); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates an existing module
func AdminUpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.UpdateModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := store.UpdateModule(c.Context(), moduleID, reqData.Title, reqData.Description)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminReorderContents replaces the module's content order
func AdminReorderContents(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(primitive.ObjectID)
	order := c.Locals("validatedOrder").([]primitive.ObjectID)

	module, err := store.ReorderContents(c.Context(), moduleID, order)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents reordered successfully!", module)
}

// AdminDetachContents pulls contents out of the module's ordering without
// deleting the content documents
func AdminDetachContents(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(primitive.ObjectID)
	ids := c.Locals("validatedIds").([]primitive.ObjectID)

	if err := store.RemoveContentsFromModule(c.Context(), moduleID, ids); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents detached successfully!", nil)
}

// AdminDeleteModules cascade-deletes a batch of modules with their contents
func AdminDeleteModules(c *fiber.Ctx) error {
	ids := c.Locals("validatedIds").([]primitive.ObjectID)

	if err := store.DeleteModules(c.Context(), ids); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules deleted successfully!", nil)
}
