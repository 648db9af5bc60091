package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
	models "lms/models/course"
	"lms/store"
	"lms/utils"
	courseValidator "lms/validators/course"
)

func toQuestions(reqs []courseValidator.QuestionRequest) []models.Question {
	if reqs == nil {
		return nil
	}
	questions := make([]models.Question, len(reqs))
	for i, q := range reqs {
		questions[i] = models.Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		}
	}
	return questions
}

// AdminCreateContent creates new content in a module
func AdminCreateContent(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedContent").(*courseValidator.CreateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content := models.Content{
		ModuleID:    moduleID,
		Type:        models.ContentType(reqData.Type),
		Title:       reqData.Title,
		Description: reqData.Description,
		FileKey:     reqData.FileKey,
		CreatedBy:   userId,

		VideoURL:          reqData.VideoURL,
		DurationInSeconds: reqData.DurationInSeconds,

		Body: reqData.Body,

		Questions:             toQuestions(reqData.Questions),
		MaxAttempts:           reqData.MaxAttempts,
		QuizStartDate:         reqData.QuizStartDate,
		QuizEndDate:           reqData.QuizEndDate,
		QuizDurationInMinutes: reqData.QuizDurationInMinutes,

		Instructions:      reqData.Instructions,
		AssignmentDueDate: reqData.AssignmentDueDate,

		DueDate:        reqData.DueDate,
		IsGroupProject: reqData.IsGroupProject,
		MaxGroupSize:   reqData.MaxGroupSize,

		StartDate:  reqData.StartDate,
		EndDate:    reqData.EndDate,
		MeetingURL: reqData.MeetingURL,
	}

	if err := store.CreateContent(c.Context(), &content); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// AdminUpdateContent updates existing content; the patch is routed by the
// document's current type
func AdminUpdateContent(c *fiber.Ctx) error {
	contentID := c.Locals("contentID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedContentUpdate").(*courseValidator.UpdateContentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content, err := store.UpdateContent(c.Context(), contentID, &store.ContentPatch{
		Title:       reqData.Title,
		Description: reqData.Description,

		VideoURL:          reqData.VideoURL,
		DurationInSeconds: reqData.DurationInSeconds,

		Body: reqData.Body,

		Questions:             toQuestions(reqData.Questions),
		MaxAttempts:           reqData.MaxAttempts,
		QuizStartDate:         reqData.QuizStartDate,
		QuizEndDate:           reqData.QuizEndDate,
		QuizDurationInMinutes: reqData.QuizDurationInMinutes,

		Instructions:      reqData.Instructions,
		AssignmentDueDate: reqData.AssignmentDueDate,

		DueDate:        reqData.DueDate,
		IsGroupProject: reqData.IsGroupProject,
		MaxGroupSize:   reqData.MaxGroupSize,

		StartDate:  reqData.StartDate,
		EndDate:    reqData.EndDate,
		MeetingURL: reqData.MeetingURL,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", content)
}

// GetContent fetches one content document. Privileged roles keep the
// submission sub-collections; everyone else gets the stripped projection.
func GetContent(c *fiber.Ctx) error {
	contentID := c.Locals("contentID").(primitive.ObjectID)
	role, _ := c.Locals("role").(string)
	privileged := role == "ADMIN" || role == "INSTRUCTOR"

	content, err := store.GetContent(c.Context(), contentID, privileged)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	data := fiber.Map{"content": content}
	if content.FileKey != "" {
		url, err := utils.ResolveFileURL(c.Context(), content.FileKey)
		if err != nil {
			log.Printf("Failed to resolve file URL for content %s: %v", contentID.Hex(), err)
		} else {
			data["file_url"] = url
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", data)
}

// AdminDeleteContents deletes a batch of contents and detaches them from
// their modules
func AdminDeleteContents(c *fiber.Ctx) error {
	ids := c.Locals("validatedIds").([]primitive.ObjectID)

	if err := store.DeleteContents(c.Context(), ids); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Contents deleted successfully!", nil)
}
