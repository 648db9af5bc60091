package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
	"lms/store"
	"lms/utils"
	courseValidator "lms/validators/course"
)

// SubmitQuiz grades the caller's quiz attempt
func SubmitQuiz(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("contentID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedQuizSubmit").(*courseValidator.SubmitQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := store.SubmitQuiz(c.Context(), quizID, studentID, reqData.Answers, reqData.TimeTakenInSeconds)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	// Best-effort confirmation, outside the submission transaction.
	if email, ok := c.Locals("email").(string); ok {
		go utils.SendSubmissionEmail(email, "Quiz submitted",
			fmt.Sprintf("Your attempt %d was recorded with a score of %.2f%%.", result.AttemptNumber, result.Score))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", result)
}

// GetAttemptsLeft returns the caller's remaining attempts on a quiz
func GetAttemptsLeft(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("contentID").(primitive.ObjectID)

	left, err := store.GetAttemptsLeft(c.Context(), quizID, studentID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts_left": left,
	})
}
