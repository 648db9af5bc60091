package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
	models "lms/models/course"
	"lms/store"
	"lms/utils"
	courseValidator "lms/validators/course"
)

// SubmitProject records the caller's project submission
func SubmitProject(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("contentID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedProjectSubmit").(*courseValidator.SubmitProjectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	groupMembers, _ := c.Locals("validatedGroupMembers").([]primitive.ObjectID)

	submission := models.ProjectSubmission{
		StudentID:     studentID,
		FileURL:       reqData.FileURL,
		RepositoryURL: reqData.RepositoryURL,
		LiveDemoURL:   reqData.LiveDemoURL,
		GroupMembers:  groupMembers,
	}

	if err := store.SubmitProject(c.Context(), projectID, &submission); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	// Best-effort confirmation, outside the submission transaction.
	if email, ok := c.Locals("email").(string); ok {
		go utils.SendSubmissionEmail(email, "Project submitted",
			"Your project submission was received and is waiting to be graded.")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project submitted!", fiber.Map{
		"project_id": projectID,
	})
}

// GradeProject writes score and feedback onto a student's submission
func GradeProject(c *fiber.Ctx) error {
	projectID := c.Locals("contentID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedGrade").(*courseValidator.GradeProjectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	studentID := c.Locals("gradeStudentID").(primitive.ObjectID)

	if err := store.GradeProject(c.Context(), projectID, studentID, reqData.Score, reqData.Feedback); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project graded successfully!", nil)
}

// GetProjectSubmissions lists submissions. Privileged roles see every
// student's; everyone else only their own.
func GetProjectSubmissions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("contentID").(primitive.ObjectID)
	role, _ := c.Locals("role").(string)

	var scope *primitive.ObjectID
	if role != "ADMIN" && role != "INSTRUCTOR" {
		scope = &userID
	} else if hex := c.Query("student_id"); hex != "" {
		studentID, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student_id!", nil)
		}
		scope = &studentID
	}

	submissions, err := store.GetProjectSubmissions(c.Context(), projectID, scope)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"submissions": submissions,
	})
}
