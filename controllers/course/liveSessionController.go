package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
	"lms/store"
	courseValidator "lms/validators/course"
)

// MarkAttendance records or updates the caller's attendance for a session
func MarkAttendance(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Locals("contentID").(primitive.ObjectID)

	reqData, ok := c.Locals("validatedAttendance").(*courseValidator.MarkAttendanceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	wasPresent := true
	if reqData.WasPresent != nil {
		wasPresent = *reqData.WasPresent
	}

	record, err := store.MarkAttendance(c.Context(), sessionID, &store.AttendanceInput{
		StudentID:  studentID,
		JoinedAt:   reqData.JoinedAt,
		LeftAt:     reqData.LeftAt,
		WasPresent: wasPresent,
		Notes:      reqData.Notes,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked!", fiber.Map{
		"attendance": record,
	})
}

// GetAttendance lists attendance records. Privileged roles see every
// student's; everyone else only their own.
func GetAttendance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(primitive.ObjectID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Locals("contentID").(primitive.ObjectID)
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

	records, err := store.GetAttendance(c.Context(), sessionID, scope)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance fetched successfully!", fiber.Map{
		"attendance": records,
	})
}
