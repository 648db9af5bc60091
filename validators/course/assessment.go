package courseValidator

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
)

// SubmitQuizRequest carries one answer index per question.
type SubmitQuizRequest struct {
	Answers            []int `json:"answers"`
	TimeTakenInSeconds int   `json:"time_taken_in_seconds"`
}

// SubmitQuiz validator middleware
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "content_id", "contentID"); err != nil {
			return err
		}

		reqData := new(SubmitQuizRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(reqData.Answers) == 0 {
			errors["answers"] = "Please answer the quiz questions!"
		}
		if reqData.TimeTakenInSeconds < 0 {
			errors["time_taken_in_seconds"] = "Time taken cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizSubmit", reqData)
		return c.Next()
	}
}

// SubmitProjectRequest needs at least one artifact URL; the engine enforces
// the group rules against the project document.
type SubmitProjectRequest struct {
	FileURL       string   `json:"file_url"`
	RepositoryURL string   `json:"repository_url"`
	LiveDemoURL   string   `json:"live_demo_url"`
	GroupMembers  []string `json:"group_members"`
}

// SubmitProject validator middleware
func SubmitProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "content_id", "contentID"); err != nil {
			return err
		}

		reqData := new(SubmitProjectRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.FileURL == "" && reqData.RepositoryURL == "" && reqData.LiveDemoURL == "" {
			errors["file_url"] = "Provide at least one of file, repository or live demo URL!"
		}
		members := parseIDList(reqData.GroupMembers, "group_members", errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProjectSubmit", reqData)
		c.Locals("validatedGroupMembers", members)
		return c.Next()
	}
}

// GradeProjectRequest is the instructor's grading payload.
type GradeProjectRequest struct {
	StudentID string  `json:"student_id"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

// GradeProject validator middleware
func GradeProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "content_id", "contentID"); err != nil {
			return err
		}

		reqData := new(GradeProjectRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		studentID, err := primitive.ObjectIDFromHex(reqData.StudentID)
		if err != nil {
			errors["student_id"] = "Invalid student id!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrade", reqData)
		c.Locals("gradeStudentID", studentID)
		return c.Next()
	}
}

// MarkAttendanceRequest marks the caller's own attendance.
type MarkAttendanceRequest struct {
	JoinedAt   time.Time  `json:"joined_at"`
	LeftAt     *time.Time `json:"left_at"`
	WasPresent *bool      `json:"was_present"`
	Notes      string     `json:"notes"`
}

// MarkAttendance validator middleware
func MarkAttendance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "content_id", "contentID"); err != nil {
			return err
		}

		reqData := new(MarkAttendanceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.JoinedAt.IsZero() {
			errors["joined_at"] = "Join time is required!"
		}
		if reqData.LeftAt != nil && reqData.LeftAt.Before(reqData.JoinedAt) {
			errors["left_at"] = "Leave time cannot precede join time!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttendance", reqData)
		return c.Next()
	}
}
