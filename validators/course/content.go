package courseValidator

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	models "lms/models/course"
)

// QuestionRequest is one quiz question in a create/update payload.
type QuestionRequest struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

func validateQuestions(questions []QuestionRequest, errors map[string]string) {
	if len(questions) == 0 {
		errors["questions"] = "A quiz needs at least one question!"
		return
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			errors[fmt.Sprintf("questions[%d]", i)] = "Question text must not be empty!"
		}
		if len(q.Options) < 2 {
			errors[fmt.Sprintf("questions[%d].options", i)] = "A question needs at least two options!"
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			errors[fmt.Sprintf("questions[%d].correct_option", i)] = "Correct option is out of range!"
		}
	}
}

// CreateContentRequest covers every variant; only the fields of the declared
// type are validated and persisted.
type CreateContentRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FileKey     string `json:"file_key"`

	VideoURL          string `json:"video_url"`
	DurationInSeconds int    `json:"duration_in_seconds"`

	Body string `json:"body"`

	Questions             []QuestionRequest `json:"questions"`
	MaxAttempts           int               `json:"max_attempts"`
	QuizStartDate         *time.Time        `json:"quiz_start_date"`
	QuizEndDate           *time.Time        `json:"quiz_end_date"`
	QuizDurationInMinutes int               `json:"quiz_duration_in_minutes"`

	Instructions      string     `json:"instructions"`
	AssignmentDueDate *time.Time `json:"assignment_due_date"`

	DueDate        *time.Time `json:"due_date"`
	IsGroupProject bool       `json:"is_group_project"`
	MaxGroupSize   int        `json:"max_group_size"`

	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	MeetingURL string     `json:"meeting_url"`
}

// CreateContent validator middleware
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "module_id", "moduleID"); err != nil {
			return err
		}

		reqData := new(CreateContentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		switch models.ContentType(reqData.Type) {
		case models.ContentTypeVideo:
			if reqData.VideoURL == "" {
				errors["video_url"] = "Video URL is required!"
			}
		case models.ContentTypeArticle:
			if strings.TrimSpace(reqData.Body) == "" {
				errors["body"] = "Article body is required!"
			}
		case models.ContentTypeQuiz:
			validateQuestions(reqData.Questions, errors)
			if reqData.MaxAttempts < 1 {
				errors["max_attempts"] = "Max attempts must be at least 1!"
			}
			if reqData.QuizStartDate != nil && reqData.QuizEndDate != nil &&
				!reqData.QuizEndDate.After(*reqData.QuizStartDate) {
				errors["quiz_end_date"] = "Quiz end date must be after the start date!"
			}
		case models.ContentTypeAssignment:
			if strings.TrimSpace(reqData.Instructions) == "" {
				errors["instructions"] = "Assignment instructions are required!"
			}
		case models.ContentTypeProject:
			if reqData.IsGroupProject && reqData.MaxGroupSize < 2 {
				errors["max_group_size"] = "Group projects need a max group size of at least 2!"
			}
		case models.ContentTypeLiveSession:
			if reqData.StartDate == nil || reqData.EndDate == nil {
				errors["start_date"] = "Live sessions need a start and end date!"
			} else if !reqData.EndDate.After(*reqData.StartDate) {
				errors["end_date"] = "Session end date must be after the start date!"
			}
			if reqData.MeetingURL == "" {
				errors["meeting_url"] = "Meeting URL is required!"
			}
		default:
			errors["type"] = "Unknown content type!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

// UpdateContentRequest uses pointers so absent fields stay untouched. The
// content type itself cannot be changed.
type UpdateContentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`

	VideoURL          *string `json:"video_url"`
	DurationInSeconds *int    `json:"duration_in_seconds"`

	Body *string `json:"body"`

	Questions             []QuestionRequest `json:"questions"`
	MaxAttempts           *int              `json:"max_attempts"`
	QuizStartDate         *time.Time        `json:"quiz_start_date"`
	QuizEndDate           *time.Time        `json:"quiz_end_date"`
	QuizDurationInMinutes *int              `json:"quiz_duration_in_minutes"`

	Instructions      *string    `json:"instructions"`
	AssignmentDueDate *time.Time `json:"assignment_due_date"`

	DueDate        *time.Time `json:"due_date"`
	IsGroupProject *bool      `json:"is_group_project"`
	MaxGroupSize   *int       `json:"max_group_size"`

	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	MeetingURL *string    `json:"meeting_url"`
}

// UpdateContent validator middleware
func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "content_id", "contentID"); err != nil {
			return err
		}

		reqData := new(UpdateContentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Questions != nil {
			validateQuestions(reqData.Questions, errors)
		}
		if reqData.MaxAttempts != nil && *reqData.MaxAttempts < 1 {
			errors["max_attempts"] = "Max attempts must be at least 1!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContentUpdate", reqData)
		return c.Next()
	}
}

// ContentID validator middleware for routes that only need the path id
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "content_id", "contentID"); err != nil {
			return err
		}
		return c.Next()
	}
}

// DeleteContents validator middleware
func DeleteContents() fiber.Handler {
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
