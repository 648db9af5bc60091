package courseValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func quizApp() *fiber.App {
	app := fiber.New()
	app.Post("/content/:content_id/quiz/submit", SubmitQuiz(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postJSON(app *fiber.App, url, body string) int {
	req := httptest.NewRequest("POST", url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		return 0
	}
	return resp.StatusCode
}

func TestSubmitQuizValidator(t *testing.T) {
	app := quizApp()
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
	}{
		{"valid", "/content/" + id + "/quiz/submit", `{"answers":[0,1,2],"time_taken_in_seconds":300}`, fiber.StatusOK},
		{"bad content id", "/content/not-an-id/quiz/submit", `{"answers":[0]}`, fiber.StatusBadRequest},
		{"no answers", "/content/" + id + "/quiz/submit", `{"answers":[]}`, fiber.StatusUnprocessableEntity},
		{"negative time", "/content/" + id + "/quiz/submit", `{"answers":[0],"time_taken_in_seconds":-5}`, fiber.StatusUnprocessableEntity},
		{"malformed body", "/content/" + id + "/quiz/submit", `{"answers":`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, postJSON(app, tt.url, tt.body))
		})
	}
}

func TestSubmitProjectValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/content/:content_id/project/submit", SubmitProject(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	id := primitive.NewObjectID().Hex()
	member := primitive.NewObjectID().Hex()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"repository only", `{"repository_url":"https://example.com/repo"}`, fiber.StatusOK},
		{"group submission", `{"file_url":"https://example.com/f.zip","group_members":["` + member + `"]}`, fiber.StatusOK},
		{"no artifact", `{"group_members":["` + member + `"]}`, fiber.StatusUnprocessableEntity},
		{"bad group member id", `{"live_demo_url":"https://example.com","group_members":["nope"]}`, fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, postJSON(app, "/content/"+id+"/project/submit", tt.body))
		})
	}
}

func TestMarkAttendanceValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/content/:content_id/session/attendance", MarkAttendance(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"joined only", `{"joined_at":"2026-03-10T14:00:00Z"}`, fiber.StatusOK},
		{"with leave time", `{"joined_at":"2026-03-10T14:00:00Z","left_at":"2026-03-10T15:30:00Z"}`, fiber.StatusOK},
		{"missing join time", `{"notes":"late"}`, fiber.StatusUnprocessableEntity},
		{"leave before join", `{"joined_at":"2026-03-10T14:00:00Z","left_at":"2026-03-10T13:00:00Z"}`, fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, postJSON(app, "/content/"+id+"/session/attendance", tt.body))
		})
	}
}
