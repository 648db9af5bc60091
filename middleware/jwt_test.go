package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/config"
)

func authApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTMiddleware, func(c *fiber.Ctx) error {
		userID := c.Locals("userId").(primitive.ObjectID)
		role, _ := c.Locals("role").(string)
		return c.JSON(fiber.Map{"user_id": userID.Hex(), "role": role})
	})
	app.Get("/admin", JWTMiddleware, AdminOnly, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func getWithToken(app *fiber.App, url, token string) int {
	req := httptest.NewRequest("GET", url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		return 0
	}
	return resp.StatusCode
}

func TestJWTMiddleware(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "testSecret"}
	app := authApp()

	userID := primitive.NewObjectID()
	token, err := GenerateJWT(userID, "Test Student", "STUDENT", "student@lms.local")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, getWithToken(app, "/me", token))
	assert.Equal(t, fiber.StatusUnauthorized, getWithToken(app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, getWithToken(app, "/me", "not-a-token"))

	// Tokens signed with a different key are rejected.
	config.AppConfig.JWTKey = "otherSecret"
	foreign, err := GenerateJWT(userID, "Test Student", "STUDENT", "student@lms.local")
	require.NoError(t, err)
	config.AppConfig.JWTKey = "testSecret"
	assert.Equal(t, fiber.StatusUnauthorized, getWithToken(app, "/me", foreign))
}

func TestAdminOnly(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "testSecret"}
	app := authApp()

	userID := primitive.NewObjectID()

	student, err := GenerateJWT(userID, "Test Student", "STUDENT", "student@lms.local")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, getWithToken(app, "/admin", student))

	admin, err := GenerateJWT(userID, "Test Admin", "ADMIN", "admin@lms.local")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, getWithToken(app, "/admin", admin))
}
