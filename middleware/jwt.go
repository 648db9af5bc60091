package middleware

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/config"
	"lms/store"
)

// GenerateJWT generates a JWT token carrying the caller's context
func GenerateJWT(userID primitive.ObjectID, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware validates the bearer token and stores the caller's id, role
// and email in the request context. Authorization decisions beyond a valid
// token happen before the stores are invoked and are trusted here.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	userHex, _ := claims["userId"].(string)
	userID, err := primitive.ObjectIDFromHex(userHex)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	c.Locals("userId", userID)
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}
	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}

	return c.Next()
}

// AdminOnly rejects callers whose token role is not ADMIN.
func AdminOnly(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role != "ADMIN" {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}
	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// ErrorResponse maps store error kinds to HTTP statuses.
func ErrorResponse(c *fiber.Ctx, err error) error {
	switch store.KindOf(err) {
	case store.KindNotFound:
		return JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case store.KindBadRequest:
		return JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case store.KindConflict:
		return JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	default:
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
