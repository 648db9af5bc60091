package courseValidator

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/middleware"
)

// parseIDParam parses a path parameter into an ObjectID and stores it in the
// request context under localKey.
func parseIDParam(c *fiber.Ctx, param, localKey string) error {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}
	c.Locals(localKey, id)
	return nil
}

// parseIDList converts a list of hex ids, collecting offenders into errs.
func parseIDList(raw []string, field string, errs map[string]string) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, h := range raw {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			errs[field] = "Invalid id: " + h
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
