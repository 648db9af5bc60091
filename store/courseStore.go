package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lms/database"
	models "lms/models/course"
	"lms/utils"
)

// CreateCourse inserts a new course document.
func CreateCourse(ctx context.Context, course *models.Course) error {
	now := time.Now()
	course.ID = primitive.NewObjectID()
	if course.ModulesIds == nil {
		course.ModulesIds = []primitive.ObjectID{}
	}
	course.CreatedAt = now
	course.UpdatedAt = now

	if _, err := database.Courses().InsertOne(ctx, course); err != nil {
		return Internal("failed to insert course", err)
	}
	return nil
}

// GetCourse returns one course document.
func GetCourse(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	err := database.Courses().FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("Course not found!")
	}
	if err != nil {
		return nil, Internal("failed to load course", err)
	}
	return &course, nil
}

// CoursePatch carries the updatable course fields.
type CoursePatch struct {
	Title        *string
	Description  *string
	Author       *string
	ThumbnailKey *string
	IsPublished  *bool
}

// UpdateCourse patches the course document.
func UpdateCourse(ctx context.Context, id primitive.ObjectID, patch *CoursePatch) (*models.Course, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	if patch.ThumbnailKey != nil {
		set["thumbnailKey"] = *patch.ThumbnailKey
	}
	if patch.IsPublished != nil {
		set["isPublished"] = *patch.IsPublished
	}

	var course models.Course
	err := database.Courses().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("Course not found!")
	}
	if err != nil {
		return nil, Internal("failed to update course", err)
	}
	return &course, nil
}

// AddModuleToCourse appends the module id to modulesIds with set semantics:
// adding an already-present id is a no-op, never a duplicate.
func AddModuleToCourse(ctx context.Context, courseID, moduleID primitive.ObjectID) error {
	module, err := GetModule(ctx, moduleID)
	if err != nil {
		return err
	}
	if module.CourseID != courseID {
		return BadRequest("Module belongs to a different course!")
	}

	res, err := database.Courses().UpdateOne(ctx,
		bson.M{"_id": courseID, "deleting": bson.M{"$ne": true}},
		bson.M{
			"$addToSet": bson.M{"modulesIds": moduleID},
			"$set":      bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return Internal("failed to append module to course", err)
	}
	if res.MatchedCount == 0 {
		return NotFound("Course not found!")
	}
	return nil
}

// RemoveModuleFromCourse pulls a single module id out of modulesIds.
func RemoveModuleFromCourse(ctx context.Context, courseID, moduleID primitive.ObjectID) error {
	return RemoveModulesFromCourse(ctx, courseID, []primitive.ObjectID{moduleID})
}

// RemoveModulesFromCourse pulls module ids out of modulesIds. Removing an
// absent id is a no-op.
func RemoveModulesFromCourse(ctx context.Context, courseID primitive.ObjectID, moduleIDs []primitive.ObjectID) error {
	if len(moduleIDs) == 0 {
		return nil
	}
	res, err := database.Courses().UpdateOne(ctx,
		bson.M{"_id": courseID},
		bson.M{
			"$pull": bson.M{"modulesIds": bson.M{"$in": moduleIDs}},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return Internal("failed to detach modules from course", err)
	}
	if res.MatchedCount == 0 {
		return NotFound("Course not found!")
	}
	return nil
}

// ReorderModules replaces modulesIds with newOrder after validating that
// newOrder is an exact permutation of the current set. Like ReorderContents,
// the write is filtered on the array value read in the same transaction and
// a concurrent change surfaces as a Conflict.
func ReorderModules(ctx context.Context, courseID primitive.ObjectID, newOrder []primitive.ObjectID) (*models.Course, error) {
	var course models.Course

	err := database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		err := database.Courses().FindOne(sc, bson.M{"_id": courseID}).Decode(&course)
		if err == mongo.ErrNoDocuments {
			return NotFound("Course not found!")
		}
		if err != nil {
			return Internal("failed to load course", err)
		}

		missing, unknown := diffOrder(course.ModulesIds, newOrder)
		if len(missing) > 0 || len(unknown) > 0 {
			return BadRequest(fmt.Sprintf(
				"Invalid module order! Missing ids: %v, unknown ids: %v",
				hexList(missing), hexList(unknown)))
		}

		now := time.Now()
		res, err := database.Courses().UpdateOne(sc,
			bson.M{"_id": courseID, "modulesIds": course.ModulesIds},
			bson.M{"$set": bson.M{"modulesIds": newOrder, "updatedAt": now}})
		if err != nil {
			return Internal("failed to reorder modules", err)
		}
		if res.MatchedCount == 0 {
			return Conflict("Module order changed concurrently. Please retry!")
		}

		course.ModulesIds = newOrder
		course.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourses is the top-level cascade: every module of every course (and
// so every content) goes, then course files, then the course documents and
// their enrollments. A failure at any course aborts the whole batch.
func DeleteCourses(ctx context.Context, courseIDs []primitive.ObjectID) error {
	if len(courseIDs) == 0 {
		return nil
	}

	return database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		cursor, err := database.Courses().Find(sc, bson.M{"_id": bson.M{"$in": courseIDs}})
		if err != nil {
			return Internal("failed to load courses", err)
		}
		var courses []models.Course
		if err := cursor.All(sc, &courses); err != nil {
			return Internal("failed to decode courses", err)
		}

		if len(courses) != len(courseIDs) {
			found := make(map[primitive.ObjectID]bool, len(courses))
			for _, course := range courses {
				found[course.ID] = true
			}
			var missing []string
			for _, id := range courseIDs {
				if !found[id] {
					missing = append(missing, id.Hex())
				}
			}
			return NotFound(fmt.Sprintf("Course not found: %v", missing))
		}

		if _, err := database.Courses().UpdateMany(sc,
			bson.M{"_id": bson.M{"$in": courseIDs}},
			bson.M{"$set": bson.M{"deleting": true}}); err != nil {
			return Internal("failed to mark courses for deletion", err)
		}

		for _, course := range courses {
			if err := deleteModulesTx(sc, course.ModulesIds); err != nil {
				return err
			}
			if course.ThumbnailKey != "" {
				if err := utils.DeleteFile(sc, course.ThumbnailKey); err != nil {
					return Internal("failed to delete course thumbnail", err)
				}
			}
		}

		if _, err := database.Enrollments().DeleteMany(sc, bson.M{"courseId": bson.M{"$in": courseIDs}}); err != nil {
			return Internal("failed to delete course enrollments", err)
		}
		if _, err := database.Courses().DeleteMany(sc, bson.M{"_id": bson.M{"$in": courseIDs}}); err != nil {
			return Internal("failed to delete courses", err)
		}
		return nil
	})
}

// GetWithOrderedHierarchy resolves modulesIds into module documents in
// canonical array order, and optionally each module's contents one level
// deeper. The underlying $in query gives no order guarantee, so both levels
// are re-sorted against the parent arrays.
func GetWithOrderedHierarchy(ctx context.Context, courseID primitive.ObjectID, includeContents bool) (*models.Course, error) {
	course, err := GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	cursor, err := database.Modules().Find(ctx, bson.M{"_id": bson.M{"$in": course.ModulesIds}})
	if err != nil {
		return nil, Internal("failed to load modules", err)
	}
	var modules []models.Module
	if err := cursor.All(ctx, &modules); err != nil {
		return nil, Internal("failed to decode modules", err)
	}

	byID := make(map[primitive.ObjectID]*models.Module, len(modules))
	for i := range modules {
		byID[modules[i].ID] = &modules[i]
	}

	ordered := make([]models.Module, 0, len(course.ModulesIds))
	for _, id := range course.ModulesIds {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, *m)
		}
	}

	if includeContents {
		cursor, err := database.Contents().Find(ctx, bson.M{"courseId": courseID})
		if err != nil {
			return nil, Internal("failed to load contents", err)
		}
		var contents []models.Content
		if err := cursor.All(ctx, &contents); err != nil {
			return nil, Internal("failed to decode contents", err)
		}

		contentByID := make(map[primitive.ObjectID]*models.Content, len(contents))
		for i := range contents {
			contents[i].Sanitize()
			contentByID[contents[i].ID] = &contents[i]
		}
		for i := range ordered {
			list := make([]models.Content, 0, len(ordered[i].ContentsIds))
			for _, id := range ordered[i].ContentsIds {
				if ct, ok := contentByID[id]; ok {
					list = append(list, *ct)
				}
			}
			ordered[i].Contents = list
		}
	}

	course.Modules = ordered
	return course, nil
}
