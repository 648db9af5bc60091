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
)

// CreateModule inserts the module and appends its id to the owning course's
// modulesIds. Two-collection write, one transaction.
func CreateModule(ctx context.Context, module *models.Module) error {
	return database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var course models.Course
		err := database.Courses().FindOne(sc, bson.M{"_id": module.CourseID}).Decode(&course)
		if err == mongo.ErrNoDocuments {
			return NotFound("Course not found!")
		}
		if err != nil {
			return Internal("failed to load course", err)
		}

		now := time.Now()
		module.ID = primitive.NewObjectID()
		if module.ContentsIds == nil {
			module.ContentsIds = []primitive.ObjectID{}
		}
		module.CreatedAt = now
		module.UpdatedAt = now

		if _, err := database.Modules().InsertOne(sc, module); err != nil {
			return Internal("failed to insert module", err)
		}

		res, err := database.Courses().UpdateOne(sc,
			bson.M{"_id": course.ID, "deleting": bson.M{"$ne": true}},
			bson.M{
				"$push": bson.M{"modulesIds": module.ID},
				"$set":  bson.M{"updatedAt": now},
			})
		if err != nil {
			return Internal("failed to append module to course", err)
		}
		if res.MatchedCount == 0 {
			return NotFound("Course not found!")
		}
		return nil
	})
}

// GetModule returns one module document.
func GetModule(ctx context.Context, id primitive.ObjectID) (*models.Module, error) {
	var module models.Module
	err := database.Modules().FindOne(ctx, bson.M{"_id": id}).Decode(&module)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("Module not found!")
	}
	if err != nil {
		return nil, Internal("failed to load module", err)
	}
	return &module, nil
}

// UpdateModule patches title and description.
func UpdateModule(ctx context.Context, id primitive.ObjectID, title, description *string) (*models.Module, error) {
	set := bson.M{"updatedAt": time.Now()}
	if title != nil {
		set["title"] = *title
	}
	if description != nil {
		set["description"] = *description
	}

	var module models.Module
	err := database.Modules().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&module)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("Module not found!")
	}
	if err != nil {
		return nil, Internal("failed to update module", err)
	}
	return &module, nil
}

// ReorderContents replaces the module's contentsIds with newOrder after
// validating that newOrder is an exact permutation of the current set. No
// partial reorders, no silent drops. The replacement is filtered on the
// array value read in the same transaction, so a content created or removed
// between read and write surfaces as a Conflict instead of being erased.
func ReorderContents(ctx context.Context, moduleID primitive.ObjectID, newOrder []primitive.ObjectID) (*models.Module, error) {
	var module models.Module

	err := database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		err := database.Modules().FindOne(sc, bson.M{"_id": moduleID}).Decode(&module)
		if err == mongo.ErrNoDocuments {
			return NotFound("Module not found!")
		}
		if err != nil {
			return Internal("failed to load module", err)
		}

		missing, unknown := diffOrder(module.ContentsIds, newOrder)
		if len(missing) > 0 || len(unknown) > 0 {
			return BadRequest(fmt.Sprintf(
				"Invalid content order! Missing ids: %v, unknown ids: %v",
				hexList(missing), hexList(unknown)))
		}

		now := time.Now()
		res, err := database.Modules().UpdateOne(sc,
			bson.M{"_id": moduleID, "contentsIds": module.ContentsIds},
			bson.M{"$set": bson.M{"contentsIds": newOrder, "updatedAt": now}})
		if err != nil {
			return Internal("failed to reorder contents", err)
		}
		if res.MatchedCount == 0 {
			return Conflict("Content order changed concurrently. Please retry!")
		}

		module.ContentsIds = newOrder
		module.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// DeleteModules cascades: contents first, then the modules, then the module
// ids are pulled out of each owning course. One transaction for the batch.
func DeleteModules(ctx context.Context, moduleIDs []primitive.ObjectID) error {
	return database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		return deleteModulesTx(sc, moduleIDs)
	})
}

// deleteModulesTx runs the module cascade inside a caller-owned transaction
// so the course cascade can nest it.
func deleteModulesTx(sc mongo.SessionContext, moduleIDs []primitive.ObjectID) error {
	if len(moduleIDs) == 0 {
		return nil
	}

	cursor, err := database.Modules().Find(sc, bson.M{"_id": bson.M{"$in": moduleIDs}})
	if err != nil {
		return Internal("failed to load modules", err)
	}
	var modules []models.Module
	if err := cursor.All(sc, &modules); err != nil {
		return Internal("failed to decode modules", err)
	}

	if len(modules) != len(moduleIDs) {
		found := make(map[primitive.ObjectID]bool, len(modules))
		for _, m := range modules {
			found[m.ID] = true
		}
		var missing []string
		for _, id := range moduleIDs {
			if !found[id] {
				missing = append(missing, id.Hex())
			}
		}
		return NotFound(fmt.Sprintf("Module not found: %v", missing))
	}

	// Tombstone first: a concurrent create-content both fails its guarded
	// push and forces a write conflict with this transaction.
	if _, err := database.Modules().UpdateMany(sc,
		bson.M{"_id": bson.M{"$in": moduleIDs}},
		bson.M{"$set": bson.M{"deleting": true}}); err != nil {
		return Internal("failed to mark modules for deletion", err)
	}

	for _, module := range modules {
		if len(module.ContentsIds) == 0 {
			continue
		}
		if err := deleteContentsTx(sc, module.ContentsIds); err != nil {
			return err
		}
	}

	if _, err := database.Modules().DeleteMany(sc, bson.M{"_id": bson.M{"$in": moduleIDs}}); err != nil {
		return Internal("failed to delete modules", err)
	}

	byCourse := make(map[primitive.ObjectID][]primitive.ObjectID)
	for _, m := range modules {
		byCourse[m.CourseID] = append(byCourse[m.CourseID], m.ID)
	}
	for courseID, ids := range byCourse {
		if err := RemoveModulesFromCourse(sc, courseID, ids); err != nil {
			return err
		}
	}
	return nil
}

// RemoveContentsFromModule pulls content ids out of a module's ordering
// array. Removing an absent id is a no-op.
func RemoveContentsFromModule(ctx context.Context, moduleID primitive.ObjectID, contentIDs []primitive.ObjectID) error {
	return removeContentsFromModuleTx(ctx, moduleID, contentIDs)
}

func removeContentsFromModuleTx(ctx context.Context, moduleID primitive.ObjectID, contentIDs []primitive.ObjectID) error {
	if len(contentIDs) == 0 {
		return nil
	}
	_, err := database.Modules().UpdateOne(ctx,
		bson.M{"_id": moduleID},
		bson.M{
			"$pull": bson.M{"contentsIds": bson.M{"$in": contentIDs}},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return Internal("failed to detach contents from module", err)
	}
	return nil
}
