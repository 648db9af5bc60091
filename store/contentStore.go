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

// CreateContent inserts a content document and appends its id to the owning
// module's contentsIds, both in one transaction. The module must exist and
// must not be tombstoned by a concurrent cascade.
func CreateContent(ctx context.Context, content *models.Content) error {
	if !models.ValidContentType(content.Type) {
		return BadRequest(fmt.Sprintf("Unknown content type %q!", content.Type))
	}

	return database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var module models.Module
		err := database.Modules().FindOne(sc, bson.M{"_id": content.ModuleID}).Decode(&module)
		if err == mongo.ErrNoDocuments {
			return NotFound("Module not found!")
		}
		if err != nil {
			return Internal("failed to load module", err)
		}

		now := time.Now()
		content.ID = primitive.NewObjectID()
		content.CourseID = module.CourseID
		content.CreatedAt = now
		content.UpdatedAt = now

		if _, err := database.Contents().InsertOne(sc, content); err != nil {
			return Internal("failed to insert content", err)
		}

		// The push is conditional on the module not being mid-delete; both
		// sides of the delete-vs-add race write this document, so the
		// datastore aborts one of them on conflict.
		res, err := database.Modules().UpdateOne(sc,
			bson.M{"_id": module.ID, "deleting": bson.M{"$ne": true}},
			bson.M{
				"$push": bson.M{"contentsIds": content.ID},
				"$set":  bson.M{"updatedAt": now},
			})
		if err != nil {
			return Internal("failed to append content to module", err)
		}
		if res.MatchedCount == 0 {
			return NotFound("Module not found!")
		}
		return nil
	})
}

// GetContent returns one content document. Non-privileged reads have the
// variant's sensitive sub-collection stripped.
func GetContent(ctx context.Context, id primitive.ObjectID, privileged bool) (*models.Content, error) {
	var content models.Content
	err := database.Contents().FindOne(ctx, bson.M{"_id": id}).Decode(&content)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("Content not found!")
	}
	if err != nil {
		return nil, Internal("failed to load content", err)
	}
	if !privileged {
		content.Sanitize()
	}
	return &content, nil
}

// ContentPatch carries the updatable fields of every variant; the applier
// registered for the document's discriminator decides which ones count.
type ContentPatch struct {
	Title       *string
	Description *string

	VideoURL          *string
	DurationInSeconds *int

	Body *string

	Questions             []models.Question
	MaxAttempts           *int
	QuizStartDate         *time.Time
	QuizEndDate           *time.Time
	QuizDurationInMinutes *int

	Instructions      *string
	AssignmentDueDate *time.Time

	DueDate        *time.Time
	IsGroupProject *bool
	MaxGroupSize   *int

	StartDate  *time.Time
	EndDate    *time.Time
	MeetingURL *string
}

type patchApplier func(patch *ContentPatch, set bson.M)

// patchAppliers routes an update to the handler for the content's current
// discriminator. Changing the discriminator itself is not supported.
var patchAppliers = map[models.ContentType]patchApplier{
	models.ContentTypeVideo:       applyVideoPatch,
	models.ContentTypeArticle:     applyArticlePatch,
	models.ContentTypeQuiz:        applyQuizPatch,
	models.ContentTypeAssignment:  applyAssignmentPatch,
	models.ContentTypeProject:     applyProjectPatch,
	models.ContentTypeLiveSession: applyLiveSessionPatch,
}

func applyVideoPatch(patch *ContentPatch, set bson.M) {
	if patch.VideoURL != nil {
		set["videoUrl"] = *patch.VideoURL
	}
	if patch.DurationInSeconds != nil {
		set["durationInSeconds"] = *patch.DurationInSeconds
	}
}

func applyArticlePatch(patch *ContentPatch, set bson.M) {
	if patch.Body != nil {
		set["body"] = *patch.Body
	}
}

func applyQuizPatch(patch *ContentPatch, set bson.M) {
	if patch.Questions != nil {
		set["questions"] = patch.Questions
	}
	if patch.MaxAttempts != nil {
		set["maxAttempts"] = *patch.MaxAttempts
	}
	if patch.QuizStartDate != nil {
		set["quizStartDate"] = *patch.QuizStartDate
	}
	if patch.QuizEndDate != nil {
		set["quizEndDate"] = *patch.QuizEndDate
	}
	if patch.QuizDurationInMinutes != nil {
		set["quizDurationInMinutes"] = *patch.QuizDurationInMinutes
	}
}

func applyAssignmentPatch(patch *ContentPatch, set bson.M) {
	if patch.Instructions != nil {
		set["instructions"] = *patch.Instructions
	}
	if patch.AssignmentDueDate != nil {
		set["assignmentDueDate"] = *patch.AssignmentDueDate
	}
}

func applyProjectPatch(patch *ContentPatch, set bson.M) {
	if patch.DueDate != nil {
		set["dueDate"] = *patch.DueDate
	}
	if patch.IsGroupProject != nil {
		set["isGroupProject"] = *patch.IsGroupProject
	}
	if patch.MaxGroupSize != nil {
		set["maxGroupSize"] = *patch.MaxGroupSize
	}
}

func applyLiveSessionPatch(patch *ContentPatch, set bson.M) {
	if patch.StartDate != nil {
		set["startDate"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["endDate"] = *patch.EndDate
	}
	if patch.MeetingURL != nil {
		set["meetingUrl"] = *patch.MeetingURL
	}
}

// UpdateContent applies the patch fields valid for the document's current
// type and returns the sanitized updated document.
func UpdateContent(ctx context.Context, id primitive.ObjectID, patch *ContentPatch) (*models.Content, error) {
	var content models.Content
	err := database.Contents().FindOne(ctx, bson.M{"_id": id}).Decode(&content)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("Content not found!")
	}
	if err != nil {
		return nil, Internal("failed to load content", err)
	}

	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if apply, ok := patchAppliers[content.Type]; ok {
		apply(patch, set)
	}

	if err := database.Contents().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&content); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, NotFound("Content not found!")
		}
		return nil, Internal("failed to update content", err)
	}

	content.Sanitize()
	return &content, nil
}

// DeleteContents removes the documents, pulls their ids out of the owning
// modules and deletes any attached file, all as one unit of work.
func DeleteContents(ctx context.Context, ids []primitive.ObjectID) error {
	return database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		return deleteContentsTx(sc, ids)
	})
}

// deleteContentsTx is the composable half of DeleteContents; module and
// course cascades call it inside their own transaction.
func deleteContentsTx(sc mongo.SessionContext, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	cursor, err := database.Contents().Find(sc, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return Internal("failed to load contents", err)
	}
	var contents []models.Content
	if err := cursor.All(sc, &contents); err != nil {
		return Internal("failed to decode contents", err)
	}

	if len(contents) != len(ids) {
		found := make(map[primitive.ObjectID]bool, len(contents))
		for _, ct := range contents {
			found[ct.ID] = true
		}
		var missing []string
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id.Hex())
			}
		}
		return NotFound(fmt.Sprintf("Content not found: %v", missing))
	}

	// Pull the deleted ids out of each owning module. The subtraction keeps
	// the relative order of the surviving entries.
	byModule := make(map[primitive.ObjectID][]primitive.ObjectID)
	for _, ct := range contents {
		byModule[ct.ModuleID] = append(byModule[ct.ModuleID], ct.ID)
	}
	for moduleID, contentIDs := range byModule {
		if err := removeContentsFromModuleTx(sc, moduleID, contentIDs); err != nil {
			return err
		}
	}

	for _, ct := range contents {
		if ct.FileKey == "" {
			continue
		}
		if err := utils.DeleteFile(sc, ct.FileKey); err != nil {
			return Internal("failed to delete content file", err)
		}
	}

	if _, err := database.Contents().DeleteMany(sc, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return Internal("failed to delete contents", err)
	}
	return nil
}
