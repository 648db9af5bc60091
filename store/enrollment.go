package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lms/database"
	models "lms/models/course"
)

// EnrollStudent creates the enrollment record if none exists. Re-enrolling
// is a no-op.
func EnrollStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*models.Enrollment, error) {
	if _, err := GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	now := time.Now()
	filter := bson.M{"courseId": courseID, "studentId": studentID}
	update := bson.M{"$setOnInsert": models.Enrollment{
		ID:                primitive.NewObjectID(),
		StudentID:         studentID,
		CourseID:          courseID,
		Status:            "ENROLLED",
		CompletedContents: []primitive.ObjectID{},
		EnrolledAt:        now,
		UpdatedAt:         now,
	}}

	var enrollment models.Enrollment
	err := database.Enrollments().FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&enrollment)
	if err != nil {
		return nil, Internal("failed to enroll student", err)
	}
	return &enrollment, nil
}

// ToggleContentComplete marks a content as completed (or not) on the
// student's enrollment and recomputes the denormalized progress. Called
// best-effort after submissions; it is deliberately not part of any
// submission transaction.
func ToggleContentComplete(ctx context.Context, courseID, studentID, contentID primitive.ObjectID, completed bool) error {
	op := bson.M{"$addToSet": bson.M{"completedContents": contentID}}
	if !completed {
		op = bson.M{"$pull": bson.M{"completedContents": contentID}}
	}

	var enrollment models.Enrollment
	err := database.Enrollments().FindOneAndUpdate(ctx,
		bson.M{"courseId": courseID, "studentId": studentID},
		op,
		findOneAndUpdateReturnAfter(),
	).Decode(&enrollment)
	if err == mongo.ErrNoDocuments {
		return NotFound("Enrollment not found!")
	}
	if err != nil {
		return Internal("failed to update enrollment", err)
	}

	return recomputeProgress(ctx, &enrollment)
}

// recomputeProgress refreshes progress percentage and status from the
// completed set and the current content count of the course.
func recomputeProgress(ctx context.Context, enrollment *models.Enrollment) error {
	total, err := database.Contents().CountDocuments(ctx, bson.M{"courseId": enrollment.CourseID})
	if err != nil {
		return Internal("failed to count course contents", err)
	}

	progress := float64(0)
	if total > 0 {
		progress = float64(len(enrollment.CompletedContents)) / float64(total) * 100
	}

	now := time.Now()
	set := bson.M{
		"progress":      progress,
		"totalContents": int(total),
		"updatedAt":     now,
	}
	if progress >= 100 {
		set["status"] = "COMPLETED"
		set["completedAt"] = now
	} else if progress > 0 {
		set["status"] = "IN_PROGRESS"
	}

	if _, err := database.Enrollments().UpdateOne(ctx,
		bson.M{"_id": enrollment.ID},
		bson.M{"$set": set}); err != nil {
		return Internal("failed to update enrollment progress", err)
	}
	return nil
}
