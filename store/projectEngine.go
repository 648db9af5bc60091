package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lms/database"
	models "lms/models/course"
)

// maxProjectPoints is the default grading ceiling.
const maxProjectPoints = 100

// SubmitProject records a student's project submission. At most one
// submission per student; the duplicate guard is the same conditional-write
// pattern as quiz attempts.
func SubmitProject(ctx context.Context, projectID primitive.ObjectID, submission *models.ProjectSubmission) error {
	var courseID primitive.ObjectID

	err := database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var content models.Content
		err := database.Contents().FindOne(sc, bson.M{"_id": projectID}).Decode(&content)
		if err == mongo.ErrNoDocuments {
			return NotFound("Project not found!")
		}
		if err != nil {
			return Internal("failed to load project", err)
		}
		if content.Type != models.ContentTypeProject {
			return BadRequest("Content is not a project!")
		}

		now := time.Now()
		if content.DueDate != nil && now.After(*content.DueDate) {
			return BadRequest("Project deadline has passed!")
		}

		if submission.FileURL == "" && submission.RepositoryURL == "" && submission.LiveDemoURL == "" {
			return BadRequest("Provide at least one of file, repository or live demo URL!")
		}

		if content.IsGroupProject {
			if len(submission.GroupMembers) == 0 {
				return BadRequest("Group projects require group members!")
			}
			if content.MaxGroupSize > 0 && len(submission.GroupMembers) > content.MaxGroupSize {
				return BadRequest(fmt.Sprintf("Group size exceeds the maximum of %d!", content.MaxGroupSize))
			}
		}

		for _, existing := range content.Submissions {
			if existing.StudentID == submission.StudentID {
				return BadRequest("You have already submitted this project!")
			}
		}

		submission.SubmittedAt = now
		res, err := database.Contents().UpdateOne(sc,
			bson.M{
				"_id": projectID,
				"submissions": bson.M{"$not": bson.M{"$elemMatch": bson.M{
					"studentId": submission.StudentID,
				}}},
			},
			bson.M{
				"$push": bson.M{"submissions": submission},
				"$set":  bson.M{"updatedAt": now},
			})
		if err != nil {
			return Internal("failed to record submission", err)
		}
		if res.MatchedCount == 0 {
			return Conflict("A concurrent submission was recorded for this student. Please retry!")
		}

		courseID = content.CourseID
		return nil
	})
	if err != nil {
		return err
	}

	// Best effort, outside the submission transaction.
	if err := ToggleContentComplete(ctx, courseID, submission.StudentID, projectID, true); err != nil {
		log.Printf("Failed to mark project %s complete for student %s: %v", projectID.Hex(), submission.StudentID.Hex(), err)
	}
	return nil
}

// GradeProject writes score and feedback onto the student's existing
// submission record in place.
func GradeProject(ctx context.Context, projectID, studentID primitive.ObjectID, score float64, feedback string) error {
	if score < 0 || score > maxProjectPoints {
		return BadRequest(fmt.Sprintf("Score must be between 0 and %d!", maxProjectPoints))
	}

	return database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var content models.Content
		err := database.Contents().FindOne(sc, bson.M{"_id": projectID}).Decode(&content)
		if err == mongo.ErrNoDocuments {
			return NotFound("Project not found!")
		}
		if err != nil {
			return Internal("failed to load project", err)
		}
		if content.Type != models.ContentTypeProject {
			return BadRequest("Content is not a project!")
		}

		now := time.Now()
		res, err := database.Contents().UpdateOne(sc,
			bson.M{"_id": projectID, "submissions.studentId": studentID},
			bson.M{"$set": bson.M{
				"submissions.$.score":    score,
				"submissions.$.feedback": feedback,
				"submissions.$.gradedAt": now,
				"updatedAt":              now,
			}})
		if err != nil {
			return Internal("failed to grade submission", err)
		}
		if res.MatchedCount == 0 {
			return NotFound("No submission found for this student!")
		}
		return nil
	})
}

// GetProjectSubmissions returns all submissions, or only the given student's.
func GetProjectSubmissions(ctx context.Context, projectID primitive.ObjectID, studentID *primitive.ObjectID) ([]models.ProjectSubmission, error) {
	content, err := GetContent(ctx, projectID, true)
	if err != nil {
		return nil, err
	}
	if content.Type != models.ContentTypeProject {
		return nil, BadRequest("Content is not a project!")
	}

	if studentID == nil {
		return content.Submissions, nil
	}
	var scoped []models.ProjectSubmission
	for _, sub := range content.Submissions {
		if sub.StudentID == *studentID {
			scoped = append(scoped, sub)
		}
	}
	return scoped, nil
}
