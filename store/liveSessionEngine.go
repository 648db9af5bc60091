package store

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lms/database"
	models "lms/models/course"
)

// AttendanceInput carries a mark-attendance request. Duration is never
// caller-supplied; it is computed from the timestamps.
type AttendanceInput struct {
	StudentID  primitive.ObjectID
	JoinedAt   time.Time
	LeftAt     *time.Time
	WasPresent bool
	Notes      string
}

// attendanceDuration computes whole minutes between joinedAt and leftAt.
func attendanceDuration(joinedAt time.Time, leftAt *time.Time) int {
	if leftAt == nil {
		return 0
	}
	return int(leftAt.Sub(joinedAt).Minutes())
}

// MarkAttendance records a student's attendance for a live session. A second
// call for the same student updates the existing record in place instead of
// appending a duplicate.
func MarkAttendance(ctx context.Context, sessionID primitive.ObjectID, input *AttendanceInput) (*models.Attendance, error) {
	if input.LeftAt != nil && input.LeftAt.Before(input.JoinedAt) {
		return nil, BadRequest("Leave time cannot precede join time!")
	}

	var record models.Attendance
	var courseID primitive.ObjectID

	err := database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var content models.Content
		err := database.Contents().FindOne(sc, bson.M{"_id": sessionID}).Decode(&content)
		if err == mongo.ErrNoDocuments {
			return NotFound("Live session not found!")
		}
		if err != nil {
			return Internal("failed to load live session", err)
		}
		if content.Type != models.ContentTypeLiveSession {
			return BadRequest("Content is not a live session!")
		}

		now := time.Now()
		if content.StartDate != nil && now.Before(*content.StartDate) {
			return BadRequest("Session has not started yet!")
		}

		courseID = content.CourseID
		record = models.Attendance{
			StudentID:         input.StudentID,
			JoinedAt:          input.JoinedAt,
			LeftAt:            input.LeftAt,
			DurationInMinutes: attendanceDuration(input.JoinedAt, input.LeftAt),
			WasPresent:        input.WasPresent,
			Notes:             input.Notes,
		}

		exists := false
		for _, att := range content.Attendance {
			if att.StudentID == input.StudentID {
				exists = true
				break
			}
		}

		if exists {
			res, err := database.Contents().UpdateOne(sc,
				bson.M{"_id": sessionID, "attendance.studentId": input.StudentID},
				bson.M{"$set": bson.M{
					"attendance.$": record,
					"updatedAt":    now,
				}})
			if err != nil {
				return Internal("failed to update attendance", err)
			}
			if res.MatchedCount == 0 {
				return Conflict("Attendance record changed concurrently. Please retry!")
			}
			return nil
		}

		// Guarded insert: only matches while no record exists for the
		// student, so concurrent first marks cannot both append.
		res, err := database.Contents().UpdateOne(sc,
			bson.M{
				"_id": sessionID,
				"attendance": bson.M{"$not": bson.M{"$elemMatch": bson.M{
					"studentId": input.StudentID,
				}}},
			},
			bson.M{
				"$push": bson.M{"attendance": record},
				"$set":  bson.M{"updatedAt": now},
			})
		if err != nil {
			return Internal("failed to record attendance", err)
		}
		if res.MatchedCount == 0 {
			return Conflict("Attendance was marked concurrently. Please retry!")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort, outside the attendance transaction.
	if record.WasPresent {
		if err := ToggleContentComplete(ctx, courseID, input.StudentID, sessionID, true); err != nil {
			log.Printf("Failed to mark session %s complete for student %s: %v", sessionID.Hex(), input.StudentID.Hex(), err)
		}
	}

	return &record, nil
}

// GetAttendance returns all attendance records, or only the given student's.
func GetAttendance(ctx context.Context, sessionID primitive.ObjectID, studentID *primitive.ObjectID) ([]models.Attendance, error) {
	content, err := GetContent(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}
	if content.Type != models.ContentTypeLiveSession {
		return nil, BadRequest("Content is not a live session!")
	}

	if studentID == nil {
		return content.Attendance, nil
	}
	var scoped []models.Attendance
	for _, att := range content.Attendance {
		if att.StudentID == *studentID {
			scoped = append(scoped, att)
		}
	}
	return scoped, nil
}
