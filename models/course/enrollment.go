package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment tracks a student's enrollment in a course with progress
type Enrollment struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	StudentID         primitive.ObjectID   `bson:"studentId" json:"student_id"`
	CourseID          primitive.ObjectID   `bson:"courseId" json:"course_id"`
	Status            string               `bson:"status" json:"status"` // ENROLLED, IN_PROGRESS, COMPLETED
	CompletedContents []primitive.ObjectID `bson:"completedContents" json:"completed_contents"`
	Progress          float64              `bson:"progress" json:"progress"` // completion percentage (0-100)
	TotalContents     int                  `bson:"totalContents" json:"total_contents"`
	EnrolledAt        time.Time            `bson:"enrolledAt" json:"enrolled_at"`
	CompletedAt       *time.Time           `bson:"completedAt,omitempty" json:"completed_at,omitempty"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updated_at"`
}
