package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Module represents a section within a course. ContentsIds is the canonical
// presentation order of the module's contents.
type Module struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CourseID    primitive.ObjectID   `bson:"courseId" json:"course_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description"`
	ContentsIds []primitive.ObjectID `bson:"contentsIds" json:"contents_ids"`

	// Tombstone, see Course.Deleting.
	Deleting bool `bson:"deleting,omitempty" json:"-"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`

	// Populated by the ordered-hierarchy read path only, never stored.
	Contents []Content `bson:"-" json:"contents,omitempty"`
}
