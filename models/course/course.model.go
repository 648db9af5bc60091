package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course represents a learning course. ModulesIds is the canonical module
// order; every id in it must reference an existing module whose CourseID
// matches this course.
type Course struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrganizationID primitive.ObjectID   `bson:"organizationId,omitempty" json:"organization_id"`
	Title          string               `bson:"title" json:"title"`
	Description    string               `bson:"description,omitempty" json:"description"`
	Author         string               `bson:"author,omitempty" json:"author"`
	ThumbnailKey   string               `bson:"thumbnailKey,omitempty" json:"thumbnail_key,omitempty"`
	IsPublished    bool                 `bson:"isPublished" json:"is_published"`
	ModulesIds     []primitive.ObjectID `bson:"modulesIds" json:"modules_ids"`

	// Deleting is a tombstone set by the cascade as its first transactional
	// write, so a concurrent add-module cannot land on a dying course.
	Deleting bool `bson:"deleting,omitempty" json:"-"`

	// Denormalized aggregate stats, maintained by collaborators and the
	// stats scheduler, never by the hierarchy mutations themselves.
	EnrollmentCount int     `bson:"enrollmentCount" json:"enrollment_count"`
	ReviewCount     int     `bson:"reviewCount" json:"review_count"`
	AverageRating   float64 `bson:"averageRating" json:"average_rating"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`

	// Populated by the ordered-hierarchy read path only, never stored.
	Modules []Module `bson:"-" json:"modules,omitempty"`
}
