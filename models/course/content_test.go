package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidContentType(t *testing.T) {
	for _, ct := range []ContentType{
		ContentTypeVideo, ContentTypeArticle, ContentTypeQuiz,
		ContentTypeAssignment, ContentTypeProject, ContentTypeLiveSession,
	} {
		assert.True(t, ValidContentType(ct), string(ct))
	}

	assert.False(t, ValidContentType("PODCAST"))
	assert.False(t, ValidContentType(""))
	assert.False(t, ValidContentType("video"))
}

func TestSanitizeQuiz(t *testing.T) {
	c := Content{
		Type:            ContentTypeQuiz,
		Questions:       []Question{{Question: "q", Options: []string{"a", "b"}}},
		QuizSubmissions: []QuizSubmission{{StudentID: primitive.NewObjectID(), Score: 50}},
	}
	c.Sanitize()
	assert.Nil(t, c.QuizSubmissions)
	assert.Len(t, c.Questions, 1)
}

func TestSanitizeProject(t *testing.T) {
	c := Content{
		Type:        ContentTypeProject,
		Submissions: []ProjectSubmission{{StudentID: primitive.NewObjectID(), RepositoryURL: "https://example.com/repo"}},
	}
	c.Sanitize()
	assert.Nil(t, c.Submissions)
}

func TestSanitizeLiveSession(t *testing.T) {
	c := Content{
		Type:       ContentTypeLiveSession,
		MeetingURL: "https://example.com/meet",
		Attendance: []Attendance{{StudentID: primitive.NewObjectID(), JoinedAt: time.Now()}},
	}
	c.Sanitize()
	assert.Nil(t, c.Attendance)
	assert.Equal(t, "https://example.com/meet", c.MeetingURL)
}

func TestSanitizeLeavesOtherVariantsAlone(t *testing.T) {
	c := Content{Type: ContentTypeVideo, VideoURL: "https://example.com/v.mp4", DurationInSeconds: 120}
	c.Sanitize()
	assert.Equal(t, "https://example.com/v.mp4", c.VideoURL)
	assert.Equal(t, 120, c.DurationInSeconds)
}
