package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentType discriminates which variant-specific fields of a Content
// document are meaningful.
type ContentType string

const (
	ContentTypeVideo       ContentType = "VIDEO"
	ContentTypeArticle     ContentType = "ARTICLE"
	ContentTypeQuiz        ContentType = "QUIZ"
	ContentTypeAssignment  ContentType = "ASSIGNMENT"
	ContentTypeProject     ContentType = "PROJECT"
	ContentTypeLiveSession ContentType = "LIVE_SESSION"
)

// ValidContentType reports whether t is one of the six known discriminators.
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentTypeVideo, ContentTypeArticle, ContentTypeQuiz,
		ContentTypeAssignment, ContentTypeProject, ContentTypeLiveSession:
		return true
	}
	return false
}

// Question is a quiz question. CorrectOption indexes into Options.
type Question struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectOption int      `bson:"correctOption" json:"correct_option"`
}

// QuizAnswer is the per-question snapshot captured at submission time, so a
// later edit of the quiz never retroactively changes historical grading.
type QuizAnswer struct {
	Question       string   `bson:"question" json:"question"`
	Options        []string `bson:"options" json:"options"`
	CorrectOption  int      `bson:"correctOption" json:"correct_option"`
	SelectedOption int      `bson:"selectedOption" json:"selected_option"`
	IsCorrect      bool     `bson:"isCorrect" json:"is_correct"`
}

// QuizSubmission is one graded attempt. (StudentID, AttemptNumber) is unique
// within a quiz and AttemptNumber never exceeds MaxAttempts.
type QuizSubmission struct {
	StudentID          primitive.ObjectID `bson:"studentId" json:"student_id"`
	Answers            []QuizAnswer       `bson:"answers" json:"answers"`
	Score              float64            `bson:"score" json:"score"`
	AttemptNumber      int                `bson:"attemptNumber" json:"attempt_number"`
	TimeTakenInSeconds int                `bson:"timeTakenInSeconds" json:"time_taken_in_seconds"`
	SubmittedAt        time.Time          `bson:"submittedAt" json:"submitted_at"`
}

// ProjectSubmission holds at most one entry per student. Score and Feedback
// are written later by grading.
type ProjectSubmission struct {
	StudentID     primitive.ObjectID   `bson:"studentId" json:"student_id"`
	FileURL       string               `bson:"fileUrl,omitempty" json:"file_url,omitempty"`
	RepositoryURL string               `bson:"repositoryUrl,omitempty" json:"repository_url,omitempty"`
	LiveDemoURL   string               `bson:"liveDemoUrl,omitempty" json:"live_demo_url,omitempty"`
	GroupMembers  []primitive.ObjectID `bson:"groupMembers,omitempty" json:"group_members,omitempty"`
	Score         *float64             `bson:"score,omitempty" json:"score,omitempty"`
	Feedback      string               `bson:"feedback,omitempty" json:"feedback,omitempty"`
	SubmittedAt   time.Time            `bson:"submittedAt" json:"submitted_at"`
	GradedAt      *time.Time           `bson:"gradedAt,omitempty" json:"graded_at,omitempty"`
}

// Attendance is one record per (session, student); marking again updates the
// record in place. DurationInMinutes is always computed from the timestamps.
type Attendance struct {
	StudentID         primitive.ObjectID `bson:"studentId" json:"student_id"`
	JoinedAt          time.Time          `bson:"joinedAt" json:"joined_at"`
	LeftAt            *time.Time         `bson:"leftAt,omitempty" json:"left_at,omitempty"`
	DurationInMinutes int                `bson:"durationInMinutes,omitempty" json:"duration_in_minutes,omitempty"`
	WasPresent        bool               `bson:"wasPresent" json:"was_present"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Content is a single document holding all six variants, distinguished by
// Type. Variant-specific fields are only meaningful when Type matches.
type Content struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"course_id"`
	ModuleID    primitive.ObjectID `bson:"moduleId" json:"module_id"`
	Type        ContentType        `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description"`
	FileKey     string             `bson:"fileKey,omitempty" json:"file_key,omitempty"`

	// VIDEO
	VideoURL          string `bson:"videoUrl,omitempty" json:"video_url,omitempty"`
	DurationInSeconds int    `bson:"durationInSeconds,omitempty" json:"duration_in_seconds,omitempty"`

	// ARTICLE
	Body string `bson:"body,omitempty" json:"body,omitempty"`

	// QUIZ
	Questions             []Question       `bson:"questions,omitempty" json:"questions,omitempty"`
	MaxAttempts           int              `bson:"maxAttempts,omitempty" json:"max_attempts,omitempty"`
	QuizStartDate         *time.Time       `bson:"quizStartDate,omitempty" json:"quiz_start_date,omitempty"`
	QuizEndDate           *time.Time       `bson:"quizEndDate,omitempty" json:"quiz_end_date,omitempty"`
	QuizDurationInMinutes int              `bson:"quizDurationInMinutes,omitempty" json:"quiz_duration_in_minutes,omitempty"`
	QuizSubmissions       []QuizSubmission `bson:"quizSubmissions,omitempty" json:"quiz_submissions,omitempty"`

	// ASSIGNMENT
	Instructions      string     `bson:"instructions,omitempty" json:"instructions,omitempty"`
	AssignmentDueDate *time.Time `bson:"assignmentDueDate,omitempty" json:"assignment_due_date,omitempty"`

	// PROJECT
	DueDate        *time.Time          `bson:"dueDate,omitempty" json:"due_date,omitempty"`
	IsGroupProject bool                `bson:"isGroupProject,omitempty" json:"is_group_project,omitempty"`
	MaxGroupSize   int                 `bson:"maxGroupSize,omitempty" json:"max_group_size,omitempty"`
	Submissions    []ProjectSubmission `bson:"submissions,omitempty" json:"submissions,omitempty"`

	// LIVE_SESSION
	StartDate  *time.Time   `bson:"startDate,omitempty" json:"start_date,omitempty"`
	EndDate    *time.Time   `bson:"endDate,omitempty" json:"end_date,omitempty"`
	MeetingURL string       `bson:"meetingUrl,omitempty" json:"meeting_url,omitempty"`
	Attendance []Attendance `bson:"attendance,omitempty" json:"attendance,omitempty"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Sanitize strips the sensitive sub-collection of the matching variant for
// non-privileged reads. This is a projection rule, not a security boundary.
func (ct *Content) Sanitize() {
	switch ct.Type {
	case ContentTypeQuiz:
		ct.QuizSubmissions = nil
	case ContentTypeProject:
		ct.Submissions = nil
	case ContentTypeLiveSession:
		ct.Attendance = nil
	}
}
