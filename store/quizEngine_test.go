package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"lms/config"
	models "lms/models/course"
)

func threeQuestionQuiz() []models.Question {
	return []models.Question{
		{Question: "What does CRUD stand for?", Options: []string{"Create Read Update Delete", "Copy Run Undo Drop"}, CorrectOption: 0},
		{Question: "Which verb is idempotent?", Options: []string{"POST", "PUT"}, CorrectOption: 1},
		{Question: "Default mongo port?", Options: []string{"5432", "6379", "27017"}, CorrectOption: 2},
	}
}

func TestGradeQuizPartialCredit(t *testing.T) {
	questions := threeQuestionQuiz()

	answers, correct := gradeQuiz(questions, []int{0, 1, 0})
	assert.Equal(t, 2, correct)
	assert.Len(t, answers, 3)

	assert.True(t, answers[0].IsCorrect)
	assert.True(t, answers[1].IsCorrect)
	assert.False(t, answers[2].IsCorrect)

	// Snapshot fields are copied so later quiz edits cannot rewrite history.
	assert.Equal(t, questions[2].Question, answers[2].Question)
	assert.Equal(t, questions[2].Options, answers[2].Options)
	assert.Equal(t, 2, answers[2].CorrectOption)
	assert.Equal(t, 0, answers[2].SelectedOption)

	assert.InDelta(t, 66.67, quizScore(correct, len(questions)), 0.0001)
}

func TestGradeQuizAllCorrect(t *testing.T) {
	questions := threeQuestionQuiz()
	_, correct := gradeQuiz(questions, []int{0, 1, 2})
	assert.Equal(t, 3, correct)
	assert.Equal(t, float64(100), quizScore(correct, len(questions)))
}

func TestQuizScore(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    float64
	}{
		{"zero questions", 0, 0, 0},
		{"none correct", 0, 5, 0},
		{"one third", 1, 3, 33.33},
		{"two thirds", 2, 3, 66.67},
		{"all correct", 7, 7, 100},
		{"one sixth", 1, 6, 16.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quizScore(tt.correct, tt.total))
		})
	}
}

func TestCheckAnswers(t *testing.T) {
	questions := threeQuestionQuiz()

	assert.NoError(t, checkAnswers(questions, []int{0, 0, 0}))

	err := checkAnswers(questions, []int{0, 1})
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.EqualError(t, err, "Expected 3 answers, got 2!")

	err = checkAnswers(questions, []int{0, 2, 0})
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.EqualError(t, err, "Question 2 has no matching answer!")

	err = checkAnswers(questions, []int{0, 1, -1})
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestQuizWindowError(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	open := &models.Content{QuizStartDate: &past, QuizEndDate: &future}
	assert.NoError(t, quizWindowError(open, now))

	unbounded := &models.Content{}
	assert.NoError(t, quizWindowError(unbounded, now))

	notStarted := &models.Content{QuizStartDate: &future}
	err := quizWindowError(notStarted, now)
	assert.EqualError(t, err, "Quiz has not started yet!")
	assert.Equal(t, KindBadRequest, KindOf(err))

	ended := &models.Content{QuizEndDate: &past}
	err = quizWindowError(ended, now)
	assert.EqualError(t, err, "Quiz has ended!")
}

func TestAttemptsTaken(t *testing.T) {
	student := primitive.NewObjectID()
	other := primitive.NewObjectID()
	content := &models.Content{QuizSubmissions: []models.QuizSubmission{
		{StudentID: student, AttemptNumber: 1},
		{StudentID: other, AttemptNumber: 1},
		{StudentID: student, AttemptNumber: 2},
	}}

	assert.Equal(t, 2, attemptsTaken(content, student))
	assert.Equal(t, 1, attemptsTaken(content, other))
	assert.Equal(t, 0, attemptsTaken(content, primitive.NewObjectID()))
}

func quizDoc(quizID, courseID primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: quizID},
		{Key: "courseId", Value: courseID},
		{Key: "moduleId", Value: primitive.NewObjectID()},
		{Key: "type", Value: "QUIZ"},
		{Key: "title", Value: "Checkpoint"},
		{Key: "maxAttempts", Value: 2},
		{Key: "questions", Value: bson.A{bson.D{
			{Key: "question", Value: "Default mongo port?"},
			{Key: "options", Value: bson.A{"27017", "5432"}},
			{Key: "correctOption", Value: 0},
		}}},
	}
}

func TestSubmitQuizRecordsAttempt(t *testing.T) {
	mt := mockTest(t)

	mt.Run("first attempt is graded and appended", func(mt *mtest.T) {
		useMockDatabase(mt)
		config.AppConfig = &config.Config{QuizGraceSeconds: 10}

		quizID := primitive.NewObjectID()
		courseID := primitive.NewObjectID()
		studentID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "lms.contents", mtest.FirstBatch, quizDoc(quizID, courseID)),
			successN(1),
			mtest.CreateSuccessResponse(), // commitTransaction
		)

		result, err := SubmitQuiz(context.Background(), quizID, studentID, []int{0}, 30)
		require.NoError(mt.T, err)
		assert.Equal(mt.T, float64(100), result.Score)
		assert.Equal(mt.T, 1, result.AttemptNumber)
		assert.Equal(mt.T, 1, result.AttemptsLeft)
		assert.Equal(mt.T, 1, result.CorrectAnswers)
	})
}

func TestSubmitQuizConcurrentAttempt(t *testing.T) {
	mt := mockTest(t)

	mt.Run("racing duplicate attempt number returns conflict", func(mt *mtest.T) {
		useMockDatabase(mt)
		config.AppConfig = &config.Config{QuizGraceSeconds: 10}

		quizID := primitive.NewObjectID()
		studentID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "lms.contents", mtest.FirstBatch, quizDoc(quizID, primitive.NewObjectID())),
			// The guarded append finds a submission already holding this
			// attempt number, as a racing submission would leave behind.
			successN(0),
		)

		_, err := SubmitQuiz(context.Background(), quizID, studentID, []int{0}, 30)
		require.Error(mt.T, err)
		assert.Equal(mt.T, KindConflict, KindOf(err))
	})
}
