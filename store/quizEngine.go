package store

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lms/config"
	"lms/database"
	models "lms/models/course"
)

// QuizResult is the outcome of a graded quiz attempt.
type QuizResult struct {
	Score           float64             `json:"score"`
	CorrectAnswers  int                 `json:"correct_answers"`
	TotalQuestions  int                 `json:"total_questions"`
	AttemptNumber   int                 `json:"attempt_number"`
	AttemptsLeft    int                 `json:"attempts_left"`
	DetailedAnswers []models.QuizAnswer `json:"detailed_answers"`
}

// quizWindowError reports whether the quiz is open at now.
func quizWindowError(content *models.Content, now time.Time) error {
	if content.QuizStartDate != nil && now.Before(*content.QuizStartDate) {
		return BadRequest("Quiz has not started yet!")
	}
	if content.QuizEndDate != nil && now.After(*content.QuizEndDate) {
		return BadRequest("Quiz has ended!")
	}
	return nil
}

// checkAnswers verifies every question index has a selectable answer.
func checkAnswers(questions []models.Question, selected []int) error {
	if len(selected) != len(questions) {
		return BadRequest(fmt.Sprintf("Expected %d answers, got %d!", len(questions), len(selected)))
	}
	for i, s := range selected {
		if s < 0 || s >= len(questions[i].Options) {
			return BadRequest(fmt.Sprintf("Question %d has no matching answer!", i+1))
		}
	}
	return nil
}

// gradeQuiz snapshots each question alongside the selected option so later
// quiz edits never change historical grading.
func gradeQuiz(questions []models.Question, selected []int) ([]models.QuizAnswer, int) {
	answers := make([]models.QuizAnswer, len(questions))
	correct := 0
	for i, q := range questions {
		isCorrect := selected[i] == q.CorrectOption
		if isCorrect {
			correct++
		}
		answers[i] = models.QuizAnswer{
			Question:       q.Question,
			Options:        q.Options,
			CorrectOption:  q.CorrectOption,
			SelectedOption: selected[i],
			IsCorrect:      isCorrect,
		}
	}
	return answers, correct
}

// quizScore is round(correct/total*100) to two decimals.
func quizScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100
}

func attemptsTaken(content *models.Content, studentID primitive.ObjectID) int {
	taken := 0
	for _, sub := range content.QuizSubmissions {
		if sub.StudentID == studentID {
			taken++
		}
	}
	return taken
}

// SubmitQuiz grades one attempt inside a transaction. The append is a
// conditional write that only matches while no submission exists for
// (studentId, attemptNumber), so two racing submissions never both persist
// the same attempt number.
func SubmitQuiz(ctx context.Context, quizID, studentID primitive.ObjectID, selectedOptions []int, timeTakenInSeconds int) (*QuizResult, error) {
	var result *QuizResult
	var courseID primitive.ObjectID

	err := database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var content models.Content
		err := database.Contents().FindOne(sc, bson.M{"_id": quizID}).Decode(&content)
		if err == mongo.ErrNoDocuments {
			return NotFound("Quiz not found!")
		}
		if err != nil {
			return Internal("failed to load quiz", err)
		}
		if content.Type != models.ContentTypeQuiz {
			return BadRequest("Content is not a quiz!")
		}

		now := time.Now()
		if err := quizWindowError(&content, now); err != nil {
			return err
		}

		taken := attemptsTaken(&content, studentID)
		if content.MaxAttempts > 0 && taken >= content.MaxAttempts {
			return BadRequest("Maximum attempts reached!")
		}

		if content.QuizDurationInMinutes > 0 {
			limit := content.QuizDurationInMinutes*60 + config.AppConfig.QuizGraceSeconds
			if timeTakenInSeconds > limit {
				return BadRequest("Time limit exceeded!")
			}
		}

		if err := checkAnswers(content.Questions, selectedOptions); err != nil {
			return err
		}

		answers, correct := gradeQuiz(content.Questions, selectedOptions)
		submission := models.QuizSubmission{
			StudentID:          studentID,
			Answers:            answers,
			Score:              quizScore(correct, len(content.Questions)),
			AttemptNumber:      taken + 1,
			TimeTakenInSeconds: timeTakenInSeconds,
			SubmittedAt:        now,
		}

		res, err := database.Contents().UpdateOne(sc,
			bson.M{
				"_id": quizID,
				"quizSubmissions": bson.M{"$not": bson.M{"$elemMatch": bson.M{
					"studentId":     studentID,
					"attemptNumber": submission.AttemptNumber,
				}}},
			},
			bson.M{
				"$push": bson.M{"quizSubmissions": submission},
				"$set":  bson.M{"updatedAt": now},
			})
		if err != nil {
			return Internal("failed to record submission", err)
		}
		if res.MatchedCount == 0 {
			return Conflict("A concurrent submission recorded this attempt. Please retry!")
		}

		courseID = content.CourseID
		attemptsLeft := 0
		if content.MaxAttempts > 0 {
			attemptsLeft = content.MaxAttempts - submission.AttemptNumber
		}
		result = &QuizResult{
			Score:           submission.Score,
			CorrectAnswers:  correct,
			TotalQuestions:  len(content.Questions),
			AttemptNumber:   submission.AttemptNumber,
			AttemptsLeft:    attemptsLeft,
			DetailedAnswers: answers,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort, outside the submission transaction: progress tracking is
	// not atomic with grading.
	if err := ToggleContentComplete(ctx, courseID, studentID, quizID, true); err != nil {
		log.Printf("Failed to mark quiz %s complete for student %s: %v", quizID.Hex(), studentID.Hex(), err)
	}

	return result, nil
}

// GetAttemptsLeft is a pure read: max(0, maxAttempts - attemptsTaken).
func GetAttemptsLeft(ctx context.Context, quizID, studentID primitive.ObjectID) (int, error) {
	content, err := GetContent(ctx, quizID, true)
	if err != nil {
		return 0, err
	}
	if content.Type != models.ContentTypeQuiz {
		return 0, BadRequest("Content is not a quiz!")
	}
	left := content.MaxAttempts - attemptsTaken(content, studentID)
	if left < 0 {
		left = 0
	}
	return left, nil
}
