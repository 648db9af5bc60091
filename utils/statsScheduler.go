package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"

	"lms/config"
	"lms/database"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[STATS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartStatsScheduler refreshes the denormalized course counters on the
// configured cron spec. The hierarchy mutations never touch these fields.
func StartStatsScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc(config.AppConfig.StatsCron, RefreshCourseStats); err != nil {
		log.Fatalf("Invalid STATS_CRON %q: %v", config.AppConfig.StatsCron, err)
	}
	c.Start()
	logScheduler("started with spec " + config.AppConfig.StatsCron)
	return c
}

// RefreshCourseStats recounts enrollments per course and writes the counter
// back onto the course documents.
func RefreshCourseStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cursor, err := database.Enrollments().Aggregate(ctx, bson.A{
		bson.M{"$group": bson.M{"_id": "$courseId", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		logScheduler("failed to aggregate enrollments: " + err.Error())
		return
	}

	var rows []struct {
		CourseID interface{} `bson:"_id"`
		Count    int         `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		logScheduler("failed to decode enrollment counts: " + err.Error())
		return
	}

	updated := 0
	for _, row := range rows {
		res, err := database.Courses().UpdateOne(ctx,
			bson.M{"_id": row.CourseID},
			bson.M{"$set": bson.M{"enrollmentCount": row.Count}})
		if err != nil {
			logScheduler("failed to update course stats: " + err.Error())
			continue
		}
		updated += int(res.ModifiedCount)
	}
	logScheduler(fmt.Sprintf("refreshed enrollment counts for %d courses", updated))
}
