package main

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms/config"
	"lms/database"
	models "lms/models/course"
)

// Imports a course catalog from CourseCatalog.csv. Existing courses are
// matched by (organizationId, title) and updated; new ones are inserted.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	ctx := context.Background()
	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		orgID, err := primitive.ObjectIDFromHex(getField(row, headerIndex, "organizationId"))
		if err != nil {
			skipped++
			continue
		}

		now := time.Now()
		c := models.Course{
			OrganizationID: orgID,
			Title:          getField(row, headerIndex, "title"),
			Description:    getField(row, headerIndex, "description"),
			Author:         getField(row, headerIndex, "author"),
			ThumbnailKey:   getField(row, headerIndex, "thumbnailKey"),
			IsPublished:    strings.EqualFold(getField(row, headerIndex, "isPublished"), "true"),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if c.Title == "" {
			skipped++
			continue
		}

		filter := bson.M{"organizationId": c.OrganizationID, "title": c.Title}
		var existing models.Course
		err = database.Courses().FindOne(ctx, filter).Decode(&existing)

		if err != nil {
			c.ModulesIds = []primitive.ObjectID{}
			if _, err := database.Courses().InsertOne(ctx, c); err != nil {
				log.Printf("Error inserting course %q: %v", c.Title, err)
				continue
			}
			inserted++
		} else {
			update := bson.M{"$set": bson.M{
				"description":  c.Description,
				"author":       c.Author,
				"thumbnailKey": c.ThumbnailKey,
				"isPublished":  c.IsPublished,
				"updatedAt":    now,
			}}
			if _, err := database.Courses().UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
				log.Printf("Error updating course %q: %v", c.Title, err)
				continue
			}
			updated++
		}
	}

	log.Printf("Import complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
