package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"lms/config"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Client *mongo.Client
	Db     *mongo.Database
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to MongoDB
func ConnectDb() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.DatabaseURL))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	Database = DbInstance{
		Client: client,
		Db:     client.Database(config.AppConfig.DBName),
	}
}

// Collection accessors. All writers go through these; no component caches documents.

func Courses() *mongo.Collection {
	return Database.Db.Collection("courses")
}

func Modules() *mongo.Collection {
	return Database.Db.Collection("modules")
}

func Contents() *mongo.Collection {
	return Database.Db.Collection("contents")
}

func Enrollments() *mongo.Collection {
	return Database.Db.Collection("enrollments")
}

// WithTransaction runs fn inside a single multi-document transaction. The
// session is closed on every exit path; an error or context cancellation
// aborts the transaction so no partial state is ever persisted.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := Database.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
