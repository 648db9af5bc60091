package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"lms/database"
)

func mockTest(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// useMockDatabase points the global handle at the mock client so the stores
// run their real command sequences against queued responses.
func useMockDatabase(mt *mtest.T) {
	database.Database = database.DbInstance{
		Client: mt.Client,
		Db:     mt.Client.Database("lms"),
	}
}

func startedCommandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

func successN(n int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: n},
	)
}

func TestReorderContentsConflict(t *testing.T) {
	mt := mockTest(t)

	mt.Run("concurrent array change returns conflict", func(mt *mtest.T) {
		useMockDatabase(mt)

		moduleID := primitive.NewObjectID()
		current := ids(2)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "lms.modules", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: moduleID},
				{Key: "courseId", Value: primitive.NewObjectID()},
				{Key: "title", Value: "Basics"},
				{Key: "contentsIds", Value: bson.A{current[0], current[1]}},
			}),
			// The guarded replace matches nothing: the array changed after
			// the read, as a concurrent content creation would cause.
			successN(0),
		)

		_, err := ReorderContents(context.Background(), moduleID, []primitive.ObjectID{current[1], current[0]})
		require.Error(mt.T, err)
		assert.Equal(mt.T, KindConflict, KindOf(err))
	})
}

func TestReorderContentsSuccess(t *testing.T) {
	mt := mockTest(t)

	mt.Run("valid permutation is written", func(mt *mtest.T) {
		useMockDatabase(mt)

		moduleID := primitive.NewObjectID()
		current := ids(3)
		newOrder := []primitive.ObjectID{current[2], current[0], current[1]}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "lms.modules", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: moduleID},
				{Key: "courseId", Value: primitive.NewObjectID()},
				{Key: "title", Value: "Basics"},
				{Key: "contentsIds", Value: bson.A{current[0], current[1], current[2]}},
			}),
			successN(1),
			mtest.CreateSuccessResponse(), // commitTransaction
		)

		module, err := ReorderContents(context.Background(), moduleID, newOrder)
		require.NoError(mt.T, err)
		assert.Equal(mt.T, newOrder, module.ContentsIds)
	})
}

func TestReorderModulesConflict(t *testing.T) {
	mt := mockTest(t)

	mt.Run("concurrent array change returns conflict", func(mt *mtest.T) {
		useMockDatabase(mt)

		courseID := primitive.NewObjectID()
		current := ids(2)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "lms.courses", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: courseID},
				{Key: "title", Value: "Go from scratch"},
				{Key: "modulesIds", Value: bson.A{current[0], current[1]}},
			}),
			successN(0),
		)

		_, err := ReorderModules(context.Background(), courseID, []primitive.ObjectID{current[1], current[0]})
		require.Error(mt.T, err)
		assert.Equal(mt.T, KindConflict, KindOf(err))
	})
}

func TestDeleteModulesCascade(t *testing.T) {
	mt := mockTest(t)

	mt.Run("module cascade deletes contents and detaches from course", func(mt *mtest.T) {
		useMockDatabase(mt)

		courseID := primitive.NewObjectID()
		moduleID := primitive.NewObjectID()
		contents := ids(2)

		mt.AddMockResponses(
			// load modules
			mtest.CreateCursorResponse(0, "lms.modules", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: moduleID},
				{Key: "courseId", Value: courseID},
				{Key: "title", Value: "Basics"},
				{Key: "contentsIds", Value: bson.A{contents[0], contents[1]}},
			}),
			// tombstone
			successN(1),
			// load contents
			mtest.CreateCursorResponse(0, "lms.contents", mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: contents[0]},
					{Key: "courseId", Value: courseID},
					{Key: "moduleId", Value: moduleID},
					{Key: "type", Value: "VIDEO"},
					{Key: "title", Value: "Intro"},
				},
				bson.D{
					{Key: "_id", Value: contents[1]},
					{Key: "courseId", Value: courseID},
					{Key: "moduleId", Value: moduleID},
					{Key: "type", Value: "ARTICLE"},
					{Key: "title", Value: "Setup"},
				},
			),
			// pull contents from module
			successN(1),
			// delete contents
			successN(2),
			// delete modules
			successN(1),
			// pull module id from course
			successN(1),
			// commitTransaction
			mtest.CreateSuccessResponse(),
		)

		err := DeleteModules(context.Background(), []primitive.ObjectID{moduleID})
		require.NoError(mt.T, err)

		// Both content documents go, then the module, then the course-side
		// detach, all before the commit.
		assert.Equal(mt.T, []string{
			"find", "update", "find", "update",
			"delete", "delete", "update", "commitTransaction",
		}, startedCommandNames(mt))
	})
}

func TestDeleteModulesMissingModule(t *testing.T) {
	mt := mockTest(t)

	mt.Run("unknown id aborts the batch", func(mt *mtest.T) {
		useMockDatabase(mt)

		known := primitive.NewObjectID()
		unknown := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "lms.modules", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: known},
				{Key: "courseId", Value: primitive.NewObjectID()},
				{Key: "title", Value: "Basics"},
				{Key: "contentsIds", Value: bson.A{}},
			}),
		)

		err := DeleteModules(context.Background(), []primitive.ObjectID{known, unknown})
		require.Error(mt.T, err)
		assert.Equal(mt.T, KindNotFound, KindOf(err))
		assert.Contains(mt.T, err.Error(), unknown.Hex())
	})
}
