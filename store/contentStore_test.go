package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestDeleteContentsSubtractsFromModuleOrder(t *testing.T) {
	mt := mockTest(t)

	mt.Run("only the deleted ids are pulled", func(mt *mtest.T) {
		useMockDatabase(mt)

		courseID := primitive.NewObjectID()
		moduleID := primitive.NewObjectID()
		// Module order is [c1, c2, c3]; deleting [c1, c2] must leave [c3].
		contents := ids(3)
		toDelete := []primitive.ObjectID{contents[0], contents[1]}

		mt.AddMockResponses(
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
			successN(1),
			successN(2),
			mtest.CreateSuccessResponse(), // commitTransaction
		)

		err := DeleteContents(context.Background(), toDelete)
		require.NoError(mt.T, err)

		events := mt.GetAllStartedEvents()
		require.Len(mt.T, events, 4)
		assert.Equal(mt.T, "update", events[1].CommandName)

		// The detach is a targeted $pull of the deleted ids, never a whole
		// array replacement, so the surviving entries keep their order.
		var cmd struct {
			Updates []struct {
				Q bson.Raw `bson:"q"`
				U struct {
					Pull struct {
						ContentsIds struct {
							In []primitive.ObjectID `bson:"$in"`
						} `bson:"contentsIds"`
					} `bson:"$pull"`
				} `bson:"u"`
			} `bson:"updates"`
		}
		require.NoError(mt.T, bson.Unmarshal(events[1].Command, &cmd))
		require.Len(mt.T, cmd.Updates, 1)
		assert.Equal(mt.T, moduleID, cmd.Updates[0].Q.Lookup("_id").ObjectID())
		assert.ElementsMatch(mt.T, toDelete, cmd.Updates[0].U.Pull.ContentsIds.In)
	})
}

func TestDeleteContentsMissingContent(t *testing.T) {
	mt := mockTest(t)

	mt.Run("unknown id aborts the batch", func(mt *mtest.T) {
		useMockDatabase(mt)

		known := primitive.NewObjectID()
		unknown := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "lms.contents", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: known},
				{Key: "courseId", Value: primitive.NewObjectID()},
				{Key: "moduleId", Value: primitive.NewObjectID()},
				{Key: "type", Value: "VIDEO"},
				{Key: "title", Value: "Intro"},
			}),
		)

		err := DeleteContents(context.Background(), []primitive.ObjectID{known, unknown})
		require.Error(mt.T, err)
		assert.Equal(mt.T, KindNotFound, KindOf(err))
		assert.Contains(mt.T, err.Error(), unknown.Hex())
	})
}
