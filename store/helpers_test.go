package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ids(n int) []primitive.ObjectID {
	out := make([]primitive.ObjectID, n)
	for i := range out {
		out[i] = primitive.NewObjectID()
	}
	return out
}

func TestDiffOrder(t *testing.T) {
	current := ids(4)
	foreign := primitive.NewObjectID()

	tests := []struct {
		name        string
		proposed    []primitive.ObjectID
		wantMissing []primitive.ObjectID
		wantUnknown []primitive.ObjectID
	}{
		{
			name:     "exact permutation",
			proposed: []primitive.ObjectID{current[3], current[1], current[0], current[2]},
		},
		{
			name:     "identity",
			proposed: current,
		},
		{
			name:        "dropped id",
			proposed:    []primitive.ObjectID{current[0], current[1], current[2]},
			wantMissing: []primitive.ObjectID{current[3]},
		},
		{
			name:        "foreign id",
			proposed:    []primitive.ObjectID{current[0], current[1], current[2], current[3], foreign},
			wantUnknown: []primitive.ObjectID{foreign},
		},
		{
			name:        "duplicate counts as unknown",
			proposed:    []primitive.ObjectID{current[0], current[1], current[2], current[2]},
			wantMissing: []primitive.ObjectID{current[3]},
			wantUnknown: []primitive.ObjectID{current[2]},
		},
		{
			name:        "swap one id out",
			proposed:    []primitive.ObjectID{current[0], current[1], current[2], foreign},
			wantMissing: []primitive.ObjectID{current[3]},
			wantUnknown: []primitive.ObjectID{foreign},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing, unknown := diffOrder(current, tt.proposed)
			assert.Equal(t, tt.wantMissing, missing)
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestDiffOrderEmpty(t *testing.T) {
	missing, unknown := diffOrder(nil, nil)
	assert.Empty(t, missing)
	assert.Empty(t, unknown)
}
