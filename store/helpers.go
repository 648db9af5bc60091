package store

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findOneAndUpdateReturnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// diffOrder checks that proposed is an exact permutation of current. It
// returns the ids of current absent from proposed and the ids of proposed
// that are not in current (foreign ids and duplicates both end up in
// unknown). Both empty means the reorder is a bijection.
func diffOrder(current, proposed []primitive.ObjectID) (missing, unknown []primitive.ObjectID) {
	counts := make(map[primitive.ObjectID]int, len(current))
	for _, id := range current {
		counts[id]++
	}
	for _, id := range proposed {
		if counts[id] == 0 {
			unknown = append(unknown, id)
			continue
		}
		counts[id]--
	}
	for _, id := range current {
		if counts[id] > 0 {
			missing = append(missing, id)
			counts[id] = 0
		}
	}
	return missing, unknown
}

func hexList(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
