package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// NeedsStatus reports whether a raw product document should be touched by the
// status backfill. Any non-empty existing value is left alone, whatever it is.
func NeedsStatus(doc bson.M) bool {
	value, ok := doc["status"]
	if !ok || value == nil {
		return true
	}
	s, isString := value.(string)
	return isString && s == ""
}

// BackfillStatus sets status on every tenant product that lacks one. Running
// it again is a no-op for already-migrated records.
func (s *Store) BackfillStatus(ctx context.Context, status string) (updated, skipped int, err error) {
	cursor, err := s.products().Find(ctx, bson.M{"appId": s.appID})
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return updated, skipped, err
		}

		if !NeedsStatus(doc) {
			skipped++
			continue
		}

		_, err := s.products().UpdateOne(
			ctx,
			bson.M{"_id": doc["_id"]},
			bson.M{"$set": bson.M{"status": status}},
		)
		if err != nil {
			return updated, skipped, err
		}
		updated++
	}

	return updated, skipped, cursor.Err()
}
