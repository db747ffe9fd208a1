package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// mapError translates driver errors into domain error kinds.
func mapError(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", what, entity.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", what, entity.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// stringValues converts the result of a Distinct call.
func stringValues(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func idsIn(ids []string) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}

// dependentFilter matches documents tied to any of the users (by userField) or listings.
func dependentFilter(userField string, userIDs, listingIDs []string) bson.M {
	var or bson.A
	if len(userIDs) > 0 {
		or = append(or, bson.M{userField: bson.M{"$in": userIDs}})
	}
	if len(listingIDs) > 0 {
		or = append(or, bson.M{"listing_id": bson.M{"$in": listingIDs}})
	}
	return bson.M{"$or": or}
}

func pageOptions(page, pageSize int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * pageSize)).SetLimit(int64(pageSize))
	}
	return opts
}

// existingIDs returns the subset of ids present in the collection.
func existingIDs(ctx context.Context, coll *mongo.Collection, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	values, err := coll.Distinct(ctx, "_id", idsIn(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to look up ids in %s: %w", coll.Name(), err)
	}
	return stringValues(values), nil
}

// distinctStrings returns every distinct non-empty value of field.
func distinctStrings(ctx context.Context, coll *mongo.Collection, field string) ([]string, error) {
	values, err := coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s.%s: %w", coll.Name(), field, err)
	}
	return stringValues(values), nil
}
