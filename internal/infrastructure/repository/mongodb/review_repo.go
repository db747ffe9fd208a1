package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/database"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

var _ contract.IReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(database.ColReviews)}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	_, err := r.collection.InsertOne(ctx, review)
	return mapError("failed to create review", err)
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, mapError(fmt.Sprintf("review %s", id), err)
	}
	return &review, nil
}

func (r *ReviewRepository) ListReviewsByListing(ctx context.Context, listingID string) ([]*entity.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"listing_id": listingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

func (r *ReviewRepository) FindReviewIDs(ctx context.Context, filter contract.DependentFilter) ([]string, error) {
	if filter.IsEmpty() {
		return nil, nil
	}
	values, err := r.collection.Distinct(ctx, "_id", dependentFilter("author_id", filter.UserIDs, filter.ListingIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to find dependent reviews: %w", err)
	}
	return stringValues(values), nil
}

func (r *ReviewRepository) DeleteReviewsByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, idsIn(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ReviewRepository) ExistingReviewIDs(ctx context.Context, ids []string) ([]string, error) {
	return existingIDs(ctx, r.collection, ids)
}

func (r *ReviewRepository) ReferencedListingIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.collection, "listing_id")
}

func (r *ReviewRepository) ReferencedAuthorIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.collection, "author_id")
}

func (r *ReviewRepository) CountReviews(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
