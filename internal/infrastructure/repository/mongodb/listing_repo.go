package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/database"
)

// ListingRepository represents the MongoDB implementation of contract.IListingRepository.
type ListingRepository struct {
	collection *mongo.Collection
}

var _ contract.IListingRepository = (*ListingRepository)(nil)

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection(database.ColListings)}
}

// buildListingFilter creates a BSON filter from ListingFilterOptions.
func buildListingFilter(opts *contract.ListingFilterOptions) bson.M {
	filter := bson.M{}
	if opts == nil {
		return filter
	}
	if opts.VerifiedOnly {
		filter["is_verified"] = true
	} else if opts.Unverified {
		filter["is_verified"] = false
	}
	if opts.OwnerID != "" {
		filter["owner_id"] = opts.OwnerID
	}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Query != "" {
		pattern := substringPattern(opts.Query)
		filter["$or"] = bson.A{
			bson.M{"location": pattern},
			bson.M{"country": pattern},
		}
	}
	return filter
}

func substringPattern(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
}

func (r *ListingRepository) CreateListing(ctx context.Context, listing *entity.Listing) error {
	if listing.ReviewIDs == nil {
		listing.ReviewIDs = []string{}
	}
	if listing.ReservationIDs == nil {
		listing.ReservationIDs = []string{}
	}
	_, err := r.collection.InsertOne(ctx, listing)
	return mapError("failed to create listing", err)
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id string) (*entity.Listing, error) {
	var listing entity.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing); err != nil {
		return nil, mapError(fmt.Sprintf("listing %s", id), err)
	}
	return &listing, nil
}

func (r *ListingRepository) ListListings(ctx context.Context, opts *contract.ListingFilterOptions) ([]*entity.Listing, int64, error) {
	filter := buildListingFilter(opts)
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}
	page, pageSize := 0, 0
	if opts != nil {
		page, pageSize = opts.Page, opts.PageSize
	}
	cursor, err := r.collection.Find(ctx, filter, pageOptions(page, pageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []*entity.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, total, nil
}

func (r *ListingRepository) UpdateListing(ctx context.Context, id string, updates map[string]interface{}) (*entity.Listing, error) {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var listing entity.Listing
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&listing)
	if err != nil {
		return nil, mapError(fmt.Sprintf("listing %s", id), err)
	}
	return &listing, nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

func (r *ListingRepository) DeleteListingsByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, idsIn(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to delete listings: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ListingRepository) ListingIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "_id", bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to find listings of %s: %w", ownerID, err)
	}
	return stringValues(values), nil
}

func (r *ListingRepository) ExistingListingIDs(ctx context.Context, ids []string) ([]string, error) {
	return existingIDs(ctx, r.collection, ids)
}

func (r *ListingRepository) CountListings(ctx context.Context, opts *contract.ListingFilterOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, buildListingFilter(opts))
}

func (r *ListingRepository) ReferencedOwnerIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.collection, "owner_id")
}

func (r *ListingRepository) ReferencedReviewIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.collection, "reviews")
}

func (r *ListingRepository) ReferencedReservationIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.collection, "reservations")
}

func (r *ListingRepository) AddReviewID(ctx context.Context, listingID, reviewID string) error {
	return r.addToSet(ctx, listingID, "reviews", reviewID)
}

func (r *ListingRepository) AddReservationID(ctx context.Context, listingID, reservationID string) error {
	return r.addToSet(ctx, listingID, "reservations", reservationID)
}

func (r *ListingRepository) addToSet(ctx context.Context, listingID, field, id string) error {
	update := bson.M{
		"$addToSet": bson.M{field: id},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": listingID}, update)
	if err != nil {
		return fmt.Errorf("failed to add %s to listing: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("listing %s: %w", listingID, entity.ErrNotFound)
	}
	return nil
}

func (r *ListingRepository) PullReviewIDs(ctx context.Context, reviewIDs []string) (int64, error) {
	return r.pull(ctx, "reviews", reviewIDs)
}

func (r *ListingRepository) PullReservationIDs(ctx context.Context, reservationIDs []string) (int64, error) {
	return r.pull(ctx, "reservations", reservationIDs)
}

func (r *ListingRepository) pull(ctx context.Context, field string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.M{field: bson.M{"$in": ids}}
	update := bson.M{"$pull": bson.M{field: bson.M{"$in": ids}}}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to pull %s from listings: %w", field, err)
	}
	return res.ModifiedCount, nil
}
