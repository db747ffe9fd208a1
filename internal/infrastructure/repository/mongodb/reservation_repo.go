package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/database"
)

type ReservationRepository struct {
	collection *mongo.Collection
}

var _ contract.IReservationRepository = (*ReservationRepository)(nil)

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{collection: db.Collection(database.ColReservations)}
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *entity.Reservation) error {
	_, err := r.collection.InsertOne(ctx, reservation)
	return mapError("failed to create reservation", err)
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id string) (*entity.Reservation, error) {
	var reservation entity.Reservation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation); err != nil {
		return nil, mapError(fmt.Sprintf("reservation %s", id), err)
	}
	return &reservation, nil
}

func (r *ReservationRepository) ListReservations(ctx context.Context, opts *contract.ReservationFilterOptions) ([]*entity.Reservation, int64, error) {
	if opts == nil {
		opts = &contract.ReservationFilterOptions{}
	}
	filter := bson.M{}
	if opts.GuestID != "" {
		filter["guest_id"] = opts.GuestID
	}
	if opts.ListingID != "" {
		filter["listing_id"] = opts.ListingID
	}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	cursor, err := r.collection.Find(ctx, filter, pageOptions(opts.Page, opts.PageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*entity.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, total, nil
}

// UpdateReservation only matches reservations that are not Cancelled, so a
// cancellation racing with an edit can never be overwritten.
func (r *ReservationRepository) UpdateReservation(ctx context.Context, id string, updates map[string]interface{}) (*entity.Reservation, error) {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	filter := bson.M{"_id": id, "status": bson.M{"$ne": entity.ReservationStatusCancelled}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var reservation entity.Reservation
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&reservation)
	if err == nil {
		return &reservation, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update reservation %s: %w", id, err)
	}
	if _, getErr := r.GetReservationByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("reservation %s: %w", id, entity.ErrReservationLocked)
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, id string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete reservation %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

func (r *ReservationRepository) FindReservationIDs(ctx context.Context, filter contract.DependentFilter) ([]string, error) {
	if filter.IsEmpty() {
		return nil, nil
	}
	values, err := r.collection.Distinct(ctx, "_id", dependentFilter("guest_id", filter.UserIDs, filter.ListingIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to find dependent reservations: %w", err)
	}
	return stringValues(values), nil
}

func (r *ReservationRepository) DeleteReservationsByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, idsIn(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to delete reservations: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ReservationRepository) ExistingReservationIDs(ctx context.Context, ids []string) ([]string, error) {
	return existingIDs(ctx, r.collection, ids)
}

func (r *ReservationRepository) ReferencedListingIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.collection, "listing_id")
}

func (r *ReservationRepository) ReferencedGuestIDs(ctx context.Context) ([]string, error) {
	return distinctStrings(ctx, r.collection, "guest_id")
}

func (r *ReservationRepository) CountReservations(ctx context.Context, status entity.ReservationStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.collection.CountDocuments(ctx, filter)
}
