package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	ColUsers        = "users"
	ColListings     = "listings"
	ColReviews      = "reviews"
	ColReservations = "reservations"
)

// NewMongoDBClient connects to MongoDB and verifies the connection with a ping.
func NewMongoDBClient(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// users
		{ColUsers, bson.D{{Key: "username", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		// listings
		{ColListings, bson.D{{Key: "owner_id", Value: 1}}, false},
		{ColListings, bson.D{{Key: "is_verified", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColListings, bson.D{{Key: "reviews", Value: 1}}, false},
		{ColListings, bson.D{{Key: "reservations", Value: 1}}, false},

		// reviews
		{ColReviews, bson.D{{Key: "listing_id", Value: 1}}, false},
		{ColReviews, bson.D{{Key: "author_id", Value: 1}}, false},

		// reservations
		{ColReservations, bson.D{{Key: "listing_id", Value: 1}}, false},
		{ColReservations, bson.D{{Key: "guest_id", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColReservations, bson.D{{Key: "status", Value: 1}}, false},
	}

	for _, ix := range indexes {
		model := mongo.IndexModel{Keys: ix.keys}
		if ix.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := db.Collection(ix.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", ix.col, err)
		}
	}
	return nil
}
