package entity

import "time"

// Review is a guest's rating of a listing.
type Review struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	AuthorID  string    `bson:"author_id" json:"author_id"`
	ListingID string    `bson:"listing_id" json:"listing_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
