package entity

import "time"

// Default values applied to listings that omit them.
const (
	DefaultServiceFeePct  = 3.0
	DefaultLatitude       = 18.879702
	DefaultLongitude      = 72.140273
	DefaultBadgesCategory = "Standard"
)

// ListingCategories enumerates the accepted listing categories.
var ListingCategories = []string{"Rooms", "Hotels", "Entire Home", "Cabins", "Luxe"}

// Listing is a rentable place published by its owner.
type Listing struct {
	ID             string       `bson:"_id,omitempty" json:"id"`
	Title          string       `bson:"title" json:"title"`
	Description    string       `bson:"description" json:"description"`
	Price          int64        `bson:"price" json:"price"`
	Location       string       `bson:"location" json:"location"`
	Country        string       `bson:"country" json:"country"`
	Image          ListingImage `bson:"image" json:"image"`
	Lat            float64      `bson:"lat" json:"lat"`
	Lng            float64      `bson:"lng" json:"lng"`
	OwnerID        string       `bson:"owner_id" json:"owner_id"`
	Category       string       `bson:"category" json:"category"`
	BadgesCategory string       `bson:"badges_category" json:"badges_category"`
	CleaningFee    int64        `bson:"cleaning_fee" json:"cleaning_fee"`
	ServiceFeePct  float64      `bson:"service_fee_pct" json:"service_fee_pct"`
	Guests         int          `bson:"guests" json:"guests"`
	Amenities      Amenities    `bson:"amenities" json:"amenities"`
	IsVerified     bool         `bson:"is_verified" json:"is_verified"`
	ReviewIDs      []string     `bson:"reviews" json:"reviews"`
	ReservationIDs []string     `bson:"reservations" json:"reservations"`
	CreatedAt      time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `bson:"updated_at" json:"updated_at"`
}

type ListingImage struct {
	URL      string `bson:"url" json:"url"`
	Filename string `bson:"filename" json:"filename"`
}

// Amenities is the fixed set of boolean amenity flags a listing can advertise.
type Amenities struct {
	Wifi      bool `bson:"wifi" json:"wifi"`
	AC        bool `bson:"ac" json:"ac"`
	Kitchen   bool `bson:"kitchen" json:"kitchen"`
	Parking   bool `bson:"parking" json:"parking"`
	Pool      bool `bson:"pool" json:"pool"`
	Gym       bool `bson:"gym" json:"gym"`
	Workspace bool `bson:"workspace" json:"workspace"`
	Pets      bool `bson:"pets" json:"pets"`
	CCTV      bool `bson:"cctv" json:"cctv"`
}

// IsOwnedBy reports whether userID owns the listing.
func (l *Listing) IsOwnedBy(userID string) bool {
	return userID != "" && l.OwnerID == userID
}
