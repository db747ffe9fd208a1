package entity

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "Pending"
	ReservationStatusConfirmed ReservationStatus = "Confirmed"
	ReservationStatusCancelled ReservationStatus = "Cancelled"
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

// PriceBreakdown is the itemized result of pricing a stay. All amounts are whole currency units.
type PriceBreakdown struct {
	Nights      int64 `bson:"nights" json:"nights"`
	BasePrice   int64 `bson:"base_price" json:"base_price"`
	CleaningFee int64 `bson:"cleaning_fee" json:"cleaning_fee"`
	ServiceFee  int64 `bson:"service_fee" json:"service_fee"`
	Subtotal    int64 `bson:"subtotal" json:"subtotal"`
	Tax         int64 `bson:"tax" json:"tax"`
	Total       int64 `bson:"total" json:"total"`
}

// Reservation is a guest's booking of a listing for a date range.
type Reservation struct {
	ID         string            `bson:"_id,omitempty" json:"id"`
	CheckIn    time.Time         `bson:"check_in" json:"check_in"`
	CheckOut   time.Time         `bson:"check_out" json:"check_out"`
	Price      int64             `bson:"price" json:"price"`
	Breakdown  PriceBreakdown    `bson:"breakdown" json:"breakdown"`
	Adults     int               `bson:"adults" json:"adults"`
	Children   int               `bson:"children" json:"children"`
	Status     ReservationStatus `bson:"status" json:"status"`
	IsVerified bool              `bson:"is_verified" json:"is_verified"`
	GuestID    string            `bson:"guest_id" json:"guest_id"`
	ListingID  string            `bson:"listing_id" json:"listing_id"`
	CreatedAt  time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `bson:"updated_at" json:"updated_at"`
}

// IsLocked reports whether the reservation no longer accepts edits.
func (r *Reservation) IsLocked() bool {
	return r.Status == ReservationStatusCancelled
}
