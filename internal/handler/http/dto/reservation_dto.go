package dto

import (
	"fmt"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// DateLayout is the calendar date format accepted for check-in and check-out.
const DateLayout = "2006-01-02"

// QuoteRequest asks for the price of a stay without booking it.
type QuoteRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

func (r QuoteRequest) Dates() (time.Time, time.Time, error) {
	return parseStay(r.CheckIn, r.CheckOut)
}

// ReservationRequest books a listing. Prices are computed by the server.
type ReservationRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
	CheckIn   string `json:"check_in" binding:"required"`
	CheckOut  string `json:"check_out" binding:"required"`
	Adults    int    `json:"adults" binding:"required,gte=1"`
	Children  int    `json:"children" binding:"gte=0"`
}

func (r ReservationRequest) ToInput() (usecasecontract.ReservationInput, error) {
	checkIn, checkOut, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return usecasecontract.ReservationInput{}, err
	}
	return usecasecontract.ReservationInput{
		ListingID: r.ListingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Adults:    r.Adults,
		Children:  r.Children,
	}, nil
}

// UpdateReservationRequest changes dates or party size. Status and
// is_verified are dropped unless the caller is an admin.
type UpdateReservationRequest struct {
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Adults     *int    `json:"adults"`
	Children   *int    `json:"children"`
	Status     *string `json:"status" binding:"omitempty,reservationstatus"`
	IsVerified *bool   `json:"is_verified"`
}

func (r UpdateReservationRequest) ToUpdates() (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	if r.CheckIn != nil {
		t, err := parseDate(*r.CheckIn)
		if err != nil {
			return nil, err
		}
		updates["check_in"] = t
	}
	if r.CheckOut != nil {
		t, err := parseDate(*r.CheckOut)
		if err != nil {
			return nil, err
		}
		updates["check_out"] = t
	}
	if r.Adults != nil {
		updates["adults"] = *r.Adults
	}
	if r.Children != nil {
		updates["children"] = *r.Children
	}
	if r.Status != nil {
		updates["status"] = entity.ReservationStatus(*r.Status)
	}
	if r.IsVerified != nil {
		updates["is_verified"] = *r.IsVerified
	}
	return updates, nil
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dates must look like %s", entity.ErrInvalidInput, DateLayout)
	}
	return t, nil
}
