package dto

import (
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

type ListingImageRequest struct {
	URL      string `json:"url" binding:"omitempty,url"`
	Filename string `json:"filename"`
}

// ListingRequest is the payload for creating a listing.
type ListingRequest struct {
	Title          string              `json:"title" binding:"required"`
	Description    string              `json:"description" binding:"required"`
	Price          int64               `json:"price" binding:"required,gt=0"`
	Location       string              `json:"location" binding:"required"`
	Country        string              `json:"country" binding:"required"`
	Image          ListingImageRequest `json:"image"`
	Lat            *float64            `json:"lat" binding:"omitempty,latitude"`
	Lng            *float64            `json:"lng" binding:"omitempty,longitude"`
	Category       string              `json:"category" binding:"required,category"`
	BadgesCategory string              `json:"badges_category"`
	CleaningFee    *int64              `json:"cleaning_fee" binding:"omitempty,gte=0"`
	ServiceFeePct  *float64            `json:"service_fee_pct" binding:"omitempty,gte=0,lte=100"`
	Guests         int                 `json:"guests" binding:"required,gte=1"`
	Amenities      entity.Amenities    `json:"amenities"`
}

func (r ListingRequest) ToInput() usecasecontract.ListingInput {
	return usecasecontract.ListingInput{
		Title:          r.Title,
		Description:    r.Description,
		Price:          r.Price,
		Location:       r.Location,
		Country:        r.Country,
		Image:          entity.ListingImage{URL: r.Image.URL, Filename: r.Image.Filename},
		Lat:            r.Lat,
		Lng:            r.Lng,
		Category:       r.Category,
		BadgesCategory: r.BadgesCategory,
		CleaningFee:    r.CleaningFee,
		ServiceFeePct:  r.ServiceFeePct,
		Guests:         r.Guests,
		Amenities:      r.Amenities,
	}
}

// UpdateListingRequest edits a listing. Nil fields are left alone; is_verified
// is dropped unless the caller is an admin.
type UpdateListingRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Price          *int64               `json:"price" binding:"omitempty,gt=0"`
	Location       *string              `json:"location"`
	Country        *string              `json:"country"`
	Image          *ListingImageRequest `json:"image"`
	Lat            *float64             `json:"lat" binding:"omitempty,latitude"`
	Lng            *float64             `json:"lng" binding:"omitempty,longitude"`
	Category       *string              `json:"category" binding:"omitempty,category"`
	BadgesCategory *string              `json:"badges_category"`
	CleaningFee    *int64               `json:"cleaning_fee" binding:"omitempty,gte=0"`
	ServiceFeePct  *float64             `json:"service_fee_pct" binding:"omitempty,gte=0,lte=100"`
	Guests         *int                 `json:"guests" binding:"omitempty,gte=1"`
	Amenities      *entity.Amenities    `json:"amenities"`
	IsVerified     *bool                `json:"is_verified"`
}

func (r UpdateListingRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.Country != nil {
		updates["country"] = *r.Country
	}
	if r.Image != nil {
		updates["image"] = entity.ListingImage{URL: r.Image.URL, Filename: r.Image.Filename}
	}
	if r.Lat != nil {
		updates["lat"] = *r.Lat
	}
	if r.Lng != nil {
		updates["lng"] = *r.Lng
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.BadgesCategory != nil {
		updates["badges_category"] = *r.BadgesCategory
	}
	if r.CleaningFee != nil {
		updates["cleaning_fee"] = *r.CleaningFee
	}
	if r.ServiceFeePct != nil {
		updates["service_fee_pct"] = *r.ServiceFeePct
	}
	if r.Guests != nil {
		updates["guests"] = *r.Guests
	}
	if r.Amenities != nil {
		updates["amenities"] = *r.Amenities
	}
	if r.IsVerified != nil {
		updates["is_verified"] = *r.IsVerified
	}
	return updates
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}
