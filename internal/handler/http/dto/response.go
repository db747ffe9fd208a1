package dto

import (
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// UserResponse is the DTO for a user.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// LoginResponse is the DTO for a successful login. The token is also set as the session cookie.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	SessionToken string       `json:"session_token"`
}

// ProfileResponse is a user with the listings they host and the stays they booked.
type ProfileResponse struct {
	User         UserResponse          `json:"user"`
	Listings     []*entity.Listing     `json:"listings"`
	Reservations []*entity.Reservation `json:"reservations"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Location:  user.Location,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(*u))
	}
	return out
}

func ToProfileResponse(p *usecasecontract.UserProfile) ProfileResponse {
	resp := ProfileResponse{
		User:         ToUserResponse(*p.User),
		Listings:     p.Listings,
		Reservations: p.Reservations,
	}
	if resp.Listings == nil {
		resp.Listings = []*entity.Listing{}
	}
	if resp.Reservations == nil {
		resp.Reservations = []*entity.Reservation{}
	}
	return resp
}

// PageResponse wraps one page of a collection.
type PageResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CascadeResponse reports what a delete removed.
type CascadeResponse struct {
	Message string                `json:"message"`
	Result  *entity.CascadeResult `json:"result,omitempty"`
}
