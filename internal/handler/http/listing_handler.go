package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

type ListingHandler struct {
	listingUsecase usecasecontract.IListingUseCase
}

func NewListingHandler(listingUsecase usecasecontract.IListingUseCase) *ListingHandler {
	return &ListingHandler{listingUsecase: listingUsecase}
}

// ListListings serves the public index of verified listings.
func (h *ListingHandler) ListListings(c *gin.Context) {
	page, pageSize := pagination(c)
	listings, total, err := h.listingUsecase.ListListings(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, pageResponse(listings, total, page, pageSize))
}

// SearchListings matches ?q= against location and country.
func (h *ListingHandler) SearchListings(c *gin.Context) {
	page, pageSize := pagination(c)
	listings, total, err := h.listingUsecase.SearchListings(c.Request.Context(), c.Query("q"), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, pageResponse(listings, total, page, pageSize))
}

// ListOwnerListings returns every listing hosted by the user in the path.
func (h *ListingHandler) ListOwnerListings(c *gin.Context) {
	listings, err := h.listingUsecase.ListOwnerListings(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, listings)
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	details, err := h.listingUsecase.GetListing(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, details)
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req dto.ListingRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	listing, err := h.listingUsecase.CreateListing(c.Request.Context(), middleware.Actor(c), req.ToInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, listing)
}

func (h *ListingHandler) UpdateListing(c *gin.Context) {
	var req dto.UpdateListingRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	listing, err := h.listingUsecase.UpdateListing(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.ToUpdates())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, listing)
}

// DeleteListing removes the listing with its reviews and reservations.
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	result, err := h.listingUsecase.DeleteListing(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CascadeResponse{Message: "Listing deleted", Result: result})
}
