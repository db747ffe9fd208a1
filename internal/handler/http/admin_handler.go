package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// AdminHandler serves the admin dashboard. Routes are mounted behind RequireAdmin.
type AdminHandler struct {
	adminUsecase usecasecontract.IAdminUseCase
}

func NewAdminHandler(adminUsecase usecasecontract.IAdminUseCase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pagination(c)
	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, pageResponse(dto.ToUserResponses(users), total, page, pageSize))
}

func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	var req dto.UserStatusRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.adminUsecase.SetUserStatus(c.Request.Context(), middleware.Actor(c), c.Param("id"), entity.UserStatus(req.Status))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	var req dto.UserRoleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.adminUsecase.SetUserRole(c.Request.Context(), middleware.Actor(c), c.Param("id"), entity.UserRole(req.Role))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	result, err := h.adminUsecase.DeleteUser(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CascadeResponse{Message: "User deleted", Result: result})
}

func (h *AdminHandler) ListPendingListings(c *gin.Context) {
	page, pageSize := pagination(c)
	listings, total, err := h.adminUsecase.ListPendingListings(c.Request.Context(), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, pageResponse(listings, total, page, pageSize))
}

func (h *AdminHandler) SetListingVerification(c *gin.Context) {
	var req dto.ListingVerificationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	listing, err := h.adminUsecase.SetListingVerification(c.Request.Context(), c.Param("id"), *req.IsVerified)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, listing)
}

// ListReservations lists every reservation, optionally narrowed by ?status=, ?guest_id= and ?listing_id=.
func (h *AdminHandler) ListReservations(c *gin.Context) {
	page, pageSize := pagination(c)
	opts := &contract.ReservationFilterOptions{
		GuestID:   c.Query("guest_id"),
		ListingID: c.Query("listing_id"),
		Status:    entity.ReservationStatus(c.Query("status")),
		Page:      page,
		PageSize:  pageSize,
	}
	reservations, total, err := h.adminUsecase.ListReservations(c.Request.Context(), opts)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, pageResponse(reservations, total, page, pageSize))
}

func (h *AdminHandler) SetReservationStatus(c *gin.Context) {
	var req dto.ReservationStatusRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	reservation, err := h.adminUsecase.SetReservationStatus(c.Request.Context(), middleware.Actor(c), c.Param("id"), entity.ReservationStatus(req.Status))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, reservation)
}

func (h *AdminHandler) DeleteReservation(c *gin.Context) {
	result, err := h.adminUsecase.DeleteReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CascadeResponse{Message: "Reservation deleted", Result: result})
}

// Reconcile runs the orphan sweep.
func (h *AdminHandler) Reconcile(c *gin.Context) {
	result, err := h.adminUsecase.Reconcile(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CascadeResponse{Message: "Reconcile finished", Result: result})
}
