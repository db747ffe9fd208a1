package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

type ReservationHandler struct {
	reservationUsecase usecasecontract.IReservationUseCase
}

func NewReservationHandler(reservationUsecase usecasecontract.IReservationUseCase) *ReservationHandler {
	return &ReservationHandler{reservationUsecase: reservationUsecase}
}

// QuoteReservation prices a stay on the listing in the path without booking it.
func (h *ReservationHandler) QuoteReservation(c *gin.Context) {
	var req dto.QuoteRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		HandleError(c, err)
		return
	}
	breakdown, err := h.reservationUsecase.QuoteReservation(c.Request.Context(), c.Param("id"), checkIn, checkOut)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, breakdown)
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req dto.ReservationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		HandleError(c, err)
		return
	}
	reservation, err := h.reservationUsecase.CreateReservation(c.Request.Context(), middleware.Actor(c), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, reservation)
}

func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	page, pageSize := pagination(c)
	reservations, total, err := h.reservationUsecase.ListMyReservations(c.Request.Context(), middleware.Actor(c), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, pageResponse(reservations, total, page, pageSize))
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	reservation, err := h.reservationUsecase.GetReservation(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, reservation)
}

func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var req dto.UpdateReservationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	updates, err := req.ToUpdates()
	if err != nil {
		HandleError(c, err)
		return
	}
	reservation, err := h.reservationUsecase.UpdateReservation(c.Request.Context(), middleware.Actor(c), c.Param("id"), updates)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, reservation)
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	reservation, err := h.reservationUsecase.CancelReservation(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, reservation)
}
