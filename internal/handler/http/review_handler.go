package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

type ReviewHandler struct {
	reviewUsecase usecasecontract.IReviewUseCase
}

func NewReviewHandler(reviewUsecase usecasecontract.IReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewUsecase.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if reviews == nil {
		reviews = []*entity.Review{}
	}
	SuccessHandler(c, http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.ReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	review, err := h.reviewUsecase.CreateReview(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	result, err := h.reviewUsecase.DeleteReview(c.Request.Context(), middleware.Actor(c), c.Param("reviewID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CascadeResponse{Message: "Review deleted", Result: result})
}
