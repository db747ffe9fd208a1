package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
)

const errInternalServer = "internal server error"

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidDateRange),
		errors.Is(err, entity.ErrInvalidPricing),
		errors.Is(err, entity.ErrInvalidGuestCount):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrUserBlocked),
		errors.Is(err, entity.ErrSelfDeletionForbidden),
		errors.Is(err, entity.ErrSelfModification):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict),
		errors.Is(err, entity.ErrListingUnavailable):
		return http.StatusConflict
	case errors.Is(err, entity.ErrReservationLocked):
		return http.StatusLocked
	}
	return http.StatusInternalServerError
}

// HandleError renders err with the status of its kind. Unknown errors are
// attached to the context for the request logger and hidden from the client.
func HandleError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		ErrorHandler(c, status, errInternalServer)
		return
	}
	ErrorHandler(c, status, err.Error())
}

// pagination reads ?page= and ?page_size=. Bad values fall back to the usecase defaults.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	return page, pageSize
}

func pageResponse(items interface{}, total int64, page, pageSize int) dto.PageResponse {
	return dto.PageResponse{Items: items, Total: total, Page: page, PageSize: pageSize}
}
