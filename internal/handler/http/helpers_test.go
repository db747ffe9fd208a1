package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: bad title", entity.ErrInvalidInput), http.StatusBadRequest},
		{entity.ErrInvalidDateRange, http.StatusBadRequest},
		{entity.ErrInvalidGuestCount, http.StatusBadRequest},
		{entity.ErrInvalidCredentials, http.StatusUnauthorized},
		{entity.ErrUnauthorized, http.StatusForbidden},
		{entity.ErrSelfDeletionForbidden, http.StatusForbidden},
		{fmt.Errorf("listing x: %w", entity.ErrNotFound), http.StatusNotFound},
		{entity.ErrConflict, http.StatusConflict},
		{entity.ErrListingUnavailable, http.StatusConflict},
		{fmt.Errorf("reservation r: %w", entity.ErrReservationLocked), http.StatusLocked},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			HandleError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "mongo")
				assert.Len(t, c.Errors, 1)
			}
		})
	}
}
