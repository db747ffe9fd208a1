package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	handler "github.com/mikiasgoitom/airhost/internal/handler/http"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/jwt"
	passwordservice "github.com/mikiasgoitom/airhost/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/airhost/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/repository/memory"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/validator"
	"github.com/mikiasgoitom/airhost/internal/usecase"
)

type quietLogger struct{}

func (quietLogger) Debugf(string, ...interface{})   {}
func (quietLogger) Infof(string, ...interface{})    {}
func (quietLogger) Warnf(string, ...interface{})    {}
func (quietLogger) Warningf(string, ...interface{}) {}
func (quietLogger) Errorf(string, ...interface{})   {}
func (quietLogger) Fatalf(string, ...interface{})   {}

type app struct {
	engine *gin.Engine
	users  *memory.UserRepository
	hasher *passwordservice.Hasher
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	listings := memory.NewListingRepository(store)
	reviews := memory.NewReviewRepository(store)
	reservations := memory.NewReservationRepository(store)

	log := quietLogger{}
	ids := uuidgen.NewGenerator()
	hasher := passwordservice.NewHasherWithCost(4)
	jwtService := jwt.NewJWTService(jwt.NewJWTManager("integration-secret", time.Hour))

	cascade := usecase.NewCascadeUsecase(users, listings, reviews, reservations)
	userUC := usecase.NewUserUsecase(users, listings, reservations, hasher, jwtService, log, validator.NewValidator(), ids, randomgenerator.NewRandomGenerator())
	listingUC := usecase.NewListingUsecase(listings, reviews, cascade, ids, log)
	reviewUC := usecase.NewReviewUsecase(reviews, listings, cascade, ids, log)
	reservationUC := usecase.NewReservationUsecase(reservations, listings, cascade, ids, log)
	adminUC := usecase.NewAdminUsecase(users, listings, reviews, reservations, cascade, log)

	router := handler.NewRouter(userUC, listingUC, reviewUC, reservationUC, adminUC, handler.RouterConfig{
		BaseURL:        "http://localhost:8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		SessionTTL:     time.Hour,
	}, log)
	engine := gin.New()
	router.SetupRoutes(engine)
	return &app{engine: engine, users: users, hasher: hasher}
}

// signUp registers a user and returns its id and session cookie.
func (a *app) signUp(t *testing.T, username string) (string, *http.Cookie) {
	t.Helper()
	w := doJSON(a.engine, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username, "email": username + "@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, w, &resp)
	return resp.User.ID, sessionCookie(w)
}

func (a *app) signInAdmin(t *testing.T) (string, *http.Cookie) {
	t.Helper()
	hash, err := a.hasher.HashPassword("admin-pass")
	require.NoError(t, err)
	admin := &entity.User{
		ID: "admin-id", Username: "root", Email: "root@example.com", PasswordHash: hash,
		Role: entity.UserRoleAdmin, Status: entity.UserStatusActive,
	}
	require.NoError(t, a.users.CreateUser(context.Background(), admin))

	w := doJSON(a.engine, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "root", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return admin.ID, sessionCookie(w)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestRouter_BookingLifecycle(t *testing.T) {
	a := newApp(t)
	hostID, host := a.signUp(t, "hosty")
	guestID, guest := a.signUp(t, "traveller")
	_, admin := a.signInAdmin(t)

	w := doJSON(a.engine, http.MethodPost, "/api/v1/listings", map[string]interface{}{
		"title": "Pine cabin", "description": "Quiet cabin above the valley", "price": 1000,
		"location": "Manali", "country": "India", "category": "Cabins", "cleaning_fee": 200, "guests": 4,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/listings", map[string]interface{}{
		"title": "Pine cabin", "description": "Quiet cabin above the valley", "price": 1000,
		"location": "Manali", "country": "India", "category": "Cabins", "cleaning_fee": 200, "guests": 4,
		"is_verified": true,
	}, host)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var listing entity.Listing
	decode(t, w, &listing)
	assert.Equal(t, hostID, listing.OwnerID)
	assert.False(t, listing.IsVerified)

	w = doJSON(a.engine, http.MethodGet, "/api/v1/listings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)

	stay := map[string]string{"check_in": "2030-03-01", "check_out": "2030-03-04"}
	w = doJSON(a.engine, http.MethodPost, "/api/v1/listings/"+listing.ID+"/quote", stay)
	assert.Equal(t, http.StatusConflict, w.Code, "unverified listings cannot be booked")

	w = doJSON(a.engine, http.MethodPut, "/api/v1/admin/listings/"+listing.ID+"/verification", map[string]bool{"is_verified": true}, guest)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(a.engine, http.MethodPut, "/api/v1/admin/listings/"+listing.ID+"/verification", map[string]bool{"is_verified": true}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(a.engine, http.MethodGet, "/api/v1/listings/search?q=india", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/listings/"+listing.ID+"/quote", stay)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var quote entity.PriceBreakdown
	decode(t, w, &quote)
	assert.Equal(t, int64(3882), quote.Total)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/reservations", map[string]interface{}{
		"listing_id": listing.ID, "check_in": "2030-03-01", "check_out": "2030-03-04",
		"adults": 2, "price": 1,
	}, guest)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reservation entity.Reservation
	decode(t, w, &reservation)
	assert.Equal(t, int64(3882), reservation.Price, "client prices are ignored")
	assert.Equal(t, guestID, reservation.GuestID)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/reservations", map[string]interface{}{
		"listing_id": listing.ID, "check_in": "2030-03-04", "check_out": "2030-03-01", "adults": 1,
	}, guest)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/reservations", map[string]interface{}{
		"listing_id": listing.ID, "check_in": "03/01/2030", "check_out": "2030-03-04", "adults": 1,
	}, guest)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/reservations/"+reservation.ID+"/cancel", nil, host)
	assert.Equal(t, http.StatusForbidden, w.Code, "hosts cannot cancel a guest's stay")
	w = doJSON(a.engine, http.MethodPost, "/api/v1/reservations/"+reservation.ID+"/cancel", nil, guest)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"Cancelled"`)
	w = doJSON(a.engine, http.MethodPut, "/api/v1/reservations/"+reservation.ID, map[string]interface{}{"adults": 3}, guest)
	assert.Equal(t, http.StatusLocked, w.Code)

	w = doJSON(a.engine, http.MethodGet, "/api/v1/reservations", nil, guest)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestRouter_DeleteUserCascades(t *testing.T) {
	a := newApp(t)
	hostID, host := a.signUp(t, "hosty")
	_, guest := a.signUp(t, "traveller")
	adminID, admin := a.signInAdmin(t)

	w := doJSON(a.engine, http.MethodPost, "/api/v1/listings", map[string]interface{}{
		"title": "Beach hut", "description": "Steps from the sea in Goa", "price": 500,
		"location": "Goa", "country": "India", "category": "Rooms", "guests": 2,
	}, host)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var listing entity.Listing
	decode(t, w, &listing)
	w = doJSON(a.engine, http.MethodPut, "/api/v1/admin/listings/"+listing.ID+"/verification", map[string]bool{"is_verified": true}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/listings/"+listing.ID+"/reviews", map[string]interface{}{"rating": 5, "comment": "Lovely"}, guest)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doJSON(a.engine, http.MethodPost, "/api/v1/listings/"+listing.ID+"/reviews", map[string]interface{}{"rating": 9, "comment": "x"}, guest)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(a.engine, http.MethodPost, "/api/v1/reservations", map[string]interface{}{
		"listing_id": listing.ID, "check_in": "2030-05-01", "check_out": "2030-05-03", "adults": 1,
	}, guest)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(a.engine, http.MethodGet, "/api/v1/admin/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(a.engine, http.MethodGet, "/api/v1/admin/stats", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"users":3`)

	w = doJSON(a.engine, http.MethodDelete, "/api/v1/admin/users/"+adminID, nil, admin)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(a.engine, http.MethodDelete, "/api/v1/admin/users/"+hostID, nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var deleted struct {
		Result entity.CascadeResult `json:"result"`
	}
	decode(t, w, &deleted)
	assert.Equal(t, int64(1), deleted.Result.UsersDeleted)
	assert.Equal(t, int64(1), deleted.Result.ListingsDeleted)
	assert.Equal(t, int64(1), deleted.Result.ReviewsDeleted)
	assert.Equal(t, int64(1), deleted.Result.ReservationsDeleted)

	w = doJSON(a.engine, http.MethodGet, "/api/v1/listings/"+listing.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(a.engine, http.MethodGet, "/api/v1/me", nil, host)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "sessions of deleted users stop working")
	w = doJSON(a.engine, http.MethodGet, "/api/v1/me", nil, guest)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reservations":[]`)

	w = doJSON(a.engine, http.MethodPost, "/api/v1/admin/reconcile", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"references_pulled":0`)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	a := newApp(t)
	w := doJSON(a.engine, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(a.engine, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
