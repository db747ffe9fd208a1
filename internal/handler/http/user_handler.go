package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	Register(*gin.Context)
	Login(*gin.Context)
	Logout(*gin.Context)
	GetUser(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateCurrentUser(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
	cookie      middleware.CookieOptions
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase, cookie middleware.CookieOptions) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		cookie:      cookie,
	}
}

// Register handles signup and signs the new user in.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, token, err := h.userUsecase.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Phone, req.Location)
	if err != nil {
		HandleError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token, h.cookie)
	SuccessHandler(c, http.StatusCreated, dto.LoginResponse{User: dto.ToUserResponse(*user), SessionToken: token})
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, token, err := h.userUsecase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token, h.cookie)
	SuccessHandler(c, http.StatusOK, dto.LoginResponse{User: dto.ToUserResponse(*user), SessionToken: token})
}

// Logout drops the session cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookie.Secure)
	MessageHandler(c, http.StatusOK, "Logged out successfully")
}

// GetUser handles retrieving a public profile by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	profile, err := h.userUsecase.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToProfileResponse(profile))
}

// GetCurrentUser returns the signed-in user with their listings and reservations.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := h.userUsecase.GetProfile(c.Request.Context(), session.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToProfileResponse(profile))
}

// UpdateCurrentUser handles updating the signed-in user's contact details
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session == nil {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req dto.UpdateProfileRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	updatedUser, err := h.userUsecase.UpdateProfile(c.Request.Context(), session.UserID, req.ToUpdates())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*updatedUser))
}
