package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

const (
	oauthStateCookie = "oauthState"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleOAuthConfig holds the client credentials registered with Google.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
}

func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type AuthHandler struct {
	userUseCase usecasecontract.IUserUseCase
	oauth       *oauth2.Config
	cookie      middleware.CookieOptions
	userInfoURL string
}

func NewAuthHandler(uc usecasecontract.IUserUseCase, baseURL string, google GoogleOAuthConfig, cookie middleware.CookieOptions) *AuthHandler {
	return &AuthHandler{
		userUseCase: uc,
		oauth:       googleOauthConfig(baseURL, google),
		cookie:      cookie,
		userInfoURL: googleUserInfo,
	}
}

type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func googleOauthConfig(baseURL string, creds GoogleOAuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  baseURL + "/api/v1/auth/google/callback",
		Scopes:       []string{"email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func (h *AuthHandler) HandleGoogleLogin(ctx *gin.Context) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		HandleError(ctx, fmt.Errorf("generate oauth state: %w", err))
		return
	}
	state := base64.URLEncoding.EncodeToString(b)
	ctx.SetCookie(oauthStateCookie, state, 300, "/", "", h.cookie.Secure, true)

	ctx.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

func (h *AuthHandler) HandleGoogleCallback(ctx *gin.Context) {
	state := ctx.Query("state")
	cookieState, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(ctx, http.StatusUnauthorized, "invalid CSRF state token")
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", h.cookie.Secure, true)

	code := ctx.Query("code")
	if code == "" {
		ErrorHandler(ctx, http.StatusBadRequest, "authorization code not provided")
		return
	}

	requestCtx := ctx.Request.Context()
	token, err := h.oauth.Exchange(requestCtx, code)
	if err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to exchange authorization code")
		return
	}

	resp, err := h.oauth.Client(requestCtx, token).Get(h.userInfoURL)
	if err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to get user info")
		return
	}
	defer resp.Body.Close()

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to decode user info")
		return
	}

	user, sessionToken, err := h.userUseCase.LoginWithOAuth(requestCtx, userInfo.Email, userInfo.Name)
	if err != nil {
		HandleError(ctx, err)
		return
	}

	middleware.SetSessionCookie(ctx, sessionToken, h.cookie)
	SuccessHandler(ctx, http.StatusOK, dto.LoginResponse{User: dto.ToUserResponse(*user), SessionToken: sessionToken})
}
