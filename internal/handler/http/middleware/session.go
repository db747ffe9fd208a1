package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
	"github.com/mikiasgoitom/airhost/internal/handler/http/dto"
)

// SessionCookie is the name of the HttpOnly cookie carrying the signed session token.
const SessionCookie = "airhost_session"

const sessionKey = "session"

// Session is the signed-in principal attached to the gin context.
type Session struct {
	UserID   string
	Username string
	Role     entity.UserRole
}

func (s *Session) Actor() entity.Actor {
	if s == nil {
		return entity.Actor{}
	}
	return entity.Actor{UserID: s.UserID, Role: s.Role}
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == entity.UserRoleAdmin
}

// Authenticator resolves a session token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionToken string) (*entity.User, error)
}

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

// SetSessionCookie stores token in the session cookie.
func SetSessionCookie(c *gin.Context, token string, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

// LoadSession attaches the session of the request, if any. Requests with a
// missing, invalid or blocked session continue anonymously.
func LoadSession(auth Authenticator, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if fromCookie {
				ClearSessionCookie(c, secure)
			}
			c.Next()
			return
		}
		c.Set(sessionKey, &Session{UserID: user.ID, Username: user.Username, Role: user.Role})
		c.Next()
	}
}

func sessionToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1]), false
	}
	return "", false
}

// CurrentSession returns the session loaded by LoadSession, or nil.
func CurrentSession(c *gin.Context) *Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}

// Actor returns the principal of the request. Anonymous requests get the zero Actor.
func Actor(c *gin.Context) entity.Actor {
	return CurrentSession(c).Actor()
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests not made by an admin. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "admin access required"})
			return
		}
		c.Next()
	}
}
