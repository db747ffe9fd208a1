package entity

import "github.com/golang-jwt/jwt/v5"

// Claims is the decoded content of a session token.
type Claims struct {
	SessionID string   `json:"sid"`
	UserID    string   `json:"uid"`
	Role      UserRole `json:"role"`
	jwt.RegisteredClaims
}
