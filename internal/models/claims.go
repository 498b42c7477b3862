package models

import "github.com/golang-jwt/jwt"

// Claims carried in bearer tokens presented by the settlement watcher
// and other back office callers.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}
