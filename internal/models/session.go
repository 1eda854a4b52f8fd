package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT payload issued by the upstream auth service.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type CreateSessionRequest struct {
	Token string `json:"token" validate:"required"`
}

// ReconciliationSummary reports what a single login-time merge did.
// Failed counts items whose individual push did not land; those losses
// are logged, never retried, and never block sibling pushes.
type ReconciliationSummary struct {
	CartCreated     int `json:"cart_created"`
	CartUpdated     int `json:"cart_updated"`
	WishlistCreated int `json:"wishlist_created"`
	Failed          int `json:"failed"`
}
