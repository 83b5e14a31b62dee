package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims the billing platform issues. The ledger
// only cares about the user id and role; identity management is elsewhere.
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the claims carry the admin role.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == "admin"
}
