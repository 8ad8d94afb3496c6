package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminTokenPayload captures the data available when minting an admin JWT.
type AdminTokenPayload struct {
	AdminID uuid.UUID
	Name    string
	JTI     string
}

// AdminTokenClaims represents the typed JWT issued to bakery staff.
type AdminTokenClaims struct {
	AdminID uuid.UUID `json:"admin_id"`
	Name    string    `json:"name,omitempty"`
	jwt.RegisteredClaims
}
