package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin é o único papel aceito nas rotas administrativas
const RoleAdmin = "admin"

// AdminClaims são as claims do token das rotas administrativas
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
