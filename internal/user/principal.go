package user

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/auth"
)

var ErrInvalidPrincipal = errors.New("invalid principal")

// Principal is the authenticated caller every service operation receives
// explicitly. Services never read identity from ambient request state.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

func PrincipalFromClaims(claims *auth.Claims) (Principal, error) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Principal{}, ErrInvalidPrincipal
	}

	role := Role(claims.Role)
	if !role.IsValid() {
		return Principal{}, ErrInvalidPrincipal
	}

	return Principal{ID: id, Role: role}, nil
}
